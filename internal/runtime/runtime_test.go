package runtime

import (
	"strings"
	"testing"
)

func TestSourceDeclaresAllFourPrintPrimitives(t *testing.T) {
	src := Source()
	for _, want := range []string{"_printi", "_printf", "_printb", "_printc"} {
		if !strings.Contains(src, want) {
			t.Fatalf("expected %s to be declared in runtime source", want)
		}
	}
}
