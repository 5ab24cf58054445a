package dot

import (
	"strings"
	"testing"

	"github.com/bminor/bminorc/internal/diag"
	"github.com/bminor/bminorc/internal/parser"
)

func TestRenderProducesValidDotSkeleton(t *testing.T) {
	d := diag.New()
	prog := parser.Parse(`x: integer = 1 + 2;`, d)
	if d.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", d.String())
	}
	var sb strings.Builder
	Render(&sb, prog)
	out := sb.String()
	if !strings.HasPrefix(out, "digraph AST {") {
		t.Fatalf("expected digraph header, got:\n%s", out)
	}
	if !strings.Contains(out, `"VarDecl: x"`) {
		t.Fatalf("expected a VarDecl node, got:\n%s", out)
	}
	if !strings.Contains(out, `"BinaryExpr: +"`) {
		t.Fatalf("expected a BinaryExpr node, got:\n%s", out)
	}
}

func TestRenderNumbersNodesSequentially(t *testing.T) {
	d := diag.New()
	prog := parser.Parse(`x: integer = 1;`, d)
	var sb strings.Builder
	Render(&sb, prog)
	out := sb.String()
	if !strings.Contains(out, "n01") || !strings.Contains(out, "n02") {
		t.Fatalf("expected sequential n01/n02 node ids, got:\n%s", out)
	}
}
