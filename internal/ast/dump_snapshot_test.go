package ast_test

import (
	"testing"

	"github.com/bminor/bminorc/internal/ast"
	"github.com/bminor/bminorc/internal/diag"
	"github.com/bminor/bminorc/internal/parser"
	"github.com/gkampitakis/go-snaps/snaps"
)

// TestDumpSnapshots pins the indented-tree rendering of a handful of
// representative programs using go-snaps, the teacher's snapshot
// testing library (see internal/interp/fixture_test.go's
// snaps.MatchSnapshot use for full-fixture regression testing).
func TestDumpSnapshots(t *testing.T) {
	cases := map[string]string{
		"var_decl": `x: integer = 1 + 2 * 3;`,
		"if_else": `f: function void (x: integer) = {
			if (x > 0) {
				print x;
			} else {
				print 0;
			}
		};`,
		"array_and_loop": `main: function integer () = {
			a: array [3] integer = { 1, 2, 3 };
			i: integer = 0;
			while (i < 3) {
				print a[i];
				i = i + 1;
			}
			return 0;
		};`,
	}

	for name, src := range cases {
		t.Run(name, func(t *testing.T) {
			d := diag.New()
			prog := parser.Parse(src, d)
			if d.HasErrors() {
				t.Fatalf("unexpected parse errors: %s", d.String())
			}
			snaps.MatchSnapshot(t, ast.Dump(prog))
		})
	}
}
