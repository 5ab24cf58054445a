package irgen

import (
	"strings"
	"testing"

	"github.com/bminor/bminorc/internal/diag"
	"github.com/bminor/bminorc/internal/parser"
	"github.com/bminor/bminorc/internal/semantic"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	d := diag.New()
	prog := parser.Parse(src, d)
	if d.HasErrors() {
		t.Fatalf("unexpected parse errors: %s", d.String())
	}
	semantic.Check(prog, d)
	if d.HasErrors() {
		t.Fatalf("unexpected checker errors: %s", d.String())
	}
	ir, err := Generate(prog, "test_module")
	if err != nil {
		t.Fatalf("unexpected codegen error: %v", err)
	}
	return ir
}

func TestGenerateDeclaresRuntimePrintFunctions(t *testing.T) {
	ir := generate(t, `main: function void () { print 1; }`)
	for _, want := range []string{"_printi", "_printf", "_printb", "_printc"} {
		if !strings.Contains(ir, want) {
			t.Fatalf("expected declaration of %s in IR:\n%s", want, ir)
		}
	}
}

func TestGenerateLogicalOrUsesLLVMOr(t *testing.T) {
	// REDESIGN FLAG: || must lower to 'or', never 'and'.
	ir := generate(t, `main: function void () {
		a: boolean = true;
		b: boolean = false;
		c: boolean = a || b;
	}`)
	if !strings.Contains(ir, "or i1") {
		t.Fatalf("expected 'or i1' instruction for ||, got:\n%s", ir)
	}
}

func TestGenerateLogicalAndUsesLLVMAnd(t *testing.T) {
	ir := generate(t, `main: function void () {
		a: boolean = true;
		b: boolean = false;
		c: boolean = a && b;
	}`)
	if !strings.Contains(ir, "and i1") {
		t.Fatalf("expected 'and i1' instruction for &&, got:\n%s", ir)
	}
}

func TestGenerateFloatDivisionUsesFDiv(t *testing.T) {
	// REDESIGN FLAG: float division must emit 'fdiv', never 'fsdiv'.
	ir := generate(t, `main: function void () {
		a: float = 1.0;
		b: float = 2.0;
		x: float = a / b;
	}`)
	if !strings.Contains(ir, "fdiv") {
		t.Fatalf("expected 'fdiv' instruction, got:\n%s", ir)
	}
}

func TestGenerateIfElseCreatesThenElseMergeBlocks(t *testing.T) {
	ir := generate(t, `main: function void () {
		if (true) { print 1; } else { print 2; }
	}`)
	for _, want := range []string{"if.then", "if.else", "if.merge"} {
		if !strings.Contains(ir, want) {
			t.Fatalf("expected block %q in IR:\n%s", want, ir)
		}
	}
}

func TestGenerateWhileCreatesCondBodyEndBlocks(t *testing.T) {
	ir := generate(t, `main: function void () {
		i: integer = 0;
		while (i < 10) { i = i + 1; }
	}`)
	for _, want := range []string{"while.cond", "while.body", "while.end"} {
		if !strings.Contains(ir, want) {
			t.Fatalf("expected block %q in IR:\n%s", want, ir)
		}
	}
}

func TestGenerateForCreatesCondBodyIncrEndBlocks(t *testing.T) {
	ir := generate(t, `main: function void () {
		i: integer;
		for (i = 0; i < 10; i = i + 1) print i;
	}`)
	for _, want := range []string{"for.cond", "for.body", "for.incr", "for.end"} {
		if !strings.Contains(ir, want) {
			t.Fatalf("expected block %q in IR:\n%s", want, ir)
		}
	}
}

func TestGenerateDoWhileCreatesBodyCondEndBlocks(t *testing.T) {
	ir := generate(t, `main: function void () {
		i: integer = 0;
		do { i = i + 1; } while (i < 10);
	}`)
	for _, want := range []string{"dowhile.body", "dowhile.cond", "dowhile.end"} {
		if !strings.Contains(ir, want) {
			t.Fatalf("expected block %q in IR:\n%s", want, ir)
		}
	}
}

func TestGenerateGlobalInitRunsBeforeMain(t *testing.T) {
	ir := generate(t, `
		g: integer = 42;
		main: function void () { print g; }
	`)
	if !strings.Contains(ir, "_global_init") {
		t.Fatalf("expected a _global_init function for global initializers, got:\n%s", ir)
	}
	if !strings.Contains(ir, "bminor_main") {
		t.Fatalf("expected the user's main renamed to bminor_main behind a wrapper, got:\n%s", ir)
	}
}

func TestGenerateBooleanLiteralUsesDecodedValueNotTokenText(t *testing.T) {
	// REDESIGN FLAG: boolean codegen must use the decoded bool payload.
	ir := generate(t, `main: function void () { b: boolean = true; }`)
	if !strings.Contains(ir, "i1 true") && !strings.Contains(ir, "store i1 true") {
		t.Fatalf("expected a literal i1 true store, got:\n%s", ir)
	}
}

func TestGenerateFunctionCallAndReturn(t *testing.T) {
	ir := generate(t, `
		add: function integer (a: integer, b: integer) {
			return a + b;
		}
		main: function void () {
			print add(1, 2);
		}
	`)
	if !strings.Contains(ir, "define i32 @add") {
		t.Fatalf("expected a definition of add, got:\n%s", ir)
	}
	if !strings.Contains(ir, "call i32 @add") {
		t.Fatalf("expected a call to add, got:\n%s", ir)
	}
}
