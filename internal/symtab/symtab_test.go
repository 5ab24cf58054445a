package symtab

import (
	"strings"
	"testing"

	"github.com/bminor/bminorc/internal/types"
)

func TestDefineAndResolveInSameScope(t *testing.T) {
	tab := New()
	if err := tab.Define(0, Symbol{Name: "x", Type: types.IntegerType}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	sym, ok := tab.Resolve(0, "x")
	if !ok || sym.Type.Tag != types.Integer {
		t.Fatalf("expected to resolve x as integer, got %v %v", sym, ok)
	}
}

func TestResolveWalksToParent(t *testing.T) {
	tab := New()
	tab.Define(0, Symbol{Name: "g", Type: types.FloatType})
	child := tab.NewChild(0, "main")
	if _, ok := tab.Resolve(child, "g"); !ok {
		t.Fatalf("expected child scope to resolve global symbol g")
	}
}

func TestResolveUndefinedFails(t *testing.T) {
	tab := New()
	if _, ok := tab.Resolve(0, "nope"); ok {
		t.Fatalf("expected resolution of undefined name to fail")
	}
}

func TestDefineSameNameSameTypeIsRedeclaration(t *testing.T) {
	tab := New()
	tab.Define(0, Symbol{Name: "x", Type: types.IntegerType})
	err := tab.Define(0, Symbol{Name: "x", Type: types.IntegerType})
	if err == nil {
		t.Fatalf("expected redeclaration error")
	}
	de, ok := err.(*DefineError)
	if !ok || de.Kind != SameType {
		t.Fatalf("expected SameType conflict, got %#v", err)
	}
	if !strings.Contains(err.Error(), "has already been declared") || strings.Contains(err.Error(), "different type") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestDefineSameNameDifferentTypeReportsConflict(t *testing.T) {
	tab := New()
	tab.Define(0, Symbol{Name: "x", Type: types.IntegerType})
	err := tab.Define(0, Symbol{Name: "x", Type: types.FloatType})
	if err == nil {
		t.Fatalf("expected conflict error")
	}
	de, ok := err.(*DefineError)
	if !ok || de.Kind != DifferentType {
		t.Fatalf("expected DifferentType conflict, got %#v", err)
	}
	if !strings.Contains(err.Error(), "different type") {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestIsDeclaredInScopeDoesNotWalkUp(t *testing.T) {
	tab := New()
	tab.Define(0, Symbol{Name: "g", Type: types.IntegerType})
	child := tab.NewChild(0, "main")
	if tab.IsDeclaredInScope(child, "g") {
		t.Fatalf("IsDeclaredInScope must not see parent-scope symbols")
	}
	if !tab.IsDeclaredInScope(0, "g") {
		t.Fatalf("IsDeclaredInScope should see same-scope symbols")
	}
}

func TestNewChildLinksParentAndChildren(t *testing.T) {
	tab := New()
	a := tab.NewChild(0, "if1")
	b := tab.NewChild(0, "if1else")
	if tab.Parent(a) != 0 || tab.Parent(b) != 0 {
		t.Fatalf("children should report parent handle 0")
	}
	children := tab.Children(0)
	if len(children) != 2 || children[0] != a || children[1] != b {
		t.Fatalf("unexpected children slice: %v", children)
	}
}

func TestPrintRendersNestedScopes(t *testing.T) {
	tab := New()
	tab.Define(0, Symbol{Name: "g", Type: types.IntegerType})
	child := tab.NewChild(0, "main")
	tab.Define(child, Symbol{Name: "p", Type: types.FloatType})

	var sb strings.Builder
	tab.Print(&sb, 0)
	out := sb.String()
	if !strings.Contains(out, `Scope "global"`) || !strings.Contains(out, `Scope "main"`) {
		t.Fatalf("expected both scope names in output:\n%s", out)
	}
	if !strings.Contains(out, "g: integer") || !strings.Contains(out, "p: float") {
		t.Fatalf("expected both symbols in output:\n%s", out)
	}
}
