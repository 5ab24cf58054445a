// Package types defines B-Minor's type tags and the operator typing
// tables that the semantic checker and IR emitter share (spec.md §4.4).
package types

import "fmt"

// Tag is one of the six primitive type names used uniformly through
// lexing, checking, and emission (spec.md glossary: "Type tag").
type Tag int

const (
	Invalid Tag = iota
	Integer
	Float
	Boolean
	Char
	String
	Void
)

func (t Tag) String() string {
	switch t {
	case Integer:
		return "integer"
	case Float:
		return "float"
	case Boolean:
		return "boolean"
	case Char:
		return "char"
	case String:
		return "string"
	case Void:
		return "void"
	default:
		return "<invalid>"
	}
}

// Lookup maps a primitive type name to its Tag, per spec.md's supplemented
// "loockup_type" behavior (original_source/bminor/semantic/typesys.py).
func Lookup(name string) (Tag, bool) {
	switch name {
	case "integer":
		return Integer, true
	case "float":
		return Float, true
	case "boolean":
		return Boolean, true
	case "char":
		return Char, true
	case "string":
		return String, true
	case "void":
		return Void, true
	default:
		return Invalid, false
	}
}

// Type is the full type representation: a primitive Tag, or a compound
// array/function descriptor (spec.md §3).
type Type struct {
	Tag Tag

	// Array descriptors
	Elem *Type // element type, non-nil when Tag == Invalid && IsArray
	Size int   // declared size when statically known; -1 otherwise

	// Function descriptors
	Return *Type
	Params []Type

	kind kind
}

type kind int

const (
	kindPrimitive kind = iota
	kindArray
	kindFunction
)

// Primitive builds a scalar Type from a Tag.
func Primitive(tag Tag) Type {
	return Type{Tag: tag, kind: kindPrimitive}
}

// Array builds an array-of-elem type. size is -1 when the bound is not
// a compile-time constant.
func Array(elem Type, size int) Type {
	e := elem
	return Type{kind: kindArray, Elem: &e, Size: size}
}

// Function builds a function type from its return type and parameter types.
func Function(ret Type, params []Type) Type {
	r := ret
	return Type{kind: kindFunction, Return: &r, Params: params}
}

func (t Type) IsArray() bool    { return t.kind == kindArray }
func (t Type) IsFunction() bool { return t.kind == kindFunction }
func (t Type) IsPrimitive() bool {
	return t.kind == kindPrimitive
}

// IsValid reports whether t carries usable type information (the
// semantic checker leaves this false on an unresolved node).
func (t Type) IsValid() bool {
	return t.kind != kindPrimitive || t.Tag != Invalid
}

func (t Type) String() string {
	switch t.kind {
	case kindArray:
		if t.Size >= 0 {
			return fmt.Sprintf("array[%d] %s", t.Size, t.Elem)
		}
		return fmt.Sprintf("array[] %s", t.Elem)
	case kindFunction:
		return fmt.Sprintf("function %s(%d params)", t.Return, len(t.Params))
	default:
		return t.Tag.String()
	}
}

// Equal reports structural equality, used for parameter/initializer
// type matching (spec.md §4.5).
func (t Type) Equal(other Type) bool {
	if t.kind != other.kind {
		return false
	}
	switch t.kind {
	case kindArray:
		return t.Elem.Equal(*other.Elem)
	case kindFunction:
		if !t.Return.Equal(*other.Return) || len(t.Params) != len(other.Params) {
			return false
		}
		for i := range t.Params {
			if !t.Params[i].Equal(other.Params[i]) {
				return false
			}
		}
		return true
	default:
		return t.Tag == other.Tag
	}
}

// Primitive type singletons, for terse callers.
var (
	IntegerType = Primitive(Integer)
	FloatType   = Primitive(Float)
	BooleanType = Primitive(Boolean)
	CharType    = Primitive(Char)
	StringType  = Primitive(String)
	VoidType    = Primitive(Void)
	InvalidType = Primitive(Invalid)
)
