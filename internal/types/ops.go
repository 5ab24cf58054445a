package types

// binOpKey and unaryOpKey index the operator typing tables below. The
// table contents mirror original_source/bminor/semantic/typesys.py's
// _bin_ops/_unary_ops dicts exactly (spec.md §4.4); only primitive
// tags participate; array/function operands never match and fall
// through to the zero value (ok == false).
type binOpKey struct {
	Left  Tag
	Op    string
	Right Tag
}

type unaryOpKey struct {
	Op      string
	Operand Tag
}

var binOps = map[binOpKey]Tag{
	// integer arithmetic -> integer
	{Integer, "+", Integer}: Integer,
	{Integer, "-", Integer}: Integer,
	{Integer, "*", Integer}: Integer,
	{Integer, "/", Integer}: Integer,
	{Integer, "%", Integer}: Integer,
	// integer relationals -> boolean
	{Integer, "<", Integer}:  Boolean,
	{Integer, "<=", Integer}: Boolean,
	{Integer, ">", Integer}:  Boolean,
	{Integer, ">=", Integer}: Boolean,
	{Integer, "==", Integer}: Boolean,
	{Integer, "!=", Integer}: Boolean,
	// integer assignment -> integer
	{Integer, "=", Integer}: Integer,

	// float arithmetic (no modulo) -> float
	{Float, "+", Float}: Float,
	{Float, "-", Float}: Float,
	{Float, "*", Float}: Float,
	{Float, "/", Float}: Float,
	// float relationals -> boolean
	{Float, "<", Float}:  Boolean,
	{Float, "<=", Float}: Boolean,
	{Float, ">", Float}:  Boolean,
	{Float, ">=", Float}: Boolean,
	{Float, "==", Float}: Boolean,
	{Float, "!=", Float}: Boolean,
	// float assignment -> float
	{Float, "=", Float}: Float,

	// boolean logical and equality -> boolean
	{Boolean, "&&", Boolean}: Boolean,
	{Boolean, "||", Boolean}: Boolean,
	{Boolean, "==", Boolean}: Boolean,
	{Boolean, "!=", Boolean}: Boolean,
	{Boolean, "=", Boolean}:  Boolean,

	// char: only comparisons and assignment, never arithmetic
	{Char, "<", Char}:  Boolean,
	{Char, "<=", Char}: Boolean,
	{Char, ">", Char}:  Boolean,
	{Char, ">=", Char}: Boolean,
	{Char, "==", Char}: Boolean,
	{Char, "!=", Char}: Boolean,
	{Char, "=", Char}:  Char,

	// string: concatenation, assignment, relationals
	{String, "+", String}:  String,
	{String, "=", String}:  String,
	{String, "<", String}:  Boolean,
	{String, "<=", String}: Boolean,
	{String, ">", String}:  Boolean,
	{String, ">=", String}: Boolean,
	{String, "==", String}: Boolean,
	{String, "!=", String}: Boolean,
}

var unaryOps = map[unaryOpKey]Tag{
	{"+", Integer}: Integer,
	{"-", Integer}: Integer,
	{"^", Integer}: Integer,
	{"+", Float}:   Float,
	{"-", Float}:   Float,
	{"!", Boolean}: Boolean,
}

// CheckBinOp reports the result type of applying op to two primitive
// operand types, and whether the combination is legal at all. Compound
// types (arrays, functions) never appear in this table and always
// report ok == false; callers must reject them before consulting it.
func CheckBinOp(op string, left, right Type) (Type, bool) {
	if !left.IsPrimitive() || !right.IsPrimitive() {
		return InvalidType, false
	}
	tag, ok := binOps[binOpKey{left.Tag, op, right.Tag}]
	if !ok {
		return InvalidType, false
	}
	return Primitive(tag), true
}

// CheckUnaryOp reports the result type of applying a prefix operator
// (+, -, ^, !) to a primitive operand type.
func CheckUnaryOp(op string, operand Type) (Type, bool) {
	if !operand.IsPrimitive() {
		return InvalidType, false
	}
	tag, ok := unaryOps[unaryOpKey{op, operand.Tag}]
	if !ok {
		return InvalidType, false
	}
	return Primitive(tag), true
}
