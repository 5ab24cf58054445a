// Package runtime embeds the tiny C support library B-Minor's emitted
// IR is linked against: the four print primitives named in spec.md §6
// (void _printi(int32_t), void _printf(double), void _printb(i1),
// void _printc(int8_t)). B-Minor has no I/O of its own; `print` lowers
// straight to calls against this ABI (spec.md §4.6).
package runtime

import _ "embed"

//go:embed support.c
var source string

// Source returns the C source of the runtime support library.
func Source() string { return source }

// FileName is the conventional name used when writing Source() to disk
// alongside an emitted .ll file (see cmd/bminorc's "build" command).
const FileName = "bminor_runtime.c"
