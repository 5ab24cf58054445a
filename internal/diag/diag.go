// Package diag accumulates compiler diagnostics (errors reported by the
// lexer, parser, and semantic checker) so downstream pipeline stages can
// gate artifact emission on whether any have been reported.
package diag

import (
	"fmt"
	"io"
	"strings"

	"github.com/bminor/bminorc/internal/token"
)

// Kind classifies a diagnostic by the pipeline stage that raised it.
type Kind string

const (
	Lexical  Kind = "Lexical"
	Syntax   Kind = "Syntax"
	Semantic Kind = "Semantic"
)

// Diagnostic is a single {kind, line, message} record, as required by
// spec.md §7.
type Diagnostic struct {
	Kind    Kind
	Line    int
	Message string
}

// String formats the diagnostic as "<Kind> Error at <line>: <message>",
// the one line of output spec.md §7 mandates per error.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%s Error at %d: %s", d.Kind, d.Line, d.Message)
}

// Bag accumulates diagnostics across pipeline stages. It is the
// "diagnostics counter" referenced throughout spec.md: mutable,
// process-wide in the sense that one Bag is threaded through the whole
// compilation, and explicitly resettable so test suites can assert a
// clean slate before each case (spec.md §8: "clear_errors(); errors_detected() == 0").
type Bag struct {
	items []Diagnostic
}

// New returns an empty diagnostics bag.
func New() *Bag {
	return &Bag{}
}

// Add records a diagnostic of the given kind at the given source line.
func (b *Bag) Add(kind Kind, line int, format string, args ...any) {
	b.items = append(b.items, Diagnostic{
		Kind:    kind,
		Line:    line,
		Message: fmt.Sprintf(format, args...),
	})
}

// AddAt is a convenience wrapper for callers holding a token.Position
// rather than a bare line number.
func (b *Bag) AddAt(kind Kind, pos token.Position, format string, args ...any) {
	b.Add(kind, pos.Line, format, args...)
}

// Count returns the number of diagnostics accumulated so far.
func (b *Bag) Count() int {
	return len(b.items)
}

// HasErrors reports whether any diagnostic has been recorded. Pipeline
// stages use this to decide whether to suppress artifact output
// (spec.md §2, §7).
func (b *Bag) HasErrors() bool {
	return len(b.items) > 0
}

// All returns the accumulated diagnostics in report order.
func (b *Bag) All() []Diagnostic {
	return b.items
}

// Clear resets the bag to empty. Exposed for test suites that share a
// single Bag across cases (spec.md §8).
func (b *Bag) Clear() {
	b.items = nil
}

// Fprint writes every diagnostic, one per line, to w.
func (b *Bag) Fprint(w io.Writer) {
	for _, d := range b.items {
		fmt.Fprintln(w, d.String())
	}
}

// String concatenates all diagnostics, one per line.
func (b *Bag) String() string {
	var sb strings.Builder
	for _, d := range b.items {
		sb.WriteString(d.String())
		sb.WriteByte('\n')
	}
	return sb.String()
}
