// Package diag accumulates parser diagnostics: an append-only sink that
// records a sticky failed flag while letting the caller keep parsing past
// any individual error.
package diag

import "github.com/rill-lang/rill/internal/lexer"

// Severity classifies a diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityNote    Severity = "note"
)

// Kind is the design-level error taxonomy from the error-handling design:
// I/O, a missing lexical alternative, a shape violation, or an
// unrecoverable end-of-input.
type Kind string

const (
	KindIO             Kind = "io"
	KindExpected       Kind = "expected"
	KindShapeViolation Kind = "shape"
	KindUnrecoverable  Kind = "unrecoverable"
)

// Secondary is an additional labeled location attached to a diagnostic,
// e.g. "previous definition is here".
type Secondary struct {
	Loc   lexer.Location
	Label string
}

// Diagnostic is one recorded parser diagnostic.
type Diagnostic struct {
	Severity  Severity
	Kind      Kind
	Message   string
	Loc       lexer.Location
	Secondary []Secondary
}

// WithSecondary returns a copy of d with an additional secondary location.
func (d Diagnostic) WithSecondary(loc lexer.Location, label string) Diagnostic {
	d.Secondary = append(d.Secondary, Secondary{Loc: loc, Label: label})
	return d
}
