package diag

import (
	"fmt"

	multierror "github.com/hashicorp/go-multierror"
)

// Reporter is the append-only diagnostic sink named in the parser's error
// reporter component: every Report call records a diagnostic, and an
// error-severity one also sets a sticky failed flag; parsing continues
// regardless.
type Reporter struct {
	diagnostics []Diagnostic
	failed      bool
}

// NewReporter returns an empty reporter.
func NewReporter() *Reporter {
	return &Reporter{}
}

// Report records d and marks the reporter failed if d is an error.
func (r *Reporter) Report(d Diagnostic) {
	r.diagnostics = append(r.diagnostics, d)
	if d.Severity == SeverityError {
		r.failed = true
	}
}

// Failed reports whether any error-severity diagnostic has been recorded.
func (r *Reporter) Failed() bool {
	return r.failed
}

// Diagnostics returns every diagnostic recorded so far, in report order.
func (r *Reporter) Diagnostics() []Diagnostic {
	return r.diagnostics
}

// Err folds every error-severity diagnostic into a single error via
// go-multierror, for callers (the CLI) that want a
// plain `error` view over the sink instead of walking Diagnostics().
// Returns nil if nothing failed.
func (r *Reporter) Err() error {
	if !r.failed {
		return nil
	}
	var merr *multierror.Error
	for _, d := range r.diagnostics {
		if d.Severity != SeverityError {
			continue
		}
		if d.Loc.Path() != "" {
			merr = multierror.Append(merr, fmt.Errorf("%s:%d:%d: %s", d.Loc.Path(), d.Loc.Line, d.Loc.Column, d.Message))
		} else {
			merr = multierror.Append(merr, fmt.Errorf("%s", d.Message))
		}
	}
	return merr.ErrorOrNil()
}

// Merge appends every diagnostic from other into r, preserving order and
// the sticky failed flag.
func (r *Reporter) Merge(other *Reporter) {
	if other == nil {
		return
	}
	r.diagnostics = append(r.diagnostics, other.diagnostics...)
	r.failed = r.failed || other.failed
}
