// Copyright © 2025 The srcscope authors

// Package diagnostic renders analysis degradations as annotated source
// snippets for CLI output.  It is independent of the analysis package's
// internals so any command can use it without import cycles.
package diagnostic

import "github.com/srcscope/srcscope/analysis"

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Span identifies the source line to show under the diagnostic message.
type Span struct {
	File  string // path for reading source; display name if unreadable
	Line  int    // 1-based line number, 0 when the problem has no line
	Label string // text shown under the highlighted line
}

// Diagnostic is a single message with an optional source annotation and
// trailing notes.
type Diagnostic struct {
	Severity Severity
	Message  string
	Spans    []Span
	Notes    []string
}

// FromResult converts the degradations of an analysis run into renderable
// diagnostics.  Degraded parses are warnings: the tree is still usable,
// just possibly incomplete.
func FromResult(res *analysis.Result) []Diagnostic {
	var diags []Diagnostic
	for _, d := range res.Degradations {
		diags = append(diags, Diagnostic{
			Severity: SeverityWarning,
			Message:  d.Msg,
			Spans:    []Span{{File: d.Path, Line: d.Line, Label: "analysis degraded here"}},
			Notes:    []string{"scopes recognized before this point are kept"},
		})
	}
	return diags
}
