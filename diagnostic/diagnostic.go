// Copyright © 2024 The ELPS authors

// Package diagnostic renders reader and evaluator errors as annotated source
// snippets for the command line and the interactive prompt.
package diagnostic

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityNote
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityNote:
		return "note"
	default:
		return "unknown"
	}
}

// Span identifies a region of source code to highlight in the diagnostic.
type Span struct {
	File   string // name used to find the source text and shown to the user
	Line   int    // 1-based line number
	Col    int    // 1-based start column
	EndCol int    // 1-based end column (0 = auto-detect from source)
	Label  string // text shown under the underline
}

// Diagnostic represents a single error or note with optional source
// annotations and trailing notes.
type Diagnostic struct {
	Severity Severity
	// Code is an optional condition name shown in brackets after the
	// severity, as in error[read-error].
	Code    string
	Message string
	Spans   []Span
	Notes   []string // "= note:" lines (stack trace frames, etc.)
}
