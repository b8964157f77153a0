package profiler

import (
	"fmt"
	"regexp"

	"github.com/luthersystems/roots/lisp"
)

// FunLabeler provides an alternative name for a function label in the trace.
type FunLabeler func(runtime *lisp.Runtime, fun *lisp.LVal) string

// WithSourceLabeler labels spans for lisp functions with the location of
// their definition, as in name@file:line.
func WithSourceLabeler() Option {
	return WithFunLabeler(sourceFunLabeler)
}

// WithFunLabeler sets the labeler for tracing spans.
func WithFunLabeler(funLabeler FunLabeler) Option {
	return func(p *profiler) {
		p.funLabeler = funLabeler
	}
}

var (
	sanitizeRegExp   = regexp.MustCompile(`[\s_]+`)
	validLabelRegExp = regexp.MustCompile(`[[:graph:]]*`)
)

func sanitizeLabel(userLabel string) string {
	if userLabel == "" {
		return ""
	}

	// Replace spaces with underscores
	userLabel = sanitizeRegExp.ReplaceAllString(userLabel, "_")

	// Find the first valid label match
	matches := validLabelRegExp.FindStringSubmatch(userLabel)
	if len(matches) > 0 {
		return matches[0]
	}

	return ""
}

func sourceFunLabeler(runtime *lisp.Runtime, fun *lisp.LVal) string {
	loc := getSourceLoc(fun)
	if loc == nil {
		return ""
	}
	name := defaultFunName(runtime, fun)
	if loc.Line == 0 {
		return fmt.Sprintf("%s@%s", name, loc.File)
	}
	return fmt.Sprintf("%s@%s:%d", name, loc.File, loc.Line)
}
