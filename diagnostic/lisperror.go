// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"errors"
	"fmt"

	"github.com/luthersystems/roots/lisp"
)

// FromError converts err into a Diagnostic.  A *lisp.ErrorVal contributes its
// condition, its source location and one note per call stack frame,
// innermost first.  Any other error becomes a bare message.
func FromError(err error) Diagnostic {
	var lerr *lisp.ErrorVal
	if !errors.As(err, &lerr) {
		return Diagnostic{Severity: SeverityError, Message: err.Error()}
	}
	d := Diagnostic{
		Severity: SeverityError,
		Code:     lerr.Condition,
		Message:  lerr.Message,
	}
	if loc := lerr.Source; loc != nil && loc.Pos >= 0 {
		span := Span{
			File: loc.File,
			Line: loc.Line,
			Col:  loc.Col,
		}
		// Prefer physical path for reading source
		if loc.Path != "" {
			span.File = loc.Path
		}
		d.Spans = append(d.Spans, span)
	}
	if lerr.Stack != nil {
		for i := len(lerr.Stack.Frames) - 1; i >= 0; i-- {
			frame := &lerr.Stack.Frames[i]
			loc := "unknown"
			if frame.Source != nil && frame.Source.Pos >= 0 {
				loc = frame.Source.String()
			}
			d.Notes = append(d.Notes, fmt.Sprintf("in %s at %s", frame.Name, loc))
		}
	}
	return d
}
