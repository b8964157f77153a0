// Copyright © 2018 The ELPS authors

package lisp

import (
	"bufio"
	"errors"
	"fmt"
	"io"

	"github.com/luthersystems/roots/parser/token"
)

// Error conditions
const (
	// CondReadError is the condition of errors in malformed source text.
	CondReadError = "read-error"
	// CondEvalError is the condition of errors signaled during evaluation.
	CondEvalError = "eval-error"
)

// ErrorVal is the error type produced by readers and by evaluation.
type ErrorVal struct {
	// Condition is either CondReadError or CondEvalError.
	Condition string
	// Message is the human readable description of the error.
	Message string
	// Source is the location of the offending token or expression, if known.
	Source *token.Location
	// Stack is a copy of the call stack at the time an evaluation error
	// occurred.
	Stack *CallStack
}

// Error implements the error interface.  The source location is not included
// in the message.  See WriteTrace.
func (e *ErrorVal) Error() string {
	switch e.Condition {
	case CondReadError:
		return "read error: " + e.Message
	case CondEvalError:
		return "eval error: " + e.Message
	default:
		return fmt.Sprintf("%s: %s", e.Condition, e.Message)
	}
}

// FunName returns the name of the function on the top of the call stack when
// the error occurred.
func (e *ErrorVal) FunName() string {
	if e.Stack == nil || e.Stack.Top() == nil {
		return ""
	}
	return e.Stack.Top().Name
}

// WriteTrace writes the error and a stack trace to w
func (e *ErrorVal) WriteTrace(w io.Writer) (int, error) {
	bw := bufio.NewWriter(w)
	var n int
	var err error
	wrote := func(_n int, _err error) bool {
		n += _n
		err = _err
		return err == nil
	}
	if e.Source != nil && e.Source.Pos >= 0 {
		if !wrote(fmt.Fprintf(bw, "%s: ", e.Source)) {
			return n, err
		}
	}
	if !wrote(bw.WriteString(e.Error())) {
		return n, err
	}
	if !wrote(bw.WriteString("\n")) {
		return n, err
	}
	if e.Stack != nil && len(e.Stack.Frames) > 0 {
		if !wrote(e.Stack.DebugPrint(bw)) {
			return n, err
		}
	}
	return n, bw.Flush()
}

// ReadErrorf returns a read error located at loc.
func ReadErrorf(loc *token.Location, format string, v ...interface{}) error {
	return &ErrorVal{
		Condition: CondReadError,
		Message:   fmt.Sprintf(format, v...),
		Source:    loc,
	}
}

// Errorf returns an evaluation error which is located at the expression
// currently being evaluated and carries a copy of the call stack.
func (env *LEnv) Errorf(format string, v ...interface{}) error {
	return env.newError(fmt.Sprintf(format, v...))
}

// Error returns an evaluation error wrapping the message of err.
func (env *LEnv) Error(err error) error {
	return env.newError(err.Error())
}

func (env *LEnv) newError(msg string) error {
	e := &ErrorVal{
		Condition: CondEvalError,
		Message:   msg,
		Source:    env.Loc,
	}
	if env.Runtime != nil && env.Runtime.Stack != nil {
		e.Stack = env.Runtime.Stack.Copy()
	}
	return e
}

// IsReadError returns true if err is, or wraps, a read error.
func IsReadError(err error) bool {
	return hasCondition(err, CondReadError)
}

// IsEvalError returns true if err is, or wraps, an evaluation error.
func IsEvalError(err error) bool {
	return hasCondition(err, CondEvalError)
}

func hasCondition(err error, condition string) bool {
	var lerr *ErrorVal
	if !errors.As(err, &lerr) {
		return false
	}
	return lerr.Condition == condition
}
