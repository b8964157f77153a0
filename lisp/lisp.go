// Copyright © 2018 The ELPS authors

package lisp

import (
	"bytes"

	"github.com/luthersystems/roots/parser/token"
)

// LType is the type of an LVal
type LType uint

// Possible LValType values
const (
	// LInvalid (0) is not a valid lisp type.
	LInvalid LType = iota
	// LSymbol values store a string representation of the symbol in the
	// LVal.Str field.
	LSymbol
	// LSExpr values are "list" values in lisp and store their values in
	// LVal.Cells.  The empty list is the canonical false (nil) value.
	LSExpr
	// LFun values use the LVal.Fun field to store an LFunData object.
	//
	// A primitive function stores its name in LVal.Str and the native go
	// implementation in LFunData.Builtin.
	//
	// A closure (created with lambda or defun) uses the LVal.Cells field to
	// store the following items:
	//		[0]  the parameter specification (a symbol or a list of symbols)
	//		[1]  the body expression
	//
	// and holds its defining environment in LFunData.Env.  The environment
	// is shared, not copied, so bindings added to it after the closure is
	// created are visible when the closure is called.
	LFun
	// LTypeMax is not a real type but represents a value numerically greater
	// than all valid LType values.  It also can be used to determine the
	// number of valid LType values.
	LTypeMax
)

var lvalTypeStrings = []string{
	LInvalid: "INVALID",
	LSymbol:  "symbol",
	LSExpr:   "list",
	LFun:     "function",
}

func (t LType) String() string {
	if t >= LType(len(lvalTypeStrings)) {
		return lvalTypeStrings[LInvalid]
	}
	return lvalTypeStrings[t]
}

// LBuiltin is a function that performs executes a lisp function.  The
// arguments it receives have already been evaluated.
type LBuiltin func(env *LEnv, args *LVal) (*LVal, error)

// LFunData is the function specific portion of an LVal.
type LFunData struct {
	Builtin LBuiltin
	Env     *LEnv
}

// LVal is a lisp value
type LVal struct {
	// Source is the location in source text where the value was read.  Source
	// is nil for values constructed during evaluation.  Source never affects
	// equality or printing.
	Source *token.Location

	// Str used by LSymbol and by primitive LFun values.
	Str string

	// Cells used by LSExpr and closure LFun values.
	Cells []*LVal

	// Fun used by LFun values.
	Fun *LFunData

	// Type is the native type for a value in lisp.
	Type LType
}

// Symbol returns an LVal representing the symbol s.
func Symbol(s string) *LVal {
	return &LVal{
		Source: token.Native(),
		Type:   LSymbol,
		Str:    s,
	}
}

// SExpr returns an LVal representing an S-expression, a symbolic expression.
func SExpr(cells []*LVal) *LVal {
	return &LVal{
		Source: token.Native(),
		Type:   LSExpr,
		Cells:  cells,
	}
}

// Nil returns an LVal representing nil, the empty list.
func Nil() *LVal {
	return SExpr(nil)
}

// Bool returns the canonical true value, the symbol t, when b is true.  When
// b is false Bool returns Nil.
func Bool(b bool) *LVal {
	if b {
		return Symbol("t")
	}
	return Nil()
}

// Quote returns the list (quote v).
func Quote(v *LVal) *LVal {
	q := SExpr([]*LVal{Symbol("quote"), v})
	q.Source = v.Source
	return q
}

// Fun returns an LVal representing the primitive function fn bound under
// name.
func Fun(name string, fn LBuiltin) *LVal {
	return &LVal{
		Source: token.Native(),
		Type:   LFun,
		Str:    name,
		Fun:    &LFunData{Builtin: fn},
	}
}

// Lambda returns a closure over env with the given parameter specification
// and body.
func Lambda(env *LEnv, params, body *LVal) *LVal {
	return &LVal{
		Source: env.Loc,
		Type:   LFun,
		Cells:  []*LVal{params, body},
		Fun:    &LFunData{Env: env},
	}
}

// IsNil returns true if v represents a nil value.
func (v *LVal) IsNil() bool {
	return v.Type == LSExpr && len(v.Cells) == 0
}

// Len returns the number of elements in a list.  Len returns -1 for any value
// that is not a list.
func (v *LVal) Len() int {
	if v.Type != LSExpr {
		return -1
	}
	return len(v.Cells)
}

// IsBuiltin returns true if v is a primitive function implemented in go.
func (v *LVal) IsBuiltin() bool {
	return v.Type == LFun && v.Fun != nil && v.Fun.Builtin != nil
}

// Builtin returns the go implementation of a primitive function.
func (v *LVal) Builtin() LBuiltin {
	if !v.IsBuiltin() {
		return nil
	}
	return v.Fun.Builtin
}

// Env returns the environment captured by a closure.
func (v *LVal) Env() *LEnv {
	if v.Type != LFun || v.Fun == nil {
		return nil
	}
	return v.Fun.Env
}

// Params returns the parameter specification of a closure.
func (v *LVal) Params() *LVal {
	if v.Type != LFun || v.IsBuiltin() {
		return nil
	}
	return v.Cells[0]
}

// Body returns the body expression of a closure.
func (v *LVal) Body() *LVal {
	if v.Type != LFun || v.IsBuiltin() {
		return nil
	}
	return v.Cells[1]
}

// FunName returns the name used to describe v in call stacks and traces.
// Closures are described as lambda.
func (v *LVal) FunName() string {
	if v.Type != LFun {
		return ""
	}
	if v.IsBuiltin() {
		return v.Str
	}
	return "lambda"
}

// True returns true if v is anything other than the empty list.
func True(v *LVal) bool {
	return !v.IsNil()
}

// Not returns true if v is the empty list.
func Not(v *LVal) bool {
	return v.IsNil()
}

// Equal returns true if v and other represent the same value.  Symbols are
// equal when their names match and lists are compared element-wise.
// Primitives are equal when they share a name.  A closure is only equal to
// itself.
func (v *LVal) Equal(other *LVal) bool {
	if v == other {
		return true
	}
	if v.Type != other.Type {
		return false
	}
	switch v.Type {
	case LSymbol:
		return v.Str == other.Str
	case LSExpr:
		if len(v.Cells) != len(other.Cells) {
			return false
		}
		for i := range v.Cells {
			if !v.Cells[i].Equal(other.Cells[i]) {
				return false
			}
		}
		return true
	case LFun:
		if v.IsBuiltin() && other.IsBuiltin() {
			return v.Str == other.Str
		}
		return false
	}
	return false
}

func (v *LVal) String() string {
	switch v.Type {
	case LSymbol:
		return v.Str
	case LSExpr:
		if isQuote(v) {
			return "'" + v.Cells[1].String()
		}
		return exprString(v.Cells, "(", ")")
	case LFun:
		if v.IsBuiltin() {
			return v.Str
		}
		return exprString([]*LVal{Symbol("lambda"), v.Cells[0], v.Cells[1]}, "(", ")")
	default:
		return "<" + v.Type.String() + ">"
	}
}

func isQuote(v *LVal) bool {
	return len(v.Cells) == 2 && v.Cells[0].Type == LSymbol && v.Cells[0].Str == "quote"
}

func exprString(cells []*LVal, left string, right string) string {
	var buf bytes.Buffer
	buf.WriteString(left)
	for i, c := range cells {
		if i > 0 {
			buf.WriteString(" ")
		}
		buf.WriteString(c.String())
	}
	buf.WriteString(right)
	return buf.String()
}
