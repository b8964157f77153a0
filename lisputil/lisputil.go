// Copyright © 2018 The ELPS authors

// Package lisputil provides the entry points used to embed the interpreter
// in a host program.
package lisputil

import (
	"strings"

	"github.com/luthersystems/roots/lisp"
	"github.com/luthersystems/roots/parser"
)

// Function is a helper to construct builtins.
func Function(name string, formals *lisp.LVal, fun lisp.LBuiltin) *Builtin {
	return &Builtin{formals, fun, name}
}

// Builtin captures Go functions that are callable from lisp.
type Builtin struct {
	formals *lisp.LVal
	fun     lisp.LBuiltin
	name    string
}

var _ lisp.LBuiltinDef = (*Builtin)(nil)

// Name returns the name of a function.
func (fun *Builtin) Name() string {
	return fun.name
}

// Formals returns the formal arguments of a function.
func (fun *Builtin) Formals() *lisp.LVal {
	return fun.formals
}

// Eval evaluates a function on an environment.
func (fun *Builtin) Eval(env *lisp.LEnv, args *lisp.LVal) (*lisp.LVal, error) {
	return fun.fun(env, args)
}

// WithBuiltins returns a lisp.Config that binds funs in a new frame of the
// environment being configured.
func WithBuiltins(funs ...lisp.LBuiltinDef) lisp.Config {
	return func(env *lisp.LEnv) error {
		env.AddBuiltins(funs...)
		return nil
	}
}

// NewEnv returns a global environment containing the primitive functions
// which reads source using the default reader.  Any config is applied after
// the defaults.
func NewEnv(config ...lisp.Config) (*lisp.LEnv, error) {
	env := lisp.NewEnv(nil)
	config = append([]lisp.Config{lisp.WithReader(parser.NewReader())}, config...)
	err := lisp.InitializeUserEnv(env, config...)
	if err != nil {
		return nil, err
	}
	return env, nil
}

// ReadEval evaluates every top-level expression in src on a new global
// environment.  The printed form of each result that is not the empty list is
// returned, one per line.  Evaluation stops at the first error, which is
// returned without any output.
func ReadEval(src string, config ...lisp.Config) (string, error) {
	env, err := NewEnv(config...)
	if err != nil {
		return "", err
	}
	return EnvReadEval(env, "input", src)
}

// EnvReadEval is like ReadEval but evaluates src on env, keeping any
// definitions it makes.
func EnvReadEval(env *lisp.LEnv, name string, src string) (string, error) {
	vals, err := env.LoadString(name, src)
	if err != nil {
		return "", err
	}
	return FormatResults(vals), nil
}

// FormatResults joins the printed form of every value in vals that is not
// the empty list.  Each value is followed by a newline.
func FormatResults(vals []*lisp.LVal) string {
	var b strings.Builder
	for _, v := range vals {
		if v.IsNil() {
			continue
		}
		b.WriteString(v.String())
		b.WriteString("\n")
	}
	return b.String()
}
