// Copyright © 2018 The ELPS authors

package lisp

import (
	"strings"
)

// VarArgSymbol marks a formal parameter list position after which the
// remaining arguments are collected into a list.  It is only used to describe
// builtins in documentation.
const VarArgSymbol = "&rest"

// LBuiltinDef is a built-in function
type LBuiltinDef interface {
	Name() string
	Formals() *LVal
	Eval(env *LEnv, args *LVal) (*LVal, error)
}

type langBuiltin struct {
	name    string
	formals *LVal
	fun     LBuiltin
	docs    string
}

func (fun *langBuiltin) Name() string {
	return fun.name
}

func (fun *langBuiltin) Formals() *LVal {
	return fun.formals
}

func (fun *langBuiltin) Eval(env *LEnv, args *LVal) (*LVal, error) {
	return fun.fun(env, args)
}

func (fun *langBuiltin) Docstring() string {
	return fun.docs
}

var langBuiltins = []*langBuiltin{
	{"car", Formals("lis"), builtinCAR,
		`Returns the first element of a non-empty list. Signals an error
		if the argument is not a list or is empty.`},
	{"cdr", Formals("lis"), builtinCDR,
		`Returns a list of all elements after the first element of a
		non-empty list. Signals an error if the argument is not a list
		or is empty.`},
	{"atom", Formals("value"), builtinAtom,
		`Returns t if value is a symbol, a function or the empty list.
		Returns () for a non-empty list.`},
	{"eq", Formals("a", "b"), builtinEq,
		`Returns t if a and b are equal and () otherwise. Symbols are equal
		when their names match and lists are compared element by element.
		A function defined in lisp is only equal to itself.`},
	{"cons", Formals("head", "tail"), builtinCons,
		`Returns a new list with head prepended to the list tail. Signals
		an error if tail is not a list.`},
}

// DefaultBuiltins returns the default set of LBuiltinDefs added to LEnv
// objects when LEnv.AddBuiltins is called without arguments.
func DefaultBuiltins() []LBuiltinDef {
	ops := make([]LBuiltinDef, len(langBuiltins))
	for i := range langBuiltins {
		ops[i] = langBuiltins[i]
	}
	return ops
}

// Formals returns a list of symbols naming function parameters.
func Formals(argSymbols ...string) *LVal {
	cells := make([]*LVal, len(argSymbols))
	for i, sym := range argSymbols {
		cells[i] = Symbol(sym)
	}
	return SExpr(cells)
}

// Docstring returns the documentation for the primitive function or special
// operator called name.  An empty string is returned when name is neither.
func Docstring(name string) string {
	for _, f := range langBuiltins {
		if f.name == name {
			return normalizeDoc(f.docs)
		}
	}
	if op, ok := specialOps[name]; ok {
		return normalizeDoc(op.docs)
	}
	return ""
}

// DocFormals returns the documented formal parameters of the primitive
// function or special operator called name.
func DocFormals(name string) *LVal {
	for _, f := range langBuiltins {
		if f.name == name {
			return f.formals
		}
	}
	if op, ok := specialOps[name]; ok {
		return op.formals
	}
	return nil
}

// LanguageNames returns the names of all special operators followed by all
// primitive functions.
func LanguageNames() []string {
	names := make([]string, 0, len(langSpecialOps)+len(langBuiltins))
	for _, op := range langSpecialOps {
		names = append(names, op.name)
	}
	for _, f := range langBuiltins {
		names = append(names, f.name)
	}
	return names
}

// normalizeDoc joins the lines of a raw string literal docstring into
// paragraphs without source indentation.
func normalizeDoc(doc string) string {
	lines := strings.Split(doc, "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, " ")
}

func builtinCAR(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArgs(env, "car", args, 1)
	if err != nil {
		return nil, err
	}
	lis := args.Cells[0]
	if lis.Type != LSExpr || len(lis.Cells) == 0 {
		return nil, env.Errorf("passed non list to car: %v", lis)
	}
	return lis.Cells[0], nil
}

func builtinCDR(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArgs(env, "cdr", args, 1)
	if err != nil {
		return nil, err
	}
	lis := args.Cells[0]
	if lis.Type != LSExpr || len(lis.Cells) == 0 {
		return nil, env.Errorf("passed non list to cdr: %v", lis)
	}
	return SExpr(lis.Cells[1:]), nil
}

func builtinAtom(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArgs(env, "atom", args, 1)
	if err != nil {
		return nil, err
	}
	v := args.Cells[0]
	return Bool(v.Type != LSExpr || v.IsNil()), nil
}

func builtinEq(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArgs(env, "eq", args, 2)
	if err != nil {
		return nil, err
	}
	return Bool(args.Cells[0].Equal(args.Cells[1])), nil
}

func builtinCons(env *LEnv, args *LVal) (*LVal, error) {
	err := checkArgs(env, "cons", args, 2)
	if err != nil {
		return nil, err
	}
	head, tail := args.Cells[0], args.Cells[1]
	if tail.Type != LSExpr {
		return nil, env.Errorf("passed non list to cons: %v", tail)
	}
	cells := make([]*LVal, 0, 1+len(tail.Cells))
	cells = append(cells, head)
	cells = append(cells, tail.Cells...)
	return SExpr(cells), nil
}
