// Copyright © 2018 The ELPS authors

package lisp

import (
	"bytes"
	"io"
	"strings"

	"github.com/luthersystems/roots/parser/token"
)

// InitializeUserEnv binds the primitive functions in the first scope frame of
// env and applies any config to it.  The special operators are not bound in
// the environment, they are recognized by name during evaluation.
func InitializeUserEnv(env *LEnv, config ...Config) error {
	env.AddBuiltins()
	for _, fn := range config {
		err := fn(env)
		if err != nil {
			return err
		}
	}
	return nil
}

// Binding associates a name with a value inside a Scope.
type Binding struct {
	Name  string
	Value *LVal
}

// Scope is one frame of bindings.  When a name is bound more than once in the
// same Scope the earliest binding is the one that is visible.
type Scope []Binding

// Lookup returns the first value bound to name in s.
func (s Scope) Lookup(name string) (*LVal, bool) {
	for i := range s {
		if s[i].Name == name {
			return s[i].Value, true
		}
	}
	return nil, false
}

// LEnv is a lisp environment.  Frames are ordered outermost first.  Lookups
// that fail in every frame continue in Parent.
type LEnv struct {
	Loc     *token.Location
	Frames  []Scope
	Parent  *LEnv
	Runtime *Runtime
	ID      uint
}

// NewEnvRuntime initializes a new LEnv, like NewEnv, but it explicitly
// specifies the runtime to use.  NewEnvRuntime is only suitable for creating
// root LEnv object, so it does not take a parent argument.  When rt is nil
// StandardRuntime() called to create a new Runtime for the returned LEnv.
func NewEnvRuntime(rt *Runtime) *LEnv {
	if rt == nil {
		rt = StandardRuntime()
	}
	return &LEnv{
		ID:      rt.GenEnvID(),
		Runtime: rt,
	}
}

// NewEnv returns initializes and returns a new LEnv.  A nil parent creates a
// root environment with a new standard runtime.
func NewEnv(parent *LEnv) *LEnv {
	if parent == nil {
		return NewEnvRuntime(nil)
	}
	return &LEnv{
		ID:      parent.Runtime.GenEnvID(),
		Parent:  parent,
		Runtime: parent.Runtime,
		Loc:     parent.Loc,
	}
}

// PushScope adds a new innermost frame to env.
func (env *LEnv) PushScope(s Scope) {
	env.Frames = append(env.Frames, s)
}

// Get takes an LSymbol k and returns the LVal it is bound to in env.
func (env *LEnv) Get(k *LVal) (*LVal, error) {
	if k.Type != LSymbol {
		return nil, env.Errorf("key is not a symbol: %v", k.Type)
	}
	v, ok := env.get(k.Str)
	if !ok {
		return nil, env.Errorf("%s does not exist", k.Str)
	}
	return v, nil
}

func (env *LEnv) get(name string) (*LVal, bool) {
	for e := env; e != nil; e = e.Parent {
		for i := len(e.Frames) - 1; i >= 0; i-- {
			v, ok := e.Frames[i].Lookup(name)
			if ok {
				return v, true
			}
		}
	}
	return nil, false
}

// Put binds k to v in a new single-binding frame pushed onto env.  Earlier
// bindings of k become shadowed for every closure sharing env.
func (env *LEnv) Put(k, v *LVal) error {
	if k.Type != LSymbol {
		return env.Errorf("key is not a symbol: %v", k.Type)
	}
	env.PushScope(Scope{{Name: k.Str, Value: v}})
	return nil
}

// Symbols returns the names visible from env, innermost first and without
// duplicates.
func (env *LEnv) Symbols() []string {
	var names []string
	seen := make(map[string]bool)
	for e := env; e != nil; e = e.Parent {
		for i := len(e.Frames) - 1; i >= 0; i-- {
			for _, b := range e.Frames[i] {
				if seen[b.Name] {
					continue
				}
				seen[b.Name] = true
				names = append(names, b.Name)
			}
		}
	}
	return names
}

// AddBuiltins binds the primitive functions in a single frame of env.
func (env *LEnv) AddBuiltins(funs ...LBuiltinDef) {
	if len(funs) == 0 {
		funs = DefaultBuiltins()
	}
	scope := make(Scope, 0, len(funs))
	for _, f := range funs {
		scope = append(scope, Binding{Name: f.Name(), Value: Fun(f.Name(), f.Eval)})
	}
	env.PushScope(scope)
}

// LoadString reads exprs using env.Runtime.Reader and evaluates each
// top-level expression against env.  Evaluation stops at the first error.
// Every value produced before the error is returned.
func (env *LEnv) LoadString(name, exprs string) ([]*LVal, error) {
	return env.Load(name, strings.NewReader(exprs))
}

// LoadFile uses env.Runtime.Library to read a lisp source file and evaluate
// the expressions it contains.
func (env *LEnv) LoadFile(loc string) ([]*LVal, error) {
	if env.Runtime.Library == nil {
		return nil, env.Errorf("no source library in environment runtime")
	}
	name, loc, src, err := env.Runtime.Library.LoadSource(loc)
	if err != nil {
		return nil, env.Errorf("library error: %v", err)
	}
	return env.LoadLocation(name, loc, bytes.NewReader(src))
}

// Load reads LVals from r and evaluates them in order.  No expression is
// evaluated if r contains a read error.  If env.Runtime.Reader has not been
// set then an error will be returned by Load.
func (env *LEnv) Load(name string, r io.Reader) ([]*LVal, error) {
	if env.Runtime.Reader == nil {
		return nil, env.Errorf("no reader for environment runtime")
	}
	exprs, err := env.Runtime.Reader.Read(name, r)
	if err != nil {
		return nil, err
	}
	return env.load(exprs)
}

// LoadLocation is like Load but associates r with a physical location when
// the runtime reader supports it.
func (env *LEnv) LoadLocation(name string, loc string, r io.Reader) ([]*LVal, error) {
	if env.Runtime.Reader == nil {
		return nil, env.Errorf("no reader for environment runtime")
	}
	reader, ok := env.Runtime.Reader.(LocationReader)
	if !ok {
		return env.Load(name, r)
	}
	exprs, err := reader.ReadLocation(name, loc, r)
	if err != nil {
		return nil, err
	}
	return env.load(exprs)
}

func (env *LEnv) load(exprs []*LVal) ([]*LVal, error) {
	results := make([]*LVal, 0, len(exprs))
	for _, expr := range exprs {
		v, err := env.Eval(expr)
		if err != nil {
			return results, err
		}
		results = append(results, v)
	}
	return results, nil
}

// Eval evaluates v in the context (scope) of env and returns the resulting
// LVal.  Eval does not modify v.
func (env *LEnv) Eval(v *LVal) (*LVal, error) {
	switch v.Type {
	case LSymbol:
		env.Loc = v.Source
		return env.Get(v)
	case LSExpr:
		return env.EvalSExpr(v)
	case LFun:
		return v, nil
	default:
		return nil, env.Errorf("invalid value: %v", v.Type)
	}
}

// EvalSExpr evaluates s and returns the resulting LVal.  The empty list
// evaluates to itself.  A list headed by the name of a special operator is
// passed to the operator unevaluated.  Any other list is a function
// application.
func (env *LEnv) EvalSExpr(s *LVal) (*LVal, error) {
	if s.Type != LSExpr {
		return nil, env.Errorf("not an s-expression")
	}
	if len(s.Cells) == 0 {
		return s, nil
	}
	env.Loc = s.Source
	head := s.Cells[0]
	if head.Type == LSymbol {
		op, ok := specialOps[head.Str]
		if ok {
			return op.Eval(env, SExpr(s.Cells[1:]))
		}
	}
	call, err := env.evalSExprCells(s)
	if err != nil {
		return nil, err
	}
	env.Loc = s.Source
	fun := call.Cells[0]
	if fun.Type != LFun {
		return nil, env.Errorf("not a function: %v", fun)
	}
	return env.FunCall(callName(head, fun), fun, SExpr(call.Cells[1:]))
}

func callName(head, fun *LVal) string {
	if head.Type == LSymbol {
		return head.Str
	}
	return fun.FunName()
}

// evalSExprCells evaluates every cell of s in order, left to right, against
// env.
func (env *LEnv) evalSExprCells(s *LVal) (*LVal, error) {
	cells := make([]*LVal, len(s.Cells))
	for i, c := range s.Cells {
		v, err := env.Eval(c)
		if err != nil {
			return nil, err
		}
		cells[i] = v
	}
	return SExpr(cells), nil
}

// FunCall invokes fun with the already evaluated argument list args.  The
// name is recorded in the call stack before any profiler observes the call.
func (env *LEnv) FunCall(name string, fun, args *LVal) (*LVal, error) {
	if fun.Type != LFun {
		return nil, env.Errorf("not a function: %v", fun)
	}

	// Push a frame onto the stack to represent the function's execution.
	err := env.Runtime.Stack.Push(env.Loc, name)
	if err != nil {
		return nil, env.Error(err)
	}
	defer env.Runtime.Stack.Pop()

	if env.Runtime.Profiler != nil {
		defer env.trace(fun)()
	}

	if fun.IsBuiltin() {
		return fun.Fun.Builtin(env, args)
	}
	callenv, err := env.bind(fun, args)
	if err != nil {
		return nil, err
	}
	return callenv.Eval(fun.Body())
}

func (env *LEnv) trace(fun *LVal) func() {
	if env.Runtime.Profiler == nil {
		return func() {}
	}
	return env.Runtime.Profiler.Start(fun)
}

// bind returns a new environment, a child of the closure's captured
// environment, with a single frame binding the parameters of fun to args.  A
// symbol parameter specification binds the entire argument list.  Otherwise
// parameters are bound positionally.  Extra arguments are ignored and
// parameters without an argument are left unbound.
func (env *LEnv) bind(fun, args *LVal) (*LEnv, error) {
	params := fun.Params()
	callenv := NewEnv(fun.Env())
	callenv.Loc = env.Loc
	switch params.Type {
	case LSymbol:
		callenv.PushScope(Scope{{Name: params.Str, Value: args}})
	case LSExpr:
		n := min(len(params.Cells), len(args.Cells))
		scope := make(Scope, n)
		for i := 0; i < n; i++ {
			scope[i] = Binding{Name: params.Cells[i].Str, Value: args.Cells[i]}
		}
		callenv.PushScope(scope)
	default:
		return nil, env.Errorf("invalid parameter specification: %v", params)
	}
	return callenv, nil
}
