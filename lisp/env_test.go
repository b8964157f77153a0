// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"strings"
	"testing"

	"github.com/luthersystems/roots/lisp"
	"github.com/luthersystems/roots/lisptest"
	"github.com/luthersystems/roots/parser"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvLookup(t *testing.T) {
	root := lisp.NewEnv(nil)
	require.NoError(t, root.Put(lisp.Symbol("x"), lisp.Symbol("outer")))

	child := lisp.NewEnv(root)
	assert.Equal(t, root.Runtime, child.Runtime)
	assert.NotEqual(t, root.ID, child.ID)

	v, err := child.Get(lisp.Symbol("x"))
	require.NoError(t, err)
	assert.Equal(t, "outer", v.String())

	child.PushScope(lisp.Scope{{Name: "x", Value: lisp.Symbol("inner")}})
	v, err = child.Get(lisp.Symbol("x"))
	require.NoError(t, err)
	assert.Equal(t, "inner", v.String())

	v, err = root.Get(lisp.Symbol("x"))
	require.NoError(t, err)
	assert.Equal(t, "outer", v.String())

	_, err = child.Get(lisp.Symbol("y"))
	assert.EqualError(t, err, "eval error: y does not exist")
	assert.True(t, lisp.IsEvalError(err))
}

func TestEnvPutShadows(t *testing.T) {
	env := lisp.NewEnv(nil)
	require.NoError(t, env.Put(lisp.Symbol("x"), lisp.Symbol("a")))
	require.NoError(t, env.Put(lisp.Symbol("x"), lisp.Symbol("b")))
	assert.Len(t, env.Frames, 2)
	v, err := env.Get(lisp.Symbol("x"))
	require.NoError(t, err)
	assert.Equal(t, "b", v.String())

	err = env.Put(lisp.Nil(), lisp.Symbol("a"))
	assert.Error(t, err)
}

func TestScopeFirstBindingWins(t *testing.T) {
	s := lisp.Scope{
		{Name: "x", Value: lisp.Symbol("first")},
		{Name: "x", Value: lisp.Symbol("second")},
	}
	v, ok := s.Lookup("x")
	require.True(t, ok)
	assert.Equal(t, "first", v.String())
	_, ok = s.Lookup("y")
	assert.False(t, ok)
}

func TestEnvSymbols(t *testing.T) {
	env := lisptest.NewEnv(t)
	_, err := env.LoadString("test", `(defun car (x) x) (defun f () 'f)`)
	require.NoError(t, err)
	names := env.Symbols()
	assert.Equal(t, []string{"f", "car", "cdr", "atom", "eq", "cons"}, names)
}

func TestInitializeUserEnv(t *testing.T) {
	env := lisp.NewEnv(nil)
	called := false
	err := lisp.InitializeUserEnv(env,
		lisp.WithReader(parser.NewReader()),
		lisp.WithLoader(func(env *lisp.LEnv) error {
			called = true
			_, err := env.LoadString("prelude", `(defun id (x) x)`)
			return err
		}))
	require.NoError(t, err)
	assert.True(t, called)
	vals, err := env.LoadString("test", `(id 'a)`)
	require.NoError(t, err)
	require.Len(t, vals, 1)
	assert.Equal(t, "a", vals[0].String())

	env = lisp.NewEnv(nil)
	err = lisp.InitializeUserEnv(env, lisp.WithLoader(func(env *lisp.LEnv) error {
		return env.Errorf("broken prelude")
	}))
	assert.EqualError(t, err, "eval error: broken prelude")
}

func TestLoadString(t *testing.T) {
	env := lisptest.NewEnv(t)
	vals, err := env.LoadString("test", `(defun f (x) (cons x '())) (f 'a) (f 'b)`)
	require.NoError(t, err)
	var out []string
	for _, v := range vals {
		out = append(out, v.String())
	}
	assert.Equal(t, []string{"()", "(a)", "(b)"}, out)

	vals, err = env.LoadString("test", "")
	assert.NoError(t, err)
	assert.Empty(t, vals)

	vals, err = env.LoadString("test", `'a (car '()) 'b`)
	assert.EqualError(t, err, "eval error: passed non list to car: ()")
	require.Len(t, vals, 1)
	assert.Equal(t, "a", vals[0].String())

	// Nothing is evaluated when the source cannot be read.
	vals, err = env.LoadString("test", `(defun g () 'g) (`)
	assert.True(t, lisp.IsReadError(err))
	assert.Empty(t, vals)
	_, err = env.Get(lisp.Symbol("g"))
	assert.Error(t, err)
}

func TestLoadNoReader(t *testing.T) {
	env := lisp.NewEnv(nil)
	require.NoError(t, lisp.InitializeUserEnv(env))
	_, err := env.Load("test", strings.NewReader("'a"))
	assert.EqualError(t, err, "eval error: no reader for environment runtime")
	_, err = env.LoadFile("test.lisp")
	assert.EqualError(t, err, "eval error: no source library in environment runtime")
}

func TestEvalDoesNotModifyInput(t *testing.T) {
	env := lisptest.NewEnv(t)
	exprs, err := env.Runtime.Reader.Read("test", strings.NewReader(`((lambda (x) (cons x x)) '(a))`))
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	before := exprs[0].String()
	v, err := env.Eval(exprs[0])
	require.NoError(t, err)
	assert.Equal(t, "((a) a)", v.String())
	assert.Equal(t, before, exprs[0].String())
}

func TestClosureSharesEnv(t *testing.T) {
	env := lisptest.NewEnv(t)
	f := lisp.Lambda(env, lisp.Formals(), lisp.Symbol("late"))
	require.NoError(t, env.Put(lisp.Symbol("f"), f))
	_, err := env.LoadString("test", `(f)`)
	assert.EqualError(t, err, "eval error: late does not exist")
	require.NoError(t, env.Put(lisp.Symbol("late"), lisp.Symbol("bound")))
	vals, err := env.LoadString("test", `(f)`)
	require.NoError(t, err)
	assert.Equal(t, "bound", vals[0].String())
	assert.Same(t, env, f.Env())
}
