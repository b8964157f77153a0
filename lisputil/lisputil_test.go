// Copyright © 2018 The ELPS authors

package lisputil_test

import (
	"testing"

	"github.com/luthersystems/roots/docs"
	"github.com/luthersystems/roots/lisp"
	"github.com/luthersystems/roots/lisputil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadEval(t *testing.T) {
	tests := []struct {
		name string
		src  string
		out  string
		err  string
	}{
		{"empty", "", "", ""},
		{"whitespace", " \n\t", "", ""},
		{"symbol", "'a", "a\n", ""},
		{"nil results are not printed", "'() 'a '()", "a\n", ""},
		{"defun prints nothing", "(defun f (x) x) (f 'b)", "b\n", ""},
		{"quote sugar", "''a", "'a\n", ""},
		{"closure", "(lambda (x) (car x))", "(lambda (x) (car x))\n", ""},
		{"primitive", "cons", "cons\n", ""},
		{"first error aborts", "'a (car 'b) 'c", "", "eval error: passed non list to car: b"},
		{"read error", "'a (b", "", "read error: unmatched parens"},
		{"stray paren", ")", "", "read error: unexpected )"},
		{"unbound", "x", "", "eval error: x does not exist"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			out, err := lisputil.ReadEval(test.src)
			if test.err != "" {
				assert.EqualError(t, err, test.err)
				assert.Empty(t, out)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.out, out)
		})
	}
}

func TestReadEvalExamples(t *testing.T) {
	expect := map[string]string{
		"eval":   "(1)\n",
		"notnot": "t\n",
		"subst":  "(to to x (x to))\n",
	}
	for _, name := range docs.Examples() {
		src, ok := docs.Example(name)
		require.True(t, ok)
		out, err := lisputil.ReadEval(src)
		require.NoError(t, err, name)
		assert.Equal(t, expect[name], out, name)
	}
}

func TestReadEvalIsolated(t *testing.T) {
	_, err := lisputil.ReadEval("(defun f () 'f)")
	require.NoError(t, err)
	_, err = lisputil.ReadEval("(f)")
	assert.EqualError(t, err, "eval error: f does not exist")
}

func TestEnvReadEval(t *testing.T) {
	env, err := lisputil.NewEnv()
	require.NoError(t, err)
	out, err := lisputil.EnvReadEval(env, "one", "(defun f () 'f)")
	require.NoError(t, err)
	assert.Empty(t, out)
	out, err = lisputil.EnvReadEval(env, "two", "(f)")
	require.NoError(t, err)
	assert.Equal(t, "f\n", out)
}

func TestWithBuiltins(t *testing.T) {
	list := lisputil.Function("list", lisp.Formals(lisp.VarArgSymbol, "values"),
		func(env *lisp.LEnv, args *lisp.LVal) (*lisp.LVal, error) {
			return args, nil
		})
	assert.Equal(t, "list", list.Name())
	assert.Equal(t, "(&rest values)", list.Formals().String())

	out, err := lisputil.ReadEval("(list 'a '(b) (list))", lisputil.WithBuiltins(list))
	require.NoError(t, err)
	assert.Equal(t, "(a (b) ())\n", out)

	_, err = lisputil.ReadEval("(list 'a)")
	assert.EqualError(t, err, "eval error: list does not exist")
}

func TestReadEvalStackLimit(t *testing.T) {
	_, err := lisputil.ReadEval("(defun f (x) (f x)) (f 'a)", lisp.WithMaximumStackHeight(50))
	assert.EqualError(t, err, "eval error: stack overflow (height 51)")
	assert.True(t, lisp.IsEvalError(err))
}

func TestFormatResults(t *testing.T) {
	vals := []*lisp.LVal{lisp.Symbol("a"), lisp.Nil(), lisp.SExpr([]*lisp.LVal{lisp.Symbol("b")})}
	assert.Equal(t, "a\n(b)\n", lisputil.FormatResults(vals))
	assert.Equal(t, "", lisputil.FormatResults(nil))
}
