// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"testing"

	"github.com/luthersystems/roots/lisp"
	"github.com/luthersystems/roots/lisptest"
	"github.com/stretchr/testify/assert"
)

func TestBuiltins(t *testing.T) {
	tests := lisptest.TestSuite{
		{"car", lisptest.TestSequence{
			{`(car '(a b c))`, `a`},
			{`(car '((a b) c))`, `(a b)`},
			{`(car '(()))`, `()`},
			{`(car '())`, `eval error: passed non list to car: ()`},
			{`(car 'a)`, `eval error: passed non list to car: a`},
			{`(car)`, `eval error: car: expected 1 argument(s), got 0`},
			{`(car '(a) '(b))`, `eval error: car: expected 1 argument(s), got 2`},
		}},
		{"cdr", lisptest.TestSequence{
			{`(cdr '(a b c))`, `(b c)`},
			{`(cdr '(a))`, `()`},
			{`(cdr '())`, `eval error: passed non list to cdr: ()`},
			{`(cdr 'a)`, `eval error: passed non list to cdr: a`},
			{`(cdr car)`, `eval error: passed non list to cdr: car`},
		}},
		{"atom", lisptest.TestSequence{
			{`(atom 'a)`, `t`},
			{`(atom '())`, `t`},
			{`(atom '(a))`, `()`},
			{`(atom '(()))`, `()`},
			{`(atom car)`, `t`},
			{`(atom (lambda (x) x))`, `t`},
			{`(atom)`, `eval error: atom: expected 1 argument(s), got 0`},
		}},
		{"eq", lisptest.TestSequence{
			{`(eq 'a 'a)`, `t`},
			{`(eq 'a 'b)`, `()`},
			{`(eq '() '())`, `t`},
			{`(eq '(a (b)) '(a (b)))`, `t`},
			{`(eq '(a (b)) '(a (c)))`, `()`},
			{`(eq '(a) '(a b))`, `()`},
			{`(eq 'a '(a))`, `()`},
			{`(eq car car)`, `t`},
			{`(eq car cdr)`, `()`},
			{`(defun f (x) x)`, `()`},
			{`(eq f f)`, `t`},
			{`(eq (lambda (x) x) (lambda (x) x))`, `()`},
			{`(eq 'a)`, `eval error: eq: expected 2 argument(s), got 1`},
		}},
		{"cons", lisptest.TestSequence{
			{`(cons 'a '(b c))`, `(a b c)`},
			{`(cons 'a '())`, `(a)`},
			{`(cons '(a) '(b))`, `((a) b)`},
			{`(cons 'quote '(x))`, `'x`},
			{`(cons 'quote '(x y))`, `(quote x y)`},
			{`(cons 'a 'b)`, `eval error: passed non list to cons: b`},
			{`(cons 'a car)`, `eval error: passed non list to cons: car`},
		}},
		{"cons inverts car and cdr", lisptest.TestSequence{
			{`(defun rebuild (l) (cons (car l) (cdr l)))`, `()`},
			{`(rebuild '(a b c))`, `(a b c)`},
			{`(eq (rebuild '(a (b) c)) '(a (b) c))`, `t`},
		}},
		{"primitives are values", lisptest.TestSequence{
			{`car`, `car`},
			{`((lambda (f) (f '(a b))) cdr)`, `(b)`},
			{`(cons car '())`, `(car)`},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}

func TestDocstring(t *testing.T) {
	for _, name := range lisp.LanguageNames() {
		assert.NotEmpty(t, lisp.Docstring(name), name)
		assert.NotNil(t, lisp.DocFormals(name), name)
		assert.NotContains(t, lisp.Docstring(name), "\n", name)
	}
	assert.Equal(t, []string{"quote", "cond", "lambda", "defun", "car", "cdr", "atom", "eq", "cons"}, lisp.LanguageNames())
	assert.Empty(t, lisp.Docstring("no-such-function"))
	assert.Nil(t, lisp.DocFormals("no-such-function"))
	assert.Equal(t, "(a b)", lisp.DocFormals("eq").String())
	assert.True(t, lisp.IsSpecialOp("cond"))
	assert.False(t, lisp.IsSpecialOp("car"))
}
