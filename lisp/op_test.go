// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"testing"

	"github.com/luthersystems/roots/lisptest"
)

func TestSpecialOp(t *testing.T) {
	tests := lisptest.TestSuite{
		{"quote", lisptest.TestSequence{
			{`(quote a)`, `a`},
			{`'a`, `a`},
			{`'(a b)`, `(a b)`},
			{`''a`, `'a`},
			{`'()`, `()`},
			{`'(quote a)`, `'a`},
			{`'(quote a b)`, `(quote a b)`},
			{`'(quote)`, `(quote)`},
			{`(quote)`, `eval error: quote: expected 1 argument(s), got 0`},
			{`(quote a b)`, `eval error: quote: expected 1 argument(s), got 2`},
		}},
		{"cond", lisptest.TestSequence{
			{`(cond ('() 'unused) ('t 'hit))`, `hit`},
			{`(cond ('t 'first) ('t 'second))`, `first`},
			{`(cond ('() (car '())) ('t 'ok))`, `ok`},
			{`(cond ('t 'a) (never-checked))`, `a`},
			{`(cond ('a 'truthy))`, `truthy`},
			{`(cond ('(()) 'truthy))`, `truthy`},
			{`(cond ((atom 'x) 'yes))`, `yes`},
			{`(cond ('() 'a))`, `eval error: cond does not match`},
			{`(cond)`, `eval error: cond does not match`},
			{`(cond a)`, `eval error: expected list in argument 0, got atom`},
			{`(cond ('() 'x) b)`, `eval error: expected list in argument 1, got atom`},
			{`(cond ('t))`, `eval error: cond: expected 2 argument(s), got 1`},
			{`(cond ('t 'a 'b))`, `eval error: cond: expected 2 argument(s), got 3`},
			{`(cond (undefined 'a))`, `eval error: undefined does not exist`},
		}},
		{"lambda", lisptest.TestSequence{
			{`(lambda (x) x)`, `(lambda (x) x)`},
			{`(lambda args (car args))`, `(lambda args (car args))`},
			{`((lambda (x) x) 'a)`, `a`},
			{`((lambda () 'k))`, `k`},
			{`((lambda x x) 'a 'b)`, `(a b)`},
			{`((lambda x x))`, `()`},
			{`((lambda (x y) (cons x y)) 'a '(b))`, `(a b)`},
			{`((lambda (x) x) 'a 'b)`, `a`},
			{`((lambda (x y) x) 'a)`, `a`},
			{`((lambda (x y) y) 'a)`, `eval error: y does not exist`},
			{`((lambda (x x) x) 'a 'b)`, `a`},
			{`((lambda (car) (car '(a))) 'shadowed)`, `eval error: not a function: shadowed`},
			{`(lambda (x))`, `eval error: lambda: expected 2 argument(s), got 1`},
			{`(lambda (x) x x)`, `eval error: lambda: expected 2 argument(s), got 3`},
			{`(lambda ('x) x)`, `eval error: parameter is not a symbol: 'x`},
		}},
		{"defun", lisptest.TestSequence{
			{`(defun f (x) (cons x '()))`, `()`},
			{`(f 'a)`, `(a)`},
			{`f`, `(lambda (x) (cons x '()))`},
			{`(defun f (x) x)`, `()`},
			{`(f 'a)`, `a`},
			{`(defun g (x))`, `eval error: defun: expected 3 argument(s), got 2`},
			{`(defun (g) (x) x)`, `eval error: defun: function name is not a symbol: (g)`},
			{`(defun g ((x)) x)`, `eval error: parameter is not a symbol: (x)`},
			{`g`, `eval error: g does not exist`},
		}},
		{"recursion", lisptest.TestSequence{
			{`(defun last (l) (cond ((eq (cdr l) '()) (car l)) ('t (last (cdr l)))))`, `()`},
			{`(last '(a b c))`, `c`},
		}},
		{"special operators are not shadowed", lisptest.TestSequence{
			{`(defun quote (x) 'shadowed)`, `()`},
			{`(quote a)`, `a`},
			{`quote`, `(lambda (x) 'shadowed)`},
		}},
		{"application", lisptest.TestSequence{
			{`()`, `()`},
			{`('a 'b)`, `eval error: not a function: a`},
			{`(() 'x)`, `eval error: not a function: ()`},
			{`(undefined 'x)`, `eval error: undefined does not exist`},
			{`((car (cons car '())) '(a b))`, `a`},
		}},
		{"lexical closure", lisptest.TestSequence{
			{`(defun make-adder (n) (lambda (x) (cons n x)))`, `()`},
			{`((make-adder 'a) '(b))`, `(a b)`},
			{`(make-adder 'a)`, `(lambda (x) (cons n x))`},
			{`n`, `eval error: n does not exist`},
			{`(defun caller (n) ((make-adder 'inner) '()))`, `()`},
			{`(caller 'outer)`, `(inner)`},
		}},
		{"dynamic scope is not used", lisptest.TestSequence{
			{`(defun get-x () x)`, `()`},
			{`((lambda (x) (get-x)) 'a)`, `eval error: x does not exist`},
		}},
		{"forward reference", lisptest.TestSequence{
			{`(defun f (x) (g x))`, `()`},
			{`(f 'a)`, `eval error: g does not exist`},
			{`(defun g (x) (cons x '(from g)))`, `()`},
			{`(f 'a)`, `(a from g)`},
			{`(defun g (x) (cons x '(redefined)))`, `()`},
			{`(f 'a)`, `(a redefined)`},
		}},
		{"mutual recursion", lisptest.TestSequence{
			{`(defun even (l) (cond ((eq l '()) 't) ('t (odd (cdr l)))))`, `()`},
			{`(defun odd (l) (cond ((eq l '()) '()) ('t (even (cdr l)))))`, `()`},
			{`(even '(a b c d))`, `t`},
			{`(odd '(a b c d))`, `()`},
		}},
		{"nested defun", lisptest.TestSequence{
			{`(defun outer () (cond ((defun inner () 'in) 'unused) ('t (inner))))`, `()`},
			{`(outer)`, `in`},
			{`(inner)`, `eval error: inner does not exist`},
		}},
		{"unbound", lisptest.TestSequence{
			{`x`, `eval error: x does not exist`},
			{`t`, `eval error: t does not exist`},
		}},
	}
	lisptest.RunTestSuite(t, tests)
}
