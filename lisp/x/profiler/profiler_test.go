package profiler_test

import (
	"testing"

	"github.com/luthersystems/roots/lisp"
	"github.com/luthersystems/roots/lisptest"
	"github.com/stretchr/testify/require"
)

const testLisp = `(defun rev-onto (l acc)
  (cond ((eq l '()) acc)
        ('t (rev-onto (cdr l) (cons (car l) acc)))))
(defun reverse (l) (rev-onto l '()))
(reverse '(a b c))
`

func runTestLisp(t *testing.T, env *lisp.LEnv) {
	vals, err := env.LoadString("test.lisp", testLisp)
	require.NoError(t, err)
	require.Len(t, vals, 3)
	require.Equal(t, "(c b a)", vals[2].String())
}

func newEnv(t *testing.T) *lisp.LEnv {
	return lisptest.NewEnv(t)
}
