// Copyright © 2024 The ELPS authors

package parser

import (
	"strings"
	"testing"

	"github.com/luthersystems/roots/lisp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReader_Standard(t *testing.T) {
	r := NewReader()
	exprs, err := r.Read("test", strings.NewReader("(cons 'a '(b))"))
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	assert.Equal(t, lisp.LSExpr, exprs[0].Type)
	_, ok := r.(lisp.LocationReader)
	assert.True(t, ok, "standard reader should implement LocationReader")
}

func TestNewReader_Parsec(t *testing.T) {
	r := NewReader(WithParsec())
	exprs, err := r.Read("test", strings.NewReader("(cons 'a '(b))"))
	require.NoError(t, err)
	require.Len(t, exprs, 1)
	assert.Equal(t, "(cons 'a '(b))", exprs[0].String())
}

func TestNewReaderName(t *testing.T) {
	for _, name := range []string{"", ReaderRecursiveDescent, ReaderParsec} {
		r, ok := NewReaderName(name)
		if assert.True(t, ok, name) {
			assert.NotNil(t, r, name)
		}
	}
	_, ok := NewReaderName("yacc")
	assert.False(t, ok)
}

func TestReadersAgree(t *testing.T) {
	sources := []string{
		``,
		`x`,
		`'x`,
		`()`,
		`'()`,
		`(a b c)`,
		`(quote x)`,
		`''x`,
		`(a'b)`,
		`(defun subst (x y z)
		   (cond ((atom z) (cond ((eq z y) x) ('t z)))
		         ('t (cons (subst x y (car z)) (subst x y (cdr z))))))`,
		"(a\n\t(b c)\n  'd)",
		`(1 2) (3 4) five`,
		"(a\u00a0b)",
		"(a\u3000b)",
		"'x\u2028'y\u0085(\u00a0)",
		"(a\vb)",
		"\u3000λ\u00a0",
	}
	rd := NewReader()
	pc := NewReader(WithParsec())
	for _, src := range sources {
		want, err := rd.Read("test", strings.NewReader(src))
		require.NoError(t, err, src)
		got, err := pc.Read("test", strings.NewReader(src))
		require.NoError(t, err, src)
		require.Len(t, got, len(want), src)
		for i := range want {
			assert.True(t, want[i].Equal(got[i]), "%q: %v != %v", src, want[i], got[i])
		}
	}
}

func TestReadersRejectMalformed(t *testing.T) {
	sources := []string{
		`(a (b)`,
		`)`,
		`(`,
		`'`,
		`(a))`,
	}
	for _, reader := range []lisp.Reader{NewReader(), NewReader(WithParsec())} {
		for _, src := range sources {
			_, err := reader.Read("test", strings.NewReader(src))
			if assert.Error(t, err, src) {
				assert.True(t, lisp.IsReadError(err), "%q: %v", src, err)
			}
		}
	}
}

func TestReadersAgreeOnErrors(t *testing.T) {
	sources := []string{
		`('))`,
		`(a ')`,
		`('`,
		`(a (b)`,
		`)`,
		`(`,
		`'`,
		`(a))`,
		`x '(a) ')`,
		"(a\u00a0(b)",
	}
	rd := NewReader()
	pc := NewReader(WithParsec())
	for _, src := range sources {
		_, want := rd.Read("test", strings.NewReader(src))
		require.Error(t, want, src)
		_, got := pc.Read("test", strings.NewReader(src))
		require.Error(t, got, src)
		assert.Equal(t, want.Error(), got.Error(), "%q", src)
	}
}
