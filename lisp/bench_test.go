// Copyright © 2018 The ELPS authors

package lisp_test

import (
	"testing"

	"github.com/luthersystems/roots/docs"
	"github.com/luthersystems/roots/lisp"
	"github.com/luthersystems/roots/lisptest"
	"github.com/luthersystems/roots/parser"
)

const evalExamplePath = "../docs/examples/eval.lisp"

func BenchmarkParseRecursiveDescent(b *testing.B) {
	lisptest.BenchmarkParse(evalExamplePath, func() lisp.Reader {
		return parser.NewReader()
	})(b)
}

func BenchmarkParseParsec(b *testing.B) {
	lisptest.BenchmarkParse(evalExamplePath, func() lisp.Reader {
		return parser.NewReader(parser.WithParsec())
	})(b)
}

func BenchmarkExamples(b *testing.B) {
	for _, name := range docs.Examples() {
		src, _ := docs.Example(name)
		b.Run(name, func(b *testing.B) {
			lisptest.RunBenchmark(b, src)
		})
	}
}
