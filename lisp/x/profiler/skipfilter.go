package profiler

import (
	"regexp"

	"github.com/luthersystems/roots/lisp"
)

type SkipFilter func(fun *lisp.LVal) bool

func defaultSkipFilter(fun *lisp.LVal) bool {
	switch fun.Type {
	case lisp.LFun:
		return false
	default:
		return true
	}
}

// WithSkipFilter sets the filter for tracing spans.
func WithSkipFilter(skipFilter SkipFilter) Option {
	return func(p *profiler) {
		p.skipFilter = skipFilter
	}
}

// WithPrimitiveFilter filters out spans for primitive functions so that only
// functions defined in lisp are traced.
func WithPrimitiveFilter() Option {
	return WithSkipFilter(primitiveSkipFilter)
}

func primitiveSkipFilter(fun *lisp.LVal) bool {
	return fun.IsBuiltin()
}

// WithNameFilter filters to only include spans for functions called by a name
// matching re.  Functions applied without a name are called lambda.
func WithNameFilter(re *regexp.Regexp) Option {
	return func(p *profiler) {
		p.skipFilter = func(fun *lisp.LVal) bool {
			return !re.MatchString(defaultFunName(p.runtime, fun))
		}
	}
}
