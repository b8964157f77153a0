// Copyright © 2018 The ELPS authors

package lisp

import (
	"io"
	"os"
	"sync/atomic"
)

// Runtime is an object underlying a family of tree of LEnv values.  It is
// responsible for holding shared environment state, generating identifiers,
// and writing debugging output to a stream (typically os.Stderr).
type Runtime struct {
	Stderr   io.Writer
	Stack    *CallStack
	Reader   Reader
	Library  SourceLibrary
	Profiler Profiler
	numenv   atomicCounter
}

// StandardRuntime returns a new Runtime with an empty call stack and Stderr
// set to os.Stderr.
func StandardRuntime() *Runtime {
	return &Runtime{
		Stderr: os.Stderr,
		Stack:  &CallStack{},
	}
}

func (r *Runtime) GenEnvID() uint {
	return r.numenv.Add(1)
}

type atomicCounter struct {
	n atomic.Uint64
}

func (c *atomicCounter) Add(delta uint) uint {
	return uint(c.n.Add(uint64(delta)))
}
