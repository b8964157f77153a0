// Copyright © 2024 The ELPS authors

package cmd

import "github.com/luthersystems/roots/lisp"

// Option configures an exported command factory (DocCommand).
type Option func(*cmdConfig)

type cmdConfig struct {
	env *lisp.LEnv
}

// WithEnv injects a fully configured LEnv.  For the doc command this is the
// environment used to look up functions, so that builtins provided by an
// embedding host can be described.
func WithEnv(env *lisp.LEnv) Option {
	return func(c *cmdConfig) { c.env = env }
}

func newCmdConfig(opts ...Option) *cmdConfig {
	c := &cmdConfig{}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
