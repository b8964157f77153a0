// Copyright © 2018 The ELPS authors

package parser

import (
	"github.com/luthersystems/roots/lisp"
	"github.com/luthersystems/roots/parser/rdparser"
	"github.com/luthersystems/roots/parser/regexparser"
)

// Reader names accepted by NewReaderName.
const (
	ReaderRecursiveDescent = "rd"
	ReaderParsec           = "parsec"
)

type readerConfig struct {
	parsec bool
}

// Option configures the reader returned by NewReader.
type Option func(*readerConfig)

// WithParsec selects the combinator reader from package regexparser instead
// of the default recursive-descent reader.
func WithParsec() Option {
	return func(c *readerConfig) {
		c.parsec = true
	}
}

// NewReader returns a new lisp.Reader
func NewReader(opts ...Option) lisp.Reader {
	var cfg readerConfig
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.parsec {
		return regexparser.NewReader()
	}
	return rdparser.NewReader()
}

// NewReaderName returns the lisp.Reader called name.  An empty name selects
// the default reader.  NewReaderName returns false if name is unknown.
func NewReaderName(name string) (lisp.Reader, bool) {
	switch name {
	case "", ReaderRecursiveDescent:
		return NewReader(), true
	case ReaderParsec:
		return NewReader(WithParsec()), true
	default:
		return nil, false
	}
}
