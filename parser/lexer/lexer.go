// Copyright © 2018 The ELPS authors

// Package lexer splits source text into tokens.  The characters '(', ')' and
// '\'' always form single character tokens.  Every maximal run of characters
// that are neither whitespace nor one of those separators forms one symbol
// token.
package lexer

import (
	"unicode"

	"github.com/luthersystems/roots/parser/token"
)

// IsSeparator returns true if c always forms a token by itself.
func IsSeparator(c rune) bool {
	return c == '(' || c == ')' || c == '\''
}

type Lexer struct {
	scanner *token.Scanner
	eof     *token.Token
}

func New(s *token.Scanner) *Lexer {
	return &Lexer{scanner: s}
}

// ReadToken returns the next token in the stream.  Once the input is
// exhausted ReadToken returns a token with type token.EOF on every call.
func (lex *Lexer) ReadToken() *token.Token {
	if lex.eof != nil {
		return lex.eof
	}
	lex.skipWhitespace()
	if !lex.scanner.ScanRune() {
		lex.eof = &token.Token{Type: token.EOF, Source: lex.scanner.LocEOF()}
		return lex.eof
	}
	lex.scanner.Mark()
	switch lex.scanner.Rune() {
	case '(':
		return lex.scanner.EmitToken(token.PAREN_L)
	case ')':
		return lex.scanner.EmitToken(token.PAREN_R)
	case '\'':
		return lex.scanner.EmitToken(token.QUOTE)
	}
	for {
		c, ok := lex.scanner.Peek()
		if !ok || unicode.IsSpace(c) || IsSeparator(c) {
			break
		}
		lex.scanner.ScanRune()
	}
	return lex.scanner.EmitToken(token.SYMBOL)
}

// Err returns any io error encountered while reading the input.
func (lex *Lexer) Err() error {
	return lex.scanner.Err()
}

// Tokenize reads every token from s.  The returned slice does not include the
// terminating EOF token.
func Tokenize(s *token.Scanner) ([]*token.Token, error) {
	lex := New(s)
	var toks []*token.Token
	for {
		tok := lex.ReadToken()
		if tok.Type == token.EOF {
			break
		}
		toks = append(toks, tok)
	}
	return toks, lex.Err()
}

func (lex *Lexer) skipWhitespace() {
	for {
		c, ok := lex.scanner.Peek()
		if !ok || !unicode.IsSpace(c) {
			return
		}
		lex.scanner.ScanRune()
	}
}
