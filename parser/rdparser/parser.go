// Copyright © 2018 The ELPS authors

package rdparser

import (
	"io"

	"github.com/luthersystems/roots/lisp"
	"github.com/luthersystems/roots/parser/token"
)

type reader struct {
}

// NewReader returns a lisp.Reader to use in a lisp.Runtime.
func NewReader() lisp.Reader {
	return &reader{}
}

var _ lisp.LocationReader = &reader{}

// Read implements lisp.Reader.
func (*reader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	s := token.NewScanner(name, r)
	return parseScanner(s)
}

// ReadLocation implements lisp.LocationReader.
func (*reader) ReadLocation(name string, loc string, r io.Reader) ([]*lisp.LVal, error) {
	s := token.NewScanner(name, r)
	s.SetPath(loc)
	return parseScanner(s)
}

func parseScanner(s *token.Scanner) ([]*lisp.LVal, error) {
	if err := s.Err(); err != nil {
		return nil, lisp.ReadErrorf(nil, "%v", err)
	}
	return New(s).ParseProgram()
}

// Parser is a lisp parser.
type Parser struct {
	parsing bool
	src     *TokenSource
}

// NewFromSource initializes and returns a Parser that reads tokens from src.
func NewFromSource(src *TokenSource) *Parser {
	return &Parser{
		src: src,
	}
}

// New initializes and returns a new Parser that reads tokens from scanner.
func New(scanner *token.Scanner) *Parser {
	return NewFromSource(NewTokenSource(scanner))
}

// Parse is a generic entry point that is similar to ParseExpression but is
// capable of handling EOF before reading an expression.  When the token stream
// is exhausted Parse returns io.EOF.
func (p *Parser) Parse() (*lisp.LVal, error) {
	if p.src.IsEOF() {
		return nil, io.EOF
	}
	return p.ParseExpression()
}

// ParseProgram parses expressions until the token stream is exhausted.  An
// empty token stream produces no expressions and no error.
func (p *Parser) ParseProgram() ([]*lisp.LVal, error) {
	var exprs []*lisp.LVal
	for {
		expr, err := p.Parse()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		exprs = append(exprs, expr)
	}
	return exprs, nil
}

// ParseExpression parses a single expression.  Unlike Parse, ParseExpression
// requires an expression to be present in the input stream and will report
// unexpected EOF tokens encountered.
func (p *Parser) ParseExpression() (*lisp.LVal, error) {
	// Flag that we are currently in the middle of an expression so that an
	// Interactive parser can determine what state we are in (and thus imply
	// what the REPL prompt should be).
	if !p.parsing {
		p.parsing = true
		defer func() { p.parsing = false }()
	}

	switch p.PeekType() {
	case token.QUOTE:
		return p.ParseQuote()
	case token.SYMBOL:
		return p.ParseSymbol()
	case token.PAREN_L:
		return p.ParseConsExpression()
	case token.PAREN_R:
		p.ReadToken()
		return nil, p.errorf("unexpected )")
	case token.EOF:
		p.ReadToken()
		return nil, p.errorf("no tokens to parse")
	default:
		p.ReadToken()
		return nil, p.errorf("unexpected token: %v", p.TokenType())
	}
}

// ParseQuote parses the reader syntax 'expr into the list (quote expr).
func (p *Parser) ParseQuote() (*lisp.LVal, error) {
	if !p.Accept(token.QUOTE) {
		return nil, p.errorf("invalid quote: %v", p.PeekType())
	}
	loc := p.Location()
	expr, err := p.ParseExpression()
	if err != nil {
		return nil, err
	}
	q := p.SExpr([]*lisp.LVal{p.Symbol("quote"), expr})
	q.Source = loc
	q.Cells[0].Source = loc
	return q, nil
}

func (p *Parser) ParseSymbol() (*lisp.LVal, error) {
	if !p.Accept(token.SYMBOL) {
		return nil, p.errorf("invalid symbol: %v", p.PeekType())
	}
	return p.Symbol(p.TokenText()), nil
}

func (p *Parser) ParseConsExpression() (*lisp.LVal, error) {
	if !p.Accept(token.PAREN_L) {
		return nil, p.errorf("invalid list: %v", p.PeekType())
	}
	expr := p.SExpr(nil)
	for {
		if p.src.IsEOF() {
			return nil, lisp.ReadErrorf(expr.Source, "unmatched parens")
		}
		if p.Accept(token.PAREN_R) {
			break
		}
		x, err := p.ParseExpression()
		if err != nil {
			return nil, err
		}
		expr.Cells = append(expr.Cells, x)
	}
	return expr, nil
}

func (p *Parser) ReadToken() *token.Token {
	p.src.Scan()
	return p.src.Token
}

func (p *Parser) TokenText() string {
	return p.src.Token.Text
}

func (p *Parser) TokenType() token.Type {
	return p.src.Token.Type
}

func (p *Parser) Location() *token.Location {
	return p.src.Token.Source
}

func (p *Parser) PeekType() token.Type {
	return p.src.Peek().Type
}

func (p *Parser) PeekLocation() *token.Location {
	return p.src.Peek().Source
}

func (p *Parser) Symbol(sym string) *lisp.LVal {
	return p.tokenLVal(lisp.Symbol(sym))
}

func (p *Parser) SExpr(cells []*lisp.LVal) *lisp.LVal {
	return p.tokenLVal(lisp.SExpr(cells))
}

func (p *Parser) tokenLVal(v *lisp.LVal) *lisp.LVal {
	v.Source = p.Location()
	return v
}

func (p *Parser) Accept(typ ...token.Type) bool {
	return p.src.AcceptType(typ...)
}

func (p *Parser) errorf(format string, v ...interface{}) error {
	return lisp.ReadErrorf(p.Location(), format, v...)
}
