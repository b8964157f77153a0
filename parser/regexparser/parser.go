// Copyright © 2018 The ELPS authors

/*
Package regexparser provides a lisp reader built from parser combinators.

	expr   := <symbol> | '(' <expr>* ')' | '\'' <expr>
	symbol := /[^\s\v\p{Z}\x{85}()']+/

Whitespace is any character for which unicode.IsSpace is true.

It accepts the same language as the recursive-descent reader and produces
equal values for every valid input.
*/
package regexparser

import (
	"bytes"
	"fmt"
	"io"

	"github.com/luthersystems/roots/lisp"
	"github.com/luthersystems/roots/parser/lexer"
	"github.com/luthersystems/roots/parser/token"
	parsec "github.com/prataprc/goparsec"
)

// NewReader returns a lisp.Reader.
func NewReader() lisp.Reader {
	return &parsecReader{}
}

type parsecReader struct{}

func (p *parsecReader) Read(name string, r io.Reader) ([]*lisp.LVal, error) {
	b, err := io.ReadAll(r)
	if err != nil {
		return nil, lisp.ReadErrorf(nil, "%v", err)
	}
	vals, _, err := ParseLVal(name, b)
	if err != nil {
		return nil, err
	}
	return vals, nil
}

const (
	nodeInvalid nodeType = iota
	nodeTerm
	nodeSExpr
	nodeQExpr
)

var nodeTypeStrings = []string{
	nodeInvalid: "INVALID",
	nodeTerm:    "TERM",
	nodeSExpr:   "SEXPR",
	nodeQExpr:   "QEXPR",
}

type nodeType uint

// The characters matched by wsClass are exactly those accepted by
// unicode.IsSpace.
const (
	wsClass       = `\s\v\p{Z}\x{85}`
	wsPattern     = `^[` + wsClass + `]+`
	symbolPattern = `[^` + wsClass + `()']+`
)

func (t nodeType) String() string {
	if int(t) >= len(nodeTypeStrings) {
		return "INVALID"
	}
	return nodeTypeStrings[t]
}

// ParseLVal parses LVal values from text and returns them.  The number of
// bytes read is returned along with any error that was encountered in parsing.
// Source text that cannot be parsed produces a read error.
func ParseLVal(name string, text []byte) ([]*lisp.LVal, int, error) {
	var v []*lisp.LVal
	s := parsec.NewScanner(text).SetWSPattern(wsPattern)
	s = s.TrackLineno()
	parser := newParsecParser()
	root, s := parser(s)
	for root != nil {
		v = append(v, getLVal(root))
		root, s = parser(s)
	}
	_, s = s.SkipWS()
	if !s.Endof() {
		loc := &token.Location{File: name, Pos: s.GetCursor(), Line: s.Lineno()}
		return nil, s.GetCursor(), lisp.ReadErrorf(loc, "%s", leftoverError(name, text[s.GetCursor():]))
	}
	return v, s.GetCursor(), nil
}

// leftoverError describes why the unparsed remainder of the source text
// could not form an expression.  The tokens in rest are replayed with the
// rules of the recursive-descent reader so that both readers report the same
// error.
func leftoverError(name string, rest []byte) string {
	toks, err := lexer.Tokenize(token.NewScanner(name, bytes.NewReader(rest)))
	if err != nil {
		return err.Error()
	}
	depth := 0
	quoted := false
	for _, tok := range toks {
		switch tok.Type {
		case token.QUOTE:
			quoted = true
		case token.PAREN_L:
			depth++
			quoted = false
		case token.PAREN_R:
			if quoted || depth == 0 {
				return "unexpected )"
			}
			depth--
		case token.SYMBOL:
			quoted = false
		}
	}
	if depth > 0 && !quoted {
		return "unmatched parens"
	}
	return "no tokens to parse"
}

func newParsecParser() parsec.Parser {
	openP := parsec.Atom("(", "OPENP")
	closeP := parsec.Atom(")", "CLOSEP")
	q := parsec.Atom("'", "QUOTE")
	symbol := parsec.Token(symbolPattern, "SYMBOL")
	term := parsec.OrdChoice(astNode(nodeTerm), symbol)
	var expr parsec.Parser // forward declaration allows for recursive parsing
	exprList := parsec.Kleene(nil, &expr)
	sexpr := parsec.And(astNode(nodeSExpr), openP, exprList, closeP)
	qexpr := parsec.And(astNode(nodeQExpr), q, &expr)
	expr = parsec.OrdChoice(nil,
		term,
		sexpr,
		qexpr,
	)
	return expr
}

func newAST(typ nodeType, nodes []parsec.ParsecNode) parsec.ParsecNode {
	nodes = flattenNodes(nodes)
	switch typ {
	case nodeTerm:
		term, ok := nodes[0].(*parsec.Terminal)
		if !ok {
			panic(fmt.Sprintf("unexpected terminal node: %T", nodes[0]))
		}
		return lisp.Symbol(term.Value)
	case nodeSExpr:
		// We don't want terminal parsec nodes '(' and ')'
		lval := lisp.SExpr(make([]*lisp.LVal, 0, len(nodes)))
		for _, c := range nodes {
			switch c := c.(type) {
			case *lisp.LVal:
				lval.Cells = append(lval.Cells, c)
			}
		}
		return lval
	case nodeQExpr:
		// We don't want the terminal parsec node "'"
		for _, c := range nodes {
			if c, ok := c.(*lisp.LVal); ok {
				return lisp.Quote(c)
			}
		}
		panic("quote without expression")
	default:
		panic(fmt.Sprintf("unknown nodeType: %s (%d)", typ, typ))
	}
}

func flattenNodes(lis []parsec.ParsecNode) []parsec.ParsecNode {
	var nodes []parsec.ParsecNode
	for _, n := range lis {
		switch node := n.(type) {
		case []parsec.ParsecNode:
			nodes = append(nodes, flattenNodes(node)...)
		default:
			nodes = append(nodes, node)
		}
	}
	return nodes
}

func astNode(t nodeType) parsec.Nodify {
	return func(nodes []parsec.ParsecNode) parsec.ParsecNode {
		return newAST(t, nodes)
	}
}

func getLVal(root parsec.ParsecNode) *lisp.LVal {
	nodes := flattenNodes([]parsec.ParsecNode{root})
	if len(nodes) == 0 {
		return lisp.Nil()
	}
	lval, ok := nodes[0].(*lisp.LVal)
	if !ok {
		panic(fmt.Sprintf("unexpected root node: %T", nodes[0]))
	}
	return lval
}
