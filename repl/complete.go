// Copyright © 2018 The ELPS authors

package repl

import (
	"sort"
	"strings"
	"unicode"

	"github.com/luthersystems/roots/lisp"
	"github.com/luthersystems/roots/parser/lexer"
)

// symbolCompleter implements readline.AutoCompleter by enumerating the names
// bound in the REPL environment and the special operators.
type symbolCompleter struct {
	env *lisp.LEnv
}

func (c *symbolCompleter) Do(line []rune, pos int) ([][]rune, int) {
	// Extract the word being typed (backwards from cursor to a token boundary).
	start := pos
	for start > 0 {
		ch := line[start-1]
		if unicode.IsSpace(ch) || lexer.IsSeparator(ch) {
			break
		}
		start--
	}
	prefix := string(line[start:pos])
	if prefix == "" {
		return nil, 0
	}

	candidates := c.collectSymbols(prefix)
	if len(candidates) == 0 {
		return nil, 0
	}

	// Build completions: each entry is the suffix to append.
	result := make([][]rune, 0, len(candidates))
	for _, sym := range candidates {
		suffix := sym[len(prefix):]
		result = append(result, []rune(suffix))
	}
	return result, len([]rune(prefix))
}

func (c *symbolCompleter) collectSymbols(prefix string) []string {
	seen := make(map[string]bool)
	var result []string
	add := func(name string) {
		if strings.HasPrefix(name, prefix) && !seen[name] {
			seen[name] = true
			result = append(result, name)
		}
	}
	for _, name := range lisp.LanguageNames() {
		add(name)
	}
	for _, name := range c.env.Symbols() {
		add(name)
	}
	sort.Strings(result)
	return result
}
