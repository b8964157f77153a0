// Copyright © 2024 The ELPS authors

// Package docs embeds the language reference and example programs for use by
// the CLI and tests.
package docs

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"
)

//go:embed lang.md
var LangGuide string

//go:embed examples/*.lisp
var examples embed.FS

// Examples returns the names of the embedded example programs, without the
// .lisp extension, in sorted order.
func Examples() []string {
	entries, err := fs.ReadDir(examples, "examples")
	if err != nil {
		panic(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(e.Name(), ".lisp"))
	}
	sort.Strings(names)
	return names
}

// Example returns the source of the embedded example program called name.
func Example(name string) (string, bool) {
	b, err := examples.ReadFile(path.Join("examples", name+".lisp"))
	if err != nil {
		return "", false
	}
	return string(b), true
}
