// Copyright © 2024 The ELPS authors

package diagnostic

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"

	"github.com/luthersystems/roots/parser/lexer"
)

// Renderer formats diagnostics as annotated source snippets.
type Renderer struct {
	// Color controls ANSI color output. Default is ColorAuto.
	Color ColorMode

	// Sources holds source text that does not live in a file, such as
	// expressions given on the command line or typed at the prompt, indexed
	// by source name.  Sources is consulted before SourceReader.
	Sources map[string]string

	// SourceReader reads source file contents. If nil, os.ReadFile is used.
	SourceReader func(string) ([]byte, error)
}

// Render writes a single diagnostic to w.
func (r *Renderer) Render(w io.Writer, d Diagnostic) error {
	p := choosePalette(r.Color, w)
	bw := bufio.NewWriter(w)
	ew := &errWriter{w: bw}

	r.writeHeader(ew, d, p)
	for _, span := range d.Spans {
		r.writeSpan(ew, span, p)
	}
	for _, note := range d.Notes {
		ew.printf("   %s note: %s\n", p.note.Sprint("="), note)
	}

	if ew.err != nil {
		return ew.err
	}
	return bw.Flush()
}

// RenderError converts err with FromError and writes it to w.
func (r *Renderer) RenderError(w io.Writer, err error, notes ...string) error {
	d := FromError(err)
	d.Notes = append(d.Notes, notes...)
	return r.Render(w, d)
}

// RenderAll writes all diagnostics to w separated by blank lines.
func (r *Renderer) RenderAll(w io.Writer, diags []Diagnostic) error {
	for i, d := range diags {
		if i > 0 {
			if _, err := io.WriteString(w, "\n"); err != nil {
				return err
			}
		}
		if err := r.Render(w, d); err != nil {
			return err
		}
	}
	return nil
}

// errWriter wraps a writer and captures the first error, short-circuiting
// subsequent writes.
type errWriter struct {
	w   io.Writer
	err error
}

func (ew *errWriter) printf(format string, a ...interface{}) {
	if ew.err != nil {
		return
	}
	_, ew.err = fmt.Fprintf(ew.w, format, a...)
}

func (ew *errWriter) print(s string) {
	if ew.err != nil {
		return
	}
	_, ew.err = io.WriteString(ew.w, s)
}

// writeHeader writes "error: message" or "error[code]: message".
func (r *Renderer) writeHeader(ew *errWriter, d Diagnostic, p palette) {
	sev := d.Severity.String()
	if d.Code != "" {
		sev += "[" + d.Code + "]"
	}
	sevColor, ok := p.severity[d.Severity]
	if !ok {
		sevColor = p.bold
	}
	ew.printf("%s: %s\n", sevColor.Sprint(sev), p.bold.Sprint(d.Message))
}

func (r *Renderer) writeSpan(ew *errWriter, span Span, p palette) {
	// Location line: "  --> file:line:col"
	loc := span.File
	if span.Line > 0 {
		loc = fmt.Sprintf("%s:%d", span.File, span.Line)
		if span.Col > 0 {
			loc = fmt.Sprintf("%s:%d:%d", span.File, span.Line, span.Col)
		}
	}
	ew.printf("  %s %s\n", p.gutter.Sprint("-->"), loc)

	source, ok := r.readSourceLine(span.File, span.Line)
	if !ok {
		ew.printf("   %s\n", p.gutter.Sprint("|"))
		return
	}

	lineStr := fmt.Sprintf("%d", span.Line)
	pad := strings.Repeat(" ", len(lineStr))
	bar := p.gutter.Sprint(pad + " |")

	ew.printf(" %s\n", bar)
	// Tabs are expanded so that the underline lines up.
	displaySource := strings.ReplaceAll(source, "\t", "    ")
	ew.printf(" %s  %s\n", p.gutter.Sprint(lineStr+" |"), displaySource)

	col := span.Col
	if col <= 0 {
		col = 1
	}
	endCol := span.EndCol
	if endCol <= 0 {
		endCol = detectEndCol(source, col)
	}
	if endCol < col {
		endCol = col
	}
	runes := []rune(source)
	prefix := ""
	if col > 1 && col-1 <= len(runes) {
		prefix = string(runes[:col-1])
	}
	underPad := strings.Repeat(" ", displayWidth(prefix))
	underline := strings.Repeat("^", endCol-col+1)

	ew.printf(" %s  %s%s", bar, underPad, p.underline.Sprint(underline))
	if span.Label != "" {
		ew.printf(" %s", p.underline.Sprint(span.Label))
	}
	ew.print("\n")
	ew.printf(" %s\n", bar)
}

// readSourceLine returns the text of line in the source called file.
func (r *Renderer) readSourceLine(file string, line int) (string, bool) {
	if line <= 0 || file == "" {
		return "", false
	}
	var data []byte
	if src, ok := r.Sources[file]; ok {
		data = []byte(src)
	} else {
		reader := r.SourceReader
		if reader == nil {
			reader = func(name string) ([]byte, error) {
				return os.ReadFile(name) //nolint:gosec // reads user-specified source files for display
			}
		}
		var err error
		data, err = reader(file)
		if err != nil {
			return "", false
		}
	}
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for i := 1; scanner.Scan(); i++ {
		if i == line {
			return scanner.Text(), true
		}
	}
	return "", false
}

// detectEndCol finds the last column of the token starting at col.  Columns
// count runes.  A parenthesis or quote is underlined by itself.
func detectEndCol(source string, col int) int {
	runes := []rune(source)
	if col <= 0 || col > len(runes) {
		return col
	}
	if lexer.IsSeparator(runes[col-1]) {
		return col
	}
	end := col
	for end < len(runes) {
		ch := runes[end]
		if unicode.IsSpace(ch) || lexer.IsSeparator(ch) {
			break
		}
		end++
	}
	return end
}

// displayWidth returns the display width of a string, expanding tabs to 4 spaces.
func displayWidth(s string) int {
	w := 0
	for _, ch := range s {
		if ch == '\t' {
			w += 4
		} else {
			w++
		}
	}
	return w
}
