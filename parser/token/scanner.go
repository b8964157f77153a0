// Copyright © 2018 The ELPS authors

package token

import (
	"io"
	"unicode/utf8"
)

// Scanner reads runes from a byte stream and tracks their location.
type Scanner struct {
	file string
	path string
	buf  []byte
	err  error

	pos  int // byte offset of the current rune
	next int // byte offset of the rune following the current rune
	line int
	col  int
	c    rune

	start    int
	startLoc *Location
}

// NewScanner initializes and returns a new Scanner that reads all of r.  A
// read failure is reported by Err once the scanner reaches the end of the
// data that was successfully read.
func NewScanner(file string, r io.Reader) *Scanner {
	buf, err := io.ReadAll(r)
	return &Scanner{
		file: file,
		buf:  buf,
		err:  err,
		line: 1,
	}
}

// SetPath associates a physical location (e.g. filesystem path) with s to aid
// in debugging projects which scan many ungrouped files.
func (s *Scanner) SetPath(path string) {
	s.path = path
}

// Err returns any io error encountered reading the input.
func (s *Scanner) Err() error {
	return s.err
}

// EOF returns true if no more runes can be scanned.
func (s *Scanner) EOF() bool {
	return s.next >= len(s.buf)
}

// Rune returns the most recently scanned rune.
func (s *Scanner) Rune() rune {
	return s.c
}

// Peek returns the next rune to be scanned without consuming it.  Peek
// returns false if there are no runes remaining.
func (s *Scanner) Peek() (rune, bool) {
	if s.EOF() {
		return 0, false
	}
	c, _ := utf8.DecodeRune(s.buf[s.next:])
	return c, true
}

// ScanRune consumes the next rune.  ScanRune returns false at EOF.
func (s *Scanner) ScanRune() bool {
	if s.EOF() {
		return false
	}
	if s.c == '\n' {
		s.line++
		s.col = 0
	}
	c, n := utf8.DecodeRune(s.buf[s.next:])
	s.c = c
	s.pos = s.next
	s.next += n
	s.col++
	return true
}

// Mark records the current rune as the start of a token.
func (s *Scanner) Mark() {
	s.start = s.pos
	s.startLoc = s.Loc()
}

// Text returns the text scanned since the last call to Mark, including the
// current rune.
func (s *Scanner) Text() string {
	return string(s.buf[s.start:s.next])
}

// EmitToken returns a token containing the text scanned since the last call
// to Mark.
func (s *Scanner) EmitToken(typ Type) *Token {
	return &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.startLoc,
	}
}

// Loc returns the location of the current rune.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Path: s.path,
		Pos:  s.pos,
		Line: s.line,
		Col:  s.col,
	}
}

// LocEOF returns the location just past the end of the input.
func (s *Scanner) LocEOF() *Location {
	loc := s.Loc()
	loc.Pos = len(s.buf)
	loc.Col++
	return loc
}
