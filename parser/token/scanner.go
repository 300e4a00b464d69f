// Copyright © 2025 The srcscope authors

package token

import (
	"bytes"
	"io"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Scanner facilitates construction of tokens from a byte stream (io.Reader).
// The entire stream is buffered up front; source files are small relative to
// available memory and buffering keeps line accounting exact across
// multi-line literals.
type Scanner struct {
	file string
	path string

	buf []byte

	start     int // start of the current token
	startLine int // line number at start
	pos       int // index of the next byte to scan
	line      int // line number at pos

	readErr error
}

// NewScanner initializes and returns a new Scanner reading from r.
func NewScanner(file string, r io.Reader) *Scanner {
	buf, err := io.ReadAll(r)
	return &Scanner{
		file:      file,
		buf:       buf,
		line:      1,
		startLine: 1,
		readErr:   err,
	}
}

// SetPath associates a physical location (e.g. filesystem path) with s to aid
// in debugging projects which scan many ungrouped files.
func (s *Scanner) SetPath(path string) {
	s.path = path
}

// Err returns an error encountered while reading the input stream, if any.
func (s *Scanner) Err() error {
	return s.readErr
}

// EmitToken returns a token containing the text scanned since the last call
// to either EmitToken or Ignore.
func (s *Scanner) EmitToken(typ Type) *Token {
	tok := &Token{
		Type:   typ,
		Text:   s.Text(),
		Source: s.LocStart(),
	}
	s.Ignore()
	return tok
}

// Ignore causes the scanner to skip all text scanned since the last call to
// either EmitToken or Ignore.
func (s *Scanner) Ignore() {
	s.start = s.pos
	s.startLine = s.line
}

// Text returns a string containing text scanned since the last call to either
// EmitToken or Ignore.
func (s *Scanner) Text() string {
	return string(s.buf[s.start:s.pos])
}

// EOF returns true once every byte of the stream has been scanned.
func (s *Scanner) EOF() bool {
	return s.pos >= len(s.buf)
}

// Peek returns the next rune to be scanned, if there is one.
func (s *Scanner) Peek() (rune, bool) {
	if s.EOF() {
		return 0, false
	}
	c, n := utf8.DecodeRune(s.buf[s.pos:])
	if c == utf8.RuneError && n == 1 {
		return utf8.RuneError, false
	}
	return c, true
}

// PeekAt returns the rune n positions past the next rune to be scanned.
// PeekAt(0) is equivalent to Peek.
func (s *Scanner) PeekAt(n int) (rune, bool) {
	pos := s.pos
	for i := 0; i <= n; i++ {
		if pos >= len(s.buf) {
			return 0, false
		}
		c, w := utf8.DecodeRune(s.buf[pos:])
		if c == utf8.RuneError && w == 1 {
			return utf8.RuneError, false
		}
		if i == n {
			return c, true
		}
		pos += w
	}
	return 0, false
}

// ScanRune consumes the next rune of the input for inclusion in the current
// token.  ScanRune returns io.EOF at the end of the stream.
func (s *Scanner) ScanRune() error {
	if s.EOF() {
		return io.EOF
	}
	c, n := utf8.DecodeRune(s.buf[s.pos:])
	if c == '\n' {
		s.line++
	}
	s.pos += n
	return nil
}

// Accept consumes the next rune if fn accepts it.
func (s *Scanner) Accept(fn func(rune) bool) bool {
	peek, ok := s.Peek()
	if !ok {
		return false
	}
	if !fn(peek) {
		return false
	}
	return s.ScanRune() == nil
}

// AcceptRune consumes the next rune if it equals c.
func (s *Scanner) AcceptRune(c rune) bool {
	return s.Accept(func(r rune) bool { return r == c })
}

// AcceptAny consumes the next rune if it appears in charset.
func (s *Scanner) AcceptAny(charset string) bool {
	return s.Accept(func(r rune) bool { return strings.ContainsRune(charset, r) })
}

// AcceptSeq consumes a maximal run of runes accepted by fn and returns the
// number consumed.
func (s *Scanner) AcceptSeq(fn func(rune) bool) int {
	var n int
	for s.Accept(fn) {
		n++
	}
	return n
}

// AcceptSeqSpace consumes a maximal run of whitespace.
func (s *Scanner) AcceptSeqSpace() int {
	return s.AcceptSeq(unicode.IsSpace)
}

// AcceptString consumes the given literal if it appears next in the stream.
// A partial match is not consumed.
func (s *Scanner) AcceptString(literal string) bool {
	if !bytes.HasPrefix(s.buf[s.pos:], []byte(literal)) {
		return false
	}
	for range literal {
		_ = s.ScanRune()
	}
	return true
}

// LocStart returns a Location referencing the beginning of the current token,
// just beyond the end of the previous token.
func (s *Scanner) LocStart() *Location {
	return &Location{
		File: s.file,
		Path: s.path,
		Line: s.startLine,
		Pos:  s.start,
	}
}

// Loc returns a Location referencing the current scanner position.
func (s *Scanner) Loc() *Location {
	return &Location{
		File: s.file,
		Path: s.path,
		Line: s.line,
		Pos:  s.pos,
	}
}

// Line returns the line number at the current scanner position.
func (s *Scanner) Line() int {
	return s.line
}
