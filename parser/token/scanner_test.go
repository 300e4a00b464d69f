// Copyright © 2025 The srcscope authors

package token

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScannerEmit(t *testing.T) {
	s := NewScanner("test", strings.NewReader("class Shape"))
	s.AcceptSeq(func(c rune) bool { return c != ' ' })
	tok := s.EmitToken(IDENT)
	assert.Equal(t, "class", tok.Text)
	assert.Equal(t, 0, tok.Source.Pos)
	assert.Equal(t, 1, tok.Source.Line)

	s.AcceptSeqSpace()
	s.Ignore()
	s.AcceptSeq(func(c rune) bool { return true })
	tok = s.EmitToken(IDENT)
	assert.Equal(t, "Shape", tok.Text)
	assert.Equal(t, 6, tok.Source.Pos)
	assert.True(t, s.EOF())
}

func TestScannerLineTracking(t *testing.T) {
	s := NewScanner("test", strings.NewReader("one\ntwo\n\nthree"))
	for i, want := range []struct {
		text string
		line int
	}{
		{"one", 1},
		{"two", 2},
		{"three", 4},
	} {
		s.AcceptSeqSpace()
		s.Ignore()
		s.AcceptSeq(func(c rune) bool { return !strings.ContainsRune(" \n", c) })
		tok := s.EmitToken(IDENT)
		assert.Equal(t, want.text, tok.Text, "token %d", i)
		assert.Equal(t, want.line, tok.Source.Line, "token %d", i)
	}
	assert.True(t, s.EOF())
}

func TestScannerMultilineToken(t *testing.T) {
	// A token spanning lines must report its starting line while the scanner
	// position advances to the final line.
	s := NewScanner("test", strings.NewReader("/* a\nb\nc */x"))
	assert.True(t, s.AcceptString("/*"))
	for !s.EOF() {
		if s.AcceptString("*/") {
			break
		}
		_ = s.ScanRune()
	}
	tok := s.EmitToken(COMMENT)
	assert.Equal(t, "/* a\nb\nc */", tok.Text)
	assert.Equal(t, 1, tok.Source.Line)
	assert.Equal(t, 3, s.Line())
}

func TestScannerPeek(t *testing.T) {
	s := NewScanner("test", strings.NewReader("ab"))
	c, ok := s.Peek()
	assert.True(t, ok)
	assert.Equal(t, 'a', c)
	c, ok = s.PeekAt(1)
	assert.True(t, ok)
	assert.Equal(t, 'b', c)
	_, ok = s.PeekAt(2)
	assert.False(t, ok)

	// Peeking does not consume input.
	s.AcceptSeq(func(c rune) bool { return true })
	assert.Equal(t, "ab", s.EmitToken(IDENT).Text)
}

func TestScannerAcceptString(t *testing.T) {
	s := NewScanner("test", strings.NewReader("::name"))
	assert.False(t, s.AcceptString("::x"))
	assert.Equal(t, "", s.Text())
	assert.True(t, s.AcceptString("::"))
	assert.Equal(t, "::", s.Text())
}

func TestScannerEmptyInput(t *testing.T) {
	s := NewScanner("test", strings.NewReader(""))
	assert.True(t, s.EOF())
	_, ok := s.Peek()
	assert.False(t, ok)
	assert.False(t, s.Accept(func(c rune) bool { return true }))
}
