// Copyright © 2025 The srcscope authors

// Package lexer converts C++ and C# source text into a stream of classified
// tokens.  The lexer is shared by both dialects; keyword interpretation is
// left to the grammar rules, which receive keywords as plain IDENT tokens.
//
// Comments and preprocessor lines are emitted as tokens so that downstream
// consumers can filter them while keeping line accounting exact.  An
// unterminated string, character or block-comment literal consumes the
// remainder of the file and is reported through a single ERROR token; this
// is the degraded-parse condition, never a Go error.
package lexer

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/srcscope/srcscope/parser/token"
)

// Two character operator sequences recognized ahead of single character
// operators.  The scope-resolution operator "::" and the C# lambda arrow
// "=>" matter to the grammar; the rest exist so that expressions like
// "a << b" do not masquerade as template angle brackets.
var doubleOpers = []string{
	"::", "->", "<<", ">>", "==", "!=", "<=", ">=",
	"&&", "||", "++", "--", "+=", "-=", "*=", "/=",
	"%=", "&=", "|=", "^=", "=>",
}

const (
	punctRunes = "{}()[];,:"
	operRunes  = "<>*&=~!.?%^/+-|@"
)

// Lexer reads tokens from a scanner.  After an unterminated literal the
// lexer reports EOF forever; the remainder of the file is considered
// consumed by the broken literal.
type Lexer struct {
	scanner *token.Scanner
	dead    bool
	err     error
}

// New initializes and returns a Lexer reading from s.
func New(s *token.Scanner) *Lexer {
	return &Lexer{scanner: s}
}

// Err returns the degradation that terminated scanning early, if any.
func (lex *Lexer) Err() error {
	return lex.err
}

// Line returns the current source line of the underlying scanner.
func (lex *Lexer) Line() int {
	return lex.scanner.Line()
}

// ReadToken scans and returns the next token.  At the end of the stream
// ReadToken returns an EOF token; it never returns nil.
func (lex *Lexer) ReadToken() *token.Token {
	if lex.dead {
		return lex.emit(token.EOF, "")
	}
	if lex.scanner.AcceptSeqSpace() > 0 {
		lex.scanner.Ignore()
	}
	c, ok := lex.scanner.Peek()
	if !ok {
		return lex.emit(token.EOF, "")
	}
	switch {
	case c == '#':
		return lex.readPreproc()
	case c == '/':
		if next, _ := lex.scanner.PeekAt(1); next == '/' || next == '*' {
			return lex.readComment()
		}
		return lex.readOperator()
	case c == '"':
		return lex.readString()
	case c == '\'':
		return lex.readChar()
	case isDigit(c):
		return lex.readNumber()
	case isWordStart(c):
		lex.scanner.AcceptSeq(isWord)
		return lex.scanner.EmitToken(token.IDENT)
	case strings.ContainsRune(punctRunes, c):
		if c == ':' {
			// "::" is an operator, a lone ":" is punctuation.
			return lex.readOperator()
		}
		_ = lex.scanner.ScanRune()
		return lex.scanner.EmitToken(token.PUNCT)
	case strings.ContainsRune(operRunes, c):
		return lex.readOperator()
	default:
		_ = lex.scanner.ScanRune()
		return lex.scanner.EmitToken(token.INVALID)
	}
}

func (lex *Lexer) emit(typ token.Type, text string) *token.Token {
	tok := &token.Token{
		Type:   typ,
		Text:   text,
		Source: lex.scanner.LocStart(),
	}
	lex.scanner.Ignore()
	return tok
}

// die marks the remainder of the file as consumed and produces the ERROR
// token describing the unterminated literal.
func (lex *Lexer) die(format string, v ...interface{}) *token.Token {
	lex.dead = true
	lex.err = &token.LocationError{
		Err:    fmt.Errorf(format, v...),
		Source: lex.scanner.LocStart(),
	}
	return lex.scanner.EmitToken(token.ERROR)
}

func (lex *Lexer) readPreproc() *token.Token {
	for {
		lex.scanner.AcceptSeq(func(c rune) bool { return c != '\n' })
		if !strings.HasSuffix(lex.scanner.Text(), "\\") {
			break
		}
		if !lex.scanner.AcceptRune('\n') {
			break
		}
	}
	return lex.scanner.EmitToken(token.PREPROC)
}

func (lex *Lexer) readComment() *token.Token {
	_ = lex.scanner.ScanRune() // '/'
	if lex.scanner.AcceptRune('/') {
		lex.scanner.AcceptSeq(func(c rune) bool { return c != '\n' })
		return lex.scanner.EmitToken(token.COMMENT)
	}
	_ = lex.scanner.ScanRune() // '*'
	for !lex.scanner.EOF() {
		if lex.scanner.AcceptString("*/") {
			return lex.scanner.EmitToken(token.COMMENT)
		}
		_ = lex.scanner.ScanRune()
	}
	return lex.die("unterminated block comment")
}

func (lex *Lexer) readString() *token.Token {
	_ = lex.scanner.ScanRune() // open quote
	for !lex.scanner.EOF() {
		if lex.scanner.AcceptRune('\\') {
			_ = lex.scanner.ScanRune()
			continue
		}
		if lex.scanner.AcceptRune('"') {
			return lex.scanner.EmitToken(token.STRING)
		}
		_ = lex.scanner.ScanRune()
	}
	return lex.die("unterminated string literal")
}

func (lex *Lexer) readChar() *token.Token {
	_ = lex.scanner.ScanRune() // open quote
	for !lex.scanner.EOF() {
		if lex.scanner.AcceptRune('\\') {
			_ = lex.scanner.ScanRune()
			continue
		}
		if lex.scanner.AcceptRune('\'') {
			return lex.scanner.EmitToken(token.CHAR)
		}
		_ = lex.scanner.ScanRune()
	}
	return lex.die("unterminated character literal")
}

func (lex *Lexer) readNumber() *token.Token {
	// The grammar never interprets numeric values, so numbers are scanned
	// loosely: hex, octal, float and suffix forms all collapse into NUMBER.
	lex.scanner.AcceptSeq(func(c rune) bool {
		return isWord(c) || c == '.'
	})
	if text := lex.scanner.Text(); strings.HasSuffix(text, "e") || strings.HasSuffix(text, "E") {
		if lex.scanner.AcceptAny("+-") {
			lex.scanner.AcceptSeq(isDigit)
		}
	}
	return lex.scanner.EmitToken(token.NUMBER)
}

func (lex *Lexer) readOperator() *token.Token {
	for _, op := range doubleOpers {
		if lex.scanner.AcceptString(op) {
			return lex.scanner.EmitToken(token.OPER)
		}
	}
	c, _ := lex.scanner.Peek()
	_ = lex.scanner.ScanRune()
	if c == ':' {
		return lex.scanner.EmitToken(token.PUNCT)
	}
	return lex.scanner.EmitToken(token.OPER)
}

func isWordStart(c rune) bool {
	return unicode.IsLetter(c) || c == '_'
}

func isWord(c rune) bool {
	return unicode.IsLetter(c) || unicode.IsDigit(c) || c == '_'
}

func isDigit(c rune) bool {
	return '0' <= c && c <= '9'
}
