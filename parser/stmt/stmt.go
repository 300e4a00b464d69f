// Copyright © 2025 The srcscope authors

// Package stmt groups lexer tokens into candidate statements for grammar
// matching.  A statement is the token window between structural terminators:
// it ends at an opening brace, a closing brace, a semicolon, or the colon of
// an access specifier.  Comments and preprocessor lines never appear inside
// a statement.
package stmt

import (
	"strings"

	"github.com/srcscope/srcscope/parser/lexer"
	"github.com/srcscope/srcscope/parser/token"
)

// Statement is one candidate token window presented to the grammar rules.
type Statement struct {
	Toks []*token.Token
}

// Len returns the number of tokens in the statement.
func (s *Statement) Len() int {
	return len(s.Toks)
}

// At returns the text of token i, or "" when i is out of range.
func (s *Statement) At(i int) string {
	if i < 0 || i >= len(s.Toks) {
		return ""
	}
	return s.Toks[i].Text
}

// First returns the text of the first token.
func (s *Statement) First() string {
	return s.At(0)
}

// Last returns the text of the final token.
func (s *Statement) Last() string {
	return s.At(len(s.Toks) - 1)
}

// Find returns the index of the first token with the given text, or -1.
func (s *Statement) Find(text string) int {
	for i, tok := range s.Toks {
		if tok.Text == text {
			return i
		}
	}
	return -1
}

// Contains reports whether any token has the given text.
func (s *Statement) Contains(text string) bool {
	return s.Find(text) >= 0
}

// Texts returns the token texts in order.
func (s *Statement) Texts() []string {
	texts := make([]string, len(s.Toks))
	for i, tok := range s.Toks {
		texts[i] = tok.Text
	}
	return texts
}

// Line returns the source line on which the statement begins, or 0 for an
// empty statement.
func (s *Statement) Line() int {
	if len(s.Toks) == 0 {
		return 0
	}
	return s.Toks[0].Source.Line
}

// LastLine returns the source line on which the statement ends.
func (s *Statement) LastLine() int {
	if len(s.Toks) == 0 {
		return 0
	}
	return s.Toks[len(s.Toks)-1].Source.Line
}

func (s *Statement) String() string {
	return strings.Join(s.Texts(), " ")
}

// Collector assembles statements from a token stream.
type Collector struct {
	lex     *lexer.Lexer
	pending []*token.Token
	done    bool
}

// NewCollector initializes a Collector reading tokens from lex.
func NewCollector(lex *lexer.Lexer) *Collector {
	return &Collector{lex: lex}
}

// Err returns the degradation that cut the stream short, if any.
func (c *Collector) Err() error {
	return c.lex.Err()
}

// Line returns the current source line of the underlying lexer.
func (c *Collector) Line() int {
	return c.lex.Line()
}

// Next returns the next candidate statement.  It returns false when the
// token stream is exhausted, including after a lexer degradation; the
// partial statement in flight at a degradation belongs to the broken
// literal and is discarded.
func (c *Collector) Next() (*Statement, bool) {
	if c.done {
		return nil, false
	}
	toks := c.pending
	c.pending = nil
	parens := 0
	for {
		tok := c.lex.ReadToken()
		switch tok.Type {
		case token.EOF:
			c.done = true
			if len(toks) > 0 {
				return &Statement{Toks: toks}, true
			}
			return nil, false
		case token.ERROR:
			c.done = true
			return nil, false
		case token.COMMENT, token.PREPROC:
			continue
		case token.PUNCT:
			switch tok.Text {
			case "{":
				toks = append(toks, tok)
				return &Statement{Toks: toks}, true
			case "}":
				if len(toks) > 0 {
					// Flush the partial statement first; the brace opens
					// the next window.
					c.pending = []*token.Token{tok}
					return &Statement{Toks: toks}, true
				}
				return &Statement{Toks: []*token.Token{tok}}, true
			case ";":
				toks = append(toks, tok)
				if parens == 0 {
					return &Statement{Toks: toks}, true
				}
			case ":":
				toks = append(toks, tok)
				if len(toks) == 2 && isAccessSpecifier(toks[0].Text) {
					return &Statement{Toks: toks}, true
				}
			case "(":
				parens++
				toks = append(toks, tok)
			case ")":
				if parens > 0 {
					parens--
				}
				toks = append(toks, tok)
			default:
				toks = append(toks, tok)
			}
		default:
			toks = append(toks, tok)
		}
	}
}

func isAccessSpecifier(text string) bool {
	switch text {
	case "public", "protected", "private":
		return true
	}
	return false
}
