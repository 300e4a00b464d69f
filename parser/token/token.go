// Copyright © 2025 The srcscope authors

// Package token defines the lexical units produced when scanning C++ and C#
// source text, and a rune-level Scanner used to assemble them.
package token

import "fmt"

// Source is an abstract stream of tokens which allows one token lookahead.
type Source interface {
	// Token returns the current token.  Token returns nil if Scan has not been
	// called.
	Token() *Token
	// Peek returns the next token in the stream.  At the end of the stream
	// Peek should return a value to indicate the lack of a token (EOF).
	Peek() *Token
	// Scan advances the token stream if possible.  If there are no tokens
	// remaining Scan returns false.
	Scan() bool
}

// Token is a classified lexical unit.  Tokens are immutable once produced by
// the lexer.
type Token struct {
	Type   Type
	Text   string
	Source *Location
}

func (tok *Token) String() string {
	return tok.Text
}

type Type uint

// Type constants used by the srcscope lexer.  The grammar engine only ever
// sees IDENT, NUMBER, STRING, CHAR, PUNCT and OPER tokens; comments,
// preprocessor lines and terminal markers are filtered before rule matching.
const (
	INVALID Type = iota
	ERROR
	EOF

	IDENT  // identifiers and keywords
	NUMBER // integer and floating point literals
	STRING // double quoted string literals
	CHAR   // single quoted character literals

	COMMENT // line and block comments
	PREPROC // a whole preprocessor directive line

	PUNCT // structural punctuation: braces, parens, semicolon, ...
	OPER  // operator sequences: :: -> << == ...

	numTokenTypes
)

func (typ Type) String() string {
	typeStrings := [numTokenTypes]string{
		INVALID: "invalid",
		ERROR:   "error",
		EOF:     "EOF",
		IDENT:   "ident",
		NUMBER:  "number",
		STRING:  "string",
		CHAR:    "char",
		COMMENT: "comment",
		PREPROC: "preproc",
		PUNCT:   "punct",
		OPER:    "oper",
	}
	if typ >= numTokenTypes {
		return typeStrings[INVALID]
	}
	return typeStrings[typ]
}

// Location identifies the position of a token within a source stream.
type Location struct {
	File string // a name representing the source stream
	Path string // a physical location which may differ from File
	Pos  int
	Line int // line number (starting at 1 when tracked)
}

func (loc *Location) String() string {
	switch {
	case loc.Pos < 0:
		return loc.File
	case loc.Line == 0:
		return fmt.Sprintf("%s[%d]", loc.File, loc.Pos)
	default:
		return fmt.Sprintf("%s:%d", loc.File, loc.Line)
	}
}

// LocationError attaches a source location to an underlying error.
type LocationError struct {
	Err    error
	Source *Location
}

func (err *LocationError) Error() string {
	return fmt.Sprintf("%s: %s", err.Source, err.Err)
}
