// Copyright © 2025 The srcscope authors

// Package grammar recognizes scope-introducing and declaration-introducing
// constructs in candidate statements.  It is modeled as an ordered table of
// independent rules evaluated top to bottom; the first rule to match a
// statement wins and no backtracking occurs across rules.
//
// Angle-bracket syntax is ambiguous between template parameter lists and
// relational/shift operator sequences.  Dedicated disambiguation runs before
// the function and declaration rules, and any statement whose angle brackets
// cannot be balanced is conservatively classified as a declaration rather
// than a scope, so that the builder never opens a scope that cannot close.
// This policy is deliberately imprecise for deeply nested generic constructs;
// it trades occasional misclassification for a stack that always unwinds.
package grammar

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/srcscope/srcscope/parser/stmt"
)

// Dialect selects between the two supported input conventions.
type Dialect int

const (
	// Cpp sources split declarations (headers) from definitions.
	Cpp Dialect = iota
	// CSharp sources define all members inline.
	CSharp
)

func (d Dialect) String() string {
	switch d {
	case Cpp:
		return "c++"
	case CSharp:
		return "c#"
	default:
		return "invalid"
	}
}

// DialectForFile reports the dialect for a source file based on its
// extension, and false for files in neither dialect.
func DialectForFile(path string) (Dialect, bool) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".h", ".hpp", ".hh", ".hxx", ".cpp", ".cc", ".cxx", ".c":
		return Cpp, true
	case ".cs":
		return CSharp, true
	}
	return 0, false
}

// HeaderFile reports whether path is a C++ header, which carries
// declarations that definition files later attach to.
func HeaderFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".h", ".hpp", ".hh", ".hxx":
		return true
	}
	return false
}

// Rule recognizes a single construct from a candidate statement.
type Rule struct {
	// Name is a short identifier for the rule (e.g. "scope-close").
	Name string

	// Doc is a human-readable description of what the rule matches.
	Doc string

	// Match inspects the statement and either declines (false) or yields
	// the event the statement produces.
	Match func(s *stmt.Statement, d Dialect) (Event, bool)
}

// Engine evaluates the rule table against statements.
type Engine struct {
	rules []Rule
}

// New builds an Engine over the default rule table.  It fails when the rule
// table is malformed; this is the only fatal error in the analysis core and
// aborts the run before any file is processed.
func New() (*Engine, error) {
	return NewFromRules(DefaultRules())
}

// NewFromRules builds an Engine over an explicit rule table.
func NewFromRules(rules []Rule) (*Engine, error) {
	if len(rules) == 0 {
		return nil, errors.New("grammar: empty rule table")
	}
	seen := make(map[string]bool)
	for _, r := range rules {
		if r.Name == "" || r.Match == nil {
			return nil, errors.New("grammar: rule with empty name or match func")
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("grammar: duplicate rule %q", r.Name)
		}
		seen[r.Name] = true
	}
	return &Engine{rules: rules}, nil
}

// Rules returns the names of the rules in evaluation order.
func (e *Engine) Rules() []string {
	names := make([]string, len(e.rules))
	for i, r := range e.rules {
		names[i] = r.Name
	}
	return names
}

// Match evaluates the statement against the rule table in order and returns
// the event produced by the first matching rule.  Match returns false when
// every rule declines; such statements are invisible to the builder.
func (e *Engine) Match(s *stmt.Statement, d Dialect) (Event, bool) {
	if s == nil || s.Len() == 0 {
		return Event{}, false
	}
	for _, r := range e.rules {
		if ev, ok := r.Match(s, d); ok {
			ev.Rule = r.Name
			if ev.Line == 0 {
				ev.Line = s.Line()
			}
			return ev, true
		}
	}
	return Event{}, false
}
