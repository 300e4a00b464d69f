// Copyright © 2025 The srcscope authors

package grammar

import "github.com/srcscope/srcscope/ast"

// EventKind discriminates the events a rule can yield.
type EventKind int

const (
	// EventOpen introduces a new scope.
	EventOpen EventKind = iota
	// EventClose terminates the innermost open scope.
	EventClose
	// EventDecl records a declaration inside the innermost open scope.
	EventDecl
	// EventAccess switches the ambient accessibility of subsequent
	// declarations (C++ access-specifier labels).
	EventAccess
)

func (k EventKind) String() string {
	switch k {
	case EventOpen:
		return "open"
	case EventClose:
		return "close"
	case EventDecl:
		return "decl"
	case EventAccess:
		return "access"
	default:
		return "invalid"
	}
}

// Event is one structured fact recognized from a candidate statement.
type Event struct {
	Kind EventKind
	Line int
	Rule string // name of the rule that produced the event

	// Scope-open fields.
	Scope     ast.ScopeKind
	Name      string
	Qualifier []string // enclosing type names for out-of-class definitions
	Bases     []string // base-list type names
	Toks      []string // the full opening statement (functions and lambdas)

	// Declaration fields.
	Decl      ast.DeclKind
	Access    ast.Access
	HasAccess bool // Access was stated explicitly in the statement
}
