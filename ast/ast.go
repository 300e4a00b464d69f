// Copyright © 2025 The srcscope authors

// Package ast defines the type-scoped abstract syntax tree produced by the
// analysis pipeline.  Nodes form a strict tree: every non-root node has
// exactly one parent and owns its children.  A node discovered in one file
// may later be reopened while processing another file (see the builder's
// relocation rule); its File always names the file that created it.
package ast

import "fmt"

// ScopeKind is the closed set of scope categories recognized by the grammar.
type ScopeKind int

const (
	Global ScopeKind = iota
	Namespace
	Class
	Struct
	Interface
	Enum
	Function
	Lambda
	Block

	numScopeKinds
)

func (k ScopeKind) String() string {
	kindStrings := [numScopeKinds]string{
		Global:    "global",
		Namespace: "namespace",
		Class:     "class",
		Struct:    "struct",
		Interface: "interface",
		Enum:      "enum",
		Function:  "function",
		Lambda:    "lambda",
		Block:     "block",
	}
	if k < 0 || k >= numScopeKinds {
		return "invalid"
	}
	return kindStrings[k]
}

// Countable reports whether the kind contributes to the complexity score.
// Blocks and enums delimit lines but do not add structural complexity.
func (k ScopeKind) Countable() bool {
	switch k {
	case Namespace, Class, Struct, Interface, Function, Lambda:
		return true
	}
	return false
}

// TypeLike reports whether the kind declares a type that can participate in
// dependency relationships.
func (k ScopeKind) TypeLike() bool {
	switch k {
	case Class, Struct, Interface, Enum:
		return true
	}
	return false
}

// Access is a member accessibility level.
type Access int

const (
	Private Access = iota
	Protected
	Public
)

func (a Access) String() string {
	switch a {
	case Public:
		return "public"
	case Protected:
		return "protected"
	case Private:
		return "private"
	default:
		return "invalid"
	}
}

// DeclKind classifies a recognized declaration.
type DeclKind int

const (
	DeclData DeclKind = iota
	DeclTypeAlias
	DeclForward
	DeclUsing
	DeclFunc
)

func (k DeclKind) String() string {
	switch k {
	case DeclData:
		return "data"
	case DeclTypeAlias:
		return "alias"
	case DeclForward:
		return "forward"
	case DeclUsing:
		return "using"
	case DeclFunc:
		return "func"
	default:
		return "invalid"
	}
}

// Declaration records one data or type declaration found directly inside a
// scope.  The token texts are retained verbatim for display and for the
// dependency pass.
type Declaration struct {
	Access  Access
	Kind    DeclKind
	Package string
	Line    int
	Toks    []string
}

// Node is one scope in the tree.
type Node struct {
	Kind       ScopeKind
	Name       string
	Package    string // enclosing namespace chain
	File       string // source file that opened the scope
	Path       string // qualified scope path, e.g. Shape::area
	StartLine  int
	EndLine    int
	Complexity int
	Parent     *Node
	Children   []*Node
	Decls      []*Declaration
	Bases      []string // base-list names recorded at scope open
	Sig        []string // scope-opening statement tokens (functions, lambdas)
}

// NewRoot returns the global scope node that anchors a tree.
func NewRoot() *Node {
	return &Node{
		Kind:      Global,
		Name:      "Global Scope",
		Path:      "Global Scope",
		StartLine: 1,
		EndLine:   1,
	}
}

// NewChild creates a node, links it under n and returns it.
func (n *Node) NewChild(kind ScopeKind, name, pkg string, line int) *Node {
	child := &Node{
		Kind:      kind,
		Name:      name,
		Package:   pkg,
		Path:      n.Path + "::" + name,
		StartLine: line,
		EndLine:   line,
		Parent:    n,
	}
	n.Children = append(n.Children, child)
	return child
}

// FindChild returns the existing child with the given name and kind, or nil.
func (n *Node) FindChild(name string, kind ScopeKind) *Node {
	for _, child := range n.Children {
		if child.Name == name && child.Kind == kind {
			return child
		}
	}
	return nil
}

// FindTypeChild returns the existing type-like child with the given name
// regardless of which type-like kind declared it.
func (n *Node) FindTypeChild(name string) *Node {
	for _, child := range n.Children {
		if child.Name == name && child.Kind.TypeLike() {
			return child
		}
	}
	return nil
}

// Size returns the node extent in lines.
func (n *Node) Size() int {
	return n.EndLine - n.StartLine + 1
}

func (n *Node) String() string {
	return fmt.Sprintf("%s %s [%d, %d]", n.Kind, n.Name, n.StartLine, n.EndLine)
}

// Walk calls fn for every node in the tree rooted at n, depth-first,
// parents before children.
func Walk(n *Node, fn func(node *Node, depth int)) {
	walkNode(n, 0, fn)
}

func walkNode(n *Node, depth int, fn func(*Node, int)) {
	if n == nil {
		return
	}
	fn(n, depth)
	for _, child := range n.Children {
		walkNode(child, depth+1, fn)
	}
}
