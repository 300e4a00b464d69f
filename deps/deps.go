// Copyright © 2025 The srcscope authors

// Package deps derives a type dependency graph from a scope tree.
//
// The pass runs after analysis and is pure: it never mutates the tree, so
// running it again over the same tree yields the same graph.  Names that do
// not resolve to a type in the tree are dropped rather than guessed at, and
// a type never relates to itself.
package deps

import (
	"sort"

	"github.com/srcscope/srcscope/ast"
)

// Kind classifies a relationship between two types.
type Kind int

const (
	// Inherits: From names To in its base list.
	Inherits Kind = iota
	// Owns: From holds To by value.
	Owns
	// Aggregates: From holds To by pointer or reference.
	Aggregates
	// Uses: a member function of From mentions To.
	Uses
)

func (k Kind) String() string {
	switch k {
	case Inherits:
		return "inherits"
	case Owns:
		return "owns"
	case Aggregates:
		return "aggregates"
	case Uses:
		return "uses"
	default:
		return "invalid"
	}
}

// Relationship is one edge of the dependency graph.  Line is where the
// relationship was observed in From's source.
type Relationship struct {
	From *ast.Node
	To   *ast.Node
	Kind Kind
	Line int
}

// Graph is the type dependency graph for one analyzed tree.  Types and
// Rels are in deterministic order.
type Graph struct {
	Types []*ast.Node
	Rels  []Relationship
}

// Analyze builds the dependency graph for the tree rooted at root.
func Analyze(root *ast.Node) *Graph {
	g := &Graph{}
	byName := make(map[string]*ast.Node)
	ast.Walk(root, func(n *ast.Node, _ int) {
		if !n.Kind.TypeLike() {
			return
		}
		g.Types = append(g.Types, n)
		if _, ok := byName[n.Name]; !ok {
			byName[n.Name] = n
		}
	})
	for _, t := range g.Types {
		analyzeType(g, byName, t)
	}
	g.dedup()
	return g
}

func analyzeType(g *Graph, byName map[string]*ast.Node, t *ast.Node) {
	for _, base := range t.Bases {
		g.relate(byName, t, base, Inherits, t.StartLine)
	}
	for _, d := range t.Decls {
		switch d.Kind {
		case ast.DeclData:
			kind := Owns
			if containsAny(d.Toks, "*", "&") {
				kind = Aggregates
			}
			for _, w := range d.Toks {
				g.relate(byName, t, w, kind, d.Line)
			}
		case ast.DeclFunc:
			for _, w := range d.Toks {
				g.relate(byName, t, w, Uses, d.Line)
			}
		}
	}
	for _, child := range t.Children {
		if child.Kind != ast.Function && child.Kind != ast.Lambda {
			continue
		}
		ast.Walk(child, func(n *ast.Node, _ int) {
			for _, w := range n.Sig {
				g.relate(byName, t, w, Uses, n.StartLine)
			}
			for _, d := range n.Decls {
				for _, w := range d.Toks {
					g.relate(byName, t, w, Uses, d.Line)
				}
			}
		})
	}
}

// relate records an edge when name resolves to a known type other than
// from.  Unresolvable names are dropped.
func (g *Graph) relate(byName map[string]*ast.Node, from *ast.Node, name string, kind Kind, line int) {
	to, ok := byName[name]
	if !ok || to == from {
		return
	}
	g.Rels = append(g.Rels, Relationship{From: from, To: to, Kind: kind, Line: line})
}

// dedup sorts edges and collapses repeats of the same (From, To, Kind),
// keeping the earliest observation.  Distinct kinds between the same pair
// remain distinct facts.
func (g *Graph) dedup() {
	sort.SliceStable(g.Rels, func(i, j int) bool {
		a, b := g.Rels[i], g.Rels[j]
		if a.From.Path != b.From.Path {
			return a.From.Path < b.From.Path
		}
		if a.To.Path != b.To.Path {
			return a.To.Path < b.To.Path
		}
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		return a.Line < b.Line
	})
	out := g.Rels[:0]
	for i, r := range g.Rels {
		if i > 0 && sameEdge(r, g.Rels[i-1]) {
			continue
		}
		out = append(out, r)
	}
	g.Rels = out
}

func sameEdge(a, b Relationship) bool {
	return a.From == b.From && a.To == b.To && a.Kind == b.Kind
}

// From returns the outgoing edges of one type, in graph order.
func (g *Graph) From(t *ast.Node) []Relationship {
	var rels []Relationship
	for _, r := range g.Rels {
		if r.From == t {
			rels = append(rels, r)
		}
	}
	return rels
}

func containsAny(toks []string, words ...string) bool {
	for _, t := range toks {
		for _, w := range words {
			if t == w {
				return true
			}
		}
	}
	return false
}
