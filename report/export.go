// Copyright © 2025 The srcscope authors

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/srcscope/srcscope/analysis"
	"github.com/srcscope/srcscope/ast"
	"github.com/srcscope/srcscope/deps"
)

// Document is the machine-readable form of one analysis run.
type Document struct {
	Root         *ScopeDoc      `json:"root" yaml:"root"`
	SLOC         map[string]int `json:"sloc,omitempty" yaml:"sloc,omitempty"`
	Degradations []string       `json:"degradations,omitempty" yaml:"degradations,omitempty"`
	Relations    []RelationDoc  `json:"relations,omitempty" yaml:"relations,omitempty"`
	Fingerprint  string         `json:"fingerprint,omitempty" yaml:"fingerprint,omitempty"`
}

// ScopeDoc flattens one tree node for serialization.  The parent link is
// implied by nesting; line extent collapses to a two-element range.
type ScopeDoc struct {
	Kind       string      `json:"kind" yaml:"kind"`
	Name       string      `json:"name" yaml:"name"`
	Package    string      `json:"package,omitempty" yaml:"package,omitempty"`
	File       string      `json:"file,omitempty" yaml:"file,omitempty"`
	Lines      [2]int      `json:"lines" yaml:"lines,flow"`
	Complexity int         `json:"complexity" yaml:"complexity"`
	Bases      []string    `json:"bases,omitempty" yaml:"bases,omitempty"`
	Decls      []DeclDoc   `json:"decls,omitempty" yaml:"decls,omitempty"`
	Children   []*ScopeDoc `json:"children,omitempty" yaml:"children,omitempty"`
}

// DeclDoc is one declaration inside a scope.
type DeclDoc struct {
	Kind   string `json:"kind" yaml:"kind"`
	Access string `json:"access" yaml:"access"`
	Line   int    `json:"line" yaml:"line"`
	Text   string `json:"text" yaml:"text"`
}

// RelationDoc is one dependency graph edge.
type RelationDoc struct {
	From string `json:"from" yaml:"from"`
	Kind string `json:"kind" yaml:"kind"`
	To   string `json:"to" yaml:"to"`
	Line int    `json:"line" yaml:"line"`
}

// NewDocument assembles the export document.  The graph may be nil when
// only the tree is wanted.
func NewDocument(res *analysis.Result, g *deps.Graph) *Document {
	doc := &Document{
		Root: scopeDoc(res.Root),
		SLOC: res.SLOC,
	}
	for _, d := range res.Degradations {
		doc.Degradations = append(doc.Degradations, d.String())
	}
	if g != nil {
		for _, r := range g.Rels {
			doc.Relations = append(doc.Relations, RelationDoc{
				From: r.From.Path,
				Kind: r.Kind.String(),
				To:   r.To.Path,
				Line: r.Line,
			})
		}
		doc.Fingerprint = fmt.Sprintf("%016x", g.Fingerprint())
	}
	return doc
}

func scopeDoc(n *ast.Node) *ScopeDoc {
	doc := &ScopeDoc{
		Kind:       n.Kind.String(),
		Name:       n.Name,
		Package:    n.Package,
		File:       n.File,
		Lines:      [2]int{n.StartLine, n.EndLine},
		Complexity: n.Complexity,
		Bases:      n.Bases,
	}
	for _, d := range n.Decls {
		doc.Decls = append(doc.Decls, DeclDoc{
			Kind:   d.Kind.String(),
			Access: d.Access.String(),
			Line:   d.Line,
			Text:   strings.Join(d.Toks, " "),
		})
	}
	for _, child := range n.Children {
		doc.Children = append(doc.Children, scopeDoc(child))
	}
	return doc
}

// Export writes the document in the requested format, "json" or "yaml".
func Export(w io.Writer, doc *Document, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(w)
		defer enc.Close()
		return enc.Encode(doc)
	default:
		return fmt.Errorf("unknown export format %q", format)
	}
}
