// Copyright © 2025 The srcscope authors

// Package report renders analysis results for people.  Plain text writers
// cover the interactive surfaces; Export produces JSON or YAML for tools.
package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"

	"github.com/srcscope/srcscope/analysis"
	"github.com/srcscope/srcscope/ast"
	"github.com/srcscope/srcscope/deps"
)

// Limits bound the metric summary.  Nodes exceeding either limit are
// singled out by Summary.
type Limits struct {
	MaxSize       int
	MaxComplexity int
}

// DefaultLimits mirror the usual review thresholds for function size and
// nesting.
var DefaultLimits = Limits{MaxSize: 50, MaxComplexity: 10}

const wrapWidth = 72

// Metrics writes one row per named scope: file, kind, name, start line,
// size in lines and complexity.
func Metrics(w io.Writer, res *analysis.Result) {
	fmt.Fprintf(w, "%-24s %-10s %-28s %6s %6s %6s\n", "file", "kind", "name", "line", "size", "cplx")
	ast.Walk(res.Root, func(n *ast.Node, _ int) {
		if n.Kind == ast.Global || n.Kind == ast.Block {
			return
		}
		fmt.Fprintf(w, "%-24s %-10s %-28s %6d %6d %6d\n",
			n.File, n.Kind, n.Name, n.StartLine, n.Size(), n.Complexity)
	})
}

// PublicData lists every public data declaration, the usual first target
// of an encapsulation review.
func PublicData(w io.Writer, res *analysis.Result) {
	found := false
	ast.Walk(res.Root, func(n *ast.Node, _ int) {
		for _, d := range n.Decls {
			if d.Kind != ast.DeclData || d.Access != ast.Public {
				continue
			}
			found = true
			fmt.Fprintf(w, "%s:%d: %s: %s\n", n.File, d.Line, n.Path, strings.Join(d.Toks, " "))
		}
	})
	if !found {
		fmt.Fprintln(w, "no public data declarations")
	}
}

// Tree renders the scope tree with two-space indentation per level.
func Tree(w io.Writer, root *ast.Node) {
	ast.Walk(root, func(n *ast.Node, depth int) {
		fmt.Fprintf(w, "%s%s, cplx %d\n", strings.Repeat("  ", depth), n, n.Complexity)
	})
}

// SLOC lists the physical line count per analyzed file, then the total.
func SLOC(w io.Writer, res *analysis.Result) {
	total := 0
	for _, path := range sortedKeys(res.SLOC) {
		fmt.Fprintf(w, "%8d  %s\n", res.SLOC[path], path)
		total += res.SLOC[path]
	}
	fmt.Fprintf(w, "%8d  total\n", total)
}

// Relations lists the dependency graph edges followed by its fingerprint.
func Relations(w io.Writer, g *deps.Graph) {
	for _, r := range g.Rels {
		fmt.Fprintf(w, "%s %s %s (line %d)\n", r.From.Name, r.Kind, r.To.Name, r.Line)
	}
	fmt.Fprintf(w, "fingerprint %016x\n", g.Fingerprint())
}

// Summary writes run totals, the scopes exceeding the limits, and any
// degradations.
func Summary(w io.Writer, res *analysis.Result, limits Limits) {
	types, funcs := 0, 0
	var over []*ast.Node
	ast.Walk(res.Root, func(n *ast.Node, _ int) {
		switch {
		case n.Kind.TypeLike():
			types++
		case n.Kind == ast.Function || n.Kind == ast.Lambda:
			funcs++
		}
		if n.Kind == ast.Global || n.Kind == ast.Block {
			return
		}
		if n.Size() > limits.MaxSize || n.Complexity > limits.MaxComplexity {
			over = append(over, n)
		}
	})
	total := 0
	for _, n := range res.SLOC {
		total += n
	}
	fmt.Fprintf(w, "files %d, lines %d, types %d, functions %d\n",
		len(res.SLOC), total, types, funcs)

	if len(over) > 0 {
		fmt.Fprintf(w, "over limits (size > %d or cplx > %d):\n", limits.MaxSize, limits.MaxComplexity)
		for _, n := range over {
			fmt.Fprintf(w, "  %s:%d: %s %s (size %d, cplx %d)\n",
				n.File, n.StartLine, n.Kind, n.Name, n.Size(), n.Complexity)
		}
	}
	if len(res.Degradations) > 0 {
		fmt.Fprintf(w, "degradations %d:\n", len(res.Degradations))
		for _, d := range res.Degradations {
			fmt.Fprint(w, indent.String(wordwrap.String(d.String(), wrapWidth), 2))
			fmt.Fprintln(w)
		}
	}
}

func sortedKeys(m map[string]int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
