// Copyright © 2025 The srcscope authors

package analysis

import (
	"strings"

	"github.com/srcscope/srcscope/ast"
	"github.com/srcscope/srcscope/grammar"
)

// frame is one level of the open-scope stack.  Each level carries its own
// ambient access so that `public:` labels apply only to the type that
// contains them.
type frame struct {
	node   *ast.Node
	access ast.Access
}

// builder folds grammar events into the shared scope tree.  The stack
// starts at the tree root for every file; relocation of qualified
// definitions makes the stack jump into a type node and Close returns it.
type builder struct {
	stack   []frame
	path    string
	dialect grammar.Dialect
	report  func(line int, msg string)
}

func newBuilder(root *ast.Node, path string, d grammar.Dialect, report func(int, string)) *builder {
	return &builder{
		stack:   []frame{{node: root, access: ast.Public}},
		path:    path,
		dialect: d,
		report:  report,
	}
}

func (b *builder) top() *frame {
	return &b.stack[len(b.stack)-1]
}

func (b *builder) apply(ev grammar.Event) {
	switch ev.Kind {
	case grammar.EventOpen:
		b.open(ev)
	case grammar.EventClose:
		b.close(ev)
	case grammar.EventAccess:
		b.top().access = ev.Access
	case grammar.EventDecl:
		b.declare(ev)
	}
}

func (b *builder) open(ev grammar.Event) {
	owner := b.top().node
	if len(ev.Qualifier) > 0 {
		owner = b.resolveOwner(ev)
	}
	node := owner.FindChild(ev.Name, ev.Scope)
	if node == nil || ev.Scope == ast.Function || ev.Scope == ast.Block || ev.Scope == ast.Lambda {
		// functions and blocks are never merged across definitions;
		// namespaces and types reopen the existing node
		node = owner.NewChild(ev.Scope, ev.Name, b.packagePath(owner), ev.Line)
		node.File = b.path
		node.Bases = append(node.Bases, ev.Bases...)
		node.Sig = ev.Toks
	} else if len(ev.Bases) > 0 {
		// a header may forward-declare without bases and define with them
		node.Bases = mergeBases(node.Bases, ev.Bases)
	}
	b.stack = append(b.stack, frame{node: node, access: defaultAccess(b.dialect, ev.Scope)})
}

// resolveOwner walks the qualifier chain (`geo::Shape::` for a definition of
// `geo::Shape::area`) down from the innermost open scope that knows the
// first segment.  An unresolvable chain degrades and the definition stays
// where it appeared.
func (b *builder) resolveOwner(ev grammar.Event) *ast.Node {
	cur := b.top().node
	var owner *ast.Node
	for n := cur; owner == nil && n != nil; n = n.Parent {
		owner = findScopeChild(n, ev.Qualifier[0])
	}
	if owner == nil {
		b.report(ev.Line, "owner "+strings.Join(ev.Qualifier, "::")+" not declared; attaching "+ev.Name+" in place")
		return cur
	}
	for _, q := range ev.Qualifier[1:] {
		next := findScopeChild(owner, q)
		if next == nil {
			b.report(ev.Line, "owner "+strings.Join(ev.Qualifier, "::")+" not declared; attaching "+ev.Name+" in place")
			return cur
		}
		owner = next
	}
	return owner
}

// findScopeChild finds a child able to own qualified definitions: a type or
// a namespace.
func findScopeChild(n *ast.Node, name string) *ast.Node {
	if c := n.FindTypeChild(name); c != nil {
		return c
	}
	return n.FindChild(name, ast.Namespace)
}

func (b *builder) close(ev grammar.Event) {
	if len(b.stack) == 1 {
		b.report(ev.Line, "unmatched closing brace at global scope")
		return
	}
	top := b.top().node
	if ev.Line > top.EndLine {
		top.EndLine = ev.Line
	}
	b.stack = b.stack[:len(b.stack)-1]
}

func (b *builder) declare(ev grammar.Event) {
	top := b.top()
	access := top.access
	if ev.HasAccess {
		access = ev.Access
	}
	top.node.Decls = append(top.node.Decls, &ast.Declaration{
		Access:  access,
		Kind:    ev.Decl,
		Package: b.packagePath(top.node),
		Line:    ev.Line,
		Toks:    ev.Toks,
	})
}

// finish closes every scope still open at end of file.  Scopes left open by
// a degraded parse end at the file's last line.
func (b *builder) finish(lastLine int) {
	for len(b.stack) > 1 {
		top := b.top().node
		if lastLine > top.EndLine {
			top.EndLine = lastLine
		}
		b.report(top.StartLine, "scope "+top.Name+" left open at end of file")
		b.stack = b.stack[:len(b.stack)-1]
	}
	root := b.stack[0].node
	if lastLine > root.EndLine {
		root.EndLine = lastLine
	}
}

// packagePath names the namespace chain enclosing a node.
func (b *builder) packagePath(owner *ast.Node) string {
	var parts []string
	for n := owner; n != nil; n = n.Parent {
		if n.Kind == ast.Namespace {
			parts = append([]string{n.Name}, parts...)
		}
	}
	sep := "::"
	if b.dialect == grammar.CSharp {
		sep = "."
	}
	return strings.Join(parts, sep)
}

func defaultAccess(d grammar.Dialect, kind ast.ScopeKind) ast.Access {
	if d == grammar.Cpp && kind == ast.Class {
		return ast.Private
	}
	return ast.Public
}

func mergeBases(have, add []string) []string {
	for _, b := range add {
		found := false
		for _, h := range have {
			if h == b {
				found = true
				break
			}
		}
		if !found {
			have = append(have, b)
		}
	}
	return have
}
