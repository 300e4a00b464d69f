// Copyright © 2025 The srcscope authors

package analysis

import "github.com/srcscope/srcscope/ast"

// Evaluate computes complexity for every node in the tree.  A node's
// complexity is the number of countable scopes in its subtree, counting the
// node itself when its kind is countable.  Anonymous blocks contribute
// nothing, so a leaf function scores 1 and a class scores 1 plus the score
// of each member.  Evaluation is bottom-up and idempotent.
func Evaluate(root *ast.Node) {
	evaluate(root)
}

func evaluate(n *ast.Node) int {
	c := 0
	if n.Kind.Countable() {
		c = 1
	}
	for _, child := range n.Children {
		c += evaluate(child)
	}
	n.Complexity = c
	return c
}
