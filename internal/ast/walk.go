package ast

// Walk traverses the tree rooted at node, calling fn for each node visited
// in pre-order. If fn returns false, Walk does not descend into that
// node's children.
func Walk(node *Node, fn func(*Node) bool) {
	if node == nil || !fn(node) {
		return
	}

	for _, lists := range [][]*Node{
		node.TypeParams, node.Params, node.Members, node.Operands,
		node.Args, node.TypeArgs, node.Elements, node.Catches,
		node.Cases, node.Stmts,
	} {
		for _, child := range lists {
			Walk(child, fn)
		}
	}

	for _, child := range []*Node{
		node.Inherits, node.Type, node.Bound, node.Default, node.Init,
		node.Lambda, node.Target, node.Value, node.Body, node.Left, node.Right,
	} {
		Walk(child, fn)
	}
}
