package node

// Traverse visits n and its descendants depth-first, parents before children.
// Returning false from fn skips the visited node's subtree.
//
// Parameters:
//   - n: the subtree root
//   - fn: the visitor
func Traverse(n Node, fn func(Node) bool) {
	if n == nil {
		return
	}
	if !fn(n) {
		return
	}
	for _, c := range n.Children() {
		Traverse(c, fn)
	}
}

// TraverseVisible is like Traverse but skips invisible subtrees.
func TraverseVisible(n Node, fn func(Node)) {
	Traverse(n, func(c Node) bool {
		if !c.Visible() {
			return false
		}
		fn(c)
		return true
	})
}

// FindByName returns the first node in the subtree with the given name.
func FindByName(n Node, name string) Node {
	var found Node
	Traverse(n, func(c Node) bool {
		if found != nil {
			return false
		}
		if c.Name() == name {
			found = c
			return false
		}
		return true
	})
	return found
}

// Count returns the number of nodes in the subtree including n.
func Count(n Node) int {
	total := 0
	Traverse(n, func(Node) bool {
		total++
		return true
	})
	return total
}

// Clear tears down the subtree below n: each child is detached from its parent and then
// cleared recursively, and finally n's own resources are disposed. n itself stays attached
// to its parent. Clearing an empty, already disposed node is a no-op.
//
// Parameters:
//   - n: the subtree root
func Clear(n Node) {
	if n == nil {
		return
	}
	for {
		children := n.Children()
		if len(children) == 0 {
			break
		}
		child := children[0]
		n.Remove(child)
		Clear(child)
	}
	n.Dispose()
}

// Detach removes n from its parent and clears it.
func Detach(n Node) {
	if n == nil {
		return
	}
	if p := n.Parent(); p != nil {
		p.Remove(n)
	}
	Clear(n)
}
