package core

// AltTreeNode is one node of an alternating tree. Except at the root, each
// node pairs an inner (shrinking) region with an outer (growing) region; the
// root has only an outer region. ParentEdge is oriented from the parent's
// outer region's defect toward this node's inner region's defect, and
// InnerToOuterEdge continues from the inner defect to the outer one.
//
// Tree nodes are plain heap objects linked by Parent/Children pointers; the
// matching manager creates and discards them per decode.
type AltTreeNode struct {
	Inner            *GraphFillRegion
	Outer            *GraphFillRegion
	InnerToOuterEdge CompressedEdge

	Parent     *AltTreeNode
	ParentEdge CompressedEdge
	Children   []*AltTreeNode

	// visited is scratch state for common-ancestor walks, always false
	// outside FindCommonAncestor.
	visited bool
}

// NewAltTreeRoot wraps a single outer region as a one-node tree.
func NewAltTreeRoot(region *GraphFillRegion) *AltTreeNode {
	node := &AltTreeNode{Outer: region}
	region.TreeNode = node

	return node
}

// IsRoot reports whether the node has no parent.
func (n *AltTreeNode) IsRoot() bool { return n.Parent == nil }

// AddChild links child under n. childEdge runs from n.Outer's defect to
// child.Inner's defect.
func (n *AltTreeNode) AddChild(child *AltTreeNode, childEdge CompressedEdge) {
	child.Parent = n
	child.ParentEdge = childEdge
	n.Children = append(n.Children, child)
}

// RemoveChild unlinks child from n. The child keeps its subtree.
func (n *AltTreeNode) RemoveChild(child *AltTreeNode) {
	for i, c := range n.Children {
		if c == child {
			last := len(n.Children) - 1
			n.Children[i] = n.Children[last]
			n.Children[last] = nil
			n.Children = n.Children[:last]
			child.Parent = nil
			child.ParentEdge = CompressedEdge{}

			return
		}
	}
}

// Root walks up to the tree root.
func (n *AltTreeNode) Root() *AltTreeNode {
	cur := n
	for cur.Parent != nil {
		cur = cur.Parent
	}

	return cur
}

// BecomeRoot re-roots the tree at n. Walking up from n, every ancestor's
// inner region flips down one level: the old parent receives this node's
// inner region (and inner-to-outer edge reversed), and the parent/child
// links along the path reverse. Afterwards n has no inner region and no
// parent, which is exactly the shape an augmenting pass needs before it
// pairs off the remaining (inner, outer) couples.
func (n *AltTreeNode) BecomeRoot() {
	if n.Parent == nil {
		return
	}
	parent := n.Parent
	parentEdge := n.ParentEdge

	parent.BecomeRoot()

	parent.RemoveChild(n)
	parent.Inner = n.Inner
	parent.InnerToOuterEdge = parentEdge.Reversed()
	if parent.Inner != nil {
		parent.Inner.TreeNode = parent
	}
	n.AddChild(parent, n.InnerToOuterEdge.Reversed())

	n.Inner = nil
	n.InnerToOuterEdge = CompressedEdge{}
	n.Parent = nil
	n.ParentEdge = CompressedEdge{}
}

// FindCommonAncestor returns the deepest node that is an ancestor of both n
// and other (either may be the ancestor itself). The two nodes must belong
// to the same tree. Scratch visited flags are cleared before returning.
func (n *AltTreeNode) FindCommonAncestor(other *AltTreeNode) *AltTreeNode {
	for cur := n; cur != nil; cur = cur.Parent {
		cur.visited = true
	}
	ancestor := other
	for !ancestor.visited {
		ancestor = ancestor.Parent
	}
	for cur := n; cur != nil; cur = cur.Parent {
		cur.visited = false
	}

	return ancestor
}

// PathTo returns the nodes from n up to ancestor inclusive. n must be a
// descendant of ancestor (or ancestor itself).
func (n *AltTreeNode) PathTo(ancestor *AltTreeNode) []*AltTreeNode {
	var path []*AltTreeNode
	for cur := n; ; cur = cur.Parent {
		path = append(path, cur)
		if cur == ancestor {
			return path
		}
	}
}

// Walk visits n and every descendant, parents before children.
func (n *AltTreeNode) Walk(fn func(*AltTreeNode)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// TreeSize returns the number of nodes in the subtree rooted at n.
func (n *AltTreeNode) TreeSize() int {
	size := 1
	for _, c := range n.Children {
		size += c.TreeSize()
	}

	return size
}
