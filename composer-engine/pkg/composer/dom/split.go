package dom

// SplitSubTreeFrom lifts the subtree from depth downward that begins at
// the cut point (leaf, offset): a Text leaf is cut at the byte offset
// given, the left half remains in place, and everything at or after the
// cut (including full siblings following the cut's ancestor chain) is
// returned as a detached fragment whose root has the same Kind (and, for
// Link, the same URL/Attrs) as the ancestor at depth. The returned
// fragment is not inserted anywhere; the caller decides where it goes.
func (d *Dom) SplitSubTreeFrom(leaf Handle, offset int, depth int) *Node {
	ancestorHandle := leaf.SubHandleUpToDepth(depth)
	ancestor := d.MustLookup(ancestorHandle)
	path := leaf.Raw()
	if depth > len(path) {
		Raise("split depth %d exceeds leaf depth %d", depth, len(path))
	}
	relPath := path[depth:]
	right := splitNodeAt(ancestor, relPath, offset)
	d.recomputeHandles(ancestor, ancestorHandle)
	if right == nil {
		right = &Node{Kind: ancestor.Kind, LinkURL: ancestor.LinkURL, Attrs: cloneAttrs(ancestor.Attrs)}
	}
	return right
}

// SplitSubTreeBetween lifts out and returns the detached middle subtree
// strictly between (leaf1, offset1) and (leaf2, offset2), both cut at
// depth. The material before leaf1 and after leaf2 is rejoined as
// siblings at depth, with the gap where the middle used to be.
func (d *Dom) SplitSubTreeBetween(leaf1 Handle, offset1 int, leaf2 Handle, offset2 int, depth int) *Node {
	tail := d.SplitSubTreeFrom(leaf2, offset2, depth)
	middle := d.SplitSubTreeFrom(leaf1, offset1, depth)
	ancestorHandle := leaf1.SubHandleUpToDepth(depth)
	d.InsertAt(ancestorHandle.NextSibling(), tail)
	return middle
}

// splitNodeAt mutates node in place to keep only the portion at and
// before relPath/offset, and returns a newly built node (of the same
// shape as node, down the unwalked children) holding the portion at and
// after the cut. A nil return means nothing needs to move right (the cut
// landed exactly at node's end).
func splitNodeAt(node *Node, relPath []int, offset int) *Node {
	if len(relPath) == 0 {
		if node.Kind != KindText {
			Raise("split: cut point %q is not a text leaf", node.Kind)
		}
		if offset <= 0 {
			right := &Node{Kind: KindText, Text: node.Text}
			node.Text = ""
			return right
		}
		if offset >= len(node.Text) {
			return nil
		}
		right := &Node{Kind: KindText, Text: node.Text[offset:]}
		node.Text = node.Text[:offset]
		return right
	}

	idx := relPath[0]
	if idx < 0 || idx >= len(node.Children) {
		Raise("split: child index %d out of range (len=%d)", idx, len(node.Children))
	}
	child := node.Children[idx]
	rightChild := splitNodeAt(child, relPath[1:], offset)

	rightSiblings := append([]*Node{}, node.Children[idx+1:]...)
	node.Children = node.Children[:idx+1]

	if len(rightSiblings) == 0 && rightChild == nil {
		return nil
	}
	right := &Node{Kind: node.Kind, LinkURL: node.LinkURL, Attrs: cloneAttrs(node.Attrs)}
	if rightChild != nil {
		right.Children = append(right.Children, rightChild)
	}
	right.Children = append(right.Children, rightSiblings...)
	return right
}

func cloneAttrs(attrs map[string]string) map[string]string {
	if attrs == nil {
		return nil
	}
	cp := make(map[string]string, len(attrs))
	for k, v := range attrs {
		cp[k] = v
	}
	return cp
}
