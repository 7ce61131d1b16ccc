package dom

// Dom owns the root container of the document tree and provides the
// navigation and structural-mutation primitives every edit operation is
// built from.
type Dom struct {
	Root *Node
}

// New creates an empty Dom: a single Container(Generic) root.
func New() *Dom {
	return &Dom{Root: &Node{Kind: KindGeneric, Handle: RootHandle()}}
}

// Clone returns a deep copy of the whole Dom, suitable for pushing onto a
// history stack: mutating the copy never affects the original.
func (d *Dom) Clone() *Dom {
	return &Dom{Root: d.Root.Clone()}
}

// Lookup returns the node addressed by h, or (nil, false) if the path
// doesn't resolve (some index is out of range, or passes through a leaf).
func (d *Dom) Lookup(h Handle) (*Node, bool) {
	n := d.Root
	for _, idx := range h.Raw() {
		if n.Kind.IsLeaf() || idx < 0 || idx >= len(n.Children) {
			return nil, false
		}
		n = n.Children[idx]
	}
	return n, true
}

// MustLookup is Lookup, but raises a Fault instead of returning false.
func (d *Dom) MustLookup(h Handle) *Node {
	n, ok := d.Lookup(h)
	if !ok {
		Raise("handle %s does not resolve", h)
	}
	return n
}

// Parent returns the node's parent, or (nil, false) for the root.
func (d *Dom) Parent(h Handle) (*Node, bool) {
	if h.IsRoot() {
		return nil, false
	}
	return d.Lookup(h.Parent())
}

// Contains reports whether h resolves to a node in this Dom.
func (d *Dom) Contains(h Handle) bool {
	_, ok := d.Lookup(h)
	return ok
}

// InsertAt inserts node as a new child at the position h addresses,
// shifting the sibling previously at that index (and all following it)
// one place to the right. h must address a position within an existing
// parent's children (it need not resolve to an existing node itself).
func (d *Dom) InsertAt(h Handle, node *Node) {
	if h.IsRoot() {
		Raise("cannot insert at the root handle")
	}
	parentHandle := h.Parent()
	parent := d.MustLookup(parentHandle)
	idx := h.IndexInParent()
	if idx < 0 || idx > len(parent.Children) {
		Raise("insert index %d out of range (len=%d)", idx, len(parent.Children))
	}
	parent.Children = append(parent.Children, nil)
	copy(parent.Children[idx+1:], parent.Children[idx:])
	parent.Children[idx] = node
	d.recomputeHandles(parent, parentHandle)
}

// AppendChild appends node as the last child of the node addressed by
// parentHandle and returns its new handle.
func (d *Dom) AppendChild(parentHandle Handle, node *Node) Handle {
	parent := d.MustLookup(parentHandle)
	parent.Children = append(parent.Children, node)
	d.recomputeHandles(parent, parentHandle)
	return parentHandle.Child(len(parent.Children) - 1)
}

// Remove deletes the node addressed by h from its parent's children.
func (d *Dom) Remove(h Handle) {
	if h.IsRoot() {
		Raise("cannot remove the root")
	}
	parentHandle := h.Parent()
	parent := d.MustLookup(parentHandle)
	idx := h.IndexInParent()
	if idx < 0 || idx >= len(parent.Children) {
		Raise("remove index %d out of range (len=%d)", idx, len(parent.Children))
	}
	parent.Children = append(parent.Children[:idx], parent.Children[idx+1:]...)
	d.recomputeHandles(parent, parentHandle)
}

// Replace substitutes the node addressed by h with zero or more nodes.
func (d *Dom) Replace(h Handle, nodes []*Node) {
	if h.IsRoot() {
		Raise("cannot replace the root")
	}
	parentHandle := h.Parent()
	parent := d.MustLookup(parentHandle)
	idx := h.IndexInParent()
	if idx < 0 || idx >= len(parent.Children) {
		Raise("replace index %d out of range (len=%d)", idx, len(parent.Children))
	}
	tail := append([]*Node{}, parent.Children[idx+1:]...)
	head := append([]*Node{}, parent.Children[:idx]...)
	parent.Children = append(append(head, nodes...), tail...)
	d.recomputeHandles(parent, parentHandle)
}

// ReplaceRange substitutes the contiguous run of children
// [fromIdx, toIdx] (inclusive) of the node addressed by parentHandle with
// nodes, in one step. Used to wrap or unwrap a run of sibling leaves with
// a single new container without disturbing their neighbors.
func (d *Dom) ReplaceRange(parentHandle Handle, fromIdx, toIdx int, nodes []*Node) {
	parent := d.MustLookup(parentHandle)
	if fromIdx < 0 || toIdx < fromIdx || toIdx >= len(parent.Children) {
		Raise("replace range [%d,%d] out of bounds (len=%d)", fromIdx, toIdx, len(parent.Children))
	}
	head := append([]*Node{}, parent.Children[:fromIdx]...)
	tail := append([]*Node{}, parent.Children[toIdx+1:]...)
	parent.Children = append(append(head, nodes...), tail...)
	d.recomputeHandles(parent, parentHandle)
}

// recomputeHandles sets node's own handle to h and recursively reassigns
// every descendant's handle from scratch. Called after any change to a
// node's Children slice.
func (d *Dom) recomputeHandles(node *Node, h Handle) {
	node.Handle = h
	for i, c := range node.Children {
		d.recomputeHandles(c, h.Child(i))
	}
}

// Walk performs a pre-order traversal of the whole Dom, calling fn once
// per node (including containers).
func (d *Dom) Walk(fn func(*Node)) { walk(d.Root, fn) }

func walk(n *Node, fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		walk(c, fn)
	}
}

// Leaves returns every leaf node (Text, LineBreak, Zwsp, Mention) in
// document order.
func (d *Dom) Leaves() []*Node {
	var out []*Node
	d.Walk(func(n *Node) {
		if n.Kind.IsLeaf() {
			out = append(out, n)
		}
	})
	return out
}

// DeepestBlockNode returns the innermost block-container ancestor of h, h
// itself included (Paragraph, ListItem, Quote, CodeBlock, an ordered or
// unordered List, or else the root Generic), skipping the node addressed by
// except if it is itself that ancestor.
func (d *Dom) DeepestBlockNode(h Handle, except *Handle) *Node {
	cur := h
	for {
		n, ok := d.Lookup(cur)
		if ok && (cur.IsRoot() || n.Kind.IsBlock()) {
			if except == nil || cur.Compare(*except) != 0 {
				return n
			}
		}
		if cur.IsRoot() {
			return d.Root
		}
		cur = cur.Parent()
	}
}

// AncestorOfKind returns the nearest ancestor of h (inclusive) whose Kind
// satisfies pred, or nil if none does.
func (d *Dom) AncestorOfKind(h Handle, pred func(Kind) bool) *Node {
	cur := h
	for {
		n, ok := d.Lookup(cur)
		if ok && pred(n.Kind) {
			return n
		}
		if cur.IsRoot() {
			return nil
		}
		cur = cur.Parent()
	}
}
