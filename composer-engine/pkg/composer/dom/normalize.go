package dom

// Normalize applies structural normalization to the whole Dom: empty Text
// nodes are deleted, adjacent Text siblings are merged, adjacent
// formatting containers of identical kind are merged, and empty
// formatting/link containers are pruned. Block containers (Paragraph,
// Quote, CodeBlock, List, ListItem) are preserved even when empty unless
// keepBlock is false.
func (d *Dom) Normalize(keepBlock bool) {
	normalizeChildren(d.Root, keepBlock)
	d.recomputeHandles(d.Root, RootHandle())
}

func normalizeChildren(n *Node, keepBlock bool) {
	if !n.Kind.IsContainer() {
		return
	}
	for _, c := range n.Children {
		normalizeChildren(c, keepBlock)
	}

	// (a) delete empty text nodes
	kept := n.Children[:0]
	for _, c := range n.Children {
		if c.IsEmptyText() {
			continue
		}
		kept = append(kept, c)
	}
	n.Children = kept

	// (b) merge adjacent text siblings
	n.Children = mergeAdjacentText(n.Children)

	// (c) merge adjacent formatting containers of identical kind
	n.Children = mergeAdjacentFormatting(n.Children)

	// (d) remove empty formatting/link containers; preserve blocks
	kept = n.Children[:0]
	for _, c := range n.Children {
		if c.Kind.IsContainer() && len(c.Children) == 0 {
			if c.Kind.IsFormatting() || c.Kind == KindLink {
				continue
			}
			if c.Kind.IsBlock() && !keepBlock {
				continue
			}
		}
		kept = append(kept, c)
	}
	n.Children = kept
}

func mergeAdjacentText(children []*Node) []*Node {
	out := children[:0]
	for _, c := range children {
		if c.Kind == KindText && len(out) > 0 && out[len(out)-1].Kind == KindText {
			out[len(out)-1].Text += c.Text
			continue
		}
		out = append(out, c)
	}
	return out
}

func mergeAdjacentFormatting(children []*Node) []*Node {
	out := children[:0]
	for _, c := range children {
		if len(out) > 0 && c.Kind.IsContainer() && FormattingKindsEqual(out[len(out)-1], c) {
			prev := out[len(out)-1]
			prev.Children = mergeAdjacentFormatting(mergeAdjacentText(append(prev.Children, c.Children...)))
			continue
		}
		out = append(out, c)
	}
	return out
}

// JoinNodesInContainer merges mergeable adjacent children (per the same
// rules as Normalize) within the single container addressed by h, without
// walking the rest of the Dom. Used after a structural cut to re-merge
// text split across it.
func (d *Dom) JoinNodesInContainer(h Handle) {
	n := d.MustLookup(h)
	if !n.Kind.IsContainer() {
		return
	}
	n.Children = mergeAdjacentText(n.Children)
	n.Children = mergeAdjacentFormatting(n.Children)
	d.recomputeHandles(n, h)
}

// RemoveEmptyContainerNodes walks the whole Dom removing empty formatting
// and link containers, and (when keepBlock is false) empty block
// containers too.
func (d *Dom) RemoveEmptyContainerNodes(keepBlock bool) {
	removeEmpty(d.Root, keepBlock)
	d.recomputeHandles(d.Root, RootHandle())
}

func removeEmpty(n *Node, keepBlock bool) {
	if !n.Kind.IsContainer() {
		return
	}
	for _, c := range n.Children {
		removeEmpty(c, keepBlock)
	}
	kept := n.Children[:0]
	for _, c := range n.Children {
		if c.Kind.IsContainer() && len(c.Children) == 0 {
			if c.Kind.IsFormatting() || c.Kind == KindLink {
				continue
			}
			if c.Kind.IsBlock() && !keepBlock {
				continue
			}
		}
		kept = append(kept, c)
	}
	n.Children = kept
}
