package composer

import (
	"sort"

	"github.com/vortex/composer-engine/pkg/composer/dom"
	"github.com/vortex/composer-engine/pkg/composer/ucs"
)

// Bold toggles bold formatting over the current selection.
func (m *Model[U]) Bold() (Update, error) { return m.dispatchFormat(dom.KindBold) }

// Italic toggles italic formatting over the current selection.
func (m *Model[U]) Italic() (Update, error) { return m.dispatchFormat(dom.KindItalic) }

// StrikeThrough toggles strikethrough formatting over the current selection.
func (m *Model[U]) StrikeThrough() (Update, error) { return m.dispatchFormat(dom.KindStrike) }

// Underline toggles underline formatting over the current selection.
func (m *Model[U]) Underline() (Update, error) { return m.dispatchFormat(dom.KindUnderline) }

// InlineCode toggles inline code formatting over the current selection.
func (m *Model[U]) InlineCode() (Update, error) { return m.dispatchFormat(dom.KindInlineCode) }

func (m *Model[U]) dispatchFormat(kind dom.Kind) (Update, error) {
	return m.dispatch(func() Update {
		m.pushHistory()
		return m.toggleFormat(kind)
	})
}

func (m *Model[U]) toggleFormat(kind dom.Kind) Update {
	s, e := m.safeSelection()
	if s == e {
		m.togglePendingFormat(kind, s)
		return m.buildUpdate(MenuAction{Kind: MenuActionNone})
	}
	leaves := m.splitPartialTextLeaves(s, e)
	if len(leaves) == 0 {
		return m.buildUpdate(MenuAction{Kind: MenuActionNone})
	}
	if m.allLeavesInsideKind(leaves, kind) {
		m.removeFormat(leaves, kind)
	} else {
		m.applyFormat(leaves, kind)
	}
	return m.buildUpdate(MenuAction{Kind: MenuActionNone})
}

// togglePendingFormat records kind as a pending format for the caret's
// next inserted text, since there is no selected text to wrap yet. A
// second toggle of the same kind before anything is typed cancels the
// pending state rather than flipping it back to "on", matching the plain
// toggle semantics a selection-based format gets.
func (m *Model[U]) togglePendingFormat(kind dom.Kind, pos int) {
	if _, ok := m.pendingFormats[kind]; ok {
		delete(m.pendingFormats, kind)
		return
	}
	if m.pendingFormats == nil {
		m.pendingFormats = map[dom.Kind]bool{}
	}
	m.pendingFormats[kind] = !m.formatActiveAtCaret(kind, pos)
}

// formatActiveAtCaret reports whether a collapsed caret at pos already
// sits inside a formatting container of kind, the same test
// computeMenuState uses to decide a toolbar button's reversed state.
func (m *Model[U]) formatActiveAtCaret(kind dom.Kind, pos int) bool {
	rng := dom.Resolve(m.dom.Root, pos, pos, m.textLen)
	leaves := rng.Leaves()
	return len(leaves) > 0 && m.allLeavesInsideKind(leaves, kind)
}

// applyPendingFormats consumes any pending formatting toggles against the
// code-unit range [start, end) that text was just inserted into: each
// format flagged on is applied if not already present, each flagged off
// is stripped if present. The pending set is cleared either way, since it
// only ever applies to the text typed immediately after the toggle.
func (m *Model[U]) applyPendingFormats(start, end int) {
	if len(m.pendingFormats) == 0 || start == end {
		return
	}
	pending := m.pendingFormats
	m.pendingFormats = nil
	for kind, on := range pending {
		leaves := m.splitPartialTextLeaves(start, end)
		if len(leaves) == 0 {
			continue
		}
		switch {
		case on && !m.allLeavesInsideKind(leaves, kind):
			m.applyFormat(leaves, kind)
		case !on && m.anyLeafInsideKind(leaves, kind):
			m.removeFormat(leaves, kind)
		}
	}
}

// splitPartialTextLeaves ensures every leaf overlapping [start, end) lies
// entirely within it, splitting the leading or trailing Text leaf at the
// selection boundary when the selection lands mid-node. Without this,
// applyFormat and wrapInLink would wrap a whole sibling leaf even when the
// selection only covers part of its text.
func (m *Model[U]) splitPartialTextLeaves(start, end int) []dom.DomLocation {
	rng := dom.Resolve(m.dom.Root, start, end, m.textLen)
	leaves := rng.Leaves()
	if len(leaves) == 0 {
		return leaves
	}
	first, last := leaves[0], leaves[len(leaves)-1]
	needFirst := first.Kind == dom.KindText && first.StartOffset > 0
	needLast := last.Kind == dom.KindText && last.EndOffset < last.Length
	if !needFirst && !needLast {
		return leaves
	}
	if first.Handle.Compare(last.Handle) == 0 {
		m.splitTextLeafRange(first, first.StartOffset, last.EndOffset)
	} else {
		if needLast {
			m.splitTextLeafAt(last, last.EndOffset)
		}
		if needFirst {
			m.splitTextLeafAt(first, first.StartOffset)
		}
	}
	return dom.Resolve(m.dom.Root, start, end, m.textLen).Leaves()
}

// splitTextLeafAt splits loc's text node into two siblings at offset,
// replacing it in place.
func (m *Model[U]) splitTextLeafAt(loc dom.DomLocation, offset int) {
	node := m.dom.MustLookup(loc.Handle)
	byteOff := ucs.ByteOffset[U](node.Text, offset)
	m.dom.Replace(loc.Handle, textParts(node.Text[:byteOff], node.Text[byteOff:]))
}

// splitTextLeafRange splits loc's text node into up to three siblings at
// startOffset and endOffset, isolating [startOffset, endOffset) as its own
// node.
func (m *Model[U]) splitTextLeafRange(loc dom.DomLocation, startOffset, endOffset int) {
	node := m.dom.MustLookup(loc.Handle)
	bStart := ucs.ByteOffset[U](node.Text, startOffset)
	bEnd := ucs.ByteOffset[U](node.Text, endOffset)
	var parts []*dom.Node
	if bStart > 0 {
		parts = append(parts, dom.NewText(node.Text[:bStart]))
	}
	parts = append(parts, dom.NewText(node.Text[bStart:bEnd]))
	if bEnd < len(node.Text) {
		parts = append(parts, dom.NewText(node.Text[bEnd:]))
	}
	m.dom.Replace(loc.Handle, parts)
}

func textParts(left, right string) []*dom.Node {
	var parts []*dom.Node
	if left != "" {
		parts = append(parts, dom.NewText(left))
	}
	if right != "" {
		parts = append(parts, dom.NewText(right))
	}
	if len(parts) == 0 {
		parts = append(parts, dom.NewText(""))
	}
	return parts
}

type leafRun struct {
	parent   dom.Handle
	from, to int
}

// applyFormat wraps each maximal run of contiguous selected siblings in a
// new formatting container of kind, processing runs in reverse document
// order so that wrapping one run never invalidates the handles of runs
// still to be wrapped.
func (m *Model[U]) applyFormat(leaves []dom.DomLocation, kind dom.Kind) {
	var runs []leafRun
	for _, l := range leaves {
		parentNode, ok := m.dom.Parent(l.Handle)
		if !ok {
			continue
		}
		idx := l.Handle.IndexInParent()
		if n := len(runs); n > 0 && runs[n-1].parent.Compare(parentNode.Handle) == 0 && runs[n-1].to == idx-1 {
			runs[n-1].to = idx
			continue
		}
		runs = append(runs, leafRun{parent: parentNode.Handle, from: idx, to: idx})
	}
	for i := len(runs) - 1; i >= 0; i-- {
		r := runs[i]
		parent := m.dom.MustLookup(r.parent)
		nodes := append([]*dom.Node{}, parent.Children[r.from:r.to+1]...)
		wrapper := dom.NewContainer(kind, nodes...)
		m.dom.ReplaceRange(r.parent, r.from, r.to, []*dom.Node{wrapper})
	}
	m.dom.Normalize(true)
}

// removeFormat unwraps every distinct ancestor of kind among the
// selected leaves, splicing its children up into its own position.
func (m *Model[U]) removeFormat(leaves []dom.DomLocation, kind dom.Kind) {
	seen := map[string]bool{}
	var ancestors []dom.Handle
	for _, l := range leaves {
		anc := m.dom.AncestorOfKind(l.Handle, func(k dom.Kind) bool { return k == kind })
		if anc == nil {
			continue
		}
		key := anc.Handle.String()
		if !seen[key] {
			seen[key] = true
			ancestors = append(ancestors, anc.Handle)
		}
	}
	sort.Slice(ancestors, func(i, j int) bool { return ancestors[i].Compare(ancestors[j]) > 0 })
	for _, h := range ancestors {
		node := m.dom.MustLookup(h)
		m.dom.Replace(h, node.Children)
	}
	m.dom.Normalize(true)
}
