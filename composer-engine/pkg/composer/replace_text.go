package composer

import (
	"github.com/vortex/composer-engine/pkg/composer/dom"
	"github.com/vortex/composer-engine/pkg/composer/ucs"
)

// ReplaceText replaces the current selection with newText and collapses
// the selection to follow it.
func (m *Model[U]) ReplaceText(newText string) (Update, error) {
	s, e := m.safeSelection()
	return m.ReplaceTextIn(newText, s, e)
}

// ReplaceTextIn replaces the code-unit range [start, end) with newText,
// wherever the current selection is, and moves the selection to follow
// the inserted text.
func (m *Model[U]) ReplaceTextIn(newText string, start, end int) (Update, error) {
	return m.dispatch(func() Update {
		m.pushHistory()
		m.spliceText(start, end, newText)
		caret := start + ucs.Len[U](newText)
		m.applyPendingFormats(start, caret)
		m.start, m.end = caret, caret
		return m.buildUpdate(m.computeSuggestionAction(caret, caret))
	})
}

// ReplaceTextSuggestion replaces [start, end) — the span of an accepted
// mention/command suggestion — with text and collapses the selection
// after it, without otherwise differing from ReplaceTextIn.
func (m *Model[U]) ReplaceTextSuggestion(start, end int, text string) (Update, error) {
	return m.ReplaceTextIn(text, start, end)
}

// DeleteIn removes the code-unit range [start, end) and collapses the
// selection to start.
func (m *Model[U]) DeleteIn(start, end int) (Update, error) {
	return m.dispatch(func() Update {
		m.pushHistory()
		m.spliceText(start, end, "")
		m.start, m.end = start, start
		return m.buildUpdate(m.computeSuggestionAction(start, start))
	})
}

func (m *Model[U]) spliceText(startUnit, endUnit int, newText string) {
	if startUnit > endUnit {
		startUnit, endUnit = endUnit, startUnit
	}
	if startUnit != endUnit {
		m.deleteRange(startUnit, endUnit)
	}
	if newText != "" {
		m.insertTextAt(startUnit, newText)
	}
}

func (m *Model[U]) insertTextAt(pos int, text string) {
	rng := dom.Resolve(m.dom.Root, pos, pos, m.textLen)
	loc, ok := dom.PreferredCursorLeaf(m.dom, rng.Leaves())
	if !ok {
		p := dom.NewContainer(dom.KindParagraph, dom.NewText(text))
		m.dom.AppendChild(dom.RootHandle(), p)
		return
	}
	node := m.dom.MustLookup(loc.Handle)
	if node.Kind != dom.KindText {
		newNode := dom.NewText(text)
		if loc.StartOffset == 0 {
			m.dom.InsertAt(loc.Handle, newNode)
		} else {
			m.dom.InsertAt(loc.Handle.NextSibling(), newNode)
		}
		return
	}
	byteOff := ucs.ByteOffset[U](node.Text, loc.StartOffset)
	node.Text = node.Text[:byteOff] + text + node.Text[byteOff:]
}

func (m *Model[U]) deleteRange(startUnit, endUnit int) {
	rng := dom.Resolve(m.dom.Root, startUnit, endUnit, m.textLen)
	leaves := rng.Leaves()
	if len(leaves) == 0 {
		return
	}

	firstBlock := m.dom.DeepestBlockNode(leaves[0].Handle, nil)
	lastBlock := m.dom.DeepestBlockNode(leaves[len(leaves)-1].Handle, nil)
	crosses := firstBlock != nil && lastBlock != nil && firstBlock.Handle.Compare(lastBlock.Handle) != 0
	var firstBlockHandle, lastBlockHandle dom.Handle
	if crosses {
		firstBlockHandle, lastBlockHandle = firstBlock.Handle, lastBlock.Handle
	}

	for i := len(leaves) - 1; i >= 0; i-- {
		l := leaves[i]
		if l.IsCovered() {
			m.dom.Remove(l.Handle)
			continue
		}
		if l.Kind != dom.KindText {
			continue
		}
		node := m.dom.MustLookup(l.Handle)
		byteStart := ucs.ByteOffset[U](node.Text, l.StartOffset)
		byteEnd := ucs.ByteOffset[U](node.Text, l.EndOffset)
		node.Text = node.Text[:byteStart] + node.Text[byteEnd:]
	}
	m.dom.Normalize(true)

	if crosses && m.dom.Contains(firstBlockHandle) && m.dom.Contains(lastBlockHandle) &&
		firstBlockHandle.Compare(lastBlockHandle) != 0 {
		dst := m.dom.MustLookup(firstBlockHandle)
		src := m.dom.MustLookup(lastBlockHandle)
		dst.Children = append(dst.Children, src.Children...)
		m.dom.Remove(lastBlockHandle)
		m.dom.JoinNodesInContainer(firstBlockHandle)
	}
}
