package composer

import (
	"github.com/vortex/composer-engine/pkg/composer/dom"
	"github.com/vortex/composer-engine/pkg/composer/ucs"
)

// Enter splits the block the caret sits in at the caret, producing a new
// sibling block that holds everything after the cut. Inside a CodeBlock
// it instead inserts a literal newline, since a code block is a single
// multi-line run rather than a sequence of blocks.
func (m *Model[U]) Enter() (Update, error) {
	return m.dispatch(func() Update {
		m.pushHistory()
		s, e := m.safeSelection()
		if s != e {
			m.deleteRange(s, e)
			e = s
		}

		rng := dom.Resolve(m.dom.Root, s, s, m.textLen)
		loc, ok := dom.PreferredCursorLeaf(m.dom, rng.Leaves())
		if !ok {
			m.dom.AppendChild(dom.RootHandle(), dom.NewContainer(dom.KindParagraph))
			m.start, m.end = s, s
			return m.buildUpdate(MenuAction{Kind: MenuActionNone})
		}

		block := m.dom.DeepestBlockNode(loc.Handle, nil)
		if block != nil && block.Kind == dom.KindListItem && isEmptyListItem(block) {
			return m.exitEmptyListItem(block)
		}
		if block != nil && block.Kind == dom.KindCodeBlock {
			m.insertTextAt(s, "\n")
			caret := s + ucs.Len[U]("\n")
			m.start, m.end = caret, caret
			return m.buildUpdate(MenuAction{Kind: MenuActionNone})
		}

		node := m.dom.MustLookup(loc.Handle)
		byteOff := 0
		if node.Kind == dom.KindText {
			byteOff = ucs.ByteOffset[U](node.Text, loc.StartOffset)
		}
		blockHandle := dom.RootHandle()
		depth := 1
		if block != nil {
			blockHandle = block.Handle
			depth = block.Handle.Depth()
		}
		tail := m.dom.SplitSubTreeFrom(loc.Handle, byteOff, depth)
		m.dom.InsertAt(blockHandle.NextSibling(), tail)
		m.dom.Normalize(true)

		m.start, m.end = s, s
		return m.buildUpdate(MenuAction{Kind: MenuActionNone})
	})
}

// isEmptyListItem reports whether item holds nothing but its leading
// cursor-anchor Zwsp, i.e. the user hasn't typed anything into it yet. The
// Zwsp may be followed by an empty Paragraph left behind by Normalize's
// block-preserving pass rather than no sibling at all.
func isEmptyListItem(item *dom.Node) bool {
	if len(item.Children) == 0 || item.Children[0].Kind != dom.KindZwsp {
		return false
	}
	switch rest := item.Children[1:]; len(rest) {
	case 0:
		return true
	case 1:
		return rest[0].Kind == dom.KindParagraph && len(rest[0].Children) == 0
	default:
		return false
	}
}

// exitEmptyListItem implements Enter() on an empty ListItem: the item is
// dropped and a fresh, equally empty Paragraph takes the list's place (or
// follows it, if other items remain), removing the ZWSP along with it
// rather than carrying it into the new paragraph.
func (m *Model[U]) exitEmptyListItem(item *dom.Node) Update {
	listHandle := item.Handle.Parent()
	list := m.dom.MustLookup(listHandle)
	zwspPos := m.leafPosition(item.Children[0])

	m.dom.Remove(item.Handle)
	paragraph := dom.NewContainer(dom.KindParagraph)
	if len(list.Children) == 0 {
		m.dom.Replace(listHandle, []*dom.Node{paragraph})
	} else {
		m.dom.InsertAt(listHandle.NextSibling(), paragraph)
	}
	m.dom.Normalize(true)

	caret := zwspPos
	m.start, m.end = caret, caret
	return m.buildUpdate(MenuAction{Kind: MenuActionNone})
}
