package composer

import "github.com/vortex/composer-engine/pkg/composer/dom"

// OrderedList toggles ordered-list formatting for the caret's block.
func (m *Model[U]) OrderedList() (Update, error) { return m.dispatchList(dom.KindOrderedList) }

// UnorderedList toggles unordered-list formatting for the caret's block.
func (m *Model[U]) UnorderedList() (Update, error) { return m.dispatchList(dom.KindUnorderedList) }

func (m *Model[U]) dispatchList(kind dom.Kind) (Update, error) {
	return m.dispatch(func() Update {
		m.pushHistory()
		return m.toggleList(kind)
	})
}

func (m *Model[U]) toggleList(kind dom.Kind) Update {
	s, e := m.safeSelection()
	rng := dom.Resolve(m.dom.Root, s, e, m.textLen)
	anchor := m.anchorHandle(rng.Leaves())

	listItem := m.dom.AncestorOfKind(anchor, func(k dom.Kind) bool { return k == dom.KindListItem })
	if listItem != nil {
		if list, ok := m.dom.Parent(listItem.Handle); ok && list.Kind == kind {
			removed := 0
			var paragraphs []*dom.Node
			for _, item := range list.Children {
				if len(item.Children) > 0 && item.Children[0].Kind == dom.KindZwsp && m.leafPosition(item.Children[0]) <= s {
					removed++
				}
				paragraphs = append(paragraphs, unwrapListItem(item))
			}
			m.dom.Replace(list.Handle, paragraphs)
			m.dom.Normalize(true)
			m.start, m.end = s-removed, e-removed
			return m.buildUpdate(MenuAction{Kind: MenuActionNone})
		}
	}
	if block := m.dom.DeepestBlockNode(anchor, nil); block != nil && !block.Handle.IsRoot() {
		item := dom.NewContainer(dom.KindListItem, dom.NewZwsp(), m.dom.MustLookup(block.Handle))
		list := dom.NewContainer(kind, item)
		m.dom.Replace(block.Handle, []*dom.Node{list})
		m.start, m.end = s+1, e+1
	}
	m.dom.Normalize(true)
	return m.buildUpdate(MenuAction{Kind: MenuActionNone})
}

func unwrapListItem(item *dom.Node) *dom.Node {
	children := item.Children
	if len(children) > 0 && children[0].Kind == dom.KindZwsp {
		children = children[1:]
	}
	if len(children) == 1 && children[0].Kind == dom.KindParagraph {
		return children[0]
	}
	return dom.NewContainer(dom.KindParagraph, children...)
}

// Indent nests the caret's list item inside the previous sibling item's
// own sub-list (creating that sub-list if the sibling doesn't have one
// yet). A no-op if there is no previous sibling item.
func (m *Model[U]) Indent() (Update, error) {
	return m.dispatch(func() Update {
		s, e := m.safeSelection()
		rng := dom.Resolve(m.dom.Root, s, e, m.textLen)
		anchor := m.anchorHandle(rng.Leaves())
		listItem := m.dom.AncestorOfKind(anchor, func(k dom.Kind) bool { return k == dom.KindListItem })
		if listItem == nil || !hasPrevListItemSibling(m.dom, listItem) {
			return keepUpdate()
		}
		m.pushHistory()

		list := m.dom.MustLookup(listItem.Handle.Parent())
		prevHandle := listItem.Handle.PrevSibling()
		prev := m.dom.MustLookup(prevHandle)
		itemNode := m.dom.MustLookup(listItem.Handle)
		m.dom.Remove(listItem.Handle)

		var nestedHandle dom.Handle
		if n := len(prev.Children); n > 0 && prev.Children[n-1].Kind.IsList() {
			nestedHandle = prevHandle.Child(n - 1)
		} else {
			nestedHandle = m.dom.AppendChild(prevHandle, dom.NewContainer(list.Kind))
		}
		m.dom.AppendChild(nestedHandle, itemNode)
		return m.buildUpdate(MenuAction{Kind: MenuActionNone})
	})
}

// Unindent lifts the caret's list item out of its nested sub-list into
// the enclosing list, as the item right after its former parent item. A
// no-op if the caret's item isn't nested.
func (m *Model[U]) Unindent() (Update, error) {
	return m.dispatch(func() Update {
		s, e := m.safeSelection()
		rng := dom.Resolve(m.dom.Root, s, e, m.textLen)
		anchor := m.anchorHandle(rng.Leaves())
		listItem := m.dom.AncestorOfKind(anchor, func(k dom.Kind) bool { return k == dom.KindListItem })
		if listItem == nil || !isNestedListItem(m.dom, listItem) {
			return keepUpdate()
		}
		m.pushHistory()

		nestedList := m.dom.MustLookup(listItem.Handle.Parent())
		outerItem := m.dom.MustLookup(nestedList.Handle.Parent())
		itemNode := m.dom.MustLookup(listItem.Handle)

		m.dom.Remove(listItem.Handle)
		if len(nestedList.Children) == 0 {
			m.dom.Remove(nestedList.Handle)
		}
		m.dom.InsertAt(outerItem.Handle.NextSibling(), itemNode)
		return m.buildUpdate(MenuAction{Kind: MenuActionNone})
	})
}
