package composer

import "github.com/vortex/composer-engine/pkg/composer/dom"

// Quote toggles quote formatting: if the caret's block already sits
// inside a Quote, the quote is unwrapped; otherwise the caret's nearest
// block is wrapped in a new Quote.
func (m *Model[U]) Quote() (Update, error) {
	return m.dispatch(func() Update {
		m.pushHistory()
		s, e := m.safeSelection()
		rng := dom.Resolve(m.dom.Root, s, e, m.textLen)
		anchor := m.anchorHandle(rng.Leaves())

		if quote := m.dom.AncestorOfKind(anchor, func(k dom.Kind) bool { return k == dom.KindQuote }); quote != nil {
			children := quote.Children
			if len(children) > 0 && children[0].Kind == dom.KindZwsp && m.leafPosition(children[0]) <= s {
				m.start, m.end = s-1, e-1
				children = children[1:]
			}
			m.dom.Replace(quote.Handle, children)
		} else if block := m.dom.DeepestBlockNode(anchor, nil); block != nil && !block.Handle.IsRoot() {
			wrapper := dom.NewContainer(dom.KindQuote, dom.NewZwsp(), m.dom.MustLookup(block.Handle))
			m.dom.Replace(block.Handle, []*dom.Node{wrapper})
			m.start, m.end = s+1, e+1
		}
		m.dom.Normalize(true)
		return m.buildUpdate(MenuAction{Kind: MenuActionNone})
	})
}
