package composer

import (
	"strings"

	"github.com/vortex/composer-engine/pkg/composer/dom"
)

// CodeBlock toggles code-block formatting: if the caret's block already
// sits inside a CodeBlock, it is unwrapped back into one paragraph per
// line; otherwise the caret's nearest block is flattened to plain text
// (formatting is not representable inside a code block) and wrapped in a
// new CodeBlock.
func (m *Model[U]) CodeBlock() (Update, error) {
	return m.dispatch(func() Update {
		m.pushHistory()
		s, e := m.safeSelection()
		rng := dom.Resolve(m.dom.Root, s, e, m.textLen)
		anchor := m.anchorHandle(rng.Leaves())

		if cb := m.dom.AncestorOfKind(anchor, func(k dom.Kind) bool { return k == dom.KindCodeBlock }); cb != nil {
			if len(cb.Children) > 0 && cb.Children[0].Kind == dom.KindZwsp && m.leafPosition(cb.Children[0]) <= s {
				m.start, m.end = s-1, e-1
			}
			text := codeBlockText(cb)
			var paragraphs []*dom.Node
			for _, line := range strings.Split(text, "\n") {
				paragraphs = append(paragraphs, dom.NewContainer(dom.KindParagraph, dom.NewText(line)))
			}
			m.dom.Replace(cb.Handle, paragraphs)
		} else if block := m.dom.DeepestBlockNode(anchor, nil); block != nil && !block.Handle.IsRoot() {
			var b strings.Builder
			writePlainText(&b, m.dom.MustLookup(block.Handle), true)
			cb := dom.NewContainer(dom.KindCodeBlock, dom.NewZwsp(), dom.NewText(strings.TrimRight(b.String(), "\n")))
			m.dom.Replace(block.Handle, []*dom.Node{cb})
			m.start, m.end = s+1, e+1
		}
		m.dom.Normalize(true)
		return m.buildUpdate(MenuAction{Kind: MenuActionNone})
	})
}

func codeBlockText(cb *dom.Node) string {
	var b strings.Builder
	for _, c := range cb.Children {
		if c.Kind == dom.KindText {
			b.WriteString(c.Text)
		}
	}
	return b.String()
}
