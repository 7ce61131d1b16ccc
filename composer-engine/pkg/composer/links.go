package composer

import (
	"sort"

	"github.com/vortex/composer-engine/pkg/composer/dom"
	"github.com/vortex/composer-engine/pkg/composer/ucs"
)

// LinkAction tells a host what UI to show for the current selection
// before it calls SetLink / SetLinkWithText / RemoveLinks.
type LinkAction int

const (
	// LinkActionCreateWithText: the selection is collapsed and outside
	// any link; the host must collect both a URL and label text.
	LinkActionCreateWithText LinkAction = iota
	// LinkActionCreate: the selection is non-empty and outside any
	// link; the host collects a URL and wraps the existing text.
	LinkActionCreate
	// LinkActionEdit: the selection sits entirely inside one link; the
	// host collects a new URL for SetLink to apply to it.
	LinkActionEdit
	// LinkActionDisabled: the selection spans a code block, or more
	// than one distinct link; no link command applies.
	LinkActionDisabled
)

// GetLinkAction reports what link affordance the host should offer for
// the current selection.
func (m *Model[U]) GetLinkAction() LinkAction {
	s, e := m.safeSelection()
	rng := dom.Resolve(m.dom.Root, s, e, m.textLen)
	leaves := rng.Leaves()
	if m.anyLeafInsideKind(leaves, dom.KindCodeBlock) {
		return LinkActionDisabled
	}
	if len(leaves) == 0 {
		return LinkActionCreateWithText
	}
	links := distinctLinkAncestors(m.dom, leaves)
	switch len(links) {
	case 0:
		if s == e {
			return LinkActionCreateWithText
		}
		return LinkActionCreate
	case 1:
		return LinkActionEdit
	default:
		return LinkActionDisabled
	}
}

func distinctLinkAncestors(d *dom.Dom, leaves []dom.DomLocation) []dom.Handle {
	seen := map[string]bool{}
	var out []dom.Handle
	for _, l := range leaves {
		anc := d.AncestorOfKind(l.Handle, func(k dom.Kind) bool { return k == dom.KindLink })
		if anc == nil {
			return nil
		}
		if !seen[anc.Handle.String()] {
			seen[anc.Handle.String()] = true
			out = append(out, anc.Handle)
		}
	}
	return out
}

// SetLink applies url to the current selection: if the selection sits
// entirely inside one Link, that link's URL is updated in place;
// otherwise the selection is wrapped in a new Link(url). A collapsed
// selection that is not inside a link is left as it is.
func (m *Model[U]) SetLink(url string) (Update, error) {
	return m.dispatch(func() Update {
		m.pushHistory()
		s, e := m.safeSelection()
		rng := dom.Resolve(m.dom.Root, s, e, m.textLen)
		leaves := rng.Leaves()
		if links := distinctLinkAncestors(m.dom, leaves); len(links) == 1 {
			m.dom.MustLookup(links[0]).LinkURL = url
			return m.buildUpdate(MenuAction{Kind: MenuActionNone})
		}
		if s == e {
			return m.buildUpdate(MenuAction{Kind: MenuActionNone})
		}
		m.wrapInLink(m.splitPartialTextLeaves(s, e), url)
		return m.buildUpdate(MenuAction{Kind: MenuActionNone})
	})
}

// SetLinkWithText inserts text at the current cursor position wrapped in
// a new Link(url), for the collapsed-selection case.
func (m *Model[U]) SetLinkWithText(url, text string) (Update, error) {
	return m.dispatch(func() Update {
		m.pushHistory()
		s, _ := m.safeSelection()
		m.insertTextAt(s, text)
		textLen := ucs.Len[U](text)
		m.wrapInLink(m.splitPartialTextLeaves(s, s+textLen), url)
		caret := s + textLen
		m.start, m.end = caret, caret
		return m.buildUpdate(MenuAction{Kind: MenuActionNone})
	})
}

// SetLinkSuggestion applies url to the span of an accepted mention
// suggestion, replacing its trigger text with text first.
func (m *Model[U]) SetLinkSuggestion(url, text string, s Suggestion) (Update, error) {
	return m.dispatch(func() Update {
		m.pushHistory()
		m.spliceText(s.Start, s.End, text)
		textLen := ucs.Len[U](text)
		m.wrapInLink(m.splitPartialTextLeaves(s.Start, s.Start+textLen), url)
		caret := s.Start + textLen
		m.start, m.end = caret, caret
		return m.buildUpdate(MenuAction{Kind: MenuActionNone})
	})
}

// RemoveLinks unwraps every Link ancestor touching the current selection.
func (m *Model[U]) RemoveLinks() (Update, error) {
	return m.dispatch(func() Update {
		m.pushHistory()
		s, e := m.safeSelection()
		rng := dom.Resolve(m.dom.Root, s, e, m.textLen)
		m.removeFormat(rng.Leaves(), dom.KindLink)
		return m.buildUpdate(MenuAction{Kind: MenuActionNone})
	})
}

func (m *Model[U]) wrapInLink(leaves []dom.DomLocation, url string) {
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
	sort.Slice(runs, func(i, j int) bool { return runs[i].parent.Compare(runs[j].parent) > 0 })
	for _, r := range runs {
		parent := m.dom.MustLookup(r.parent)
		nodes := append([]*dom.Node{}, parent.Children[r.from:r.to+1]...)
		wrapper := dom.NewLink(url, nodes...)
		m.dom.ReplaceRange(r.parent, r.from, r.to, []*dom.Node{wrapper})
	}
	m.dom.Normalize(true)
}
