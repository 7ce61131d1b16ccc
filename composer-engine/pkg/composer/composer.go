package composer

import (
	"fmt"

	"github.com/vortex/composer-engine/pkg/composer/dom"
	"github.com/vortex/composer-engine/pkg/composer/ucs"
)

// Model is the whole state of one composer: its document tree, its
// current selection (in code units of width U), and its undo/redo
// history. A Model is not safe for concurrent use; callers serialize
// access to a single session the way the teacher serializes access to a
// single in-flight document build.
type Model[U ucs.CodeUnit] struct {
	dom   *dom.Dom
	start int
	end   int

	// pendingFormats holds inline-formatting toggles recorded against a
	// collapsed selection: true applies the format to the next inserted
	// text, false explicitly strips it (overriding whatever formatting
	// the caret happens to sit inside). Consumed and cleared by the next
	// text insertion.
	pendingFormats map[dom.Kind]bool

	undoStack []historyState
	redoStack []historyState

	lastMenuState map[Action]ActionState
	mentions      MentionDetector
}

type historyState struct {
	dom            *dom.Dom
	start, end     int
	pendingFormats map[dom.Kind]bool
}

// New returns an empty composer model.
func New[U ucs.CodeUnit]() *Model[U] {
	return &Model[U]{dom: dom.New()}
}

// NewWithMentionDetector is New, but parsing HTML content recognizes
// mentionable links via d.
func NewWithMentionDetector[U ucs.CodeUnit](d MentionDetector) *Model[U] {
	m := New[U]()
	m.mentions = d
	return m
}

// textLen measures a leaf's contribution to the flat virtual text, in
// code units of width U; it is the dom.TextLen callback every selection
// resolution in this package uses.
func (m *Model[U]) textLen(n *dom.Node) int {
	switch n.Kind {
	case dom.KindLineBreak:
		return ucs.Len[U]("\n")
	default:
		return ucs.Len[U](n.Text)
	}
}

func (m *Model[U]) totalLen() int {
	total := 0
	for _, l := range m.dom.Leaves() {
		total += m.textLen(l)
	}
	return total
}

// leafPosition returns target's offset into the flat virtual text, i.e.
// the sum of textLen over every leaf preceding it in document order.
func (m *Model[U]) leafPosition(target *dom.Node) int {
	pos := 0
	for _, l := range m.dom.Leaves() {
		if l == target {
			return pos
		}
		pos += m.textLen(l)
	}
	return pos
}

// safeSelection returns the current selection ordered (min, max) and
// clamped to the document's current length; the raw start/end fields can
// go stale relative to totalLen after an edit shortens the document.
func (m *Model[U]) safeSelection() (int, int) {
	s, e := m.start, m.end
	if s > e {
		s, e = e, s
	}
	total := m.totalLen()
	if s > total {
		s = total
	}
	if e > total {
		e = total
	}
	return s, e
}

// GetSelection returns the current selection as (start, end) code-unit
// offsets, ordered (min, max).
func (m *Model[U]) GetSelection() (int, int) {
	return m.safeSelection()
}

// ActionStates returns the current toolbar action-state map.
func (m *Model[U]) ActionStates() map[Action]ActionState {
	return m.computeMenuState()
}

// ToTree renders the document tree as an indented debug dump, for tests
// and for hosts that want to log a composer's internal state.
func (m *Model[U]) ToTree() string {
	var b []byte
	b = appendTree(b, m.dom.Root, 0)
	return string(b)
}

func appendTree(b []byte, n *dom.Node, depth int) []byte {
	for i := 0; i < depth; i++ {
		b = append(b, "  "...)
	}
	switch n.Kind {
	case dom.KindText:
		b = append(b, fmt.Sprintf("%q\n", n.Text)...)
		return b
	case dom.KindLineBreak:
		b = append(b, "br\n"...)
		return b
	case dom.KindZwsp:
		b = append(b, "zwsp\n"...)
		return b
	case dom.KindMention:
		b = append(b, fmt.Sprintf("mention %q -> %s\n", n.Text, n.MentionURL)...)
		return b
	case dom.KindLink:
		b = append(b, fmt.Sprintf("link -> %s\n", n.LinkURL)...)
	default:
		b = append(b, n.Kind.String()+"\n"...)
	}
	for _, c := range n.Children {
		b = appendTree(b, c, depth+1)
	}
	return b
}

// Clear resets the model to an empty document with no selection and an
// empty history, without emitting an Update (there is no prior state to
// diff against).
func (m *Model[U]) Clear() {
	m.dom = dom.New()
	m.start, m.end = 0, 0
	m.pendingFormats = nil
	m.undoStack = nil
	m.redoStack = nil
	m.lastMenuState = nil
}

// dispatch runs fn with the Dom's own invariant-violation panics
// (dom.Fault) and this package's (InvariantFault) recovered and turned
// into a returned error, mirroring a single command-boundary recovery
// point rather than letting a broken invariant crash the host process.
func (m *Model[U]) dispatch(fn func() Update) (result Update, err error) {
	defer func() {
		if r := recover(); r != nil {
			switch v := r.(type) {
			case *dom.Fault:
				err = &InvariantFault{Reason: v.Reason}
			case *InvariantFault:
				err = v
			default:
				panic(r)
			}
		}
	}()
	return fn(), nil
}

func (m *Model[U]) pushHistory() {
	m.undoStack = append(m.undoStack, historyState{
		dom: m.dom.Clone(), start: m.start, end: m.end,
		pendingFormats: clonePendingFormats(m.pendingFormats),
	})
	m.redoStack = nil
}

func clonePendingFormats(p map[dom.Kind]bool) map[dom.Kind]bool {
	if p == nil {
		return nil
	}
	cp := make(map[dom.Kind]bool, len(p))
	for k, v := range p {
		cp[k] = v
	}
	return cp
}

func (m *Model[U]) buildUpdate(action MenuAction) Update {
	menu := MenuStateUpdate{Kind: MenuStateKeep}
	states := m.computeMenuState()
	if m.lastMenuState == nil || !menuStatesEqual(m.lastMenuState, states) {
		menu = MenuStateUpdate{Kind: MenuStateUpdated, Actions: states}
		m.lastMenuState = states
	}
	return Update{
		Text: TextUpdate{Kind: TextReplaceAll, HTML: m.renderHTML(), Start: m.start, End: m.end},
		Menu: menu,
		Action: action,
	}
}
