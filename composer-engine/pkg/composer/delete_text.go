package composer

import (
	"strings"
	"unicode/utf8"

	"github.com/vortex/composer-engine/pkg/composer/dom"
	"github.com/vortex/composer-engine/pkg/composer/ucs"
)

// Backspace deletes one grapheme cluster before the caret, or the whole
// selection if it is non-empty.
func (m *Model[U]) Backspace() (Update, error) {
	return m.dispatch(func() Update {
		s, e := m.safeSelection()
		if s != e {
			return m.deleteAndCollapse(s, e)
		}
		flat := m.flatText()
		newPos := ucs.StepBackward[U](flat, s)
		return m.deleteAndCollapse(newPos, s)
	})
}

// Delete deletes one grapheme cluster after the caret, or the whole
// selection if it is non-empty.
func (m *Model[U]) Delete() (Update, error) {
	return m.dispatch(func() Update {
		s, e := m.safeSelection()
		if s != e {
			return m.deleteAndCollapse(s, e)
		}
		flat := m.flatText()
		newPos := ucs.StepForward[U](flat, e)
		return m.deleteAndCollapse(s, newPos)
	})
}

// BackspaceWord deletes from the caret back to the previous word
// boundary, or the whole selection if it is non-empty.
func (m *Model[U]) BackspaceWord() (Update, error) {
	return m.dispatch(func() Update {
		s, e := m.safeSelection()
		if s != e {
			return m.deleteAndCollapse(s, e)
		}
		flat := m.flatText()
		newPos := wordBoundaryBackward[U](flat, s)
		return m.deleteAndCollapse(newPos, s)
	})
}

// DeleteWord deletes from the caret forward to the next word boundary,
// or the whole selection if it is non-empty.
func (m *Model[U]) DeleteWord() (Update, error) {
	return m.dispatch(func() Update {
		s, e := m.safeSelection()
		if s != e {
			return m.deleteAndCollapse(s, e)
		}
		flat := m.flatText()
		newPos := wordBoundaryForward[U](flat, e)
		return m.deleteAndCollapse(s, newPos)
	})
}

func (m *Model[U]) deleteAndCollapse(start, end int) Update {
	m.pushHistory()
	m.spliceText(start, end, "")
	m.start, m.end = start, start
	return m.buildUpdate(m.computeSuggestionAction(start, start))
}

// flatText concatenates the document's leaves into the plain string that
// code-unit offsets are measured against: Text and Mention leaves
// contribute their text, LineBreak contributes "\n", and Zwsp contributes
// its U+200B, so every leaf spans as many code units here as textLen
// gives it.
func (m *Model[U]) flatText() string {
	var b strings.Builder
	for _, l := range m.dom.Leaves() {
		switch l.Kind {
		case dom.KindText, dom.KindMention, dom.KindZwsp:
			b.WriteString(l.Text)
		case dom.KindLineBreak:
			b.WriteByte('\n')
		}
	}
	return b.String()
}

func wordBoundaryBackward[U ucs.CodeUnit](flat string, pos int) int {
	i := ucs.ByteOffset[U](flat, pos)
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(flat[:i])
		c := ucs.ClassifyRune(r)
		if c == ucs.ClassWhitespace || c == ucs.ClassZwsp {
			i -= size
			continue
		}
		break
	}
	if i == 0 {
		return 0
	}
	r, size := utf8.DecodeLastRuneInString(flat[:i])
	class := ucs.ClassifyRune(r)
	i -= size
	for i > 0 {
		r, size := utf8.DecodeLastRuneInString(flat[:i])
		if ucs.ClassifyRune(r) != class {
			break
		}
		i -= size
	}
	return ucs.Len[U](flat[:i])
}

func wordBoundaryForward[U ucs.CodeUnit](flat string, pos int) int {
	i := ucs.ByteOffset[U](flat, pos)
	n := len(flat)
	for i < n {
		r, size := utf8.DecodeRuneInString(flat[i:])
		c := ucs.ClassifyRune(r)
		if c == ucs.ClassWhitespace || c == ucs.ClassZwsp {
			i += size
			continue
		}
		break
	}
	if i >= n {
		return ucs.Len[U](flat)
	}
	r, size := utf8.DecodeRuneInString(flat[i:])
	class := ucs.ClassifyRune(r)
	i += size
	for i < n {
		r, size := utf8.DecodeRuneInString(flat[i:])
		if ucs.ClassifyRune(r) != class {
			break
		}
		i += size
	}
	return ucs.Len[U](flat[:i])
}
