package composer

import (
	"strings"

	"github.com/vortex/composer-engine/pkg/composer/dom"
	"github.com/vortex/composer-engine/pkg/composer/ucs"
)

var patternKeys = []struct {
	key  PatternKey
	rune rune
}{
	{PatternAt, '@'},
	{PatternHash, '#'},
	{PatternSlash, '/'},
}

// computeSuggestionAction inspects the plain-text run the caret sits in
// (a collapsed selection only; a non-empty one never yields a live
// suggestion) for one of the trigger runes immediately before the caret,
// followed by a run of non-whitespace with no intervening Zwsp or node
// boundary. It returns MenuActionNone when the caret isn't in such a run.
func (m *Model[U]) computeSuggestionAction(start, end int) MenuAction {
	if start != end {
		return MenuAction{Kind: MenuActionNone}
	}
	rng := dom.Resolve(m.dom.Root, start, end, m.textLen)
	leaf, ok := dom.PreferredCursorLeaf(m.dom, rng.Leaves())
	if !ok || leaf.Kind != dom.KindText {
		return MenuAction{Kind: MenuActionNone}
	}
	node := m.dom.MustLookup(leaf.Handle)
	text := node.Text
	caretUnit := leaf.StartOffset
	caretByte := ucs.ByteOffset[U](text, caretUnit)

	before := text[:caretByte]
	for _, pk := range patternKeys {
		idx := strings.LastIndexByte(before, byte(pk.rune))
		if idx < 0 {
			continue
		}
		run := before[idx+1:]
		if strings.ContainsAny(run, " \t\n") {
			continue
		}
		afterTrigger := text[idx:]
		wordEnd := len(afterTrigger)
		for i, r := range afterTrigger[1:] {
			if r == ' ' || r == '\t' || r == '\n' {
				wordEnd = i + 1
				break
			}
		}
		word := afterTrigger[1:wordEnd]
		startUnit := caretUnit - ucs.Len[U](run) - 1
		return MenuAction{
			Kind: MenuActionSuggestion,
			Suggestion: Suggestion{
				Key:   pk.key,
				Text:  word,
				Start: startUnit,
				End:   startUnit + 1 + ucs.Len[U](word),
			},
		}
	}
	return MenuAction{Kind: MenuActionNone}
}
