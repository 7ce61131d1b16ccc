package composer

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplaceText_InsertsAndMovesCaret(t *testing.T) {
	m := New[uint16]()
	_, err := m.ReplaceText("hello")
	require.NoError(t, err)

	start, end := m.GetSelection()
	require.Equal(t, 5, start)
	require.Equal(t, 5, end)
	require.Equal(t, "<p>hello</p>", m.GetContentAsHTML())
}

func TestReplaceTextIn_ReplacesRangeInPlace(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("hello world")
	_, err := m.ReplaceTextIn("there", 6, 11)
	require.NoError(t, err)

	require.Equal(t, "<p>hello there</p>", m.GetContentAsHTML())
}

func TestBackspace_RemovesOneGraphemeBeforeCaret(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("hello")
	_, err := m.Backspace()
	require.NoError(t, err)

	require.Equal(t, "<p>hell</p>", m.GetContentAsHTML())
	start, end := m.GetSelection()
	require.Equal(t, 4, start)
	require.Equal(t, 4, end)
}

func TestBackspace_WithSelection_DeletesWholeSelection(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("hello world")
	m.Select(0, 6)
	_, err := m.Backspace()
	require.NoError(t, err)

	require.Equal(t, "<p>world</p>", m.GetContentAsHTML())
}

func TestBackspaceWord_StopsAtWordBoundary(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("hello world")
	_, err := m.BackspaceWord()
	require.NoError(t, err)

	require.Equal(t, "<p>hello </p>", m.GetContentAsHTML())
}

func TestBold_WrapsSelectionThenRemovesOnSecondToggle(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("hello world")
	m.Select(0, 5)

	_, err := m.Bold()
	require.NoError(t, err)
	require.Equal(t, "<p><strong>hello</strong> world</p>", m.GetContentAsHTML())

	m.Select(0, 5)
	_, err = m.Bold()
	require.NoError(t, err)
	require.Equal(t, "<p>hello world</p>", m.GetContentAsHTML())
}

func TestBold_ActionStateReflectsSelection(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("hello")
	m.Select(0, 5)
	m.Bold()

	m.Select(0, 5)
	states := m.ActionStates()
	require.Equal(t, StateReversed, states[ActionBold])
}

func TestEnter_SplitsParagraphAtCaret(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("hello world")
	m.Select(5, 5)

	_, err := m.Enter()
	require.NoError(t, err)
	require.Equal(t, "<p>hello</p><p> world</p>", m.GetContentAsHTML())
}

func TestEnter_InCodeBlock_InsertsLiteralNewline(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("line one")
	m.Select(0, 0)
	m.CodeBlock()
	m.Select(5, 5) // after the leading zwsp, inside "line one"

	_, err := m.Enter()
	require.NoError(t, err)
	require.Contains(t, m.GetContentAsHTML(), "line\n one")
}

func TestSetLink_WrapsSelectionThenEditsURL(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("click here")
	m.Select(0, 10)

	_, err := m.SetLink("https://example.com")
	require.NoError(t, err)
	require.Equal(t, "<p><a href=\"https://example.com\">click here</a></p>", m.GetContentAsHTML())

	m.Select(0, 10)
	require.Equal(t, LinkActionEdit, m.GetLinkAction())

	_, err = m.SetLink("https://example.org")
	require.NoError(t, err)
	require.Contains(t, m.GetContentAsHTML(), "https://example.org")
}

func TestSetLinkWithText_InsertsLabelAndWraps(t *testing.T) {
	m := New[uint16]()
	_, err := m.SetLinkWithText("https://example.com", "click here")
	require.NoError(t, err)
	require.Equal(t, "<p><a href=\"https://example.com\">click here</a></p>", m.GetContentAsHTML())

	start, end := m.GetSelection()
	require.Equal(t, 10, start)
	require.Equal(t, 10, end)
}

func TestRemoveLinks_Unwraps(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("click here")
	m.Select(0, 10)
	m.SetLink("https://example.com")

	m.Select(0, 10)
	_, err := m.RemoveLinks()
	require.NoError(t, err)
	require.Equal(t, "<p>click here</p>", m.GetContentAsHTML())
}

func TestOrderedList_ToggleWrapsThenUnwraps(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("item one")
	m.Select(0, 0)

	_, err := m.OrderedList()
	require.NoError(t, err)
	require.Equal(t, "<ol><li>\u200Bitem one</li></ol>", m.GetContentAsHTML())

	_, err = m.OrderedList()
	require.NoError(t, err)
	require.Equal(t, "<p>item one</p>", m.GetContentAsHTML())
}

func TestIndent_NestsUnderPreviousSibling(t *testing.T) {
	m := New[uint16]()
	_, err := m.SetContentFromHTML("<ul><li>first</li><li>second</li></ul>")
	require.NoError(t, err)

	m.Select(8, 8) // inside "second"
	_, err = m.Indent()
	require.NoError(t, err)
	require.Equal(t, "<ul><li>first<ul><li>second</li></ul></li></ul>", m.GetContentAsHTML())
}

func TestQuote_ToggleWrapsThenUnwraps(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("wise words")
	m.Select(0, 0)

	_, err := m.Quote()
	require.NoError(t, err)
	require.Equal(t, "<blockquote>\u200B<p>wise words</p></blockquote>", m.GetContentAsHTML())

	_, err = m.Quote()
	require.NoError(t, err)
	require.Equal(t, "<p>wise words</p>", m.GetContentAsHTML())
}

func TestEnter_ExitsEmptyListItemToParagraph(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("x")
	m.Select(0, 0)
	_, err := m.UnorderedList()
	require.NoError(t, err)

	_, err = m.DeleteIn(1, 2) // erase "x", leaving the list item empty
	require.NoError(t, err)

	_, err = m.Enter()
	require.NoError(t, err)
	require.Equal(t, "<p></p>", m.GetContentAsHTML())

	start, end := m.GetSelection()
	require.Equal(t, 0, start)
	require.Equal(t, 0, end)
}

func TestBold_PendingFormatAppliesToNextTypedText(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("hello ")
	m.Select(6, 6)

	_, err := m.Bold()
	require.NoError(t, err)
	_, err = m.ReplaceText("world")
	require.NoError(t, err)

	require.Equal(t, "<p>hello <strong>world</strong></p>", m.GetContentAsHTML())
}

func TestBold_PendingFormatToggledOffCancelsBeforeTyping(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("hello ")
	m.Select(6, 6)

	_, err := m.Bold()
	require.NoError(t, err)
	_, err = m.Bold()
	require.NoError(t, err)
	_, err = m.ReplaceText("world")
	require.NoError(t, err)

	require.Equal(t, "<p>hello world</p>", m.GetContentAsHTML())
}

func TestUndoRedo_RevertsAndReappliesBold(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("hello")
	m.Select(0, 5)
	m.Bold()
	require.Equal(t, "<p><strong>hello</strong></p>", m.GetContentAsHTML())

	_, err := m.Undo()
	require.NoError(t, err)
	require.Equal(t, "<p>hello</p>", m.GetContentAsHTML())

	_, err = m.Redo()
	require.NoError(t, err)
	require.Equal(t, "<p><strong>hello</strong></p>", m.GetContentAsHTML())
}

func TestUndo_EmptyStack_IsNoOpKeepUpdate(t *testing.T) {
	m := New[uint16]()
	update, err := m.Undo()
	require.NoError(t, err)
	require.Equal(t, TextKeep, update.Text.Kind)
}

func TestSuggestion_MentionTriggerDetected(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("hello @ali")
	update, err := m.Select(10, 10)
	require.NoError(t, err)
	require.Equal(t, MenuActionSuggestion, update.Action.Kind)
	require.Equal(t, PatternAt, update.Action.Suggestion.Key)
	require.Equal(t, "ali", update.Action.Suggestion.Text)
}

func TestGetContentAsMarkdown_RendersBoldAndLinks(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("hello world")
	m.Select(0, 5)
	m.Bold()
	m.Select(6, 11)
	m.SetLink("https://example.com")

	require.Equal(t, "**hello** [world](https://example.com)", m.GetContentAsMarkdown())
}

func TestGetContentAsPlainText_DropsFormatting(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("hello")
	m.Select(0, 5)
	m.Bold()

	require.Equal(t, "hello", m.GetContentAsPlainText())
}

func TestSetContentFromHTML_ResetsSelectionAndHistory(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("scratch")
	m.Select(0, 3)
	m.Bold()

	_, err := m.SetContentFromHTML("<p>hello <strong>world</strong></p>")
	require.NoError(t, err)
	require.Equal(t, "<p>hello <strong>world</strong></p>", m.GetContentAsHTML())

	start, end := m.GetSelection()
	require.Equal(t, start, end)
	require.Equal(t, 11, start)

	update, err := m.Undo()
	require.NoError(t, err)
	require.Equal(t, TextKeep, update.Text.Kind, "history should be cleared by SetContentFromHTML")
}

func TestSetContentFromMarkdown_ConvertsViaGoldmark(t *testing.T) {
	m := New[uint16]()
	_, err := m.SetContentFromMarkdown("**bold** and _italic_")
	require.NoError(t, err)
	require.Equal(t, "<p><strong>bold</strong> and <em>italic</em></p>", m.GetContentAsHTML())
}

func TestClear_ResetsToEmptyDocument(t *testing.T) {
	m := New[uint16]()
	m.ReplaceText("hello")
	m.Clear()

	require.Equal(t, "", m.GetContentAsHTML())
	start, end := m.GetSelection()
	require.Equal(t, 0, start)
	require.Equal(t, 0, end)
}
