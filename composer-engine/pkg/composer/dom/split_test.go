package dom

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplitSubTreeFrom_MidTextLeaf(t *testing.T) {
	d := New()
	p := d.AppendChild(RootHandle(), NewContainer(KindParagraph))
	textHandle := d.AppendChild(p, NewText("hello world"))

	right := d.SplitSubTreeFrom(textHandle, 5, 1)

	left, _ := d.Lookup(textHandle)
	require.Equal(t, "hello", left.Text)
	require.Equal(t, KindParagraph, right.Kind)
	require.Len(t, right.Children, 1)
	require.Equal(t, " world", right.Children[0].Text)
}

func TestSplitSubTreeFrom_AtLeafEnd_ReturnsEmptyFragment(t *testing.T) {
	d := New()
	p := d.AppendChild(RootHandle(), NewContainer(KindParagraph))
	textHandle := d.AppendChild(p, NewText("hello"))

	right := d.SplitSubTreeFrom(textHandle, 5, 1)

	require.Equal(t, KindParagraph, right.Kind)
	require.Empty(t, right.Children)
}

func TestSplitSubTreeFrom_CarriesFollowingSiblings(t *testing.T) {
	d := New()
	p := d.AppendChild(RootHandle(), NewContainer(KindParagraph))
	textHandle := d.AppendChild(p, NewText("ab"))
	d.AppendChild(p, NewText("cd"))

	right := d.SplitSubTreeFrom(textHandle, 1, 1)

	require.Len(t, right.Children, 2)
	require.Equal(t, "b", right.Children[0].Text)
	require.Equal(t, "cd", right.Children[1].Text)

	left, _ := d.Lookup(p)
	require.Len(t, left.Children, 1)
	require.Equal(t, "a", left.Children[0].Text)
}

func TestSplitSubTreeBetween_LeavesGapForMiddle(t *testing.T) {
	d := New()
	root := RootHandle()
	p1 := d.AppendChild(root, NewContainer(KindParagraph))
	t1 := d.AppendChild(p1, NewText("abcdef"))

	middle := d.SplitSubTreeBetween(t1, 2, t1, 4, 1)

	require.Len(t, middle.Children, 1)
	require.Equal(t, "cd", middle.Children[0].Text)

	require.Len(t, d.Root.Children, 2)
	firstText, _ := d.Lookup(t1)
	require.Equal(t, "ab", firstText.Text)
	require.Equal(t, "ef", d.Root.Children[1].Children[0].Text)
}

func TestSplitSubTreeFrom_PreservesLinkURL(t *testing.T) {
	d := New()
	link := d.AppendChild(RootHandle(), NewLink("https://example.com"))
	textHandle := d.AppendChild(link, NewText("click here"))

	right := d.SplitSubTreeFrom(textHandle, 5, 1)

	require.Equal(t, KindLink, right.Kind)
	require.Equal(t, "https://example.com", right.LinkURL)
}
