package htmlio

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/vortex/composer-engine/pkg/composer/dom"
)

func TestSerialize_ParagraphWithBold(t *testing.T) {
	d := dom.New()
	p := dom.NewContainer(dom.KindParagraph,
		dom.NewText("hello "),
		dom.NewContainer(dom.KindBold, dom.NewText("world")),
	)
	d.Root.Children = append(d.Root.Children, p)

	require.Equal(t, "<p>hello <strong>world</strong></p>", Serialize(d))
}

func TestSerialize_LinkSetsHrefAttribute(t *testing.T) {
	d := dom.New()
	d.Root.Children = append(d.Root.Children, dom.NewLink("https://example.com", dom.NewText("docs")))

	require.Equal(t, `<a href="https://example.com">docs</a>`, Serialize(d))
}

func TestSerialize_MentionIncludesExtraAttrs(t *testing.T) {
	d := dom.New()
	d.Root.Children = append(d.Root.Children, dom.NewMention(
		"https://matrix.to/#/@alice:example.org", "Alice", map[string]string{"data-mention-type": "user"},
	))

	out := Serialize(d)
	require.Contains(t, out, `href="https://matrix.to/#/@alice:example.org"`)
	require.Contains(t, out, `data-mention-type="user"`)
	require.Contains(t, out, ">Alice</a>")
}

func TestSerialize_LineBreakRendersAsVoidBr(t *testing.T) {
	d := dom.New()
	p := dom.NewContainer(dom.KindParagraph, dom.NewText("one"), dom.NewLineBreak(), dom.NewText("two"))
	d.Root.Children = append(d.Root.Children, p)

	require.Equal(t, "<p>one<br>two</p>", Serialize(d))
}

func TestSerialize_CodeBlockWrapsPreCode(t *testing.T) {
	d := dom.New()
	d.Root.Children = append(d.Root.Children, &dom.Node{
		Kind:     dom.KindCodeBlock,
		Children: []*dom.Node{dom.NewText("a := 1")},
	})

	require.Equal(t, "<pre><code>a := 1</code></pre>", Serialize(d))
}

func TestSerialize_GenericSplicesChildrenWithoutWrapper(t *testing.T) {
	d := dom.New()
	d.Root.Children = append(d.Root.Children, &dom.Node{
		Kind:     dom.KindGeneric,
		Children: []*dom.Node{dom.NewText("hello "), dom.NewContainer(dom.KindItalic, dom.NewText("world"))},
	})

	require.Equal(t, "hello <em>world</em>", Serialize(d))
}

func TestSerialize_UnorderedList(t *testing.T) {
	d := dom.New()
	d.Root.Children = append(d.Root.Children, dom.NewContainer(dom.KindUnorderedList,
		dom.NewContainer(dom.KindListItem, dom.NewText("first")),
		dom.NewContainer(dom.KindListItem, dom.NewText("second")),
	))

	require.Equal(t, "<ul><li>first</li><li>second</li></ul>", Serialize(d))
}

func TestSerialize_DoubleSpacesAndTrailingSpaceBecomeNbsp(t *testing.T) {
	d := dom.New()
	p := dom.NewContainer(dom.KindParagraph, dom.NewText("a  b"), dom.NewText(" c "))
	d.Root.Children = append(d.Root.Children, p)

	require.Equal(t, "<p>a\u00a0\u00a0b c\u00a0</p>", Serialize(d))
}

func TestSerialize_RoundTripsThroughParse(t *testing.T) {
	const html = "<p><strong>hello</strong> <em>world</em></p>"
	d, err := Parse(html, nil)
	require.NoError(t, err)

	require.Equal(t, html, Serialize(d))
}
