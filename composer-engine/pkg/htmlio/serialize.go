package htmlio

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/vortex/composer-engine/pkg/composer/dom"
)

var kindTags = map[dom.Kind]string{
	dom.KindBold:           "strong",
	dom.KindItalic:         "em",
	dom.KindStrike:         "del",
	dom.KindUnderline:      "u",
	dom.KindInlineCode:     "code",
	dom.KindOrderedList:    "ol",
	dom.KindUnorderedList:  "ul",
	dom.KindListItem:       "li",
	dom.KindParagraph:      "p",
	dom.KindQuote:          "blockquote",
}

// Serialize renders d as an HTML fragment. The Dom's Generic root is not
// itself rendered; each of its children becomes a top-level element (or
// text run) in the output, in document order.
func Serialize(d *dom.Dom) string {
	doc := etree.NewDocument()
	appendChildren(&doc.Element, d.Root.Children)
	s, err := doc.WriteToString()
	if err != nil {
		// etree only fails to serialize on a broken io.Writer; building
		// into a string buffer cannot fail.
		panic(err)
	}
	return unescapeSelfClosingVoids(s)
}

func appendNode(parent *etree.Element, n *dom.Node, isLastInParent bool) {
	switch n.Kind {
	case dom.KindText:
		parent.AddChild(etree.NewCharData(escapeRunsOfSpace(n.Text, isLastInParent)))
	case dom.KindZwsp:
		parent.AddChild(etree.NewCharData(n.Text))
	case dom.KindLineBreak:
		parent.CreateElement("br")
	case dom.KindMention:
		el := parent.CreateElement("a")
		el.CreateAttr("href", n.MentionURL)
		for k, v := range n.Attrs {
			el.CreateAttr(k, v)
		}
		el.SetText(n.Text)
	case dom.KindLink:
		el := parent.CreateElement("a")
		el.CreateAttr("href", n.LinkURL)
		appendChildren(el, n.Children)
	case dom.KindCodeBlock:
		pre := parent.CreateElement("pre")
		code := pre.CreateElement("code")
		appendChildren(code, n.Children)
	case dom.KindListItem:
		el := parent.CreateElement("li")
		appendChildren(el, tightListItemChildren(n))
	case dom.KindGeneric:
		appendChildren(parent, n.Children)
	default:
		tag, ok := kindTags[n.Kind]
		if !ok {
			tag = "span"
		}
		el := parent.CreateElement(tag)
		appendChildren(el, n.Children)
	}
}

// escapeRunsOfSpace replaces every run of two spaces with two non-breaking
// spaces, and, for the last text run in its parent, turns a remaining
// trailing space into a non-breaking one, so neither is collapsed away by
// an HTML renderer's whitespace handling.
func escapeRunsOfSpace(text string, isLastInParent bool) string {
	out := strings.ReplaceAll(text, "  ", "\u00a0\u00a0")
	if isLastInParent && strings.HasSuffix(out, " ") {
		out = out[:len(out)-1] + "\u00a0"
	}
	return out
}

// tightListItemChildren flattens a ListItem's direct Paragraph children into
// the item itself, so a list built one block per item (the shape toggleList
// and Indent produce) renders as a tight "<li>text</li>" rather than a loose
// "<li><p>text</p></li>". Non-paragraph children (nested lists, in
// particular) pass through untouched.
func tightListItemChildren(item *dom.Node) []*dom.Node {
	var out []*dom.Node
	for _, c := range item.Children {
		if c.Kind == dom.KindParagraph {
			out = append(out, c.Children...)
			continue
		}
		out = append(out, c)
	}
	return out
}

// appendChildren renders each of children into el, telling appendNode which
// one is last so a trailing space on it can be escaped to a non-breaking
// space rather than collapsed. An element with no children gets an empty
// text child, so etree writes it as "<p></p>" rather than self-closing it.
func appendChildren(el *etree.Element, children []*dom.Node) {
	if len(children) == 0 {
		el.AddChild(etree.NewCharData(""))
	}
	for i, c := range children {
		appendNode(el, c, i == len(children)-1)
	}
}

// unescapeSelfClosingVoids turns etree's self-closed <br/> into the
// void-element spelling hosts expect from rich-text HTML.
func unescapeSelfClosingVoids(s string) string {
	return strings.ReplaceAll(s, "<br/>", "<br>")
}
