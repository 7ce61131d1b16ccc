// Package htmlio converts between the composer's document tree and HTML:
// Parse uses golang.org/x/net/html's lenient tokenizer/tree-builder (the
// same one browsers are built against) to recover a Dom from arbitrary,
// possibly malformed, input; Serialize renders a Dom back to HTML using
// beevik/etree as the element-tree builder.
package htmlio

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/vortex/composer-engine/pkg/composer/dom"
)

// MentionLookup reports whether href identifies a mentionable entity; a
// nil lookup means no link is ever treated as a mention.
type MentionLookup func(href string) bool

var tagKinds = map[string]dom.Kind{
	"strong":     dom.KindBold,
	"b":          dom.KindBold,
	"em":         dom.KindItalic,
	"i":          dom.KindItalic,
	"del":        dom.KindStrike,
	"s":          dom.KindStrike,
	"strike":     dom.KindStrike,
	"u":          dom.KindUnderline,
	"code":       dom.KindInlineCode,
	"ol":         dom.KindOrderedList,
	"ul":         dom.KindUnorderedList,
	"li":         dom.KindListItem,
	"p":          dom.KindParagraph,
	"blockquote": dom.KindQuote,
}

// Parse recovers a Dom from an HTML fragment. Malformed markup is
// repaired the way a browser's parser would repair it; Parse only fails
// when the underlying tokenizer reports an I/O error, which cannot
// happen reading from a string.
func Parse(input string, isMention MentionLookup) (*dom.Dom, error) {
	ctx := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(input), ctx)
	if err != nil {
		return nil, fmt.Errorf("htmlio: parse fragment: %w", err)
	}
	d := dom.New()
	for _, n := range nodes {
		if cn := convert(n, isMention); cn != nil {
			d.Root.Children = append(d.Root.Children, cn)
		}
	}
	d.Normalize(true)
	return d, nil
}

func convert(n *html.Node, isMention MentionLookup) *dom.Node {
	switch n.Type {
	case html.TextNode:
		// Whitespace-only text that holds a line break is layout between
		// elements (goldmark ends every block with "\n"), not content.
		if strings.TrimSpace(n.Data) == "" && strings.Contains(n.Data, "\n") {
			return nil
		}
		return dom.NewText(n.Data)
	case html.ElementNode:
		return convertElement(n, isMention)
	default:
		return nil
	}
}

func convertElement(n *html.Node, isMention MentionLookup) *dom.Node {
	switch n.Data {
	case "br":
		return dom.NewLineBreak()
	case "a":
		href := attrOf(n, "href")
		if isMention != nil && isMention(href) {
			return dom.NewMention(href, textContent(n), attrsExcept(n, "href"))
		}
		node := dom.NewLink(href)
		node.Children = convertChildren(n, isMention)
		return node
	case "pre":
		return &dom.Node{Kind: dom.KindCodeBlock, Children: []*dom.Node{dom.NewText(textContent(n))}}
	}
	if kind, ok := tagKinds[n.Data]; ok {
		return &dom.Node{Kind: kind, Children: convertChildren(n, isMention)}
	}
	// Unrecognized elements (div, span, table, ...) are spliced through:
	// their children join the surrounding flow rather than being dropped.
	return &dom.Node{Kind: dom.KindGeneric, Children: convertChildren(n, isMention)}
}

func convertChildren(n *html.Node, isMention MentionLookup) []*dom.Node {
	var out []*dom.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if cn := convert(c, isMention); cn != nil {
			out = append(out, cn)
		}
	}
	return out
}

func textContent(n *html.Node) string {
	var b strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.TextNode {
			b.WriteString(n.Data)
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return b.String()
}

func attrOf(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func attrsExcept(n *html.Node, except string) map[string]string {
	var m map[string]string
	for _, a := range n.Attr {
		if a.Key == except {
			continue
		}
		if m == nil {
			m = map[string]string{}
		}
		m[a.Key] = a.Val
	}
	return m
}
