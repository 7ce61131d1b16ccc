package composer

import (
	"strings"

	"github.com/vortex/composer-engine/pkg/composer/dom"
	"github.com/vortex/composer-engine/pkg/htmlio"
	"github.com/vortex/composer-engine/pkg/mdconv"
)

func (m *Model[U]) isMention(href string) bool {
	return m.mentions != nil && m.mentions.IsMentionURL(href)
}

func (m *Model[U]) renderHTML() string {
	return htmlio.Serialize(m.dom)
}

// GetContentAsHTML renders the current document as an HTML fragment.
func (m *Model[U]) GetContentAsHTML() string {
	return m.renderHTML()
}

// GetContentAsPlainText renders the current document as plain text:
// formatting is discarded, paragraphs and list items are separated by
// newlines, and line breaks become newlines.
func (m *Model[U]) GetContentAsPlainText() string {
	var b strings.Builder
	writePlainText(&b, m.dom.Root, true)
	return strings.TrimRight(b.String(), "\n")
}

func writePlainText(b *strings.Builder, n *dom.Node, isRoot bool) {
	switch n.Kind {
	case dom.KindText:
		b.WriteString(n.Text)
		return
	case dom.KindZwsp:
		return
	case dom.KindLineBreak:
		b.WriteByte('\n')
		return
	case dom.KindMention:
		b.WriteString(n.Text)
		return
	}
	for _, c := range n.Children {
		writePlainText(b, c, false)
	}
	if !isRoot && n.Kind.IsBlock() {
		b.WriteByte('\n')
	}
}

// GetContentAsMarkdown renders the current document as Markdown.
func (m *Model[U]) GetContentAsMarkdown() string {
	var b strings.Builder
	writeMarkdownBlocks(&b, m.dom.Root.Children, 0)
	return strings.TrimRight(b.String(), "\n")
}

func writeMarkdownBlocks(b *strings.Builder, nodes []*dom.Node, indent int) {
	for _, n := range nodes {
		writeMarkdownBlock(b, n, indent)
	}
}

func writeMarkdownBlock(b *strings.Builder, n *dom.Node, indent int) {
	pad := strings.Repeat("  ", indent)
	switch n.Kind {
	case dom.KindParagraph:
		b.WriteString(pad)
		writeMarkdownInline(b, n.Children)
		b.WriteString("\n\n")
	case dom.KindQuote:
		b.WriteString(pad + "> ")
		writeMarkdownInline(b, n.Children)
		b.WriteString("\n\n")
	case dom.KindCodeBlock:
		b.WriteString(pad + "```\n")
		for _, c := range n.Children {
			b.WriteString(c.Text)
		}
		b.WriteString("\n" + pad + "```\n\n")
	case dom.KindOrderedList:
		for i, li := range n.Children {
			writeMarkdownListItem(b, li, indent, i+1)
		}
	case dom.KindUnorderedList:
		for _, li := range n.Children {
			writeMarkdownListItem(b, li, indent, 0)
		}
	default:
		writeMarkdownInline(b, []*dom.Node{n})
	}
}

func writeMarkdownListItem(b *strings.Builder, li *dom.Node, indent, ordinal int) {
	pad := strings.Repeat("  ", indent)
	if ordinal > 0 {
		b.WriteString(pad + itoa(ordinal) + ". ")
	} else {
		b.WriteString(pad + "- ")
	}
	var inline []*dom.Node
	var nested []*dom.Node
	for _, c := range li.Children {
		if c.Kind.IsList() {
			nested = append(nested, c)
		} else {
			inline = append(inline, c)
		}
	}
	writeMarkdownInline(b, inline)
	b.WriteByte('\n')
	writeMarkdownBlocks(b, nested, indent+1)
}

func writeMarkdownInline(b *strings.Builder, nodes []*dom.Node) {
	for _, n := range nodes {
		switch n.Kind {
		case dom.KindText:
			b.WriteString(n.Text)
		case dom.KindZwsp:
		case dom.KindLineBreak:
			b.WriteString("  \n")
		case dom.KindMention:
			b.WriteString("[" + n.Text + "](" + n.MentionURL + ")")
		case dom.KindBold:
			b.WriteString("**")
			writeMarkdownInline(b, n.Children)
			b.WriteString("**")
		case dom.KindItalic:
			b.WriteString("_")
			writeMarkdownInline(b, n.Children)
			b.WriteString("_")
		case dom.KindStrike:
			b.WriteString("~~")
			writeMarkdownInline(b, n.Children)
			b.WriteString("~~")
		case dom.KindUnderline:
			writeMarkdownInline(b, n.Children)
		case dom.KindInlineCode:
			b.WriteString("`")
			writeMarkdownInline(b, n.Children)
			b.WriteString("`")
		case dom.KindLink:
			b.WriteString("[")
			writeMarkdownInline(b, n.Children)
			b.WriteString("](" + n.LinkURL + ")")
		default:
			writeMarkdownInline(b, n.Children)
		}
	}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	if neg {
		return "-" + string(digits)
	}
	return string(digits)
}

// SetContentFromHTML replaces the document with the Dom recovered from
// parsing html, resets the selection to the end of the document, and
// clears history.
func (m *Model[U]) SetContentFromHTML(html string) (Update, error) {
	d, err := htmlio.Parse(html, m.isMention)
	if err != nil {
		return Update{}, NewHtmlParseError(err, "set content from html: %v", err)
	}
	return m.replaceDomWithParsed(d), nil
}

// SetContentFromMarkdown replaces the document with the Dom recovered
// from converting markdown to HTML (via goldmark) and parsing the
// result, resets the selection to the end, and clears history.
func (m *Model[U]) SetContentFromMarkdown(markdown string) (Update, error) {
	html, err := mdconv.ToHTML(markdown)
	if err != nil {
		return Update{}, NewMarkdownParseError(err, "set content from markdown: %v", err)
	}
	d, err := htmlio.Parse(html, m.isMention)
	if err != nil {
		return Update{}, NewMarkdownParseError(err, "set content from markdown: %v", err)
	}
	return m.replaceDomWithParsed(d), nil
}

func (m *Model[U]) replaceDomWithParsed(d *dom.Dom) Update {
	m.dom = d
	total := m.totalLen()
	m.start, m.end = total, total
	m.undoStack = nil
	m.redoStack = nil
	m.lastMenuState = nil
	return m.buildUpdate(MenuAction{Kind: MenuActionNone})
}
