package dom

// Kind tags the closed set of node variants the Dom can hold. Operations
// dispatch on Kind rather than on any open type hierarchy.
type Kind int

const (
	KindGeneric Kind = iota
	KindBold
	KindItalic
	KindStrike
	KindUnderline
	KindInlineCode
	KindLink
	KindOrderedList
	KindUnorderedList
	KindListItem
	KindParagraph
	KindQuote
	KindCodeBlock
	KindText
	KindLineBreak
	KindZwsp
	KindMention
)

func (k Kind) String() string {
	switch k {
	case KindGeneric:
		return "generic"
	case KindBold:
		return "bold"
	case KindItalic:
		return "italic"
	case KindStrike:
		return "strike"
	case KindUnderline:
		return "underline"
	case KindInlineCode:
		return "inline-code"
	case KindLink:
		return "link"
	case KindOrderedList:
		return "ordered-list"
	case KindUnorderedList:
		return "unordered-list"
	case KindListItem:
		return "list-item"
	case KindParagraph:
		return "paragraph"
	case KindQuote:
		return "quote"
	case KindCodeBlock:
		return "code-block"
	case KindText:
		return "text"
	case KindLineBreak:
		return "line-break"
	case KindZwsp:
		return "zwsp"
	case KindMention:
		return "mention"
	default:
		return "unknown"
	}
}

// IsContainer reports whether nodes of this kind may have children.
func (k Kind) IsContainer() bool {
	switch k {
	case KindText, KindLineBreak, KindZwsp, KindMention:
		return false
	default:
		return true
	}
}

// IsLeaf is the complement of IsContainer: Text, LineBreak, Zwsp, Mention.
func (k Kind) IsLeaf() bool { return !k.IsContainer() }

// IsFormatting reports whether this is an inline formatting container kind.
func (k Kind) IsFormatting() bool {
	switch k {
	case KindBold, KindItalic, KindStrike, KindUnderline, KindInlineCode:
		return true
	default:
		return false
	}
}

// IsList reports whether this is a List container kind (Ordered/Unordered).
func (k Kind) IsList() bool { return k == KindOrderedList || k == KindUnorderedList }

// IsBlock reports whether this is a block container kind: Paragraph, Quote,
// CodeBlock, ListItem, or a List itself.
func (k Kind) IsBlock() bool {
	switch k {
	case KindParagraph, KindQuote, KindCodeBlock, KindListItem, KindOrderedList, KindUnorderedList:
		return true
	default:
		return false
	}
}

// Node is a single entry in the closed, tagged node set described by the
// document model: Container(kind), Text, LineBreak, Zwsp, Mention.
//
// A single struct carries every variant's payload; only the fields that
// apply to Kind are meaningful. This mirrors the "tagged sum, not open
// inheritance" guidance for the node set: every edit operation switches on
// Kind rather than on a type hierarchy.
type Node struct {
	Kind   Kind
	Handle Handle

	// Container payload.
	Children []*Node
	LinkURL  string // KindLink only
	Attrs    map[string]string

	// Leaf payload.
	Text string // KindText data, or KindMention label

	// KindMention payload.
	MentionURL string
}

// NewContainer creates a detached container node of the given kind. Its
// Handle is unset until it is inserted into a Dom.
func NewContainer(kind Kind, children ...*Node) *Node {
	return &Node{Kind: kind, Children: children}
}

// NewLink creates a detached Link container wrapping children.
func NewLink(url string, children ...*Node) *Node {
	return &Node{Kind: KindLink, LinkURL: url, Children: children}
}

// NewText creates a detached Text leaf.
func NewText(data string) *Node { return &Node{Kind: KindText, Text: data} }

// NewLineBreak creates a detached LineBreak leaf.
func NewLineBreak() *Node { return &Node{Kind: KindLineBreak} }

// NewZwsp creates a detached Zwsp leaf.
func NewZwsp() *Node { return &Node{Kind: KindZwsp, Text: "\u200b"} }

// NewMention creates a detached Mention leaf.
func NewMention(url, label string, attrs map[string]string) *Node {
	return &Node{Kind: KindMention, MentionURL: url, Text: label, Attrs: attrs}
}

// IsWhitespaceOnlyText reports whether this is a Text node containing only
// spaces, tabs, CRs and LFs (an empty Text node counts too).
func (n *Node) IsWhitespaceOnlyText() bool {
	if n.Kind != KindText {
		return false
	}
	for _, r := range n.Text {
		if r != ' ' && r != '\t' && r != '\n' && r != '\r' {
			return false
		}
	}
	return true
}

// IsEmptyText reports whether this is a Text node with no data.
func (n *Node) IsEmptyText() bool { return n.Kind == KindText && n.Text == "" }

// Clone returns a deep copy of the subtree rooted at n, with the same
// (possibly stale) handles; callers normally recompute handles after
// grafting a clone into a Dom.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	cp := *n
	if n.Children != nil {
		cp.Children = make([]*Node, len(n.Children))
		for i, c := range n.Children {
			cp.Children[i] = c.Clone()
		}
	}
	if n.Attrs != nil {
		cp.Attrs = make(map[string]string, len(n.Attrs))
		for k, v := range n.Attrs {
			cp.Attrs[k] = v
		}
	}
	return &cp
}

// FormattingKindsEqual reports whether a and b are both formatting
// containers of the identical kind (and, for Link, the identical URL).
func FormattingKindsEqual(a, b *Node) bool {
	if a.Kind != b.Kind {
		return false
	}
	if a.Kind == KindLink {
		return a.LinkURL == b.LinkURL
	}
	return a.Kind.IsFormatting()
}
