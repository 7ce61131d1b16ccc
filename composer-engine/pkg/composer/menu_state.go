package composer

import "github.com/vortex/composer-engine/pkg/composer/dom"

// Action identifies one toolbar button whose enabled/active state the
// host needs to know after every command.
type Action int

const (
	ActionBold Action = iota
	ActionItalic
	ActionStrikeThrough
	ActionUnderline
	ActionInlineCode
	ActionLink
	ActionUndo
	ActionRedo
	ActionOrderedList
	ActionUnorderedList
	ActionIndent
	ActionUnindent
	ActionCodeBlock
	ActionQuote
)

var actionNames = map[Action]string{
	ActionBold:          "bold",
	ActionItalic:        "italic",
	ActionStrikeThrough: "strike_through",
	ActionUnderline:     "underline",
	ActionInlineCode:    "inline_code",
	ActionLink:          "link",
	ActionUndo:          "undo",
	ActionRedo:          "redo",
	ActionOrderedList:   "ordered_list",
	ActionUnorderedList: "unordered_list",
	ActionIndent:        "indent",
	ActionUnindent:      "unindent",
	ActionCodeBlock:     "code_block",
	ActionQuote:         "quote",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// ActionState is the tri-state a toolbar button can be in: available to
// apply, already applied to the whole selection (so the button now
// removes it), or unavailable in the current context.
type ActionState int

const (
	StateEnabled ActionState = iota
	StateReversed
	StateDisabled
)

func (s ActionState) String() string {
	switch s {
	case StateEnabled:
		return "enabled"
	case StateReversed:
		return "reversed"
	case StateDisabled:
		return "disabled"
	default:
		return "unknown"
	}
}

var formattingActions = []struct {
	action Action
	kind   dom.Kind
}{
	{ActionBold, dom.KindBold},
	{ActionItalic, dom.KindItalic},
	{ActionStrikeThrough, dom.KindStrike},
	{ActionUnderline, dom.KindUnderline},
	{ActionInlineCode, dom.KindInlineCode},
}

func (m *Model[U]) computeMenuState() map[Action]ActionState {
	states := make(map[Action]ActionState, 14)

	start, end := m.safeSelection()
	rng := dom.Resolve(m.dom.Root, start, end, m.textLen)
	leaves := rng.Leaves()

	insideCodeBlock := m.anyLeafInsideKind(leaves, dom.KindCodeBlock)
	for _, fa := range formattingActions {
		switch {
		case insideCodeBlock:
			states[fa.action] = StateDisabled
		case len(leaves) > 0 && m.allLeavesInsideKind(leaves, fa.kind):
			states[fa.action] = StateReversed
		default:
			states[fa.action] = StateEnabled
		}
	}

	switch {
	case insideCodeBlock:
		states[ActionLink] = StateDisabled
	case len(leaves) > 0 && m.allLeavesInsideKind(leaves, dom.KindLink):
		states[ActionLink] = StateReversed
	default:
		states[ActionLink] = StateEnabled
	}

	if len(m.undoStack) == 0 {
		states[ActionUndo] = StateDisabled
	} else {
		states[ActionUndo] = StateEnabled
	}
	if len(m.redoStack) == 0 {
		states[ActionRedo] = StateDisabled
	} else {
		states[ActionRedo] = StateEnabled
	}

	anchor := m.anchorHandle(leaves)
	listItem := m.dom.AncestorOfKind(anchor, func(k dom.Kind) bool { return k == dom.KindListItem })

	states[ActionOrderedList] = listStateFor(m.dom, listItem, dom.KindOrderedList)
	states[ActionUnorderedList] = listStateFor(m.dom, listItem, dom.KindUnorderedList)

	if listItem == nil || !hasPrevListItemSibling(m.dom, listItem) {
		states[ActionIndent] = StateDisabled
	} else {
		states[ActionIndent] = StateEnabled
	}
	if listItem == nil || !isNestedListItem(m.dom, listItem) {
		states[ActionUnindent] = StateDisabled
	} else {
		states[ActionUnindent] = StateEnabled
	}

	if insideCodeBlock {
		states[ActionCodeBlock] = StateReversed
	} else {
		states[ActionCodeBlock] = StateEnabled
	}
	if m.dom.AncestorOfKind(anchor, func(k dom.Kind) bool { return k == dom.KindQuote }) != nil {
		states[ActionQuote] = StateReversed
	} else {
		states[ActionQuote] = StateEnabled
	}

	return states
}

func listStateFor(d *dom.Dom, listItem *dom.Node, kind dom.Kind) ActionState {
	if listItem == nil {
		return StateEnabled
	}
	parent, ok := d.Parent(listItem.Handle)
	if !ok || parent.Kind != kind {
		return StateEnabled
	}
	return StateReversed
}

func hasPrevListItemSibling(d *dom.Dom, listItem *dom.Node) bool {
	if listItem.Handle.IsRoot() || listItem.Handle.IndexInParent() == 0 {
		return false
	}
	prev, ok := d.Lookup(listItem.Handle.PrevSibling())
	return ok && prev.Kind == dom.KindListItem
}

func isNestedListItem(d *dom.Dom, listItem *dom.Node) bool {
	list, ok := d.Parent(listItem.Handle)
	if !ok {
		return false
	}
	grandParent, ok := d.Parent(list.Handle)
	if !ok {
		return false
	}
	return grandParent.Kind == dom.KindListItem
}

func (m *Model[U]) anchorHandle(leaves []dom.DomLocation) dom.Handle {
	if len(leaves) == 0 {
		return dom.RootHandle()
	}
	return leaves[0].Handle
}

func (m *Model[U]) allLeavesInsideKind(leaves []dom.DomLocation, kind dom.Kind) bool {
	for _, l := range leaves {
		if m.dom.AncestorOfKind(l.Handle, func(k dom.Kind) bool { return k == kind }) == nil {
			return false
		}
	}
	return true
}

func (m *Model[U]) anyLeafInsideKind(leaves []dom.DomLocation, kind dom.Kind) bool {
	for _, l := range leaves {
		if m.dom.AncestorOfKind(l.Handle, func(k dom.Kind) bool { return k == kind }) != nil {
			return true
		}
	}
	return false
}

func menuStatesEqual(a, b map[Action]ActionState) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}
