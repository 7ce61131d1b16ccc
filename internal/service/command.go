package service

import (
	"fmt"

	"github.com/vortex/composer-engine/pkg/composer"
)

// dispatchCommand applies one Command to model by its Type.
func dispatchCommand(model *composer.Model[uint16], cmd Command) error {
	var err error
	switch cmd.Type {
	case "replace_text":
		_, err = model.ReplaceText(cmd.Text)
	case "replace_text_in":
		_, err = model.ReplaceTextIn(cmd.Text, cmd.Start, cmd.End)
	case "delete_in":
		_, err = model.DeleteIn(cmd.Start, cmd.End)
	case "backspace":
		_, err = model.Backspace()
	case "delete":
		_, err = model.Delete()
	case "backspace_word":
		_, err = model.BackspaceWord()
	case "delete_word":
		_, err = model.DeleteWord()
	case "enter":
		_, err = model.Enter()
	case "select":
		_, err = model.Select(cmd.Start, cmd.End)
	case "bold":
		_, err = model.Bold()
	case "italic":
		_, err = model.Italic()
	case "strike_through":
		_, err = model.StrikeThrough()
	case "underline":
		_, err = model.Underline()
	case "inline_code":
		_, err = model.InlineCode()
	case "set_link":
		_, err = model.SetLink(cmd.URL)
	case "set_link_with_text":
		_, err = model.SetLinkWithText(cmd.URL, cmd.Text)
	case "remove_links":
		_, err = model.RemoveLinks()
	case "ordered_list":
		_, err = model.OrderedList()
	case "unordered_list":
		_, err = model.UnorderedList()
	case "indent":
		_, err = model.Indent()
	case "unindent":
		_, err = model.Unindent()
	case "quote":
		_, err = model.Quote()
	case "code_block":
		_, err = model.CodeBlock()
	case "undo":
		_, err = model.Undo()
	case "redo":
		_, err = model.Redo()
	case "clear":
		model.Clear()
	case "set_content_from_html":
		_, err = model.SetContentFromHTML(cmd.Text)
	case "set_content_from_markdown":
		_, err = model.SetContentFromMarkdown(cmd.Text)
	default:
		return fmt.Errorf("unknown command type %q", cmd.Type)
	}
	return err
}

func actionStrings(states map[composer.Action]composer.ActionState) map[string]string {
	out := make(map[string]string, len(states))
	for action, state := range states {
		out[action.String()] = state.String()
	}
	return out
}
