package composer

// Undo reverts to the document state immediately before the last
// history-recording command, if any. A no-op with a Keep Update when the
// undo stack is empty.
func (m *Model[U]) Undo() (Update, error) {
	return m.dispatch(func() Update {
		if len(m.undoStack) == 0 {
			return keepUpdate()
		}
		prev := m.undoStack[len(m.undoStack)-1]
		m.undoStack = m.undoStack[:len(m.undoStack)-1]
		m.redoStack = append(m.redoStack, historyState{
			dom: m.dom.Clone(), start: m.start, end: m.end,
			pendingFormats: clonePendingFormats(m.pendingFormats),
		})
		m.dom, m.start, m.end, m.pendingFormats = prev.dom, prev.start, prev.end, prev.pendingFormats
		return m.buildUpdate(MenuAction{Kind: MenuActionNone})
	})
}

// Redo reapplies the last command undone by Undo, if any.
func (m *Model[U]) Redo() (Update, error) {
	return m.dispatch(func() Update {
		if len(m.redoStack) == 0 {
			return keepUpdate()
		}
		next := m.redoStack[len(m.redoStack)-1]
		m.redoStack = m.redoStack[:len(m.redoStack)-1]
		m.undoStack = append(m.undoStack, historyState{
			dom: m.dom.Clone(), start: m.start, end: m.end,
			pendingFormats: clonePendingFormats(m.pendingFormats),
		})
		m.dom, m.start, m.end, m.pendingFormats = next.dom, next.start, next.end, next.pendingFormats
		return m.buildUpdate(MenuAction{Kind: MenuActionNone})
	})
}
