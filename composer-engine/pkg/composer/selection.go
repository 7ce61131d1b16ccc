package composer

// Select moves the selection to [start, end) code units, without
// recording a history entry (selection changes alone are not undoable).
func (m *Model[U]) Select(start, end int) (Update, error) {
	return m.dispatch(func() Update {
		m.start, m.end = start, end
		s, e := m.safeSelection()
		menu := MenuStateUpdate{Kind: MenuStateKeep}
		states := m.computeMenuState()
		if m.lastMenuState == nil || !menuStatesEqual(m.lastMenuState, states) {
			menu = MenuStateUpdate{Kind: MenuStateUpdated, Actions: states}
			m.lastMenuState = states
		}
		return Update{
			Text:   TextUpdate{Kind: TextKeep},
			Menu:   menu,
			Action: m.computeSuggestionAction(s, e),
		}
	})
}
