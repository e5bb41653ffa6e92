package chat

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "ctrl+f":
		return m.toggleSearch()
	case "ctrl+k":
		return m.toggleSelectMode()
	case "ctrl+n":
		return m.acknowledgeMention()
	}

	if m.searchMode {
		return m.handleSearchKeys(msg)
	}
	if m.selectMode {
		return m.handleSelectKeys(msg)
	}

	if handled, cmd := m.handleSuggestionKeys(msg); handled {
		return m, cmd
	}

	switch msg.Type {
	case tea.KeyEnter:
		return m.submit()
	case tea.KeyEsc:
		if _, ok := m.session.Reply.Current(); ok {
			m.session.Reply.Clear()
			m.status = "reply cancelled"
			return m, nil
		}
		m.clearSuggestions()
		return m, nil
	}

	cmd := m.updateFocusedInput(msg)
	return m, cmd
}

func (m *Model) toggleSearch() (tea.Model, tea.Cmd) {
	if m.searchMode {
		m.closeSearch()
		return m, nil
	}
	m.searchMode = true
	m.selectMode = false
	m.search.SetValue("")
	m.search.Focus()
	m.input.Blur()
	return m, nil
}

func (m *Model) closeSearch() {
	m.searchMode = false
	m.session.ClearSearch()
	m.highlightedID = ""
	m.search.Blur()
	m.input.Focus()
	m.refreshViewport(false)
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.closeSearch()
		return m, nil
	case tea.KeyEnter:
		m.runSearch()
		return m, nil
	case tea.KeyUp:
		if set, ok := m.session.ActiveSearch(); ok {
			set.Previous()
			m.gotoSearchCursor(set)
		}
		return m, nil
	case tea.KeyDown:
		if set, ok := m.session.ActiveSearch(); ok {
			set.Next()
			m.gotoSearchCursor(set)
		}
		return m, nil
	}
	cmd := m.updateFocusedInput(msg)
	return m, cmd
}

func (m *Model) toggleSelectMode() (tea.Model, tea.Cmd) {
	if m.selectMode {
		m.exitSelectMode()
		return m, nil
	}
	visible := m.session.Visible()
	if len(visible) == 0 {
		m.status = "no messages to select"
		return m, nil
	}
	m.selectMode = true
	m.selectIndex = len(visible) - 1
	m.input.Blur()
	m.refreshViewport(false)
	m.gotoMessage(visible[m.selectIndex].MessageID)
	return m, nil
}

func (m *Model) exitSelectMode() {
	m.selectMode = false
	m.highlightedID = ""
	m.input.Focus()
	m.refreshViewport(false)
}

func (m *Model) handleSelectKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	visible := m.session.Visible()
	if len(visible) == 0 {
		m.exitSelectMode()
		return m, nil
	}
	if m.selectIndex >= len(visible) {
		m.selectIndex = len(visible) - 1
	}

	switch msg.String() {
	case "esc", "enter":
		m.exitSelectMode()
		return m, nil
	case "up", "k":
		if m.selectIndex > 0 {
			m.selectIndex--
		}
		m.gotoMessage(visible[m.selectIndex].MessageID)
		return m, nil
	case "down", "j":
		if m.selectIndex < len(visible)-1 {
			m.selectIndex++
		}
		m.gotoMessage(visible[m.selectIndex].MessageID)
		return m, nil
	case "r":
		target := visible[m.selectIndex]
		if target.DeletedForAll {
			m.status = "cannot reply to a deleted message"
			return m, nil
		}
		m.session.Reply.SetTarget(target)
		m.exitSelectMode()
		m.status = "replying to @" + target.Sender
		return m, nil
	case "d":
		id := visible[m.selectIndex].MessageID
		m.exitSelectMode()
		return m, m.deleteForMeCmd(id)
	case "D":
		target := visible[m.selectIndex]
		if target.Sender != m.session.CurrentUser {
			m.status = "only your own messages can be deleted for everyone"
			return m, nil
		}
		m.exitSelectMode()
		return m, m.deleteForEveryoneCmd(target.MessageID)
	}
	return m, nil
}

// acknowledgeMention jumps to the oldest unacknowledged mention and
// consumes it. With an empty queue it is a no-op.
func (m *Model) acknowledgeMention() (tea.Model, tea.Cmd) {
	id, ok := m.session.MentionQueue.PeekNext()
	if !ok {
		return m, nil
	}
	m.gotoMessage(id)
	m.session.MentionQueue.AcknowledgeNext()
	return m, nil
}
