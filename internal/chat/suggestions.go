package chat

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adamavenir/murmur/internal/core"
)

const suggestionLimit = 5

type suggestionItem struct {
	Display string
	Insert  string
}

// buildMentionSuggestions filters the room's members against the typed
// fragment: everyone but the local user whose name starts with the
// fragment, case-insensitively, in first-seen order, capped at the limit.
func buildMentionSuggestions(members []string, currentUser, fragment string) []suggestionItem {
	if fragment == "" {
		return nil
	}
	normalized := strings.ToLower(fragment)
	suggestions := make([]suggestionItem, 0, suggestionLimit)
	for _, member := range members {
		if member == currentUser {
			continue
		}
		if !strings.HasPrefix(strings.ToLower(member), normalized) {
			continue
		}
		suggestions = append(suggestions, suggestionItem{Display: "@" + member, Insert: member})
		if len(suggestions) >= suggestionLimit {
			break
		}
	}
	return suggestions
}

func (m *Model) refreshSuggestions() {
	value := m.input.Value()
	pos := m.inputCursorPos()

	_, fragment, ok := core.MentionFragment(value, pos)
	if !ok {
		m.clearSuggestions()
		return
	}

	suggestions := buildMentionSuggestions(m.session.Members.All(), m.session.CurrentUser, fragment)
	if len(suggestions) == 0 {
		m.clearSuggestions()
		return
	}
	m.suggestions = suggestions
	if m.suggestionIndex >= len(suggestions) {
		m.suggestionIndex = 0
	}
}

func (m *Model) clearSuggestions() {
	m.suggestions = nil
	m.suggestionIndex = 0
}

func (m *Model) applySuggestion(item suggestionItem) {
	value := m.input.Value()
	pos := m.inputCursorPos()

	updated, caret, ok := core.InsertMention(value, pos, item.Insert)
	if !ok {
		return
	}
	m.input.SetValue(updated)
	m.input.SetCursor(caret)
	m.clearSuggestions()
}

func (m *Model) handleSuggestionKeys(msg tea.KeyMsg) (bool, tea.Cmd) {
	if len(m.suggestions) == 0 {
		return false, nil
	}
	switch msg.Type {
	case tea.KeyEsc:
		m.clearSuggestions()
		return true, nil
	case tea.KeyUp:
		m.suggestionIndex--
		if m.suggestionIndex < 0 {
			m.suggestionIndex = len(m.suggestions) - 1
		}
		return true, nil
	case tea.KeyDown:
		m.suggestionIndex++
		if m.suggestionIndex >= len(m.suggestions) {
			m.suggestionIndex = 0
		}
		return true, nil
	case tea.KeyTab, tea.KeyEnter:
		m.applySuggestion(m.suggestions[m.suggestionIndex])
		return true, nil
	}
	return false, nil
}

func (m *Model) inputCursorPos() int {
	value := m.input.Value()
	if value == "" {
		return 0
	}
	lines := strings.Split(value, "\n")
	row := m.input.Line()
	if row < 0 {
		row = 0
	}
	if row >= len(lines) {
		row = len(lines) - 1
	}
	col := m.input.LineInfo().ColumnOffset
	if col < 0 {
		col = 0
	}
	lineRunes := []rune(lines[row])
	if col > len(lineRunes) {
		col = len(lineRunes)
	}

	pos := 0
	for i := 0; i < row; i++ {
		pos += len([]rune(lines[i])) + 1
	}
	pos += col

	total := len([]rune(value))
	if pos > total {
		pos = total
	}
	return pos
}
