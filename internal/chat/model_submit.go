package chat

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adamavenir/murmur/internal/session"
	"github.com/adamavenir/murmur/internal/types"
)

func (m *Model) submit() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.input.Value())
	if value == "" {
		return m, nil
	}

	if strings.HasPrefix(value, "/") {
		return m.runSlashCommand(value)
	}

	if m.live == nil {
		m.status = "not connected"
		return m, nil
	}

	var replyTo *string
	if target, ok := m.session.Reply.Current(); ok {
		id := target.MessageID
		replyTo = &id
	}

	// The backend resolves @tokens into mentionedUsers and echoes the
	// stored message back over the live feed; nothing is added locally.
	out := types.OutgoingMessage{
		Sender:           m.session.CurrentUser,
		Content:          value,
		RoomID:           m.session.RoomID,
		MentionedUsers:   []string{},
		ReplyToMessageID: replyTo,
	}
	if err := m.live.Send(out); err != nil {
		m.status = "send failed: " + err.Error()
		return m, nil
	}

	m.input.Reset()
	m.clearSuggestions()
	m.session.Reply.Clear()
	m.status = ""
	return m, nil
}

func (m *Model) runSlashCommand(value string) (tea.Model, tea.Cmd) {
	parts := strings.SplitN(value, " ", 2)
	switch parts[0] {
	case "/quit", "/exit":
		m.quitting = true
		return m, tea.Quit
	case "/upload":
		if len(parts) < 2 || strings.TrimSpace(parts[1]) == "" {
			m.status = "usage: /upload <path>"
			return m, nil
		}
		var replyTo *string
		if target, ok := m.session.Reply.Current(); ok {
			id := target.MessageID
			replyTo = &id
		}
		m.input.Reset()
		m.clearSuggestions()
		m.status = "uploading..."
		return m, m.uploadImageCmd(strings.TrimSpace(parts[1]), replyTo)
	default:
		m.status = "unknown command " + parts[0]
		return m, nil
	}
}

// runSearch executes the search field's term against the visible snapshot
// and jumps to the most recent match.
func (m *Model) runSearch() {
	set, err := m.session.Search(m.search.Value())
	if err != nil {
		if errors.Is(err, session.ErrEmptyQuery) {
			m.status = "enter a search term"
		} else {
			m.status = "search failed: " + err.Error()
		}
		return
	}
	if set == nil {
		m.highlightedID = ""
		m.status = "no matches found"
		m.refreshViewport(false)
		return
	}
	m.status = ""
	m.gotoSearchCursor(set)
}

func (m *Model) gotoSearchCursor(set *session.MatchSet) {
	_, id := set.Current()
	m.gotoMessage(id)
}
