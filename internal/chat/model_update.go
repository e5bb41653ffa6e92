package chat

import (
	"errors"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"

	"github.com/adamavenir/murmur/internal/client"
)

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSizeMsg(msg)
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case historyMsg:
		return m.handleHistoryMsg(msg)
	case connectedMsg:
		return m.handleConnectedMsg(msg)
	case liveEventMsg:
		return m.handleLiveEventMsg(msg)
	case deleteResultMsg:
		return m.handleDeleteResultMsg(msg)
	case uploadResultMsg:
		return m.handleUploadResultMsg(msg)
	default:
		cmd := m.updateFocusedInput(msg)
		return m, cmd
	}
}

func (m *Model) handleWindowSizeMsg(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.resize()
	m.ready = true
	m.refreshViewport(true)
	return m, nil
}

func (m *Model) handleHistoryMsg(msg historyMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// Non-fatal: the session stays empty and fills from live events.
		m.status = "history unavailable: " + msg.err.Error()
		return m, nil
	}
	m.session.LoadHistory(msg.messages)
	m.refreshViewport(true)
	return m, nil
}

func (m *Model) handleConnectedMsg(msg connectedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = "live feed unavailable: " + msg.err.Error()
		return m, nil
	}
	m.live = msg.conn
	m.status = "connected"
	return m, waitForEventCmd(m.live)
}

func (m *Model) handleLiveEventMsg(msg liveEventMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		m.status = "live feed disconnected"
		return m, nil
	}
	m.session.ApplyEvent(msg.raw)
	m.refreshViewport(m.viewport.AtBottom())
	return m, waitForEventCmd(m.live)
}

func (m *Model) handleDeleteResultMsg(msg deleteResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		// The store is untouched on failure; only a live event changes it.
		m.status = "delete failed: " + describeError(msg.err)
		return m, nil
	}
	m.status = "deleted"
	return m, nil
}

func (m *Model) handleUploadResultMsg(msg uploadResultMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		m.status = "upload failed: " + describeError(msg.err)
		return m, nil
	}
	m.session.Reply.Clear()
	m.status = "uploaded " + humanize.Bytes(uint64(msg.size))
	return m, nil
}

func (m *Model) updateFocusedInput(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	if m.searchMode {
		m.search, cmd = m.search.Update(msg)
		return cmd
	}
	m.input, cmd = m.input.Update(msg)
	m.refreshSuggestions()
	return cmd
}

func describeError(err error) string {
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Error()
	}
	return err.Error()
}
