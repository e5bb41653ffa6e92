package chat

import (
	"context"
	"encoding/json"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/adamavenir/murmur/internal/live"
	"github.com/adamavenir/murmur/internal/types"
)

type historyMsg struct {
	messages []types.Message
	err      error
}

type connectedMsg struct {
	conn *live.Conn
	err  error
}

type liveEventMsg struct {
	raw json.RawMessage
	ok  bool
}

type deleteResultMsg struct {
	err error
}

type uploadResultMsg struct {
	size int
	err  error
}

const requestTimeout = 20 * time.Second

func (m *Model) loadHistoryCmd() tea.Cmd {
	roomID := m.session.RoomID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		messages, err := m.client.FetchHistory(ctx, roomID)
		return historyMsg{messages: messages, err: err}
	}
}

func (m *Model) connectCmd() tea.Cmd {
	roomID := m.session.RoomID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		conn, err := live.Dial(ctx, m.client.BaseURL(), roomID, m.clientID)
		return connectedMsg{conn: conn, err: err}
	}
}

func waitForEventCmd(conn *live.Conn) tea.Cmd {
	return func() tea.Msg {
		raw, ok := <-conn.Events()
		return liveEventMsg{raw: raw, ok: ok}
	}
}

func (m *Model) deleteForMeCmd(messageID string) tea.Cmd {
	roomID, user := m.session.RoomID, m.session.CurrentUser
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return deleteResultMsg{err: m.client.DeleteForMe(ctx, roomID, messageID, user)}
	}
}

func (m *Model) deleteForEveryoneCmd(messageID string) tea.Cmd {
	roomID := m.session.RoomID
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		return deleteResultMsg{err: m.client.DeleteForEveryone(ctx, roomID, messageID)}
	}
}

func (m *Model) uploadImageCmd(path string, replyTo *string) tea.Cmd {
	roomID, user := m.session.RoomID, m.session.CurrentUser
	return func() tea.Msg {
		data, err := os.ReadFile(path)
		if err != nil {
			return uploadResultMsg{err: err}
		}
		ctx, cancel := context.WithTimeout(context.Background(), requestTimeout)
		defer cancel()
		err = m.client.UploadImage(ctx, roomID, baseName(path), data, user, replyTo)
		return uploadResultMsg{size: len(data), err: err}
	}
}

func baseName(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}
