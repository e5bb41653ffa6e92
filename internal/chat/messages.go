package chat

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/adamavenir/murmur/internal/core"
	"github.com/adamavenir/murmur/internal/types"
)

// formatDateHeader renders a date separator: Today, Yesterday, or the
// full date.
func formatDateHeader(day, now time.Time) string {
	today := now.Format("2006-01-02")
	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	switch day.Format("2006-01-02") {
	case today:
		return "Today"
	case yesterday:
		return "Yesterday"
	}
	return day.Format("Jan 2, 2006")
}

func formatTimeStamp(ts int64) string {
	return time.UnixMilli(ts).Local().Format("15:04")
}

// quotePreview is the one-line summary of a replied-to message shown in
// the quote block: its content, or a photo stand-in for image-only
// messages.
func quotePreview(msg types.Message) string {
	if msg.Content != "" {
		return msg.Content
	}
	if msg.ImageURL != "" {
		return "📷 Photo"
	}
	return ""
}

// renderMessages projects the visible messages into viewport content and
// records the first line of each message for scroll targeting.
func (m *Model) renderMessages() string {
	visible := m.session.Visible()
	m.msgLines = make(map[string]int, len(visible))
	now := time.Now()

	var blocks []string
	line := 0
	lastDay := ""
	for idx, msg := range visible {
		day := time.UnixMilli(msg.TimeStamp).Local().Format("2006-01-02")
		if day != lastDay {
			lastDay = day
			header := dateStyle.Render("── " + formatDateHeader(time.UnixMilli(msg.TimeStamp).Local(), now) + " ──")
			blocks = append(blocks, header)
			line += lipgloss.Height(header) + 1
		}

		block := m.formatMessage(msg, idx)
		m.msgLines[msg.MessageID] = line
		blocks = append(blocks, block)
		line += lipgloss.Height(block) + 1
	}
	return strings.Join(blocks, "\n\n")
}

func (m *Model) formatMessage(msg types.Message, idx int) string {
	// Hard-deleted messages keep their position but render only the
	// placeholder, whatever the remaining fields hold.
	if msg.DeletedForAll {
		return placeholderStyle.Render("This message was deleted")
	}

	var lines []string

	sender := lipgloss.NewStyle().Bold(true).Foreground(m.senderColor(msg.Sender)).Render(msg.Sender)
	lines = append(lines, sender+" "+timeStyle.Render(formatTimeStamp(msg.TimeStamp)))

	if msg.ReplyToMessageID != nil {
		if original, ok := m.session.Store.Get(*msg.ReplyToMessageID); ok {
			quoted := original.Sender + ": " + quotePreview(original)
			lines = append(lines, quoteStyle.Render(quoted))
		}
	}

	if msg.Content != "" {
		lines = append(lines, m.renderContent(msg.Content))
	}
	if msg.ImageURL != "" {
		lines = append(lines, imageStyle.Render("🖼 "+msg.ImageURL))
	}

	block := strings.Join(lines, "\n")
	if m.isHighlighted(msg, idx) {
		block = highlightStyle.Render(block)
	}
	return block
}

func (m *Model) isHighlighted(msg types.Message, idx int) bool {
	if m.selectMode {
		return idx == m.selectIndex
	}
	return m.highlightedID != "" && msg.MessageID == m.highlightedID
}

// renderContent highlights @tokens that address the local user.
func (m *Model) renderContent(content string) string {
	var b strings.Builder
	for _, segment := range core.SplitMentionTokens(content) {
		if core.IsMentionToken(segment, m.session.CurrentUser) {
			b.WriteString(mentionStyle.Render(segment))
			continue
		}
		b.WriteString(segment)
	}
	return b.String()
}

func (m *Model) refreshViewport(scrollToBottom bool) {
	if !m.ready {
		return
	}
	m.viewport.SetContent(m.renderMessages())
	if scrollToBottom {
		m.viewport.GotoBottom()
	}
}

// gotoMessage highlights a message and scrolls the viewport to it.
func (m *Model) gotoMessage(id string) {
	m.highlightedID = id
	m.refreshViewport(false)
	if line, ok := m.msgLines[id]; ok {
		offset := line - 2
		if offset < 0 {
			offset = 0
		}
		m.viewport.SetYOffset(offset)
	}
}
