package chat

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
)

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "connecting..."
	}

	sections := []string{m.renderHeader()}
	if m.searchMode {
		sections = append(sections, m.renderSearchBar())
	}
	sections = append(sections, m.viewport.View())
	if preview := m.renderReplyPreview(); preview != "" {
		sections = append(sections, preview)
	}
	if dropdown := m.renderSuggestions(); dropdown != "" {
		sections = append(sections, dropdown)
	}
	sections = append(sections, m.input.View())
	sections = append(sections, m.renderStatus())
	return strings.Join(sections, "\n")
}

func (m *Model) renderHeader() string {
	header := headerStyle.Render(fmt.Sprintf("murmur · %s · @%s", m.session.RoomID, m.session.CurrentUser))
	if count := m.session.MentionQueue.Count(); count > 0 {
		header += "  " + badgeStyle.Render(fmt.Sprintf("@%d mentions", count))
	}
	return header
}

func (m *Model) renderSearchBar() string {
	bar := searchBarStyle.Render("search: ") + m.search.View()
	if set, ok := m.session.ActiveSearch(); ok {
		bar += searchBarStyle.Render(fmt.Sprintf("  %d/%d", set.Cursor()+1, set.Count()))
	}
	return bar
}

func (m *Model) renderReplyPreview() string {
	target, ok := m.session.Reply.Current()
	if !ok {
		return ""
	}
	preview := quotePreview(target)
	return quoteStyle.Render(fmt.Sprintf("replying to %s: %s", target.Sender, preview)) +
		timeStyle.Render("  (esc to cancel)")
}

func (m *Model) renderSuggestions() string {
	if len(m.suggestions) == 0 {
		return ""
	}
	lines := make([]string, 0, len(m.suggestions))
	for idx, item := range m.suggestions {
		style := suggestionStyle
		if idx == m.suggestionIndex {
			style = suggestionSelSty
		}
		lines = append(lines, style.Render(item.Display))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderStatus() string {
	if m.status == "" {
		return " "
	}
	return statusStyle.Render(m.status)
}

func (m *Model) resize() {
	chrome := 3 // header, input, status
	if m.searchMode {
		chrome++
	}
	if _, ok := m.session.Reply.Current(); ok {
		chrome++
	}
	chrome += len(m.suggestions)

	height := m.height - chrome - m.input.Height()
	if height < 1 {
		height = 1
	}
	if m.viewport.Width == 0 {
		m.viewport = viewport.New(m.width, height)
	} else {
		m.viewport.Width = m.width
		m.viewport.Height = height
	}
	m.input.SetWidth(m.width)
	m.search.Width = m.width - lipgloss.Width("search: ") - 1
}
