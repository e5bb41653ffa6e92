package chat

import (
	"hash/fnv"

	"github.com/charmbracelet/lipgloss"
)

var senderPalette = []lipgloss.Color{
	lipgloss.Color("111"),
	lipgloss.Color("157"),
	lipgloss.Color("216"),
	lipgloss.Color("36"),
	lipgloss.Color("183"),
	lipgloss.Color("230"),
}

var (
	headerStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("255"))
	badgeStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("231")).Background(lipgloss.Color("93")).Padding(0, 1)
	dateStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Bold(true)
	timeStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true)
	mentionStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("93"))
	quoteStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("108")).PaddingLeft(1).Border(lipgloss.ThickBorder(), false, false, false, true)
	highlightStyle   = lipgloss.NewStyle().Background(lipgloss.Color("236"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	searchBarStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	suggestionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	suggestionSelSty = lipgloss.NewStyle().Foreground(lipgloss.Color("231")).Background(lipgloss.Color("62"))
	imageStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("74"))
)

// senderColor assigns a stable palette color by first-seen member order,
// falling back to a name hash for senders not yet in the member set.
func (m *Model) senderColor(sender string) lipgloss.Color {
	for idx, member := range m.session.Members.All() {
		if member == sender {
			return senderPalette[idx%len(senderPalette)]
		}
	}
	h := fnv.New32a()
	h.Write([]byte(sender))
	return senderPalette[int(h.Sum32())%len(senderPalette)]
}
