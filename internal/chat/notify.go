package chat

import (
	"strings"

	"github.com/gen2brain/beeep"

	"github.com/adamavenir/murmur/internal/types"
)

// maybeNotify raises an OS notification when someone else mentions the
// current user. Failures are ignored; notifications are best effort.
func maybeNotify(msg types.Message, currentUser string) {
	if msg.Sender == currentUser {
		return
	}
	if !msg.Mentions(currentUser) {
		return
	}
	title := "@" + msg.Sender
	body := truncateNotification(msg.Content, 100)
	if body == "" && msg.ImageURL != "" {
		body = "📷 Photo"
	}
	_ = beeep.Notify(title, body, "")
}

func truncateNotification(s string, maxLen int) string {
	// Collapse whitespace for notification
	s = strings.Join(strings.Fields(s), " ")
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-1] + "…"
}
