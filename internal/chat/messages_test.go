package chat

import (
	"testing"
	"time"

	"github.com/adamavenir/murmur/internal/types"
)

func TestFormatDateHeader(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

	tests := []struct {
		name string
		day  time.Time
		want string
	}{
		{"today", now, "Today"},
		{"today at midnight", time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local), "Today"},
		{"yesterday", now.AddDate(0, 0, -1), "Yesterday"},
		{"older", time.Date(2025, 3, 2, 9, 30, 0, 0, time.Local), "Mar 2, 2025"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatDateHeader(tt.day, now); got != tt.want {
				t.Errorf("formatDateHeader() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatTimeStamp(t *testing.T) {
	ts := time.Date(2025, 6, 15, 14, 7, 0, 0, time.Local)
	if got := formatTimeStamp(ts.UnixMilli()); got != "14:07" {
		t.Errorf("formatTimeStamp() = %q, want %q", got, "14:07")
	}
}

func TestQuotePreview(t *testing.T) {
	tests := []struct {
		name string
		msg  types.Message
		want string
	}{
		{"text message", types.Message{Content: "hello there"}, "hello there"},
		{"image only", types.Message{ImageURL: "/uploads/a.png"}, "📷 Photo"},
		{"text wins over image", types.Message{Content: "look", ImageURL: "/uploads/a.png"}, "look"},
		{"empty", types.Message{}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := quotePreview(tt.msg); got != tt.want {
				t.Errorf("quotePreview() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTruncateNotification(t *testing.T) {
	if got := truncateNotification("  lots   of\nwhitespace  ", 100); got != "lots of whitespace" {
		t.Errorf("got %q", got)
	}
	long := truncateNotification("aaaaaaaaaaaa", 8)
	if long != "aaaaaaa…" {
		t.Errorf("got %q", long)
	}
}
