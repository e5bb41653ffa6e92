package types

// Message represents the current full state of a room message as the
// backend broadcasts it. Every live event carries one of these; edits and
// deletes arrive as re-sends of the whole message keyed by MessageID.
type Message struct {
	MessageID        string   `json:"messageId"`
	Sender           string   `json:"sender"`
	Content          string   `json:"content,omitempty"`
	ImageURL         string   `json:"imageUrl,omitempty"`
	TimeStamp        int64    `json:"timeStamp"`
	MentionedUsers   []string `json:"mentionedUsers,omitempty"`
	ReplyToMessageID *string  `json:"replyToMessageId,omitempty"`
	DeletedBy        []string `json:"deletedBy,omitempty"`
	DeletedForAll    bool     `json:"deletedForEveryone,omitempty"`
}

// DeletedFor reports whether the message is soft-deleted for the user.
func (m Message) DeletedFor(user string) bool {
	for _, u := range m.DeletedBy {
		if u == user {
			return true
		}
	}
	return false
}

// Mentions reports whether the message addresses the user.
func (m Message) Mentions(user string) bool {
	for _, u := range m.MentionedUsers {
		if u == user {
			return true
		}
	}
	return false
}

// OutgoingMessage is the payload published for a new text message. The
// backend assigns the id and timestamp and echoes the stored message back
// over the live subscription.
type OutgoingMessage struct {
	Sender           string   `json:"sender"`
	Content          string   `json:"content"`
	RoomID           string   `json:"roomId"`
	ImageURL         *string  `json:"imageUrl"`
	MentionedUsers   []string `json:"mentionedUsers"`
	ReplyToMessageID *string  `json:"replyToMessageId"`
}

// Room describes a chat room as returned by the room endpoints.
type Room struct {
	RoomID    string `json:"roomId"`
	CreatedAt int64  `json:"createdAt,omitempty"`
}
