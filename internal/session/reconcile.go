package session

import (
	"encoding/json"

	"github.com/rs/zerolog/log"

	"github.com/adamavenir/murmur/internal/types"
)

// ApplyEvent normalizes one raw live payload into store state. Every event
// kind (create, edit, soft delete, hard delete) is the current full state
// of a message, so the only dispatch is upsert-by-id. After the upsert
// commits, the sender joins the member set and a mention of the local user
// queues a badge entry.
//
// A payload that does not decode into a message with an id is dropped with
// a diagnostic; it never fails the session or reorders later events.
func (s *Session) ApplyEvent(raw []byte) {
	var msg types.Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		log.Debug().Err(err).Str("room", s.RoomID).Msg("dropping malformed live event")
		return
	}
	if msg.MessageID == "" {
		log.Debug().Str("room", s.RoomID).Msg("dropping live event without message id")
		return
	}

	s.Store.Upsert(msg)
	s.Members.Add(msg.Sender)
	if msg.Mentions(s.CurrentUser) {
		s.MentionQueue.Enqueue(msg.MessageID)
	}

	if s.observer != nil {
		s.observer(msg)
	}
}

// LoadHistory applies the one-time historical batch: the store snapshot
// plus the member set derived from distinct senders. The history endpoint
// does not backfill the mention queue; mentions accrue from live events
// only.
func (s *Session) LoadHistory(messages []types.Message) {
	s.Store.LoadSnapshot(messages)
	for _, msg := range messages {
		s.Members.Add(msg.Sender)
	}
}
