package session

import (
	"github.com/adamavenir/murmur/internal/types"
)

// Store holds the room's messages in arrival order with an id index.
// Deletion never removes an entry; visibility is governed by the message's
// own DeletedBy / DeletedForAll flags so positions stay stable for the
// lifetime of the session.
type Store struct {
	messages []types.Message
	byID     map[string]int
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{byID: make(map[string]int)}
}

// LoadSnapshot replaces the entire store with the historical batch. Later
// live events that duplicate a snapshot message are absorbed by Upsert, so
// a racing delivery cannot corrupt the store.
func (s *Store) LoadSnapshot(messages []types.Message) {
	s.messages = make([]types.Message, 0, len(messages))
	s.byID = make(map[string]int, len(messages))
	for _, msg := range messages {
		if _, ok := s.byID[msg.MessageID]; ok {
			continue
		}
		s.byID[msg.MessageID] = len(s.messages)
		s.messages = append(s.messages, msg)
	}
}

// Upsert replaces the message with the same id in place, or appends it.
// This is the single mutation primitive: creates, edits, soft deletes, and
// hard deletes all arrive as the message's current full state.
func (s *Store) Upsert(msg types.Message) {
	if idx, ok := s.byID[msg.MessageID]; ok {
		s.messages[idx] = msg
		return
	}
	s.byID[msg.MessageID] = len(s.messages)
	s.messages = append(s.messages, msg)
}

// Get returns the message with the given id.
func (s *Store) Get(id string) (types.Message, bool) {
	idx, ok := s.byID[id]
	if !ok {
		return types.Message{}, false
	}
	return s.messages[idx], true
}

// Len returns the number of stored messages, deleted ones included.
func (s *Store) Len() int {
	return len(s.messages)
}

// All returns a copy of the store in arrival order.
func (s *Store) All() []types.Message {
	out := make([]types.Message, len(s.messages))
	copy(out, s.messages)
	return out
}

// VisibleFor returns the messages the user can see, in store order.
// Soft-deleted messages are omitted for that user only; hard-deleted
// messages stay in the sequence with DeletedForAll set so consumers can
// render a placeholder at the original position.
func (s *Store) VisibleFor(user string) []types.Message {
	out := make([]types.Message, 0, len(s.messages))
	for _, msg := range s.messages {
		if msg.DeletedFor(user) {
			continue
		}
		out = append(out, msg)
	}
	return out
}
