// Package session holds the per-room client state: the message store, the
// reconciler that folds live events into it, and the derived trackers
// (membership, mention queue, reply target, search cursor) that read the
// same stream. A Session is constructed on room entry and discarded whole
// on exit; nothing in it outlives the room.
//
// All mutation happens from a single goroutine (the UI event loop feeds
// history, live events, and user actions to the session one at a time), so
// the session itself carries no locks.
package session

import (
	"github.com/adamavenir/murmur/internal/types"
)

// Observer is called after each live event commits to the store.
type Observer func(types.Message)

// Session owns all room-scoped state as a unit.
type Session struct {
	RoomID       string
	CurrentUser  string
	Store        *Store
	Members      *Members
	MentionQueue *MentionQueue
	Reply        *ReplyContext

	search   *MatchSet
	observer Observer
}

// New creates an empty session for the room.
func New(roomID, currentUser string) *Session {
	return &Session{
		RoomID:       roomID,
		CurrentUser:  currentUser,
		Store:        NewStore(),
		Members:      NewMembers(currentUser),
		MentionQueue: NewMentionQueue(),
		Reply:        NewReplyContext(),
	}
}

// SetObserver registers a hook invoked for every applied live event
// (transcript archiving, desktop notifications). Pass nil to remove.
func (s *Session) SetObserver(fn Observer) {
	s.observer = fn
}

// Visible returns the messages the local user can see, in store order.
func (s *Session) Visible() []types.Message {
	return s.Store.VisibleFor(s.CurrentUser)
}

// Search runs a fresh query over the currently visible messages and makes
// the result the active search session. A zero-match query clears the
// cursor; ErrEmptyQuery passes through for the caller to surface.
func (s *Session) Search(term string) (*MatchSet, error) {
	set, err := Query(term, s.Visible())
	if err != nil {
		return nil, err
	}
	s.search = set
	return set, nil
}

// ActiveSearch returns the current search session, if one is live.
func (s *Session) ActiveSearch() (*MatchSet, bool) {
	if s.search == nil {
		return nil, false
	}
	return s.search, true
}

// ClearSearch discards the search session (search UI closed).
func (s *Session) ClearSearch() {
	s.search = nil
}
