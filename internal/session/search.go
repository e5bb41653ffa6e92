package session

import (
	"errors"
	"strings"

	"github.com/adamavenir/murmur/internal/types"
)

// ErrEmptyQuery is returned when the search term is empty after trimming.
var ErrEmptyQuery = errors.New("empty search term")

// MatchSet is the snapshot result of one search: the positions of matching
// messages within the visible sequence at query time, plus a cursor. It is
// not recomputed as new messages arrive; re-run Query to refresh.
type MatchSet struct {
	Term       string
	Positions  []int
	MessageIDs []string
	cursor     int
}

// Query finds every visible message whose content contains the trimmed,
// case-folded term. The cursor starts on the last match, landing the user
// on the most recent occurrence. A nil MatchSet with nil error means the
// query was valid but matched nothing.
func Query(term string, visible []types.Message) (*MatchSet, error) {
	folded := strings.ToLower(strings.TrimSpace(term))
	if folded == "" {
		return nil, ErrEmptyQuery
	}

	set := &MatchSet{Term: folded}
	for idx, msg := range visible {
		if msg.Content == "" {
			continue
		}
		if strings.Contains(strings.ToLower(msg.Content), folded) {
			set.Positions = append(set.Positions, idx)
			set.MessageIDs = append(set.MessageIDs, msg.MessageID)
		}
	}
	if len(set.Positions) == 0 {
		return nil, nil
	}
	set.cursor = len(set.Positions) - 1
	return set, nil
}

// Count returns the number of matches.
func (s *MatchSet) Count() int {
	return len(s.Positions)
}

// Cursor returns the current cursor index into the match list.
func (s *MatchSet) Cursor() int {
	return s.cursor
}

// Current returns the position and message id under the cursor.
func (s *MatchSet) Current() (int, string) {
	return s.Positions[s.cursor], s.MessageIDs[s.cursor]
}

// Next advances the cursor, wrapping from the last match to the first,
// and returns the new position.
func (s *MatchSet) Next() int {
	s.cursor = (s.cursor + 1) % len(s.Positions)
	return s.Positions[s.cursor]
}

// Previous moves the cursor backward, wrapping from the first match to the
// last, and returns the new position.
func (s *MatchSet) Previous() int {
	s.cursor = (s.cursor - 1 + len(s.Positions)) % len(s.Positions)
	return s.Positions[s.cursor]
}
