package session

// Members is the room membership set, derived from the sender of every
// message seen plus the local user. It grows for the lifetime of the
// session and preserves first-seen order for stable suggestion ranking.
type Members struct {
	order []string
	seen  map[string]struct{}
}

// NewMembers returns a membership set seeded with the local user.
func NewMembers(currentUser string) *Members {
	m := &Members{seen: make(map[string]struct{})}
	m.Add(currentUser)
	return m
}

// Add records a username if it has not been seen before.
func (m *Members) Add(user string) {
	if user == "" {
		return
	}
	if _, ok := m.seen[user]; ok {
		return
	}
	m.seen[user] = struct{}{}
	m.order = append(m.order, user)
}

// Contains reports whether the user is a known member.
func (m *Members) Contains(user string) bool {
	_, ok := m.seen[user]
	return ok
}

// All returns the members in first-seen order.
func (m *Members) All() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}
