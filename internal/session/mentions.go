package session

// MentionQueue tracks unacknowledged mentions of the local user, in the
// order the mentioning messages arrived over the live feed. Entries are
// message ids and are consumed strictly FIFO. The queue is deliberately
// not deduplicated: a re-delivered message that still mentions the user
// queues again, which keeps repeated-mention-after-edit visible.
type MentionQueue struct {
	ids []string
}

// NewMentionQueue returns an empty queue.
func NewMentionQueue() *MentionQueue {
	return &MentionQueue{}
}

// Enqueue appends a mentioning message id.
func (q *MentionQueue) Enqueue(messageID string) {
	q.ids = append(q.ids, messageID)
}

// PeekNext returns the oldest unacknowledged mention.
func (q *MentionQueue) PeekNext() (string, bool) {
	if len(q.ids) == 0 {
		return "", false
	}
	return q.ids[0], true
}

// AcknowledgeNext removes the oldest entry. Acknowledging an empty queue
// is a no-op.
func (q *MentionQueue) AcknowledgeNext() {
	if len(q.ids) == 0 {
		return
	}
	q.ids = q.ids[1:]
}

// Count returns the number of unacknowledged mentions.
func (q *MentionQueue) Count() int {
	return len(q.ids)
}
