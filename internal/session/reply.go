package session

import (
	"github.com/adamavenir/murmur/internal/types"
)

// ReplyContext holds the single message the next outgoing message responds
// to. It is not cleared by deletion of the target; only an explicit Clear
// (cancel, or the send workflow after a successful publish) drops it, so a
// dangling reply to a deleted message stays addressable.
type ReplyContext struct {
	target *types.Message
}

// NewReplyContext returns an empty reply context.
func NewReplyContext() *ReplyContext {
	return &ReplyContext{}
}

// SetTarget overwrites any existing target.
func (r *ReplyContext) SetTarget(msg types.Message) {
	copied := msg
	r.target = &copied
}

// Clear drops the target.
func (r *ReplyContext) Clear() {
	r.target = nil
}

// Current returns the active reply target, if any.
func (r *ReplyContext) Current() (types.Message, bool) {
	if r.target == nil {
		return types.Message{}, false
	}
	return *r.target, true
}
