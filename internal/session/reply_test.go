package session

import (
	"testing"

	"github.com/adamavenir/murmur/internal/types"
)

func TestReplyTargetOverwriteAndClear(t *testing.T) {
	r := NewReplyContext()
	if _, ok := r.Current(); ok {
		t.Fatal("fresh reply context has a target")
	}

	r.SetTarget(msg("m1", "alice", "hi", 1))
	r.SetTarget(msg("m2", "bob", "yo", 2))
	got, ok := r.Current()
	if !ok || got.MessageID != "m2" {
		t.Errorf("Current() = %q/%v, want m2 after overwrite", got.MessageID, ok)
	}

	r.Clear()
	if _, ok := r.Current(); ok {
		t.Error("target survived Clear()")
	}
}

func TestReplyTargetSurvivesDeletion(t *testing.T) {
	s := New("room-1", "alice")
	s.ApplyEvent([]byte(`{"messageId":"m1","sender":"bob","content":"hi","timeStamp":1}`))

	target, _ := s.Store.Get("m1")
	s.Reply.SetTarget(target)

	// Soft delete for the current user arrives as a full-state re-send.
	s.ApplyEvent([]byte(`{"messageId":"m1","sender":"bob","content":"hi","timeStamp":1,"deletedBy":["alice"]}`))

	got, ok := s.Reply.Current()
	if !ok || got.MessageID != "m1" {
		t.Errorf("reply target lost after soft delete: %q/%v", got.MessageID, ok)
	}
	if len(s.Visible()) != 0 {
		t.Errorf("soft-deleted message still visible to alice")
	}
}

func TestDanglingReplyLookup(t *testing.T) {
	store := NewStore()
	replyTo := "missing"
	store.Upsert(types.Message{MessageID: "m1", Sender: "bob", Content: "re", TimeStamp: 1, ReplyToMessageID: &replyTo})

	// A reply referencing an unknown parent is valid; the lookup just misses.
	if _, ok := store.Get(replyTo); ok {
		t.Fatal("unexpected parent present")
	}
}
