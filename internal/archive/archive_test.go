package archive

import (
	"testing"

	"github.com/adamavenir/murmur/internal/types"
)

func TestRecordAndReadBack(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	replyTo := "m1"
	msgs := []types.Message{
		{MessageID: "m1", Sender: "alice", Content: "hi", TimeStamp: 10},
		{MessageID: "m2", Sender: "bob", Content: "@alice yo", TimeStamp: 20,
			MentionedUsers: []string{"alice"}, ReplyToMessageID: &replyTo},
	}
	for _, msg := range msgs {
		if err := store.Record("room-1", msg); err != nil {
			t.Fatalf("Record(%s): %v", msg.MessageID, err)
		}
	}

	got, err := store.Messages("room-1")
	if err != nil {
		t.Fatalf("Messages: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("archived %d messages, want 2", len(got))
	}
	if got[1].MentionedUsers[0] != "alice" {
		t.Errorf("mentioned users lost: %+v", got[1])
	}
	if got[1].ReplyToMessageID == nil || *got[1].ReplyToMessageID != "m1" {
		t.Errorf("reply reference lost: %+v", got[1].ReplyToMessageID)
	}
}

func TestRecordUpsertsLatestState(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	msg := types.Message{MessageID: "m1", Sender: "alice", Content: "hi", TimeStamp: 10}
	if err := store.Record("room-1", msg); err != nil {
		t.Fatal(err)
	}

	msg.DeletedForAll = true
	msg.Content = ""
	if err := store.Record("room-1", msg); err != nil {
		t.Fatal(err)
	}

	got, err := store.Messages("room-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 {
		t.Fatalf("re-recording duplicated the row: %d entries", len(got))
	}
	if !got[0].DeletedForAll {
		t.Error("transcript missed the hard-delete state")
	}
}

func TestMessagesScopedByRoom(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer store.Close()

	store.Record("room-1", types.Message{MessageID: "m1", Sender: "alice", TimeStamp: 1})
	store.Record("room-2", types.Message{MessageID: "m2", Sender: "bob", TimeStamp: 2})

	got, err := store.Messages("room-1")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].MessageID != "m1" {
		t.Errorf("room scoping broken: %+v", got)
	}
}
