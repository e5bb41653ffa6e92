package core

import (
	"reflect"
	"testing"
)

func TestMentionFragment(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		caret    int
		wantFrag string
		wantOK   bool
	}{
		{"simple fragment", "hello @ali", 10, "ali", true},
		{"fragment mid-text", "hey @bo there", 7, "bo", true},
		{"space closes fragment", "hello @ali smith", 16, "", false},
		{"no at sign", "hello ali", 9, "", false},
		{"bare at", "hello @", 7, "", false},
		{"underscore and digits", "@user_42", 8, "user_42", true},
		{"punctuation breaks fragment", "@ali!x", 6, "", false},
		{"caret before at", "hello @ali", 5, "", false},
		{"only text up to caret counts", "hello @ali smith", 10, "ali", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, frag, ok := MentionFragment(tt.text, tt.caret)
			if ok != tt.wantOK || frag != tt.wantFrag {
				t.Errorf("MentionFragment(%q, %d) = %q/%v, want %q/%v",
					tt.text, tt.caret, frag, ok, tt.wantFrag, tt.wantOK)
			}
		})
	}
}

func TestInsertMention(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		caret     int
		username  string
		wantText  string
		wantCaret int
	}{
		{"at end", "hello @ali", 10, "alice", "hello @alice ", 13},
		{"mid text keeps tail", "hey @bo there", 7, "bob", "hey @bob  there", 9},
		{"replaces partial fragment", "@a", 2, "anna", "@anna ", 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotText, gotCaret, ok := InsertMention(tt.text, tt.caret, tt.username)
			if !ok {
				t.Fatalf("InsertMention(%q, %d, %q) reported no trigger", tt.text, tt.caret, tt.username)
			}
			if gotText != tt.wantText || gotCaret != tt.wantCaret {
				t.Errorf("InsertMention(%q, %d, %q) = %q caret %d, want %q caret %d",
					tt.text, tt.caret, tt.username, gotText, gotCaret, tt.wantText, tt.wantCaret)
			}
		})
	}
}

func TestInsertMentionWithoutTrigger(t *testing.T) {
	text, caret, ok := InsertMention("no trigger here", 5, "alice")
	if ok {
		t.Fatal("insertion without an @ reported success")
	}
	if text != "no trigger here" || caret != 5 {
		t.Errorf("failed insertion mutated input: %q caret %d", text, caret)
	}
}

func TestSplitMentionTokens(t *testing.T) {
	tests := []struct {
		content string
		want    []string
	}{
		{"@alice yo", []string{"@alice", " yo"}},
		{"hi @bob and @carol!", []string{"hi ", "@bob", " and ", "@carol", "!"}},
		{"plain text", []string{"plain text"}},
		{"", nil},
	}

	for _, tt := range tests {
		t.Run(tt.content, func(t *testing.T) {
			got := SplitMentionTokens(tt.content)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("SplitMentionTokens(%q) = %v, want %v", tt.content, got, tt.want)
			}
		})
	}
}

func TestIsMentionToken(t *testing.T) {
	if !IsMentionToken("@alice", "alice") {
		t.Error("IsMentionToken(@alice, alice) = false")
	}
	if IsMentionToken("@alice", "bob") {
		t.Error("IsMentionToken(@alice, bob) = true")
	}
	if IsMentionToken("alice", "alice") {
		t.Error("IsMentionToken without @ prefix = true")
	}
}
