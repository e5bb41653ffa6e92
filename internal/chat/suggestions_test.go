package chat

import (
	"reflect"
	"testing"
)

func TestBuildMentionSuggestions(t *testing.T) {
	members := []string{"alice", "Alina", "bob", "alfred", "alan", "albert", "alma"}

	tests := []struct {
		name     string
		current  string
		fragment string
		want     []string
	}{
		{
			name:     "prefix match first-seen order",
			current:  "bob",
			fragment: "al",
			want:     []string{"@alice", "@Alina", "@alfred", "@alan", "@albert"},
		},
		{
			name:     "case insensitive",
			current:  "bob",
			fragment: "ALI",
			want:     []string{"@alice", "@Alina"},
		},
		{
			name:     "skips current user",
			current:  "alice",
			fragment: "a",
			want:     []string{"@Alina", "@alfred", "@alan", "@albert", "@alma"},
		},
		{
			name:     "no match",
			current:  "bob",
			fragment: "zz",
			want:     nil,
		},
		{
			name:     "empty fragment",
			current:  "bob",
			fragment: "",
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := buildMentionSuggestions(members, tt.current, tt.fragment)
			if len(got) != len(tt.want) {
				t.Fatalf("got %d suggestions, want %d", len(got), len(tt.want))
			}
			var displays []string
			for _, item := range got {
				displays = append(displays, item.Display)
			}
			if !reflect.DeepEqual(displays, tt.want) {
				t.Errorf("got %v, want %v", displays, tt.want)
			}
		})
	}
}

func TestBuildMentionSuggestionsCap(t *testing.T) {
	members := []string{"u1", "u2", "u3", "u4", "u5", "u6", "u7"}
	got := buildMentionSuggestions(members, "someone-else", "u")
	if len(got) != suggestionLimit {
		t.Fatalf("got %d suggestions, want %d", len(got), suggestionLimit)
	}
	if got[0].Insert != "u1" || got[4].Insert != "u5" {
		t.Errorf("unexpected window: first=%q last=%q", got[0].Insert, got[4].Insert)
	}
}
