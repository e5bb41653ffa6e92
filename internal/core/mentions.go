// Package core holds pure text logic shared by the compose input and the
// message renderer: @-mention fragment scanning, mention insertion, and
// mention token splitting. Nothing here touches the session or transport.
package core

import (
	"regexp"
	"unicode"
)

var mentionTokenRe = regexp.MustCompile(`@\w+`)

// MentionFragment scans left from the caret through the text already typed
// for the nearest '@' and returns the in-progress fragment between it and
// the caret. The scan only looks at text up to the caret; an '@' closed by
// whitespace (or any other non-word character in the fragment) yields no
// fragment, as does a bare trailing '@'.
func MentionFragment(text string, caret int) (start int, fragment string, ok bool) {
	runes := []rune(text)
	if caret < 0 {
		caret = 0
	}
	if caret > len(runes) {
		caret = len(runes)
	}

	at := -1
	for i := caret - 1; i >= 0; i-- {
		if runes[i] == '@' {
			at = i
			break
		}
	}
	if at == -1 {
		return 0, "", false
	}

	frag := runes[at+1 : caret]
	for _, r := range frag {
		if !isWordRune(r) {
			return 0, "", false
		}
	}
	if len(frag) == 0 {
		return 0, "", false
	}
	return at, string(frag), true
}

// InsertMention replaces the text from the triggering '@' through the caret
// with "@username " and returns the new text plus the caret position just
// after the inserted space. It is a pure transform: it does not care
// whether a suggestion panel is still open.
func InsertMention(text string, caret int, username string) (string, int, bool) {
	runes := []rune(text)
	if caret < 0 {
		caret = 0
	}
	if caret > len(runes) {
		caret = len(runes)
	}

	at := -1
	for i := caret - 1; i >= 0; i-- {
		if runes[i] == '@' {
			at = i
			break
		}
	}
	if at == -1 {
		return text, caret, false
	}

	before := runes[:at]
	after := runes[caret:]
	inserted := []rune("@" + username + " ")

	out := make([]rune, 0, len(before)+len(inserted)+len(after))
	out = append(out, before...)
	out = append(out, inserted...)
	out = append(out, after...)

	return string(out), len(before) + len(inserted), true
}

// SplitMentionTokens splits content into alternating plain and @mention
// segments for rendering. Mention segments keep their '@' prefix.
func SplitMentionTokens(content string) []string {
	if content == "" {
		return nil
	}
	var out []string
	last := 0
	for _, loc := range mentionTokenRe.FindAllStringIndex(content, -1) {
		if loc[0] > last {
			out = append(out, content[last:loc[0]])
		}
		out = append(out, content[loc[0]:loc[1]])
		last = loc[1]
	}
	if last < len(content) {
		out = append(out, content[last:])
	}
	return out
}

// IsMentionToken reports whether a segment from SplitMentionTokens is a
// mention of the given user.
func IsMentionToken(segment, user string) bool {
	return len(segment) > 1 && segment[0] == '@' && segment[1:] == user
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}
