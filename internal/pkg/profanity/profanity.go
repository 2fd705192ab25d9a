// Package profanity implements the blocked-word check consulted before
// accepting posted content.
package profanity

import "strings"

// Filter matches posted text against a configured blocked-word list
type Filter struct {
	blocked []string
}

// NewFilter creates a Filter; words are matched case-insensitively as substrings
func NewFilter(blockedWords []string) *Filter {
	blocked := make([]string, 0, len(blockedWords))
	for _, w := range blockedWords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			blocked = append(blocked, w)
		}
	}
	return &Filter{blocked: blocked}
}

// ContainsBlockedWord reports whether text contains any blocked word
func (f *Filter) ContainsBlockedWord(text string) bool {
	lowered := strings.ToLower(text)
	for _, w := range f.blocked {
		if strings.Contains(lowered, w) {
			return true
		}
	}
	return false
}
