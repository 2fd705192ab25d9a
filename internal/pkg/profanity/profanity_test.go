package profanity

import "testing"

func TestContainsBlockedWord(t *testing.T) {
	filter := NewFilter([]string{"hazing", " Narc "})

	tests := []struct {
		text string
		want bool
	}{
		{"no hazing allowed", true},
		{"No HAZING allowed", true},
		{"he's a narc", true},
		{"clean message", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := filter.ContainsBlockedWord(tt.text); got != tt.want {
			t.Errorf("%q: expected %v, got %v", tt.text, tt.want, got)
		}
	}
}

func TestFilterIgnoresEmptyEntries(t *testing.T) {
	filter := NewFilter([]string{"", "  "})
	if filter.ContainsBlockedWord("anything at all") {
		t.Error("empty blocked words must never match")
	}
}

func TestFilterMatchesSubstrings(t *testing.T) {
	filter := NewFilter([]string{"haze"})
	if !filter.ContainsBlockedWord("hazers gonna haze") {
		t.Error("substring match expected")
	}
}
