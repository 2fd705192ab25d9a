package models

import (
	"strings"
	"testing"
)

func TestPreviewTruncatesLongMessages(t *testing.T) {
	long := strings.Repeat("a", 80)
	c := &Conversation{LatestMessage: &Message{Content: long}}

	preview := c.Preview()
	if len([]rune(preview)) != 53 {
		t.Fatalf("expected 50 runes plus ellipsis, got %d runes", len([]rune(preview)))
	}
	if !strings.HasSuffix(preview, "...") {
		t.Errorf("expected ellipsis suffix, got %q", preview)
	}
}

func TestPreviewShortMessageUnchanged(t *testing.T) {
	c := &Conversation{LatestMessage: &Message{Content: "see you at chapter"}}
	if got := c.Preview(); got != "see you at chapter" {
		t.Errorf("expected content unchanged, got %q", got)
	}
}

func TestPreviewCountsRunesNotBytes(t *testing.T) {
	// 50 multibyte runes must survive untruncated.
	content := strings.Repeat("é", 50)
	c := &Conversation{LatestMessage: &Message{Content: content}}
	if got := c.Preview(); got != content {
		t.Errorf("expected %d-rune message unchanged, got %q", 50, got)
	}
}

func TestPreviewNoMessages(t *testing.T) {
	c := &Conversation{}
	if got := c.Preview(); got != "" {
		t.Errorf("expected empty preview, got %q", got)
	}
}
