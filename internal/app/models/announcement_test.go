package models

import "testing"

func TestHashtagVocabularyCapitalization(t *testing.T) {
	vocabulary := HashtagVocabulary()
	if len(vocabulary) != 22 {
		t.Fatalf("expected 22 hashtags, got %d", len(vocabulary))
	}
	if vocabulary[0] != "#Abroad" {
		t.Errorf("expected #Abroad first, got %q", vocabulary[0])
	}
	for _, h := range vocabulary {
		if h[0] != '#' {
			t.Errorf("hashtag %q missing leading #", h)
		}
	}
}

func TestValidHashtag(t *testing.T) {
	if !ValidHashtag("#Rush") {
		t.Error("#Rush should be valid")
	}
	if !ValidHashtag("#Community_service") {
		t.Error("#Community_service should be valid")
	}
	if ValidHashtag("#rush") {
		t.Error("lowercase #rush should not match the rendered vocabulary")
	}
	if ValidHashtag("#unknown") {
		t.Error("#unknown should be invalid")
	}
	if ValidHashtag("") {
		t.Error("empty tag should be invalid")
	}
}
