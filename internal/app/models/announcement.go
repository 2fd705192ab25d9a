package models

import (
	"strings"
	"time"
)

// Announcement defines a chapter bulletin post based on the 'announcements'
// table. Announcements are append-only and listed newest-first.
type Announcement struct {
	ID           int64     `json:"id" db:"id"`
	AuthorID     int64     `json:"authorId" db:"author_id"`
	UniversityID int64     `json:"universityId" db:"university_id"`
	ChapterID    int64     `json:"chapterId" db:"chapter_id"`
	Content      string    `json:"content" db:"content"`
	Hashtag      string    `json:"hashtag" db:"hashtag"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Author *UserProfile `json:"author,omitempty"`
}

// Announcer returns the display name of the posting member, when loaded
func (a *Announcement) Announcer() string {
	if a.Author == nil {
		return ""
	}
	return a.Author.Name()
}

// rawHashtags is the administrator-defined tag list as stored historically,
// lowercase with a leading '#'.
var rawHashtags = []string{
	"#abroad",
	"#careers",
	"#classes",
	"#community_service",
	"#drinks",
	"#events",
	"#food",
	"#funny",
	"#giveaway",
	"#help",
	"#housing",
	"#lastnight",
	"#nightlife",
	"#now",
	"#pledges",
	"#random",
	"#rush",
	"#sports",
	"#textbooks",
	"#tickets",
	"#tonight",
	"#tomorrow",
}

// HashtagVocabulary returns the fixed hashtag list, each entry rendered with a
// single leading '#' and a capitalized label regardless of the raw spelling.
func HashtagVocabulary() []string {
	hashes := make([]string, 0, len(rawHashtags))
	for _, h := range rawHashtags {
		label := strings.ReplaceAll(h, "#", "")
		hashes = append(hashes, "#"+capitalize(label))
	}
	return hashes
}

// ValidHashtag reports whether the tag belongs to the vocabulary
func ValidHashtag(tag string) bool {
	for _, h := range HashtagVocabulary() {
		if h == tag {
			return true
		}
	}
	return false
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}
