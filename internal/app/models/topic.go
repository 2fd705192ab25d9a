package models

import "time"

// Topic defines a discussion thread based on the 'topics' table. The audience
// set fixed at creation is the sole visibility gate; chapter and university are
// provenance only.
type Topic struct {
	ID           int64     `json:"id" db:"id"`
	AuthorID     int64     `json:"authorId" db:"author_id"`
	ChapterID    *int64    `json:"chapterId,omitempty" db:"chapter_id"`
	UniversityID *int64    `json:"universityId,omitempty" db:"university_id"`
	Title        string    `json:"title" db:"title"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Author     *UserProfile   `json:"author,omitempty"`
	Audience   []*UserProfile `json:"audience,omitempty"`
	ReplyCount int64          `json:"replyCount"`
	LastReply  *Reply         `json:"lastReply,omitempty"`
}

// AuthorName returns the display name of the topic author, when loaded
func (t *Topic) AuthorName() string {
	if t.Author == nil {
		return ""
	}
	return t.Author.Name()
}

// Reply defines a post within a topic based on the 'replies' table. Praises and
// tazes are disjoint voter sets; a voter never appears in both.
type Reply struct {
	ID        int64     `json:"id" db:"id"`
	TopicID   int64     `json:"topicId" db:"topic_id"`
	AuthorID  int64     `json:"authorId" db:"author_id"`
	Content   string    `json:"content" db:"content"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Author      *UserProfile `json:"author,omitempty"`
	PraiseCount int64        `json:"praiseCount"`
	TazeCount   int64        `json:"tazeCount"`
}
