package models

import "time"

// previewLimit is the rune length at which conversation previews truncate
const previewLimit = 50

// Message defines a private message based on the 'messages' table. A message is
// immutable once created except for its two per-side viewed flags.
type Message struct {
	ID              int64     `json:"id" db:"id"`
	AuthorID        int64     `json:"authorId" db:"author_id"`
	RecipientID     *int64    `json:"recipientId,omitempty" db:"recipient_id"`
	Content         string    `json:"content" db:"content"`
	AuthorViewed    bool      `json:"authorViewed" db:"author_viewed"`
	RecipientViewed bool      `json:"recipientViewed" db:"recipient_viewed"`
	CreatedAt       time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Author *UserProfile `json:"author,omitempty"`
}

// Conversation defines one participant's one-sided view of a two-party thread,
// based on the 'conversations' table. For every pair that has exchanged a
// message exactly two mirrored records exist, one per participant, sharing the
// same message set.
type Conversation struct {
	ID               int64     `json:"id" db:"id"`
	OwnerProfileID   int64     `json:"ownerProfileId" db:"owner_profile_id"`
	PartnerProfileID int64     `json:"partnerProfileId" db:"partner_profile_id"`
	Viewed           bool      `json:"viewed" db:"viewed"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Partner       *UserProfile `json:"partner,omitempty"`
	LatestMessage *Message     `json:"latestMessage,omitempty"`
	MessageCount  int64        `json:"messageCount"`
}

// Preview returns the latest message's content truncated for inbox display.
// The latest message must be loaded.
func (c *Conversation) Preview() string {
	if c.LatestMessage == nil {
		return ""
	}
	content := c.LatestMessage.Content
	runes := []rune(content)
	if len(runes) > previewLimit {
		return string(runes[:previewLimit]) + "..."
	}
	return content
}
