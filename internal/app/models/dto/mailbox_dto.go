package dto

import (
	"time"

	"github.com/cid2105/virtual-greek/internal/app/models"
)

// SendMessageRequest carries a private message form
type SendMessageRequest struct {
	To      int64  `json:"to" binding:"required"`
	Message string `json:"message" binding:"required"`
}

// MessageResponse represents a message inside a conversation view
type MessageResponse struct {
	ID              int64     `json:"id"`
	AuthorID        int64     `json:"authorId"`
	AuthorName      string    `json:"authorName,omitempty"`
	Content         string    `json:"content"`
	AuthorViewed    bool      `json:"authorViewed"`
	RecipientViewed bool      `json:"recipientViewed"`
	CreatedAt       time.Time `json:"createdAt"`
}

// ConversationResponse represents one inbox entry
type ConversationResponse struct {
	ID           int64     `json:"id"`
	PartnerID    int64     `json:"partnerId"`
	PartnerName  string    `json:"partnerName,omitempty"`
	Viewed       bool      `json:"viewed"`
	Preview      string    `json:"preview"`
	MessageCount int64     `json:"messageCount"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ConversationListResponse is a page of the inbox
type ConversationListResponse struct {
	Conversations []ConversationResponse `json:"conversations"`
	Pagination    PaginationInfo         `json:"pagination"`
}

// MessageListResponse is a page of one conversation's thread
type MessageListResponse struct {
	Conversation ConversationResponse `json:"conversation"`
	Messages     []MessageResponse    `json:"messages"`
	Pagination   PaginationInfo       `json:"pagination"`
}

// ToMessageResponse converts a message model to its response form
func ToMessageResponse(m *models.Message) MessageResponse {
	resp := MessageResponse{
		ID:              m.ID,
		AuthorID:        m.AuthorID,
		Content:         m.Content,
		AuthorViewed:    m.AuthorViewed,
		RecipientViewed: m.RecipientViewed,
		CreatedAt:       m.CreatedAt,
	}
	if m.Author != nil {
		resp.AuthorName = m.Author.Name()
	}
	return resp
}

// ToConversationResponse converts a conversation model to its response form
func ToConversationResponse(c *models.Conversation) ConversationResponse {
	resp := ConversationResponse{
		ID:           c.ID,
		PartnerID:    c.PartnerProfileID,
		Viewed:       c.Viewed,
		Preview:      c.Preview(),
		MessageCount: c.MessageCount,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
	if c.Partner != nil {
		resp.PartnerName = c.Partner.Name()
	}
	return resp
}
