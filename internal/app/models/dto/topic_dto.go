package dto

import (
	"time"

	"github.com/cid2105/virtual-greek/internal/app/models"
)

// CreateTopicRequest carries the new-topic form fields. Privacy is the raw
// audience selector string typed or picked by the author.
type CreateTopicRequest struct {
	Title   string `json:"title" binding:"required"`
	Body    string `json:"body"`
	Privacy string `json:"privacy"`
}

// CreateReplyRequest carries a reply form
type CreateReplyRequest struct {
	Content string `json:"content" binding:"required"`
}

// VoteRequest carries a praise/taze action on a reply
type VoteRequest struct {
	ReplyID int64  `json:"replyId" binding:"required"`
	Type    string `json:"type" binding:"required"`
}

// ReplyResponse represents a reply in API responses
type ReplyResponse struct {
	ID          int64     `json:"id"`
	TopicID     int64     `json:"topicId"`
	AuthorID    int64     `json:"authorId"`
	AuthorName  string    `json:"authorName,omitempty"`
	Content     string    `json:"content"`
	PraiseCount int64     `json:"praiseCount"`
	TazeCount   int64     `json:"tazeCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

// TopicResponse represents a topic in list and detail views
type TopicResponse struct {
	ID         int64          `json:"id"`
	Title      string         `json:"title"`
	AuthorID   int64          `json:"authorId"`
	AuthorName string         `json:"authorName,omitempty"`
	ReplyCount int64          `json:"replyCount"`
	LastReply  *ReplyResponse `json:"lastReply,omitempty"`
	CreatedAt  time.Time      `json:"createdAt"`
}

// TopicListResponse is a page of topics
type TopicListResponse struct {
	Topics     []TopicResponse `json:"topics"`
	Pagination PaginationInfo  `json:"pagination"`
}

// ReplyListResponse is a page of replies within a topic
type ReplyListResponse struct {
	Topic      TopicResponse   `json:"topic"`
	Replies    []ReplyResponse `json:"replies"`
	Pagination PaginationInfo  `json:"pagination"`
}

// ToReplyResponse converts a reply model to its response form
func ToReplyResponse(r *models.Reply) ReplyResponse {
	resp := ReplyResponse{
		ID:          r.ID,
		TopicID:     r.TopicID,
		AuthorID:    r.AuthorID,
		Content:     r.Content,
		PraiseCount: r.PraiseCount,
		TazeCount:   r.TazeCount,
		CreatedAt:   r.CreatedAt,
	}
	if r.Author != nil {
		resp.AuthorName = r.Author.Name()
	}
	return resp
}

// ToTopicResponse converts a topic model to its response form
func ToTopicResponse(t *models.Topic) TopicResponse {
	resp := TopicResponse{
		ID:         t.ID,
		Title:      t.Title,
		AuthorID:   t.AuthorID,
		AuthorName: t.AuthorName(),
		ReplyCount: t.ReplyCount,
		CreatedAt:  t.CreatedAt,
	}
	if t.LastReply != nil {
		last := ToReplyResponse(t.LastReply)
		resp.LastReply = &last
	}
	return resp
}
