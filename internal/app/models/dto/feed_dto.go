package dto

import (
	"time"

	"github.com/cid2105/virtual-greek/internal/app/models"
)

// CreateAnnouncementRequest carries the bulletin form
type CreateAnnouncementRequest struct {
	Content string `json:"content" binding:"required"`
	HashTag string `json:"hashTag" binding:"required"`
}

// AnnouncementResponse represents an announcement in the bulletin
type AnnouncementResponse struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"authorId"`
	Announcer string    `json:"announcer,omitempty"`
	Content   string    `json:"content"`
	Hashtag   string    `json:"hashtag"`
	CreatedAt time.Time `json:"createdAt"`
}

// FeedContextResponse is the view-ready bundle for the chapter home feed
type FeedContextResponse struct {
	University    UniversityData         `json:"university"`
	Organization  OrganizationData       `json:"organization"`
	Chapter       ChapterData            `json:"chapter"`
	Announcements []AnnouncementResponse `json:"announcements"`
	Pagination    PaginationInfo         `json:"pagination"`
	HashTags      []string               `json:"hashTags"`
}

// UniversityData represents university information in responses
type UniversityData struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// OrganizationData represents organization information in responses
type OrganizationData struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Nickname   string `json:"nickname,omitempty"`
	MemberType string `json:"memberType"`
}

// ToAnnouncementResponse converts an announcement model to its response form
func ToAnnouncementResponse(a *models.Announcement) AnnouncementResponse {
	return AnnouncementResponse{
		ID:        a.ID,
		AuthorID:  a.AuthorID,
		Announcer: a.Announcer(),
		Content:   a.Content,
		Hashtag:   a.Hashtag,
		CreatedAt: a.CreatedAt,
	}
}

// ToUniversityData converts a university model to its response form
func ToUniversityData(u *models.University) UniversityData {
	return UniversityData{ID: u.ID, Name: u.Name}
}

// ToOrganizationData converts an organization model to its response form
func ToOrganizationData(o *models.Organization) OrganizationData {
	data := OrganizationData{
		ID:         o.ID,
		Name:       o.Name,
		Type:       string(o.Type),
		MemberType: o.MemberType(),
	}
	if o.Nickname != nil {
		data.Nickname = *o.Nickname
	}
	return data
}
