package models

import (
	"strings"
	"time"
)

// UserProfile defines a member based on the 'user_profiles' table. A profile is
// one-to-one with a user identity and belongs to one chapter/university pair;
// the organization is implied by the chapter. Role only has meaning within the
// profile's chapter.
type UserProfile struct {
	ID           int64     `json:"id" db:"id"`
	UserID       int64     `json:"userId" db:"user_id"`
	FullName     *string   `json:"fullName,omitempty" db:"full_name"`
	DisplayName  *string   `json:"displayName,omitempty" db:"display_name"`
	Nickname     *string   `json:"nickname,omitempty" db:"nickname"`
	ChapterID    *int64    `json:"chapterId,omitempty" db:"chapter_id"`
	UniversityID *int64    `json:"universityId,omitempty" db:"university_id"`
	Role         RoleType  `json:"role" db:"role"`
	AboutMe      *string   `json:"aboutMe,omitempty" db:"about_me"`
	Description  *string   `json:"description,omitempty" db:"description"`
	Major        *string   `json:"major,omitempty" db:"major"`
	PhoneNumber  *string   `json:"phoneNumber,omitempty" db:"phone_number"`
	AvatarKey    *string   `json:"avatarKey,omitempty" db:"avatar_key"`
	ResumeKey    *string   `json:"resumeKey,omitempty" db:"resume_key"`
	Canvas       *string   `json:"canvas,omitempty" db:"canvas"`
	LinkedinID   *int64    `json:"linkedinId,omitempty" db:"linkedin_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	User       *User       `json:"user,omitempty"`
	Chapter    *Chapter    `json:"chapter,omitempty"`
	University *University `json:"university,omitempty"`
	Linkedin   *Linkedin   `json:"linkedin,omitempty"`
}

// Name returns the member's display name, or empty when never set
func (p *UserProfile) Name() string {
	if p.DisplayName != nil {
		return *p.DisplayName
	}
	return ""
}

// FirstName returns the leading word of the display name
func (p *UserProfile) FirstName() string {
	name := p.Name()
	if name == "" {
		return ""
	}
	return strings.Fields(name)[0]
}
