package dto

import "github.com/cid2105/virtual-greek/internal/app/models"

// UpdateProfileRequest carries the profile edit form; all fields optional
type UpdateProfileRequest struct {
	DisplayName     *string `json:"displayName,omitempty"`
	PhoneNumber     *string `json:"phoneNumber,omitempty"`
	Description     *string `json:"description,omitempty"`
	Major           *string `json:"major,omitempty"`
	MatriculateYear *int    `json:"matriculateYear,omitempty"`
	GraduateYear    *int    `json:"graduateYear,omitempty"`
}

// AddPositionRequest appends a new work-history entry
type AddPositionRequest struct {
	Title      string `json:"title" binding:"required"`
	Company    string `json:"company" binding:"required"`
	Summary    string `json:"summary,omitempty"`
	Current    bool   `json:"current"`
	StartMonth *int   `json:"startMonth,omitempty"`
	StartYear  *int   `json:"startYear,omitempty"`
	EndMonth   *int   `json:"endMonth,omitempty"`
	EndYear    *int   `json:"endYear,omitempty"`
}

// UpdatePositionRequest edits one work-history entry inline
type UpdatePositionRequest struct {
	PositionID int64  `json:"positionId" binding:"required"`
	Type       string `json:"type" binding:"required"`
	Value      string `json:"value" binding:"required"`
}

// SaveCanvasRequest stores a member's free-form canvas blob
type SaveCanvasRequest struct {
	Data string `json:"data" binding:"required"`
}

// PositionData represents one work-history entry
type PositionData struct {
	ID      int64  `json:"id"`
	Title   string `json:"title,omitempty"`
	Company string `json:"company,omitempty"`
	Summary string `json:"summary,omitempty"`
	Current bool   `json:"current"`
}

// ProfileResponse represents a member profile page
type ProfileResponse struct {
	ID              int64          `json:"id"`
	DisplayName     string         `json:"displayName,omitempty"`
	Role            string         `json:"role"`
	Major           string         `json:"major,omitempty"`
	Description     string         `json:"description,omitempty"`
	PhoneNumber     string         `json:"phoneNumber,omitempty"`
	AvatarURL       string         `json:"avatarUrl,omitempty"`
	ResumeURL       string         `json:"resumeUrl,omitempty"`
	Canvas          string         `json:"canvas,omitempty"`
	MatriculateYear *int           `json:"matriculateYear,omitempty"`
	GraduateYear    *int           `json:"graduateYear,omitempty"`
	Positions       []PositionData `json:"positions,omitempty"`
}

// ToProfileResponse converts a profile model to its response form. Blob URLs
// are resolved by the caller, which owns the storage collaborator.
func ToProfileResponse(p *models.UserProfile, avatarURL, resumeURL string) ProfileResponse {
	resp := ProfileResponse{
		ID:          p.ID,
		DisplayName: p.Name(),
		Role:        string(p.Role),
		AvatarURL:   avatarURL,
		ResumeURL:   resumeURL,
	}
	if p.Major != nil {
		resp.Major = *p.Major
	}
	if p.Description != nil {
		resp.Description = *p.Description
	}
	if p.PhoneNumber != nil {
		resp.PhoneNumber = *p.PhoneNumber
	}
	if p.Canvas != nil {
		resp.Canvas = *p.Canvas
	}
	if p.Linkedin != nil {
		resp.MatriculateYear = p.Linkedin.MatriculateYear
		resp.GraduateYear = p.Linkedin.GraduateYear
		for _, pos := range p.Linkedin.Positions {
			data := PositionData{ID: pos.ID, Current: pos.Current}
			if pos.Title != nil {
				data.Title = *pos.Title
			}
			if pos.Company != nil {
				data.Company = *pos.Company
			}
			if pos.Summary != nil {
				data.Summary = *pos.Summary
			}
			resp.Positions = append(resp.Positions, data)
		}
	}
	return resp
}
