package dto

import "github.com/cid2105/virtual-greek/internal/app/models"

// UpdateChapterRequest carries an inline chapter edit: param names the field
// (chapter, about, year_founded), value is the raw form value.
type UpdateChapterRequest struct {
	Param string `json:"param" binding:"required"`
	Value string `json:"value" binding:"required"`
}

// SetOfficerRequest assigns a board position to a member
type SetOfficerRequest struct {
	Position  string `json:"position" binding:"required"`
	ProfileID int64  `json:"profileId" binding:"required"`
}

// BoardSeatData is one (position, officer) pair of the executive board
type BoardSeatData struct {
	Position  string `json:"position"`
	ProfileID int64  `json:"profileId"`
	Name      string `json:"name,omitempty"`
}

// ChapterData represents chapter information in responses
type ChapterData struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name,omitempty"`
	About         string          `json:"about,omitempty"`
	YearFounded   *int            `json:"yearFounded,omitempty"`
	Board         []BoardSeatData `json:"board,omitempty"`
	Positions     []string        `json:"positions,omitempty"`
	StatusChoices []string        `json:"statusChoices,omitempty"`
}

// ToChapterData converts a chapter model to its response form. Board and
// vocabulary fields are filled only when the organization relation is loaded.
func ToChapterData(c *models.Chapter) ChapterData {
	data := ChapterData{ID: c.ID, YearFounded: c.YearFounded}
	if c.Name != nil {
		data.Name = *c.Name
	}
	if c.About != nil {
		data.About = *c.About
	}
	for _, seat := range c.Board() {
		data.Board = append(data.Board, BoardSeatData{
			Position:  seat.Position,
			ProfileID: seat.Officer.ID,
			Name:      seat.Officer.Name(),
		})
	}
	if c.Organization != nil {
		data.Positions = c.Positions()
		data.StatusChoices = c.StatusChoices()
	}
	return data
}

// MemberData is a lightweight member entry for directory listings
type MemberData struct {
	ID        int64  `json:"id"`
	Name      string `json:"name,omitempty"`
	Role      string `json:"role,omitempty"`
	AvatarURL string `json:"avatarUrl,omitempty"`
}

// ChapterDirectoryResponse is the chapter directory page: the chapter with its
// board plus the three member sets
type ChapterDirectoryResponse struct {
	Chapter ChapterData  `json:"chapter"`
	Members []MemberData `json:"members"`
	Rushing []MemberData `json:"rushing"`
	Alumni  []MemberData `json:"alumni"`
}

// ToMemberData converts a profile to its directory entry; avatarURL is
// resolved by the caller.
func ToMemberData(p *models.UserProfile, avatarURL string) MemberData {
	return MemberData{
		ID:        p.ID,
		Name:      p.Name(),
		Role:      string(p.Role),
		AvatarURL: avatarURL,
	}
}
