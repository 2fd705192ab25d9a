package models

import "time"

// Chapter defines one organization's local branch at a university, based on the
// 'chapters' table. Officer fields are nullable references to user profiles.
type Chapter struct {
	ID             int64     `json:"id" db:"id"`
	OrganizationID int64     `json:"organizationId" db:"organization_id"`
	UniversityID   int64     `json:"universityId" db:"university_id"`
	Name           *string   `json:"name,omitempty" db:"name"`
	About          *string   `json:"about,omitempty" db:"about"`
	YearFounded    *int      `json:"yearFounded,omitempty" db:"year_founded"`
	PresidentID    *int64    `json:"presidentId,omitempty" db:"president_id"`
	VicePresidentID *int64   `json:"vicePresidentId,omitempty" db:"vice_president_id"`
	TreasurerID    *int64    `json:"treasurerId,omitempty" db:"treasurer_id"`
	SecretaryID    *int64    `json:"secretaryId,omitempty" db:"secretary_id"`
	RushChairID    *int64    `json:"rushChairId,omitempty" db:"rush_chair_id"`
	SocialChairID  *int64    `json:"socialChairId,omitempty" db:"social_chair_id"`
	HouseManagerID *int64    `json:"houseManagerId,omitempty" db:"house_manager_id"`
	CreatedAt      time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Organization *Organization `json:"organization,omitempty"`
	University   *University   `json:"university,omitempty"`
	President    *UserProfile  `json:"president,omitempty"`
	VicePresident *UserProfile `json:"vicePresident,omitempty"`
	Treasurer    *UserProfile  `json:"treasurer,omitempty"`
	Secretary    *UserProfile  `json:"secretary,omitempty"`
	RushChair    *UserProfile  `json:"rushChair,omitempty"`
	SocialChair  *UserProfile  `json:"socialChair,omitempty"`
	HouseManager *UserProfile  `json:"houseManager,omitempty"`
}

// BoardSeat pairs a board position label with the profile holding it
type BoardSeat struct {
	Position string       `json:"position"`
	Officer  *UserProfile `json:"officer"`
}

// Board returns the executive board in fixed position order. Positions whose
// officer reference is unset are omitted.
func (c *Chapter) Board() []BoardSeat {
	var board []BoardSeat
	seats := []struct {
		position string
		officer  *UserProfile
	}{
		{"President", c.President},
		{"Vice-President", c.VicePresident},
		{"Treasurer", c.Treasurer},
		{"Secretary", c.Secretary},
		{"Rush Chair", c.RushChair},
		{"Social Chair", c.SocialChair},
		{"House Manager", c.HouseManager},
	}
	for _, s := range seats {
		if s.officer != nil {
			board = append(board, BoardSeat{Position: s.position, Officer: s.officer})
		}
	}
	return board
}

// Positions returns the position vocabulary offered when assigning roles.
// The chapter's organization must be loaded.
func (c *Chapter) Positions() []string {
	return []string{
		"President", "Vice-President", "Treasurer", "Secretary",
		"Rush Chair", "Social Chair", "House Manager",
		c.Organization.MemberType(), "Rush",
	}
}

// StatusChoices returns the valid membership status vocabulary.
// The chapter's organization must be loaded.
func (c *Chapter) StatusChoices() []string {
	return []string{c.Organization.MemberType(), "Rush", "Alumni", "Inactive"}
}

// IsOfficer reports whether the given profile holds any board position
func (c *Chapter) IsOfficer(profileID int64) bool {
	for _, id := range []*int64{
		c.PresidentID, c.VicePresidentID, c.TreasurerID, c.SecretaryID,
		c.RushChairID, c.SocialChairID, c.HouseManagerID,
	} {
		if id != nil && *id == profileID {
			return true
		}
	}
	return false
}
