package models

// Linkedin defines a member's education summary based on the 'linkedins' table
type Linkedin struct {
	ID               int64   `json:"id" db:"id"`
	MatriculateYear  *int    `json:"matriculateYear,omitempty" db:"matriculate_year"`
	GraduateYear     *int    `json:"graduateYear,omitempty" db:"graduate_year"`
	Honors           *string `json:"honors,omitempty" db:"honors"`
	PublicProfileURL *string `json:"publicProfileUrl,omitempty" db:"public_profile_url"`

	Positions []*Position `json:"positions,omitempty"`
}

// Position defines one work-history entry based on the 'positions' table
type Position struct {
	ID         int64   `json:"id" db:"id"`
	LinkedinID int64   `json:"linkedinId" db:"linkedin_id"`
	Title      *string `json:"title,omitempty" db:"title"`
	Company    *string `json:"company,omitempty" db:"company"`
	Summary    *string `json:"summary,omitempty" db:"summary"`
	Current    bool    `json:"current" db:"current"`
	StartMonth *int    `json:"startMonth,omitempty" db:"start_month"`
	StartYear  *int    `json:"startYear,omitempty" db:"start_year"`
	EndMonth   *int    `json:"endMonth,omitempty" db:"end_month"`
	EndYear    *int    `json:"endYear,omitempty" db:"end_year"`
}
