package models

import "time"

// Organization defines a national Greek-letter organization based on the
// 'organizations' table. A chapter is an instance of an organization at one university.
type Organization struct {
	ID        int64            `json:"id" db:"id"`
	Name      string           `json:"name" db:"name"`
	Type      OrganizationType `json:"type" db:"type"`
	Nickname  *string          `json:"nickname,omitempty" db:"nickname"`
	LogoKey   *string          `json:"logoKey,omitempty" db:"logo_key"`
	CreatedAt time.Time        `json:"createdAt" db:"created_at"`
}

// MemberType derives the base member label from the organization type
func (o *Organization) MemberType() string {
	switch o.Type {
	case OrgTypeFraternity:
		return "Brother"
	case OrgTypeSorority:
		return "Sister"
	default:
		return "Member"
	}
}
