package models

// OrganizationType defines the kind of Greek-letter organization
type OrganizationType string

const (
	OrgTypeFraternity OrganizationType = "Fraternity"
	OrgTypeSorority   OrganizationType = "Sorority"
	OrgTypeSociety    OrganizationType = "Society"
)

// RoleType defines a member's role within their chapter
type RoleType string

const (
	RolePresident     RoleType = "President"
	RoleVicePresident RoleType = "Vice-President"
	RoleTreasurer     RoleType = "Treasurer"
	RoleSecretary     RoleType = "Secretary"
	RoleSocialChair   RoleType = "Social Chair"
	RoleRushChair     RoleType = "Rush Chair"
	RoleHouseManager  RoleType = "House Manager"
	RoleBrother       RoleType = "Brother"
	RolePledge        RoleType = "Pledge"
)

// VoteKind is a community vote action on a reply
type VoteKind string

const (
	VotePraise   VoteKind = "praise"
	VoteUnpraise VoteKind = "unpraise"
	VoteTaze     VoteKind = "taze"
	VoteUntaze   VoteKind = "untaze"
)

// ParseVoteKind validates a raw vote type string
func ParseVoteKind(raw string) (VoteKind, bool) {
	switch VoteKind(raw) {
	case VotePraise, VoteUnpraise, VoteTaze, VoteUntaze:
		return VoteKind(raw), true
	}
	return "", false
}

// MembershipStanding distinguishes the chapter's member sets
type MembershipStanding string

const (
	StandingMember  MembershipStanding = "member"
	StandingRushing MembershipStanding = "rushing"
	StandingAlumni  MembershipStanding = "alumni"
)
