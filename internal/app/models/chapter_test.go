package models

import (
	"strings"
	"testing"
)

func profileWithID(id int64, name string) *UserProfile {
	return &UserProfile{ID: id, DisplayName: &name}
}

func TestBoardOrderingSkipsEmptySeats(t *testing.T) {
	chapter := &Chapter{
		President: profileWithID(1, "Alice"),
		Treasurer: profileWithID(2, "Bob"),
		RushChair: profileWithID(3, "Carol"),
	}

	board := chapter.Board()
	if len(board) != 3 {
		t.Fatalf("expected 3 seats, got %d", len(board))
	}

	wantPositions := []string{"President", "Treasurer", "Rush Chair"}
	for i, seat := range board {
		if seat.Position != wantPositions[i] {
			t.Errorf("seat %d: expected %q, got %q", i, wantPositions[i], seat.Position)
		}
		if seat.Officer == nil {
			t.Errorf("seat %d: officer not set", i)
		}
	}
}

func TestBoardEmptyChapter(t *testing.T) {
	chapter := &Chapter{}
	if board := chapter.Board(); len(board) != 0 {
		t.Fatalf("expected empty board, got %d seats", len(board))
	}
}

func TestPositionsIncludeMemberTypeAndRush(t *testing.T) {
	chapter := &Chapter{Organization: &Organization{Type: OrgTypeFraternity}}

	positions := chapter.Positions()
	if len(positions) != 9 {
		t.Fatalf("expected 9 positions, got %d: %v", len(positions), positions)
	}
	if positions[len(positions)-2] != "Brother" {
		t.Errorf("expected member type position Brother, got %q", positions[len(positions)-2])
	}
	if positions[len(positions)-1] != "Rush" {
		t.Errorf("expected final position Rush, got %q", positions[len(positions)-1])
	}
}

func TestStatusChoicesByOrganizationType(t *testing.T) {
	tests := []struct {
		orgType OrganizationType
		first   string
	}{
		{OrgTypeFraternity, "Brother"},
		{OrgTypeSorority, "Sister"},
		{OrgTypeSociety, "Member"},
	}

	for _, tt := range tests {
		chapter := &Chapter{Organization: &Organization{Type: tt.orgType}}
		choices := chapter.StatusChoices()
		if len(choices) != 4 {
			t.Fatalf("%s: expected 4 choices, got %v", tt.orgType, choices)
		}
		if choices[0] != tt.first {
			t.Errorf("%s: expected first choice %q, got %q", tt.orgType, tt.first, choices[0])
		}
		rest := strings.Join(choices[1:], ",")
		if rest != "Rush,Alumni,Inactive" {
			t.Errorf("%s: unexpected tail choices %q", tt.orgType, rest)
		}
	}
}

func TestIsOfficer(t *testing.T) {
	president := int64(7)
	social := int64(9)
	chapter := &Chapter{PresidentID: &president, SocialChairID: &social}

	if !chapter.IsOfficer(7) {
		t.Error("president not recognized as officer")
	}
	if !chapter.IsOfficer(9) {
		t.Error("social chair not recognized as officer")
	}
	if chapter.IsOfficer(8) {
		t.Error("non-officer recognized as officer")
	}
}

func TestMemberType(t *testing.T) {
	tests := []struct {
		orgType OrganizationType
		want    string
	}{
		{OrgTypeFraternity, "Brother"},
		{OrgTypeSorority, "Sister"},
		{OrgTypeSociety, "Member"},
	}
	for _, tt := range tests {
		org := &Organization{Type: tt.orgType}
		if got := org.MemberType(); got != tt.want {
			t.Errorf("%s: expected %q, got %q", tt.orgType, tt.want, got)
		}
	}
}
