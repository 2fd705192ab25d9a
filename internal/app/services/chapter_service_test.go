package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/cid2105/virtual-greek/internal/app/models"
	"github.com/cid2105/virtual-greek/internal/app/models/dto"
)

type fakeChapterAdminStore struct {
	chapter   *models.Chapter
	members   map[models.MembershipStanding][]*models.UserProfile
	officers  map[string]int64
	standings map[int64]models.MembershipStanding
	removed   []int64
	updated   *models.Chapter
}

func newFakeChapterAdminStore(chapter *models.Chapter) *fakeChapterAdminStore {
	return &fakeChapterAdminStore{
		chapter:   chapter,
		members:   make(map[models.MembershipStanding][]*models.UserProfile),
		officers:  make(map[string]int64),
		standings: make(map[int64]models.MembershipStanding),
	}
}

func (f *fakeChapterAdminStore) GetByID(ctx context.Context, id int64) (*models.Chapter, error) {
	if f.chapter != nil && f.chapter.ID == id {
		return f.chapter, nil
	}
	return nil, nil
}

func (f *fakeChapterAdminStore) UpdateDetails(ctx context.Context, chapter *models.Chapter) error {
	f.updated = chapter
	return nil
}

func (f *fakeChapterAdminStore) SetOfficer(ctx context.Context, chapterID int64, position string, profileID *int64) error {
	f.officers[position] = *profileID
	return nil
}

func (f *fakeChapterAdminStore) SetMemberStanding(ctx context.Context, chapterID, profileID int64, standing models.MembershipStanding) error {
	f.standings[profileID] = standing
	return nil
}

func (f *fakeChapterAdminStore) RemoveMember(ctx context.Context, chapterID, profileID int64) error {
	f.removed = append(f.removed, profileID)
	return nil
}

func (f *fakeChapterAdminStore) GetMembers(ctx context.Context, chapterID int64, standing models.MembershipStanding) ([]*models.UserProfile, error) {
	return f.members[standing], nil
}

type fakeMemberRoleStore struct {
	profiles map[int64]*models.UserProfile
	roles    map[int64]models.RoleType
}

func newFakeMemberRoleStore() *fakeMemberRoleStore {
	return &fakeMemberRoleStore{
		profiles: make(map[int64]*models.UserProfile),
		roles:    make(map[int64]models.RoleType),
	}
}

func (f *fakeMemberRoleStore) GetByID(ctx context.Context, id int64) (*models.UserProfile, error) {
	return f.profiles[id], nil
}

func (f *fakeMemberRoleStore) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.UserProfile, error) {
	out := make(map[int64]*models.UserProfile)
	for _, id := range ids {
		if p, ok := f.profiles[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

func (f *fakeMemberRoleStore) UpdateRole(ctx context.Context, profileID int64, role models.RoleType) error {
	f.roles[profileID] = role
	return nil
}

func boardMember(id int64, name string) *models.UserProfile {
	chapterID := int64(10)
	return &models.UserProfile{ID: id, DisplayName: &name, ChapterID: &chapterID}
}

func chapterFixture() (*fakeChapterAdminStore, *fakeMemberRoleStore, ChapterService, *models.UserProfile) {
	president := boardMember(1, "John Smith")
	chapter := &models.Chapter{
		ID:             10,
		UniversityID:   20,
		OrganizationID: 2,
		PresidentID:    &president.ID,
	}
	chapters := newFakeChapterAdminStore(chapter)
	profiles := newFakeMemberRoleStore()
	profiles.profiles[1] = president
	orgs := &fakeOrganizationStore{organization: &models.Organization{ID: 2, Name: "Alpha Epsilon Pi", Type: models.OrgTypeFraternity}}
	svc := NewChapterService(chapters, orgs, profiles, newFakeObjectStorage(), zerolog.Nop())
	return chapters, profiles, svc, president
}

func TestGetDirectoryAttachesBoardAndSets(t *testing.T) {
	chapters, profiles, svc, president := chapterFixture()
	member := boardMember(2, "Jane Doe")
	rushing := boardMember(3, "Sam Lee")
	profiles.profiles[2] = member
	profiles.profiles[3] = rushing
	chapters.members[models.StandingMember] = []*models.UserProfile{president, member}
	chapters.members[models.StandingRushing] = []*models.UserProfile{rushing}

	resp, err := svc.GetDirectory(context.Background(), president)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(resp.Chapter.Board) != 1 {
		t.Fatalf("expected one filled board seat, got %d", len(resp.Chapter.Board))
	}
	if resp.Chapter.Board[0].Position != "President" {
		t.Errorf("expected President seat, got %q", resp.Chapter.Board[0].Position)
	}
	if len(resp.Members) != 2 || len(resp.Rushing) != 1 || len(resp.Alumni) != 0 {
		t.Errorf("member sets mismatch: %d/%d/%d", len(resp.Members), len(resp.Rushing), len(resp.Alumni))
	}
}

func TestGetDirectoryRequiresChapter(t *testing.T) {
	_, _, svc, _ := chapterFixture()
	if _, err := svc.GetDirectory(context.Background(), &models.UserProfile{ID: 5}); err == nil {
		t.Fatal("expected error for chapterless profile")
	}
}

func TestUpdateChapterFieldSwitch(t *testing.T) {
	chapters, _, svc, president := chapterFixture()

	if err := svc.UpdateChapter(context.Background(), president, &dto.UpdateChapterRequest{Param: "year_founded", Value: "1913"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chapters.updated == nil || chapters.updated.YearFounded == nil || *chapters.updated.YearFounded != 1913 {
		t.Error("year founded not applied")
	}

	if err := svc.UpdateChapter(context.Background(), president, &dto.UpdateChapterRequest{Param: "year_founded", Value: "ancient"}); err == nil {
		t.Error("expected error for non-numeric year")
	}
	if err := svc.UpdateChapter(context.Background(), president, &dto.UpdateChapterRequest{Param: "motto", Value: "x"}); err == nil {
		t.Error("expected error for unknown field")
	}
}

func TestUpdateChapterRequiresOfficer(t *testing.T) {
	_, profiles, svc, _ := chapterFixture()
	outsider := boardMember(7, "Not Board")
	profiles.profiles[7] = outsider

	err := svc.UpdateChapter(context.Background(), outsider, &dto.UpdateChapterRequest{Param: "about", Value: "hi"})
	if err == nil {
		t.Fatal("expected error for non-officer")
	}
}

func TestSetOfficerAssignsSeatAndRole(t *testing.T) {
	chapters, profiles, svc, president := chapterFixture()
	member := boardMember(2, "Jane Doe")
	profiles.profiles[2] = member

	if err := svc.SetOfficer(context.Background(), president, &dto.SetOfficerRequest{Position: "Treasurer", ProfileID: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chapters.officers["Treasurer"] != 2 {
		t.Error("treasurer seat not recorded")
	}
	if profiles.roles[2] != models.RoleTreasurer {
		t.Errorf("expected role Treasurer, got %q", profiles.roles[2])
	}
}

func TestSetOfficerBaseRolesSkipBoard(t *testing.T) {
	chapters, profiles, svc, president := chapterFixture()
	member := boardMember(2, "Jane Doe")
	profiles.profiles[2] = member

	if err := svc.SetOfficer(context.Background(), president, &dto.SetOfficerRequest{Position: "Brother", ProfileID: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profiles.roles[2] != models.RoleBrother {
		t.Errorf("expected role Brother, got %q", profiles.roles[2])
	}
	if len(chapters.officers) != 0 {
		t.Error("base role must not take a board seat")
	}

	if err := svc.SetOfficer(context.Background(), president, &dto.SetOfficerRequest{Position: "Rush", ProfileID: 2}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profiles.roles[2] != models.RolePledge {
		t.Errorf("expected role Pledge, got %q", profiles.roles[2])
	}
}

func TestSetOfficerRejectsOutsiders(t *testing.T) {
	_, profiles, svc, president := chapterFixture()
	otherChapter := int64(99)
	name := "Far Away"
	profiles.profiles[4] = &models.UserProfile{ID: 4, DisplayName: &name, ChapterID: &otherChapter}

	if err := svc.SetOfficer(context.Background(), president, &dto.SetOfficerRequest{Position: "Treasurer", ProfileID: 4}); err == nil {
		t.Error("expected error for member of another chapter")
	}
	if err := svc.SetOfficer(context.Background(), president, &dto.SetOfficerRequest{Position: "Treasurer", ProfileID: 404}); err == nil {
		t.Error("expected error for unknown profile")
	}
	member := boardMember(2, "Jane Doe")
	profiles.profiles[2] = member
	if err := svc.SetOfficer(context.Background(), president, &dto.SetOfficerRequest{Position: "Archon", ProfileID: 2}); err == nil {
		t.Error("expected error for unknown position")
	}
}

func TestSetMemberStatusStandingMapping(t *testing.T) {
	chapters, _, svc, president := chapterFixture()

	if err := svc.SetMemberStatus(context.Background(), president, 2, "Brother"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chapters.standings[2] != models.StandingMember {
		t.Errorf("expected member standing, got %q", chapters.standings[2])
	}

	if err := svc.SetMemberStatus(context.Background(), president, 3, "Alumni"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if chapters.standings[3] != models.StandingAlumni {
		t.Errorf("expected alumni standing, got %q", chapters.standings[3])
	}

	if err := svc.SetMemberStatus(context.Background(), president, 4, "Inactive"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(chapters.removed) != 1 || chapters.removed[0] != 4 {
		t.Error("inactive member not removed")
	}

	if err := svc.SetMemberStatus(context.Background(), president, 5, "Sister"); err == nil {
		t.Error("expected error for status that does not match the organization")
	}
}
