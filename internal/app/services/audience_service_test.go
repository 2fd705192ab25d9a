package services

import (
	"context"
	"reflect"
	"testing"

	"github.com/rs/zerolog"
	"github.com/cid2105/virtual-greek/internal/app/models"
)

type fakeAudienceProfileStore struct {
	chapterIDs    []int64
	roleIDs       map[models.RoleType][]int64
	allIDs        []int64
	byName        map[string]int64
	lastRoleAsked models.RoleType
}

func (f *fakeAudienceProfileStore) ListIDsByChapter(ctx context.Context, chapterID, universityID int64) ([]int64, error) {
	return f.chapterIDs, nil
}

func (f *fakeAudienceProfileStore) ListIDsByChapterRole(ctx context.Context, chapterID, universityID int64, role models.RoleType) ([]int64, error) {
	f.lastRoleAsked = role
	return f.roleIDs[role], nil
}

func (f *fakeAudienceProfileStore) ListAllIDs(ctx context.Context) ([]int64, error) {
	return f.allIDs, nil
}

func (f *fakeAudienceProfileStore) GetIDsByDisplayNames(ctx context.Context, names []string) ([]int64, error) {
	var ids []int64
	for _, name := range names {
		if id, ok := f.byName[name]; ok {
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func chapterMember(chapterID, universityID int64) *models.UserProfile {
	return &models.UserProfile{ID: 1, ChapterID: &chapterID, UniversityID: &universityID}
}

func TestParseAudienceSelector(t *testing.T) {
	tests := []struct {
		raw     string
		orgType models.OrganizationType
		want    SelectorKind
	}{
		{"Fraternity", models.OrgTypeFraternity, SelectorOrganization},
		{"Sorority", models.OrgTypeSorority, SelectorOrganization},
		{"Fraternity", models.OrgTypeSorority, SelectorNames},
		{"Brothers", models.OrgTypeFraternity, SelectorBaseRole},
		{"Sisters", models.OrgTypeFraternity, SelectorBaseRole},
		{"Members", models.OrgTypeSociety, SelectorBaseRole},
		{"Pledges", models.OrgTypeFraternity, SelectorPledges},
		{"Public", models.OrgTypeFraternity, SelectorPublic},
		{"  Public  ", models.OrgTypeFraternity, SelectorPublic},
		{"John Smith, Jane Doe", models.OrgTypeFraternity, SelectorNames},
	}
	for _, tt := range tests {
		got := ParseAudienceSelector(tt.raw, tt.orgType)
		if got.Kind != tt.want {
			t.Errorf("ParseAudienceSelector(%q, %s): expected kind %d, got %d", tt.raw, tt.orgType, tt.want, got.Kind)
		}
	}
}

func TestParseAudienceSelectorNameList(t *testing.T) {
	got := ParseAudienceSelector(" John Smith , , Jane Doe ", models.OrgTypeFraternity)
	if got.Kind != SelectorNames {
		t.Fatalf("expected name selector, got kind %d", got.Kind)
	}
	want := []string{"John Smith", "Jane Doe"}
	if !reflect.DeepEqual(got.Names, want) {
		t.Errorf("expected names %v, got %v", want, got.Names)
	}
}

func TestResolveOrganizationWide(t *testing.T) {
	store := &fakeAudienceProfileStore{chapterIDs: []int64{1, 2, 3}}
	svc := NewAudienceService(store, zerolog.Nop())

	ids, err := svc.Resolve(context.Background(), AudienceSelector{Kind: SelectorOrganization}, chapterMember(10, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ids, []int64{1, 2, 3}) {
		t.Errorf("expected chapter-wide audience, got %v", ids)
	}
}

func TestResolveBaseRoleAndPledges(t *testing.T) {
	store := &fakeAudienceProfileStore{roleIDs: map[models.RoleType][]int64{
		models.RoleBrother: {1, 2},
		models.RolePledge:  {5},
	}}
	svc := NewAudienceService(store, zerolog.Nop())
	author := chapterMember(10, 20)

	ids, err := svc.Resolve(context.Background(), AudienceSelector{Kind: SelectorBaseRole}, author)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ids, []int64{1, 2}) {
		t.Errorf("expected brothers, got %v", ids)
	}
	if store.lastRoleAsked != models.RoleBrother {
		t.Errorf("expected role query for Brother, got %s", store.lastRoleAsked)
	}

	ids, err = svc.Resolve(context.Background(), AudienceSelector{Kind: SelectorPledges}, author)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ids, []int64{5}) {
		t.Errorf("expected pledges, got %v", ids)
	}
	if store.lastRoleAsked != models.RolePledge {
		t.Errorf("expected role query for Pledge, got %s", store.lastRoleAsked)
	}
}

func TestResolvePublicIgnoresChapter(t *testing.T) {
	store := &fakeAudienceProfileStore{allIDs: []int64{1, 2, 3, 4}}
	svc := NewAudienceService(store, zerolog.Nop())

	// A profile without a chapter can still address Public.
	ids, err := svc.Resolve(context.Background(), AudienceSelector{Kind: SelectorPublic}, &models.UserProfile{ID: 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(ids) != 4 {
		t.Errorf("expected all profiles, got %v", ids)
	}
}

func TestResolveNamesDropsUnmatched(t *testing.T) {
	store := &fakeAudienceProfileStore{byName: map[string]int64{"John Smith": 7}}
	svc := NewAudienceService(store, zerolog.Nop())

	selector := AudienceSelector{Kind: SelectorNames, Names: []string{"John Smith", "Nobody Here"}}
	ids, err := svc.Resolve(context.Background(), selector, chapterMember(10, 20))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(ids, []int64{7}) {
		t.Errorf("expected only matched names, got %v", ids)
	}
}

func TestResolveChapterSelectorWithoutChapter(t *testing.T) {
	svc := NewAudienceService(&fakeAudienceProfileStore{}, zerolog.Nop())

	_, err := svc.Resolve(context.Background(), AudienceSelector{Kind: SelectorOrganization}, &models.UserProfile{ID: 9})
	if err == nil {
		t.Fatal("expected error for chapterless profile")
	}
}
