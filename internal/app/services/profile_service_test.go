package services

import (
	"context"
	"mime/multipart"
	"testing"

	"github.com/rs/zerolog"
	"github.com/cid2105/virtual-greek/internal/app/models"
	"github.com/cid2105/virtual-greek/internal/app/models/dto"
)

type fakeObjectStorage struct {
	stored  map[string]string
	deleted []string
}

func newFakeObjectStorage() *fakeObjectStorage {
	return &fakeObjectStorage{stored: make(map[string]string)}
}

func (f *fakeObjectStorage) Put(bucket, key string, fileHeader *multipart.FileHeader) error {
	f.stored[bucket+"/"+key] = fileHeader.Filename
	return nil
}

func (f *fakeObjectStorage) URLFor(bucket, key string) string {
	return "http://storage.test/" + bucket + "/" + key
}

func (f *fakeObjectStorage) Delete(bucket, key string) error {
	f.deleted = append(f.deleted, bucket+"/"+key)
	return nil
}

type fakeProfileStore struct {
	nextID        int64
	profiles      map[int64]*models.UserProfile
	linkedins     map[int64]*models.Linkedin
	updated       []*models.UserProfile
	canvases      map[int64]string
	searchResults []*models.UserProfile
	yearsSet      map[int64][2]*int
	positions     []*models.Position
	positionEdits map[int64][2]*string
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{
		nextID:        1,
		profiles:      make(map[int64]*models.UserProfile),
		linkedins:     make(map[int64]*models.Linkedin),
		canvases:      make(map[int64]string),
		yearsSet:      make(map[int64][2]*int),
		positionEdits: make(map[int64][2]*string),
	}
}

func (f *fakeProfileStore) Create(ctx context.Context, profile *models.UserProfile) (int64, error) {
	id := f.nextID
	f.nextID++
	profile.ID = id
	f.profiles[id] = profile
	return id, nil
}

func (f *fakeProfileStore) GetByID(ctx context.Context, id int64) (*models.UserProfile, error) {
	return f.profiles[id], nil
}

func (f *fakeProfileStore) GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	for _, p := range f.profiles {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProfileStore) Update(ctx context.Context, profile *models.UserProfile) error {
	f.updated = append(f.updated, profile)
	f.profiles[profile.ID] = profile
	return nil
}

func (f *fakeProfileStore) UpdateAvatarKey(ctx context.Context, profileID int64, key *string) error {
	if p, ok := f.profiles[profileID]; ok {
		p.AvatarKey = key
	}
	return nil
}

func (f *fakeProfileStore) UpdateResumeKey(ctx context.Context, profileID int64, key *string) error {
	if p, ok := f.profiles[profileID]; ok {
		p.ResumeKey = key
	}
	return nil
}

func (f *fakeProfileStore) UpdateCanvas(ctx context.Context, profileID int64, canvas *string) error {
	f.canvases[profileID] = *canvas
	return nil
}

func (f *fakeProfileStore) SearchByName(ctx context.Context, chapterID int64, fragment string) ([]*models.UserProfile, error) {
	return f.searchResults, nil
}

func (f *fakeProfileStore) CreateLinkedin(ctx context.Context, linkedin *models.Linkedin) (int64, error) {
	id := f.nextID
	f.nextID++
	linkedin.ID = id
	f.linkedins[id] = linkedin
	return id, nil
}

func (f *fakeProfileStore) GetLinkedin(ctx context.Context, id int64) (*models.Linkedin, error) {
	return f.linkedins[id], nil
}

func (f *fakeProfileStore) UpdateLinkedinYears(ctx context.Context, id int64, matriculateYear, graduateYear *int) error {
	f.yearsSet[id] = [2]*int{matriculateYear, graduateYear}
	return nil
}

func (f *fakeProfileStore) CreatePosition(ctx context.Context, position *models.Position) (int64, error) {
	id := f.nextID
	f.nextID++
	position.ID = id
	f.positions = append(f.positions, position)
	return id, nil
}

func (f *fakeProfileStore) UpdatePosition(ctx context.Context, id int64, title, company *string) error {
	f.positionEdits[id] = [2]*string{title, company}
	return nil
}

func profileFixture() (*fakeProfileStore, ProfileService) {
	store := newFakeProfileStore()
	chapter := &models.Chapter{ID: 10, UniversityID: 20, OrganizationID: 1}
	svc := NewProfileService(store, &fakeChapterStore{chapter: chapter}, newFakeObjectStorage(), zerolog.Nop())
	return store, svc
}

func TestNormalizePhone(t *testing.T) {
	tests := []struct {
		raw  string
		want string
	}{
		{"(212) 555-0187", "2125550187"},
		{"+1 212.555.0187", "12125550187"},
		{"no digits", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := normalizePhone(tt.raw); got != tt.want {
			t.Errorf("normalizePhone(%q): expected %q, got %q", tt.raw, tt.want, got)
		}
	}
}

func TestCreateProfileForProvisionsWorkHistory(t *testing.T) {
	store, svc := profileFixture()

	profile, err := svc.CreateProfileFor(context.Background(), 42, "John Smith", 10)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.Role != models.RoleBrother {
		t.Errorf("new profiles start as base members, got role %q", profile.Role)
	}
	if profile.LinkedinID == nil {
		t.Fatal("expected empty work history record attached")
	}
	if _, ok := store.linkedins[*profile.LinkedinID]; !ok {
		t.Error("work history record not persisted")
	}
	if profile.ChapterID == nil || *profile.ChapterID != 10 {
		t.Error("profile not attached to the chapter")
	}
	if profile.UniversityID == nil || *profile.UniversityID != 20 {
		t.Error("profile not attached to the chapter's university")
	}
}

func TestUpdateProfileNormalizesPhone(t *testing.T) {
	store, svc := profileFixture()
	name := "John Smith"
	store.profiles[1] = &models.UserProfile{ID: 1, DisplayName: &name}

	raw := "(212) 555-0187"
	if _, err := svc.UpdateProfile(context.Background(), &models.UserProfile{ID: 1}, &dto.UpdateProfileRequest{PhoneNumber: &raw}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored := store.profiles[1]
	if stored.PhoneNumber == nil || *stored.PhoneNumber != "2125550187" {
		t.Errorf("expected digits-only phone, got %v", stored.PhoneNumber)
	}
}

func TestUpdateProfileGraduationYears(t *testing.T) {
	store, svc := profileFixture()
	linkedinID := int64(5)
	store.linkedins[5] = &models.Linkedin{ID: 5}
	store.profiles[1] = &models.UserProfile{ID: 1, LinkedinID: &linkedinID}

	matriculate := 2022
	if _, err := svc.UpdateProfile(context.Background(), &models.UserProfile{ID: 1}, &dto.UpdateProfileRequest{MatriculateYear: &matriculate}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	years, ok := store.yearsSet[5]
	if !ok {
		t.Fatal("expected work history years written")
	}
	if years[0] == nil || *years[0] != 2022 {
		t.Errorf("matriculate year mismatch: %v", years[0])
	}
	if years[1] != nil {
		t.Errorf("graduate year should stay unset, got %v", years[1])
	}
}

func TestAddPosition(t *testing.T) {
	store, svc := profileFixture()
	linkedinID := int64(5)
	store.linkedins[5] = &models.Linkedin{ID: 5}
	actor := &models.UserProfile{ID: 1, LinkedinID: &linkedinID}

	start := 2024
	err := svc.AddPosition(context.Background(), actor, &dto.AddPositionRequest{
		Title:     "Analyst",
		Company:   "Acme",
		Current:   true,
		StartYear: &start,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(store.positions) != 1 {
		t.Fatalf("expected one position, got %d", len(store.positions))
	}
	created := store.positions[0]
	if created.LinkedinID != 5 {
		t.Errorf("position not attached to work history record: %d", created.LinkedinID)
	}
	if created.Summary != nil {
		t.Error("empty summary should stay unset")
	}

	if err := svc.AddPosition(context.Background(), &models.UserProfile{ID: 2}, &dto.AddPositionRequest{Title: "x", Company: "y"}); err == nil {
		t.Error("expected error for profile without work history")
	}
}

func TestUpdatePositionFieldSelection(t *testing.T) {
	store, svc := profileFixture()
	linkedinID := int64(5)
	title := "Analyst"
	store.linkedins[5] = &models.Linkedin{ID: 5, Positions: []*models.Position{{ID: 3, Title: &title}}}
	actor := &models.UserProfile{ID: 1, LinkedinID: &linkedinID}

	if err := svc.UpdatePosition(context.Background(), actor, &dto.UpdatePositionRequest{PositionID: 3, Type: "company", Value: "Acme"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	edit, ok := store.positionEdits[3]
	if !ok {
		t.Fatal("position edit not persisted")
	}
	if edit[1] == nil || *edit[1] != "Acme" {
		t.Errorf("company not updated: %v", edit[1])
	}

	if err := svc.UpdatePosition(context.Background(), actor, &dto.UpdatePositionRequest{PositionID: 3, Type: "salary", Value: "1"}); err == nil {
		t.Error("expected error for unknown field")
	}
	if err := svc.UpdatePosition(context.Background(), actor, &dto.UpdatePositionRequest{PositionID: 99, Type: "title", Value: "x"}); err == nil {
		t.Error("expected error for unknown position")
	}
	if err := svc.UpdatePosition(context.Background(), &models.UserProfile{ID: 2}, &dto.UpdatePositionRequest{PositionID: 3, Type: "title", Value: "x"}); err == nil {
		t.Error("expected error for profile without work history")
	}
}

func TestLookupMembersValidation(t *testing.T) {
	_, svc := profileFixture()
	chapterID := int64(10)
	actor := &models.UserProfile{ID: 1, ChapterID: &chapterID}

	if _, err := svc.LookupMembers(context.Background(), actor, "   "); err == nil {
		t.Error("expected error for blank fragment")
	}
	if _, err := svc.LookupMembers(context.Background(), &models.UserProfile{ID: 1}, "jo"); err == nil {
		t.Error("expected error for chapterless actor")
	}
}
