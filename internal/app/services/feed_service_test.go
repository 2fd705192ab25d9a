package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/cid2105/virtual-greek/internal/app/models"
	"github.com/cid2105/virtual-greek/internal/app/models/dto"
	"github.com/cid2105/virtual-greek/internal/pkg/profanity"
)

type fakeUniversityStore struct {
	byName map[string]*models.University
}

func (f *fakeUniversityStore) GetByID(ctx context.Context, id int64) (*models.University, error) {
	for _, u := range f.byName {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (f *fakeUniversityStore) GetByName(ctx context.Context, name string) (*models.University, error) {
	return f.byName[name], nil
}

type fakeFeedOrganizationStore struct {
	byName map[string]*models.Organization
}

func (f *fakeFeedOrganizationStore) GetByID(ctx context.Context, id int64) (*models.Organization, error) {
	for _, o := range f.byName {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, nil
}

func (f *fakeFeedOrganizationStore) GetByName(ctx context.Context, name string) (*models.Organization, error) {
	return f.byName[name], nil
}

type fakeFeedChapterStore struct {
	chapter *models.Chapter
}

func (f *fakeFeedChapterStore) GetByID(ctx context.Context, id int64) (*models.Chapter, error) {
	return f.chapter, nil
}

func (f *fakeFeedChapterStore) GetByUniversityAndOrganization(ctx context.Context, universityID, organizationID int64) (*models.Chapter, error) {
	if f.chapter != nil && f.chapter.UniversityID == universityID && f.chapter.OrganizationID == organizationID {
		return f.chapter, nil
	}
	return nil, nil
}

type fakeAnnouncementStore struct {
	nextID  int64
	created []*models.Announcement
}

func (f *fakeAnnouncementStore) Create(ctx context.Context, announcement *models.Announcement) (int64, error) {
	f.nextID++
	f.created = append(f.created, announcement)
	return f.nextID, nil
}

func (f *fakeAnnouncementStore) CountByChapter(ctx context.Context, universityID, chapterID int64) (int64, error) {
	return int64(len(f.created)), nil
}

func (f *fakeAnnouncementStore) ListByChapter(ctx context.Context, universityID, chapterID int64, offset uint64, limit int) ([]*models.Announcement, int64, error) {
	return f.created, int64(len(f.created)), nil
}

func feedFixture() (*fakeAnnouncementStore, FeedService) {
	announcements := &fakeAnnouncementStore{}
	svc := NewFeedService(
		&fakeUniversityStore{byName: map[string]*models.University{
			"Columbia University": {ID: 1, Name: "Columbia University"},
		}},
		&fakeFeedOrganizationStore{byName: map[string]*models.Organization{
			"Alpha Epsilon Pi": {ID: 2, Name: "Alpha Epsilon Pi", Type: models.OrgTypeFraternity},
		}},
		&fakeFeedChapterStore{chapter: &models.Chapter{ID: 3, UniversityID: 1, OrganizationID: 2}},
		announcements,
		profanity.NewFilter([]string{"hazing"}),
		zerolog.Nop(),
	)
	return announcements, svc
}

func feedAuthor() *models.UserProfile {
	chapterID := int64(3)
	universityID := int64(1)
	return &models.UserProfile{ID: 7, ChapterID: &chapterID, UniversityID: &universityID}
}

func TestOrganizationNameFromSlug(t *testing.T) {
	tests := []struct {
		slug string
		want string
	}{
		{"alpha-epsilon-pi", "Alpha Epsilon Pi"},
		{"sigma-delta-tau", "Sigma Delta Tau"},
		{"KAPPA-SIGMA", "Kappa Sigma"},
		{"theta", "Theta"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := OrganizationNameFromSlug(tt.slug); got != tt.want {
			t.Errorf("OrganizationNameFromSlug(%q): expected %q, got %q", tt.slug, tt.want, got)
		}
	}
}

func TestGetFeedContextResolvesSlug(t *testing.T) {
	_, svc := feedFixture()

	resp, err := svc.GetFeedContext(context.Background(), "Columbia University", "alpha-epsilon-pi", feedAuthor(), 1)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Organization.Name != "Alpha Epsilon Pi" {
		t.Errorf("expected organization resolved from slug, got %q", resp.Organization.Name)
	}
	if len(resp.HashTags) != 22 {
		t.Errorf("expected full hashtag vocabulary, got %d entries", len(resp.HashTags))
	}
}

func TestGetFeedContextUnknownUniversity(t *testing.T) {
	_, svc := feedFixture()

	if _, err := svc.GetFeedContext(context.Background(), "Nowhere State", "alpha-epsilon-pi", feedAuthor(), 1); err == nil {
		t.Fatal("expected not-found error")
	}
}

func TestCreateAnnouncementHashtagGate(t *testing.T) {
	announcements, svc := feedFixture()
	author := feedAuthor()

	if _, err := svc.CreateAnnouncement(context.Background(), author, &dto.CreateAnnouncementRequest{Content: "c", HashTag: "#notreal"}); err == nil {
		t.Error("expected error for out-of-vocabulary hashtag")
	}
	if _, err := svc.CreateAnnouncement(context.Background(), author, &dto.CreateAnnouncementRequest{Content: "  ", HashTag: "#Rush"}); err == nil {
		t.Error("expected error for empty content")
	}
	if _, err := svc.CreateAnnouncement(context.Background(), author, &dto.CreateAnnouncementRequest{Content: "hazing tips", HashTag: "#Rush"}); err == nil {
		t.Error("expected error for blocked word")
	}

	resp, err := svc.CreateAnnouncement(context.Background(), author, &dto.CreateAnnouncementRequest{Content: "Rush week starts Monday", HashTag: "#Rush"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Hashtag != "#Rush" {
		t.Errorf("expected hashtag in response, got %q", resp.Hashtag)
	}
	if len(announcements.created) != 1 {
		t.Fatalf("expected 1 announcement stored, got %d", len(announcements.created))
	}
	if announcements.created[0].ChapterID != 3 {
		t.Errorf("announcement should carry the author's chapter, got %d", announcements.created[0].ChapterID)
	}
}
