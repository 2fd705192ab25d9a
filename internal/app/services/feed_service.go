package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/cid2105/virtual-greek/internal/app/models"
	"github.com/cid2105/virtual-greek/internal/app/models/dto"
	"github.com/cid2105/virtual-greek/internal/pkg/apperrors"
	"github.com/cid2105/virtual-greek/internal/pkg/helpers"
	"github.com/cid2105/virtual-greek/internal/pkg/profanity"
)

// universityStore is the university lookup surface the feed needs
type universityStore interface {
	GetByID(ctx context.Context, id int64) (*models.University, error)
	GetByName(ctx context.Context, name string) (*models.University, error)
}

// feedOrganizationStore extends organization lookup with name resolution
type feedOrganizationStore interface {
	organizationStore
	GetByName(ctx context.Context, name string) (*models.Organization, error)
}

// feedChapterStore extends chapter lookup with the university/organization pair
type feedChapterStore interface {
	chapterStore
	GetByUniversityAndOrganization(ctx context.Context, universityID, organizationID int64) (*models.Chapter, error)
}

// announcementStore is the announcement persistence surface
type announcementStore interface {
	Create(ctx context.Context, announcement *models.Announcement) (int64, error)
	CountByChapter(ctx context.Context, universityID, chapterID int64) (int64, error)
	ListByChapter(ctx context.Context, universityID, chapterID int64, offset uint64, limit int) ([]*models.Announcement, int64, error)
}

// FeedService defines the interface for the chapter home feed and bulletin
type FeedService interface {
	GetFeedContext(ctx context.Context, universityName, organizationSlug string, actor *models.UserProfile, page int) (*dto.FeedContextResponse, error)
	CreateAnnouncement(ctx context.Context, author *models.UserProfile, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error)
	HashtagVocabulary() []string
}

// feedServiceImpl implements FeedService
type feedServiceImpl struct {
	universities  universityStore
	organizations feedOrganizationStore
	chapters      feedChapterStore
	announcements announcementStore
	filter        *profanity.Filter
	logger        zerolog.Logger
}

// NewFeedService creates a new FeedService
func NewFeedService(
	universities universityStore,
	organizations feedOrganizationStore,
	chapters feedChapterStore,
	announcements announcementStore,
	filter *profanity.Filter,
	logger zerolog.Logger,
) FeedService {
	return &feedServiceImpl{
		universities:  universities,
		organizations: organizations,
		chapters:      chapters,
		announcements: announcements,
		filter:        filter,
		logger:        logger,
	}
}

// OrganizationNameFromSlug converts a URL slug into the stored organization
// name: hyphens become spaces and each word is capitalized.
func OrganizationNameFromSlug(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, word := range words {
		if word == "" {
			continue
		}
		words[i] = strings.ToUpper(word[:1]) + strings.ToLower(word[1:])
	}
	return strings.Join(words, " ")
}

// GetFeedContext assembles the view-ready bundle for a chapter's home feed:
// the directory entities plus one page of announcements and the hashtag list
func (s *feedServiceImpl) GetFeedContext(ctx context.Context, universityName, organizationSlug string, actor *models.UserProfile, page int) (*dto.FeedContextResponse, error) {
	university, err := s.universities.GetByName(ctx, universityName)
	if err != nil {
		return nil, err
	}
	if university == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrUniversityNotFound, "university not found")
	}

	organization, err := s.organizations.GetByName(ctx, OrganizationNameFromSlug(organizationSlug))
	if err != nil {
		return nil, err
	}
	if organization == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrOrganizationNotFound, "organization not found")
	}

	chapter, err := s.chapters.GetByUniversityAndOrganization(ctx, university.ID, organization.ID)
	if err != nil {
		return nil, err
	}
	if chapter == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrChapterNotFound, "chapter not found")
	}
	chapter.Organization = organization
	chapter.University = university

	total, err := s.announcements.CountByChapter(ctx, university.ID, chapter.ID)
	if err != nil {
		return nil, err
	}

	page = helpers.ClampPage(page, total, helpers.AnnouncementPageSize)
	offset, limit := helpers.OffsetLimit(page, helpers.AnnouncementPageSize)

	announcements, total, err := s.announcements.ListByChapter(ctx, university.ID, chapter.ID, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.FeedContextResponse{
		University:    dto.ToUniversityData(university),
		Organization:  dto.ToOrganizationData(organization),
		Chapter:       dto.ToChapterData(chapter),
		Announcements: make([]dto.AnnouncementResponse, 0, len(announcements)),
		Pagination:    helpers.NewPaginationInfo(total, page, helpers.AnnouncementPageSize),
		HashTags:      models.HashtagVocabulary(),
	}
	for _, announcement := range announcements {
		resp.Announcements = append(resp.Announcements, dto.ToAnnouncementResponse(announcement))
	}

	return resp, nil
}

// CreateAnnouncement posts a bulletin entry tagged with one vocabulary hashtag
func (s *feedServiceImpl) CreateAnnouncement(ctx context.Context, author *models.UserProfile, req *dto.CreateAnnouncementRequest) (*dto.AnnouncementResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.NewValidationError("announcement cannot be empty")
	}
	if !models.ValidHashtag(req.HashTag) {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidHashtag, "hashtag is not in the vocabulary")
	}
	if s.filter.ContainsBlockedWord(req.Content) {
		return nil, apperrors.NewCustomError(apperrors.ErrBlockedContent, "announcement contains a blocked word")
	}
	if author.ChapterID == nil || author.UniversityID == nil {
		return nil, apperrors.NewValidationError("profile does not belong to a chapter")
	}

	announcement := &models.Announcement{
		AuthorID:     author.ID,
		UniversityID: *author.UniversityID,
		ChapterID:    *author.ChapterID,
		Content:      req.Content,
		Hashtag:      req.HashTag,
	}

	id, err := s.announcements.Create(ctx, announcement)
	if err != nil {
		return nil, err
	}
	announcement.ID = id
	announcement.Author = author

	s.logger.Info().
		Int64("announcementId", id).
		Int64("authorId", author.ID).
		Str("hashtag", req.HashTag).
		Msg("Announcement posted")

	resp := dto.ToAnnouncementResponse(announcement)
	return &resp, nil
}

// HashtagVocabulary returns the fixed canonical hashtag list
func (s *feedServiceImpl) HashtagVocabulary() []string {
	return models.HashtagVocabulary()
}
