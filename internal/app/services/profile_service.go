package services

import (
	"context"
	"mime/multipart"
	"strings"
	"unicode"

	"github.com/rs/zerolog"
	"github.com/cid2105/virtual-greek/internal/app/models"
	"github.com/cid2105/virtual-greek/internal/app/models/dto"
	"github.com/cid2105/virtual-greek/internal/pkg/apperrors"
	"github.com/cid2105/virtual-greek/internal/pkg/filestorage"
)

// profileStore is the profile persistence surface
type profileStore interface {
	Create(ctx context.Context, profile *models.UserProfile) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.UserProfile, error)
	GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error)
	Update(ctx context.Context, profile *models.UserProfile) error
	UpdateAvatarKey(ctx context.Context, profileID int64, key *string) error
	UpdateResumeKey(ctx context.Context, profileID int64, key *string) error
	UpdateCanvas(ctx context.Context, profileID int64, canvas *string) error
	SearchByName(ctx context.Context, chapterID int64, fragment string) ([]*models.UserProfile, error)
	CreateLinkedin(ctx context.Context, linkedin *models.Linkedin) (int64, error)
	GetLinkedin(ctx context.Context, id int64) (*models.Linkedin, error)
	UpdateLinkedinYears(ctx context.Context, id int64, matriculateYear, graduateYear *int) error
	CreatePosition(ctx context.Context, position *models.Position) (int64, error)
	UpdatePosition(ctx context.Context, id int64, title, company *string) error
}

// ProfileService defines the interface for member profile operations
type ProfileService interface {
	CreateProfileFor(ctx context.Context, userID int64, displayName string, chapterID int64) (*models.UserProfile, error)
	GetProfile(ctx context.Context, profileID int64) (*dto.ProfileResponse, error)
	UpdateProfile(ctx context.Context, actor *models.UserProfile, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error)
	AddPosition(ctx context.Context, actor *models.UserProfile, req *dto.AddPositionRequest) error
	UpdatePosition(ctx context.Context, actor *models.UserProfile, req *dto.UpdatePositionRequest) error
	SaveCanvas(ctx context.Context, actor *models.UserProfile, req *dto.SaveCanvasRequest) error
	UploadAvatar(ctx context.Context, actor *models.UserProfile, file *multipart.FileHeader) (*dto.ProfileResponse, error)
	UploadResume(ctx context.Context, actor *models.UserProfile, file *multipart.FileHeader) (*dto.ProfileResponse, error)
	LookupMembers(ctx context.Context, actor *models.UserProfile, fragment string) ([]dto.ProfileResponse, error)
}

// profileServiceImpl implements ProfileService
type profileServiceImpl struct {
	profiles profileStore
	chapters chapterStore
	storage  filestorage.ObjectStorage
	logger   zerolog.Logger
}

// NewProfileService creates a new ProfileService
func NewProfileService(profiles profileStore, chapters chapterStore, storage filestorage.ObjectStorage, logger zerolog.Logger) ProfileService {
	return &profileServiceImpl{
		profiles: profiles,
		chapters: chapters,
		storage:  storage,
		logger:   logger,
	}
}

// CreateProfileFor provisions the member profile for a freshly registered
// identity, including its empty work history record
func (s *profileServiceImpl) CreateProfileFor(ctx context.Context, userID int64, displayName string, chapterID int64) (*models.UserProfile, error) {
	chapter, err := s.chapters.GetByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	if chapter == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrChapterNotFound, "chapter not found")
	}

	linkedinID, err := s.profiles.CreateLinkedin(ctx, &models.Linkedin{})
	if err != nil {
		return nil, err
	}

	profile := &models.UserProfile{
		UserID:       userID,
		DisplayName:  &displayName,
		ChapterID:    &chapter.ID,
		UniversityID: &chapter.UniversityID,
		Role:         models.RoleBrother,
		LinkedinID:   &linkedinID,
	}
	id, err := s.profiles.Create(ctx, profile)
	if err != nil {
		return nil, err
	}
	profile.ID = id

	s.logger.Info().
		Int64("profileId", id).
		Int64("userId", userID).
		Int64("chapterId", chapterID).
		Msg("Profile provisioned")

	return profile, nil
}

// GetProfile retrieves a member's profile page with work history and blob URLs
func (s *profileServiceImpl) GetProfile(ctx context.Context, profileID int64) (*dto.ProfileResponse, error) {
	profile, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrProfileNotFound, "profile not found")
	}

	if profile.LinkedinID != nil {
		linkedin, err := s.profiles.GetLinkedin(ctx, *profile.LinkedinID)
		if err != nil {
			return nil, err
		}
		profile.Linkedin = linkedin
	}

	resp := dto.ToProfileResponse(profile, s.avatarURL(profile), s.resumeURL(profile))
	return &resp, nil
}

// normalizePhone strips every non-digit rune from a raw phone number
func normalizePhone(raw string) string {
	var b strings.Builder
	for _, r := range raw {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// UpdateProfile applies the profile edit form. Phone numbers are stored
// digits-only; graduation years live on the work history record.
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, actor *models.UserProfile, req *dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	profile, err := s.profiles.GetByID(ctx, actor.ID)
	if err != nil {
		return nil, err
	}
	if profile == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrProfileNotFound, "profile not found")
	}

	if req.DisplayName != nil {
		profile.DisplayName = req.DisplayName
	}
	if req.PhoneNumber != nil {
		number := normalizePhone(*req.PhoneNumber)
		profile.PhoneNumber = &number
	}
	if req.Description != nil {
		profile.Description = req.Description
	}
	if req.Major != nil {
		profile.Major = req.Major
	}

	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	if (req.MatriculateYear != nil || req.GraduateYear != nil) && profile.LinkedinID != nil {
		linkedin, err := s.profiles.GetLinkedin(ctx, *profile.LinkedinID)
		if err != nil {
			return nil, err
		}
		if linkedin != nil {
			matriculate := linkedin.MatriculateYear
			graduate := linkedin.GraduateYear
			if req.MatriculateYear != nil {
				matriculate = req.MatriculateYear
			}
			if req.GraduateYear != nil {
				graduate = req.GraduateYear
			}
			if err := s.profiles.UpdateLinkedinYears(ctx, linkedin.ID, matriculate, graduate); err != nil {
				return nil, err
			}
		}
	}

	return s.GetProfile(ctx, profile.ID)
}

// AddPosition appends a work history entry to the member's record
func (s *profileServiceImpl) AddPosition(ctx context.Context, actor *models.UserProfile, req *dto.AddPositionRequest) error {
	if actor.LinkedinID == nil {
		return apperrors.NewValidationError("profile has no work history")
	}

	position := &models.Position{
		LinkedinID: *actor.LinkedinID,
		Title:      &req.Title,
		Company:    &req.Company,
		Current:    req.Current,
		StartMonth: req.StartMonth,
		StartYear:  req.StartYear,
		EndMonth:   req.EndMonth,
		EndYear:    req.EndYear,
	}
	if req.Summary != "" {
		position.Summary = &req.Summary
	}

	_, err := s.profiles.CreatePosition(ctx, position)
	return err
}

// UpdatePosition edits one field of a work history entry. Type names the field
// (title or company).
func (s *profileServiceImpl) UpdatePosition(ctx context.Context, actor *models.UserProfile, req *dto.UpdatePositionRequest) error {
	if actor.LinkedinID == nil {
		return apperrors.NewValidationError("profile has no work history")
	}
	linkedin, err := s.profiles.GetLinkedin(ctx, *actor.LinkedinID)
	if err != nil {
		return err
	}
	if linkedin == nil {
		return apperrors.NewValidationError("profile has no work history")
	}

	var position *models.Position
	for _, p := range linkedin.Positions {
		if p.ID == req.PositionID {
			position = p
			break
		}
	}
	if position == nil {
		return apperrors.NewResourceNotFoundError("position not found")
	}

	switch req.Type {
	case "title":
		position.Title = &req.Value
	case "company":
		position.Company = &req.Value
	default:
		return apperrors.NewValidationError("unknown position field")
	}

	return s.profiles.UpdatePosition(ctx, position.ID, position.Title, position.Company)
}

// SaveCanvas replaces the member's canvas blob
func (s *profileServiceImpl) SaveCanvas(ctx context.Context, actor *models.UserProfile, req *dto.SaveCanvasRequest) error {
	return s.profiles.UpdateCanvas(ctx, actor.ID, &req.Data)
}

// UploadAvatar stores a new profile picture and records its key
func (s *profileServiceImpl) UploadAvatar(ctx context.Context, actor *models.UserProfile, file *multipart.FileHeader) (*dto.ProfileResponse, error) {
	key := filestorage.NewKey(file.Filename)
	if err := s.storage.Put(filestorage.BucketProfilePictures, key, file); err != nil {
		return nil, apperrors.NewStorageError("failed to upload profile picture", err)
	}

	if actor.AvatarKey != nil {
		if err := s.storage.Delete(filestorage.BucketProfilePictures, *actor.AvatarKey); err != nil {
			s.logger.Warn().Err(err).Str("key", *actor.AvatarKey).Msg("Failed to delete previous profile picture")
		}
	}

	if err := s.profiles.UpdateAvatarKey(ctx, actor.ID, &key); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, actor.ID)
}

// UploadResume stores a new resume and records its key
func (s *profileServiceImpl) UploadResume(ctx context.Context, actor *models.UserProfile, file *multipart.FileHeader) (*dto.ProfileResponse, error) {
	key := filestorage.NewKey(file.Filename)
	if err := s.storage.Put(filestorage.BucketResumes, key, file); err != nil {
		return nil, apperrors.NewStorageError("failed to upload resume", err)
	}

	if actor.ResumeKey != nil {
		if err := s.storage.Delete(filestorage.BucketResumes, *actor.ResumeKey); err != nil {
			s.logger.Warn().Err(err).Str("key", *actor.ResumeKey).Msg("Failed to delete previous resume")
		}
	}

	if err := s.profiles.UpdateResumeKey(ctx, actor.ID, &key); err != nil {
		return nil, err
	}

	return s.GetProfile(ctx, actor.ID)
}

// LookupMembers finds chapter members whose display name contains the fragment
func (s *profileServiceImpl) LookupMembers(ctx context.Context, actor *models.UserProfile, fragment string) ([]dto.ProfileResponse, error) {
	if actor.ChapterID == nil {
		return nil, apperrors.NewValidationError("profile does not belong to a chapter")
	}
	if strings.TrimSpace(fragment) == "" {
		return nil, apperrors.NewValidationError("lookup needs a name fragment")
	}

	profiles, err := s.profiles.SearchByName(ctx, *actor.ChapterID, fragment)
	if err != nil {
		return nil, err
	}

	results := make([]dto.ProfileResponse, 0, len(profiles))
	for _, profile := range profiles {
		results = append(results, dto.ToProfileResponse(profile, s.avatarURL(profile), s.resumeURL(profile)))
	}
	return results, nil
}

func (s *profileServiceImpl) avatarURL(profile *models.UserProfile) string {
	if profile.AvatarKey == nil {
		return ""
	}
	return s.storage.URLFor(filestorage.BucketProfilePictures, *profile.AvatarKey)
}

func (s *profileServiceImpl) resumeURL(profile *models.UserProfile) string {
	if profile.ResumeKey == nil {
		return ""
	}
	return s.storage.URLFor(filestorage.BucketResumes, *profile.ResumeKey)
}
