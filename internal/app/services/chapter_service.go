package services

import (
	"context"
	"strconv"

	"github.com/rs/zerolog"
	"github.com/cid2105/virtual-greek/internal/app/models"
	"github.com/cid2105/virtual-greek/internal/app/models/dto"
	"github.com/cid2105/virtual-greek/internal/pkg/apperrors"
	"github.com/cid2105/virtual-greek/internal/pkg/filestorage"
)

// boardPositions are the assignable executive board seats
var boardPositions = map[string]bool{
	"President":      true,
	"Vice-President": true,
	"Treasurer":      true,
	"Secretary":      true,
	"Rush Chair":     true,
	"Social Chair":   true,
	"House Manager":  true,
}

// chapterAdminStore is the chapter persistence surface for directory operations
type chapterAdminStore interface {
	chapterStore
	UpdateDetails(ctx context.Context, chapter *models.Chapter) error
	SetOfficer(ctx context.Context, chapterID int64, position string, profileID *int64) error
	SetMemberStanding(ctx context.Context, chapterID, profileID int64, standing models.MembershipStanding) error
	RemoveMember(ctx context.Context, chapterID, profileID int64) error
	GetMembers(ctx context.Context, chapterID int64, standing models.MembershipStanding) ([]*models.UserProfile, error)
}

// memberRoleStore is the profile surface needed when board changes touch roles
type memberRoleStore interface {
	GetByID(ctx context.Context, id int64) (*models.UserProfile, error)
	GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.UserProfile, error)
	UpdateRole(ctx context.Context, profileID int64, role models.RoleType) error
}

// ChapterService defines the interface for chapter directory operations
type ChapterService interface {
	GetDirectory(ctx context.Context, actor *models.UserProfile) (*dto.ChapterDirectoryResponse, error)
	UpdateChapter(ctx context.Context, actor *models.UserProfile, req *dto.UpdateChapterRequest) error
	SetOfficer(ctx context.Context, actor *models.UserProfile, req *dto.SetOfficerRequest) error
	SetMemberStatus(ctx context.Context, actor *models.UserProfile, profileID int64, status string) error
}

// chapterServiceImpl implements ChapterService
type chapterServiceImpl struct {
	chapters      chapterAdminStore
	organizations organizationStore
	profiles      memberRoleStore
	storage       filestorage.ObjectStorage
	logger        zerolog.Logger
}

// NewChapterService creates a new ChapterService
func NewChapterService(
	chapters chapterAdminStore,
	organizations organizationStore,
	profiles memberRoleStore,
	storage filestorage.ObjectStorage,
	logger zerolog.Logger,
) ChapterService {
	return &chapterServiceImpl{
		chapters:      chapters,
		organizations: organizations,
		profiles:      profiles,
		storage:       storage,
		logger:        logger,
	}
}

// GetDirectory assembles the chapter page: the chapter with its board in fixed
// position order plus the member, rushing and alumni sets
func (s *chapterServiceImpl) GetDirectory(ctx context.Context, actor *models.UserProfile) (*dto.ChapterDirectoryResponse, error) {
	chapter, err := s.loadChapter(ctx, actor)
	if err != nil {
		return nil, err
	}

	if err := s.attachOfficers(ctx, chapter); err != nil {
		return nil, err
	}

	resp := &dto.ChapterDirectoryResponse{Chapter: dto.ToChapterData(chapter)}
	for standing, dest := range map[models.MembershipStanding]*[]dto.MemberData{
		models.StandingMember:  &resp.Members,
		models.StandingRushing: &resp.Rushing,
		models.StandingAlumni:  &resp.Alumni,
	} {
		members, err := s.chapters.GetMembers(ctx, chapter.ID, standing)
		if err != nil {
			return nil, err
		}
		for _, member := range members {
			*dest = append(*dest, dto.ToMemberData(member, s.avatarURL(member)))
		}
	}

	return resp, nil
}

// UpdateChapter applies one inline edit to the chapter page. Param names the
// field: chapter (the display name), about, or year_founded.
func (s *chapterServiceImpl) UpdateChapter(ctx context.Context, actor *models.UserProfile, req *dto.UpdateChapterRequest) error {
	chapter, err := s.requireOfficer(ctx, actor)
	if err != nil {
		return err
	}

	switch req.Param {
	case "chapter":
		chapter.Name = &req.Value
	case "about":
		chapter.About = &req.Value
	case "year_founded":
		year, err := strconv.Atoi(req.Value)
		if err != nil {
			return apperrors.NewValidationError("year founded must be a number")
		}
		chapter.YearFounded = &year
	default:
		return apperrors.NewValidationError("unknown chapter field")
	}

	return s.chapters.UpdateDetails(ctx, chapter)
}

// SetOfficer assigns a member to a board position, or to the base member/rush
// role when the position names one of those instead of a board seat
func (s *chapterServiceImpl) SetOfficer(ctx context.Context, actor *models.UserProfile, req *dto.SetOfficerRequest) error {
	chapter, err := s.requireOfficer(ctx, actor)
	if err != nil {
		return err
	}

	member, err := s.profiles.GetByID(ctx, req.ProfileID)
	if err != nil {
		return err
	}
	if member == nil {
		return apperrors.NewCustomError(apperrors.ErrProfileNotFound, "profile not found")
	}
	if member.ChapterID == nil || *member.ChapterID != chapter.ID {
		return apperrors.NewForbiddenError("member belongs to another chapter")
	}

	organization, err := s.organizations.GetByID(ctx, chapter.OrganizationID)
	if err != nil {
		return err
	}
	if organization == nil {
		return apperrors.NewCustomError(apperrors.ErrOrganizationNotFound, "organization not found")
	}

	switch req.Position {
	case organization.MemberType():
		return s.profiles.UpdateRole(ctx, member.ID, models.RoleBrother)
	case "Rush":
		return s.profiles.UpdateRole(ctx, member.ID, models.RolePledge)
	}

	if !boardPositions[req.Position] {
		return apperrors.NewValidationError("unknown board position")
	}
	if err := s.chapters.SetOfficer(ctx, chapter.ID, req.Position, &member.ID); err != nil {
		return err
	}
	return s.profiles.UpdateRole(ctx, member.ID, models.RoleType(req.Position))
}

// SetMemberStatus moves a member between the chapter's member sets. Inactive
// removes the member from all sets.
func (s *chapterServiceImpl) SetMemberStatus(ctx context.Context, actor *models.UserProfile, profileID int64, status string) error {
	chapter, err := s.requireOfficer(ctx, actor)
	if err != nil {
		return err
	}

	organization, err := s.organizations.GetByID(ctx, chapter.OrganizationID)
	if err != nil {
		return err
	}
	if organization == nil {
		return apperrors.NewCustomError(apperrors.ErrOrganizationNotFound, "organization not found")
	}

	switch status {
	case organization.MemberType():
		return s.chapters.SetMemberStanding(ctx, chapter.ID, profileID, models.StandingMember)
	case "Rush":
		return s.chapters.SetMemberStanding(ctx, chapter.ID, profileID, models.StandingRushing)
	case "Alumni":
		return s.chapters.SetMemberStanding(ctx, chapter.ID, profileID, models.StandingAlumni)
	case "Inactive":
		return s.chapters.RemoveMember(ctx, chapter.ID, profileID)
	}

	return apperrors.NewValidationError("unknown membership status")
}

func (s *chapterServiceImpl) loadChapter(ctx context.Context, actor *models.UserProfile) (*models.Chapter, error) {
	if actor.ChapterID == nil {
		return nil, apperrors.NewValidationError("profile does not belong to a chapter")
	}
	chapter, err := s.chapters.GetByID(ctx, *actor.ChapterID)
	if err != nil {
		return nil, err
	}
	if chapter == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrChapterNotFound, "chapter not found")
	}

	organization, err := s.organizations.GetByID(ctx, chapter.OrganizationID)
	if err != nil {
		return nil, err
	}
	chapter.Organization = organization

	return chapter, nil
}

func (s *chapterServiceImpl) requireOfficer(ctx context.Context, actor *models.UserProfile) (*models.Chapter, error) {
	chapter, err := s.loadChapter(ctx, actor)
	if err != nil {
		return nil, err
	}
	if !chapter.IsOfficer(actor.ID) {
		return nil, apperrors.NewForbiddenError("only board members can manage the chapter")
	}
	return chapter, nil
}

// attachOfficers loads the profiles behind the chapter's officer references
func (s *chapterServiceImpl) attachOfficers(ctx context.Context, chapter *models.Chapter) error {
	refs := map[*int64]**models.UserProfile{
		chapter.PresidentID:     &chapter.President,
		chapter.VicePresidentID: &chapter.VicePresident,
		chapter.TreasurerID:     &chapter.Treasurer,
		chapter.SecretaryID:     &chapter.Secretary,
		chapter.RushChairID:     &chapter.RushChair,
		chapter.SocialChairID:   &chapter.SocialChair,
		chapter.HouseManagerID:  &chapter.HouseManager,
	}

	var ids []int64
	for id := range refs {
		if id != nil {
			ids = append(ids, *id)
		}
	}
	if len(ids) == 0 {
		return nil
	}

	profiles, err := s.profiles.GetByIDs(ctx, ids)
	if err != nil {
		return err
	}
	for id, dest := range refs {
		if id != nil {
			*dest = profiles[*id]
		}
	}

	return nil
}

func (s *chapterServiceImpl) avatarURL(profile *models.UserProfile) string {
	if profile.AvatarKey == nil {
		return ""
	}
	return s.storage.URLFor(filestorage.BucketProfilePictures, *profile.AvatarKey)
}
