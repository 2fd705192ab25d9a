package services

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/cid2105/virtual-greek/internal/app/models"
	"github.com/cid2105/virtual-greek/internal/pkg/apperrors"
)

// SelectorKind discriminates the parsed audience selector variants
type SelectorKind int

const (
	// SelectorOrganization targets every profile in the author's chapter
	SelectorOrganization SelectorKind = iota
	// SelectorBaseRole targets chapter profiles holding the base member role
	SelectorBaseRole
	// SelectorPledges targets chapter profiles holding the pledge role
	SelectorPledges
	// SelectorPublic targets every profile system-wide
	SelectorPublic
	// SelectorNames targets an explicit display-name list
	SelectorNames
)

// AudienceSelector is the parsed form of a topic's privacy field, constructed
// once at the boundary and matched exhaustively during resolution.
type AudienceSelector struct {
	Kind  SelectorKind
	Names []string
}

// baseRoleTerms are the collective labels that address the base member role
var baseRoleTerms = map[string]bool{
	"Brothers": true,
	"Sisters":  true,
	"Members":  true,
}

// ParseAudienceSelector classifies a raw privacy string against the author's
// organization. First match wins; anything unrecognized is treated as a
// comma-separated display-name list, each entry trimmed.
func ParseAudienceSelector(raw string, orgType models.OrganizationType) AudienceSelector {
	selector := strings.TrimSpace(raw)
	switch {
	case selector == string(orgType):
		return AudienceSelector{Kind: SelectorOrganization}
	case baseRoleTerms[selector]:
		return AudienceSelector{Kind: SelectorBaseRole}
	case selector == "Pledges":
		return AudienceSelector{Kind: SelectorPledges}
	case selector == "Public":
		return AudienceSelector{Kind: SelectorPublic}
	}

	var names []string
	for _, name := range strings.Split(selector, ",") {
		name = strings.TrimSpace(name)
		if name != "" {
			names = append(names, name)
		}
	}
	return AudienceSelector{Kind: SelectorNames, Names: names}
}

// audienceProfileStore is the profile lookup surface the resolver needs
type audienceProfileStore interface {
	ListIDsByChapter(ctx context.Context, chapterID, universityID int64) ([]int64, error)
	ListIDsByChapterRole(ctx context.Context, chapterID, universityID int64, role models.RoleType) ([]int64, error)
	ListAllIDs(ctx context.Context) ([]int64, error)
	GetIDsByDisplayNames(ctx context.Context, names []string) ([]int64, error)
}

// AudienceService resolves a parsed selector to the concrete profile set that
// may see and reply to a topic
type AudienceService interface {
	Resolve(ctx context.Context, selector AudienceSelector, author *models.UserProfile) ([]int64, error)
}

// audienceServiceImpl implements AudienceService
type audienceServiceImpl struct {
	profiles audienceProfileStore
	logger   zerolog.Logger
}

// NewAudienceService creates a new AudienceService
func NewAudienceService(profiles audienceProfileStore, logger zerolog.Logger) AudienceService {
	return &audienceServiceImpl{profiles: profiles, logger: logger}
}

// Resolve computes the audience snapshot for a topic at creation time. The
// result is attached once and never recomputed.
func (s *audienceServiceImpl) Resolve(ctx context.Context, selector AudienceSelector, author *models.UserProfile) ([]int64, error) {
	switch selector.Kind {
	case SelectorPublic:
		return s.profiles.ListAllIDs(ctx)
	case SelectorNames:
		ids, err := s.profiles.GetIDsByDisplayNames(ctx, selector.Names)
		if err != nil {
			return nil, err
		}
		if len(ids) < len(selector.Names) {
			s.logger.Debug().
				Int("requested", len(selector.Names)).
				Int("matched", len(ids)).
				Msg("Some audience names did not match a profile")
		}
		return ids, nil
	}

	if author.ChapterID == nil || author.UniversityID == nil {
		return nil, apperrors.NewValidationError("profile does not belong to a chapter")
	}

	switch selector.Kind {
	case SelectorOrganization:
		return s.profiles.ListIDsByChapter(ctx, *author.ChapterID, *author.UniversityID)
	case SelectorBaseRole:
		return s.profiles.ListIDsByChapterRole(ctx, *author.ChapterID, *author.UniversityID, models.RoleBrother)
	case SelectorPledges:
		return s.profiles.ListIDsByChapterRole(ctx, *author.ChapterID, *author.UniversityID, models.RolePledge)
	}

	return nil, apperrors.NewValidationError("unrecognized audience selector")
}
