package seed

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	appModels "github.com/cid2105/virtual-greek/internal/app/models"
	appRepos "github.com/cid2105/virtual-greek/internal/app/repositories"
)

// CreateDefaultData seeds the university and organization directory if the
// entries don't exist yet. Chapters are provisioned for each pair so a fresh
// deployment has somewhere to register members into.
func CreateDefaultData(ctx context.Context, dbPool *pgxpool.Pool, lgr zerolog.Logger) error {
	universityRepo := appRepos.NewUniversityRepository(dbPool)
	organizationRepo := appRepos.NewOrganizationRepository(dbPool)
	chapterRepo := appRepos.NewChapterRepository(dbPool)

	lgr.Info().Msg("Checking/Creating default data (Universities/Organizations/Chapters)...")
	var finalErr error

	universities := []string{
		"Columbia University",
		"New York University",
	}
	organizations := []struct {
		name     string
		orgType  appModels.OrganizationType
		nickname string
	}{
		{"Alpha Epsilon Pi", appModels.OrgTypeFraternity, "AEPi"},
		{"Sigma Delta Tau", appModels.OrgTypeSorority, "SDT"},
	}

	universityIDs := make(map[string]int64)
	for _, name := range universities {
		id, err := ensureUniversity(ctx, universityRepo, name)
		if err != nil {
			lgr.Error().Err(err).Str("university", name).Msg("Error seeding university")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		universityIDs[name] = id
	}

	organizationIDs := make(map[string]int64)
	for _, o := range organizations {
		id, err := ensureOrganization(ctx, organizationRepo, o.name, o.orgType, o.nickname)
		if err != nil {
			lgr.Error().Err(err).Str("organization", o.name).Msg("Error seeding organization")
			finalErr = errors.Join(finalErr, err)
			continue
		}
		organizationIDs[o.name] = id
	}

	// One chapter per university, matching the default directory policy.
	chapters := []struct {
		university   string
		organization string
	}{
		{"Columbia University", "Alpha Epsilon Pi"},
		{"New York University", "Sigma Delta Tau"},
	}
	for _, c := range chapters {
		universityID, ok := universityIDs[c.university]
		if !ok {
			continue
		}
		organizationID, ok := organizationIDs[c.organization]
		if !ok {
			continue
		}
		if err := ensureChapter(ctx, chapterRepo, universityID, organizationID); err != nil {
			lgr.Error().Err(err).
				Str("university", c.university).
				Str("organization", c.organization).
				Msg("Error seeding chapter")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr != nil {
		return fmt.Errorf("seeding default data: %w", finalErr)
	}
	lgr.Info().Msg("Default data check complete.")
	return nil
}

func ensureUniversity(ctx context.Context, repo *appRepos.UniversityRepository, name string) (int64, error) {
	existing, err := repo.GetByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.ID, nil
	}
	return repo.Create(ctx, &appModels.University{Name: name})
}

func ensureOrganization(ctx context.Context, repo *appRepos.OrganizationRepository, name string, orgType appModels.OrganizationType, nickname string) (int64, error) {
	existing, err := repo.GetByName(ctx, name)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		return existing.ID, nil
	}
	org := &appModels.Organization{Name: name, Type: orgType}
	if nickname != "" {
		org.Nickname = &nickname
	}
	return repo.Create(ctx, org)
}

func ensureChapter(ctx context.Context, repo *appRepos.ChapterRepository, universityID, organizationID int64) error {
	existing, err := repo.GetByUniversityAndOrganization(ctx, universityID, organizationID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	// A deployment may already carry a chapter at this university under a
	// different organization. Leave it alone rather than fight the
	// single-chapter constraint.
	taken, err := repo.ExistsForUniversity(ctx, universityID)
	if err != nil {
		return err
	}
	if taken {
		return nil
	}
	_, err = repo.Create(ctx, &appModels.Chapter{
		UniversityID:   universityID,
		OrganizationID: organizationID,
	})
	return err
}
