package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/cid2105/virtual-greek/internal/app/models"
)

// officerColumns maps board position labels to their chapter table columns
var officerColumns = map[string]string{
	"President":      "president_id",
	"Vice-President": "vice_president_id",
	"Treasurer":      "treasurer_id",
	"Secretary":      "secretary_id",
	"Rush Chair":     "rush_chair_id",
	"Social Chair":   "social_chair_id",
	"House Manager":  "house_manager_id",
}

// chapterColumns are the scanned columns of the chapters table
var chapterColumns = []string{
	"id", "organization_id", "university_id", "name", "about", "year_founded",
	"president_id", "vice_president_id", "treasurer_id", "secretary_id",
	"rush_chair_id", "social_chair_id", "house_manager_id",
	"created_at", "updated_at",
}

// ChapterRepository handles database operations for chapters and their member sets
type ChapterRepository struct {
	db *pgxpool.Pool
}

// NewChapterRepository creates a new ChapterRepository
func NewChapterRepository(db *pgxpool.Pool) *ChapterRepository {
	return &ChapterRepository{db: db}
}

// Create creates a new chapter
func (r *ChapterRepository) Create(ctx context.Context, chapter *models.Chapter) (int64, error) {
	query := squirrel.Insert("chapters").
		Columns("organization_id", "university_id", "name", "about", "year_founded").
		Values(chapter.OrganizationID, chapter.UniversityID, chapter.Name, chapter.About, chapter.YearFounded).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// GetByID retrieves a chapter by ID
func (r *ChapterRepository) GetByID(ctx context.Context, id int64) (*models.Chapter, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUniversityAndOrganization retrieves the chapter of an organization at a university
func (r *ChapterRepository) GetByUniversityAndOrganization(ctx context.Context, universityID, organizationID int64) (*models.Chapter, error) {
	return r.getOne(ctx, squirrel.Eq{"university_id": universityID, "organization_id": organizationID})
}

func (r *ChapterRepository) getOne(ctx context.Context, pred squirrel.Eq) (*models.Chapter, error) {
	query := squirrel.Select(chapterColumns...).
		From("chapters").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var chapter models.Chapter
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&chapter.ID,
		&chapter.OrganizationID,
		&chapter.UniversityID,
		&chapter.Name,
		&chapter.About,
		&chapter.YearFounded,
		&chapter.PresidentID,
		&chapter.VicePresidentID,
		&chapter.TreasurerID,
		&chapter.SecretaryID,
		&chapter.RushChairID,
		&chapter.SocialChairID,
		&chapter.HouseManagerID,
		&chapter.CreatedAt,
		&chapter.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &chapter, nil
}

// ExistsForUniversity checks whether any chapter is registered at a university
func (r *ChapterRepository) ExistsForUniversity(ctx context.Context, universityID int64) (bool, error) {
	query := squirrel.Select("COUNT(*)").
		From("chapters").
		Where("university_id = ?", universityID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return false, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("error executing query: %w", err)
	}

	return count > 0, nil
}

// UpdateDetails updates the chapter's editable fields
func (r *ChapterRepository) UpdateDetails(ctx context.Context, chapter *models.Chapter) error {
	query := squirrel.Update("chapters").
		Set("name", chapter.Name).
		Set("about", chapter.About).
		Set("year_founded", chapter.YearFounded).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", chapter.ID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("no rows affected")
	}

	return nil
}

// SetOfficer assigns a profile to a board position. A nil profile ID vacates the seat.
func (r *ChapterRepository) SetOfficer(ctx context.Context, chapterID int64, position string, profileID *int64) error {
	column, ok := officerColumns[position]
	if !ok {
		return fmt.Errorf("unknown board position: %s", position)
	}

	query := squirrel.Update("chapters").
		Set(column, profileID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", chapterID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	if result.RowsAffected() == 0 {
		return fmt.Errorf("no rows affected")
	}

	return nil
}

// SetMemberStanding upserts a profile into one of the chapter's member sets
func (r *ChapterRepository) SetMemberStanding(ctx context.Context, chapterID, profileID int64, standing models.MembershipStanding) error {
	query := squirrel.Insert("chapter_memberships").
		Columns("chapter_id", "profile_id", "standing").
		Values(chapterID, profileID, standing).
		Suffix("ON CONFLICT (chapter_id, profile_id) DO UPDATE SET standing = EXCLUDED.standing").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// RemoveMember removes a profile from all of the chapter's member sets
func (r *ChapterRepository) RemoveMember(ctx context.Context, chapterID, profileID int64) error {
	query := squirrel.Delete("chapter_memberships").
		Where("chapter_id = ?", chapterID).
		Where("profile_id = ?", profileID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// GetMembers retrieves the profiles in one of the chapter's member sets, ordered by name
func (r *ChapterRepository) GetMembers(ctx context.Context, chapterID int64, standing models.MembershipStanding) ([]*models.UserProfile, error) {
	query := squirrel.Select(
		"p.id", "p.user_id", "p.full_name", "p.display_name", "p.nickname",
		"p.chapter_id", "p.university_id", "p.role", "p.avatar_key",
	).
		From("chapter_memberships m").
		Join("user_profiles p ON p.id = m.profile_id").
		Where("m.chapter_id = ?", chapterID).
		Where("m.standing = ?", standing).
		OrderBy("p.display_name ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var profiles []*models.UserProfile
	for rows.Next() {
		var profile models.UserProfile
		err := rows.Scan(
			&profile.ID,
			&profile.UserID,
			&profile.FullName,
			&profile.DisplayName,
			&profile.Nickname,
			&profile.ChapterID,
			&profile.UniversityID,
			&profile.Role,
			&profile.AvatarKey,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		profiles = append(profiles, &profile)
	}

	return profiles, nil
}
