package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/cid2105/virtual-greek/internal/app/models"
)

// profileColumns are the scanned columns of the user_profiles table
var profileColumns = []string{
	"id", "user_id", "full_name", "display_name", "nickname",
	"chapter_id", "university_id", "role", "about_me", "description",
	"major", "phone_number", "avatar_key", "resume_key", "canvas",
	"linkedin_id", "created_at", "updated_at",
}

// ProfileRepository handles database operations for member profiles and their
// work history records
type ProfileRepository struct {
	db *pgxpool.Pool
}

// NewProfileRepository creates a new ProfileRepository
func NewProfileRepository(db *pgxpool.Pool) *ProfileRepository {
	return &ProfileRepository{db: db}
}

func scanProfile(row pgx.Row) (*models.UserProfile, error) {
	var profile models.UserProfile
	err := row.Scan(
		&profile.ID,
		&profile.UserID,
		&profile.FullName,
		&profile.DisplayName,
		&profile.Nickname,
		&profile.ChapterID,
		&profile.UniversityID,
		&profile.Role,
		&profile.AboutMe,
		&profile.Description,
		&profile.Major,
		&profile.PhoneNumber,
		&profile.AvatarKey,
		&profile.ResumeKey,
		&profile.Canvas,
		&profile.LinkedinID,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &profile, nil
}

// Create creates a new profile and returns its ID
func (r *ProfileRepository) Create(ctx context.Context, profile *models.UserProfile) (int64, error) {
	query := squirrel.Insert("user_profiles").
		Columns("user_id", "full_name", "display_name", "chapter_id", "university_id", "role", "linkedin_id").
		Values(profile.UserID, profile.FullName, profile.DisplayName, profile.ChapterID, profile.UniversityID, profile.Role, profile.LinkedinID).
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

// GetByID retrieves a profile by ID
func (r *ProfileRepository) GetByID(ctx context.Context, id int64) (*models.UserProfile, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id})
}

// GetByUserID retrieves the profile owned by a user identity
func (r *ProfileRepository) GetByUserID(ctx context.Context, userID int64) (*models.UserProfile, error) {
	return r.getOne(ctx, squirrel.Eq{"user_id": userID})
}

func (r *ProfileRepository) getOne(ctx context.Context, pred squirrel.Eq) (*models.UserProfile, error) {
	query := squirrel.Select(profileColumns...).
		From("user_profiles").
		Where(pred).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	profile, err := scanProfile(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return profile, nil
}

// GetByIDs retrieves profiles for a set of IDs, keyed by profile ID
func (r *ProfileRepository) GetByIDs(ctx context.Context, ids []int64) (map[int64]*models.UserProfile, error) {
	result := make(map[int64]*models.UserProfile)
	if len(ids) == 0 {
		return result, nil
	}

	query := squirrel.Select(profileColumns...).
		From("user_profiles").
		Where(squirrel.Eq{"id": ids}).
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

	for rows.Next() {
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		result[profile.ID] = profile
	}

	return result, nil
}

// Update updates a profile's editable fields
func (r *ProfileRepository) Update(ctx context.Context, profile *models.UserProfile) error {
	query := squirrel.Update("user_profiles").
		Set("display_name", profile.DisplayName).
		Set("nickname", profile.Nickname).
		Set("about_me", profile.AboutMe).
		Set("description", profile.Description).
		Set("major", profile.Major).
		Set("phone_number", profile.PhoneNumber).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", profile.ID).
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

// UpdateRole updates a profile's chapter role
func (r *ProfileRepository) UpdateRole(ctx context.Context, profileID int64, role models.RoleType) error {
	return r.setColumn(ctx, profileID, "role", role)
}

// UpdateAvatarKey stores the profile picture's object storage key
func (r *ProfileRepository) UpdateAvatarKey(ctx context.Context, profileID int64, key *string) error {
	return r.setColumn(ctx, profileID, "avatar_key", key)
}

// UpdateResumeKey stores the resume's object storage key
func (r *ProfileRepository) UpdateResumeKey(ctx context.Context, profileID int64, key *string) error {
	return r.setColumn(ctx, profileID, "resume_key", key)
}

// UpdateCanvas replaces the profile's canvas blob
func (r *ProfileRepository) UpdateCanvas(ctx context.Context, profileID int64, canvas *string) error {
	return r.setColumn(ctx, profileID, "canvas", canvas)
}

func (r *ProfileRepository) setColumn(ctx context.Context, profileID int64, column string, value any) error {
	query := squirrel.Update("user_profiles").
		Set(column, value).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", profileID).
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

// ListIDsByChapter retrieves every profile ID in a chapter+university pair
func (r *ProfileRepository) ListIDsByChapter(ctx context.Context, chapterID, universityID int64) ([]int64, error) {
	return r.listIDs(ctx, squirrel.Eq{"chapter_id": chapterID, "university_id": universityID})
}

// ListIDsByChapterRole retrieves profile IDs in a chapter+university pair holding a role
func (r *ProfileRepository) ListIDsByChapterRole(ctx context.Context, chapterID, universityID int64, role models.RoleType) ([]int64, error) {
	return r.listIDs(ctx, squirrel.Eq{"chapter_id": chapterID, "university_id": universityID, "role": role})
}

// ListAllIDs retrieves every profile ID system-wide
func (r *ProfileRepository) ListAllIDs(ctx context.Context) ([]int64, error) {
	return r.listIDs(ctx, nil)
}

func (r *ProfileRepository) listIDs(ctx context.Context, pred squirrel.Eq) ([]int64, error) {
	query := squirrel.Select("id").
		From("user_profiles").
		PlaceholderFormat(squirrel.Dollar)
	if pred != nil {
		query = query.Where(pred)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// GetIDsByDisplayNames resolves exact display names to profile IDs. Names with
// no match are dropped.
func (r *ProfileRepository) GetIDsByDisplayNames(ctx context.Context, names []string) ([]int64, error) {
	if len(names) == 0 {
		return nil, nil
	}

	query := squirrel.Select("id").
		From("user_profiles").
		Where(squirrel.Eq{"display_name": names}).
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

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		ids = append(ids, id)
	}

	return ids, nil
}

// SearchByName retrieves chapter profiles whose display name contains the fragment
func (r *ProfileRepository) SearchByName(ctx context.Context, chapterID int64, fragment string) ([]*models.UserProfile, error) {
	query := squirrel.Select(profileColumns...).
		From("user_profiles").
		Where("chapter_id = ?", chapterID).
		Where("display_name ILIKE ?", "%"+fragment+"%").
		OrderBy("display_name ASC").
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
		profile, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		profiles = append(profiles, profile)
	}

	return profiles, nil
}

// CreateLinkedin creates an empty work history record and returns its ID
func (r *ProfileRepository) CreateLinkedin(ctx context.Context, linkedin *models.Linkedin) (int64, error) {
	query := squirrel.Insert("linkedins").
		Columns("matriculate_year", "graduate_year", "honors", "public_profile_url").
		Values(linkedin.MatriculateYear, linkedin.GraduateYear, linkedin.Honors, linkedin.PublicProfileURL).
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

// GetLinkedin retrieves a work history record with its positions
func (r *ProfileRepository) GetLinkedin(ctx context.Context, id int64) (*models.Linkedin, error) {
	query := squirrel.Select("id", "matriculate_year", "graduate_year", "honors", "public_profile_url").
		From("linkedins").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var linkedin models.Linkedin
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&linkedin.ID,
		&linkedin.MatriculateYear,
		&linkedin.GraduateYear,
		&linkedin.Honors,
		&linkedin.PublicProfileURL,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	positions, err := r.listPositions(ctx, id)
	if err != nil {
		return nil, err
	}
	linkedin.Positions = positions

	return &linkedin, nil
}

// UpdateLinkedinYears sets the matriculate and graduate years
func (r *ProfileRepository) UpdateLinkedinYears(ctx context.Context, id int64, matriculateYear, graduateYear *int) error {
	query := squirrel.Update("linkedins").
		Set("matriculate_year", matriculateYear).
		Set("graduate_year", graduateYear).
		Where("id = ?", id).
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

// CreatePosition appends a work history entry and returns its ID
func (r *ProfileRepository) CreatePosition(ctx context.Context, position *models.Position) (int64, error) {
	query := squirrel.Insert("positions").
		Columns("linkedin_id", "title", "company", "summary", "current", "start_month", "start_year", "end_month", "end_year").
		Values(position.LinkedinID, position.Title, position.Company, position.Summary, position.Current,
			position.StartMonth, position.StartYear, position.EndMonth, position.EndYear).
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

// UpdatePosition updates a work history entry's title and company
func (r *ProfileRepository) UpdatePosition(ctx context.Context, id int64, title, company *string) error {
	query := squirrel.Update("positions").
		Set("title", title).
		Set("company", company).
		Where("id = ?", id).
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

func (r *ProfileRepository) listPositions(ctx context.Context, linkedinID int64) ([]*models.Position, error) {
	query := squirrel.Select("id", "linkedin_id", "title", "company", "summary", "current",
		"start_month", "start_year", "end_month", "end_year").
		From("positions").
		Where("linkedin_id = ?", linkedinID).
		OrderBy("id ASC").
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

	var positions []*models.Position
	for rows.Next() {
		var position models.Position
		err := rows.Scan(
			&position.ID,
			&position.LinkedinID,
			&position.Title,
			&position.Company,
			&position.Summary,
			&position.Current,
			&position.StartMonth,
			&position.StartYear,
			&position.EndMonth,
			&position.EndYear,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		positions = append(positions, &position)
	}

	return positions, nil
}
