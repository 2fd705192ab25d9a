package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/cid2105/virtual-greek/internal/app/models"
)

// PhotoRepository handles database operations for photos and their tags
type PhotoRepository struct {
	db *pgxpool.Pool
}

// NewPhotoRepository creates a new PhotoRepository
func NewPhotoRepository(db *pgxpool.Pool) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// Create creates a new photo and returns its ID
func (r *PhotoRepository) Create(ctx context.Context, photo *models.Photo) (int64, error) {
	query := squirrel.Insert("photos").
		Columns("album_id", "caption", "storage_key").
		Values(photo.AlbumID, photo.Caption, photo.StorageKey).
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

// GetByID retrieves a photo by ID
func (r *PhotoRepository) GetByID(ctx context.Context, id int64) (*models.Photo, error) {
	query := squirrel.Select("id", "album_id", "caption", "storage_key", "created_at").
		From("photos").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var photo models.Photo
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&photo.ID,
		&photo.AlbumID,
		&photo.Caption,
		&photo.StorageKey,
		&photo.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &photo, nil
}

// CountByAlbum counts an album's photos
func (r *PhotoRepository) CountByAlbum(ctx context.Context, albumID int64) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("photos").
		Where("album_id = ?", albumID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return count, nil
}

// ListByAlbum retrieves an album's photos oldest first
func (r *PhotoRepository) ListByAlbum(ctx context.Context, albumID int64, offset uint64, limit int) ([]*models.Photo, int64, error) {
	query := squirrel.Select("id", "album_id", "caption", "storage_key", "created_at", "COUNT(*) OVER()").
		From("photos").
		Where("album_id = ?", albumID).
		OrderBy("created_at ASC", "id ASC").
		Offset(offset).
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var photos []*models.Photo
	var total int64

	for rows.Next() {
		var photo models.Photo
		err := rows.Scan(
			&photo.ID,
			&photo.AlbumID,
			&photo.Caption,
			&photo.StorageKey,
			&photo.CreatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		photos = append(photos, &photo)
	}

	return photos, total, nil
}

// TagProfile tags a member in a photo. Tagging twice has no effect.
func (r *PhotoRepository) TagProfile(ctx context.Context, photoID, profileID int64) error {
	query := squirrel.Insert("photo_tags").
		Columns("photo_id", "profile_id").
		Values(photoID, profileID).
		Suffix("ON CONFLICT DO NOTHING").
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

// ListTagged retrieves the profiles tagged in a photo
func (r *PhotoRepository) ListTagged(ctx context.Context, photoID int64) ([]*models.UserProfile, error) {
	query := squirrel.Select("p.id", "p.display_name", "p.avatar_key").
		From("photo_tags pt").
		Join("user_profiles p ON p.id = pt.profile_id").
		Where("pt.photo_id = ?", photoID).
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
		if err := rows.Scan(&profile.ID, &profile.DisplayName, &profile.AvatarKey); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		profiles = append(profiles, &profile)
	}

	return profiles, nil
}
