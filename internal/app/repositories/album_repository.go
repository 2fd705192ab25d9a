package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/cid2105/virtual-greek/internal/app/models"
)

// AlbumRepository handles database operations for photo albums
type AlbumRepository struct {
	db *pgxpool.Pool
}

// NewAlbumRepository creates a new AlbumRepository
func NewAlbumRepository(db *pgxpool.Pool) *AlbumRepository {
	return &AlbumRepository{db: db}
}

// Create creates a new album and returns its ID
func (r *AlbumRepository) Create(ctx context.Context, album *models.Album) (int64, error) {
	query := squirrel.Insert("albums").
		Columns("chapter_id", "title", "description", "public").
		Values(album.ChapterID, album.Title, album.Description, album.Public).
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

// GetByID retrieves an album by ID
func (r *AlbumRepository) GetByID(ctx context.Context, id int64) (*models.Album, error) {
	query := squirrel.Select("id", "chapter_id", "title", "description", "public", "thumbnail_photo_id", "created_at", "updated_at").
		From("albums").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var album models.Album
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&album.ID,
		&album.ChapterID,
		&album.Title,
		&album.Description,
		&album.Public,
		&album.ThumbnailPhotoID,
		&album.CreatedAt,
		&album.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &album, nil
}

// SetThumbnail assigns the album's thumbnail photo
func (r *AlbumRepository) SetThumbnail(ctx context.Context, albumID, photoID int64) error {
	query := squirrel.Update("albums").
		Set("thumbnail_photo_id", photoID).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where("id = ?", albumID).
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

// ListByChapter retrieves a chapter's albums newest first, with photo counts
// and thumbnail storage keys
func (r *AlbumRepository) ListByChapter(ctx context.Context, chapterID int64) ([]*models.Album, error) {
	query := squirrel.Select(
		"a.id", "a.chapter_id", "a.title", "a.description", "a.public", "a.thumbnail_photo_id", "a.created_at", "a.updated_at",
		"(SELECT COUNT(*) FROM photos ph WHERE ph.album_id = a.id)",
		"(SELECT ph.storage_key FROM photos ph WHERE ph.id = a.thumbnail_photo_id)",
	).
		From("albums a").
		Where("a.chapter_id = ?", chapterID).
		OrderBy("a.created_at DESC", "a.id DESC").
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

	var albums []*models.Album
	for rows.Next() {
		var album models.Album
		var thumbnailKey *string
		err := rows.Scan(
			&album.ID,
			&album.ChapterID,
			&album.Title,
			&album.Description,
			&album.Public,
			&album.ThumbnailPhotoID,
			&album.CreatedAt,
			&album.UpdatedAt,
			&album.PhotoCount,
			&thumbnailKey,
		)
		if err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		if album.ThumbnailPhotoID != nil && thumbnailKey != nil {
			album.Thumbnail = &models.Photo{
				ID:         *album.ThumbnailPhotoID,
				AlbumID:    album.ID,
				StorageKey: *thumbnailKey,
			}
		}
		albums = append(albums, &album)
	}

	return albums, nil
}
