package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/cid2105/virtual-greek/internal/app/models"
)

// AnnouncementRepository handles database operations for chapter announcements
type AnnouncementRepository struct {
	db *pgxpool.Pool
}

// NewAnnouncementRepository creates a new AnnouncementRepository
func NewAnnouncementRepository(db *pgxpool.Pool) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// Create creates a new announcement and returns its ID
func (r *AnnouncementRepository) Create(ctx context.Context, announcement *models.Announcement) (int64, error) {
	query := squirrel.Insert("announcements").
		Columns("author_id", "university_id", "chapter_id", "content", "hashtag").
		Values(announcement.AuthorID, announcement.UniversityID, announcement.ChapterID, announcement.Content, announcement.Hashtag).
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

// CountByChapter counts a chapter's announcements
func (r *AnnouncementRepository) CountByChapter(ctx context.Context, universityID, chapterID int64) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("announcements").
		Where("university_id = ?", universityID).
		Where("chapter_id = ?", chapterID).
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

// ListByChapter retrieves a chapter's announcements newest first, with authors
func (r *AnnouncementRepository) ListByChapter(ctx context.Context, universityID, chapterID int64, offset uint64, limit int) ([]*models.Announcement, int64, error) {
	query := squirrel.Select(
		"a.id", "a.author_id", "a.university_id", "a.chapter_id", "a.content", "a.hashtag", "a.created_at",
		"p.id", "p.display_name", "p.avatar_key",
		"COUNT(*) OVER()",
	).
		From("announcements a").
		Join("user_profiles p ON p.id = a.author_id").
		Where("a.university_id = ?", universityID).
		Where("a.chapter_id = ?", chapterID).
		OrderBy("a.created_at DESC", "a.id DESC").
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

	var announcements []*models.Announcement
	var total int64

	for rows.Next() {
		var announcement models.Announcement
		var author models.UserProfile
		err := rows.Scan(
			&announcement.ID,
			&announcement.AuthorID,
			&announcement.UniversityID,
			&announcement.ChapterID,
			&announcement.Content,
			&announcement.Hashtag,
			&announcement.CreatedAt,
			&author.ID,
			&author.DisplayName,
			&author.AvatarKey,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		announcement.Author = &author
		announcements = append(announcements, &announcement)
	}

	return announcements, total, nil
}
