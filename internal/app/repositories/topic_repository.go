package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/cid2105/virtual-greek/internal/app/models"
)

// TopicRepository handles database operations for discussion topics and their
// audience snapshots
type TopicRepository struct {
	db *pgxpool.Pool
}

// NewTopicRepository creates a new TopicRepository
func NewTopicRepository(db *pgxpool.Pool) *TopicRepository {
	return &TopicRepository{db: db}
}

// Create creates a new topic inside the given transaction and returns its ID
func (r *TopicRepository) Create(ctx context.Context, q DBTX, topic *models.Topic) (int64, error) {
	query := squirrel.Insert("topics").
		Columns("author_id", "chapter_id", "university_id", "title").
		Values(topic.AuthorID, topic.ChapterID, topic.UniversityID, topic.Title).
		Suffix("RETURNING id").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var id int64
	err = q.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error executing query: %w", err)
	}

	return id, nil
}

// AddAudience attaches the resolved profile set to a topic. The snapshot is
// written once at creation and never recomputed.
func (r *TopicRepository) AddAudience(ctx context.Context, q DBTX, topicID int64, profileIDs []int64) error {
	if len(profileIDs) == 0 {
		return nil
	}

	query := squirrel.Insert("topic_audience").
		Columns("topic_id", "profile_id").
		PlaceholderFormat(squirrel.Dollar)
	for _, profileID := range profileIDs {
		query = query.Values(topicID, profileID)
	}
	query = query.Suffix("ON CONFLICT DO NOTHING")

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	_, err = q.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}

	return nil
}

// IsInAudience checks whether a profile belongs to a topic's audience snapshot
func (r *TopicRepository) IsInAudience(ctx context.Context, topicID, profileID int64) (bool, error) {
	query := squirrel.Select("COUNT(*)").
		From("topic_audience").
		Where("topic_id = ?", topicID).
		Where("profile_id = ?", profileID).
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

// GetByID retrieves a topic with its author
func (r *TopicRepository) GetByID(ctx context.Context, id int64) (*models.Topic, error) {
	query := squirrel.Select(
		"t.id", "t.author_id", "t.chapter_id", "t.university_id", "t.title", "t.created_at",
		"p.id", "p.display_name", "p.avatar_key",
	).
		From("topics t").
		Join("user_profiles p ON p.id = t.author_id").
		Where("t.id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var topic models.Topic
	var author models.UserProfile
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&topic.ID,
		&topic.AuthorID,
		&topic.ChapterID,
		&topic.UniversityID,
		&topic.Title,
		&topic.CreatedAt,
		&author.ID,
		&author.DisplayName,
		&author.AvatarKey,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	topic.Author = &author

	return &topic, nil
}

// CountVisibleTo counts the topics whose audience snapshot includes the profile
func (r *TopicRepository) CountVisibleTo(ctx context.Context, profileID int64) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("topic_audience").
		Where("profile_id = ?", profileID).
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

// ListVisibleTo retrieves the topics visible to a profile, newest first, with
// author, reply count and the latest reply for list display
func (r *TopicRepository) ListVisibleTo(ctx context.Context, profileID int64, offset uint64, limit int) ([]*models.Topic, int64, error) {
	query := squirrel.Select(
		"t.id", "t.author_id", "t.chapter_id", "t.university_id", "t.title", "t.created_at",
		"p.id", "p.display_name", "p.avatar_key",
		"(SELECT COUNT(*) FROM replies r WHERE r.topic_id = t.id)",
		"(SELECT r.content FROM replies r WHERE r.topic_id = t.id ORDER BY r.created_at DESC, r.id DESC LIMIT 1)",
		"(SELECT r.created_at FROM replies r WHERE r.topic_id = t.id ORDER BY r.created_at DESC, r.id DESC LIMIT 1)",
		"COUNT(*) OVER()",
	).
		From("topics t").
		Join("topic_audience ta ON ta.topic_id = t.id").
		Join("user_profiles p ON p.id = t.author_id").
		Where("ta.profile_id = ?", profileID).
		OrderBy("t.created_at DESC", "t.id DESC").
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

	var topics []*models.Topic
	var total int64

	for rows.Next() {
		var topic models.Topic
		var author models.UserProfile
		var lastReply models.Reply
		var lastContent *string
		var lastCreatedAt *time.Time
		err := rows.Scan(
			&topic.ID,
			&topic.AuthorID,
			&topic.ChapterID,
			&topic.UniversityID,
			&topic.Title,
			&topic.CreatedAt,
			&author.ID,
			&author.DisplayName,
			&author.AvatarKey,
			&topic.ReplyCount,
			&lastContent,
			&lastCreatedAt,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		topic.Author = &author
		if lastContent != nil && lastCreatedAt != nil {
			lastReply.TopicID = topic.ID
			lastReply.Content = *lastContent
			lastReply.CreatedAt = *lastCreatedAt
			topic.LastReply = &lastReply
		}
		topics = append(topics, &topic)
	}

	return topics, total, nil
}
