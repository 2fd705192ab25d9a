package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/cid2105/virtual-greek/internal/app/models"
)

// ReplyRepository handles database operations for topic replies and their
// praise/taze voter sets
type ReplyRepository struct {
	db *pgxpool.Pool
}

// NewReplyRepository creates a new ReplyRepository
func NewReplyRepository(db *pgxpool.Pool) *ReplyRepository {
	return &ReplyRepository{db: db}
}

// Create creates a new reply inside the given transaction and returns its ID
func (r *ReplyRepository) Create(ctx context.Context, q DBTX, reply *models.Reply) (int64, error) {
	query := squirrel.Insert("replies").
		Columns("topic_id", "author_id", "content").
		Values(reply.TopicID, reply.AuthorID, reply.Content).
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

// GetByID retrieves a reply by ID
func (r *ReplyRepository) GetByID(ctx context.Context, id int64) (*models.Reply, error) {
	query := squirrel.Select("id", "topic_id", "author_id", "content", "created_at").
		From("replies").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var reply models.Reply
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&reply.ID,
		&reply.TopicID,
		&reply.AuthorID,
		&reply.Content,
		&reply.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &reply, nil
}

// CountByTopic counts the replies in a topic
func (r *ReplyRepository) CountByTopic(ctx context.Context, topicID int64) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("replies").
		Where("topic_id = ?", topicID).
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

// ListByTopic retrieves a topic's replies oldest first, with author and vote counts
func (r *ReplyRepository) ListByTopic(ctx context.Context, topicID int64, offset uint64, limit int) ([]*models.Reply, int64, error) {
	query := squirrel.Select(
		"r.id", "r.topic_id", "r.author_id", "r.content", "r.created_at",
		"p.id", "p.display_name", "p.avatar_key",
		"(SELECT COUNT(*) FROM reply_praises rp WHERE rp.reply_id = r.id)",
		"(SELECT COUNT(*) FROM reply_tazes rt WHERE rt.reply_id = r.id)",
		"COUNT(*) OVER()",
	).
		From("replies r").
		Join("user_profiles p ON p.id = r.author_id").
		Where("r.topic_id = ?", topicID).
		OrderBy("r.created_at ASC", "r.id ASC").
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

	var replies []*models.Reply
	var total int64

	for rows.Next() {
		var reply models.Reply
		var author models.UserProfile
		err := rows.Scan(
			&reply.ID,
			&reply.TopicID,
			&reply.AuthorID,
			&reply.Content,
			&reply.CreatedAt,
			&author.ID,
			&author.DisplayName,
			&author.AvatarKey,
			&reply.PraiseCount,
			&reply.TazeCount,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		reply.Author = &author
		replies = append(replies, &reply)
	}

	return replies, total, nil
}

// Delete hard-deletes a reply and its voter sets
func (r *ReplyRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("replies").
		Where("id = ?", id).
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

// AddPraise adds a voter to a reply's praise set. Adding twice has no effect.
func (r *ReplyRepository) AddPraise(ctx context.Context, replyID, profileID int64) error {
	return r.addVote(ctx, "reply_praises", replyID, profileID)
}

// RemovePraise removes a voter from a reply's praise set
func (r *ReplyRepository) RemovePraise(ctx context.Context, replyID, profileID int64) error {
	return r.removeVote(ctx, "reply_praises", replyID, profileID)
}

// AddTaze adds a voter to a reply's taze set. Adding twice has no effect.
func (r *ReplyRepository) AddTaze(ctx context.Context, replyID, profileID int64) error {
	return r.addVote(ctx, "reply_tazes", replyID, profileID)
}

// RemoveTaze removes a voter from a reply's taze set
func (r *ReplyRepository) RemoveTaze(ctx context.Context, replyID, profileID int64) error {
	return r.removeVote(ctx, "reply_tazes", replyID, profileID)
}

func (r *ReplyRepository) addVote(ctx context.Context, table string, replyID, profileID int64) error {
	query := squirrel.Insert(table).
		Columns("reply_id", "profile_id").
		Values(replyID, profileID).
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

func (r *ReplyRepository) removeVote(ctx context.Context, table string, replyID, profileID int64) error {
	query := squirrel.Delete(table).
		Where("reply_id = ?", replyID).
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
