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

// ConversationRepository handles database operations for messages and the
// mirrored one-sided conversation records. Methods touching the mirrored pair
// accept a DBTX so the mailbox service can span them with one transaction.
type ConversationRepository struct {
	db *pgxpool.Pool
}

// NewConversationRepository creates a new ConversationRepository
func NewConversationRepository(db *pgxpool.Pool) *ConversationRepository {
	return &ConversationRepository{db: db}
}

// CreateMessage creates a new message and returns its ID
func (r *ConversationRepository) CreateMessage(ctx context.Context, q DBTX, message *models.Message) (int64, error) {
	query := squirrel.Insert("messages").
		Columns("author_id", "recipient_id", "content", "author_viewed", "recipient_viewed").
		Values(message.AuthorID, message.RecipientID, message.Content, message.AuthorViewed, message.RecipientViewed).
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

// FindPair retrieves the conversation owned by one profile with another as partner
func (r *ConversationRepository) FindPair(ctx context.Context, q DBTX, ownerID, partnerID int64) (*models.Conversation, error) {
	query := squirrel.Select("id", "owner_profile_id", "partner_profile_id", "viewed", "created_at", "updated_at").
		From("conversations").
		Where("owner_profile_id = ?", ownerID).
		Where("partner_profile_id = ?", partnerID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var conversation models.Conversation
	err = q.QueryRow(ctx, sql, args...).Scan(
		&conversation.ID,
		&conversation.OwnerProfileID,
		&conversation.PartnerProfileID,
		&conversation.Viewed,
		&conversation.CreatedAt,
		&conversation.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	return &conversation, nil
}

// CreatePair creates one side of a conversation pair and returns its ID. The
// unique constraint on (owner, partner) surfaces concurrent creation as a
// unique violation for the caller to retry.
func (r *ConversationRepository) CreatePair(ctx context.Context, q DBTX, ownerID, partnerID int64) (int64, error) {
	query := squirrel.Insert("conversations").
		Columns("owner_profile_id", "partner_profile_id").
		Values(ownerID, partnerID).
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

// LinkMessage appends a message to one conversation's message set
func (r *ConversationRepository) LinkMessage(ctx context.Context, q DBTX, conversationID, messageID int64) error {
	query := squirrel.Insert("conversation_messages").
		Columns("conversation_id", "message_id").
		Values(conversationID, messageID).
		PlaceholderFormat(squirrel.Dollar)

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

// Touch refreshes a conversation's updated_at and sets its viewed flag
func (r *ConversationRepository) Touch(ctx context.Context, q DBTX, conversationID int64, viewed bool) error {
	query := squirrel.Update("conversations").
		Set("viewed", viewed).
		Set("updated_at", time.Now()).
		Where("id = ?", conversationID).
		PlaceholderFormat(squirrel.Dollar)

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

// GetByID retrieves a conversation with its partner profile
func (r *ConversationRepository) GetByID(ctx context.Context, id int64) (*models.Conversation, error) {
	query := squirrel.Select(
		"c.id", "c.owner_profile_id", "c.partner_profile_id", "c.viewed", "c.created_at", "c.updated_at",
		"p.id", "p.display_name", "p.avatar_key",
	).
		From("conversations c").
		Join("user_profiles p ON p.id = c.partner_profile_id").
		Where("c.id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var conversation models.Conversation
	var partner models.UserProfile
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&conversation.ID,
		&conversation.OwnerProfileID,
		&conversation.PartnerProfileID,
		&conversation.Viewed,
		&conversation.CreatedAt,
		&conversation.UpdatedAt,
		&partner.ID,
		&partner.DisplayName,
		&partner.AvatarKey,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	conversation.Partner = &partner

	return &conversation, nil
}

// MarkViewed sets the viewed flag on one side of a conversation pair only
func (r *ConversationRepository) MarkViewed(ctx context.Context, conversationID int64) error {
	query := squirrel.Update("conversations").
		Set("viewed", true).
		Where("id = ?", conversationID).
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

// CountByOwner counts a profile's conversations
func (r *ConversationRepository) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("conversations").
		Where("owner_profile_id = ?", ownerID).
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

// ListByOwner retrieves a profile's conversations most recently updated first,
// with partner, latest message and message count for inbox display
func (r *ConversationRepository) ListByOwner(ctx context.Context, ownerID int64, offset uint64, limit int) ([]*models.Conversation, int64, error) {
	latest := "(SELECT m.%s FROM conversation_messages cm JOIN messages m ON m.id = cm.message_id" +
		" WHERE cm.conversation_id = c.id ORDER BY m.created_at DESC, m.id DESC LIMIT 1)"

	query := squirrel.Select(
		"c.id", "c.owner_profile_id", "c.partner_profile_id", "c.viewed", "c.created_at", "c.updated_at",
		"p.id", "p.display_name", "p.avatar_key",
		fmt.Sprintf(latest, "content"),
		fmt.Sprintf(latest, "created_at"),
		"(SELECT COUNT(*) FROM conversation_messages cm WHERE cm.conversation_id = c.id)",
		"COUNT(*) OVER()",
	).
		From("conversations c").
		Join("user_profiles p ON p.id = c.partner_profile_id").
		Where("c.owner_profile_id = ?", ownerID).
		OrderBy("c.updated_at DESC", "c.id DESC").
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

	var conversations []*models.Conversation
	var total int64

	for rows.Next() {
		var conversation models.Conversation
		var partner models.UserProfile
		var latestContent *string
		var latestCreatedAt *time.Time
		err := rows.Scan(
			&conversation.ID,
			&conversation.OwnerProfileID,
			&conversation.PartnerProfileID,
			&conversation.Viewed,
			&conversation.CreatedAt,
			&conversation.UpdatedAt,
			&partner.ID,
			&partner.DisplayName,
			&partner.AvatarKey,
			&latestContent,
			&latestCreatedAt,
			&conversation.MessageCount,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		conversation.Partner = &partner
		if latestContent != nil && latestCreatedAt != nil {
			conversation.LatestMessage = &models.Message{
				Content:   *latestContent,
				CreatedAt: *latestCreatedAt,
			}
		}
		conversations = append(conversations, &conversation)
	}

	return conversations, total, nil
}

// CountMessages counts the messages in a conversation
func (r *ConversationRepository) CountMessages(ctx context.Context, conversationID int64) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("conversation_messages").
		Where("conversation_id = ?", conversationID).
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

// ListMessages retrieves a conversation's messages oldest first, with authors
func (r *ConversationRepository) ListMessages(ctx context.Context, conversationID int64, offset uint64, limit int) ([]*models.Message, int64, error) {
	query := squirrel.Select(
		"m.id", "m.author_id", "m.recipient_id", "m.content", "m.author_viewed", "m.recipient_viewed", "m.created_at",
		"p.id", "p.display_name", "p.avatar_key",
		"COUNT(*) OVER()",
	).
		From("conversation_messages cm").
		Join("messages m ON m.id = cm.message_id").
		Join("user_profiles p ON p.id = m.author_id").
		Where("cm.conversation_id = ?", conversationID).
		OrderBy("m.created_at ASC", "m.id ASC").
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

	var messages []*models.Message
	var total int64

	for rows.Next() {
		var message models.Message
		var author models.UserProfile
		err := rows.Scan(
			&message.ID,
			&message.AuthorID,
			&message.RecipientID,
			&message.Content,
			&message.AuthorViewed,
			&message.RecipientViewed,
			&message.CreatedAt,
			&author.ID,
			&author.DisplayName,
			&author.AvatarKey,
			&total,
		)
		if err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		message.Author = &author
		messages = append(messages, &message)
	}

	return messages, total, nil
}
