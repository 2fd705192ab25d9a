package services

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/cid2105/virtual-greek/internal/app/models"
	"github.com/cid2105/virtual-greek/internal/app/models/dto"
	"github.com/cid2105/virtual-greek/internal/app/repositories"
	"github.com/cid2105/virtual-greek/internal/pkg/apperrors"
	"github.com/cid2105/virtual-greek/internal/pkg/dberrors"
	"github.com/cid2105/virtual-greek/internal/pkg/helpers"
	"github.com/cid2105/virtual-greek/internal/pkg/profanity"
)

// conversationStore is the mailbox persistence surface. Pair-touching methods
// take a DBTX so one transaction can span both mirrored records.
type conversationStore interface {
	CreateMessage(ctx context.Context, q repositories.DBTX, message *models.Message) (int64, error)
	FindPair(ctx context.Context, q repositories.DBTX, ownerID, partnerID int64) (*models.Conversation, error)
	CreatePair(ctx context.Context, q repositories.DBTX, ownerID, partnerID int64) (int64, error)
	LinkMessage(ctx context.Context, q repositories.DBTX, conversationID, messageID int64) error
	Touch(ctx context.Context, q repositories.DBTX, conversationID int64, viewed bool) error
	GetByID(ctx context.Context, id int64) (*models.Conversation, error)
	MarkViewed(ctx context.Context, conversationID int64) error
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)
	ListByOwner(ctx context.Context, ownerID int64, offset uint64, limit int) ([]*models.Conversation, int64, error)
	CountMessages(ctx context.Context, conversationID int64) (int64, error)
	ListMessages(ctx context.Context, conversationID int64, offset uint64, limit int) ([]*models.Message, int64, error)
}

// mailboxProfileStore is the profile lookup surface the mailbox needs
type mailboxProfileStore interface {
	GetByID(ctx context.Context, id int64) (*models.UserProfile, error)
}

// MailboxService defines the interface for private messaging operations
type MailboxService interface {
	SendMessage(ctx context.Context, sender *models.UserProfile, req *dto.SendMessageRequest) error
	ListConversations(ctx context.Context, owner *models.UserProfile, page int) (*dto.ConversationListResponse, error)
	GetConversation(ctx context.Context, owner *models.UserProfile, conversationID int64, page int) (*dto.MessageListResponse, error)
	MarkRead(ctx context.Context, owner *models.UserProfile, conversationID int64) error
}

// mailboxServiceImpl implements MailboxService
type mailboxServiceImpl struct {
	conversations conversationStore
	profiles      mailboxProfileStore
	filter        *profanity.Filter
	tx            txRunner
	logger        zerolog.Logger
}

// NewMailboxService creates a new MailboxService
func NewMailboxService(
	conversations conversationStore,
	profiles mailboxProfileStore,
	filter *profanity.Filter,
	tx txRunner,
	logger zerolog.Logger,
) MailboxService {
	return &mailboxServiceImpl{
		conversations: conversations,
		profiles:      profiles,
		filter:        filter,
		tx:            tx,
		logger:        logger,
	}
}

// SendMessage creates a message and mirrors it into both participants'
// conversation records as one atomic unit. A concurrent send racing on pair
// creation surfaces as a unique violation and is retried once; any terminal
// failure rolls back every write and surfaces as a mailbox error.
func (s *mailboxServiceImpl) SendMessage(ctx context.Context, sender *models.UserProfile, req *dto.SendMessageRequest) error {
	if strings.TrimSpace(req.Message) == "" {
		return apperrors.NewValidationError("message cannot be empty")
	}
	if s.filter.ContainsBlockedWord(req.Message) {
		return apperrors.NewCustomError(apperrors.ErrBlockedContent, "message contains a blocked word")
	}
	if req.To == sender.ID {
		return apperrors.NewValidationError("cannot message yourself")
	}

	recipient, err := s.profiles.GetByID(ctx, req.To)
	if err != nil {
		return err
	}
	if recipient == nil {
		return apperrors.NewCustomError(apperrors.ErrProfileNotFound, "recipient not found")
	}

	err = s.deliver(ctx, sender.ID, recipient.ID, req.Message)
	if err != nil && dberrors.IsUniqueViolation(err) {
		s.logger.Warn().
			Int64("senderId", sender.ID).
			Int64("recipientId", recipient.ID).
			Msg("Conversation pair conflict, retrying delivery once")
		err = s.deliver(ctx, sender.ID, recipient.ID, req.Message)
	}
	if err != nil {
		return apperrors.NewMailboxError(err)
	}

	return nil
}

func (s *mailboxServiceImpl) deliver(ctx context.Context, senderID, recipientID int64, content string) error {
	return s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		message := &models.Message{
			AuthorID:     senderID,
			RecipientID:  &recipientID,
			Content:      content,
			AuthorViewed: true,
		}
		messageID, err := s.conversations.CreateMessage(ctx, tx, message)
		if err != nil {
			return err
		}

		outgoingID, err := s.findOrCreatePair(ctx, tx, senderID, recipientID)
		if err != nil {
			return err
		}
		incomingID, err := s.findOrCreatePair(ctx, tx, recipientID, senderID)
		if err != nil {
			return err
		}

		for _, conversationID := range []int64{outgoingID, incomingID} {
			if err := s.conversations.LinkMessage(ctx, tx, conversationID, messageID); err != nil {
				return err
			}
		}

		// The sender's side stays read; the recipient's side becomes unread.
		if err := s.conversations.Touch(ctx, tx, outgoingID, true); err != nil {
			return err
		}
		return s.conversations.Touch(ctx, tx, incomingID, false)
	})
}

func (s *mailboxServiceImpl) findOrCreatePair(ctx context.Context, tx pgx.Tx, ownerID, partnerID int64) (int64, error) {
	conversation, err := s.conversations.FindPair(ctx, tx, ownerID, partnerID)
	if err != nil {
		return 0, err
	}
	if conversation != nil {
		return conversation.ID, nil
	}
	return s.conversations.CreatePair(ctx, tx, ownerID, partnerID)
}

// ListConversations retrieves one page of the owner's inbox, most recently
// updated first
func (s *mailboxServiceImpl) ListConversations(ctx context.Context, owner *models.UserProfile, page int) (*dto.ConversationListResponse, error) {
	total, err := s.conversations.CountByOwner(ctx, owner.ID)
	if err != nil {
		return nil, err
	}

	page = helpers.ClampPage(page, total, helpers.ConversationPageSize)
	offset, limit := helpers.OffsetLimit(page, helpers.ConversationPageSize)

	conversations, total, err := s.conversations.ListByOwner(ctx, owner.ID, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.ConversationListResponse{
		Conversations: make([]dto.ConversationResponse, 0, len(conversations)),
		Pagination:    helpers.NewPaginationInfo(total, page, helpers.ConversationPageSize),
	}
	for _, conversation := range conversations {
		resp.Conversations = append(resp.Conversations, dto.ToConversationResponse(conversation))
	}

	return resp, nil
}

// GetConversation retrieves one page of a conversation's thread, oldest first.
// Only the owning side may read it.
func (s *mailboxServiceImpl) GetConversation(ctx context.Context, owner *models.UserProfile, conversationID int64, page int) (*dto.MessageListResponse, error) {
	conversation, err := s.getOwned(ctx, owner, conversationID)
	if err != nil {
		return nil, err
	}

	total, err := s.conversations.CountMessages(ctx, conversationID)
	if err != nil {
		return nil, err
	}

	page = helpers.ClampPage(page, total, helpers.MessagePageSize)
	offset, limit := helpers.OffsetLimit(page, helpers.MessagePageSize)

	messages, total, err := s.conversations.ListMessages(ctx, conversationID, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.MessageListResponse{
		Conversation: dto.ToConversationResponse(conversation),
		Messages:     make([]dto.MessageResponse, 0, len(messages)),
		Pagination:   helpers.NewPaginationInfo(total, page, helpers.MessagePageSize),
	}
	for _, message := range messages {
		resp.Messages = append(resp.Messages, dto.ToMessageResponse(message))
	}

	return resp, nil
}

// MarkRead sets the viewed flag on the reader's own conversation record only;
// the mirrored record is untouched
func (s *mailboxServiceImpl) MarkRead(ctx context.Context, owner *models.UserProfile, conversationID int64) error {
	if _, err := s.getOwned(ctx, owner, conversationID); err != nil {
		return err
	}
	return s.conversations.MarkViewed(ctx, conversationID)
}

func (s *mailboxServiceImpl) getOwned(ctx context.Context, owner *models.UserProfile, conversationID int64) (*models.Conversation, error) {
	conversation, err := s.conversations.GetByID(ctx, conversationID)
	if err != nil {
		return nil, err
	}
	if conversation == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrConversationNotFound, "conversation not found")
	}
	if conversation.OwnerProfileID != owner.ID {
		return nil, apperrors.NewForbiddenError("conversation belongs to another member")
	}
	return conversation, nil
}
