package services

import (
	"context"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/cid2105/virtual-greek/internal/app/models"
	"github.com/cid2105/virtual-greek/internal/app/models/dto"
	"github.com/cid2105/virtual-greek/internal/app/repositories"
	"github.com/cid2105/virtual-greek/internal/db"
	"github.com/cid2105/virtual-greek/internal/pkg/apperrors"
	"github.com/cid2105/virtual-greek/internal/pkg/helpers"
	"github.com/cid2105/virtual-greek/internal/pkg/profanity"
)

// txRunner runs a unit of work inside one database transaction
type txRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// topicStore is the topic persistence surface the discussion engine needs
type topicStore interface {
	Create(ctx context.Context, q repositories.DBTX, topic *models.Topic) (int64, error)
	AddAudience(ctx context.Context, q repositories.DBTX, topicID int64, profileIDs []int64) error
	IsInAudience(ctx context.Context, topicID, profileID int64) (bool, error)
	GetByID(ctx context.Context, id int64) (*models.Topic, error)
	CountVisibleTo(ctx context.Context, profileID int64) (int64, error)
	ListVisibleTo(ctx context.Context, profileID int64, offset uint64, limit int) ([]*models.Topic, int64, error)
}

// replyStore is the reply persistence surface the discussion engine needs
type replyStore interface {
	Create(ctx context.Context, q repositories.DBTX, reply *models.Reply) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Reply, error)
	CountByTopic(ctx context.Context, topicID int64) (int64, error)
	ListByTopic(ctx context.Context, topicID int64, offset uint64, limit int) ([]*models.Reply, int64, error)
	Delete(ctx context.Context, id int64) error
	AddPraise(ctx context.Context, replyID, profileID int64) error
	RemovePraise(ctx context.Context, replyID, profileID int64) error
	AddTaze(ctx context.Context, replyID, profileID int64) error
	RemoveTaze(ctx context.Context, replyID, profileID int64) error
}

// chapterStore is the chapter lookup surface shared by several services
type chapterStore interface {
	GetByID(ctx context.Context, id int64) (*models.Chapter, error)
}

// organizationStore is the organization lookup surface shared by several services
type organizationStore interface {
	GetByID(ctx context.Context, id int64) (*models.Organization, error)
}

// DiscussionService defines the interface for topic and reply operations
type DiscussionService interface {
	CreateTopic(ctx context.Context, author *models.UserProfile, req *dto.CreateTopicRequest) (*dto.TopicResponse, error)
	ListTopics(ctx context.Context, viewer *models.UserProfile, page int) (*dto.TopicListResponse, error)
	GetTopicReplies(ctx context.Context, viewer *models.UserProfile, topicID int64, page int) (*dto.ReplyListResponse, error)
	Reply(ctx context.Context, author *models.UserProfile, topicID int64, req *dto.CreateReplyRequest) (*dto.ReplyResponse, error)
	Vote(ctx context.Context, voter *models.UserProfile, req *dto.VoteRequest) error
	DeleteReply(ctx context.Context, requester *models.UserProfile, replyID int64) error
}

// discussionServiceImpl implements DiscussionService
type discussionServiceImpl struct {
	topics        topicStore
	replies       replyStore
	chapters      chapterStore
	organizations organizationStore
	audience      AudienceService
	filter        *profanity.Filter
	tx            txRunner
	logger        zerolog.Logger
}

// NewDiscussionService creates a new DiscussionService
func NewDiscussionService(
	topics topicStore,
	replies replyStore,
	chapters chapterStore,
	organizations organizationStore,
	audience AudienceService,
	filter *profanity.Filter,
	tx txRunner,
	logger zerolog.Logger,
) DiscussionService {
	return &discussionServiceImpl{
		topics:        topics,
		replies:       replies,
		chapters:      chapters,
		organizations: organizations,
		audience:      audience,
		filter:        filter,
		tx:            tx,
		logger:        logger,
	}
}

// CreateTopic creates a topic with its audience snapshot. The topic body is
// stored as the topic's first reply, authored by the same member.
func (s *discussionServiceImpl) CreateTopic(ctx context.Context, author *models.UserProfile, req *dto.CreateTopicRequest) (*dto.TopicResponse, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, apperrors.NewValidationError("topic title cannot be empty")
	}
	if s.filter.ContainsBlockedWord(title) || s.filter.ContainsBlockedWord(req.Body) {
		return nil, apperrors.NewCustomError(apperrors.ErrBlockedContent, "topic contains a blocked word")
	}
	if author.ChapterID == nil || author.UniversityID == nil {
		return nil, apperrors.NewValidationError("profile does not belong to a chapter")
	}

	chapter, err := s.chapters.GetByID(ctx, *author.ChapterID)
	if err != nil {
		return nil, err
	}
	if chapter == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrChapterNotFound, "chapter not found")
	}
	organization, err := s.organizations.GetByID(ctx, chapter.OrganizationID)
	if err != nil {
		return nil, err
	}
	if organization == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrOrganizationNotFound, "organization not found")
	}

	selector := ParseAudienceSelector(req.Privacy, organization.Type)
	audienceIDs, err := s.audience.Resolve(ctx, selector, author)
	if err != nil {
		return nil, err
	}

	topic := &models.Topic{
		AuthorID:     author.ID,
		ChapterID:    author.ChapterID,
		UniversityID: author.UniversityID,
		Title:        title,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		topicID, err := s.topics.Create(ctx, tx, topic)
		if err != nil {
			return err
		}
		topic.ID = topicID

		first := &models.Reply{
			TopicID:  topicID,
			AuthorID: author.ID,
			Content:  req.Body,
		}
		if _, err := s.replies.Create(ctx, tx, first); err != nil {
			return err
		}

		return s.topics.AddAudience(ctx, tx, topicID, audienceIDs)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info().
		Int64("topicId", topic.ID).
		Int64("authorId", author.ID).
		Int("audienceSize", len(audienceIDs)).
		Msg("Topic created")

	topic.Author = author
	resp := dto.ToTopicResponse(topic)
	return &resp, nil
}

// ListTopics retrieves the page of topics visible to the viewer, newest first
func (s *discussionServiceImpl) ListTopics(ctx context.Context, viewer *models.UserProfile, page int) (*dto.TopicListResponse, error) {
	total, err := s.topics.CountVisibleTo(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}

	page = helpers.ClampPage(page, total, helpers.TopicPageSize)
	offset, limit := helpers.OffsetLimit(page, helpers.TopicPageSize)

	topics, total, err := s.topics.ListVisibleTo(ctx, viewer.ID, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.TopicListResponse{
		Topics:     make([]dto.TopicResponse, 0, len(topics)),
		Pagination: helpers.NewPaginationInfo(total, page, helpers.TopicPageSize),
	}
	for _, topic := range topics {
		resp.Topics = append(resp.Topics, dto.ToTopicResponse(topic))
	}

	return resp, nil
}

// GetTopicReplies retrieves one page of a topic's replies, oldest first. The
// viewer must belong to the topic's audience.
func (s *discussionServiceImpl) GetTopicReplies(ctx context.Context, viewer *models.UserProfile, topicID int64, page int) (*dto.ReplyListResponse, error) {
	topic, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrTopicNotFound, "topic not found")
	}

	visible, err := s.topics.IsInAudience(ctx, topicID, viewer.ID)
	if err != nil {
		return nil, err
	}
	if !visible {
		return nil, apperrors.NewForbiddenError("you are not in this topic's audience")
	}

	total, err := s.replies.CountByTopic(ctx, topicID)
	if err != nil {
		return nil, err
	}

	page = helpers.ClampPage(page, total, helpers.ReplyPageSize)
	offset, limit := helpers.OffsetLimit(page, helpers.ReplyPageSize)

	replies, total, err := s.replies.ListByTopic(ctx, topicID, offset, limit)
	if err != nil {
		return nil, err
	}

	resp := &dto.ReplyListResponse{
		Topic:      dto.ToTopicResponse(topic),
		Replies:    make([]dto.ReplyResponse, 0, len(replies)),
		Pagination: helpers.NewPaginationInfo(total, page, helpers.ReplyPageSize),
	}
	for _, reply := range replies {
		resp.Replies = append(resp.Replies, dto.ToReplyResponse(reply))
	}

	return resp, nil
}

// Reply appends a reply to a topic. The author must belong to the topic's
// audience snapshot; the topic's own timestamp is left untouched.
func (s *discussionServiceImpl) Reply(ctx context.Context, author *models.UserProfile, topicID int64, req *dto.CreateReplyRequest) (*dto.ReplyResponse, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperrors.NewValidationError("reply cannot be empty")
	}
	if s.filter.ContainsBlockedWord(req.Content) {
		return nil, apperrors.NewCustomError(apperrors.ErrBlockedContent, "reply contains a blocked word")
	}

	topic, err := s.topics.GetByID(ctx, topicID)
	if err != nil {
		return nil, err
	}
	if topic == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrTopicNotFound, "topic not found")
	}

	allowed, err := s.topics.IsInAudience(ctx, topicID, author.ID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperrors.NewForbiddenError("you are not in this topic's audience")
	}

	reply := &models.Reply{
		TopicID:  topicID,
		AuthorID: author.ID,
		Content:  req.Content,
	}

	err = s.tx.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		id, err := s.replies.Create(ctx, tx, reply)
		if err != nil {
			return err
		}
		reply.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}

	reply.Author = author
	resp := dto.ToReplyResponse(reply)
	return &resp, nil
}

// Vote applies a praise/taze action on a reply. Praising removes any existing
// taze by the same voter and vice versa; repeating a vote has no effect.
func (s *discussionServiceImpl) Vote(ctx context.Context, voter *models.UserProfile, req *dto.VoteRequest) error {
	kind, ok := models.ParseVoteKind(req.Type)
	if !ok {
		return apperrors.NewValidationError("unknown vote type")
	}

	reply, err := s.replies.GetByID(ctx, req.ReplyID)
	if err != nil {
		return err
	}
	if reply == nil {
		return apperrors.NewCustomError(apperrors.ErrReplyNotFound, "reply not found")
	}

	allowed, err := s.topics.IsInAudience(ctx, reply.TopicID, voter.ID)
	if err != nil {
		return err
	}
	if !allowed {
		return apperrors.NewForbiddenError("you are not in this topic's audience")
	}

	switch kind {
	case models.VotePraise:
		if err := s.replies.AddPraise(ctx, reply.ID, voter.ID); err != nil {
			return err
		}
		return s.replies.RemoveTaze(ctx, reply.ID, voter.ID)
	case models.VoteUnpraise:
		return s.replies.RemovePraise(ctx, reply.ID, voter.ID)
	case models.VoteTaze:
		if err := s.replies.AddTaze(ctx, reply.ID, voter.ID); err != nil {
			return err
		}
		return s.replies.RemovePraise(ctx, reply.ID, voter.ID)
	case models.VoteUntaze:
		return s.replies.RemoveTaze(ctx, reply.ID, voter.ID)
	}

	return nil
}

// DeleteReply hard-deletes a reply. Only the reply's author or a chapter board
// member may delete it.
func (s *discussionServiceImpl) DeleteReply(ctx context.Context, requester *models.UserProfile, replyID int64) error {
	reply, err := s.replies.GetByID(ctx, replyID)
	if err != nil {
		return err
	}
	if reply == nil {
		return apperrors.NewCustomError(apperrors.ErrReplyNotFound, "reply not found")
	}

	if reply.AuthorID != requester.ID {
		admin, err := s.isChapterAdmin(ctx, requester)
		if err != nil {
			return err
		}
		if !admin {
			return apperrors.NewForbiddenError("only the author or a board member can delete a reply")
		}
	}

	if err := s.replies.Delete(ctx, replyID); err != nil {
		return err
	}

	s.logger.Info().
		Int64("replyId", replyID).
		Int64("requesterId", requester.ID).
		Msg("Reply deleted")

	return nil
}

func (s *discussionServiceImpl) isChapterAdmin(ctx context.Context, profile *models.UserProfile) (bool, error) {
	if profile.ChapterID == nil {
		return false, nil
	}
	chapter, err := s.chapters.GetByID(ctx, *profile.ChapterID)
	if err != nil {
		return false, err
	}
	if chapter == nil {
		return false, nil
	}
	return chapter.IsOfficer(profile.ID), nil
}
