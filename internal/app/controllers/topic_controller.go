package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/cid2105/virtual-greek/internal/app/models/dto"
	"github.com/cid2105/virtual-greek/internal/app/services"
	"github.com/cid2105/virtual-greek/internal/middleware"
	"github.com/cid2105/virtual-greek/internal/pkg/apperrors"
	"github.com/cid2105/virtual-greek/internal/pkg/helpers"
)

// TopicController handles discussion topics, replies and votes
type TopicController struct {
	discussionService services.DiscussionService
}

// NewTopicController creates a new TopicController
func NewTopicController(discussionService services.DiscussionService) *TopicController {
	return &TopicController{discussionService: discussionService}
}

// parseIDParam reads a numeric path parameter
func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil {
		return 0, apperrors.NewValidationError("invalid " + name)
	}
	return id, nil
}

// CreateTopic handles POST /topics
func (c *TopicController) CreateTopic(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.CreateTopicRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	topic, err := c.discussionService.CreateTopic(ctx.Request.Context(), profile, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(topic, "Topic created"))
}

// ListTopics handles GET /topics
func (c *TopicController) ListTopics(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	page := helpers.ParsePageParam(ctx)
	topics, err := c.discussionService.ListTopics(ctx.Request.Context(), profile, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(topics, "Topics retrieved successfully"))
}

// GetTopicReplies handles GET /topics/:topicId/replies
func (c *TopicController) GetTopicReplies(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	topicID, err := parseIDParam(ctx, "topicId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	page := helpers.ParsePageParam(ctx)
	replies, err := c.discussionService.GetTopicReplies(ctx.Request.Context(), profile, topicID, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(replies, "Replies retrieved successfully"))
}

// Reply handles POST /topics/:topicId/replies
func (c *TopicController) Reply(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	topicID, err := parseIDParam(ctx, "topicId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.CreateReplyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	reply, err := c.discussionService.Reply(ctx.Request.Context(), profile, topicID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(reply, "Reply posted"))
}

// Vote handles POST /replies/vote
func (c *TopicController) Vote(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.VoteRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	if err := c.discussionService.Vote(ctx.Request.Context(), profile, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Vote recorded"))
}

// DeleteReply handles DELETE /replies/:replyId
func (c *TopicController) DeleteReply(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	replyID, err := parseIDParam(ctx, "replyId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.discussionService.DeleteReply(ctx.Request.Context(), profile, replyID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Reply deleted"))
}
