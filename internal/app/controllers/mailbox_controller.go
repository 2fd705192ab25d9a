package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/cid2105/virtual-greek/internal/app/models/dto"
	"github.com/cid2105/virtual-greek/internal/app/services"
	"github.com/cid2105/virtual-greek/internal/middleware"
	"github.com/cid2105/virtual-greek/internal/pkg/apperrors"
	"github.com/cid2105/virtual-greek/internal/pkg/helpers"
)

// MailboxController handles private messaging between members
type MailboxController struct {
	mailboxService services.MailboxService
}

// NewMailboxController creates a new MailboxController
func NewMailboxController(mailboxService services.MailboxService) *MailboxController {
	return &MailboxController{mailboxService: mailboxService}
}

// SendMessage handles POST /mailbox/messages
func (c *MailboxController) SendMessage(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.SendMessageRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	if err := c.mailboxService.SendMessage(ctx.Request.Context(), profile, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(nil, "Message sent"))
}

// ListConversations handles GET /mailbox/conversations
func (c *MailboxController) ListConversations(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	page := helpers.ParsePageParam(ctx)
	conversations, err := c.mailboxService.ListConversations(ctx.Request.Context(), profile, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(conversations, "Conversations retrieved successfully"))
}

// GetConversation handles GET /mailbox/conversations/:conversationId
func (c *MailboxController) GetConversation(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	conversationID, err := parseIDParam(ctx, "conversationId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	page := helpers.ParsePageParam(ctx)
	messages, err := c.mailboxService.GetConversation(ctx.Request.Context(), profile, conversationID, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(messages, "Messages retrieved successfully"))
}

// MarkRead handles POST /mailbox/conversations/:conversationId/read
func (c *MailboxController) MarkRead(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	conversationID, err := parseIDParam(ctx, "conversationId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.mailboxService.MarkRead(ctx.Request.Context(), profile, conversationID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Conversation marked as read"))
}
