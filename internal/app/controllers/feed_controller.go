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

// FeedController handles the chapter home feed and bulletin
type FeedController struct {
	feedService services.FeedService
}

// NewFeedController creates a new FeedController
func NewFeedController(feedService services.FeedService) *FeedController {
	return &FeedController{feedService: feedService}
}

// GetFeed handles GET /feed/:university/:organization
func (c *FeedController) GetFeed(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	page := helpers.ParsePageParam(ctx)
	feed, err := c.feedService.GetFeedContext(
		ctx.Request.Context(),
		ctx.Param("university"),
		ctx.Param("organization"),
		profile,
		page,
	)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(feed, "Feed retrieved successfully"))
}

// CreateAnnouncement handles POST /announcements
func (c *FeedController) CreateAnnouncement(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.CreateAnnouncementRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	announcement, err := c.feedService.CreateAnnouncement(ctx.Request.Context(), profile, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(announcement, "Announcement posted"))
}

// GetHashtags handles GET /announcements/hashtags
func (c *FeedController) GetHashtags(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(c.feedService.HashtagVocabulary(), "Hashtags retrieved successfully"))
}
