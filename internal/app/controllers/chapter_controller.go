package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/cid2105/virtual-greek/internal/app/models/dto"
	"github.com/cid2105/virtual-greek/internal/app/services"
	"github.com/cid2105/virtual-greek/internal/middleware"
	"github.com/cid2105/virtual-greek/internal/pkg/apperrors"
)

// ChapterController handles the chapter directory and board administration
type ChapterController struct {
	chapterService services.ChapterService
}

// NewChapterController creates a new ChapterController
func NewChapterController(chapterService services.ChapterService) *ChapterController {
	return &ChapterController{chapterService: chapterService}
}

// GetDirectory handles GET /chapter
func (c *ChapterController) GetDirectory(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	directory, err := c.chapterService.GetDirectory(ctx.Request.Context(), profile)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(directory, "Chapter retrieved successfully"))
}

// UpdateChapter handles PUT /chapter
func (c *ChapterController) UpdateChapter(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.UpdateChapterRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	if err := c.chapterService.UpdateChapter(ctx.Request.Context(), profile, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Chapter updated"))
}

// SetOfficer handles PUT /chapter/board
func (c *ChapterController) SetOfficer(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.SetOfficerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	if err := c.chapterService.SetOfficer(ctx.Request.Context(), profile, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Board updated"))
}

// SetMemberStatus handles PUT /chapter/members/:profileId/status
func (c *ChapterController) SetMemberStatus(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	profileID, err := parseIDParam(ctx, "profileId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	status := ctx.Query("status")
	if status == "" {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("missing status"))
		return
	}

	if err := c.chapterService.SetMemberStatus(ctx.Request.Context(), profile, profileID, status); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Member status updated"))
}
