package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/cid2105/virtual-greek/internal/app/models/dto"
	"github.com/cid2105/virtual-greek/internal/app/services"
	"github.com/cid2105/virtual-greek/internal/middleware"
	"github.com/cid2105/virtual-greek/internal/pkg/apperrors"
)

// ProfileController handles member profile operations
type ProfileController struct {
	profileService services.ProfileService
}

// NewProfileController creates a new ProfileController
func NewProfileController(profileService services.ProfileService) *ProfileController {
	return &ProfileController{profileService: profileService}
}

// GetProfile handles GET /profiles/:profileId
func (c *ProfileController) GetProfile(ctx *gin.Context) {
	if _, ok := middleware.CurrentProfile(ctx); !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	profileID, err := parseIDParam(ctx, "profileId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	profile, err := c.profileService.GetProfile(ctx.Request.Context(), profileID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(profile, "Profile retrieved successfully"))
}

// GetMyProfile handles GET /profiles/me
func (c *ProfileController) GetMyProfile(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	resp, err := c.profileService.GetProfile(ctx.Request.Context(), profile.ID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Profile retrieved successfully"))
}

// UpdateProfile handles PUT /profiles/me
func (c *ProfileController) UpdateProfile(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.UpdateProfileRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	resp, err := c.profileService.UpdateProfile(ctx.Request.Context(), profile, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Profile updated"))
}

// AddPosition handles POST /profiles/me/positions
func (c *ProfileController) AddPosition(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.AddPositionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	if err := c.profileService.AddPosition(ctx.Request.Context(), profile, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(nil, "Position added"))
}

// UpdatePosition handles PUT /profiles/me/positions
func (c *ProfileController) UpdatePosition(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.UpdatePositionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	if err := c.profileService.UpdatePosition(ctx.Request.Context(), profile, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Position updated"))
}

// SaveCanvas handles PUT /profiles/me/canvas
func (c *ProfileController) SaveCanvas(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.SaveCanvasRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	if err := c.profileService.SaveCanvas(ctx.Request.Context(), profile, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Canvas saved"))
}

// UploadAvatar handles POST /profiles/me/avatar
func (c *ProfileController) UploadAvatar(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("missing file"))
		return
	}

	resp, err := c.profileService.UploadAvatar(ctx.Request.Context(), profile, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Avatar updated"))
}

// UploadResume handles POST /profiles/me/resume
func (c *ProfileController) UploadResume(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("missing file"))
		return
	}

	resp, err := c.profileService.UploadResume(ctx.Request.Context(), profile, file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(resp, "Resume updated"))
}

// LookupMembers handles GET /profiles/lookup?q=fragment
func (c *ProfileController) LookupMembers(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	matches, err := c.profileService.LookupMembers(ctx.Request.Context(), profile, ctx.Query("q"))
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(matches, "Members retrieved successfully"))
}
