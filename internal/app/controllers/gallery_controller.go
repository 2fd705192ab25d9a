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

// GalleryController handles chapter photo albums
type GalleryController struct {
	galleryService services.GalleryService
}

// NewGalleryController creates a new GalleryController
func NewGalleryController(galleryService services.GalleryService) *GalleryController {
	return &GalleryController{galleryService: galleryService}
}

// CreateAlbum handles POST /gallery/albums. The request is multipart: title
// and description as form fields, photos under the "photos" key.
func (c *GalleryController) CreateAlbum(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	var req dto.CreateAlbumRequest
	if err := ctx.ShouldBind(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	form, err := ctx.MultipartForm()
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid multipart form"))
		return
	}
	files := form.File["photos"]

	album, err := c.galleryService.CreateAlbum(ctx.Request.Context(), profile, &req, files)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(album, "Album created"))
}

// GetGallery handles GET /gallery
func (c *GalleryController) GetGallery(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	gallery, err := c.galleryService.GetGallery(ctx.Request.Context(), profile)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(gallery, "Gallery retrieved successfully"))
}

// GetAlbum handles GET /gallery/albums/:albumId
func (c *GalleryController) GetAlbum(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	albumID, err := parseIDParam(ctx, "albumId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	page := helpers.ParsePageParam(ctx)
	album, err := c.galleryService.GetAlbum(ctx.Request.Context(), profile, albumID, page)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(album, "Album retrieved successfully"))
}

// TagPhoto handles POST /gallery/photos/:photoId/tags
func (c *GalleryController) TagPhoto(ctx *gin.Context) {
	profile, ok := middleware.CurrentProfile(ctx)
	if !ok {
		middleware.HandleAPIError(ctx, apperrors.ErrPermissionDenied)
		return
	}

	photoID, err := parseIDParam(ctx, "photoId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.TagPhotoRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}

	if err := c.galleryService.TagPhoto(ctx.Request.Context(), profile, photoID, &req); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(nil, "Member tagged"))
}
