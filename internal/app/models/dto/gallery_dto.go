package dto

import (
	"time"

	"github.com/cid2105/virtual-greek/internal/app/models"
)

// CreateAlbumRequest carries the album form fields (photos arrive as multipart files)
type CreateAlbumRequest struct {
	Title       string `form:"title" binding:"required"`
	Description string `form:"description" binding:"required"`
}

// TagPhotoRequest tags a member in a photo
type TagPhotoRequest struct {
	ProfileID int64 `json:"profileId" binding:"required"`
}

// PhotoResponse represents a photo in gallery views
type PhotoResponse struct {
	ID        int64     `json:"id"`
	Caption   string    `json:"caption,omitempty"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"createdAt"`
}

// AlbumResponse represents an album in gallery views
type AlbumResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Public       bool      `json:"public"`
	ThumbnailURL string    `json:"thumbnailUrl,omitempty"`
	PhotoCount   int64     `json:"photoCount"`
	CreatedAt    time.Time `json:"createdAt"`
}

// GalleryResponse groups a chapter's albums by creation year
type GalleryResponse struct {
	AlbumsByYear map[int][]AlbumResponse `json:"albumsByYear"`
}

// AlbumDetailResponse is one album with a page of its photos
type AlbumDetailResponse struct {
	Album      AlbumResponse   `json:"album"`
	Photos     []PhotoResponse `json:"photos"`
	Pagination PaginationInfo  `json:"pagination"`
}

// ToPhotoResponse converts a photo model to its response form; url is resolved
// by the caller against object storage.
func ToPhotoResponse(p *models.Photo, url string) PhotoResponse {
	resp := PhotoResponse{ID: p.ID, URL: url, CreatedAt: p.CreatedAt}
	if p.Caption != nil {
		resp.Caption = *p.Caption
	}
	return resp
}

// ToAlbumResponse converts an album model to its response form
func ToAlbumResponse(a *models.Album, thumbnailURL string) AlbumResponse {
	resp := AlbumResponse{
		ID:           a.ID,
		Title:        a.Title,
		Public:       a.Public,
		ThumbnailURL: thumbnailURL,
		PhotoCount:   a.PhotoCount,
		CreatedAt:    a.CreatedAt,
	}
	if a.Description != nil {
		resp.Description = *a.Description
	}
	return resp
}
