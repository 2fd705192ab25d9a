package services

import (
	"context"
	"mime/multipart"

	"github.com/rs/zerolog"
	"github.com/cid2105/virtual-greek/internal/app/models"
	"github.com/cid2105/virtual-greek/internal/app/models/dto"
	"github.com/cid2105/virtual-greek/internal/pkg/apperrors"
	"github.com/cid2105/virtual-greek/internal/pkg/filestorage"
	"github.com/cid2105/virtual-greek/internal/pkg/helpers"
)

// albumStore is the album persistence surface
type albumStore interface {
	Create(ctx context.Context, album *models.Album) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Album, error)
	SetThumbnail(ctx context.Context, albumID, photoID int64) error
	ListByChapter(ctx context.Context, chapterID int64) ([]*models.Album, error)
}

// photoStore is the photo persistence surface
type photoStore interface {
	Create(ctx context.Context, photo *models.Photo) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Photo, error)
	CountByAlbum(ctx context.Context, albumID int64) (int64, error)
	ListByAlbum(ctx context.Context, albumID int64, offset uint64, limit int) ([]*models.Photo, int64, error)
	TagProfile(ctx context.Context, photoID, profileID int64) error
}

// GalleryService defines the interface for album and photo operations
type GalleryService interface {
	CreateAlbum(ctx context.Context, actor *models.UserProfile, req *dto.CreateAlbumRequest, files []*multipart.FileHeader) (*dto.AlbumResponse, error)
	GetGallery(ctx context.Context, actor *models.UserProfile) (*dto.GalleryResponse, error)
	GetAlbum(ctx context.Context, actor *models.UserProfile, albumID int64, page int) (*dto.AlbumDetailResponse, error)
	TagPhoto(ctx context.Context, actor *models.UserProfile, photoID int64, req *dto.TagPhotoRequest) error
}

// galleryServiceImpl implements GalleryService
type galleryServiceImpl struct {
	albums  albumStore
	photos  photoStore
	storage filestorage.ObjectStorage
	logger  zerolog.Logger
}

// NewGalleryService creates a new GalleryService
func NewGalleryService(albums albumStore, photos photoStore, storage filestorage.ObjectStorage, logger zerolog.Logger) GalleryService {
	return &galleryServiceImpl{
		albums:  albums,
		photos:  photos,
		storage: storage,
		logger:  logger,
	}
}

// CreateAlbum creates an album and uploads its photos. The upload is not
// atomic: a blob that lands in storage before a later failure is logged as a
// recoverable orphan rather than rolled back. The first photo becomes the
// album thumbnail.
func (s *galleryServiceImpl) CreateAlbum(ctx context.Context, actor *models.UserProfile, req *dto.CreateAlbumRequest, files []*multipart.FileHeader) (*dto.AlbumResponse, error) {
	if actor.ChapterID == nil {
		return nil, apperrors.NewValidationError("profile does not belong to a chapter")
	}
	if len(files) == 0 {
		return nil, apperrors.NewValidationError("album needs at least one photo")
	}

	album := &models.Album{
		ChapterID:   *actor.ChapterID,
		Title:       req.Title,
		Description: &req.Description,
		Public:      true,
	}
	albumID, err := s.albums.Create(ctx, album)
	if err != nil {
		return nil, err
	}
	album.ID = albumID

	var firstPhotoID int64
	var thumbnailURL string
	for i, file := range files {
		key := filestorage.NewKey(file.Filename)
		if err := s.storage.Put(filestorage.BucketChapterPhotos, key, file); err != nil {
			return nil, apperrors.NewStorageError("failed to upload photo", err)
		}

		photo := &models.Photo{AlbumID: albumID, StorageKey: key}
		photoID, err := s.photos.Create(ctx, photo)
		if err != nil {
			s.logger.Error().Err(err).
				Str("bucket", filestorage.BucketChapterPhotos).
				Str("key", key).
				Msg("Photo record failed after upload, blob is orphaned")
			return nil, err
		}
		if i == 0 {
			firstPhotoID = photoID
			thumbnailURL = s.storage.URLFor(filestorage.BucketChapterPhotos, key)
		}
	}

	if err := s.albums.SetThumbnail(ctx, albumID, firstPhotoID); err != nil {
		return nil, err
	}
	album.PhotoCount = int64(len(files))

	s.logger.Info().
		Int64("albumId", albumID).
		Int("photos", len(files)).
		Msg("Album created")

	resp := dto.ToAlbumResponse(album, thumbnailURL)
	return &resp, nil
}

// GetGallery retrieves the chapter's albums grouped by creation year
func (s *galleryServiceImpl) GetGallery(ctx context.Context, actor *models.UserProfile) (*dto.GalleryResponse, error) {
	if actor.ChapterID == nil {
		return nil, apperrors.NewValidationError("profile does not belong to a chapter")
	}

	albums, err := s.albums.ListByChapter(ctx, *actor.ChapterID)
	if err != nil {
		return nil, err
	}

	resp := &dto.GalleryResponse{AlbumsByYear: make(map[int][]dto.AlbumResponse)}
	for year, group := range models.AlbumsByYear(albums) {
		for _, album := range group {
			var thumbnailURL string
			if album.Thumbnail != nil {
				thumbnailURL = s.storage.URLFor(filestorage.BucketChapterPhotos, album.Thumbnail.StorageKey)
			}
			resp.AlbumsByYear[year] = append(resp.AlbumsByYear[year], dto.ToAlbumResponse(album, thumbnailURL))
		}
	}

	return resp, nil
}

// GetAlbum retrieves one album with a page of its photos. Members may only
// browse their own chapter's albums.
func (s *galleryServiceImpl) GetAlbum(ctx context.Context, actor *models.UserProfile, albumID int64, page int) (*dto.AlbumDetailResponse, error) {
	album, err := s.getChapterAlbum(ctx, actor, albumID)
	if err != nil {
		return nil, err
	}

	total, err := s.photos.CountByAlbum(ctx, albumID)
	if err != nil {
		return nil, err
	}

	page = helpers.ClampPage(page, total, helpers.PhotoPageSize)
	offset, limit := helpers.OffsetLimit(page, helpers.PhotoPageSize)

	photos, total, err := s.photos.ListByAlbum(ctx, albumID, offset, limit)
	if err != nil {
		return nil, err
	}

	album.PhotoCount = total
	var thumbnailURL string
	if album.Thumbnail != nil {
		thumbnailURL = s.storage.URLFor(filestorage.BucketChapterPhotos, album.Thumbnail.StorageKey)
	}

	resp := &dto.AlbumDetailResponse{
		Album:      dto.ToAlbumResponse(album, thumbnailURL),
		Photos:     make([]dto.PhotoResponse, 0, len(photos)),
		Pagination: helpers.NewPaginationInfo(total, page, helpers.PhotoPageSize),
	}
	for _, photo := range photos {
		url := s.storage.URLFor(filestorage.BucketChapterPhotos, photo.StorageKey)
		resp.Photos = append(resp.Photos, dto.ToPhotoResponse(photo, url))
	}

	return resp, nil
}

// TagPhoto tags a member in a photo of the actor's chapter
func (s *galleryServiceImpl) TagPhoto(ctx context.Context, actor *models.UserProfile, photoID int64, req *dto.TagPhotoRequest) error {
	photo, err := s.photos.GetByID(ctx, photoID)
	if err != nil {
		return err
	}
	if photo == nil {
		return apperrors.NewCustomError(apperrors.ErrPhotoNotFound, "photo not found")
	}
	if _, err := s.getChapterAlbum(ctx, actor, photo.AlbumID); err != nil {
		return err
	}
	return s.photos.TagProfile(ctx, photoID, req.ProfileID)
}

func (s *galleryServiceImpl) getChapterAlbum(ctx context.Context, actor *models.UserProfile, albumID int64) (*models.Album, error) {
	album, err := s.albums.GetByID(ctx, albumID)
	if err != nil {
		return nil, err
	}
	if album == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrAlbumNotFound, "album not found")
	}
	if actor.ChapterID == nil || album.ChapterID != *actor.ChapterID {
		return nil, apperrors.NewForbiddenError("album belongs to another chapter")
	}
	return album, nil
}
