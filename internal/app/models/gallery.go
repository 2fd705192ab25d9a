package models

import "time"

// Album groups a chapter's photos for gallery display, based on the 'albums'
// table. The thumbnail defaults to the first uploaded photo.
type Album struct {
	ID               int64     `json:"id" db:"id"`
	ChapterID        int64     `json:"chapterId" db:"chapter_id"`
	Title            string    `json:"title" db:"title"`
	Description      *string   `json:"description,omitempty" db:"description"`
	Public           bool      `json:"public" db:"public"`
	ThumbnailPhotoID *int64    `json:"thumbnailPhotoId,omitempty" db:"thumbnail_photo_id"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`

	// Related entities
	Thumbnail  *Photo   `json:"thumbnail,omitempty"`
	Photos     []*Photo `json:"photos,omitempty"`
	PhotoCount int64    `json:"photoCount"`
}

// Photo defines one stored image based on the 'photos' table. The storage key
// references a blob in object storage; the core never reads blob contents.
type Photo struct {
	ID         int64     `json:"id" db:"id"`
	AlbumID    int64     `json:"albumId" db:"album_id"`
	Caption    *string   `json:"caption,omitempty" db:"caption"`
	StorageKey string    `json:"storageKey" db:"storage_key"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`

	// Related entities
	Tagged []*UserProfile `json:"tagged,omitempty"`
}

// AlbumsByYear groups albums by creation year for the gallery page
func AlbumsByYear(albums []*Album) map[int][]*Album {
	byYear := make(map[int][]*Album)
	for _, album := range albums {
		year := album.CreatedAt.Year()
		byYear[year] = append(byYear[year], album)
	}
	return byYear
}
