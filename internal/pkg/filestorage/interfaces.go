package filestorage

import "mime/multipart"

// Well-known buckets. Each blob kind lives in its own bucket so keys only need
// to be unique within their kind.
const (
	BucketChapterPhotos   = "gg_organization_photos"
	BucketOrganizationLogos = "gg_organization_logos"
	BucketProfilePictures = "gg_profile_pictures"
	BucketResumes         = "gg_resumes"
)

// ObjectStorage is the blob collaborator contract. The core stores and
// retrieves blobs by (bucket, key) and never inspects their contents.
type ObjectStorage interface {
	// Put stores an uploaded file under (bucket, key)
	Put(bucket, key string, fileHeader *multipart.FileHeader) error

	// URLFor returns the access URL for a stored blob
	URLFor(bucket, key string) string

	// Delete removes a blob; deleting a missing blob is not an error
	Delete(bucket, key string) error
}
