package filestorage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/cid2105/virtual-greek/internal/pkg/logger"
)

// LocalStorage implements ObjectStorage on the local filesystem. Each bucket is
// a subdirectory of the base path.
type LocalStorage struct {
	basePath string // The root directory where blobs are stored
	baseURL  string // The base URL to access stored blobs
}

// NewLocalStorage creates a new LocalStorage instance.
// basePath is the required directory path on the server.
// baseURL is optional; if provided, it will be prepended to returned URLs.
func NewLocalStorage(basePath, baseURL string) (*LocalStorage, error) {
	// Ensure the base path exists
	if err := os.MkdirAll(basePath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", basePath).Msg("Failed to create storage directory")
		return nil, fmt.Errorf("failed to create storage directory %s: %w", basePath, err)
	}
	logger.Info().Str("path", basePath).Msg("Local storage directory ensured")

	return &LocalStorage{
		basePath: basePath,
		baseURL:  baseURL,
	}, nil
}

// NewKey derives a collision-free storage key from an uploaded filename
func NewKey(filename string) string {
	return uuid.New().String() + filepath.Ext(filename)
}

// Put stores an uploaded file under (bucket, key)
func (ls *LocalStorage) Put(bucket, key string, fileHeader *multipart.FileHeader) error {
	if fileHeader == nil {
		return fmt.Errorf("no file provided")
	}

	// Open the uploaded file
	file, err := fileHeader.Open()
	if err != nil {
		logger.Error().Err(err).Str("filename", fileHeader.Filename).Msg("Failed to open uploaded file")
		return fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer file.Close()

	// Ensure the bucket directory exists
	bucketPath := filepath.Join(ls.basePath, bucket)
	if err := os.MkdirAll(bucketPath, os.ModePerm); err != nil {
		logger.Error().Err(err).Str("path", bucketPath).Msg("Failed to create bucket directory")
		return fmt.Errorf("failed to create bucket directory: %w", err)
	}

	// Create the destination file
	dstPath := filepath.Join(bucketPath, key)
	dst, err := os.Create(dstPath)
	if err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to create destination file")
		return fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	// Copy the uploaded file content to the destination file
	if _, err = io.Copy(dst, file); err != nil {
		logger.Error().Err(err).Str("path", dstPath).Msg("Failed to copy uploaded file content")
		// Attempt to remove the partially created file
		_ = os.Remove(dstPath)
		return fmt.Errorf("failed to save file content: %w", err)
	}

	logger.Info().Str("filename", fileHeader.Filename).Str("bucket", bucket).Str("key", key).Msg("Blob stored")
	return nil
}

// URLFor returns the access URL for a stored blob
func (ls *LocalStorage) URLFor(bucket, key string) string {
	if key == "" {
		return ""
	}
	if ls.baseURL != "" {
		return strings.TrimRight(ls.baseURL, "/") + "/" + bucket + "/" + key
	}
	return filepath.Join("uploads", bucket, key)
}

// Delete removes a blob. Deleting a missing blob succeeds (idempotent).
func (ls *LocalStorage) Delete(bucket, key string) error {
	if key == "" {
		return nil // Nothing to delete
	}

	// Refuse keys that escape the bucket directory
	if filepath.Base(key) != key {
		return fmt.Errorf("invalid storage key: %s", key)
	}

	physicalPath := filepath.Join(ls.basePath, bucket, key)

	// Check if the blob exists first
	if _, err := os.Stat(physicalPath); os.IsNotExist(err) {
		logger.Warn().Str("path", physicalPath).Msg("Blob to delete does not exist")
		return nil
	}

	if err := os.Remove(physicalPath); err != nil {
		logger.Error().Err(err).Str("path", physicalPath).Msg("Failed to delete blob")
		return fmt.Errorf("failed to delete blob: %w", err)
	}

	logger.Info().Str("path", physicalPath).Msg("Blob deleted")
	return nil
}
