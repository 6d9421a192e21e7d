package application

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"github.com/arjunm29/nestfind/internal/modules/filestorage/domain"
)

// FileService provides high-level file operations
type FileService struct {
	storage        domain.FileStorage
	thumbnailWidth int
}

// NewFileService creates a new file service
func NewFileService(storage domain.FileStorage, thumbnailWidth int) *FileService {
	if thumbnailWidth <= 0 {
		thumbnailWidth = 480
	}
	return &FileService{
		storage:        storage,
		thumbnailWidth: thumbnailWidth,
	}
}

// UploadImage stores an uploaded image and a resized thumbnail next to it.
// Returns the public URLs of both. Gallery grids load the thumbnail; the
// detail screen loads the original.
func (s *FileService) UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (string, string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".webp":
	default:
		return "", "", fmt.Errorf("unsupported image type: %s", ext)
	}

	data, err := io.ReadAll(file)
	if err != nil {
		return "", "", fmt.Errorf("failed to read upload: %w", err)
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return "", "", fmt.Errorf("failed to decode image: %w", err)
	}

	name := uuid.New().String()
	contentType := header.Header.Get("Content-Type")

	key := fmt.Sprintf("%s/%s%s", folder, name, ext)
	url, err := s.storage.UploadFile(ctx, key, bytes.NewReader(data), contentType)
	if err != nil {
		return "", "", err
	}

	thumbURL, err := s.uploadThumbnail(ctx, img, folder, name)
	if err != nil {
		// The original made it up; a listing without a thumbnail still renders
		return url, "", nil
	}
	return url, thumbURL, nil
}

func (s *FileService) uploadThumbnail(ctx context.Context, img image.Image, folder, name string) (string, error) {
	thumb := imaging.Resize(img, s.thumbnailWidth, 0, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, thumb, imaging.JPEG, imaging.JPEGQuality(80)); err != nil {
		return "", fmt.Errorf("failed to encode thumbnail: %w", err)
	}

	key := fmt.Sprintf("%s/thumbs/%s.jpg", folder, name)
	return s.storage.UploadFile(ctx, key, &buf, "image/jpeg")
}

// UploadWithKey uploads a file with a specific key
func (s *FileService) UploadWithKey(ctx context.Context, file io.Reader, key string, contentType string) (string, error) {
	return s.storage.UploadFile(ctx, key, file, contentType)
}

// GetPresignedURL generates a presigned URL for viewing
func (s *FileService) GetPresignedURL(ctx context.Context, key string, expiration time.Duration) (string, error) {
	return s.storage.GetPresignedURL(ctx, key, expiration)
}

// Delete deletes a file
func (s *FileService) Delete(ctx context.Context, key string) error {
	return s.storage.DeleteFile(ctx, key)
}

// GetKeyFromUrl extracts the storage key from a URL
func (s *FileService) GetKeyFromUrl(fileUrl string) (string, error) {
	return s.storage.GetKeyFromURL(fileUrl)
}
