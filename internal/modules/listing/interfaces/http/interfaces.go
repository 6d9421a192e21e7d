package http

import (
	"context"
	"mime/multipart"

	"github.com/google/uuid"
)

// FileService defines the file operations the listing handler needs
type FileService interface {
	UploadImage(ctx context.Context, file multipart.File, header *multipart.FileHeader, folder string) (url string, thumbnailURL string, err error)
	Delete(ctx context.Context, key string) error
	GetKeyFromUrl(fileUrl string) (string, error)
}

// Contact is the denormalized identity stamped onto listings and reviews
type Contact struct {
	Name   string
	Email  string
	Avatar string
}

// UserDirectory resolves a user ID to its display contact
type UserDirectory interface {
	GetContact(ctx context.Context, userID uuid.UUID) (Contact, error)
}
