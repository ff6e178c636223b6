package services

import (
	"context"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// MediaStore persists uploaded files and returns their public URL
type MediaStore interface {
	Put(ctx context.Context, objectName string, r io.Reader, size int64, contentType string) (string, error)
}

var allowedMediaTypes = []string{"image/", "video/"}

// MediaService accepts post media uploads. Files are stored as uploaded.
type MediaService struct {
	store    MediaStore
	maxBytes int64
}

func NewMediaService(store MediaStore, maxBytes int64) *MediaService {
	return &MediaService{store: store, maxBytes: maxBytes}
}

func (s *MediaService) Upload(ctx context.Context, filename, contentType string, size int64, r io.Reader) (string, error) {
	if size <= 0 {
		return "", validationError("Uploaded file is empty")
	}
	if s.maxBytes > 0 && size > s.maxBytes {
		return "", validationError("Uploaded file exceeds %d bytes", s.maxBytes)
	}
	if !allowedMedia(contentType) {
		return "", validationError("Unsupported media type %q", contentType)
	}

	objectName := uuid.New().String() + strings.ToLower(filepath.Ext(filename))
	url, err := s.store.Put(ctx, objectName, r, size, contentType)
	if err != nil {
		return "", errors.Wrap(err, "failed to store media")
	}
	return url, nil
}

func allowedMedia(contentType string) bool {
	for _, prefix := range allowedMediaTypes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}
