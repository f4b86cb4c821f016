package service

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"

	"github.com/blog-api/internal/models"
	"github.com/blog-api/internal/storage"
	"github.com/rs/zerolog"
)

type uploadService struct {
	images  ImageStore
	maxSize int64
	log     zerolog.Logger
}

func newUploadService(images ImageStore, maxSize int64, log zerolog.Logger) *uploadService {
	return &uploadService{
		images:  images,
		maxSize: maxSize,
		log:     log.With().Str("service", "upload").Logger(),
	}
}

// UploadImage stores an editor image and returns its public URL
func (s *uploadService) UploadImage(ctx context.Context, fh *multipart.FileHeader) (string, error) {
	if fh == nil {
		return "", invalid(models.CodeInvalidParameter, "no file uploaded")
	}
	if s.maxSize > 0 && fh.Size > s.maxSize {
		return "", invalid(models.CodeInvalidParameter, fmt.Sprintf("file exceeds %d bytes", s.maxSize))
	}

	f, err := fh.Open()
	if err != nil {
		return "", internal(err, "open upload")
	}
	defer f.Close()

	url, err := s.images.SaveImage(ctx, f)
	switch {
	case errors.Is(err, storage.ErrNotImage):
		return "", invalid(models.CodeInvalidParameter, "file is not an image")
	case errors.Is(err, storage.ErrTooLarge):
		return "", invalid(models.CodeInvalidParameter, fmt.Sprintf("file exceeds %d bytes", s.maxSize))
	case err != nil:
		return "", internal(err, "save image")
	}

	s.log.Info().Str("filename", fh.Filename).Int64("size", fh.Size).Str("url", url).Msg("Image uploaded")
	return url, nil
}
