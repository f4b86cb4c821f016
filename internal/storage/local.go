package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
)

// ImagePrefix is the URL and directory prefix for editor images
const ImagePrefix = "blogArticles"

// allowedImageTypes are the raster formats accepted for upload.
// SVG is excluded since uploads are served from the API origin.
var allowedImageTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp"}

var (
	// ErrNotImage is returned when the uploaded bytes are not an allowed image
	ErrNotImage = errors.New("file is not an image")
	// ErrTooLarge is returned when the upload exceeds the configured size
	ErrTooLarge = errors.New("file too large")
)

// LocalStore keeps uploaded images on the local filesystem, partitioned by day.
type LocalStore struct {
	root    string
	baseURL string
	maxSize int64
	now     func() time.Time
}

// NewLocalStore creates a store rooted at dir whose files are published under baseURL
func NewLocalStore(dir, baseURL string, maxSize int64) *LocalStore {
	return &LocalStore{
		root:    dir,
		baseURL: strings.TrimRight(baseURL, "/"),
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Root returns the directory that holds ImagePrefix
func (s *LocalStore) Root() string {
	return s.root
}

// SaveImage validates and writes an image, returning its public URL.
// The content type is sniffed from the bytes; the client-declared one is ignored.
func (s *LocalStore) SaveImage(ctx context.Context, r io.Reader) (string, error) {
	data, err := io.ReadAll(io.LimitReader(r, s.maxSize+1))
	if err != nil {
		return "", fmt.Errorf("read upload: %w", err)
	}
	if int64(len(data)) > s.maxSize {
		return "", ErrTooLarge
	}

	mtype := mimetype.Detect(data)
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return "", ErrNotImage
	}

	if err := ctx.Err(); err != nil {
		return "", err
	}

	now := s.now()
	rel := path.Join(ImagePrefix, now.Format("2006/01/02"))
	name := fmt.Sprintf("%d-%s%s", now.UnixMilli(), uuid.New().String()[:8], mtype.Extension())

	dir := filepath.Join(s.root, filepath.FromSlash(rel))
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create image directory: %w", err)
	}

	if err := writeFile(filepath.Join(dir, name), data); err != nil {
		return "", err
	}

	return s.baseURL + "/" + rel + "/" + name, nil
}

func writeFile(dst string, data []byte) error {
	f, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("create image file: %w", err)
	}
	if _, err := io.Copy(f, bytes.NewReader(data)); err != nil {
		f.Close()
		os.Remove(dst)
		return fmt.Errorf("write image file: %w", err)
	}
	return f.Close()
}
