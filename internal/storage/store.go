package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"path/filepath"
	"strings"
	"time"

	"catalogadmin/internal/common"
	"catalogadmin/internal/config"

	"github.com/labstack/gommon/random"
)

// Category is the top-level directory an image is stored under.
type Category string

const (
	CategoryProducts Category = "products"
	CategoryVariants Category = "variants"
	CategoryGallery  Category = "gallery"
)

// URLPrefix is the public path every stored image URL starts with.
const URLPrefix = "/uploads/"

var (
	ErrInvalidURL    = errors.New("invalid image url")
	ErrImageNotFound = errors.New("image not found")
)

var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".avif": true,
}

func (c Category) valid() bool {
	switch c {
	case CategoryProducts, CategoryVariants, CategoryGallery:
		return true
	}
	return false
}

// Upload is one incoming file.
type Upload struct {
	Filename    string
	ContentType string
	Size        int64
	Content     io.Reader
}

// ImageStore persists uploaded images and resolves the URLs it hands out.
type ImageStore interface {
	Save(ctx context.Context, category Category, upload *Upload) (string, error)
	Exists(ctx context.Context, url string) (bool, error)
	Delete(ctx context.Context, url string) error
	Open(ctx context.Context, url string) (io.ReadSeekCloser, time.Time, error)
	Ping(ctx context.Context) error
}

// ValidateImage rejects uploads whose extension is not an image type.
func ValidateImage(filename string) error {
	if !allowedExtensions[strings.ToLower(filepath.Ext(filename))] {
		return common.NewValidationError("Only image files are allowed")
	}
	return nil
}

// GenerateName returns <unix-millis>-<9 digits><ext>.
func GenerateName(original string, now time.Time) string {
	ext := strings.ToLower(filepath.Ext(original))
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), random.String(9, random.Numeric), ext)
}

// PublicURL is the root-relative URL of key.
func PublicURL(key string) string {
	return URLPrefix + key
}

// KeyFromURL turns /uploads/<category>/<name> into <category>/<name>.
func KeyFromURL(url string) (string, error) {
	if !strings.HasPrefix(url, URLPrefix) {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}
	key := path.Clean(strings.TrimPrefix(url, URLPrefix))

	category, name, ok := strings.Cut(key, "/")
	if !ok || !Category(category).valid() || name == "" || name == "." || name == ".." || strings.Contains(name, "/") {
		return "", fmt.Errorf("%w: %q", ErrInvalidURL, url)
	}
	return key, nil
}

// RemoveIfExists deletes the image behind url when it is present. Empty
// URLs, missing files and URLs that do not resolve to a stored image are
// skipped.
func RemoveIfExists(ctx context.Context, store ImageStore, url string) (bool, error) {
	if url == "" {
		return false, nil
	}
	exists, err := store.Exists(ctx, url)
	if errors.Is(err, ErrInvalidURL) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !exists {
		return false, nil
	}
	if err := store.Delete(ctx, url); err != nil && !errors.Is(err, ErrImageNotFound) {
		return false, err
	}
	return true, nil
}

// New builds the store selected by cfg.Driver.
func New(ctx context.Context, cfg config.StorageConfig) (ImageStore, error) {
	switch strings.ToLower(cfg.Driver) {
	case config.StorageDriverLocal:
		return NewLocalStore(cfg.PublicRoot)
	case config.StorageDriverMinIO:
		return NewMinioStore(ctx, cfg.MinIO)
	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}
