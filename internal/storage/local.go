package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"time"

	"github.com/spf13/afero"
)

// LocalStore keeps images on a filesystem rooted at the public upload dir.
type LocalStore struct {
	fs  afero.Fs
	now func() time.Time
}

// NewLocalStore roots a store at dir on the OS filesystem, creating the
// category directories.
func NewLocalStore(dir string) (*LocalStore, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	if err := afero.NewOsFs().MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create upload root: %w", err)
	}
	return NewLocalStoreFs(afero.NewBasePathFs(afero.NewOsFs(), abs))
}

// NewLocalStoreFs uses fsys as the upload root.
func NewLocalStoreFs(fsys afero.Fs) (*LocalStore, error) {
	for _, category := range []Category{CategoryProducts, CategoryVariants, CategoryGallery} {
		if err := fsys.MkdirAll(string(category), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s directory: %w", category, err)
		}
	}
	return &LocalStore{fs: fsys, now: time.Now}, nil
}

func (s *LocalStore) Save(ctx context.Context, category Category, upload *Upload) (string, error) {
	if !category.valid() {
		return "", fmt.Errorf("unknown image category %q", category)
	}
	key := string(category) + "/" + GenerateName(upload.Filename, s.now())

	f, err := s.fs.Create(key)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", key, err)
	}
	if _, err := io.Copy(f, upload.Content); err != nil {
		_ = f.Close()
		_ = s.fs.Remove(key)
		return "", fmt.Errorf("failed to write %s: %w", key, err)
	}
	if err := f.Close(); err != nil {
		_ = s.fs.Remove(key)
		return "", err
	}
	return PublicURL(key), nil
}

func (s *LocalStore) Exists(ctx context.Context, url string) (bool, error) {
	key, err := KeyFromURL(url)
	if err != nil {
		return false, err
	}
	return afero.Exists(s.fs, key)
}

func (s *LocalStore) Delete(ctx context.Context, url string) error {
	key, err := KeyFromURL(url)
	if err != nil {
		return err
	}
	if err := s.fs.Remove(key); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return ErrImageNotFound
		}
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}

func (s *LocalStore) Open(ctx context.Context, url string) (io.ReadSeekCloser, time.Time, error) {
	key, err := KeyFromURL(url)
	if err != nil {
		return nil, time.Time{}, err
	}
	f, err := s.fs.Open(key)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, time.Time{}, ErrImageNotFound
		}
		return nil, time.Time{}, err
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, time.Time{}, err
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, time.Time{}, ErrImageNotFound
	}
	return f, info.ModTime(), nil
}

// Ping checks the root is still reachable.
func (s *LocalStore) Ping(ctx context.Context) error {
	_, err := s.fs.Stat(string(CategoryProducts))
	return err
}
