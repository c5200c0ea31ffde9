package services

import (
	"context"
	"strings"
	"testing"

	"catalogadmin/internal/common"
	"catalogadmin/internal/models"
	"catalogadmin/internal/storage"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) List(ctx context.Context, params common.ListParams) ([]*models.Collection, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Collection), args.Int(1), args.Error(2)
}

func (m *MockCollectionRepository) GetByID(ctx context.Context, id int64) (*models.Collection, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Collection), args.Error(1)
}

func (m *MockCollectionRepository) Create(ctx context.Context, collection *models.Collection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *MockCollectionRepository) Update(ctx context.Context, collection *models.Collection) error {
	args := m.Called(ctx, collection)
	return args.Error(0)
}

func (m *MockCollectionRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockProductRepository struct {
	mock.Mock
}

func (m *MockProductRepository) List(ctx context.Context, params common.ListParams) ([]*models.Product, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.Product), args.Int(1), args.Error(2)
}

func (m *MockProductRepository) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Product), args.Error(1)
}

func (m *MockProductRepository) GetByCollectionID(ctx context.Context, collectionID int64) ([]*models.Product, error) {
	args := m.Called(ctx, collectionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Product), args.Error(1)
}

func (m *MockProductRepository) Create(ctx context.Context, product *models.Product) error {
	args := m.Called(ctx, product)
	return args.Error(0)
}

func (m *MockProductRepository) Update(ctx context.Context, update *models.ProductUpdate) error {
	args := m.Called(ctx, update)
	return args.Error(0)
}

func (m *MockProductRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockVariantRepository struct {
	mock.Mock
}

func (m *MockVariantRepository) List(ctx context.Context, params common.ListParams) ([]*models.ProductVariant, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.ProductVariant), args.Int(1), args.Error(2)
}

func (m *MockVariantRepository) GetByID(ctx context.Context, id int64) (*models.ProductVariant, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProductVariant), args.Error(1)
}

func (m *MockVariantRepository) GetByProductID(ctx context.Context, productID int64) ([]*models.ProductVariant, error) {
	args := m.Called(ctx, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.ProductVariant), args.Error(1)
}

func (m *MockVariantRepository) Create(ctx context.Context, create *models.VariantCreate) (int64, error) {
	args := m.Called(ctx, create)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVariantRepository) Update(ctx context.Context, id int64, update *models.VariantUpdate) error {
	args := m.Called(ctx, id, update)
	return args.Error(0)
}

func (m *MockVariantRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockGalleryRepository struct {
	mock.Mock
}

func (m *MockGalleryRepository) List(ctx context.Context, params common.ListParams) ([]*models.GalleryImage, int, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*models.GalleryImage), args.Int(1), args.Error(2)
}

func (m *MockGalleryRepository) GetByID(ctx context.Context, id int64) (*models.GalleryImage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GalleryImage), args.Error(1)
}

func (m *MockGalleryRepository) Create(ctx context.Context, image *models.GalleryImage) error {
	args := m.Called(ctx, image)
	return args.Error(0)
}

func (m *MockGalleryRepository) UpdateImage(ctx context.Context, id int64, imageURL string) error {
	args := m.Called(ctx, id, imageURL)
	return args.Error(0)
}

func (m *MockGalleryRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// memImages is an in-memory image store for file lifecycle assertions.
type memImages struct {
	fs    afero.Fs
	store *storage.LocalStore
}

func newMemImages(t *testing.T) *memImages {
	t.Helper()
	fsys := afero.NewMemMapFs()
	store, err := storage.NewLocalStoreFs(fsys)
	require.NoError(t, err)
	return &memImages{fs: fsys, store: store}
}

func (m *memImages) seed(t *testing.T, urls ...string) {
	t.Helper()
	for _, url := range urls {
		key, err := storage.KeyFromURL(url)
		require.NoError(t, err)
		require.NoError(t, afero.WriteFile(m.fs, key, []byte("img"), 0o644))
	}
}

func (m *memImages) exists(t *testing.T, url string) bool {
	t.Helper()
	key, err := storage.KeyFromURL(url)
	require.NoError(t, err)
	ok, err := afero.Exists(m.fs, key)
	require.NoError(t, err)
	return ok
}

func upload(name string) *storage.Upload {
	return &storage.Upload{Filename: name, Content: strings.NewReader("image-bytes")}
}

func strPtr(s string) *string { return &s }
