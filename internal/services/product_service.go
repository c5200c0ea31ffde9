package services

import (
	"context"
	"errors"
	"strings"

	"catalogadmin/internal/common"
	"catalogadmin/internal/models"
	"catalogadmin/internal/repositories"
	"catalogadmin/internal/storage"
	"catalogadmin/pkg/log"
)

// ProductInput is a create or update request. CollectionID is the raw form
// value; empty means no collection.
type ProductInput struct {
	Name         string
	CollectionID string
	Image        *storage.Upload
}

type ProductService interface {
	List(ctx context.Context, params common.ListParams) (*common.Page[*models.Product], error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	GetByCollectionID(ctx context.Context, collectionID int64) ([]*models.Product, error)
	Create(ctx context.Context, input *ProductInput) (*models.Product, error)
	Update(ctx context.Context, id int64, input *ProductInput) (*models.Product, error)
	Delete(ctx context.Context, id int64) error
}

type productService struct {
	products    repositories.ProductRepository
	collections repositories.CollectionRepository
	images      storage.ImageStore
	logger      log.LoggerService
}

func NewProductService(products repositories.ProductRepository, collections repositories.CollectionRepository, images storage.ImageStore, logger log.LoggerService) ProductService {
	return &productService{
		products:    products,
		collections: collections,
		images:      images,
		logger:      logger,
	}
}

func (s *productService) List(ctx context.Context, params common.ListParams) (*common.Page[*models.Product], error) {
	params = params.Normalize()
	products, total, err := s.products.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return common.NewPage(products, total, params), nil
}

func (s *productService) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	return s.products.GetByID(ctx, id)
}

func (s *productService) GetByCollectionID(ctx context.Context, collectionID int64) ([]*models.Product, error) {
	products, err := s.products.GetByCollectionID(ctx, collectionID)
	if err != nil {
		return nil, err
	}
	if products == nil {
		products = []*models.Product{}
	}
	return products, nil
}

func (s *productService) Create(ctx context.Context, input *ProductInput) (*models.Product, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, common.NewValidationError("Product name is required")
	}
	if input.Image == nil {
		return nil, common.NewValidationError("Product image is required")
	}
	collectionID, err := s.resolveCollection(ctx, input.CollectionID)
	if err != nil {
		return nil, err
	}

	urls, err := saveImages(ctx, s.images, s.logger, storage.CategoryProducts, []*storage.Upload{input.Image})
	if err != nil {
		return nil, err
	}

	product := &models.Product{Name: name, CollectionID: collectionID, ImageURL: urls[0]}
	if err := s.products.Create(ctx, product); err != nil {
		discardImages(ctx, s.images, s.logger, urls...)
		return nil, err
	}
	return s.products.GetByID(ctx, product.ID)
}

// Update replaces the image only when one is supplied; the old file is
// removed once the row points at the new one.
func (s *productService) Update(ctx context.Context, id int64, input *ProductInput) (*models.Product, error) {
	existing, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, common.NewValidationError("Product name is required")
	}
	collectionID, err := s.resolveCollection(ctx, input.CollectionID)
	if err != nil {
		return nil, err
	}

	update := &models.ProductUpdate{ID: id, Name: name, CollectionID: collectionID}
	if input.Image != nil {
		urls, err := saveImages(ctx, s.images, s.logger, storage.CategoryProducts, []*storage.Upload{input.Image})
		if err != nil {
			return nil, err
		}
		update.ImageURL = urls[0]
	}

	if err := s.products.Update(ctx, update); err != nil {
		if update.ImageURL != "" {
			discardImages(ctx, s.images, s.logger, update.ImageURL)
		}
		return nil, err
	}

	if update.ImageURL != "" && existing.ImageURL != update.ImageURL {
		if err := removeImage(ctx, s.images, s.logger, existing.ImageURL); err != nil {
			return nil, err
		}
	}
	return s.products.GetByID(ctx, id)
}

// Delete removes the row only. The image file stays on disk; only the
// collection cascade deletes product images.
func (s *productService) Delete(ctx context.Context, id int64) error {
	return s.products.Delete(ctx, id)
}

func (s *productService) resolveCollection(ctx context.Context, raw string) (*int64, error) {
	id, ok, err := parseID(raw, "collection_id")
	if err != nil || !ok {
		return nil, err
	}
	if _, err := s.collections.GetByID(ctx, id); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.NewValidationError("Collection not found")
		}
		return nil, err
	}
	return &id, nil
}
