package services

import (
	"context"
	"fmt"
	"strings"

	"catalogadmin/internal/common"
	"catalogadmin/internal/models"
	"catalogadmin/internal/repositories"
	"catalogadmin/internal/storage"
	"catalogadmin/pkg/log"
)

type CollectionService interface {
	List(ctx context.Context, params common.ListParams) (*common.Page[*models.Collection], error)
	Get(ctx context.Context, id int64) (*models.Collection, error)
	Create(ctx context.Context, name string) (*models.Collection, error)
	Update(ctx context.Context, id int64, name string) (*models.Collection, error)
	Delete(ctx context.Context, id int64) error
}

type collectionService struct {
	collections repositories.CollectionRepository
	products    repositories.ProductRepository
	variants    repositories.VariantRepository
	images      storage.ImageStore
	logger      log.LoggerService
}

func NewCollectionService(collections repositories.CollectionRepository, products repositories.ProductRepository, variants repositories.VariantRepository, images storage.ImageStore, logger log.LoggerService) CollectionService {
	return &collectionService{
		collections: collections,
		products:    products,
		variants:    variants,
		images:      images,
		logger:      logger,
	}
}

func (s *collectionService) List(ctx context.Context, params common.ListParams) (*common.Page[*models.Collection], error) {
	params = params.Normalize()
	collections, total, err := s.collections.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return common.NewPage(collections, total, params), nil
}

func (s *collectionService) Get(ctx context.Context, id int64) (*models.Collection, error) {
	return s.collections.GetByID(ctx, id)
}

func (s *collectionService) Create(ctx context.Context, name string) (*models.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewValidationError("Collection name is required")
	}

	collection := &models.Collection{Name: name}
	if err := s.collections.Create(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

func (s *collectionService) Update(ctx context.Context, id int64, name string) (*models.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewValidationError("Collection name is required")
	}

	collection := &models.Collection{ID: id, Name: name}
	if err := s.collections.Update(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

// Delete removes the collection with every product it owns. For each
// product the variant images and the product image are removed before the
// product row, whose variants follow through ON DELETE CASCADE. Nothing is
// restored if a later step fails.
func (s *collectionService) Delete(ctx context.Context, id int64) error {
	if _, err := s.collections.GetByID(ctx, id); err != nil {
		return err
	}

	products, err := s.products.GetByCollectionID(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to list products of collection %d: %w", id, err)
	}

	for _, product := range products {
		variants, err := s.variants.GetByProductID(ctx, product.ID)
		if err != nil {
			return fmt.Errorf("failed to list variants of product %d: %w", product.ID, err)
		}
		for _, variant := range variants {
			for _, url := range variant.Images() {
				if err := removeImage(ctx, s.images, s.logger, url); err != nil {
					return err
				}
			}
		}

		if err := removeImage(ctx, s.images, s.logger, product.ImageURL); err != nil {
			return err
		}
		if err := s.products.Delete(ctx, product.ID); err != nil {
			return fmt.Errorf("failed to delete product %d: %w", product.ID, err)
		}
	}

	if err := s.collections.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("deleted collection %d with %d products", id, len(products))
	return nil
}
