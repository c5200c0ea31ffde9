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

const maxVariantImages = 3

// VariantInput is a create or update request. On update, an empty
// ProductID or Name keeps the stored value and no Images keeps all slots.
type VariantInput struct {
	ProductID string
	Name      string
	Images    []*storage.Upload
}

type VariantService interface {
	List(ctx context.Context, params common.ListParams) (*common.Page[*models.VariantResponse], error)
	GetByID(ctx context.Context, id int64) (*models.VariantResponse, error)
	GetByProductID(ctx context.Context, productID int64) ([]*models.VariantResponse, error)
	Create(ctx context.Context, input *VariantInput) (*models.VariantResponse, error)
	Update(ctx context.Context, id int64, input *VariantInput) (*models.VariantResponse, error)
	Delete(ctx context.Context, id int64) error
}

type variantService struct {
	variants repositories.VariantRepository
	products repositories.ProductRepository
	images   storage.ImageStore
	logger   log.LoggerService
}

func NewVariantService(variants repositories.VariantRepository, products repositories.ProductRepository, images storage.ImageStore, logger log.LoggerService) VariantService {
	return &variantService{
		variants: variants,
		products: products,
		images:   images,
		logger:   logger,
	}
}

func toResponses(variants []*models.ProductVariant) []*models.VariantResponse {
	responses := make([]*models.VariantResponse, 0, len(variants))
	for _, v := range variants {
		responses = append(responses, v.Response())
	}
	return responses
}

func (s *variantService) List(ctx context.Context, params common.ListParams) (*common.Page[*models.VariantResponse], error) {
	params = params.Normalize()
	variants, total, err := s.variants.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return common.NewPage(toResponses(variants), total, params), nil
}

func (s *variantService) GetByID(ctx context.Context, id int64) (*models.VariantResponse, error) {
	variant, err := s.variants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return variant.Response(), nil
}

func (s *variantService) GetByProductID(ctx context.Context, productID int64) ([]*models.VariantResponse, error) {
	variants, err := s.variants.GetByProductID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return toResponses(variants), nil
}

func (s *variantService) Create(ctx context.Context, input *VariantInput) (*models.VariantResponse, error) {
	productID, ok, err := parseID(input.ProductID, "productId")
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.NewValidationError("Product is required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, common.NewValidationError("Variant name is required")
	}
	if len(input.Images) == 0 {
		return nil, common.NewValidationError("At least one image is required")
	}
	if len(input.Images) > maxVariantImages {
		return nil, common.NewValidationError("A maximum of %d images is allowed", maxVariantImages)
	}
	if err := s.requireProduct(ctx, productID); err != nil {
		return nil, err
	}

	urls, err := saveImages(ctx, s.images, s.logger, storage.CategoryVariants, input.Images)
	if err != nil {
		return nil, err
	}

	id, err := s.variants.Create(ctx, &models.VariantCreate{ProductID: productID, Name: name, Images: urls})
	if err != nil {
		discardImages(ctx, s.images, s.logger, urls...)
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Update with new images replaces the whole set: the new files are written
// to slots in order, unfilled slots are cleared, and every previously stored
// file is removed once the row is updated.
func (s *variantService) Update(ctx context.Context, id int64, input *VariantInput) (*models.VariantResponse, error) {
	current, err := s.variants.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	update := &models.VariantUpdate{}
	productID, ok, err := parseID(input.ProductID, "productId")
	if err != nil {
		return nil, err
	}
	if ok {
		if err := s.requireProduct(ctx, productID); err != nil {
			return nil, err
		}
		update.ProductID = common.Set(productID)
	}
	if name := strings.TrimSpace(input.Name); name != "" {
		update.Name = common.Set(name)
	}

	var saved []string
	if len(input.Images) > 0 {
		if len(input.Images) > maxVariantImages {
			return nil, common.NewValidationError("A maximum of %d images is allowed", maxVariantImages)
		}
		saved, err = saveImages(ctx, s.images, s.logger, storage.CategoryVariants, input.Images)
		if err != nil {
			return nil, err
		}
		slots := []*common.Optional[string]{&update.Image1, &update.Image2, &update.Image3}
		for i, slot := range slots {
			if i < len(saved) {
				*slot = common.Set(saved[i])
			} else {
				*slot = common.Cleared[string]()
			}
		}
	}

	if err := s.variants.Update(ctx, id, update); err != nil {
		discardImages(ctx, s.images, s.logger, saved...)
		return nil, err
	}

	if len(saved) > 0 {
		for _, url := range current.Images() {
			if err := removeImage(ctx, s.images, s.logger, url); err != nil {
				return nil, err
			}
		}
	}
	return s.GetByID(ctx, id)
}

// Delete removes every referenced image, then the row.
func (s *variantService) Delete(ctx context.Context, id int64) error {
	variant, err := s.variants.GetByID(ctx, id)
	if err != nil {
		return err
	}
	for _, url := range variant.Images() {
		if err := removeImage(ctx, s.images, s.logger, url); err != nil {
			return err
		}
	}
	return s.variants.Delete(ctx, id)
}

func (s *variantService) requireProduct(ctx context.Context, productID int64) error {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return common.NewValidationError("Product not found")
		}
		return err
	}
	return nil
}
