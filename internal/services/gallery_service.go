package services

import (
	"context"

	"catalogadmin/internal/common"
	"catalogadmin/internal/models"
	"catalogadmin/internal/repositories"
	"catalogadmin/internal/storage"
	"catalogadmin/pkg/log"
)

type GalleryService interface {
	List(ctx context.Context, params common.ListParams) (*common.Page[*models.GalleryImage], error)
	Create(ctx context.Context, image *storage.Upload) (*models.GalleryImage, error)
	Update(ctx context.Context, id int64, image *storage.Upload) (*models.GalleryImage, error)
	Delete(ctx context.Context, id int64) error
}

type galleryService struct {
	gallery repositories.GalleryRepository
	images  storage.ImageStore
	logger  log.LoggerService
}

func NewGalleryService(gallery repositories.GalleryRepository, images storage.ImageStore, logger log.LoggerService) GalleryService {
	return &galleryService{gallery: gallery, images: images, logger: logger}
}

func (s *galleryService) List(ctx context.Context, params common.ListParams) (*common.Page[*models.GalleryImage], error) {
	params = params.Normalize()
	params.Search = ""
	images, total, err := s.gallery.List(ctx, params)
	if err != nil {
		return nil, err
	}
	return common.NewPage(images, total, params), nil
}

func (s *galleryService) Create(ctx context.Context, upload *storage.Upload) (*models.GalleryImage, error) {
	if upload == nil {
		return nil, common.NewValidationError("Image is required")
	}
	urls, err := saveImages(ctx, s.images, s.logger, storage.CategoryGallery, []*storage.Upload{upload})
	if err != nil {
		return nil, err
	}

	image := &models.GalleryImage{ImageURL: urls[0]}
	if err := s.gallery.Create(ctx, image); err != nil {
		discardImages(ctx, s.images, s.logger, urls...)
		return nil, err
	}
	return image, nil
}

// Update without an upload returns the stored row unchanged.
func (s *galleryService) Update(ctx context.Context, id int64, upload *storage.Upload) (*models.GalleryImage, error) {
	image, err := s.gallery.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if upload == nil {
		return image, nil
	}

	urls, err := saveImages(ctx, s.images, s.logger, storage.CategoryGallery, []*storage.Upload{upload})
	if err != nil {
		return nil, err
	}
	if err := s.gallery.UpdateImage(ctx, id, urls[0]); err != nil {
		discardImages(ctx, s.images, s.logger, urls...)
		return nil, err
	}
	if err := removeImage(ctx, s.images, s.logger, image.ImageURL); err != nil {
		return nil, err
	}

	image.ImageURL = urls[0]
	return image, nil
}

func (s *galleryService) Delete(ctx context.Context, id int64) error {
	image, err := s.gallery.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := removeImage(ctx, s.images, s.logger, image.ImageURL); err != nil {
		return err
	}
	return s.gallery.Delete(ctx, id)
}
