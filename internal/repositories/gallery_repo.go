package repositories

import (
	"context"

	"catalogadmin/internal/common"
	"catalogadmin/internal/models"
)

type GalleryRepository interface {
	List(ctx context.Context, params common.ListParams) ([]*models.GalleryImage, int, error)
	GetByID(ctx context.Context, id int64) (*models.GalleryImage, error)
	Create(ctx context.Context, image *models.GalleryImage) error
	UpdateImage(ctx context.Context, id int64, imageURL string) error
	Delete(ctx context.Context, id int64) error
}

type galleryRepo struct {
	db DBTX
}

func NewGalleryRepo(db DBTX) GalleryRepository {
	return &galleryRepo{db: db}
}

func (r *galleryRepo) List(ctx context.Context, params common.ListParams) ([]*models.GalleryImage, int, error) {
	total, err := count(ctx, r.db, `SELECT COUNT(*) FROM gallery`)
	if err != nil {
		return nil, 0, err
	}

	query := `
		SELECT id, image_url, created_at
		FROM gallery
		ORDER BY id ASC
		LIMIT $1 OFFSET $2
	`
	rows, err := r.db.Query(ctx, query, params.Limit, params.Offset())
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var images []*models.GalleryImage
	for rows.Next() {
		image := &models.GalleryImage{}
		if err := rows.Scan(&image.ID, &image.ImageURL, &image.CreatedAt); err != nil {
			return nil, 0, err
		}
		images = append(images, image)
	}
	return images, total, rows.Err()
}

func (r *galleryRepo) GetByID(ctx context.Context, id int64) (*models.GalleryImage, error) {
	image := &models.GalleryImage{}
	query := `SELECT id, image_url, created_at FROM gallery WHERE id = $1`
	if err := r.db.QueryRow(ctx, query, id).Scan(&image.ID, &image.ImageURL, &image.CreatedAt); err != nil {
		return nil, notFound(err, "Gallery image")
	}
	return image, nil
}

func (r *galleryRepo) Create(ctx context.Context, image *models.GalleryImage) error {
	query := `
		INSERT INTO gallery (image_url, created_at)
		VALUES ($1, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, image.ImageURL).Scan(&image.ID, &image.CreatedAt)
}

func (r *galleryRepo) UpdateImage(ctx context.Context, id int64, imageURL string) error {
	tag, err := r.db.Exec(ctx, `UPDATE gallery SET image_url = $1 WHERE id = $2`, imageURL, id)
	if err != nil {
		return err
	}
	return requireAffected(tag, "Gallery image")
}

func (r *galleryRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM gallery WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(tag, "Gallery image")
}
