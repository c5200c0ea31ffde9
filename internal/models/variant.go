package models

import (
	"time"

	"catalogadmin/internal/common"
)

// ProductVariant is a product_variants row together with the product and
// collection columns every read joins in.
type ProductVariant struct {
	ID        int64     `db:"id"`
	ProductID int64     `db:"product_id"`
	Name      string    `db:"name"`
	ImageURL1 string    `db:"image_url_1"`
	ImageURL2 *string   `db:"image_url_2"`
	ImageURL3 *string   `db:"image_url_3"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`

	ProductName    string  `db:"-"`
	ProductImage   string  `db:"-"`
	CollectionID   *int64  `db:"-"`
	CollectionName *string `db:"-"`
}

// Images returns the populated image slots in slot order.
func (v *ProductVariant) Images() []string {
	images := make([]string, 0, 3)
	if v.ImageURL1 != "" {
		images = append(images, v.ImageURL1)
	}
	for _, slot := range []*string{v.ImageURL2, v.ImageURL3} {
		if slot != nil && *slot != "" {
			images = append(images, *slot)
		}
	}
	return images
}

// VariantResponse is the nested shape the storefront consumes.
type VariantResponse struct {
	ID        int64             `json:"id"`
	Name      string            `json:"name"`
	Images    []string          `json:"images"`
	Product   VariantProductRef `json:"productId"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

type VariantProductRef struct {
	ID         int64                `json:"id"`
	Name       string               `json:"name"`
	Image      string               `json:"image"`
	Collection VariantCollectionRef `json:"collectionId"`
}

type VariantCollectionRef struct {
	ID   *int64  `json:"id"`
	Name *string `json:"name"`
}

func (v *ProductVariant) Response() *VariantResponse {
	return &VariantResponse{
		ID:     v.ID,
		Name:   v.Name,
		Images: v.Images(),
		Product: VariantProductRef{
			ID:    v.ProductID,
			Name:  v.ProductName,
			Image: v.ProductImage,
			Collection: VariantCollectionRef{
				ID:   v.CollectionID,
				Name: v.CollectionName,
			},
		},
		CreatedAt: v.CreatedAt,
		UpdatedAt: v.UpdatedAt,
	}
}

// VariantCreate holds a new variant. Images map positionally onto slots 1..3.
type VariantCreate struct {
	ProductID int64
	Name      string
	Images    []string
}

// VariantUpdate is a partial update. Unset fields keep the stored value.
// Slot 1 also keeps the stored value when cleared or empty. Slots 2 and 3
// are written as NULL when cleared or set to "", so an empty string is
// never stored in an optional slot.
type VariantUpdate struct {
	ProductID common.Optional[int64]
	Name      common.Optional[string]
	Image1    common.Optional[string]
	Image2    common.Optional[string]
	Image3    common.Optional[string]
}
