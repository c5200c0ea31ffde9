package repositories

import (
	"context"

	"catalogadmin/internal/common"
	"catalogadmin/internal/models"

	"github.com/jackc/pgx/v5"
)

type VariantRepository interface {
	List(ctx context.Context, params common.ListParams) ([]*models.ProductVariant, int, error)
	GetByID(ctx context.Context, id int64) (*models.ProductVariant, error)
	GetByProductID(ctx context.Context, productID int64) ([]*models.ProductVariant, error)
	Create(ctx context.Context, create *models.VariantCreate) (int64, error)
	Update(ctx context.Context, id int64, update *models.VariantUpdate) error
	Delete(ctx context.Context, id int64) error
}

type variantRepo struct {
	db DBTX
}

func NewVariantRepo(db DBTX) VariantRepository {
	return &variantRepo{db: db}
}

const variantSelect = `
	SELECT v.id, v.product_id, v.name, v.image_url_1, v.image_url_2, v.image_url_3,
		v.created_at, v.updated_at, p.name, p.image_url, p.collection_id, c.name
	FROM product_variants v
	JOIN products p ON p.id = v.product_id
	LEFT JOIN collections c ON c.id = p.collection_id
`

func scanVariant(row pgx.Row) (*models.ProductVariant, error) {
	v := &models.ProductVariant{}
	err := row.Scan(&v.ID, &v.ProductID, &v.Name, &v.ImageURL1, &v.ImageURL2, &v.ImageURL3,
		&v.CreatedAt, &v.UpdatedAt, &v.ProductName, &v.ProductImage, &v.CollectionID, &v.CollectionName)
	if err != nil {
		return nil, err
	}
	return v, nil
}

func collectVariants(rows pgx.Rows) ([]*models.ProductVariant, error) {
	defer rows.Close()

	var variants []*models.ProductVariant
	for rows.Next() {
		v, err := scanVariant(rows)
		if err != nil {
			return nil, err
		}
		variants = append(variants, v)
	}
	return variants, rows.Err()
}

// List searches variant, product and collection names in a single condition.
func (r *variantRepo) List(ctx context.Context, params common.ListParams) ([]*models.ProductVariant, int, error) {
	where, args := searchClause(params.Search, "v.name", "p.name", "c.name")

	countQuery := `
		SELECT COUNT(*)
		FROM product_variants v
		JOIN products p ON p.id = v.product_id
		LEFT JOIN collections c ON c.id = p.collection_id
		` + where
	total, err := count(ctx, r.db, countQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	page, args := pageClause(args, params)
	query := variantSelect + where + `
		ORDER BY v.created_at DESC, v.id DESC
		` + page
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	variants, err := collectVariants(rows)
	if err != nil {
		return nil, 0, err
	}
	return variants, total, nil
}

func (r *variantRepo) GetByID(ctx context.Context, id int64) (*models.ProductVariant, error) {
	v, err := scanVariant(r.db.QueryRow(ctx, variantSelect+`WHERE v.id = $1`, id))
	if err != nil {
		return nil, notFound(err, "Product variant")
	}
	return v, nil
}

func (r *variantRepo) GetByProductID(ctx context.Context, productID int64) ([]*models.ProductVariant, error) {
	query := variantSelect + `
		WHERE v.product_id = $1
		ORDER BY v.created_at DESC, v.id DESC
	`
	rows, err := r.db.Query(ctx, query, productID)
	if err != nil {
		return nil, err
	}
	return collectVariants(rows)
}

// Create stores images positionally; slots past len(Images) are NULL.
func (r *variantRepo) Create(ctx context.Context, create *models.VariantCreate) (int64, error) {
	slots := [3]*string{}
	for i := 0; i < len(create.Images) && i < len(slots); i++ {
		image := create.Images[i]
		slots[i] = &image
	}
	image1 := ""
	if slots[0] != nil {
		image1 = *slots[0]
	}

	query := `
		INSERT INTO product_variants (product_id, name, image_url_1, image_url_2, image_url_3, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		RETURNING id
	`
	var id int64
	err := r.db.QueryRow(ctx, query, create.ProductID, create.Name, image1, slots[1], slots[2]).Scan(&id)
	return id, err
}

type variantRow struct {
	productID int64
	name      string
	image1    string
	image2    *string
	image3    *string
}

// Update merges the request over the stored row before writing it back.
func (r *variantRepo) Update(ctx context.Context, id int64, update *models.VariantUpdate) error {
	current := variantRow{}
	query := `
		SELECT product_id, name, image_url_1, image_url_2, image_url_3
		FROM product_variants
		WHERE id = $1
	`
	err := r.db.QueryRow(ctx, query, id).
		Scan(&current.productID, &current.name, &current.image1, &current.image2, &current.image3)
	if err != nil {
		return notFound(err, "Product variant")
	}

	merged := mergeVariant(current, update)
	query = `
		UPDATE product_variants
		SET product_id = $1, name = $2, image_url_1 = $3, image_url_2 = $4, image_url_3 = $5, updated_at = NOW()
		WHERE id = $6
	`
	tag, err := r.db.Exec(ctx, query, merged.productID, merged.name, merged.image1, merged.image2, merged.image3, id)
	if err != nil {
		return err
	}
	return requireAffected(tag, "Product variant")
}

func mergeVariant(current variantRow, update *models.VariantUpdate) variantRow {
	merged := current
	if v, ok := update.ProductID.Value(); ok && v != 0 {
		merged.productID = v
	}
	if v, ok := update.Name.Value(); ok && v != "" {
		merged.name = v
	}
	// Slot 1 is NOT NULL: anything but a non-empty value keeps the stored one.
	if v, ok := update.Image1.Value(); ok && v != "" {
		merged.image1 = v
	}
	merged.image2 = mergeSlot(current.image2, update.Image2)
	merged.image3 = mergeSlot(current.image3, update.Image3)
	return merged
}

// mergeSlot keeps the stored value only when the slot is unset. A cleared
// or empty slot becomes NULL.
func mergeSlot(current *string, update common.Optional[string]) *string {
	if update.IsUnset() {
		return current
	}
	v, ok := update.Value()
	if !ok || v == "" {
		return nil
	}
	return &v
}

func (r *variantRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM product_variants WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(tag, "Product variant")
}
