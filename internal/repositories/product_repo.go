package repositories

import (
	"context"

	"catalogadmin/internal/common"
	"catalogadmin/internal/models"

	"github.com/jackc/pgx/v5"
)

type ProductRepository interface {
	List(ctx context.Context, params common.ListParams) ([]*models.Product, int, error)
	GetByID(ctx context.Context, id int64) (*models.Product, error)
	GetByCollectionID(ctx context.Context, collectionID int64) ([]*models.Product, error)
	Create(ctx context.Context, product *models.Product) error
	Update(ctx context.Context, update *models.ProductUpdate) error
	Delete(ctx context.Context, id int64) error
}

type productRepo struct {
	db DBTX
}

func NewProductRepo(db DBTX) ProductRepository {
	return &productRepo{db: db}
}

const productSelect = `
	SELECT p.id, p.name, p.collection_id, p.image_url, p.created_at, c.name
	FROM products p
	LEFT JOIN collections c ON c.id = p.collection_id
`

func scanProduct(row pgx.Row) (*models.Product, error) {
	product := &models.Product{}
	err := row.Scan(&product.ID, &product.Name, &product.CollectionID, &product.ImageURL,
		&product.CreatedAt, &product.CollectionName)
	if err != nil {
		return nil, err
	}
	return product, nil
}

func collectProducts(rows pgx.Rows) ([]*models.Product, error) {
	defer rows.Close()

	var products []*models.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		products = append(products, product)
	}
	return products, rows.Err()
}

// List searches product name and collection name in a single condition.
func (r *productRepo) List(ctx context.Context, params common.ListParams) ([]*models.Product, int, error) {
	where, args := searchClause(params.Search, "p.name", "c.name")

	countQuery := `
		SELECT COUNT(*)
		FROM products p
		LEFT JOIN collections c ON c.id = p.collection_id
		` + where
	total, err := count(ctx, r.db, countQuery, args...)
	if err != nil {
		return nil, 0, err
	}

	page, args := pageClause(args, params)
	query := productSelect + where + `
		ORDER BY p.created_at DESC, p.id DESC
		` + page
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	products, err := collectProducts(rows)
	if err != nil {
		return nil, 0, err
	}
	return products, total, nil
}

func (r *productRepo) GetByID(ctx context.Context, id int64) (*models.Product, error) {
	product, err := scanProduct(r.db.QueryRow(ctx, productSelect+`WHERE p.id = $1`, id))
	if err != nil {
		return nil, notFound(err, "Product")
	}
	return product, nil
}

func (r *productRepo) GetByCollectionID(ctx context.Context, collectionID int64) ([]*models.Product, error) {
	query := productSelect + `
		WHERE p.collection_id = $1
		ORDER BY p.created_at DESC, p.id DESC
	`
	rows, err := r.db.Query(ctx, query, collectionID)
	if err != nil {
		return nil, err
	}
	return collectProducts(rows)
}

func (r *productRepo) Create(ctx context.Context, product *models.Product) error {
	query := `
		INSERT INTO products (name, collection_id, image_url, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, product.Name, product.CollectionID, product.ImageURL).
		Scan(&product.ID, &product.CreatedAt)
}

// Update overwrites name and collection_id. image_url is only part of the
// statement when a replacement is given.
func (r *productRepo) Update(ctx context.Context, update *models.ProductUpdate) error {
	var (
		query string
		args  []any
	)
	if update.ImageURL != "" {
		query = `
			UPDATE products
			SET name = $1, collection_id = $2, image_url = $3
			WHERE id = $4
		`
		args = []any{update.Name, update.CollectionID, update.ImageURL, update.ID}
	} else {
		query = `
			UPDATE products
			SET name = $1, collection_id = $2
			WHERE id = $3
		`
		args = []any{update.Name, update.CollectionID, update.ID}
	}

	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	return requireAffected(tag, "Product")
}

// Delete removes the row. Variants go with it through ON DELETE CASCADE.
func (r *productRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(tag, "Product")
}
