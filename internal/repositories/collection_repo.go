package repositories

import (
	"context"

	"catalogadmin/internal/common"
	"catalogadmin/internal/models"
)

type CollectionRepository interface {
	List(ctx context.Context, params common.ListParams) ([]*models.Collection, int, error)
	GetByID(ctx context.Context, id int64) (*models.Collection, error)
	Create(ctx context.Context, collection *models.Collection) error
	Update(ctx context.Context, collection *models.Collection) error
	Delete(ctx context.Context, id int64) error
}

type collectionRepo struct {
	db DBTX
}

func NewCollectionRepo(db DBTX) CollectionRepository {
	return &collectionRepo{db: db}
}

func (r *collectionRepo) List(ctx context.Context, params common.ListParams) ([]*models.Collection, int, error) {
	where, args := searchClause(params.Search, "name")

	total, err := count(ctx, r.db, `SELECT COUNT(*) FROM collections `+where, args...)
	if err != nil {
		return nil, 0, err
	}

	page, args := pageClause(args, params)
	query := `
		SELECT id, name, created_at
		FROM collections
		` + where + `
		ORDER BY id ASC
		` + page
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var collections []*models.Collection
	for rows.Next() {
		collection := &models.Collection{}
		if err := rows.Scan(&collection.ID, &collection.Name, &collection.CreatedAt); err != nil {
			return nil, 0, err
		}
		collections = append(collections, collection)
	}
	return collections, total, rows.Err()
}

func (r *collectionRepo) GetByID(ctx context.Context, id int64) (*models.Collection, error) {
	collection := &models.Collection{}
	query := `SELECT id, name, created_at FROM collections WHERE id = $1`
	err := r.db.QueryRow(ctx, query, id).Scan(&collection.ID, &collection.Name, &collection.CreatedAt)
	if err != nil {
		return nil, notFound(err, "Collection")
	}
	return collection, nil
}

func (r *collectionRepo) Create(ctx context.Context, collection *models.Collection) error {
	query := `
		INSERT INTO collections (name, created_at)
		VALUES ($1, NOW())
		RETURNING id, created_at
	`
	return r.db.QueryRow(ctx, query, collection.Name).Scan(&collection.ID, &collection.CreatedAt)
}

func (r *collectionRepo) Update(ctx context.Context, collection *models.Collection) error {
	query := `
		UPDATE collections
		SET name = $1
		WHERE id = $2
		RETURNING created_at
	`
	err := r.db.QueryRow(ctx, query, collection.Name, collection.ID).Scan(&collection.CreatedAt)
	return notFound(err, "Collection")
}

func (r *collectionRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM collections WHERE id = $1`, id)
	if err != nil {
		return err
	}
	return requireAffected(tag, "Collection")
}
