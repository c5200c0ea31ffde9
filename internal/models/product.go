package models

import "time"

type Product struct {
	ID             int64     `json:"id" db:"id"`
	Name           string    `json:"name" db:"name"`
	CollectionID   *int64    `json:"collection_id" db:"collection_id"`
	ImageURL       string    `json:"image_url" db:"image_url"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	CollectionName *string   `json:"collection_name" db:"-"` // From the collections join
}

// ProductUpdate is a full overwrite of name and collection. An empty
// ImageURL leaves the stored image untouched.
type ProductUpdate struct {
	ID           int64
	Name         string
	CollectionID *int64
	ImageURL     string
}
