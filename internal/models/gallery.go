package models

import "time"

type GalleryImage struct {
	ID        int64     `json:"id" db:"id"`
	ImageURL  string    `json:"image_url" db:"image_url"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
