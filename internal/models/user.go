package models

import "time"

type User struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password"` // Never serialize in JSON
	CreatedAt    time.Time `json:"-" db:"created_at"`
}
