package common

import (
	"context"
)

type contextKey string

const (
	IdentityKey contextKey = "identity"
)

// Identity is the decoded session token attached to authenticated requests.
type Identity struct {
	UserID    int64  `json:"id"`
	Email     string `json:"email"`
	IssuedAt  int64  `json:"iat"`
	ExpiresAt int64  `json:"exp"`
}

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id *Identity) context.Context {
	return context.WithValue(ctx, IdentityKey, id)
}

// GetIdentityFromContext extracts the authenticated identity from request context
func GetIdentityFromContext(ctx context.Context) (*Identity, bool) {
	id, ok := ctx.Value(IdentityKey).(*Identity)
	return id, ok && id != nil
}
