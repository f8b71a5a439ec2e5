package repository

import (
	"context"
	"time"
)

// TokenRevocationStore guarda los jti de tokens revocados (logout) hasta su expiración.
type TokenRevocationStore interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
