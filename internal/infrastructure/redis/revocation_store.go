package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
)

var _ repository.TokenRevocationStore = (*RevocationStore)(nil)

const revokedPrefix = "auth:revoked:"

// RevocationStore lista de revocación compartida entre instancias.
// Cada jti es una clave con TTL igual al tiempo restante del token: Redis la borra sola al expirar.
type RevocationStore struct {
	client *goredis.Client
}

// NewRevocationStore construye el adaptador.
func NewRevocationStore(client *goredis.Client) *RevocationStore {
	return &RevocationStore{client: client}
}

// Revoke marca el jti como revocado. ttl <= 0 no hace nada: el token ya expiró.
func (s *RevocationStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.client.Set(ctx, revokedPrefix+tokenID, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked indica si el jti fue revocado y aún no expira.
func (s *RevocationStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	n, err := s.client.Exists(ctx, revokedPrefix+tokenID).Result()
	if err != nil {
		return false, fmt.Errorf("check revoked token: %w", err)
	}
	return n > 0, nil
}
