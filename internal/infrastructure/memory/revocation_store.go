package memory

import (
	"context"
	"sync"
	"time"

	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
)

var _ repository.TokenRevocationStore = (*RevocationStore)(nil)

// RevocationStore lista de tokens revocados en un solo proceso (cuando no hay Redis).
type RevocationStore struct {
	mu      sync.Mutex
	revoked map[string]time.Time // jti → expiración
	now     func() time.Time
}

// NewRevocationStore crea una lista vacía.
func NewRevocationStore() *RevocationStore {
	return &RevocationStore{revoked: make(map[string]time.Time), now: time.Now}
}

// Revoke guarda el jti hasta que expire el token. ttl <= 0 no guarda nada (el token ya expiró).
func (s *RevocationStore) Revoke(_ context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	for id, exp := range s.revoked {
		if !exp.After(now) {
			delete(s.revoked, id)
		}
	}
	s.revoked[tokenID] = now.Add(ttl)
	return nil
}

func (s *RevocationStore) IsRevoked(_ context.Context, tokenID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	exp, ok := s.revoked[tokenID]
	if !ok {
		return false, nil
	}
	if !exp.After(s.now()) {
		delete(s.revoked, tokenID)
		return false, nil
	}
	return true, nil
}
