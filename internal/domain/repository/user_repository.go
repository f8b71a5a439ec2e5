package repository

import (
	"context"

	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para administradores.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}
