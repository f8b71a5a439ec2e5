package repository

import (
	"context"

	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
)

// StaffRepository define el puerto de persistencia para el personal.
type StaffRepository interface {
	Create(ctx context.Context, staff *entity.Staff) error
	GetByID(ctx context.Context, id string) (*entity.Staff, error)
	GetByStaffCode(ctx context.Context, code string) (*entity.Staff, error)
	Update(ctx context.Context, staff *entity.Staff) error
	List(ctx context.Context, limit, offset int) ([]*entity.Staff, error)
}
