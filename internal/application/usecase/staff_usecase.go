package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/SakshamC12/fliprinventory/internal/application/dto"
	"github.com/SakshamC12/fliprinventory/internal/domain"
	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
)

const minPasswordLen = 8

// StaffUseCase alta y mantenimiento del personal de bodega. El hash de password nunca sale del caso de uso.
type StaffUseCase struct {
	repo       repository.StaffRepository
	bcryptCost int
}

// NewStaffUseCase construye el caso de uso con bcrypt.DefaultCost.
func NewStaffUseCase(repo repository.StaffRepository) *StaffUseCase {
	return &StaffUseCase{repo: repo, bcryptCost: bcrypt.DefaultCost}
}

// WithBcryptCost ajusta el costo de bcrypt (pruebas).
func (uc *StaffUseCase) WithBcryptCost(cost int) *StaffUseCase {
	uc.bcryptCost = cost
	return uc
}

// Create da de alta un empleado activo. Código repetido → domain.ErrDuplicate.
func (uc *StaffUseCase) Create(ctx context.Context, in dto.CreateStaffRequest) (*dto.StaffResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(in.StaffCode))
	if code == "" || strings.TrimSpace(in.FirstName) == "" {
		return nil, fmt.Errorf("%w: código y nombre obligatorios", domain.ErrInvalidInput)
	}
	existing, err := uc.repo.GetByStaffCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := uc.hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	st := &entity.Staff{
		ID:           uuid.New().String(),
		StaffCode:    code,
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Department:   strings.TrimSpace(in.Department),
		Phone:        strings.TrimSpace(in.Phone),
		PasswordHash: hash,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, st); err != nil {
		return nil, err
	}
	return toStaffResponse(st), nil
}

func (uc *StaffUseCase) GetByID(ctx context.Context, id string) (*dto.StaffResponse, error) {
	st, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toStaffResponse(st), nil
}

// Update modifica datos del empleado; un password nuevo se vuelve a hashear.
func (uc *StaffUseCase) Update(ctx context.Context, id string, in dto.UpdateStaffRequest) (*dto.StaffResponse, error) {
	st, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.FirstName != nil {
		st.FirstName = strings.TrimSpace(*in.FirstName)
	}
	if in.LastName != nil {
		st.LastName = strings.TrimSpace(*in.LastName)
	}
	if in.Department != nil {
		st.Department = strings.TrimSpace(*in.Department)
	}
	if in.Phone != nil {
		st.Phone = strings.TrimSpace(*in.Phone)
	}
	if in.Status != nil {
		if *in.Status != entity.StatusActive && *in.Status != entity.StatusInactive {
			return nil, fmt.Errorf("%w: estado %q", domain.ErrInvalidInput, *in.Status)
		}
		st.Status = *in.Status
	}
	if in.Password != nil {
		hash, err := uc.hash(*in.Password)
		if err != nil {
			return nil, err
		}
		st.PasswordHash = hash
	}
	st.UpdatedAt = time.Now().UTC()
	if err := uc.repo.Update(ctx, st); err != nil {
		return nil, err
	}
	return toStaffResponse(st), nil
}

func (uc *StaffUseCase) List(ctx context.Context, page dto.PageRequest) ([]dto.StaffResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StaffResponse, 0, len(list))
	for _, st := range list {
		out = append(out, *toStaffResponse(st))
	}
	return out, nil
}

// Deactivate desactiva al empleado; su historial de movimientos se conserva.
func (uc *StaffUseCase) Deactivate(ctx context.Context, id string) error {
	st, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if st.Status == entity.StatusInactive {
		return nil
	}
	st.Status = entity.StatusInactive
	st.UpdatedAt = time.Now().UTC()
	return uc.repo.Update(ctx, st)
}

func (uc *StaffUseCase) get(ctx context.Context, id string) (*entity.Staff, error) {
	st, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return nil, domain.ErrNotFound
	}
	return st, nil
}

func (uc *StaffUseCase) hash(password string) (string, error) {
	if len(password) < minPasswordLen {
		return "", fmt.Errorf("%w: password de al menos %d caracteres", domain.ErrInvalidInput, minPasswordLen)
	}
	h, err := bcrypt.GenerateFromPassword([]byte(password), uc.bcryptCost)
	if err != nil {
		return "", err
	}
	return string(h), nil
}

func toStaffResponse(st *entity.Staff) *dto.StaffResponse {
	return &dto.StaffResponse{
		ID:         st.ID,
		StaffCode:  st.StaffCode,
		FirstName:  st.FirstName,
		LastName:   st.LastName,
		FullName:   st.FullName(),
		Department: st.Department,
		Phone:      st.Phone,
		Status:     st.Status,
		CreatedAt:  st.CreatedAt,
		UpdatedAt:  st.UpdatedAt,
	}
}
