package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/SakshamC12/fliprinventory/internal/domain"
	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
)

var _ repository.StaffRepository = (*StaffRepo)(nil)

const staffColumns = `id, staff_code, first_name, last_name, department, phone, password_hash, status, created_at, updated_at`

// StaffRepo implementación del puerto StaffRepository sobre PostgreSQL.
type StaffRepo struct {
	q Querier
}

// NewStaffRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStaffRepository(q Querier) *StaffRepo {
	return &StaffRepo{q: q}
}

// Create persiste un empleado. Código duplicado → domain.ErrDuplicate.
func (r *StaffRepo) Create(ctx context.Context, s *entity.Staff) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO staff (id, staff_code, first_name, last_name, department, phone, password_hash, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.StaffCode, s.FirstName, s.LastName, s.Department, s.Phone, s.PasswordHash, s.Status, s.CreatedAt, s.UpdatedAt)
	return mapError("insert staff", err)
}

func (r *StaffRepo) GetByID(ctx context.Context, id string) (*entity.Staff, error) {
	if !validID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+staffColumns+` FROM staff WHERE id = $1`, id)
}

// GetByStaffCode búsqueda sin distinguir mayúsculas (login de personal).
func (r *StaffRepo) GetByStaffCode(ctx context.Context, code string) (*entity.Staff, error) {
	return r.getOne(ctx, `SELECT `+staffColumns+` FROM staff WHERE lower(staff_code) = lower($1)`, code)
}

func (r *StaffRepo) Update(ctx context.Context, s *entity.Staff) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE staff SET first_name = $2, last_name = $3, department = $4, phone = $5,
			password_hash = $6, status = $7, updated_at = $8
		WHERE id = $1`,
		s.ID, s.FirstName, s.LastName, s.Department, s.Phone, s.PasswordHash, s.Status, s.UpdatedAt)
	if err != nil {
		return mapError("update staff", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StaffRepo) List(ctx context.Context, limit, offset int) ([]*entity.Staff, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+staffColumns+` FROM staff ORDER BY staff_code ASC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, mapError("list staff", err)
	}
	defer rows.Close()
	list := make([]*entity.Staff, 0)
	for rows.Next() {
		s, err := scanStaff(rows)
		if err != nil {
			return nil, fmt.Errorf("scan staff: %w", err)
		}
		list = append(list, s)
	}
	return list, mapError("list staff", rows.Err())
}

func (r *StaffRepo) getOne(ctx context.Context, query string, arg any) (*entity.Staff, error) {
	s, err := scanStaff(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, mapError("get staff", err)
	}
	return s, nil
}

func scanStaff(row pgx.Row) (*entity.Staff, error) {
	var s entity.Staff
	if err := row.Scan(&s.ID, &s.StaffCode, &s.FirstName, &s.LastName, &s.Department, &s.Phone,
		&s.PasswordHash, &s.Status, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return nil, err
	}
	return &s, nil
}
