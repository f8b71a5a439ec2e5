package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/SakshamC12/fliprinventory/internal/domain"
	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
	"github.com/SakshamC12/fliprinventory/internal/domain/repository"
)

var (
	_ repository.StaffRepository = (*StaffRepository)(nil)
	_ repository.UserRepository  = (*UserRepository)(nil)
)

// StaffRepository personal en memoria. StaffCode es único.
type StaffRepository struct {
	s *Store
}

func (r *StaffRepository) Create(_ context.Context, st *entity.Staff) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.staff[st.ID]; ok {
		return domain.ErrDuplicate
	}
	for _, other := range r.s.staff {
		if strings.EqualFold(other.StaffCode, st.StaffCode) {
			return domain.ErrDuplicate
		}
	}
	cp := *st
	r.s.staff[st.ID] = &cp
	return nil
}

func (r *StaffRepository) GetByID(_ context.Context, id string) (*entity.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	st, ok := r.s.staff[id]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (r *StaffRepository) GetByStaffCode(_ context.Context, code string) (*entity.Staff, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, st := range r.s.staff {
		if strings.EqualFold(st.StaffCode, code) {
			cp := *st
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *StaffRepository) Update(_ context.Context, st *entity.Staff) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.staff[st.ID]; !ok {
		return domain.ErrNotFound
	}
	cp := *st
	r.s.staff[st.ID] = &cp
	return nil
}

func (r *StaffRepository) List(_ context.Context, limit, offset int) ([]*entity.Staff, error) {
	r.s.mu.RLock()
	out := make([]*entity.Staff, 0, len(r.s.staff))
	for _, st := range r.s.staff {
		cp := *st
		out = append(out, &cp)
	}
	r.s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].StaffCode < out[j].StaffCode })
	return page(out, limit, offset), nil
}

// UserRepository administradores en memoria. Email único sin distinguir mayúsculas.
type UserRepository struct {
	s *Store
}

func (r *UserRepository) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, other := range r.s.users {
		if other.ID == u.ID || strings.EqualFold(other.Email, u.Email) {
			return domain.ErrDuplicate
		}
	}
	cp := *u
	r.s.users[u.ID] = &cp
	return nil
}

func (r *UserRepository) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *UserRepository) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	for _, u := range r.s.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}
