package auth_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/SakshamC12/fliprinventory/internal/application/auth"
	"github.com/SakshamC12/fliprinventory/internal/application/dto"
	"github.com/SakshamC12/fliprinventory/internal/domain"
	"github.com/SakshamC12/fliprinventory/internal/domain/entity"
	"github.com/SakshamC12/fliprinventory/internal/infrastructure/memory"
	"github.com/SakshamC12/fliprinventory/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests"

func newAuth(t *testing.T) (*auth.AuthUseCase, *memory.Store) {
	t.Helper()
	store := memory.NewStore()
	uc := auth.NewAuthUseCase(store.Users(), store.Staff(), memory.NewRevocationStore(), auth.JWTConfig{
		Secret: testSecret, ExpMinutes: 60, Issuer: "fliprinventory-test",
	})
	return uc, store
}

func seedStaff(t *testing.T, store *memory.Store, code, password, status string) *entity.Staff {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	st := &entity.Staff{
		ID: uuid.New().String(), StaffCode: code, FirstName: "Ana", LastName: "Pérez",
		PasswordHash: string(hash), Status: status,
	}
	require.NoError(t, store.Staff().Create(context.Background(), st))
	return st
}

func TestLoginAdmin_TokenConRolAdmin(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	admin, err := uc.SeedAdmin(ctx, "Admin@Example.com", "supersecreto", "Admin")
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", admin.Email)

	res, err := uc.LoginAdmin(ctx, dto.LoginRequest{Email: "admin@example.com", Password: "supersecreto"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, res.Role)

	claims, err := jwt.Parse(testSecret, res.Token)
	require.NoError(t, err)
	assert.Equal(t, admin.ID, claims.ActorID)
	assert.Equal(t, entity.RoleAdmin, claims.Role)
}

func TestLoginAdmin_CredencialesInvalidas(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.SeedAdmin(ctx, "admin@example.com", "supersecreto", "")
	require.NoError(t, err)

	_, err = uc.LoginAdmin(ctx, dto.LoginRequest{Email: "admin@example.com", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.LoginAdmin(ctx, dto.LoginRequest{Email: "nadie@example.com", Password: "supersecreto"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized, "no se distingue cuenta inexistente de password incorrecto")
}

func TestSeedAdmin_Duplicado(t *testing.T) {
	uc, _ := newAuth(t)
	ctx := context.Background()
	_, err := uc.SeedAdmin(ctx, "admin@example.com", "supersecreto", "")
	require.NoError(t, err)
	_, err = uc.SeedAdmin(ctx, "ADMIN@example.com", "supersecreto", "")
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	_, err = uc.SeedAdmin(ctx, "otro@example.com", "corta", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLoginStaff(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()
	st := seedStaff(t, store, "EMP001", "clave-segura", entity.StatusActive)
	seedStaff(t, store, "EMP002", "clave-segura", entity.StatusInactive)

	res, err := uc.LoginStaff(ctx, dto.StaffLoginRequest{StaffCode: "emp001", Password: "clave-segura"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleStaff, res.Role)
	assert.Equal(t, st.ID, res.ActorID)
	assert.Equal(t, "Ana Pérez", res.Name)

	_, err = uc.LoginStaff(ctx, dto.StaffLoginRequest{StaffCode: "EMP001", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.LoginStaff(ctx, dto.StaffLoginRequest{StaffCode: "EMP002", Password: "clave-segura"})
	assert.ErrorIs(t, err, domain.ErrForbidden, "personal inactivo no inicia sesión")
}

func TestLogout_RevocaElToken(t *testing.T) {
	uc, store := newAuth(t)
	ctx := context.Background()
	seedStaff(t, store, "EMP001", "clave-segura", entity.StatusActive)

	res, err := uc.LoginStaff(ctx, dto.StaffLoginRequest{StaffCode: "EMP001", Password: "clave-segura"})
	require.NoError(t, err)
	claims, err := jwt.Parse(testSecret, res.Token)
	require.NoError(t, err)

	revoked, err := uc.IsRevoked(ctx, claims.TokenID())
	require.NoError(t, err)
	assert.False(t, revoked)

	require.NoError(t, uc.Logout(ctx, claims))
	revoked, err = uc.IsRevoked(ctx, claims.TokenID())
	require.NoError(t, err)
	assert.True(t, revoked)

	me := uc.Me(claims)
	assert.Equal(t, claims.ActorID, me.ActorID)
	assert.WithinDuration(t, time.Now().Add(time.Hour), me.ExpiresAt, time.Minute)
}
