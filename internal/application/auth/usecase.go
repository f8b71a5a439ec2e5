package auth

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
	"github.com/SakshamC12/fliprinventory/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// dummyHash se compara cuando la cuenta no existe para que el tiempo de respuesta no la delate.
var dummyHash, _ = bcrypt.GenerateFromPassword([]byte("fliprinventory-dummy"), bcrypt.DefaultCost)

// AuthUseCase casos de uso de autenticación: login de administradores y personal, logout y alta del primer admin.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	staffRepo   repository.StaffRepository
	revocations repository.TokenRevocationStore
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(
	userRepo repository.UserRepository,
	staffRepo repository.StaffRepository,
	revocations repository.TokenRevocationStore,
	jwtCfg JWTConfig,
) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, staffRepo: staffRepo, revocations: revocations, jwtCfg: jwtCfg}
}

// LoginAdmin verifica email/password de un administrador activo y emite un JWT con rol admin.
func (uc *AuthUseCase) LoginAdmin(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return nil, err
	}
	if user == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != entity.StatusActive || user.Role != entity.RoleAdmin {
		return nil, domain.ErrForbidden
	}
	return uc.issue(user.ID, entity.RoleAdmin, user.Name)
}

// LoginStaff verifica código de empleado y password; emite un JWT con rol staff.
func (uc *AuthUseCase) LoginStaff(ctx context.Context, in dto.StaffLoginRequest) (*dto.LoginResponse, error) {
	staff, err := uc.staffRepo.GetByStaffCode(ctx, strings.TrimSpace(in.StaffCode))
	if err != nil {
		return nil, err
	}
	if staff == nil {
		_ = bcrypt.CompareHashAndPassword(dummyHash, []byte(in.Password))
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(staff.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if staff.Status != entity.StatusActive {
		return nil, domain.ErrForbidden
	}
	return uc.issue(staff.ID, entity.RoleStaff, staff.FullName())
}

// Logout revoca el token en curso hasta su expiración.
func (uc *AuthUseCase) Logout(ctx context.Context, claims *jwt.Claims) error {
	if claims == nil || claims.TokenID() == "" {
		return domain.ErrUnauthorized
	}
	return uc.revocations.Revoke(ctx, claims.TokenID(), time.Until(claims.Expiry()))
}

// IsRevoked indica si el jti fue revocado por logout.
func (uc *AuthUseCase) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	return uc.revocations.IsRevoked(ctx, tokenID)
}

// Me identidad del token en curso.
func (uc *AuthUseCase) Me(claims *jwt.Claims) dto.MeResponse {
	return dto.MeResponse{
		ActorID:   claims.ActorID,
		Role:      claims.Role,
		Name:      claims.Name,
		ExpiresAt: claims.Expiry(),
	}
}

// SeedAdmin crea un administrador (arranque de una instalación nueva). Email existente → domain.ErrDuplicate.
func (uc *AuthUseCase) SeedAdmin(ctx context.Context, email, password, name string) (*dto.UserResponse, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || len(password) < 8 {
		return nil, fmt.Errorf("%w: email obligatorio y password de al menos 8 caracteres", domain.ErrInvalidInput)
	}
	existing, err := uc.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = email
	}
	now := time.Now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         entity.RoleAdmin,
		Status:       entity.StatusActive,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func (uc *AuthUseCase) issue(actorID, role, name string) (*dto.LoginResponse, error) {
	token, claims, err := jwt.Generate(uc.jwtCfg.Secret, actorID, role, name, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:     token,
		ExpiresAt: claims.Expiry(),
		ActorID:   actorID,
		Role:      role,
		Name:      name,
	}, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	if u == nil {
		return nil
	}
	return &dto.UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		Status:    u.Status,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}
