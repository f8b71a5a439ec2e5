package entity

import "time"

// Roles válidos en el token de sesión.
const (
	RoleAdmin = "admin"
	RoleStaff = "staff"
)

// User representa un administrador (autenticado por email y contraseña).
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // admin
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
