package entity

import "time"

// Estados de cuenta (usuarios y personal).
const (
	StatusActive   = "active"
	StatusInactive = "inactive"
)

// Staff representa un empleado de bodega. Inicia sesión con StaffCode y contraseña.
type Staff struct {
	ID           string
	StaffCode    string // identificador de login, único
	FirstName    string
	LastName     string
	Department   string
	Phone        string
	PasswordHash string // bcrypt, nunca texto plano
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName nombre completo para listados y auditoría.
func (s *Staff) FullName() string {
	if s.LastName == "" {
		return s.FirstName
	}
	return s.FirstName + " " + s.LastName
}
