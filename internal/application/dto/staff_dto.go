package dto

import "time"

// CreateStaffRequest entrada para dar de alta personal (password en texto, se hashea en use case).
type CreateStaffRequest struct {
	StaffCode  string `json:"staff_code" validate:"required,alphanum,min=3,max=30"`
	FirstName  string `json:"first_name" validate:"required,min=1,max=100"`
	LastName   string `json:"last_name" validate:"required,min=1,max=100"`
	Department string `json:"department" validate:"omitempty,max=100"`
	Phone      string `json:"phone" validate:"omitempty,max=30"`
	Password   string `json:"password" validate:"required,min=8"`
}

// UpdateStaffRequest entrada para actualizar personal. Password opcional se vuelve a hashear.
type UpdateStaffRequest struct {
	FirstName  *string `json:"first_name" validate:"omitempty,min=1,max=100"`
	LastName   *string `json:"last_name" validate:"omitempty,min=1,max=100"`
	Department *string `json:"department" validate:"omitempty,max=100"`
	Phone      *string `json:"phone" validate:"omitempty,max=30"`
	Password   *string `json:"password" validate:"omitempty,min=8"`
	Status     *string `json:"status" validate:"omitempty,oneof=active inactive"`
}

// StaffResponse salida de un miembro del personal (sin hash de password).
type StaffResponse struct {
	ID         string    `json:"id"`
	StaffCode  string    `json:"staff_code"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	FullName   string    `json:"full_name"`
	Department string    `json:"department"`
	Phone      string    `json:"phone"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
