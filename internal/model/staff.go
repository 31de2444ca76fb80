package model

import "time"

type Staff struct {
	ID        int        `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name,omitempty"`
	Role      string     `json:"role"`
	Phone     string     `json:"phone,omitempty"`
	Email     string     `json:"email,omitempty"`
	HiredAt   *time.Time `json:"hired_at,omitempty"`
	Active    bool       `json:"active"`
}

type CreateStaffRequest struct {
	FirstName string     `json:"first_name" binding:"required,max=100"`
	LastName  string     `json:"last_name,omitempty" binding:"max=100"`
	Role      string     `json:"role" binding:"required,max=50"`
	Phone     string     `json:"phone,omitempty" binding:"max=20"`
	Email     string     `json:"email,omitempty" binding:"omitempty,email,max=100"`
	HiredAt   *time.Time `json:"hired_at,omitempty"`
	Active    *bool      `json:"active,omitempty"`
}

type StaffFilters struct {
	StaffID *int
	Role    *string
	Active  *bool
}
