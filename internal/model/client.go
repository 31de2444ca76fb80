package model

import "time"

type Client struct {
	ID           int        `json:"id"`
	FirstName    string     `json:"first_name"`
	LastName     string     `json:"last_name,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Email        string     `json:"email,omitempty"`
	RegisteredAt *time.Time `json:"registered_at,omitempty"`
}

type CreateClientRequest struct {
	FirstName string `json:"first_name" binding:"required,max=100"`
	LastName  string `json:"last_name,omitempty" binding:"max=100"`
	Phone     string `json:"phone,omitempty" binding:"max=20"`
	Email     string `json:"email,omitempty" binding:"omitempty,email,max=100"`
}

type UpdateClientRequest struct {
	FirstName *string `json:"first_name,omitempty"`
	LastName  *string `json:"last_name,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Email     *string `json:"email,omitempty" binding:"omitempty,email"`
}

type ClientFilters struct {
	ClientID  *int
	FirstName *string
	LastName  *string
	Email     *string
}
