package dto

import "time"

// CreateUserRequest entrada para crear un usuario (password en texto, se hashea en el caso de uso).
type CreateUserRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password"`
	DisplayName string  `json:"display_name"`
	Role        string  `json:"role"` // admin | finance | sector
	SectorIDs   []int64 `json:"sector_ids,omitempty"`
}

// UpdateUserRequest entrada para editar un usuario. Password vacío no cambia la contraseña.
type UpdateUserRequest struct {
	Email       string  `json:"email"`
	Password    string  `json:"password,omitempty"`
	DisplayName string  `json:"display_name"`
	Role        string  `json:"role"`
	SectorIDs   []int64 `json:"sector_ids,omitempty"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID          int64     `json:"id"`
	Email       string    `json:"email"`
	DisplayName string    `json:"display_name"`
	Role        string    `json:"role"`
	SectorIDs   []int64   `json:"sector_ids"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
