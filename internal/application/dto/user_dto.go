package dto

import "time"

// RegisterRequest entrada para registro (auth).
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
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

// UpdateRoleRequest body de PUT /api/users/:id/role.
type UpdateRoleRequest struct {
	Role string `json:"role"`
}

// ActivityLogRequest body de POST /api/logs.
type ActivityLogRequest struct {
	Action    string `json:"action"`
	Details   string `json:"details"`
	ProjectID string `json:"project_id,omitempty"`
}

// ActivityLogResponse entrada del registro de actividad.
type ActivityLogResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Action    string    `json:"action"`
	Details   string    `json:"details"`
	ProjectID *string   `json:"project_id,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
