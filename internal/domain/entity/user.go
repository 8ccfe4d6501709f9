package entity

import "time"

// Roles válidos para User.
const (
	RoleWorker     = "worker"
	RoleSupervisor = "supervisor"
	RoleAdmin      = "admin"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // worker, supervisor, admin
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si r es un rol conocido.
func ValidRole(r string) bool {
	return r == RoleWorker || r == RoleSupervisor || r == RoleAdmin
}
