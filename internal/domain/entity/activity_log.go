package entity

import "time"

// ActivityLog registra una acción de un usuario.
type ActivityLog struct {
	ID        string
	UserID    string
	Action    string
	Details   string
	ProjectID *string
	CreatedAt time.Time
}
