package entity

import "time"

// Category agrupa productos del catálogo (administrada por admin).
type Category struct {
	ID          string
	Name        string
	Description string
	Icon        string
	IsActive    bool
	CreatedBy   string
	CreatedAt   time.Time
}
