package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de proyecto.
const (
	ProjectStatusActive    = "active"
	ProjectStatusCompleted = "completed"
	ProjectStatusOnHold    = "on-hold"
)

// Project es una obra a la que se cargan consumos de inventario.
type Project struct {
	ID          string
	Name        string
	Description string
	StartDate   time.Time
	EndDate     *time.Time
	Status      string
	Budget      *decimal.Decimal
	ManagerID   string
	CreatedAt   time.Time
}

// ValidProjectStatus indica si s es un estado de proyecto permitido.
func ValidProjectStatus(s string) bool {
	return s == ProjectStatusActive || s == ProjectStatusCompleted || s == ProjectStatusOnHold
}
