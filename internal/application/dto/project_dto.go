package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectRequest entrada para crear/actualizar un proyecto.
type ProjectRequest struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	StartDate   *time.Time       `json:"start_date,omitempty"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
	Status      string           `json:"status"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
}

// ProjectResponse salida de un proyecto.
type ProjectResponse struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description,omitempty"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     *time.Time       `json:"end_date,omitempty"`
	Status      string           `json:"status"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
	ManagerID   string           `json:"manager_id"`
	CreatedAt   time.Time        `json:"created_at"`
}

// UserActivityDTO consumo de un usuario en un proyecto.
type UserActivityDTO struct {
	UserID           string          `json:"user_id"`
	UserName         string          `json:"user_name"`
	TotalValue       decimal.Decimal `json:"total_value"`
	TransactionCount int             `json:"transaction_count"`
}

// ConsumptionWindowDTO consumo en una ventana de tiempo.
type ConsumptionWindowDTO struct {
	TotalValue   decimal.Decimal       `json:"total_value"`
	Count        int                   `json:"count"`
	Transactions []TransactionResponse `json:"transactions,omitempty"`
}

// ProjectAnalyticsResponse respuesta de GET /api/projects/:id/analytics.
type ProjectAnalyticsResponse struct {
	Project            ProjectResponse      `json:"project"`
	TotalInventoryCost decimal.Decimal      `json:"total_inventory_cost"`
	TotalTransactions  int                  `json:"total_transactions"`
	UserActivity       []UserActivityDTO    `json:"user_activity"`
	ThisWeek           ConsumptionWindowDTO `json:"this_week"`
	LastWeek           ConsumptionWindowDTO `json:"last_week"`
	ThisMonth          ConsumptionWindowDTO `json:"this_month"`
}
