package repository

import (
	"context"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
)

// LogFilter filtra el registro de actividad. Campos vacíos no filtran.
type LogFilter struct {
	UserID    string
	ProjectID string
	Limit     int
}

// ActivityLogRepository define el puerto del registro de actividad.
type ActivityLogRepository interface {
	Create(ctx context.Context, log *entity.ActivityLog) error
	// List ordena del más reciente al más antiguo.
	List(ctx context.Context, filter LogFilter) ([]*entity.ActivityLog, error)
}
