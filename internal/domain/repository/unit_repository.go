package repository

import (
	"context"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
)

// UnitRepository define el puerto de persistencia para UnitOfMeasure.
type UnitRepository interface {
	Create(ctx context.Context, unit *entity.UnitOfMeasure) error
	GetByID(ctx context.Context, id string) (*entity.UnitOfMeasure, error)
	Update(ctx context.Context, unit *entity.UnitOfMeasure) error
	List(ctx context.Context, activeOnly bool) ([]*entity.UnitOfMeasure, error)
	ListByType(ctx context.Context, unitType string) ([]*entity.UnitOfMeasure, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
