package repository

import (
	"context"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	GetByName(ctx context.Context, name string) (*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context, activeOnly bool) ([]*entity.Category, error)
	Delete(ctx context.Context, id string) error
}
