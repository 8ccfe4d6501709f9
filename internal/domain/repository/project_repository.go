package repository

import (
	"context"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
)

// ProjectRepository define el puerto de persistencia para Project.
type ProjectRepository interface {
	Create(ctx context.Context, project *entity.Project) error
	GetByID(ctx context.Context, id string) (*entity.Project, error)
	Update(ctx context.Context, project *entity.Project) error
	// List filtra por estado; status vacío devuelve todos.
	List(ctx context.Context, status string) ([]*entity.Project, error)
	Delete(ctx context.Context, id string) error
}
