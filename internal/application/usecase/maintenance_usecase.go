package usecase

import (
	"context"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/iamprathosh/BB-Inventory-APP/pkg/logger"
)

// MaintenanceUseCase operaciones administrativas sobre los datos.
type MaintenanceUseCase struct {
	repo repository.MaintenanceRepository
	log  *logger.Logger
}

// NewMaintenanceUseCase construye el caso de uso.
func NewMaintenanceUseCase(repo repository.MaintenanceRepository, log *logger.Logger) *MaintenanceUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &MaintenanceUseCase{repo: repo, log: log.Component("maintenance")}
}

// ClearAll borra ledger, órdenes, productos, proveedores, proyectos, catálogos y registros.
// Los usuarios se conservan.
func (uc *MaintenanceUseCase) ClearAll(ctx context.Context, actorID string) (repository.ClearCounts, error) {
	counts, err := uc.repo.ClearAll(ctx)
	if err != nil {
		return repository.ClearCounts{}, err
	}
	uc.log.Warn().
		Str("actor_id", actorID).
		Int64("transactions", counts.Transactions).
		Int64("products", counts.Products).
		Int64("purchase_orders", counts.PurchaseOrders).
		Msg("datos operativos eliminados")
	return counts, nil
}
