package repository

import (
	"context"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
)

// InventoryTransactionRepository define el puerto del ledger de inventario (solo inserción y lectura).
type InventoryTransactionRepository interface {
	Create(ctx context.Context, tx *entity.InventoryTransaction) error
	GetByID(ctx context.Context, id string) (*entity.InventoryTransaction, error)
	// List ordena por fecha descendente.
	List(ctx context.Context, filter entity.TransactionFilter) ([]*entity.InventoryTransaction, error)
}
