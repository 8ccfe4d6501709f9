package inventory

import (
	"context"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el motor de costeo: lectura de totales, escritura y asiento del ledger.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		txRepo repository.InventoryTransactionRepository,
		productRepo repository.ProductRepository,
	) error) error
}
