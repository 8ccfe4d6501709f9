package sqlite

import (
	"context"
	"fmt"

	"github.com/iamprathosh/BB-Inventory-APP/internal/application/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/purchasing"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/jmoiron/sqlx"
)

var _ inventory.TxRunner = (*TxRunner)(nil)
var _ purchasing.TxRunner = (*TxRunner)(nil)

// TxRunner transacciones SQLite. Con una sola conexión abierta las transacciones quedan
// serializadas, equivalente al bloqueo de fila de PostgreSQL.
type TxRunner struct {
	db *sqlx.DB
}

// NewTxRunner construye el runner.
func NewTxRunner(db *sqlx.DB) *TxRunner {
	return &TxRunner{db: db}
}

func (r *TxRunner) Run(ctx context.Context, fn func(
	txRepo repository.InventoryTransactionRepository,
	productRepo repository.ProductRepository,
) error) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		return fn(NewInventoryTransactionRepository(tx), NewProductRepository(tx))
	})
}

func (r *TxRunner) RunPurchasing(ctx context.Context, fn func(
	txRepo repository.InventoryTransactionRepository,
	productRepo repository.ProductRepository,
	poRepo repository.PurchaseOrderRepository,
) error) error {
	return r.inTx(ctx, func(tx *sqlx.Tx) error {
		return fn(NewInventoryTransactionRepository(tx), NewProductRepository(tx), NewPurchaseOrderRepository(tx))
	})
}

func (r *TxRunner) inTx(ctx context.Context, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
