package sqlite

import (
	"context"
	"fmt"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/jmoiron/sqlx"
)

var _ repository.MaintenanceRepository = (*MaintenanceRepo)(nil)

// MaintenanceRepo borrado total de datos operativos.
type MaintenanceRepo struct {
	db *sqlx.DB
}

// NewMaintenanceRepository construye el adaptador.
func NewMaintenanceRepository(db *sqlx.DB) *MaintenanceRepo {
	return &MaintenanceRepo{db: db}
}

// ClearAll borra todo salvo usuarios, en una transacción.
func (r *MaintenanceRepo) ClearAll(ctx context.Context) (repository.ClearCounts, error) {
	var counts repository.ClearCounts
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return counts, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	steps := []struct {
		table string
		dst   *int64
	}{
		{"inventory_transactions", &counts.Transactions},
		{"purchase_order_items", nil},
		{"purchase_orders", &counts.PurchaseOrders},
		{"vendor_products", &counts.VendorProducts},
		{"products", &counts.Products},
		{"vendors", &counts.Vendors},
		{"projects", &counts.Projects},
		{"categories", &counts.Categories},
		{"units_of_measure", &counts.Units},
		{"activity_logs", &counts.Logs},
	}
	for _, s := range steps {
		res, err := tx.ExecContext(ctx, "DELETE FROM "+s.table)
		if err != nil {
			return repository.ClearCounts{}, fmt.Errorf("clear %s: %w", s.table, err)
		}
		if s.dst != nil {
			*s.dst = rowsAffected(res)
		}
	}
	if err := tx.Commit(); err != nil {
		return repository.ClearCounts{}, fmt.Errorf("commit transaction: %w", err)
	}
	return counts, nil
}
