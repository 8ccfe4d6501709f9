package postgres

import (
	"context"
	"fmt"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/jackc/pgx/v5/pgxpool"
)

var _ repository.MaintenanceRepository = (*MaintenanceRepo)(nil)

// MaintenanceRepo operaciones administrativas sobre todas las tablas.
type MaintenanceRepo struct {
	pool *pgxpool.Pool
}

// NewMaintenanceRepository construye el adaptador.
func NewMaintenanceRepository(pool *pgxpool.Pool) *MaintenanceRepo {
	return &MaintenanceRepo{pool: pool}
}

// ClearAll borra los datos operativos en orden de dependencias. Los usuarios se conservan.
func (r *MaintenanceRepo) ClearAll(ctx context.Context) (repository.ClearCounts, error) {
	var counts repository.ClearCounts
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return counts, fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	steps := []struct {
		query string
		dst   *int64
	}{
		{`DELETE FROM inventory_transactions`, &counts.Transactions},
		{`DELETE FROM purchase_order_items`, nil},
		{`DELETE FROM purchase_orders`, &counts.PurchaseOrders},
		{`DELETE FROM vendor_products`, &counts.VendorProducts},
		{`DELETE FROM products`, &counts.Products},
		{`DELETE FROM vendors`, &counts.Vendors},
		{`DELETE FROM projects`, &counts.Projects},
		{`DELETE FROM categories`, &counts.Categories},
		{`DELETE FROM units_of_measure`, &counts.Units},
		{`DELETE FROM activity_logs`, &counts.Logs},
	}
	for _, s := range steps {
		cmd, err := tx.Exec(ctx, s.query)
		if err != nil {
			return repository.ClearCounts{}, fmt.Errorf("clear (%s): %w", s.query, err)
		}
		if s.dst != nil {
			*s.dst = cmd.RowsAffected()
		}
	}
	if err := tx.Commit(ctx); err != nil {
		return repository.ClearCounts{}, fmt.Errorf("commit transaction: %w", err)
	}
	return counts, nil
}
