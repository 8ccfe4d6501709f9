package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

const transactionColumns = `id, product_id, project_id, vendor_id, user_id, type, quantity, unit_price,
	mauc_at_time_of_transaction, total_cost_impact, new_mauc_after_transaction, date,
	reference, delivery_receipt_number, notes`

// InventoryTransactionRepo ledger de inventario sobre PostgreSQL (usable con pool o tx).
type InventoryTransactionRepo struct {
	q Querier
}

// NewInventoryTransactionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryTransactionRepository(q Querier) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

// Create inserta un asiento del ledger.
func (r *InventoryTransactionRepo) Create(ctx context.Context, t *entity.InventoryTransaction) error {
	query := `
		INSERT INTO inventory_transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		t.ID, t.ProductID, t.ProjectID, t.VendorID, t.UserID, t.Type, t.Quantity, t.UnitPrice,
		t.MAUCAtTimeOfTransaction, t.TotalCostImpact, t.NewMAUCAfterTransaction, t.Date,
		t.Reference, t.DeliveryReceiptNumber, t.Notes,
	)
	if err != nil {
		return fmt.Errorf("create inventory transaction: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento por ID.
func (r *InventoryTransactionRepo) GetByID(ctx context.Context, id string) (*entity.InventoryTransaction, error) {
	t, err := scanTransaction(r.q.QueryRow(ctx, `SELECT `+transactionColumns+` FROM inventory_transactions WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory transaction: %w", err)
	}
	return t, nil
}

// List consulta el ledger con filtros opcionales, más recientes primero.
func (r *InventoryTransactionRepo) List(ctx context.Context, f entity.TransactionFilter) ([]*entity.InventoryTransaction, error) {
	var a argList
	var where []string
	if f.ProductID != "" {
		where = append(where, "product_id = "+a.add(f.ProductID))
	}
	if f.ProjectID != "" {
		where = append(where, "project_id = "+a.add(f.ProjectID))
	}
	if f.VendorID != "" {
		where = append(where, "vendor_id = "+a.add(f.VendorID))
	}
	if f.UserID != "" {
		where = append(where, "user_id = "+a.add(f.UserID))
	}
	if len(f.Types) > 0 {
		where = append(where, "type = ANY("+a.add(f.Types)+")")
	}
	if f.From != nil {
		where = append(where, "date >= "+a.add(*f.From))
	}
	if f.To != nil {
		where = append(where, "date < "+a.add(*f.To))
	}
	query := `SELECT ` + transactionColumns + ` FROM inventory_transactions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, id"
	if f.Limit > 0 {
		query += " LIMIT " + a.add(f.Limit) + " OFFSET " + a.add(f.Offset)
	}

	rows, err := r.q.Query(ctx, query, a.args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	defer rows.Close()
	var list []*entity.InventoryTransaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan inventory transaction: %w", err)
		}
		list = append(list, t)
	}
	return list, rows.Err()
}

func scanTransaction(row pgx.Row) (*entity.InventoryTransaction, error) {
	var t entity.InventoryTransaction
	err := row.Scan(
		&t.ID, &t.ProductID, &t.ProjectID, &t.VendorID, &t.UserID, &t.Type, &t.Quantity, &t.UnitPrice,
		&t.MAUCAtTimeOfTransaction, &t.TotalCostImpact, &t.NewMAUCAfterTransaction, &t.Date,
		&t.Reference, &t.DeliveryReceiptNumber, &t.Notes,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
