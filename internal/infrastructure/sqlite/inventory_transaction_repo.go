package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var _ repository.InventoryTransactionRepository = (*InventoryTransactionRepo)(nil)

type transactionRow struct {
	ID                      string          `db:"id"`
	ProductID               string          `db:"product_id"`
	ProjectID               *string         `db:"project_id"`
	VendorID                *string         `db:"vendor_id"`
	UserID                  *string         `db:"user_id"`
	Type                    string          `db:"type"`
	Quantity                int64           `db:"quantity"`
	UnitPrice               decimal.Decimal `db:"unit_price"`
	MAUCAtTimeOfTransaction decimal.Decimal `db:"mauc_at_time_of_transaction"`
	TotalCostImpact         decimal.Decimal `db:"total_cost_impact"`
	NewMAUCAfterTransaction decimal.Decimal `db:"new_mauc_after_transaction"`
	Date                    string          `db:"date"`
	Reference               string          `db:"reference"`
	DeliveryReceiptNumber   string          `db:"delivery_receipt_number"`
	Notes                   string          `db:"notes"`
}

func (r transactionRow) toEntity() *entity.InventoryTransaction {
	return &entity.InventoryTransaction{
		ID:                      r.ID,
		ProductID:               r.ProductID,
		ProjectID:               r.ProjectID,
		VendorID:                r.VendorID,
		UserID:                  r.UserID,
		Type:                    r.Type,
		Quantity:                r.Quantity,
		UnitPrice:               r.UnitPrice,
		MAUCAtTimeOfTransaction: r.MAUCAtTimeOfTransaction,
		TotalCostImpact:         r.TotalCostImpact,
		NewMAUCAfterTransaction: r.NewMAUCAfterTransaction,
		Date:                    parseTime(r.Date),
		Reference:               r.Reference,
		DeliveryReceiptNumber:   r.DeliveryReceiptNumber,
		Notes:                   r.Notes,
	}
}

const transactionColumns = `id, product_id, project_id, vendor_id, user_id, type, quantity, unit_price,
	mauc_at_time_of_transaction, total_cost_impact, new_mauc_after_transaction, date,
	reference, delivery_receipt_number, notes`

// InventoryTransactionRepo ledger de inventario sobre SQLite.
type InventoryTransactionRepo struct {
	q sqlx.ExtContext
}

// NewInventoryTransactionRepository construye el adaptador.
func NewInventoryTransactionRepository(q sqlx.ExtContext) *InventoryTransactionRepo {
	return &InventoryTransactionRepo{q: q}
}

func (r *InventoryTransactionRepo) Create(ctx context.Context, t *entity.InventoryTransaction) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO inventory_transactions (`+transactionColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.ProductID, t.ProjectID, t.VendorID, t.UserID, t.Type, t.Quantity, t.UnitPrice,
		t.MAUCAtTimeOfTransaction, t.TotalCostImpact, t.NewMAUCAfterTransaction, fmtTime(t.Date),
		t.Reference, t.DeliveryReceiptNumber, t.Notes,
	)
	if err != nil {
		return fmt.Errorf("create inventory transaction: %w", err)
	}
	return nil
}

func (r *InventoryTransactionRepo) GetByID(ctx context.Context, id string) (*entity.InventoryTransaction, error) {
	var row transactionRow
	if err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+transactionColumns+` FROM inventory_transactions WHERE id = ?`, id); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory transaction: %w", err)
	}
	return row.toEntity(), nil
}

// List filtra el ledger; los tipos se expanden con sqlx.In.
func (r *InventoryTransactionRepo) List(ctx context.Context, f entity.TransactionFilter) ([]*entity.InventoryTransaction, error) {
	var where []string
	var args []any
	eq := func(col, v string) {
		if v != "" {
			where = append(where, col+" = ?")
			args = append(args, v)
		}
	}
	eq("product_id", f.ProductID)
	eq("project_id", f.ProjectID)
	eq("vendor_id", f.VendorID)
	eq("user_id", f.UserID)
	if len(f.Types) > 0 {
		where = append(where, "type IN (?)")
		args = append(args, f.Types)
	}
	if f.From != nil {
		where = append(where, "date >= ?")
		args = append(args, fmtTime(*f.From))
	}
	if f.To != nil {
		where = append(where, "date < ?")
		args = append(args, fmtTime(*f.To))
	}
	query := `SELECT ` + transactionColumns + ` FROM inventory_transactions`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY date DESC, id"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}

	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	var rows []transactionRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, r.q.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("list inventory transactions: %w", err)
	}
	list := make([]*entity.InventoryTransaction, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}
