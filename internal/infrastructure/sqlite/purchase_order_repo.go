package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

type purchaseOrderRow struct {
	ID           string          `db:"id"`
	PONumber     string          `db:"po_number"`
	VendorID     *string         `db:"vendor_id"`
	Supplier     string          `db:"supplier"`
	Status       string          `db:"status"`
	OrderDate    string          `db:"order_date"`
	ExpectedDate *string         `db:"expected_date"`
	ReceivedAt   *string         `db:"received_at"`
	TotalAmount  decimal.Decimal `db:"total_amount"`
	ProjectID    *string         `db:"project_id"`
	CreatedBy    string          `db:"created_by"`
}

func (r purchaseOrderRow) toEntity() *entity.PurchaseOrder {
	return &entity.PurchaseOrder{
		ID:           r.ID,
		PONumber:     r.PONumber,
		VendorID:     r.VendorID,
		Supplier:     r.Supplier,
		Status:       r.Status,
		OrderDate:    parseTime(r.OrderDate),
		ExpectedDate: parseTimePtr(r.ExpectedDate),
		ReceivedAt:   parseTimePtr(r.ReceivedAt),
		TotalAmount:  r.TotalAmount,
		ProjectID:    r.ProjectID,
		CreatedBy:    r.CreatedBy,
	}
}

type purchaseOrderItemRow struct {
	ProductID string          `db:"product_id"`
	Quantity  int64           `db:"quantity"`
	UnitPrice decimal.Decimal `db:"unit_price"`
}

const poColumns = `id, po_number, vendor_id, supplier, status, order_date, expected_date, received_at,
	total_amount, project_id, created_by`

// PurchaseOrderRepo órdenes de compra sobre SQLite.
type PurchaseOrderRepo struct {
	q sqlx.ExtContext
}

// NewPurchaseOrderRepository construye el adaptador.
func NewPurchaseOrderRepository(q sqlx.ExtContext) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create inserta cabecera y líneas. Fuera de una tx usa una propia para no dejar órdenes sin líneas.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	if db, ok := r.q.(*sqlx.DB); ok {
		tx, err := db.BeginTxx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin transaction: %w", err)
		}
		defer func() { _ = tx.Rollback() }()
		if err := NewPurchaseOrderRepository(tx).Create(ctx, po); err != nil {
			return err
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit transaction: %w", err)
		}
		return nil
	}

	_, err := r.q.ExecContext(ctx, `INSERT INTO purchase_orders (`+poColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		po.ID, po.PONumber, po.VendorID, po.Supplier, po.Status, fmtTime(po.OrderDate), fmtTimePtr(po.ExpectedDate),
		fmtTimePtr(po.ReceivedAt), po.TotalAmount, po.ProjectID, po.CreatedBy)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	for i, it := range po.Items {
		_, err := r.q.ExecContext(ctx, `INSERT INTO purchase_order_items (purchase_order_id, line, product_id, quantity, unit_price)
			VALUES (?, ?, ?, ?, ?)`, po.ID, i+1, it.ProductID, it.Quantity, it.UnitPrice)
		if err != nil {
			return fmt.Errorf("insert purchase order item: %w", err)
		}
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getOne(ctx, `SELECT `+poColumns+` FROM purchase_orders WHERE id = ?`, id)
}

func (r *PurchaseOrderRepo) GetByNumber(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error) {
	return r.getOne(ctx, `SELECT `+poColumns+` FROM purchase_orders WHERE po_number = ?`, poNumber)
}

func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseOrderRepo) getOne(ctx context.Context, query string, arg any) (*entity.PurchaseOrder, error) {
	var row purchaseOrderRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, arg); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	po := row.toEntity()
	if err := r.loadItems(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, id, status string, receivedAt *time.Time) error {
	res, err := r.q.ExecContext(ctx, `UPDATE purchase_orders SET status = ?, received_at = ? WHERE id = ?`,
		status, fmtTimePtr(receivedAt), id)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if rowsAffected(res) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PurchaseOrderRepo) List(ctx context.Context, status string) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	var rows []purchaseOrderRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query+` ORDER BY order_date DESC, po_number`, args...); err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	list := make([]*entity.PurchaseOrder, 0, len(rows))
	for _, row := range rows {
		po := row.toEntity()
		if err := r.loadItems(ctx, po); err != nil {
			return nil, err
		}
		list = append(list, po)
	}
	return list, nil
}

func (r *PurchaseOrderRepo) loadItems(ctx context.Context, po *entity.PurchaseOrder) error {
	var rows []purchaseOrderItemRow
	err := sqlx.SelectContext(ctx, r.q, &rows,
		`SELECT product_id, quantity, unit_price FROM purchase_order_items WHERE purchase_order_id = ? ORDER BY line`, po.ID)
	if err != nil {
		return fmt.Errorf("list purchase order items: %w", err)
	}
	po.Items = make([]entity.PurchaseOrderItem, 0, len(rows))
	for _, it := range rows {
		po.Items = append(po.Items, entity.PurchaseOrderItem{ProductID: it.ProductID, Quantity: it.Quantity, UnitPrice: it.UnitPrice})
	}
	return nil
}
