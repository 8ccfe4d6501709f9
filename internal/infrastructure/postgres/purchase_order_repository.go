package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

const poColumns = `id, po_number, vendor_id, supplier, status, order_date, expected_date, received_at,
	total_amount, project_id, created_by`

// PurchaseOrderRepo órdenes de compra con sus líneas (purchase_order_items).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create inserta cabecera y líneas en un único batch (una sola transacción implícita).
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	b := &pgx.Batch{}
	b.Queue(`INSERT INTO purchase_orders (`+poColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		po.ID, po.PONumber, po.VendorID, po.Supplier, po.Status, po.OrderDate, po.ExpectedDate, po.ReceivedAt,
		po.TotalAmount, po.ProjectID, po.CreatedBy)
	for i, it := range po.Items {
		b.Queue(`INSERT INTO purchase_order_items (purchase_order_id, line, product_id, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5)`, po.ID, i+1, it.ProductID, it.Quantity, it.UnitPrice)
	}
	if err := r.q.SendBatch(ctx, b).Close(); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase order: %w", err)
	}
	return nil
}

func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getOne(ctx, `SELECT `+poColumns+` FROM purchase_orders WHERE id = $1`, id)
}

func (r *PurchaseOrderRepo) GetByNumber(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error) {
	return r.getOne(ctx, `SELECT `+poColumns+` FROM purchase_orders WHERE po_number = $1`, poNumber)
}

// GetForUpdate bloquea la cabecera; las líneas no cambian después de crear la orden.
func (r *PurchaseOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	return r.getOne(ctx, `SELECT `+poColumns+` FROM purchase_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *PurchaseOrderRepo) getOne(ctx context.Context, query string, arg any) (*entity.PurchaseOrder, error) {
	po, err := scanPurchaseOrder(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	if err := r.loadItems(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

func (r *PurchaseOrderRepo) UpdateStatus(ctx context.Context, id, status string, receivedAt *time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE purchase_orders SET status = $2, received_at = $3 WHERE id = $1`,
		id, status, receivedAt)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *PurchaseOrderRepo) List(ctx context.Context, status string) ([]*entity.PurchaseOrder, error) {
	query := `SELECT ` + poColumns + ` FROM purchase_orders`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY order_date DESC, po_number`, args...)
	if err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	var list []*entity.PurchaseOrder
	for rows.Next() {
		po, err := scanPurchaseOrder(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan purchase order: %w", err)
		}
		list = append(list, po)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list purchase orders: %w", err)
	}
	// Las líneas se leen con las filas ya cerradas: una tx de pgx no admite consultas anidadas.
	for _, po := range list {
		if err := r.loadItems(ctx, po); err != nil {
			return nil, err
		}
	}
	return list, nil
}

func (r *PurchaseOrderRepo) loadItems(ctx context.Context, po *entity.PurchaseOrder) error {
	rows, err := r.q.Query(ctx, `SELECT product_id, quantity, unit_price FROM purchase_order_items
		WHERE purchase_order_id = $1 ORDER BY line`, po.ID)
	if err != nil {
		return fmt.Errorf("list purchase order items: %w", err)
	}
	defer rows.Close()
	po.Items = po.Items[:0]
	for rows.Next() {
		var it entity.PurchaseOrderItem
		if err := rows.Scan(&it.ProductID, &it.Quantity, &it.UnitPrice); err != nil {
			return fmt.Errorf("scan purchase order item: %w", err)
		}
		po.Items = append(po.Items, it)
	}
	return rows.Err()
}

func scanPurchaseOrder(row pgx.Row) (*entity.PurchaseOrder, error) {
	var po entity.PurchaseOrder
	err := row.Scan(&po.ID, &po.PONumber, &po.VendorID, &po.Supplier, &po.Status, &po.OrderDate, &po.ExpectedDate,
		&po.ReceivedAt, &po.TotalAmount, &po.ProjectID, &po.CreatedBy)
	if err != nil {
		return nil, err
	}
	return &po, nil
}
