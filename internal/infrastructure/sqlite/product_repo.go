package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

type productRow struct {
	ID                string              `db:"id"`
	SKU               string              `db:"sku"`
	Name              string              `db:"name"`
	Description       string              `db:"description"`
	Category          string              `db:"category"`
	UnitOfMeasure     string              `db:"unit_of_measure"`
	MaterialType      string              `db:"material_type"`
	Specifications    string              `db:"specifications"`
	Price             decimal.Decimal     `db:"price"`
	CostPrice         decimal.NullDecimal `db:"cost_price"`
	ReorderLevel      *int64              `db:"reorder_level"`
	Supplier          string              `db:"supplier"`
	Quantity          int64               `db:"quantity"`
	MovingAverageCost decimal.Decimal     `db:"moving_average_cost"`
	TotalCostInStock  decimal.Decimal     `db:"total_cost_in_stock"`
	LastPurchasePrice decimal.NullDecimal `db:"last_purchase_price"`
	LastPurchaseDate  *string             `db:"last_purchase_date"`
	CreatedAt         string              `db:"created_at"`
	UpdatedAt         string              `db:"updated_at"`
}

func (r productRow) toEntity() *entity.Product {
	return &entity.Product{
		ID:                r.ID,
		SKU:               r.SKU,
		Name:              r.Name,
		Description:       r.Description,
		Category:          r.Category,
		UnitOfMeasure:     r.UnitOfMeasure,
		MaterialType:      r.MaterialType,
		Specifications:    r.Specifications,
		Price:             r.Price,
		CostPrice:         nullDecimalPtr(r.CostPrice),
		ReorderLevel:      r.ReorderLevel,
		Supplier:          r.Supplier,
		Quantity:          r.Quantity,
		MovingAverageCost: r.MovingAverageCost,
		TotalCostInStock:  r.TotalCostInStock,
		LastPurchasePrice: nullDecimalPtr(r.LastPurchasePrice),
		LastPurchaseDate:  parseTimePtr(r.LastPurchaseDate),
		CreatedAt:         parseTime(r.CreatedAt),
		UpdatedAt:         parseTime(r.UpdatedAt),
	}
}

const productColumns = `id, sku, name, description, category, unit_of_measure, material_type, specifications,
	price, cost_price, reorder_level, supplier, quantity, moving_average_cost, total_cost_in_stock,
	last_purchase_price, last_purchase_date, created_at, updated_at`

// ProductRepo productos sobre SQLite. q es la base o la tx abierta por TxRunner.
type ProductRepo struct {
	q sqlx.ExtContext
}

// NewProductRepository construye el adaptador.
func NewProductRepository(q sqlx.ExtContext) *ProductRepo {
	return &ProductRepo{q: q}
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO products (`+productColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.SKU, p.Name, p.Description, p.Category, p.UnitOfMeasure, p.MaterialType, p.Specifications,
		p.Price, decimalArg(p.CostPrice), p.ReorderLevel, p.Supplier, p.Quantity, p.MovingAverageCost, p.TotalCostInStock,
		decimalArg(p.LastPurchasePrice), fmtTimePtr(p.LastPurchaseDate), fmtTime(p.CreatedAt), fmtTime(p.UpdatedAt),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = ?`, id)
}

func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE sku = ?`, sku)
}

// GetForUpdate en SQLite la tx ya tiene la única conexión de escritura; no hay FOR UPDATE.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	var row productRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, arg); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return row.toEntity(), nil
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.q.ExecContext(ctx, `UPDATE products SET sku = ?, name = ?, description = ?, category = ?,
			unit_of_measure = ?, material_type = ?, specifications = ?, price = ?, cost_price = ?,
			reorder_level = ?, supplier = ?, updated_at = ?
		WHERE id = ?`,
		p.SKU, p.Name, p.Description, p.Category, p.UnitOfMeasure, p.MaterialType, p.Specifications,
		p.Price, decimalArg(p.CostPrice), p.ReorderLevel, p.Supplier, fmtTime(p.UpdatedAt), p.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if rowsAffected(res) == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepo) UpdateCosting(ctx context.Context, id string, u repository.CostingUpdate) error {
	res, err := r.q.ExecContext(ctx, `UPDATE products SET quantity = ?, total_cost_in_stock = ?, moving_average_cost = ?,
			last_purchase_price = COALESCE(?, last_purchase_price),
			last_purchase_date = COALESCE(?, last_purchase_date),
			updated_at = ?
		WHERE id = ?`,
		u.Quantity, u.TotalCostInStock, u.MovingAverageCost, decimalArg(u.LastPurchasePrice),
		fmtTimePtr(u.LastPurchaseDate), fmtTime(u.UpdatedAt), id,
	)
	if err != nil {
		return fmt.Errorf("update product costing: %w", err)
	}
	if rowsAffected(res) == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var where []string
	var args []any
	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + strings.ToLower(s) + "%"
		where = append(where, "(LOWER(name) LIKE ? OR LOWER(sku) LIKE ?)")
		args = append(args, like, like)
	}
	if f.Category != "" {
		where = append(where, "category = ?")
		args = append(args, f.Category)
	}
	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name, sku"
	if f.Limit > 0 {
		query += " LIMIT ? OFFSET ?"
		args = append(args, f.Limit, f.Offset)
	}
	var rows []productRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	list := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM products WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if rowsAffected(res) == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func nullDecimalPtr(n decimal.NullDecimal) *decimal.Decimal {
	if !n.Valid {
		return nil
	}
	d := n.Decimal
	return &d
}

// decimalArg convierte un decimal opcional en argumento (NULL si nil).
func decimalArg(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}
