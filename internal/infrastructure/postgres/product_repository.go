package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productColumns = `id, sku, name, description, category, unit_of_measure, material_type, specifications,
	price, cost_price, reorder_level, supplier, quantity, moving_average_cost, total_cost_in_stock,
	last_purchase_price, last_purchase_date, created_at, updated_at`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto con sus totales de costeo iniciales.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.Description, p.Category, p.UnitOfMeasure, p.MaterialType, p.Specifications,
		p.Price, p.CostPrice, p.ReorderLevel, p.Supplier, p.Quantity, p.MovingAverageCost, p.TotalCostInStock,
		p.LastPurchasePrice, p.LastPurchaseDate, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
}

// GetBySKU obtiene un producto por SKU.
func (r *ProductRepo) GetBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE sku = $1`, sku)
}

// GetForUpdate obtiene el producto con bloqueo de fila (usar dentro de una tx).
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.getOne(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductRepo) getOne(ctx context.Context, query string, arg any) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los campos de catálogo. No toca cantidad ni costeo (se manejan vía movimientos).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET sku = $2, name = $3, description = $4, category = $5, unit_of_measure = $6,
			material_type = $7, specifications = $8, price = $9, cost_price = $10, reorder_level = $11,
			supplier = $12, updated_at = $13
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		p.ID, p.SKU, p.Name, p.Description, p.Category, p.UnitOfMeasure, p.MaterialType, p.Specifications,
		p.Price, p.CostPrice, p.ReorderLevel, p.Supplier, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// UpdateCosting escribe los totales calculados por el motor de costeo.
func (r *ProductRepo) UpdateCosting(ctx context.Context, id string, u repository.CostingUpdate) error {
	query := `
		UPDATE products SET quantity = $2, total_cost_in_stock = $3, moving_average_cost = $4,
			last_purchase_price = COALESCE($5, last_purchase_price),
			last_purchase_date = COALESCE($6, last_purchase_date),
			updated_at = $7
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		id, u.Quantity, u.TotalCostInStock, u.MovingAverageCost, u.LastPurchasePrice, u.LastPurchaseDate, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update product costing: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

// List lista el catálogo por nombre con búsqueda y paginación opcionales.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter) ([]*entity.Product, error) {
	var a argList
	var where []string
	if s := strings.TrimSpace(f.Search); s != "" {
		ph := a.add("%" + s + "%")
		where = append(where, "(name ILIKE "+ph+" OR sku ILIKE "+ph+")")
	}
	if f.Category != "" {
		where = append(where, "category = "+a.add(f.Category))
	}
	query := `SELECT ` + productColumns + ` FROM products`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY name, sku"
	if f.Limit > 0 {
		query += " LIMIT " + a.add(f.Limit) + " OFFSET " + a.add(f.Offset)
	}

	rows, err := r.q.Query(ctx, query, a.args...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// Delete elimina un producto por ID. El ledger conserva su historia.
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrProductNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Category, &p.UnitOfMeasure, &p.MaterialType, &p.Specifications,
		&p.Price, &p.CostPrice, &p.ReorderLevel, &p.Supplier, &p.Quantity, &p.MovingAverageCost, &p.TotalCostInStock,
		&p.LastPurchasePrice, &p.LastPurchaseDate, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
