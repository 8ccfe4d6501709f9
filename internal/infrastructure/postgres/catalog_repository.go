package postgres

import (
	"context"
	"fmt"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.UnitRepository     = (*UnitRepo)(nil)
)

const (
	categoryColumns = `id, name, description, icon, is_active, created_by, created_at`
	unitColumns     = `id, name, abbreviation, type, is_active, created_by, created_at`
)

// CategoryRepo categorías de materiales.
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.Exec(ctx, `INSERT INTO categories (`+categoryColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		c.ID, c.Name, c.Description, c.Icon, c.IsActive, c.CreatedBy, c.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id)
}

// GetByName búsqueda sin distinguir mayúsculas.
func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE lower(name) = lower($1)`, name)
}

func (r *CategoryRepo) getOne(ctx context.Context, query string, arg any) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	cmd, err := r.q.Exec(ctx, `UPDATE categories SET name = $2, description = $3, icon = $4, is_active = $5 WHERE id = $1`,
		c.ID, c.Name, c.Description, c.Icon, c.IsActive)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	if activeOnly {
		query += ` WHERE is_active`
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()
	var list []*entity.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	if err := row.Scan(&c.ID, &c.Name, &c.Description, &c.Icon, &c.IsActive, &c.CreatedBy, &c.CreatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

// UnitRepo unidades de medida.
type UnitRepo struct {
	q Querier
}

// NewUnitRepository construye el adaptador.
func NewUnitRepository(q Querier) *UnitRepo {
	return &UnitRepo{q: q}
}

func (r *UnitRepo) Create(ctx context.Context, u *entity.UnitOfMeasure) error {
	_, err := r.q.Exec(ctx, `INSERT INTO units_of_measure (`+unitColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		u.ID, u.Name, u.Abbreviation, u.Type, u.IsActive, u.CreatedBy, u.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) GetByID(ctx context.Context, id string) (*entity.UnitOfMeasure, error) {
	u, err := scanUnit(r.q.QueryRow(ctx, `SELECT `+unitColumns+` FROM units_of_measure WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return u, nil
}

func (r *UnitRepo) Update(ctx context.Context, u *entity.UnitOfMeasure) error {
	cmd, err := r.q.Exec(ctx, `UPDATE units_of_measure SET name = $2, abbreviation = $3, type = $4, is_active = $5 WHERE id = $1`,
		u.ID, u.Name, u.Abbreviation, u.Type, u.IsActive)
	if err != nil {
		return fmt.Errorf("update unit: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UnitRepo) List(ctx context.Context, activeOnly bool) ([]*entity.UnitOfMeasure, error) {
	query := `SELECT ` + unitColumns + ` FROM units_of_measure`
	if activeOnly {
		query += ` WHERE is_active`
	}
	return r.list(ctx, query+` ORDER BY type, name`)
}

func (r *UnitRepo) ListByType(ctx context.Context, unitType string) ([]*entity.UnitOfMeasure, error) {
	return r.list(ctx, `SELECT `+unitColumns+` FROM units_of_measure WHERE type = $1 AND is_active ORDER BY name`, unitType)
}

func (r *UnitRepo) list(ctx context.Context, query string, args ...any) ([]*entity.UnitOfMeasure, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	defer rows.Close()
	var list []*entity.UnitOfMeasure
	for rows.Next() {
		u, err := scanUnit(rows)
		if err != nil {
			return nil, fmt.Errorf("scan unit: %w", err)
		}
		list = append(list, u)
	}
	return list, rows.Err()
}

func (r *UnitRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM units_of_measure`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count units: %w", err)
	}
	return n, nil
}

func (r *UnitRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM units_of_measure WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanUnit(row pgx.Row) (*entity.UnitOfMeasure, error) {
	var u entity.UnitOfMeasure
	if err := row.Scan(&u.ID, &u.Name, &u.Abbreviation, &u.Type, &u.IsActive, &u.CreatedBy, &u.CreatedAt); err != nil {
		return nil, err
	}
	return &u, nil
}
