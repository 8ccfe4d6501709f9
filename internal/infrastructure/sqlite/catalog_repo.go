package sqlite

import (
	"context"
	"fmt"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/jmoiron/sqlx"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.UnitRepository     = (*UnitRepo)(nil)
)

type categoryRow struct {
	ID          string `db:"id"`
	Name        string `db:"name"`
	Description string `db:"description"`
	Icon        string `db:"icon"`
	IsActive    bool   `db:"is_active"`
	CreatedBy   string `db:"created_by"`
	CreatedAt   string `db:"created_at"`
}

func (r categoryRow) toEntity() *entity.Category {
	return &entity.Category{
		ID: r.ID, Name: r.Name, Description: r.Description, Icon: r.Icon,
		IsActive: r.IsActive, CreatedBy: r.CreatedBy, CreatedAt: parseTime(r.CreatedAt),
	}
}

type unitRow struct {
	ID           string `db:"id"`
	Name         string `db:"name"`
	Abbreviation string `db:"abbreviation"`
	Type         string `db:"type"`
	IsActive     bool   `db:"is_active"`
	CreatedBy    string `db:"created_by"`
	CreatedAt    string `db:"created_at"`
}

func (r unitRow) toEntity() *entity.UnitOfMeasure {
	return &entity.UnitOfMeasure{
		ID: r.ID, Name: r.Name, Abbreviation: r.Abbreviation, Type: r.Type,
		IsActive: r.IsActive, CreatedBy: r.CreatedBy, CreatedAt: parseTime(r.CreatedAt),
	}
}

const (
	categoryColumns = `id, name, description, icon, is_active, created_by, created_at`
	unitColumns     = `id, name, abbreviation, type, is_active, created_by, created_at`
)

// CategoryRepo categorías sobre SQLite.
type CategoryRepo struct {
	q sqlx.ExtContext
}

// NewCategoryRepository construye el adaptador.
func NewCategoryRepository(q sqlx.ExtContext) *CategoryRepo {
	return &CategoryRepo{q: q}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO categories (`+categoryColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Description, c.Icon, c.IsActive, c.CreatedBy, fmtTime(c.CreatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *CategoryRepo) GetByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE id = ?`, id)
}

func (r *CategoryRepo) GetByName(ctx context.Context, name string) (*entity.Category, error) {
	return r.getOne(ctx, `SELECT `+categoryColumns+` FROM categories WHERE LOWER(name) = LOWER(?)`, name)
}

func (r *CategoryRepo) getOne(ctx context.Context, query string, arg any) (*entity.Category, error) {
	var row categoryRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, arg); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return row.toEntity(), nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	res, err := r.q.ExecContext(ctx, `UPDATE categories SET name = ?, description = ?, icon = ?, is_active = ? WHERE id = ?`,
		c.Name, c.Description, c.Icon, c.IsActive, c.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("update category: %w", err)
	}
	if rowsAffected(res) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *CategoryRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Category, error) {
	query := `SELECT ` + categoryColumns + ` FROM categories`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	var rows []categoryRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query+` ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	list := make([]*entity.Category, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	if rowsAffected(res) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UnitRepo unidades de medida sobre SQLite.
type UnitRepo struct {
	q sqlx.ExtContext
}

// NewUnitRepository construye el adaptador.
func NewUnitRepository(q sqlx.ExtContext) *UnitRepo {
	return &UnitRepo{q: q}
}

func (r *UnitRepo) Create(ctx context.Context, u *entity.UnitOfMeasure) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO units_of_measure (`+unitColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Name, u.Abbreviation, u.Type, u.IsActive, u.CreatedBy, fmtTime(u.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert unit: %w", err)
	}
	return nil
}

func (r *UnitRepo) GetByID(ctx context.Context, id string) (*entity.UnitOfMeasure, error) {
	var row unitRow
	if err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+unitColumns+` FROM units_of_measure WHERE id = ?`, id); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get unit: %w", err)
	}
	return row.toEntity(), nil
}

func (r *UnitRepo) Update(ctx context.Context, u *entity.UnitOfMeasure) error {
	res, err := r.q.ExecContext(ctx, `UPDATE units_of_measure SET name = ?, abbreviation = ?, type = ?, is_active = ? WHERE id = ?`,
		u.Name, u.Abbreviation, u.Type, u.IsActive, u.ID)
	if err != nil {
		return fmt.Errorf("update unit: %w", err)
	}
	if rowsAffected(res) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UnitRepo) List(ctx context.Context, activeOnly bool) ([]*entity.UnitOfMeasure, error) {
	query := `SELECT ` + unitColumns + ` FROM units_of_measure`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	return r.list(ctx, query+` ORDER BY type, name`)
}

func (r *UnitRepo) ListByType(ctx context.Context, unitType string) ([]*entity.UnitOfMeasure, error) {
	return r.list(ctx, `SELECT `+unitColumns+` FROM units_of_measure WHERE type = ? AND is_active = 1 ORDER BY name`, unitType)
}

func (r *UnitRepo) list(ctx context.Context, query string, args ...any) ([]*entity.UnitOfMeasure, error) {
	var rows []unitRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list units: %w", err)
	}
	list := make([]*entity.UnitOfMeasure, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

func (r *UnitRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM units_of_measure`); err != nil {
		return 0, fmt.Errorf("count units: %w", err)
	}
	return n, nil
}

func (r *UnitRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM units_of_measure WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete unit: %w", err)
	}
	if rowsAffected(res) == 0 {
		return domain.ErrNotFound
	}
	return nil
}
