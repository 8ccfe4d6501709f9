package sqlite

import (
	"context"
	"fmt"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

type projectRow struct {
	ID          string              `db:"id"`
	Name        string              `db:"name"`
	Description string              `db:"description"`
	StartDate   string              `db:"start_date"`
	EndDate     *string             `db:"end_date"`
	Status      string              `db:"status"`
	Budget      decimal.NullDecimal `db:"budget"`
	ManagerID   string              `db:"manager_id"`
	CreatedAt   string              `db:"created_at"`
}

func (r projectRow) toEntity() *entity.Project {
	return &entity.Project{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		StartDate:   parseTime(r.StartDate),
		EndDate:     parseTimePtr(r.EndDate),
		Status:      r.Status,
		Budget:      nullDecimalPtr(r.Budget),
		ManagerID:   r.ManagerID,
		CreatedAt:   parseTime(r.CreatedAt),
	}
}

const projectColumns = `id, name, description, start_date, end_date, status, budget, manager_id, created_at`

// ProjectRepo obras sobre SQLite.
type ProjectRepo struct {
	q sqlx.ExtContext
}

// NewProjectRepository construye el adaptador.
func NewProjectRepository(q sqlx.ExtContext) *ProjectRepo {
	return &ProjectRepo{q: q}
}

func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO projects (`+projectColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, fmtTime(p.StartDate), fmtTimePtr(p.EndDate), p.Status, decimalArg(p.Budget),
		p.ManagerID, fmtTime(p.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	var row projectRow
	if err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+projectColumns+` FROM projects WHERE id = ?`, id); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return row.toEntity(), nil
}

func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	res, err := r.q.ExecContext(ctx, `UPDATE projects SET name = ?, description = ?, start_date = ?, end_date = ?,
			status = ?, budget = ?, manager_id = ?
		WHERE id = ?`,
		p.Name, p.Description, fmtTime(p.StartDate), fmtTimePtr(p.EndDate), p.Status, decimalArg(p.Budget), p.ManagerID, p.ID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if rowsAffected(res) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProjectRepo) List(ctx context.Context, status string) ([]*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	var args []any
	if status != "" {
		query += ` WHERE status = ?`
		args = append(args, status)
	}
	var rows []projectRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query+` ORDER BY start_date DESC, name`, args...); err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	list := make([]*entity.Project, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	res, err := r.q.ExecContext(ctx, `DELETE FROM projects WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if rowsAffected(res) == 0 {
		return domain.ErrNotFound
	}
	return nil
}
