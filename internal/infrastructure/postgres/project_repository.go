package postgres

import (
	"context"
	"fmt"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.ProjectRepository = (*ProjectRepo)(nil)

const projectColumns = `id, name, description, start_date, end_date, status, budget, manager_id, created_at`

// ProjectRepo obras/proyectos.
type ProjectRepo struct {
	q Querier
}

// NewProjectRepository construye el adaptador.
func NewProjectRepository(q Querier) *ProjectRepo {
	return &ProjectRepo{q: q}
}

func (r *ProjectRepo) Create(ctx context.Context, p *entity.Project) error {
	_, err := r.q.Exec(ctx, `INSERT INTO projects (`+projectColumns+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		p.ID, p.Name, p.Description, p.StartDate, p.EndDate, p.Status, p.Budget, p.ManagerID, p.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

func (r *ProjectRepo) GetByID(ctx context.Context, id string) (*entity.Project, error) {
	p, err := scanProject(r.q.QueryRow(ctx, `SELECT `+projectColumns+` FROM projects WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get project: %w", err)
	}
	return p, nil
}

func (r *ProjectRepo) Update(ctx context.Context, p *entity.Project) error {
	cmd, err := r.q.Exec(ctx, `UPDATE projects SET name = $2, description = $3, start_date = $4, end_date = $5,
			status = $6, budget = $7, manager_id = $8
		WHERE id = $1`,
		p.ID, p.Name, p.Description, p.StartDate, p.EndDate, p.Status, p.Budget, p.ManagerID)
	if err != nil {
		return fmt.Errorf("update project: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ProjectRepo) List(ctx context.Context, status string) ([]*entity.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects`
	var args []any
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY start_date DESC, name`, args...)
	if err != nil {
		return nil, fmt.Errorf("list projects: %w", err)
	}
	defer rows.Close()
	var list []*entity.Project
	for rows.Next() {
		p, err := scanProject(rows)
		if err != nil {
			return nil, fmt.Errorf("scan project: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *ProjectRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete project: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func scanProject(row pgx.Row) (*entity.Project, error) {
	var p entity.Project
	if err := row.Scan(&p.ID, &p.Name, &p.Description, &p.StartDate, &p.EndDate, &p.Status, &p.Budget, &p.ManagerID, &p.CreatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}
