package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/jmoiron/sqlx"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

type activityLogRow struct {
	ID        string  `db:"id"`
	UserID    string  `db:"user_id"`
	Action    string  `db:"action"`
	Details   string  `db:"details"`
	ProjectID *string `db:"project_id"`
	CreatedAt string  `db:"created_at"`
}

// ActivityLogRepo registro de actividad sobre SQLite.
type ActivityLogRepo struct {
	q sqlx.ExtContext
}

// NewActivityLogRepository construye el adaptador.
func NewActivityLogRepository(q sqlx.ExtContext) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

func (r *ActivityLogRepo) Create(ctx context.Context, l *entity.ActivityLog) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO activity_logs (id, user_id, action, details, project_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`, l.ID, l.UserID, l.Action, l.Details, l.ProjectID, fmtTime(l.CreatedAt))
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

func (r *ActivityLogRepo) List(ctx context.Context, f repository.LogFilter) ([]*entity.ActivityLog, error) {
	var where []string
	var args []any
	if f.UserID != "" {
		where = append(where, "user_id = ?")
		args = append(args, f.UserID)
	}
	if f.ProjectID != "" {
		where = append(where, "project_id = ?")
		args = append(args, f.ProjectID)
	}
	query := `SELECT id, user_id, action, details, project_id, created_at FROM activity_logs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, f.Limit)
	}
	var rows []activityLogRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	list := make([]*entity.ActivityLog, 0, len(rows))
	for _, row := range rows {
		list = append(list, &entity.ActivityLog{
			ID:        row.ID,
			UserID:    row.UserID,
			Action:    row.Action,
			Details:   row.Details,
			ProjectID: row.ProjectID,
			CreatedAt: parseTime(row.CreatedAt),
		})
	}
	return list, nil
}
