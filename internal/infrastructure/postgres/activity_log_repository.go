package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
)

var _ repository.ActivityLogRepository = (*ActivityLogRepo)(nil)

// ActivityLogRepo registro de actividad de usuarios.
type ActivityLogRepo struct {
	q Querier
}

// NewActivityLogRepository construye el adaptador.
func NewActivityLogRepository(q Querier) *ActivityLogRepo {
	return &ActivityLogRepo{q: q}
}

func (r *ActivityLogRepo) Create(ctx context.Context, l *entity.ActivityLog) error {
	_, err := r.q.Exec(ctx, `INSERT INTO activity_logs (id, user_id, action, details, project_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`, l.ID, l.UserID, l.Action, l.Details, l.ProjectID, l.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert activity log: %w", err)
	}
	return nil
}

func (r *ActivityLogRepo) List(ctx context.Context, f repository.LogFilter) ([]*entity.ActivityLog, error) {
	var a argList
	var where []string
	if f.UserID != "" {
		where = append(where, "user_id = "+a.add(f.UserID))
	}
	if f.ProjectID != "" {
		where = append(where, "project_id = "+a.add(f.ProjectID))
	}
	query := `SELECT id, user_id, action, details, project_id, created_at FROM activity_logs`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY created_at DESC"
	if f.Limit > 0 {
		query += " LIMIT " + a.add(f.Limit)
	}
	rows, err := r.q.Query(ctx, query, a.args...)
	if err != nil {
		return nil, fmt.Errorf("list activity logs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ActivityLog
	for rows.Next() {
		var l entity.ActivityLog
		if err := rows.Scan(&l.ID, &l.UserID, &l.Action, &l.Details, &l.ProjectID, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan activity log: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}
