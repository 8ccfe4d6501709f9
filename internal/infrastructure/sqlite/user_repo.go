package sqlite

import (
	"context"
	"fmt"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/jmoiron/sqlx"
)

var _ repository.UserRepository = (*UserRepo)(nil)

type userRow struct {
	ID           string `db:"id"`
	Email        string `db:"email"`
	PasswordHash string `db:"password_hash"`
	Name         string `db:"name"`
	Role         string `db:"role"`
	IsActive     bool   `db:"is_active"`
	CreatedAt    string `db:"created_at"`
	UpdatedAt    string `db:"updated_at"`
}

func (r userRow) toEntity() *entity.User {
	return &entity.User{
		ID:           r.ID,
		Email:        r.Email,
		PasswordHash: r.PasswordHash,
		Name:         r.Name,
		Role:         r.Role,
		IsActive:     r.IsActive,
		CreatedAt:    parseTime(r.CreatedAt),
		UpdatedAt:    parseTime(r.UpdatedAt),
	}
}

const userColumns = `id, email, password_hash, name, role, is_active, created_at, updated_at`

// UserRepo usuarios sobre SQLite.
type UserRepo struct {
	q sqlx.ExtContext
}

// NewUserRepository construye el adaptador.
func NewUserRepository(q sqlx.ExtContext) *UserRepo {
	return &UserRepo{q: q}
}

func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO users (`+userColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.Name, u.Role, u.IsActive, fmtTime(u.CreatedAt), fmtTime(u.UpdatedAt))
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = ?`, id)
}

func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getOne(ctx, `SELECT `+userColumns+` FROM users WHERE email = ?`, email)
}

func (r *UserRepo) getOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var row userRow
	if err := sqlx.GetContext(ctx, r.q, &row, query, arg); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return row.toEntity(), nil
}

func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	res, err := r.q.ExecContext(ctx, `UPDATE users SET name = ?, role = ?, is_active = ?, updated_at = ? WHERE id = ?`,
		u.Name, u.Role, u.IsActive, fmtTime(u.UpdatedAt), u.ID)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if rowsAffected(res) == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

func (r *UserRepo) List(ctx context.Context) ([]*entity.User, error) {
	var rows []userRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, `SELECT `+userColumns+` FROM users ORDER BY created_at`); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	list := make([]*entity.User, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

func (r *UserRepo) CountByRole(ctx context.Context, role string) (int, error) {
	var n int
	if err := sqlx.GetContext(ctx, r.q, &n, `SELECT COUNT(*) FROM users WHERE role = ? AND is_active = 1`, role); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return n, nil
}
