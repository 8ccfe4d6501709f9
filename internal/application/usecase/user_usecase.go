package usecase

import (
	"context"
	"time"

	"github.com/iamprathosh/BB-Inventory-APP/internal/application/dto"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
)

// UserUseCase aplica reglas de negocio para usuarios y roles.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	resp := dto.FromUser(user)
	return &resp, nil
}

// canManageUsers: el actor es admin, o todavía no existe ningún admin (alta del primero).
func (uc *UserUseCase) canManageUsers(ctx context.Context, actorID string) (bool, error) {
	admins, err := uc.repo.CountByRole(ctx, entity.RoleAdmin)
	if err != nil {
		return false, err
	}
	if admins == 0 {
		return true, nil
	}
	actor, err := uc.repo.GetByID(ctx, actorID)
	if err != nil {
		return false, err
	}
	return actor != nil && actor.Role == entity.RoleAdmin, nil
}

// UpdateRole cambia el rol de un usuario (y lo reactiva).
// Solo admins, salvo que aún no exista ninguno.
func (uc *UserUseCase) UpdateRole(ctx context.Context, actorID, userID, role string) (*dto.UserResponse, error) {
	if !entity.ValidRole(role) {
		return nil, domain.ErrInvalidInput
	}
	ok, err := uc.canManageUsers(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	user, err := uc.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	user.Role = role
	user.IsActive = true
	user.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	resp := dto.FromUser(user)
	return &resp, nil
}

// List devuelve todos los usuarios. Solo admins, salvo que aún no exista ninguno.
func (uc *UserUseCase) List(ctx context.Context, actorID string) ([]dto.UserResponse, error) {
	ok, err := uc.canManageUsers(ctx, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrForbidden
	}
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		out = append(out, dto.FromUser(u))
	}
	return out, nil
}
