package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/dto"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
)

const defaultLogLimit = 100

// ActivityUseCase registra y consulta la actividad de usuarios.
type ActivityUseCase struct {
	repo repository.ActivityLogRepository
}

// NewActivityUseCase construye el caso de uso.
func NewActivityUseCase(repo repository.ActivityLogRepository) *ActivityUseCase {
	return &ActivityUseCase{repo: repo}
}

// Add agrega una entrada para el usuario actual.
func (uc *ActivityUseCase) Add(ctx context.Context, userID string, in dto.ActivityLogRequest) (*dto.ActivityLogResponse, error) {
	if userID == "" {
		return nil, domain.ErrUnauthorized
	}
	if strings.TrimSpace(in.Action) == "" {
		return nil, domain.ErrInvalidInput
	}
	l := &entity.ActivityLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    strings.TrimSpace(in.Action),
		Details:   in.Details,
		CreatedAt: time.Now(),
	}
	if in.ProjectID != "" {
		pid := in.ProjectID
		l.ProjectID = &pid
	}
	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	resp := dto.FromActivityLog(l)
	return &resp, nil
}

// List devuelve las entradas más recientes primero.
func (uc *ActivityUseCase) List(ctx context.Context, userID, projectID string, limit int) ([]dto.ActivityLogResponse, error) {
	if limit <= 0 {
		limit = defaultLogLimit
	}
	list, err := uc.repo.List(ctx, repository.LogFilter{UserID: userID, ProjectID: projectID, Limit: limit})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ActivityLogResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.FromActivityLog(l))
	}
	return out, nil
}
