package usecase

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/dto"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProjectUseCase administra obras y su analítica de consumo.
type ProjectUseCase struct {
	projects repository.ProjectRepository
	txs      repository.InventoryTransactionRepository
	users    repository.UserRepository
	now      func() time.Time
}

// NewProjectUseCase construye el caso de uso.
func NewProjectUseCase(
	projects repository.ProjectRepository,
	txs repository.InventoryTransactionRepository,
	users repository.UserRepository,
) *ProjectUseCase {
	return &ProjectUseCase{projects: projects, txs: txs, users: users, now: time.Now}
}

// Create crea un proyecto gestionado por el usuario actual. Estado por defecto: active.
func (uc *ProjectUseCase) Create(ctx context.Context, managerID string, in dto.ProjectRequest) (*dto.ProjectResponse, error) {
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	status := in.Status
	if status == "" {
		status = entity.ProjectStatusActive
	}
	if !entity.ValidProjectStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	if in.Budget != nil && in.Budget.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	start := now
	if in.StartDate != nil {
		start = *in.StartDate
	}
	if in.EndDate != nil && in.EndDate.Before(start) {
		return nil, domain.ErrInvalidInput
	}
	p := &entity.Project{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		StartDate:   start,
		EndDate:     in.EndDate,
		Status:      status,
		Budget:      in.Budget,
		ManagerID:   managerID,
		CreatedAt:   now,
	}
	if err := uc.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	resp := dto.FromProject(p)
	return &resp, nil
}

// Get obtiene un proyecto.
func (uc *ProjectUseCase) Get(ctx context.Context, id string) (*dto.ProjectResponse, error) {
	p, err := uc.require(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromProject(p)
	return &resp, nil
}

// Update actualiza los campos enviados.
func (uc *ProjectUseCase) Update(ctx context.Context, id string, in dto.ProjectRequest) (*dto.ProjectResponse, error) {
	p, err := uc.require(ctx, id)
	if err != nil {
		return nil, err
	}
	if s := strings.TrimSpace(in.Name); s != "" {
		p.Name = s
	}
	if in.Description != "" {
		p.Description = in.Description
	}
	if in.Status != "" {
		if !entity.ValidProjectStatus(in.Status) {
			return nil, domain.ErrInvalidInput
		}
		p.Status = in.Status
	}
	if in.StartDate != nil {
		p.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		p.EndDate = in.EndDate
	}
	if p.EndDate != nil && p.EndDate.Before(p.StartDate) {
		return nil, domain.ErrInvalidInput
	}
	if in.Budget != nil {
		if in.Budget.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.Budget = in.Budget
	}
	if err := uc.projects.Update(ctx, p); err != nil {
		return nil, err
	}
	resp := dto.FromProject(p)
	return &resp, nil
}

// List devuelve los proyectos; status vacío devuelve todos.
func (uc *ProjectUseCase) List(ctx context.Context, status string) ([]dto.ProjectResponse, error) {
	if status != "" && !entity.ValidProjectStatus(status) {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.projects.List(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProjectResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.FromProject(p))
	}
	return out, nil
}

// Delete elimina un proyecto. Los movimientos del ledger conservan la referencia.
func (uc *ProjectUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.require(ctx, id); err != nil {
		return err
	}
	return uc.projects.Delete(ctx, id)
}

// Analytics calcula el costo de inventario consumido por la obra (Σ|q|·precio unitario),
// la actividad por usuario y el consumo de esta semana, la anterior y los últimos 30 días.
func (uc *ProjectUseCase) Analytics(ctx context.Context, id string) (*dto.ProjectAnalyticsResponse, error) {
	p, err := uc.require(ctx, id)
	if err != nil {
		return nil, err
	}
	txs, err := uc.txs.List(ctx, entity.TransactionFilter{ProjectID: id})
	if err != nil {
		return nil, err
	}

	now := uc.now()
	weekAgo := now.AddDate(0, 0, -7)
	twoWeeksAgo := now.AddDate(0, 0, -14)
	monthAgo := now.AddDate(0, 0, -30)

	total := decimal.Zero
	var thisWeek, lastWeek, thisMonth dto.ConsumptionWindowDTO
	thisWeek.TotalValue, lastWeek.TotalValue, thisMonth.TotalValue = decimal.Zero, decimal.Zero, decimal.Zero
	byUser := map[string]*dto.UserActivityDTO{}

	for _, t := range txs {
		v := consumedValue(t)
		total = total.Add(v)
		if t.UserID != nil {
			a, ok := byUser[*t.UserID]
			if !ok {
				a = &dto.UserActivityDTO{UserID: *t.UserID, TotalValue: decimal.Zero}
				byUser[*t.UserID] = a
			}
			a.TotalValue = a.TotalValue.Add(v)
			a.TransactionCount++
		}
		switch {
		case !t.Date.Before(weekAgo):
			addToWindow(&thisWeek, t, v, false)
		case !t.Date.Before(twoWeeksAgo):
			addToWindow(&lastWeek, t, v, false)
		}
		if !t.Date.Before(monthAgo) {
			addToWindow(&thisMonth, t, v, true)
		}
	}

	activity := make([]dto.UserActivityDTO, 0, len(byUser))
	for uid, a := range byUser {
		u, err := uc.users.GetByID(ctx, uid)
		if err != nil {
			return nil, err
		}
		if u == nil {
			continue
		}
		a.UserName = u.Name
		a.TotalValue = a.TotalValue.Round(2)
		activity = append(activity, *a)
	}
	sort.Slice(activity, func(i, j int) bool {
		return activity[i].TotalValue.GreaterThan(activity[j].TotalValue)
	})

	thisWeek.TotalValue = thisWeek.TotalValue.Round(2)
	lastWeek.TotalValue = lastWeek.TotalValue.Round(2)
	thisMonth.TotalValue = thisMonth.TotalValue.Round(2)

	return &dto.ProjectAnalyticsResponse{
		Project:            dto.FromProject(p),
		TotalInventoryCost: total.Round(2),
		TotalTransactions:  len(txs),
		UserActivity:       activity,
		ThisWeek:           thisWeek,
		LastWeek:           lastWeek,
		ThisMonth:          thisMonth,
	}, nil
}

func consumedValue(t *entity.InventoryTransaction) decimal.Decimal {
	q := t.Quantity
	if q < 0 {
		q = -q
	}
	return t.UnitPrice.Mul(decimal.NewFromInt(q))
}

func addToWindow(w *dto.ConsumptionWindowDTO, t *entity.InventoryTransaction, v decimal.Decimal, keep bool) {
	w.TotalValue = w.TotalValue.Add(v)
	w.Count++
	if keep {
		w.Transactions = append(w.Transactions, dto.FromTransaction(t))
	}
}

func (uc *ProjectUseCase) require(ctx context.Context, id string) (*entity.Project, error) {
	p, err := uc.projects.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	return p, nil
}
