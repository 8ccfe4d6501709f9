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

// defaultUnits unidades cargadas por InitializeDefaultUnits.
var defaultUnits = []entity.UnitOfMeasure{
	{Name: "Piece", Abbreviation: "pcs", Type: entity.UnitTypeCount},
	{Name: "Bag", Abbreviation: "bag", Type: entity.UnitTypeCount},
	{Name: "Kilogram", Abbreviation: "kg", Type: entity.UnitTypeWeight},
	{Name: "Gram", Abbreviation: "g", Type: entity.UnitTypeWeight},
	{Name: "Ton", Abbreviation: "t", Type: entity.UnitTypeWeight},
	{Name: "Litre", Abbreviation: "ltr", Type: entity.UnitTypeVolume},
	{Name: "Millilitre", Abbreviation: "ml", Type: entity.UnitTypeVolume},
	{Name: "Meter", Abbreviation: "m", Type: entity.UnitTypeLength},
	{Name: "Centimeter", Abbreviation: "cm", Type: entity.UnitTypeLength},
	{Name: "Square Meter", Abbreviation: "m²", Type: entity.UnitTypeArea},
	{Name: "Cubic Meter", Abbreviation: "m³", Type: entity.UnitTypeVolume},
}

// CatalogUseCase administra categorías y unidades de medida.
type CatalogUseCase struct {
	categories repository.CategoryRepository
	units      repository.UnitRepository
}

// NewCatalogUseCase construye el caso de uso.
func NewCatalogUseCase(categories repository.CategoryRepository, units repository.UnitRepository) *CatalogUseCase {
	return &CatalogUseCase{categories: categories, units: units}
}

// ListCategories devuelve las categorías; activeOnly filtra las inactivas.
func (uc *CatalogUseCase) ListCategories(ctx context.Context, activeOnly bool) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.FromCategory(c))
	}
	return out, nil
}

// CreateCategory crea una categoría activa. Nombre único (sin distinguir mayúsculas).
func (uc *CatalogUseCase) CreateCategory(ctx context.Context, userID string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.categories.GetByName(ctx, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        name,
		Description: in.Description,
		Icon:        in.Icon,
		IsActive:    in.IsActive == nil || *in.IsActive,
		CreatedBy:   userID,
		CreatedAt:   time.Now(),
	}
	if err := uc.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	resp := dto.FromCategory(c)
	return &resp, nil
}

// UpdateCategory actualiza nombre, descripción, ícono y estado.
func (uc *CatalogUseCase) UpdateCategory(ctx context.Context, id string, in dto.CategoryRequest) (*dto.CategoryResponse, error) {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	if name := strings.TrimSpace(in.Name); name != "" {
		c.Name = name
	}
	c.Description = in.Description
	c.Icon = in.Icon
	if in.IsActive != nil {
		c.IsActive = *in.IsActive
	}
	if err := uc.categories.Update(ctx, c); err != nil {
		return nil, err
	}
	resp := dto.FromCategory(c)
	return &resp, nil
}

// DeleteCategory elimina una categoría. Los productos conservan el nombre como texto.
func (uc *CatalogUseCase) DeleteCategory(ctx context.Context, id string) error {
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.categories.Delete(ctx, id)
}

// ListUnits devuelve las unidades; unitType filtra por tipo (weight, volume...).
func (uc *CatalogUseCase) ListUnits(ctx context.Context, activeOnly bool, unitType string) ([]dto.UnitResponse, error) {
	var (
		list []*entity.UnitOfMeasure
		err  error
	)
	if unitType != "" {
		list, err = uc.units.ListByType(ctx, unitType)
	} else {
		list, err = uc.units.List(ctx, activeOnly)
	}
	if err != nil {
		return nil, err
	}
	out := make([]dto.UnitResponse, 0, len(list))
	for _, u := range list {
		if activeOnly && !u.IsActive {
			continue
		}
		out = append(out, dto.FromUnit(u))
	}
	return out, nil
}

// CreateUnit crea una unidad de medida activa.
func (uc *CatalogUseCase) CreateUnit(ctx context.Context, userID string, in dto.UnitRequest) (*dto.UnitResponse, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Abbreviation) == "" || !validUnitType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	u := &entity.UnitOfMeasure{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(in.Name),
		Abbreviation: strings.TrimSpace(in.Abbreviation),
		Type:         in.Type,
		IsActive:     in.IsActive == nil || *in.IsActive,
		CreatedBy:    userID,
		CreatedAt:    time.Now(),
	}
	if err := uc.units.Create(ctx, u); err != nil {
		return nil, err
	}
	resp := dto.FromUnit(u)
	return &resp, nil
}

// UpdateUnit actualiza una unidad de medida.
func (uc *CatalogUseCase) UpdateUnit(ctx context.Context, id string, in dto.UnitRequest) (*dto.UnitResponse, error) {
	u, err := uc.units.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrNotFound
	}
	if in.Type != "" && !validUnitType(in.Type) {
		return nil, domain.ErrInvalidInput
	}
	if s := strings.TrimSpace(in.Name); s != "" {
		u.Name = s
	}
	if s := strings.TrimSpace(in.Abbreviation); s != "" {
		u.Abbreviation = s
	}
	if in.Type != "" {
		u.Type = in.Type
	}
	if in.IsActive != nil {
		u.IsActive = *in.IsActive
	}
	if err := uc.units.Update(ctx, u); err != nil {
		return nil, err
	}
	resp := dto.FromUnit(u)
	return &resp, nil
}

// DeleteUnit elimina una unidad de medida.
func (uc *CatalogUseCase) DeleteUnit(ctx context.Context, id string) error {
	u, err := uc.units.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil {
		return domain.ErrNotFound
	}
	return uc.units.Delete(ctx, id)
}

// InitializeDefaultUnits carga las unidades por defecto solo si la tabla está vacía.
func (uc *CatalogUseCase) InitializeDefaultUnits(ctx context.Context, userID string) (*dto.InitializeUnitsResponse, error) {
	n, err := uc.units.Count(ctx)
	if err != nil {
		return nil, err
	}
	if n > 0 {
		return &dto.InitializeUnitsResponse{Created: 0, Message: "Units already initialized"}, nil
	}
	now := time.Now()
	for _, d := range defaultUnits {
		u := d
		u.ID = uuid.New().String()
		u.IsActive = true
		u.CreatedBy = userID
		u.CreatedAt = now
		if err := uc.units.Create(ctx, &u); err != nil {
			return nil, err
		}
	}
	return &dto.InitializeUnitsResponse{Created: len(defaultUnits), Message: "Default units initialized"}, nil
}

func validUnitType(t string) bool {
	switch t {
	case entity.UnitTypeWeight, entity.UnitTypeVolume, entity.UnitTypeLength, entity.UnitTypeCount, entity.UnitTypeArea:
		return true
	}
	return false
}
