package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/dto"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	costing "github.com/iamprathosh/BB-Inventory-APP/internal/domain/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ProductUseCase casos de uso CRUD para productos. Cantidad y costos se manejan vía movimientos.
type ProductUseCase struct {
	repo      repository.ProductRepository
	txRunner  inventory.TxRunner
	movements *inventory.MovementUseCase
	policy    costing.CostPolicy
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	txRunner inventory.TxRunner,
	movements *inventory.MovementUseCase,
	policy costing.CostPolicy,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner, movements: movements, policy: policy}
}

// Create crea un producto. Si InitialQuantity > 0, en la misma transacción registra un
// ajuste de apertura al costo inicial (explícito, CostPrice o precio × ratio).
func (uc *ProductUseCase) Create(ctx context.Context, userID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" || in.Price.IsNegative() || in.InitialQuantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPrice != nil && in.CostPrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	if in.ReorderLevel != nil && *in.ReorderLevel < 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.UnitOfMeasure == "" {
		in.UnitOfMeasure = "pcs"
	}

	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		SKU:               in.SKU,
		Name:              in.Name,
		Description:       in.Description,
		Category:          in.Category,
		UnitOfMeasure:     in.UnitOfMeasure,
		MaterialType:      in.MaterialType,
		Specifications:    in.Specifications,
		Price:             in.Price,
		CostPrice:         in.CostPrice,
		ReorderLevel:      in.ReorderLevel,
		Supplier:          in.Supplier,
		MovingAverageCost: decimal.Zero,
		TotalCostInStock:  decimal.Zero,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err := uc.txRunner.Run(ctx, func(txRepo repository.InventoryTransactionRepository, productRepo repository.ProductRepository) error {
		existing, err := productRepo.GetBySKU(ctx, in.SKU)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicate
		}
		if err := productRepo.Create(ctx, product); err != nil {
			return err
		}
		if in.InitialQuantity == 0 {
			return nil
		}
		explicit := in.InitialUnitCost
		if explicit == nil {
			explicit = in.CostPrice
		}
		cost := uc.policy.InitialCost(explicit, in.Price)
		mv := costing.Adjust{Delta: in.InitialQuantity, UnitCost: &cost}
		_, updated, err := uc.movements.ApplyInTx(ctx, txRepo, productRepo, mv, inventory.MovementInput{
			ProductID: product.ID,
			Type:      string(costing.KindAdjust),
			Quantity:  in.InitialQuantity,
			UnitCost:  &cost,
			Reference: "opening-balance",
			Notes:     "Stock inicial",
			UserID:    userID,
		}, now)
		if err != nil {
			return err
		}
		product = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.FromProduct(product)
	return &resp, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	resp := dto.FromProduct(product)
	return &resp, nil
}

// Update actualiza campos de catálogo. Cantidad, MAUC y costo total no se modifican aquí.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		product.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.Category != nil {
		product.Category = *in.Category
	}
	if in.UnitOfMeasure != nil {
		product.UnitOfMeasure = *in.UnitOfMeasure
	}
	if in.MaterialType != nil {
		product.MaterialType = *in.MaterialType
	}
	if in.Specifications != nil {
		product.Specifications = *in.Specifications
	}
	if in.Price != nil {
		if in.Price.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.CostPrice = in.CostPrice
	}
	if in.ReorderLevel != nil {
		if *in.ReorderLevel < 0 {
			return nil, domain.ErrInvalidInput
		}
		product.ReorderLevel = in.ReorderLevel
	}
	if in.Supplier != nil {
		product.Supplier = *in.Supplier
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	resp := dto.FromProduct(product)
	return &resp, nil
}

// List lista productos con búsqueda por nombre/SKU, filtro por categoría y paginación.
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductQuery) (*dto.ProductListResponse, error) {
	q.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		Search:   strings.TrimSpace(q.Search),
		Category: q.Category,
		Limit:    q.Limit,
		Offset:   q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.FromProduct(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: q.Limit, Offset: q.Offset},
	}, nil
}

// Delete elimina un producto por ID. El historial del ledger no lo impide.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	p, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return domain.ErrProductNotFound
	}
	return uc.repo.Delete(ctx, id)
}
