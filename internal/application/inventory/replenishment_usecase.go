package inventory

import (
	"context"
	"sort"
	"time"

	"github.com/iamprathosh/BB-Inventory-APP/internal/application/dto"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	costing "github.com/iamprathosh/BB-Inventory-APP/internal/domain/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// ReplenishmentUseCase genera la lista de reposición.
// Combina stock vs punto de reorden con consumo reciente y precios de proveedores para priorizar.
type ReplenishmentUseCase struct {
	productRepo    repository.ProductRepository
	txRepo         repository.InventoryTransactionRepository
	vendorRepo     repository.VendorRepository
	policy         costing.CostPolicy
	defaultReorder int64
	now            func() time.Time
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(
	productRepo repository.ProductRepository,
	txRepo repository.InventoryTransactionRepository,
	vendorRepo repository.VendorRepository,
	policy costing.CostPolicy,
	defaultReorder int64,
) *ReplenishmentUseCase {
	if defaultReorder <= 0 {
		defaultReorder = entity.DefaultReorderLevel
	}
	return &ReplenishmentUseCase{
		productRepo:    productRepo,
		txRepo:         txRepo,
		vendorRepo:     vendorRepo,
		policy:         policy,
		defaultReorder: defaultReorder,
		now:            time.Now,
	}
}

// GenerateReplenishmentList devuelve los productos en o bajo su punto de reorden con la cantidad
// sugerida (ideal = reorden × 1.5), costo estimado al MAUC y el mejor proveedor disponible.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := uc.productRepo.List(ctx, repository.ProductFilter{})
	if err != nil {
		return nil, err
	}

	// 1. Productos en o bajo el punto de reorden
	low := make([]*entity.Product, 0)
	for _, p := range products {
		if p.Quantity <= p.ReorderPoint(uc.defaultReorder) {
			low = append(low, p)
		}
	}
	if len(low) == 0 {
		return []dto.ReplenishmentSuggestionDTO{}, nil
	}

	// 2. Consumo de los últimos 90 días (pull + sale)
	from := uc.now().AddDate(0, 0, -90)
	outs, err := uc.txRepo.List(ctx, entity.TransactionFilter{
		Types: []string{string(costing.KindPull), string(costing.KindSale)},
		From:  &from,
	})
	if err != nil {
		return nil, err
	}
	consumed := make(map[string]int64, len(low))
	for _, t := range outs {
		q := t.Quantity
		if q < 0 {
			q = -q
		}
		consumed[t.ProductID] += q
	}

	// 3. Construir sugerencias enriquecidas
	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0, len(low))
	for _, p := range low {
		reorder := p.ReorderPoint(uc.defaultReorder)
		ideal := decimal.NewFromInt(reorder).Mul(decimal.NewFromFloat(1.5)).Ceil().IntPart()
		suggested := ideal - p.Quantity
		if suggested < 0 {
			suggested = 0
		}
		unitCost := uc.policy.UnitCost(p.MovingAverageCost, p.Price)

		s := dto.ReplenishmentSuggestionDTO{
			ProductID:          p.ID,
			SKU:                p.SKU,
			ProductName:        p.Name,
			CurrentStock:       p.Quantity,
			ReorderPoint:       reorder,
			IdealStock:         ideal,
			SuggestedOrderQty:  suggested,
			UnitCost:           unitCost.Round(4),
			EstimatedOrderCost: unitCost.Mul(decimal.NewFromInt(suggested)).Round(2),
			UnitsPulledLast90d: consumed[p.ID],
		}
		if uc.vendorRepo != nil {
			offers, err := uc.vendorRepo.ListOffersForProduct(ctx, p.ID)
			if err != nil {
				return nil, err
			}
			if len(offers) > 0 {
				best := offers[0]
				price := best.Product.Price
				s.PreferredVendorID = best.Vendor.ID
				s.PreferredVendor = best.Vendor.Name
				s.VendorPrice = &price
			}
		}
		suggestions = append(suggestions, s)
	}

	// 4. Ordenar: sin stock primero, luego mayor déficit relativo, luego mayor consumo reciente
	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		if (a.CurrentStock <= 0) != (b.CurrentStock <= 0) {
			return a.CurrentStock <= 0
		}
		ra, rb := coverage(a), coverage(b)
		if !ra.Equal(rb) {
			return ra.LessThan(rb)
		}
		if a.UnitsPulledLast90d != b.UnitsPulledLast90d {
			return a.UnitsPulledLast90d > b.UnitsPulledLast90d
		}
		return a.SKU < b.SKU
	})

	// 5. Asignar prioridad (1 = más urgente)
	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}

// coverage = stock actual / punto de reorden (menor = más urgente).
func coverage(s dto.ReplenishmentSuggestionDTO) decimal.Decimal {
	if s.ReorderPoint <= 0 {
		return decimal.NewFromInt(s.CurrentStock)
	}
	return decimal.NewFromInt(s.CurrentStock).Div(decimal.NewFromInt(s.ReorderPoint))
}
