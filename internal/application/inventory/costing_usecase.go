package inventory

import (
	"context"
	"time"

	"github.com/iamprathosh/BB-Inventory-APP/internal/application/dto"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	costing "github.com/iamprathosh/BB-Inventory-APP/internal/domain/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const (
	defaultHistoryLimit = 10
	recentReceiptsLimit = 5
)

var hundred = decimal.NewFromInt(100)

// CostingUseCase consultas de costeo (historial de MAUC, análisis de precios) e inicialización de MAUC.
type CostingUseCase struct {
	productRepo repository.ProductRepository
	txRepo      repository.InventoryTransactionRepository
	txRunner    TxRunner
	policy      costing.CostPolicy
	now         func() time.Time
}

// NewCostingUseCase construye el caso de uso.
func NewCostingUseCase(
	productRepo repository.ProductRepository,
	txRepo repository.InventoryTransactionRepository,
	txRunner TxRunner,
	policy costing.CostPolicy,
) *CostingUseCase {
	return &CostingUseCase{productRepo: productRepo, txRepo: txRepo, txRunner: txRunner, policy: policy, now: time.Now}
}

// MAUCHistory devuelve los últimos receive/adjust del producto (los que mueven el MAUC).
func (uc *CostingUseCase) MAUCHistory(ctx context.Context, productID string, limit int) ([]dto.TransactionResponse, error) {
	if _, err := uc.requireProduct(ctx, productID); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	list, err := uc.txRepo.List(ctx, entity.TransactionFilter{
		ProductID: productID,
		Types:     []string{string(costing.KindReceive), string(costing.KindAdjust)},
		Limit:     limit,
	})
	if err != nil {
		return nil, err
	}
	return dto.FromTransactions(list), nil
}

// ProductCostAnalytics estadísticas de precios de recepción y valoración del stock.
func (uc *CostingUseCase) ProductCostAnalytics(ctx context.Context, productID string) (*dto.CostAnalyticsResponse, error) {
	p, err := uc.requireProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	receipts, err := uc.txRepo.List(ctx, entity.TransactionFilter{
		ProductID: productID,
		Types:     []string{string(costing.KindReceive)},
	})
	if err != nil {
		return nil, err
	}

	stats := priceStatistics(receipts)

	units := decimal.NewFromInt(p.Quantity)
	atMAUC := units.Mul(p.MovingAverageCost)
	atMarket := units.Mul(p.Price)
	profit := atMarket.Sub(atMAUC)
	margin := decimal.Zero
	if atMAUC.IsPositive() {
		margin = profit.Div(atMAUC).Mul(hundred).Round(2)
	}

	lastPrice := decimal.Zero
	if p.LastPurchasePrice != nil {
		lastPrice = *p.LastPurchasePrice
	}
	recent := receipts
	if len(recent) > recentReceiptsLimit {
		recent = recent[:recentReceiptsLimit]
	}

	return &dto.CostAnalyticsResponse{
		Product:           dto.FromProduct(p),
		CurrentMAUC:       p.MovingAverageCost,
		TotalUnitsInStock: p.Quantity,
		TotalCostInStock:  p.TotalCostInStock,
		LastPurchasePrice: lastPrice,
		LastPurchaseDate:  p.LastPurchaseDate,
		PriceStatistics:   stats,
		Valuation: dto.ValuationDTO{
			InventoryValueAtMAUC:   atMAUC.Round(2),
			InventoryValueAtMarket: atMarket.Round(2),
			PotentialProfit:        profit.Round(2),
			MarginPercentage:       margin,
		},
		TotalReceiveTransactions: len(receipts),
		RecentTransactions:       dto.FromTransactions(recent),
	}, nil
}

func priceStatistics(receipts []*entity.InventoryTransaction) dto.PriceStatisticsDTO {
	var s dto.PriceStatisticsDTO
	if len(receipts) == 0 {
		return s
	}
	sum := decimal.Zero
	s.MinPrice, s.MaxPrice = receipts[0].UnitPrice, receipts[0].UnitPrice
	for _, t := range receipts {
		sum = sum.Add(t.UnitPrice)
		s.MinPrice = decimal.Min(s.MinPrice, t.UnitPrice)
		s.MaxPrice = decimal.Max(s.MaxPrice, t.UnitPrice)
	}
	s.AvgPrice = sum.Div(decimal.NewFromInt(int64(len(receipts)))).Round(4)
	s.PriceVariance = s.MaxPrice.Sub(s.MinPrice)
	if s.MinPrice.IsPositive() {
		s.PriceVariancePercent = s.PriceVariance.Div(s.MinPrice).Mul(hundred).Round(2)
	}
	return s
}

// InitializeMAUC fija la base de costo de un producto con stock pero sin costo registrado
// (datos cargados antes del motor de costeo). Costo: explícito, CostPrice o precio × ratio.
// Devuelve ErrConflict si el producto ya tiene base de costo.
func (uc *CostingUseCase) InitializeMAUC(ctx context.Context, productID string, initialUnitCost *decimal.Decimal) (*dto.ProductResponse, error) {
	if initialUnitCost != nil && initialUnitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	var out *entity.Product
	err := uc.txRunner.Run(ctx, func(_ repository.InventoryTransactionRepository, productRepo repository.ProductRepository) error {
		p, err := productRepo.GetForUpdate(ctx, productID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		if p.TotalCostInStock.IsPositive() {
			return domain.ErrConflict
		}
		explicit := initialUnitCost
		if explicit == nil {
			explicit = p.CostPrice
		}
		cost := uc.policy.InitialCost(explicit, p.Price)
		st := costing.OpeningState(p.Quantity, cost)
		now := uc.now()
		upd := repository.CostingUpdate{
			Quantity:          st.Units,
			TotalCostInStock:  st.TotalCost,
			MovingAverageCost: st.MAUC,
			LastPurchasePrice: &cost,
			LastPurchaseDate:  &now,
			UpdatedAt:         now,
		}
		if err := productRepo.UpdateCosting(ctx, p.ID, upd); err != nil {
			return err
		}
		p.Quantity, p.TotalCostInStock, p.MovingAverageCost = st.Units, st.TotalCost, st.MAUC
		p.LastPurchasePrice, p.LastPurchaseDate, p.UpdatedAt = &cost, &now, now
		out = p
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := dto.FromProduct(out)
	return &resp, nil
}

// ListTransactions consulta el ledger con filtros y paginación.
func (uc *CostingUseCase) ListTransactions(ctx context.Context, q dto.TransactionQuery) ([]dto.TransactionResponse, error) {
	q.DefaultPage()
	f := entity.TransactionFilter{
		ProductID: q.ProductID,
		ProjectID: q.ProjectID,
		VendorID:  q.VendorID,
		Limit:     q.Limit,
		Offset:    q.Offset,
	}
	if q.Type != "" {
		if !costing.Kind(q.Type).Valid() {
			return nil, domain.ErrUnsupportedTransactionType
		}
		f.Types = []string{q.Type}
	}
	var err error
	if f.From, err = ParseDate(q.From); err != nil {
		return nil, err
	}
	if f.To, err = ParseDateEnd(q.To); err != nil {
		return nil, err
	}
	list, err := uc.txRepo.List(ctx, f)
	if err != nil {
		return nil, err
	}
	return dto.FromTransactions(list), nil
}

const dateOnly = "2006-01-02"

// ParseDate acepta RFC3339 o YYYY-MM-DD; vacío devuelve nil.
func ParseDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, dateOnly} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, domain.ErrInvalidInput
}

// ParseDateEnd interpreta el extremo final de un rango como cota exclusiva.
// YYYY-MM-DD incluye el día completo (devuelve la medianoche siguiente);
// un instante RFC3339 se incluye a sí mismo.
func ParseDateEnd(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	if t, err := time.Parse(dateOnly, s); err == nil {
		end := t.AddDate(0, 0, 1)
		return &end, nil
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		end := t.Add(time.Nanosecond)
		return &end, nil
	}
	return nil, domain.ErrInvalidInput
}

func (uc *CostingUseCase) requireProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.productRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}
