// Package analytics contiene los casos de uso de reportes del inventario:
// KPIs de valor, rotación, alertas de stock y tendencia de ventas.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/iamprathosh/BB-Inventory-APP/internal/application/dto"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	costing "github.com/iamprathosh/BB-Inventory-APP/internal/domain/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/shopspring/decimal"
)

const (
	dashboardTopProducts = 5  // productos en el widget "top por valor"
	trendMonths          = 6  // bloques de 30 días en la tendencia de ventas
	lowStockMax          = 10 // distribución de stock: low ≤ 10
	mediumStockMax       = 50 // medium ≤ 50
	uncategorized        = "Uncategorized"
)

var (
	monthsPerYear = decimal.NewFromInt(12)
	window        = 30 * 24 * time.Hour
)

// DashboardUseCase arma el tablero del inventario a partir de productos, ledger y órdenes.
type DashboardUseCase struct {
	products       repository.ProductRepository
	txs            repository.InventoryTransactionRepository
	orders         repository.PurchaseOrderRepository
	categories     repository.CategoryRepository
	policy         costing.CostPolicy
	defaultReorder int64
	now            func() time.Time
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(
	products repository.ProductRepository,
	txs repository.InventoryTransactionRepository,
	orders repository.PurchaseOrderRepository,
	categories repository.CategoryRepository,
	policy costing.CostPolicy,
	defaultReorder int64,
) *DashboardUseCase {
	if defaultReorder <= 0 {
		defaultReorder = entity.DefaultReorderLevel
	}
	return &DashboardUseCase{
		products:       products,
		txs:            txs,
		orders:         orders,
		categories:     categories,
		policy:         policy,
		defaultReorder: defaultReorder,
		now:            time.Now,
	}
}

// GetDashboard construye el DashboardResponse.
//
// Cuatro lecturas en paralelo:
//  1. productos (valor, alertas, top, distribución)
//  2. ventas de los últimos seis bloques de 30 días
//  3. órdenes de compra pendientes
//  4. categorías activas
func (uc *DashboardUseCase) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	now := uc.now()
	from := now.Add(-trendMonths * window)

	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type salesResult struct {
		list []*entity.InventoryTransaction
		err  error
	}
	type ordersResult struct {
		list []*entity.PurchaseOrder
		err  error
	}
	type categoriesResult struct {
		count int
		err   error
	}

	productsCh := make(chan productsResult, 1)
	salesCh := make(chan salesResult, 1)
	ordersCh := make(chan ordersResult, 1)
	categoriesCh := make(chan categoriesResult, 1)

	go func() {
		list, err := uc.products.List(ctx, repository.ProductFilter{})
		productsCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.txs.List(ctx, entity.TransactionFilter{
			Types: []string{string(costing.KindSale)},
			From:  &from,
		})
		salesCh <- salesResult{list, err}
	}()
	go func() {
		list, err := uc.orders.List(ctx, entity.POStatusPending)
		ordersCh <- ordersResult{list, err}
	}()
	go func() {
		list, err := uc.categories.List(ctx, true)
		categoriesCh <- categoriesResult{len(list), err}
	}()

	products := <-productsCh
	sales := <-salesCh
	orders := <-ordersCh
	categories := <-categoriesCh

	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if sales.err != nil {
		return nil, fmt.Errorf("dashboard: ventas: %w", sales.err)
	}
	if orders.err != nil {
		return nil, fmt.Errorf("dashboard: órdenes: %w", orders.err)
	}
	if categories.err != nil {
		return nil, fmt.Errorf("dashboard: categorías: %w", categories.err)
	}

	resp := &dto.DashboardResponse{
		CategoryBreakdown: []dto.CategoryValueDTO{},
		TopProducts:       []dto.TopProductDTO{},
		StockAlerts:       []dto.StockAlertDTO{},
		OpenPOs:           []dto.OpenPODTO{},
	}

	byID := make(map[string]*entity.Product, len(products.list))
	byCategory := map[string]*dto.CategoryValueDTO{}
	var categoryOrder []string
	retailValue, costValue := decimal.Zero, decimal.Zero
	buckets := [4]int{} // out, low, medium, high

	for _, p := range products.list {
		byID[p.ID] = p
		qty := decimal.NewFromInt(p.Quantity)
		value := qty.Mul(p.Price)
		retailValue = retailValue.Add(value)
		costValue = costValue.Add(qty.Mul(uc.policy.UnitCost(p.MovingAverageCost, p.Price)))

		name := p.Category
		if name == "" {
			name = uncategorized
		}
		cv, ok := byCategory[name]
		if !ok {
			cv = &dto.CategoryValueDTO{Name: name, Value: decimal.Zero}
			byCategory[name] = cv
			categoryOrder = append(categoryOrder, name)
		}
		cv.Value = cv.Value.Add(value)
		cv.Count++

		reorder := p.ReorderPoint(uc.defaultReorder)
		if p.Quantity <= reorder {
			resp.StockAlerts = append(resp.StockAlerts, dto.StockAlertDTO{
				ProductID:    p.ID,
				Name:         p.Name,
				SKU:          p.SKU,
				CurrentStock: p.Quantity,
				ReorderLevel: reorder,
			})
		}

		switch {
		case p.Quantity <= 0:
			buckets[0]++
		case p.Quantity <= lowStockMax:
			buckets[1]++
		case p.Quantity <= mediumStockMax:
			buckets[2]++
		default:
			buckets[3]++
		}
	}

	for _, name := range categoryOrder {
		resp.CategoryBreakdown = append(resp.CategoryBreakdown, *byCategory[name])
	}
	sort.SliceStable(resp.CategoryBreakdown, func(i, j int) bool {
		return resp.CategoryBreakdown[i].Value.GreaterThan(resp.CategoryBreakdown[j].Value)
	})
	sort.SliceStable(resp.StockAlerts, func(i, j int) bool {
		return resp.StockAlerts[i].CurrentStock < resp.StockAlerts[j].CurrentStock
	})

	resp.TopProducts = topByValue(products.list, dashboardTopProducts)
	resp.StockDistribution = []dto.StockBucketDTO{
		{Name: "Out of Stock", Value: buckets[0]},
		{Name: "Low Stock", Value: buckets[1]},
		{Name: "Medium Stock", Value: buckets[2]},
		{Name: "High Stock", Value: buckets[3]},
	}

	resp.MonthlySales = monthlySales(sales.list, byID, now)
	recentSales := resp.MonthlySales[len(resp.MonthlySales)-1].Sales

	for _, po := range orders.list {
		resp.OpenPOs = append(resp.OpenPOs, dto.OpenPODTO{
			ID:          po.ID,
			PONumber:    po.PONumber,
			Supplier:    po.Supplier,
			TotalAmount: po.TotalAmount,
			OrderDate:   po.OrderDate,
		})
	}

	resp.KPIs = dto.DashboardKPIsDTO{
		TotalInventoryValue:   retailValue.Round(2),
		TotalCostValue:        costValue.Round(2),
		InventoryTurnoverRate: turnover(recentSales, costValue),
		StockAlerts:           len(resp.StockAlerts),
		OpenPOs:               len(resp.OpenPOs),
		TotalProducts:         len(products.list),
		TotalCategories:       categories.count,
	}
	return resp, nil
}

// turnover rotación anualizada: ventas de los últimos 30 días / valor al costo × 12.
func turnover(sales30d, costValue decimal.Decimal) decimal.Decimal {
	if !costValue.IsPositive() {
		return decimal.Zero
	}
	return sales30d.Div(costValue).Mul(monthsPerYear).Round(2)
}

// monthlySales agrupa las ventas en bloques [now-(i+1)·30d, now-i·30d), del más antiguo al más reciente.
// El monto es cantidad × precio de venta; si el producto ya no existe se usa el costo del ledger.
func monthlySales(sales []*entity.InventoryTransaction, products map[string]*entity.Product, now time.Time) []dto.MonthlySalesDTO {
	out := make([]dto.MonthlySalesDTO, trendMonths)
	for i := range out {
		start := now.Add(-time.Duration(trendMonths-i) * window)
		out[i] = dto.MonthlySalesDTO{Month: start.Format("Jan 2006"), Sales: decimal.Zero}
	}
	for _, t := range sales {
		age := now.Sub(t.Date)
		if age < 0 || age >= trendMonths*window {
			continue
		}
		idx := trendMonths - 1 - int(age/window)
		qty := t.Quantity
		if qty < 0 {
			qty = -qty
		}
		price := t.UnitPrice
		if p, ok := products[t.ProductID]; ok {
			price = p.Price
		}
		out[idx].Sales = out[idx].Sales.Add(price.Mul(decimal.NewFromInt(qty)))
		out[idx].Transactions++
	}
	for i := range out {
		out[i].Sales = out[i].Sales.Round(2)
	}
	return out
}

func topByValue(products []*entity.Product, n int) []dto.TopProductDTO {
	out := make([]dto.TopProductDTO, 0, len(products))
	for _, p := range products {
		out = append(out, dto.TopProductDTO{
			ProductID: p.ID,
			SKU:       p.SKU,
			Name:      p.Name,
			Quantity:  p.Quantity,
			Value:     p.Price.Mul(decimal.NewFromInt(p.Quantity)).Round(2),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Value.GreaterThan(out[j].Value) })
	if len(out) > n {
		out = out[:n]
	}
	return out
}
