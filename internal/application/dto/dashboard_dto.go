package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// DashboardKPIsDTO indicadores principales del inventario.
type DashboardKPIsDTO struct {
	TotalInventoryValue   decimal.Decimal `json:"total_inventory_value"` // a precio de venta
	TotalCostValue        decimal.Decimal `json:"total_cost_value"`      // al MAUC (o costo supuesto)
	InventoryTurnoverRate decimal.Decimal `json:"inventory_turnover_rate"`
	StockAlerts           int             `json:"stock_alerts"`
	OpenPOs               int             `json:"open_pos"`
	TotalProducts         int             `json:"total_products"`
	TotalCategories       int             `json:"total_categories"`
}

// CategoryValueDTO valor de inventario por categoría.
type CategoryValueDTO struct {
	Name  string          `json:"name"`
	Value decimal.Decimal `json:"value"`
	Count int             `json:"count"`
}

// MonthlySalesDTO ventas de un bloque de 30 días.
type MonthlySalesDTO struct {
	Month        string          `json:"month"`
	Sales        decimal.Decimal `json:"sales"`
	Transactions int             `json:"transactions"`
}

// TopProductDTO producto con mayor valor de inventario.
type TopProductDTO struct {
	ProductID string          `json:"product_id"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int64           `json:"quantity"`
	Value     decimal.Decimal `json:"value"`
}

// StockAlertDTO producto en o bajo su punto de reorden.
type StockAlertDTO struct {
	ProductID    string `json:"product_id"`
	Name         string `json:"name"`
	SKU          string `json:"sku"`
	CurrentStock int64  `json:"current_stock"`
	ReorderLevel int64  `json:"reorder_level"`
}

// OpenPODTO orden de compra pendiente.
type OpenPODTO struct {
	ID          string          `json:"id"`
	PONumber    string          `json:"po_number"`
	Supplier    string          `json:"supplier"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	OrderDate   time.Time       `json:"order_date"`
}

// StockBucketDTO cantidad de productos en un rango de stock.
type StockBucketDTO struct {
	Name  string `json:"name"`
	Value int    `json:"value"`
}

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	KPIs              DashboardKPIsDTO   `json:"kpis"`
	CategoryBreakdown []CategoryValueDTO `json:"category_breakdown"`
	MonthlySales      []MonthlySalesDTO  `json:"monthly_sales"`
	TopProducts       []TopProductDTO    `json:"top_products"`
	StockAlerts       []StockAlertDTO    `json:"stock_alerts"`
	OpenPOs           []OpenPODTO        `json:"open_pos"`
	StockDistribution []StockBucketDTO   `json:"stock_distribution"`
}
