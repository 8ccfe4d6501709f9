package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementRequest body para POST /api/inventory/movements.
// Type: receive | pull | return | adjust | sale. Quantity con signo solo en adjust.
type MovementRequest struct {
	ProductID             string           `json:"product_id"`
	Type                  string           `json:"type"`
	Quantity              int64            `json:"quantity"`
	UnitCost              *decimal.Decimal `json:"unit_cost,omitempty"`
	Reference             string           `json:"reference,omitempty"`
	VendorID              string           `json:"vendor_id,omitempty"`
	ProjectID             string           `json:"project_id,omitempty"`
	DeliveryReceiptNumber string           `json:"delivery_receipt_number,omitempty"`
	Notes                 string           `json:"notes,omitempty"`
}

// MovementResponse resultado de aplicar un movimiento.
type MovementResponse struct {
	TransactionID       string          `json:"transaction_id"`
	PreviousMAUC        decimal.Decimal `json:"previous_mauc"`
	NewMAUC             decimal.Decimal `json:"new_mauc"`
	NewQuantity         int64           `json:"new_quantity"`
	NewTotalCostInStock decimal.Decimal `json:"new_total_cost_in_stock"`
}

// TransactionResponse entrada del ledger.
type TransactionResponse struct {
	ID                      string          `json:"id"`
	ProductID               string          `json:"product_id"`
	ProjectID               *string         `json:"project_id,omitempty"`
	VendorID                *string         `json:"vendor_id,omitempty"`
	UserID                  *string         `json:"user_id,omitempty"`
	Type                    string          `json:"type"`
	Quantity                int64           `json:"quantity"`
	UnitPrice               decimal.Decimal `json:"unit_price"`
	MAUCAtTimeOfTransaction decimal.Decimal `json:"mauc_at_time_of_transaction"`
	TotalCostImpact         decimal.Decimal `json:"total_cost_impact"`
	NewMAUCAfterTransaction decimal.Decimal `json:"new_mauc_after_transaction"`
	Date                    time.Time       `json:"date"`
	Reference               string          `json:"reference,omitempty"`
	DeliveryReceiptNumber   string          `json:"delivery_receipt_number,omitempty"`
	Notes                   string          `json:"notes,omitempty"`
}

// TransactionQuery filtros de GET /api/inventory/transactions.
type TransactionQuery struct {
	ProductID string `query:"product_id"`
	ProjectID string `query:"project_id"`
	VendorID  string `query:"vendor_id"`
	Type      string `query:"type"`
	From      string `query:"from"` // RFC3339 o YYYY-MM-DD
	To        string `query:"to"`
	PageRequest
}

// InitializeMAUCRequest body para POST /api/products/:id/mauc/initialize.
type InitializeMAUCRequest struct {
	InitialUnitCost *decimal.Decimal `json:"initial_unit_cost,omitempty"`
}

// PriceStatisticsDTO estadísticas de precios de recepción.
type PriceStatisticsDTO struct {
	MinPrice             decimal.Decimal `json:"min_price"`
	MaxPrice             decimal.Decimal `json:"max_price"`
	AvgPrice             decimal.Decimal `json:"avg_price"`
	PriceVariance        decimal.Decimal `json:"price_variance"`
	PriceVariancePercent decimal.Decimal `json:"price_variance_percent"`
}

// ValuationDTO valoración del stock al MAUC y al precio de venta.
type ValuationDTO struct {
	InventoryValueAtMAUC   decimal.Decimal `json:"inventory_value_at_mauc"`
	InventoryValueAtMarket decimal.Decimal `json:"inventory_value_at_market"`
	PotentialProfit        decimal.Decimal `json:"potential_profit"`
	MarginPercentage       decimal.Decimal `json:"margin_percentage"`
}

// CostAnalyticsResponse respuesta de GET /api/products/:id/mauc/analytics.
type CostAnalyticsResponse struct {
	Product                  ProductResponse       `json:"product"`
	CurrentMAUC              decimal.Decimal       `json:"current_mauc"`
	TotalUnitsInStock        int64                 `json:"total_units_in_stock"`
	TotalCostInStock         decimal.Decimal       `json:"total_cost_in_stock"`
	LastPurchasePrice        decimal.Decimal       `json:"last_purchase_price"`
	LastPurchaseDate         *time.Time            `json:"last_purchase_date,omitempty"`
	PriceStatistics          PriceStatisticsDTO    `json:"price_statistics"`
	Valuation                ValuationDTO          `json:"valuation"`
	TotalReceiveTransactions int                   `json:"total_receive_transactions"`
	RecentTransactions       []TransactionResponse `json:"recent_transactions"`
}

// ReplenishmentSuggestionDTO representa una sugerencia de reposición para un SKU
// que se encuentra en o por debajo de su punto de reorden.
type ReplenishmentSuggestionDTO struct {
	ProductID          string           `json:"product_id"`
	SKU                string           `json:"sku"`
	ProductName        string           `json:"product_name"`
	CurrentStock       int64            `json:"current_stock"`
	ReorderPoint       int64            `json:"reorder_point"`
	IdealStock         int64            `json:"ideal_stock"`          // ReorderPoint * 1.5 (redondeo hacia arriba)
	SuggestedOrderQty  int64            `json:"suggested_order_qty"`  // IdealStock - CurrentStock
	UnitCost           decimal.Decimal  `json:"unit_cost"`            // MAUC o costo supuesto
	EstimatedOrderCost decimal.Decimal  `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	PreferredVendorID  string           `json:"preferred_vendor_id,omitempty"`
	PreferredVendor    string           `json:"preferred_vendor,omitempty"`
	VendorPrice        *decimal.Decimal `json:"vendor_price,omitempty"`
	UnitsPulledLast90d int64            `json:"units_pulled_last_90d"`
	Priority           int              `json:"priority"` // 1 = más urgente
}
