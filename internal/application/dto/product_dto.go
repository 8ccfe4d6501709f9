package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// InitialQuantity > 0 queda registrado como ajuste de apertura a InitialUnitCost
// (o al costo supuesto si no se envía).
type CreateProductRequest struct {
	SKU             string           `json:"sku"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Category        string           `json:"category"`
	UnitOfMeasure   string           `json:"unit_of_measure"`
	MaterialType    string           `json:"material_type"`
	Specifications  string           `json:"specifications"`
	Price           decimal.Decimal  `json:"price"`
	CostPrice       *decimal.Decimal `json:"cost_price,omitempty"`
	ReorderLevel    *int64           `json:"reorder_level,omitempty"`
	Supplier        string           `json:"supplier"`
	InitialQuantity int64            `json:"initial_quantity"`
	InitialUnitCost *decimal.Decimal `json:"initial_unit_cost,omitempty"`
}

// UpdateProductRequest entrada para actualizar un producto (sin cantidad ni costos).
type UpdateProductRequest struct {
	Name           *string          `json:"name"`
	Description    *string          `json:"description"`
	Category       *string          `json:"category"`
	UnitOfMeasure  *string          `json:"unit_of_measure"`
	MaterialType   *string          `json:"material_type"`
	Specifications *string          `json:"specifications"`
	Price          *decimal.Decimal `json:"price"`
	CostPrice      *decimal.Decimal `json:"cost_price"`
	ReorderLevel   *int64           `json:"reorder_level"`
	Supplier       *string          `json:"supplier"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID                string           `json:"id"`
	SKU               string           `json:"sku"`
	Name              string           `json:"name"`
	Description       string           `json:"description"`
	Category          string           `json:"category"`
	UnitOfMeasure     string           `json:"unit_of_measure"`
	MaterialType      string           `json:"material_type,omitempty"`
	Specifications    string           `json:"specifications,omitempty"`
	Price             decimal.Decimal  `json:"price"`
	CostPrice         *decimal.Decimal `json:"cost_price,omitempty"`
	ReorderLevel      *int64           `json:"reorder_level,omitempty"`
	Supplier          string           `json:"supplier,omitempty"`
	Quantity          int64            `json:"quantity"`
	MovingAverageCost decimal.Decimal  `json:"moving_average_cost"`
	TotalCostInStock  decimal.Decimal  `json:"total_cost_in_stock"`
	LastPurchasePrice *decimal.Decimal `json:"last_purchase_price,omitempty"`
	LastPurchaseDate  *time.Time       `json:"last_purchase_date,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// ProductQuery filtros de GET /api/products.
type ProductQuery struct {
	Search   string `query:"search"`
	Category string `query:"category"`
	PageRequest
}
