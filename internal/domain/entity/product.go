package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultReorderLevel se usa cuando un producto no define punto de reorden.
const DefaultReorderLevel = 10

// Product representa un material del catálogo con sus totales de costeo.
// Quantity, TotalCostInStock y MovingAverageCost solo cambian por movimientos de inventario.
type Product struct {
	ID                string
	SKU               string
	Name              string
	Description       string
	Category          string
	UnitOfMeasure     string // pcs, tons, m3, kg...
	MaterialType      string // steel, concrete, lumber...
	Specifications    string
	Price             decimal.Decimal  // precio de venta
	CostPrice         *decimal.Decimal // costo declarado (legado), nil si no existe
	ReorderLevel      *int64
	Supplier          string
	Quantity          int64
	MovingAverageCost decimal.Decimal // MAUC vigente
	TotalCostInStock  decimal.Decimal
	LastPurchasePrice *decimal.Decimal
	LastPurchaseDate  *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ReorderPoint devuelve el punto de reorden o def si no está definido.
func (p *Product) ReorderPoint(def int64) int64 {
	if p.ReorderLevel != nil {
		return *p.ReorderLevel
	}
	return def
}
