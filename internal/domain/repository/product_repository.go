package repository

import (
	"context"
	"time"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductFilter filtra el listado del catálogo. Limit 0 = sin límite.
type ProductFilter struct {
	Search   string // coincidencia parcial en nombre o SKU
	Category string
	Limit    int
	Offset   int
}

// CostingUpdate son los totales que un movimiento escribe sobre el producto.
type CostingUpdate struct {
	Quantity          int64
	TotalCostInStock  decimal.Decimal
	MovingAverageCost decimal.Decimal
	LastPurchasePrice *decimal.Decimal // nil = no cambia
	LastPurchaseDate  *time.Time       // nil = no cambia
	UpdatedAt         time.Time
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID y GetForUpdate devuelven (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// Update guarda solo campos de catálogo; los totales de costeo no se tocan.
	Update(ctx context.Context, product *entity.Product) error
	UpdateCosting(ctx context.Context, id string, u CostingUpdate) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	Delete(ctx context.Context, id string) error
}
