package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de orden de compra.
const (
	POStatusPending   = "pending"
	POStatusReceived  = "received"
	POStatusCancelled = "cancelled"
)

// PurchaseOrder es una orden de compra a un proveedor.
type PurchaseOrder struct {
	ID           string
	PONumber     string
	VendorID     *string
	Supplier     string // nombre del proveedor al momento de la orden
	Status       string
	OrderDate    time.Time
	ExpectedDate *time.Time
	ReceivedAt   *time.Time
	TotalAmount  decimal.Decimal
	ProjectID    *string
	CreatedBy    string
	Items        []PurchaseOrderItem
}

// PurchaseOrderItem es una línea de la orden.
type PurchaseOrderItem struct {
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
}

// Subtotal = Quantity × UnitPrice.
func (i PurchaseOrderItem) Subtotal() decimal.Decimal {
	return i.UnitPrice.Mul(decimal.NewFromInt(i.Quantity))
}

// ComputeTotal recalcula TotalAmount como la suma de subtotales.
func (po *PurchaseOrder) ComputeTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range po.Items {
		total = total.Add(it.Subtotal())
	}
	po.TotalAmount = total
	return total
}
