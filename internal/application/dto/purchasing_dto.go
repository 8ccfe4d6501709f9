package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PurchaseOrderItemDTO línea de una orden de compra.
type PurchaseOrderItemDTO struct {
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Subtotal  decimal.Decimal `json:"subtotal"`
}

// CreatePurchaseOrderRequest body de POST /api/purchase-orders.
// PONumber vacío genera uno automáticamente (PO-AAAAMMDD-xxxxxx).
type CreatePurchaseOrderRequest struct {
	PONumber     string                 `json:"po_number"`
	VendorID     string                 `json:"vendor_id"`
	Supplier     string                 `json:"supplier"`
	ExpectedDate *time.Time             `json:"expected_date,omitempty"`
	ProjectID    string                 `json:"project_id,omitempty"`
	Items        []PurchaseOrderItemDTO `json:"items"`
}

// ReceivePurchaseOrderRequest body opcional de POST /api/purchase-orders/:id/receive.
type ReceivePurchaseOrderRequest struct {
	DeliveryReceiptNumber string `json:"delivery_receipt_number"`
	Notes                 string `json:"notes"`
}

// PurchaseOrderResponse salida de una orden de compra.
type PurchaseOrderResponse struct {
	ID           string                 `json:"id"`
	PONumber     string                 `json:"po_number"`
	VendorID     *string                `json:"vendor_id,omitempty"`
	Supplier     string                 `json:"supplier"`
	Status       string                 `json:"status"`
	OrderDate    time.Time              `json:"order_date"`
	ExpectedDate *time.Time             `json:"expected_date,omitempty"`
	ReceivedAt   *time.Time             `json:"received_at,omitempty"`
	TotalAmount  decimal.Decimal        `json:"total_amount"`
	ProjectID    *string                `json:"project_id,omitempty"`
	CreatedBy    string                 `json:"created_by"`
	Items        []PurchaseOrderItemDTO `json:"items"`
}

// ReceivePurchaseOrderResponse resultado de recibir una orden.
type ReceivePurchaseOrderResponse struct {
	PurchaseOrder PurchaseOrderResponse `json:"purchase_order"`
	Movements     []MovementResponse    `json:"movements"`
}
