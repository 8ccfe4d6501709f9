package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryTransaction es una entrada inmutable del ledger de inventario.
// Quantity lleva signo: positivo entra stock, negativo sale.
type InventoryTransaction struct {
	ID                      string
	ProductID               string
	ProjectID               *string
	VendorID                *string
	UserID                  *string
	Type                    string // receive, pull, return, adjust, sale, purchase
	Quantity                int64
	UnitPrice               decimal.Decimal
	MAUCAtTimeOfTransaction decimal.Decimal
	TotalCostImpact         decimal.Decimal
	NewMAUCAfterTransaction decimal.Decimal
	Date                    time.Time
	Reference               string // número de PO, remisión, etc.
	DeliveryReceiptNumber   string
	Notes                   string
}

// TransactionFilter filtra consultas del ledger. Campos vacíos no filtran.
type TransactionFilter struct {
	ProductID string
	ProjectID string
	VendorID  string
	UserID    string
	Types     []string
	From      *time.Time
	To        *time.Time // exclusivo
	Limit     int
	Offset    int
}
