package pdf

import (
	"bytes"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamprathosh/BB-Inventory-APP/internal/application/purchasing"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"0", "$0.00"},
		{"12.5", "$12.50"},
		{"999", "$999.00"},
		{"1000", "$1,000.00"},
		{"1234567.891", "$1,234,567.89"},
		{"-2500", "-$2,500.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatMoney(decimal.RequireFromString(tt.in)), tt.in)
	}
}

func TestGeneratePurchaseOrder(t *testing.T) {
	expected := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	po := &entity.PurchaseOrder{
		ID:           "po-1",
		PONumber:     "PO-20260301-ABC123",
		Supplier:     "Gulf Coast Steel",
		Status:       entity.POStatusPending,
		OrderDate:    time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC),
		ExpectedDate: &expected,
		Items: []entity.PurchaseOrderItem{
			{ProductID: "p1", Quantity: 40, UnitPrice: decimal.RequireFromString("12.75")},
			{ProductID: "gone", Quantity: 2, UnitPrice: decimal.RequireFromString("300")},
		},
	}
	po.ComputeTotal()

	g := NewMarotoPDFGenerator("BB Construction")
	out, err := g.GeneratePurchaseOrder(purchasing.DocumentData{
		Order:    po,
		Vendor:   &entity.Vendor{Name: "Gulf Coast Steel", ContactPerson: "Ana", City: "Houston", State: "TX", PaymentTerms: "Net 30"},
		Project:  &entity.Project{Name: "Riverside Tower"},
		Products: map[string]*entity.Product{"p1": {ID: "p1", SKU: "RB-04", Name: "Rebar #4", UnitOfMeasure: "pcs"}},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGeneratePurchaseOrder_SinOrden(t *testing.T) {
	_, err := NewMarotoPDFGenerator("x").GeneratePurchaseOrder(purchasing.DocumentData{})
	assert.Error(t, err)
}
