package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Vendor es un proveedor o subcontratista.
type Vendor struct {
	ID             string
	Name           string
	Email          string
	Phone          string
	Address        string
	City           string
	State          string
	ZipCode        string
	ContactPerson  string
	VendorType     string // supplier, subcontractor, service
	Specialties    []string
	Certifications []string
	PaymentTerms   string // Net 30, COD...
	IsActive       bool
	CreatedAt      time.Time
}

// VendorProduct es el precio de un producto en la lista de un proveedor.
type VendorProduct struct {
	ID                   string
	VendorID             string
	ProductID            string
	Price                decimal.Decimal
	MinimumOrderQuantity *int64
	LeadTimeDays         *int
	LastPriceUpdate      *time.Time
	IsPreferredVendor    bool
}
