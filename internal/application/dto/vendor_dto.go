package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// VendorProductInput precio de un producto en la lista del proveedor.
type VendorProductInput struct {
	ProductID            string          `json:"product_id"`
	Price                decimal.Decimal `json:"price"`
	MinimumOrderQuantity *int64          `json:"minimum_order_quantity,omitempty"`
	LeadTimeDays         *int            `json:"lead_time_days,omitempty"`
	IsPreferredVendor    bool            `json:"is_preferred_vendor"`
}

// VendorRequest entrada para crear/actualizar un proveedor.
type VendorRequest struct {
	Name           string               `json:"name"`
	Email          string               `json:"email"`
	Phone          string               `json:"phone"`
	Address        string               `json:"address"`
	City           string               `json:"city"`
	State          string               `json:"state"`
	ZipCode        string               `json:"zip_code"`
	ContactPerson  string               `json:"contact_person"`
	VendorType     string               `json:"vendor_type"`
	Specialties    []string             `json:"specialties"`
	Certifications []string             `json:"certifications"`
	PaymentTerms   string               `json:"payment_terms"`
	IsActive       *bool                `json:"is_active,omitempty"`
	Products       []VendorProductInput `json:"products,omitempty"`
}

// VendorResponse salida de un proveedor.
type VendorResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	City           string    `json:"city,omitempty"`
	State          string    `json:"state,omitempty"`
	ZipCode        string    `json:"zip_code,omitempty"`
	ContactPerson  string    `json:"contact_person,omitempty"`
	VendorType     string    `json:"vendor_type,omitempty"`
	Specialties    []string  `json:"specialties"`
	Certifications []string  `json:"certifications"`
	PaymentTerms   string    `json:"payment_terms,omitempty"`
	IsActive       bool      `json:"is_active"`
	CreatedAt      time.Time `json:"created_at"`
}

// VendorProductResponse precio vigente de un producto en un proveedor.
type VendorProductResponse struct {
	VendorID             string          `json:"vendor_id"`
	ProductID            string          `json:"product_id"`
	Price                decimal.Decimal `json:"price"`
	MinimumOrderQuantity *int64          `json:"minimum_order_quantity,omitempty"`
	LeadTimeDays         *int            `json:"lead_time_days,omitempty"`
	LastPriceUpdate      *time.Time      `json:"last_price_update,omitempty"`
	IsPreferredVendor    bool            `json:"is_preferred_vendor"`
}

// VendorDetailResponse proveedor con su lista de precios.
type VendorDetailResponse struct {
	VendorResponse
	Products []VendorProductResponse `json:"products"`
}

// VendorOfferResponse proveedor de un producto con su precio.
type VendorOfferResponse struct {
	Vendor VendorResponse        `json:"vendor"`
	Offer  VendorProductResponse `json:"offer"`
}

// PurchaseRequestRequest body de POST /api/vendors/purchase-request.
type PurchaseRequestRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int64  `json:"quantity"`
}

// PurchaseRequestResponse resultado de la solicitud de compra.
type PurchaseRequestResponse struct {
	ProductID string   `json:"product_id"`
	Quantity  int64    `json:"quantity"`
	VendorIDs []string `json:"vendor_ids"`
	Message   string   `json:"message"`
}
