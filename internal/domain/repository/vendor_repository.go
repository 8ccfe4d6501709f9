package repository

import (
	"context"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
)

// VendorOffer es un proveedor junto con su precio para un producto.
type VendorOffer struct {
	Vendor  *entity.Vendor
	Product entity.VendorProduct
}

// VendorRepository define el puerto de persistencia para proveedores y sus listas de precio.
type VendorRepository interface {
	Create(ctx context.Context, vendor *entity.Vendor) error
	GetByID(ctx context.Context, id string) (*entity.Vendor, error)
	Update(ctx context.Context, vendor *entity.Vendor) error
	List(ctx context.Context, activeOnly bool) ([]*entity.Vendor, error)

	// UpsertProduct crea o reemplaza el precio de (vendor, producto).
	UpsertProduct(ctx context.Context, vp *entity.VendorProduct) error
	ListProducts(ctx context.Context, vendorID string) ([]*entity.VendorProduct, error)
	// ListOffersForProduct ordena preferidos primero y luego por precio ascendente.
	ListOffersForProduct(ctx context.Context, productID string) ([]VendorOffer, error)
}
