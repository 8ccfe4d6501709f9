package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/dto"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/iamprathosh/BB-Inventory-APP/pkg/logger"
)

// VendorUseCase administra proveedores, sus listas de precio y solicitudes de compra.
type VendorUseCase struct {
	vendors  repository.VendorRepository
	products repository.ProductRepository
	logs     repository.ActivityLogRepository
	log      *logger.Logger
}

// NewVendorUseCase construye el caso de uso.
func NewVendorUseCase(
	vendors repository.VendorRepository,
	products repository.ProductRepository,
	logs repository.ActivityLogRepository,
	log *logger.Logger,
) *VendorUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &VendorUseCase{vendors: vendors, products: products, logs: logs, log: log.Component("vendors")}
}

// Create crea un proveedor con su lista de precios opcional.
func (uc *VendorUseCase) Create(ctx context.Context, in dto.VendorRequest) (*dto.VendorDetailResponse, error) {
	if err := validateVendor(in); err != nil {
		return nil, err
	}
	v := &entity.Vendor{ID: uuid.New().String(), IsActive: true, CreatedAt: time.Now()}
	applyVendor(v, in)
	if err := uc.vendors.Create(ctx, v); err != nil {
		return nil, err
	}
	if err := uc.upsertProducts(ctx, v.ID, in.Products); err != nil {
		return nil, err
	}
	return uc.Get(ctx, v.ID)
}

// Update reemplaza los datos del proveedor y agrega/actualiza precios enviados.
func (uc *VendorUseCase) Update(ctx context.Context, id string, in dto.VendorRequest) (*dto.VendorDetailResponse, error) {
	v, err := uc.vendors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	if err := validateVendor(in); err != nil {
		return nil, err
	}
	applyVendor(v, in)
	if err := uc.vendors.Update(ctx, v); err != nil {
		return nil, err
	}
	if err := uc.upsertProducts(ctx, v.ID, in.Products); err != nil {
		return nil, err
	}
	return uc.Get(ctx, v.ID)
}

// Get devuelve el proveedor con su lista de precios.
func (uc *VendorUseCase) Get(ctx context.Context, id string) (*dto.VendorDetailResponse, error) {
	v, err := uc.vendors.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if v == nil {
		return nil, domain.ErrNotFound
	}
	vps, err := uc.vendors.ListProducts(ctx, id)
	if err != nil {
		return nil, err
	}
	products := make([]dto.VendorProductResponse, 0, len(vps))
	for _, vp := range vps {
		products = append(products, dto.FromVendorProduct(vp))
	}
	return &dto.VendorDetailResponse{VendorResponse: dto.FromVendor(v), Products: products}, nil
}

// List devuelve los proveedores; activeOnly filtra los inactivos.
func (uc *VendorUseCase) List(ctx context.Context, activeOnly bool) ([]dto.VendorResponse, error) {
	list, err := uc.vendors.List(ctx, activeOnly)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendorResponse, 0, len(list))
	for _, v := range list {
		out = append(out, dto.FromVendor(v))
	}
	return out, nil
}

// VendorsForProduct devuelve los proveedores que ofrecen el producto con su precio.
func (uc *VendorUseCase) VendorsForProduct(ctx context.Context, productID string) ([]dto.VendorOfferResponse, error) {
	p, err := uc.products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	offers, err := uc.vendors.ListOffersForProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.VendorOfferResponse, 0, len(offers))
	for _, o := range offers {
		vp := o.Product
		out = append(out, dto.VendorOfferResponse{Vendor: dto.FromVendor(o.Vendor), Offer: dto.FromVendorProduct(&vp)})
	}
	return out, nil
}

// RequestPurchase registra una solicitud de compra a los proveedores del producto.
// Devuelve ErrNotFound si ningún proveedor lo ofrece.
func (uc *VendorUseCase) RequestPurchase(ctx context.Context, userID string, in dto.PurchaseRequestRequest) (*dto.PurchaseRequestResponse, error) {
	if in.Quantity <= 0 {
		return nil, domain.ErrInvalidQuantity
	}
	p, err := uc.products.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrProductNotFound
	}
	offers, err := uc.vendors.ListOffersForProduct(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return nil, fmt.Errorf("ningún proveedor ofrece %s: %w", p.SKU, domain.ErrNotFound)
	}
	ids := make([]string, 0, len(offers))
	for _, o := range offers {
		ids = append(ids, o.Vendor.ID)
	}

	details := fmt.Sprintf("Purchase request sent for %d units of %s (SKU: %s) to %d vendor(s)",
		in.Quantity, p.Name, p.SKU, len(offers))
	if uc.logs != nil && userID != "" {
		if err := uc.logs.Create(ctx, &entity.ActivityLog{
			ID:        uuid.New().String(),
			UserID:    userID,
			Action:    "Purchase Request Sent",
			Details:   details,
			CreatedAt: time.Now(),
		}); err != nil {
			return nil, err
		}
	}
	uc.log.Info().Str("product_id", p.ID).Int64("quantity", in.Quantity).Strs("vendor_ids", ids).Msg("solicitud de compra enviada")

	return &dto.PurchaseRequestResponse{
		ProductID: p.ID,
		Quantity:  in.Quantity,
		VendorIDs: ids,
		Message:   fmt.Sprintf("Purchase request sent to %d vendor(s)", len(offers)),
	}, nil
}

func (uc *VendorUseCase) upsertProducts(ctx context.Context, vendorID string, items []dto.VendorProductInput) error {
	now := time.Now()
	for _, it := range items {
		if it.Price.IsNegative() {
			return domain.ErrInvalidInput
		}
		p, err := uc.products.GetByID(ctx, it.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrProductNotFound
		}
		if err := uc.vendors.UpsertProduct(ctx, &entity.VendorProduct{
			ID:                   uuid.New().String(),
			VendorID:             vendorID,
			ProductID:            it.ProductID,
			Price:                it.Price,
			MinimumOrderQuantity: it.MinimumOrderQuantity,
			LeadTimeDays:         it.LeadTimeDays,
			LastPriceUpdate:      &now,
			IsPreferredVendor:    it.IsPreferredVendor,
		}); err != nil {
			return err
		}
	}
	return nil
}

func validateVendor(in dto.VendorRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.ErrInvalidInput
	}
	if in.Email != "" {
		if _, err := mail.ParseAddress(in.Email); err != nil {
			return domain.ErrInvalidInput
		}
	}
	return nil
}

func applyVendor(v *entity.Vendor, in dto.VendorRequest) {
	v.Name = strings.TrimSpace(in.Name)
	v.Email = strings.TrimSpace(in.Email)
	v.Phone = in.Phone
	v.Address = in.Address
	v.City = in.City
	v.State = in.State
	v.ZipCode = in.ZipCode
	v.ContactPerson = in.ContactPerson
	v.VendorType = in.VendorType
	v.Specialties = in.Specialties
	v.Certifications = in.Certifications
	v.PaymentTerms = in.PaymentTerms
	if in.IsActive != nil {
		v.IsActive = *in.IsActive
	}
}
