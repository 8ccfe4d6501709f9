package dto

import "github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"

// FromProduct mapea la entidad a su respuesta.
func FromProduct(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		SKU:               p.SKU,
		Name:              p.Name,
		Description:       p.Description,
		Category:          p.Category,
		UnitOfMeasure:     p.UnitOfMeasure,
		MaterialType:      p.MaterialType,
		Specifications:    p.Specifications,
		Price:             p.Price,
		CostPrice:         p.CostPrice,
		ReorderLevel:      p.ReorderLevel,
		Supplier:          p.Supplier,
		Quantity:          p.Quantity,
		MovingAverageCost: p.MovingAverageCost,
		TotalCostInStock:  p.TotalCostInStock,
		LastPurchasePrice: p.LastPurchasePrice,
		LastPurchaseDate:  p.LastPurchaseDate,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

// FromTransaction mapea una entrada del ledger.
func FromTransaction(t *entity.InventoryTransaction) TransactionResponse {
	return TransactionResponse{
		ID:                      t.ID,
		ProductID:               t.ProductID,
		ProjectID:               t.ProjectID,
		VendorID:                t.VendorID,
		UserID:                  t.UserID,
		Type:                    t.Type,
		Quantity:                t.Quantity,
		UnitPrice:               t.UnitPrice,
		MAUCAtTimeOfTransaction: t.MAUCAtTimeOfTransaction,
		TotalCostImpact:         t.TotalCostImpact,
		NewMAUCAfterTransaction: t.NewMAUCAfterTransaction,
		Date:                    t.Date,
		Reference:               t.Reference,
		DeliveryReceiptNumber:   t.DeliveryReceiptNumber,
		Notes:                   t.Notes,
	}
}

// FromTransactions mapea una lista (nunca nil).
func FromTransactions(ts []*entity.InventoryTransaction) []TransactionResponse {
	out := make([]TransactionResponse, 0, len(ts))
	for _, t := range ts {
		out = append(out, FromTransaction(t))
	}
	return out
}

// FromUser mapea un usuario sin credenciales.
func FromUser(u *entity.User) UserResponse {
	return UserResponse{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Role:      u.Role,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// FromVendor mapea un proveedor.
func FromVendor(v *entity.Vendor) VendorResponse {
	return VendorResponse{
		ID:             v.ID,
		Name:           v.Name,
		Email:          v.Email,
		Phone:          v.Phone,
		Address:        v.Address,
		City:           v.City,
		State:          v.State,
		ZipCode:        v.ZipCode,
		ContactPerson:  v.ContactPerson,
		VendorType:     v.VendorType,
		Specialties:    nonNil(v.Specialties),
		Certifications: nonNil(v.Certifications),
		PaymentTerms:   v.PaymentTerms,
		IsActive:       v.IsActive,
		CreatedAt:      v.CreatedAt,
	}
}

// FromVendorProduct mapea un precio de proveedor.
func FromVendorProduct(vp *entity.VendorProduct) VendorProductResponse {
	return VendorProductResponse{
		VendorID:             vp.VendorID,
		ProductID:            vp.ProductID,
		Price:                vp.Price,
		MinimumOrderQuantity: vp.MinimumOrderQuantity,
		LeadTimeDays:         vp.LeadTimeDays,
		LastPriceUpdate:      vp.LastPriceUpdate,
		IsPreferredVendor:    vp.IsPreferredVendor,
	}
}

// FromProject mapea un proyecto.
func FromProject(p *entity.Project) ProjectResponse {
	return ProjectResponse{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		StartDate:   p.StartDate,
		EndDate:     p.EndDate,
		Status:      p.Status,
		Budget:      p.Budget,
		ManagerID:   p.ManagerID,
		CreatedAt:   p.CreatedAt,
	}
}

// FromPurchaseOrder mapea una orden con sus líneas.
func FromPurchaseOrder(po *entity.PurchaseOrder) PurchaseOrderResponse {
	items := make([]PurchaseOrderItemDTO, 0, len(po.Items))
	for _, it := range po.Items {
		items = append(items, PurchaseOrderItemDTO{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
			Subtotal:  it.Subtotal(),
		})
	}
	return PurchaseOrderResponse{
		ID:           po.ID,
		PONumber:     po.PONumber,
		VendorID:     po.VendorID,
		Supplier:     po.Supplier,
		Status:       po.Status,
		OrderDate:    po.OrderDate,
		ExpectedDate: po.ExpectedDate,
		ReceivedAt:   po.ReceivedAt,
		TotalAmount:  po.TotalAmount,
		ProjectID:    po.ProjectID,
		CreatedBy:    po.CreatedBy,
		Items:        items,
	}
}

// FromActivityLog mapea una entrada del registro de actividad.
func FromActivityLog(l *entity.ActivityLog) ActivityLogResponse {
	return ActivityLogResponse{
		ID:        l.ID,
		UserID:    l.UserID,
		Action:    l.Action,
		Details:   l.Details,
		ProjectID: l.ProjectID,
		CreatedAt: l.CreatedAt,
	}
}

// FromCategory mapea una categoría.
func FromCategory(c *entity.Category) CategoryResponse {
	return CategoryResponse{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		Icon:        c.Icon,
		IsActive:    c.IsActive,
		CreatedBy:   c.CreatedBy,
		CreatedAt:   c.CreatedAt,
	}
}

// FromUnit mapea una unidad de medida.
func FromUnit(u *entity.UnitOfMeasure) UnitResponse {
	return UnitResponse{
		ID:           u.ID,
		Name:         u.Name,
		Abbreviation: u.Abbreviation,
		Type:         u.Type,
		IsActive:     u.IsActive,
		CreatedBy:    u.CreatedBy,
		CreatedAt:    u.CreatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
