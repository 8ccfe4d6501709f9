package purchasing

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/dto"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	costing "github.com/iamprathosh/BB-Inventory-APP/internal/domain/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/iamprathosh/BB-Inventory-APP/pkg/logger"
)

// Deps agrupa los colaboradores del caso de uso.
type Deps struct {
	TxRunner  TxRunner
	Orders    repository.PurchaseOrderRepository
	Products  repository.ProductRepository
	Vendors   repository.VendorRepository
	Projects  repository.ProjectRepository
	Logs      repository.ActivityLogRepository
	Movements *inventory.MovementUseCase
	PDF       DocumentGenerator
	Log       *logger.Logger
}

// PurchaseOrderUseCase ciclo de vida de órdenes de compra: pending → received | cancelled.
type PurchaseOrderUseCase struct {
	d   Deps
	log *logger.Logger
	now func() time.Time
}

// NewPurchaseOrderUseCase construye el caso de uso.
func NewPurchaseOrderUseCase(d Deps) *PurchaseOrderUseCase {
	log := d.Log
	if log == nil {
		log = logger.Nop()
	}
	return &PurchaseOrderUseCase{d: d, log: log.Component("purchasing"), now: time.Now}
}

// Create valida y persiste una orden pendiente. Total = Σ cantidad × precio.
func (uc *PurchaseOrderUseCase) Create(ctx context.Context, userID string, in dto.CreatePurchaseOrderRequest) (*dto.PurchaseOrderResponse, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	po := &entity.PurchaseOrder{
		ID:           uuid.New().String(),
		PONumber:     strings.TrimSpace(in.PONumber),
		Supplier:     strings.TrimSpace(in.Supplier),
		Status:       entity.POStatusPending,
		OrderDate:    now,
		ExpectedDate: in.ExpectedDate,
		CreatedBy:    userID,
	}
	if po.PONumber == "" {
		po.PONumber = NewPONumber(now)
	}

	if in.VendorID != "" {
		v, err := uc.d.Vendors.GetByID(ctx, in.VendorID)
		if err != nil {
			return nil, err
		}
		if v == nil {
			return nil, fmt.Errorf("proveedor %s: %w", in.VendorID, domain.ErrNotFound)
		}
		vid := v.ID
		po.VendorID = &vid
		if po.Supplier == "" {
			po.Supplier = v.Name
		}
	}
	if po.Supplier == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.ProjectID != "" {
		p, err := uc.d.Projects.GetByID(ctx, in.ProjectID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, fmt.Errorf("proyecto %s: %w", in.ProjectID, domain.ErrNotFound)
		}
		pid := p.ID
		po.ProjectID = &pid
	}

	for _, it := range in.Items {
		if it.Quantity <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if it.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p, err := uc.d.Products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, err
		}
		if p == nil {
			return nil, domain.ErrProductNotFound
		}
		po.Items = append(po.Items, entity.PurchaseOrderItem{
			ProductID: it.ProductID,
			Quantity:  it.Quantity,
			UnitPrice: it.UnitPrice,
		})
	}
	po.ComputeTotal()

	existing, err := uc.d.Orders.GetByNumber(ctx, po.PONumber)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if err := uc.d.Orders.Create(ctx, po); err != nil {
		return nil, err
	}
	uc.log.Info().Str("po_number", po.PONumber).Str("total", po.TotalAmount.StringFixed(2)).Msg("orden de compra creada")
	resp := dto.FromPurchaseOrder(po)
	return &resp, nil
}

// Get obtiene una orden por ID.
func (uc *PurchaseOrderUseCase) Get(ctx context.Context, id string) (*dto.PurchaseOrderResponse, error) {
	po, err := uc.require(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.FromPurchaseOrder(po)
	return &resp, nil
}

// List devuelve las órdenes; status vacío devuelve todas.
func (uc *PurchaseOrderUseCase) List(ctx context.Context, status string) ([]dto.PurchaseOrderResponse, error) {
	if status != "" && status != entity.POStatusPending && status != entity.POStatusReceived && status != entity.POStatusCancelled {
		return nil, domain.ErrInvalidInput
	}
	list, err := uc.d.Orders.List(ctx, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PurchaseOrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, dto.FromPurchaseOrder(po))
	}
	return out, nil
}

// Cancel anula una orden pendiente. Otra transición devuelve ErrConflict.
func (uc *PurchaseOrderUseCase) Cancel(ctx context.Context, userID, id string) (*dto.PurchaseOrderResponse, error) {
	var out *entity.PurchaseOrder
	err := uc.d.TxRunner.RunPurchasing(ctx, func(
		_ repository.InventoryTransactionRepository,
		_ repository.ProductRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		po, err := poRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.POStatusPending {
			return domain.ErrConflict
		}
		if err := poRepo.UpdateStatus(ctx, id, entity.POStatusCancelled, nil); err != nil {
			return err
		}
		po.Status = entity.POStatusCancelled
		out = po
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.activity(ctx, userID, "Purchase Order Cancelled", fmt.Sprintf("Purchase order %s cancelled", out.PONumber), out.ProjectID)
	resp := dto.FromPurchaseOrder(out)
	return &resp, nil
}

// Receive recibe una orden pendiente: por cada línea aplica un movimiento receive al precio
// de la línea (reference = número de PO) y marca la orden como received, todo en una transacción.
func (uc *PurchaseOrderUseCase) Receive(ctx context.Context, userID, id string, in dto.ReceivePurchaseOrderRequest) (*dto.ReceivePurchaseOrderResponse, error) {
	var (
		out     *entity.PurchaseOrder
		results []dto.MovementResponse
	)
	now := uc.now()
	err := uc.d.TxRunner.RunPurchasing(ctx, func(
		txRepo repository.InventoryTransactionRepository,
		productRepo repository.ProductRepository,
		poRepo repository.PurchaseOrderRepository,
	) error {
		po, err := poRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.ErrNotFound
		}
		if po.Status != entity.POStatusPending {
			return domain.ErrConflict
		}
		vendorID, projectID := "", ""
		if po.VendorID != nil {
			vendorID = *po.VendorID
		}
		if po.ProjectID != nil {
			projectID = *po.ProjectID
		}
		results = make([]dto.MovementResponse, 0, len(po.Items))
		for _, it := range po.Items {
			mv := costing.Receive{Qty: it.Quantity, UnitCost: it.UnitPrice}
			price := it.UnitPrice
			res, _, err := uc.d.Movements.ApplyInTx(ctx, txRepo, productRepo, mv, inventory.MovementInput{
				ProductID:             it.ProductID,
				Type:                  string(costing.KindReceive),
				Quantity:              it.Quantity,
				UnitCost:              &price,
				Reference:             po.PONumber,
				VendorID:              vendorID,
				ProjectID:             projectID,
				DeliveryReceiptNumber: in.DeliveryReceiptNumber,
				Notes:                 in.Notes,
				UserID:                userID,
			}, now)
			if err != nil {
				return fmt.Errorf("línea %s: %w", it.ProductID, err)
			}
			results = append(results, *inventory.ToMovementResponse(res))
		}
		if err := poRepo.UpdateStatus(ctx, po.ID, entity.POStatusReceived, &now); err != nil {
			return err
		}
		po.Status = entity.POStatusReceived
		po.ReceivedAt = &now
		out = po
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("po_number", out.PONumber).Int("lines", len(out.Items)).Msg("orden de compra recibida")
	uc.activity(ctx, userID, "Purchase Order Received",
		fmt.Sprintf("Received purchase order %s from %s (%d line(s), total $%s)",
			out.PONumber, out.Supplier, len(out.Items), out.TotalAmount.StringFixed(2)),
		out.ProjectID)

	return &dto.ReceivePurchaseOrderResponse{
		PurchaseOrder: dto.FromPurchaseOrder(out),
		Movements:     results,
	}, nil
}

// Document genera el PDF de la orden. Devuelve el contenido y un nombre de archivo sugerido.
func (uc *PurchaseOrderUseCase) Document(ctx context.Context, id string) ([]byte, string, error) {
	if uc.d.PDF == nil {
		return nil, "", fmt.Errorf("generador de PDF no configurado")
	}
	po, err := uc.require(ctx, id)
	if err != nil {
		return nil, "", err
	}
	data := DocumentData{Order: po, Products: make(map[string]*entity.Product, len(po.Items))}
	if po.VendorID != nil {
		if data.Vendor, err = uc.d.Vendors.GetByID(ctx, *po.VendorID); err != nil {
			return nil, "", err
		}
	}
	if po.ProjectID != nil {
		if data.Project, err = uc.d.Projects.GetByID(ctx, *po.ProjectID); err != nil {
			return nil, "", err
		}
	}
	for _, it := range po.Items {
		p, err := uc.d.Products.GetByID(ctx, it.ProductID)
		if err != nil {
			return nil, "", err
		}
		if p != nil {
			data.Products[p.ID] = p
		}
	}
	pdf, err := uc.d.PDF.GeneratePurchaseOrder(data)
	if err != nil {
		return nil, "", fmt.Errorf("generar PDF: %w", err)
	}
	return pdf, po.PONumber + ".pdf", nil
}

// NewPONumber genera un número PO-AAAAMMDD-XXXXXX.
func NewPONumber(t time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("PO-%s-%s", t.Format("20060102"), suffix)
}

func (uc *PurchaseOrderUseCase) require(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	po, err := uc.d.Orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.ErrNotFound
	}
	return po, nil
}

func (uc *PurchaseOrderUseCase) activity(ctx context.Context, userID, action, details string, projectID *string) {
	if uc.d.Logs == nil || userID == "" {
		return
	}
	if err := uc.d.Logs.Create(ctx, &entity.ActivityLog{
		ID:        uuid.New().String(),
		UserID:    userID,
		Action:    action,
		Details:   details,
		ProjectID: projectID,
		CreatedAt: uc.now(),
	}); err != nil {
		uc.log.Warn().Err(err).Str("action", action).Msg("no se pudo registrar actividad")
	}
}
