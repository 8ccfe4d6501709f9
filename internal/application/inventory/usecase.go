package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	costing "github.com/iamprathosh/BB-Inventory-APP/internal/domain/inventory"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/iamprathosh/BB-Inventory-APP/pkg/logger"
	"github.com/shopspring/decimal"
)

// MovementInput entrada para aplicar un movimiento de inventario.
// Quantity: magnitud para receive/return/pull/sale (pull y sale aceptan signo negativo); con signo para adjust.
// UnitCost obligatorio en receive; opcional en return y adjust positivo (se usa el MAUC vigente).
type MovementInput struct {
	ProductID             string
	Type                  string
	Quantity              int64
	UnitCost              *decimal.Decimal
	Reference             string
	VendorID              string
	ProjectID             string
	DeliveryReceiptNumber string
	Notes                 string
	UserID                string
}

// MovementResult totales resultantes de un movimiento confirmado.
type MovementResult struct {
	TransactionID       string
	PreviousMAUC        decimal.Decimal
	NewMAUC             decimal.Decimal
	NewQuantity         int64
	NewTotalCostInStock decimal.Decimal
}

// MovementUseCase aplica movimientos de stock con recálculo de MAUC de forma transaccional:
// bloqueo de fila (SELECT FOR UPDATE), actualización de totales y asiento del ledger, con Commit/Rollback.
type MovementUseCase struct {
	txRunner TxRunner
	logRepo  repository.ActivityLogRepository
	log      *logger.Logger
	now      func() time.Time
}

// NewMovementUseCase construye el caso de uso. logRepo puede ser nil (sin registro de actividad).
func NewMovementUseCase(txRunner TxRunner, logRepo repository.ActivityLogRepository, log *logger.Logger) *MovementUseCase {
	if log == nil {
		log = logger.Nop()
	}
	return &MovementUseCase{txRunner: txRunner, logRepo: logRepo, log: log.Component("inventory"), now: time.Now}
}

// ApplyInventoryMovement valida el movimiento, abre la transacción y lo aplica.
// Si algo falla, producto y ledger quedan como estaban.
func (uc *MovementUseCase) ApplyInventoryMovement(ctx context.Context, in MovementInput) (*MovementResult, error) {
	if strings.TrimSpace(in.ProductID) == "" {
		return nil, domain.ErrInvalidInput
	}
	mv, err := costing.NewMovement(costing.Kind(in.Type), in.Quantity, in.UnitCost)
	if err != nil {
		return nil, err
	}

	var (
		res     *MovementResult
		product *entity.Product
	)
	now := uc.now()
	err = uc.txRunner.Run(ctx, func(
		txRepo repository.InventoryTransactionRepository,
		productRepo repository.ProductRepository,
	) error {
		var err error
		res, product, err = uc.ApplyInTx(ctx, txRepo, productRepo, mv, in, now)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("product_id", in.ProductID).
		Str("type", in.Type).
		Int64("quantity", in.Quantity).
		Str("previous_mauc", res.PreviousMAUC.String()).
		Str("new_mauc", res.NewMAUC.String()).
		Int64("new_quantity", res.NewQuantity).
		Msg("movimiento de inventario aplicado")

	uc.recordActivity(ctx, in, res, product)
	return res, nil
}

// ApplyInTx aplica mv usando los repositorios de una transacción abierta por el caller
// (recepción de órdenes de compra). Bloquea el producto, recalcula y asienta el ledger.
func (uc *MovementUseCase) ApplyInTx(
	ctx context.Context,
	txRepo repository.InventoryTransactionRepository,
	productRepo repository.ProductRepository,
	mv costing.Movement,
	in MovementInput,
	now time.Time,
) (*MovementResult, *entity.Product, error) {
	// Bloquea la fila del producto para evitar lost updates entre movimientos concurrentes
	product, err := productRepo.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, domain.ErrProductNotFound
	}

	state := costing.State{
		Units:     product.Quantity,
		TotalCost: product.TotalCostInStock,
		MAUC:      product.MovingAverageCost,
	}
	out, err := costing.Apply(state, mv)
	if err != nil {
		return nil, nil, err
	}

	upd := repository.CostingUpdate{
		Quantity:          out.Next.Units,
		TotalCostInStock:  out.Next.TotalCost,
		MovingAverageCost: out.Next.MAUC,
		UpdatedAt:         now,
	}
	if mv.Kind() == costing.KindReceive {
		price := out.UnitCost
		upd.LastPurchasePrice = &price
		upd.LastPurchaseDate = &now
	}
	if err := productRepo.UpdateCosting(ctx, product.ID, upd); err != nil {
		return nil, nil, err
	}

	t := &entity.InventoryTransaction{
		ID:                      uuid.New().String(),
		ProductID:               product.ID,
		ProjectID:               optional(in.ProjectID),
		VendorID:                optional(in.VendorID),
		UserID:                  optional(in.UserID),
		Type:                    string(mv.Kind()),
		Quantity:                out.Next.Units - out.Previous.Units,
		UnitPrice:               out.UnitCost,
		MAUCAtTimeOfTransaction: out.Previous.MAUC,
		TotalCostImpact:         out.TotalCostImpact,
		NewMAUCAfterTransaction: out.Next.MAUC,
		Date:                    now,
		Reference:               in.Reference,
		DeliveryReceiptNumber:   in.DeliveryReceiptNumber,
		Notes:                   in.Notes,
	}
	if err := txRepo.Create(ctx, t); err != nil {
		return nil, nil, err
	}

	product.Quantity = upd.Quantity
	product.TotalCostInStock = upd.TotalCostInStock
	product.MovingAverageCost = upd.MovingAverageCost
	if upd.LastPurchasePrice != nil {
		product.LastPurchasePrice = upd.LastPurchasePrice
		product.LastPurchaseDate = upd.LastPurchaseDate
	}
	product.UpdatedAt = now

	return &MovementResult{
		TransactionID:       t.ID,
		PreviousMAUC:        out.Previous.MAUC,
		NewMAUC:             out.Next.MAUC,
		NewQuantity:         out.Next.Units,
		NewTotalCostInStock: out.Next.TotalCost,
	}, product, nil
}

// Receive registra una entrada de proveedor a in.UnitCost.
func (uc *MovementUseCase) Receive(ctx context.Context, in MovementInput) (*MovementResult, error) {
	in.Type = string(costing.KindReceive)
	return uc.ApplyInventoryMovement(ctx, in)
}

// Pull registra una salida a obra al MAUC vigente.
func (uc *MovementUseCase) Pull(ctx context.Context, in MovementInput) (*MovementResult, error) {
	in.Type = string(costing.KindPull)
	return uc.ApplyInventoryMovement(ctx, in)
}

// Return registra una devolución al almacén.
func (uc *MovementUseCase) Return(ctx context.Context, in MovementInput) (*MovementResult, error) {
	in.Type = string(costing.KindReturn)
	return uc.ApplyInventoryMovement(ctx, in)
}

// Adjust registra una corrección con signo.
func (uc *MovementUseCase) Adjust(ctx context.Context, in MovementInput) (*MovementResult, error) {
	in.Type = string(costing.KindAdjust)
	return uc.ApplyInventoryMovement(ctx, in)
}

// recordActivity escribe el registro de actividad después del commit; un fallo aquí no revierte el movimiento.
func (uc *MovementUseCase) recordActivity(ctx context.Context, in MovementInput, res *MovementResult, p *entity.Product) {
	if uc.logRepo == nil || in.UserID == "" || p == nil {
		return
	}
	entry := &entity.ActivityLog{
		ID:        uuid.New().String(),
		UserID:    in.UserID,
		Action:    ActivityAction(in.Type),
		Details:   ActivityDetails(in, res, p.Name),
		ProjectID: optional(in.ProjectID),
		CreatedAt: uc.now(),
	}
	if err := uc.logRepo.Create(ctx, entry); err != nil {
		uc.log.Warn().Err(err).Str("product_id", p.ID).Msg("no se pudo registrar actividad")
	}
}

// ActivityAction nombre de la acción registrada para cada tipo de movimiento.
func ActivityAction(kind string) string {
	switch costing.Kind(kind) {
	case costing.KindReceive:
		return "Inventory Received"
	case costing.KindPull:
		return "Inventory Pulled"
	case costing.KindReturn:
		return "Inventory Returned"
	case costing.KindAdjust:
		return "Inventory Adjusted"
	case costing.KindSale:
		return "Inventory Sold"
	}
	return "Inventory Movement"
}

// ActivityDetails describe el movimiento con el cambio de MAUC.
func ActivityDetails(in MovementInput, res *MovementResult, productName string) string {
	qty := in.Quantity
	if qty < 0 && costing.Kind(in.Type) != costing.KindAdjust {
		qty = -qty
	}
	return fmt.Sprintf("%s %d units of %s. MAUC changed from $%s to $%s",
		strings.TrimPrefix(ActivityAction(in.Type), "Inventory "), qty, productName,
		res.PreviousMAUC.StringFixed(2), res.NewMAUC.StringFixed(2))
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
