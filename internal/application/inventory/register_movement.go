package inventory

import (
	"context"

	"github.com/iamprathosh/BB-Inventory-APP/internal/application/dto"
)

// ApplyFromRequest adapta el request HTTP al caso de uso ApplyInventoryMovement.
func (uc *MovementUseCase) ApplyFromRequest(ctx context.Context, userID string, in dto.MovementRequest) (*dto.MovementResponse, error) {
	res, err := uc.ApplyInventoryMovement(ctx, MovementInput{
		ProductID:             in.ProductID,
		Type:                  in.Type,
		Quantity:              in.Quantity,
		UnitCost:              in.UnitCost,
		Reference:             in.Reference,
		VendorID:              in.VendorID,
		ProjectID:             in.ProjectID,
		DeliveryReceiptNumber: in.DeliveryReceiptNumber,
		Notes:                 in.Notes,
		UserID:                userID,
	})
	if err != nil {
		return nil, err
	}
	return ToMovementResponse(res), nil
}

// ToMovementResponse mapea el resultado del movimiento.
func ToMovementResponse(r *MovementResult) *dto.MovementResponse {
	return &dto.MovementResponse{
		TransactionID:       r.TransactionID,
		PreviousMAUC:        r.PreviousMAUC,
		NewMAUC:             r.NewMAUC,
		NewQuantity:         r.NewQuantity,
		NewTotalCostInStock: r.NewTotalCostInStock,
	}
}
