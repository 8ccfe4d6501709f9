package repository

import (
	"context"
	"time"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
)

// PurchaseOrderRepository define el puerto de persistencia para órdenes de compra (con líneas).
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	GetByNumber(ctx context.Context, poNumber string) (*entity.PurchaseOrder, error)
	// GetForUpdate bloquea la orden hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.PurchaseOrder, error)
	UpdateStatus(ctx context.Context, id, status string, receivedAt *time.Time) error
	// List filtra por estado; status vacío devuelve todas (más recientes primero).
	List(ctx context.Context, status string) ([]*entity.PurchaseOrder, error)
}
