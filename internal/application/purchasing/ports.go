package purchasing

import (
	"context"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
)

// TxRunner abre una transacción con los repositorios de inventario y de órdenes de compra.
// La recepción de una orden aplica todas sus líneas o ninguna.
type TxRunner interface {
	RunPurchasing(ctx context.Context, fn func(
		txRepo repository.InventoryTransactionRepository,
		productRepo repository.ProductRepository,
		poRepo repository.PurchaseOrderRepository,
	) error) error
}

// DocumentData datos para el documento imprimible de una orden.
type DocumentData struct {
	Order    *entity.PurchaseOrder
	Vendor   *entity.Vendor             // nil si la orden no tiene proveedor registrado
	Project  *entity.Project            // nil si no está asociada a una obra
	Products map[string]*entity.Product // por ID; puede faltar si el producto fue eliminado
}

// DocumentGenerator genera el PDF de la orden de compra para el proveedor.
type DocumentGenerator interface {
	GeneratePurchaseOrder(data DocumentData) ([]byte, error)
}
