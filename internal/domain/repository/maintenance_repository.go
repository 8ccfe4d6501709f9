package repository

import "context"

// ClearCounts son las filas eliminadas por tabla en un borrado total.
type ClearCounts struct {
	Transactions   int64 `json:"transactions"`
	PurchaseOrders int64 `json:"purchase_orders"`
	VendorProducts int64 `json:"vendor_products"`
	Products       int64 `json:"products"`
	Vendors        int64 `json:"vendors"`
	Projects       int64 `json:"projects"`
	Categories     int64 `json:"categories"`
	Units          int64 `json:"units"`
	Logs           int64 `json:"logs"`
}

// MaintenanceRepository borra los datos operativos en una sola transacción (los usuarios se conservan).
type MaintenanceRepository interface {
	ClearAll(ctx context.Context) (ClearCounts, error)
}
