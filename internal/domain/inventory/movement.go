package inventory

import (
	"math"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/shopspring/decimal"
)

// Kind es la etiqueta con la que un movimiento queda registrado en el ledger.
type Kind string

// Tipos de transacción de inventario.
const (
	KindReceive  Kind = "receive"  // entrada de proveedor a un costo unitario
	KindPull     Kind = "pull"     // salida para consumo en obra
	KindReturn   Kind = "return"   // devolución al almacén
	KindAdjust   Kind = "adjust"   // corrección con signo
	KindSale     Kind = "sale"     // salida por venta
	KindPurchase Kind = "purchase" // etiqueta heredada; no se acepta como movimiento
)

// Valid indica si k es una etiqueta conocida del ledger (incluye purchase).
func (k Kind) Valid() bool {
	switch k {
	case KindReceive, KindPull, KindReturn, KindAdjust, KindSale, KindPurchase:
		return true
	}
	return false
}

// Movement es la variante etiquetada de un movimiento de stock.
// Solo los tipos de este paquete la implementan (isMovement no exportado),
// así el type switch de Apply cubre todos los casos.
type Movement interface {
	Kind() Kind
	isMovement()
}

// Receive agrega Qty unidades a UnitCost; desplaza el MAUC.
type Receive struct {
	Qty      int64
	UnitCost decimal.Decimal
}

// Return agrega Qty unidades. UnitCost nil = al MAUC vigente.
type Return struct {
	Qty      int64
	UnitCost *decimal.Decimal
}

// Pull retira Qty unidades al MAUC vigente.
type Pull struct {
	Qty int64
}

// Sale retira Qty unidades al MAUC vigente.
type Sale struct {
	Qty int64
}

// Adjust corrige el stock en Delta unidades (con signo).
// Delta > 0 entra a UnitCost (nil = MAUC vigente); Delta < 0 sale al MAUC vigente.
type Adjust struct {
	Delta    int64
	UnitCost *decimal.Decimal
}

func (Receive) Kind() Kind { return KindReceive }
func (Return) Kind() Kind  { return KindReturn }
func (Pull) Kind() Kind    { return KindPull }
func (Sale) Kind() Kind    { return KindSale }
func (Adjust) Kind() Kind  { return KindAdjust }

func (Receive) isMovement() {}
func (Return) isMovement()  {}
func (Pull) isMovement()    {}
func (Sale) isMovement()    {}
func (Adjust) isMovement()  {}

// NewMovement construye la variante a partir de un request sin tipar.
//
// Reglas:
//   - receive: qty > 0 y unitCost obligatorio.
//   - return: qty > 0; unitCost opcional.
//   - pull/sale: qty != 0; se usa la magnitud (registros antiguos la guardaban negativa).
//   - adjust: qty != 0 (con signo).
//   - unitCost negativo → ErrInvalidInput.
//   - qty = math.MinInt64 no tiene magnitud representable → ErrInvalidQuantity.
func NewMovement(kind Kind, qty int64, unitCost *decimal.Decimal) (Movement, error) {
	if qty == math.MinInt64 {
		return nil, domain.ErrInvalidQuantity
	}
	if unitCost != nil && unitCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	switch kind {
	case KindReceive:
		if qty <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		if unitCost == nil {
			return nil, domain.ErrInvalidInput
		}
		return Receive{Qty: qty, UnitCost: *unitCost}, nil
	case KindReturn:
		if qty <= 0 {
			return nil, domain.ErrInvalidQuantity
		}
		return Return{Qty: qty, UnitCost: unitCost}, nil
	case KindPull:
		if qty == 0 {
			return nil, domain.ErrInvalidQuantity
		}
		return Pull{Qty: abs(qty)}, nil
	case KindSale:
		if qty == 0 {
			return nil, domain.ErrInvalidQuantity
		}
		return Sale{Qty: abs(qty)}, nil
	case KindAdjust:
		if qty == 0 {
			return nil, domain.ErrInvalidQuantity
		}
		return Adjust{Delta: qty, UnitCost: unitCost}, nil
	}
	return nil, domain.ErrUnsupportedTransactionType
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
