package inventory

import "github.com/shopspring/decimal"

// DefaultCostRatio es la fracción del precio de venta usada como costo
// cuando un producto no tiene costo conocido.
var DefaultCostRatio = decimal.NewFromFloat(0.6)

// CostPolicy define el costo supuesto de productos sin historial de compras.
type CostPolicy struct {
	DefaultCostRatio decimal.Decimal
}

// NewCostPolicy crea la política; un ratio <= 0 usa DefaultCostRatio.
func NewCostPolicy(ratio decimal.Decimal) CostPolicy {
	if !ratio.IsPositive() {
		ratio = DefaultCostRatio
	}
	return CostPolicy{DefaultCostRatio: ratio}
}

// InitialCost devuelve el costo explícito si existe; si no, price × ratio.
func (p CostPolicy) InitialCost(explicit *decimal.Decimal, price decimal.Decimal) decimal.Decimal {
	if explicit != nil && !explicit.IsNegative() {
		return *explicit
	}
	return price.Mul(p.ratio())
}

// UnitCost para valoración: el MAUC si es positivo, o el costo supuesto.
func (p CostPolicy) UnitCost(mauc, price decimal.Decimal) decimal.Decimal {
	if mauc.IsPositive() {
		return mauc
	}
	return price.Mul(p.ratio())
}

// OpeningState es el estado de un producto que arranca con units a unitCost.
func OpeningState(units int64, unitCost decimal.Decimal) State {
	if units <= 0 {
		return State{TotalCost: decimal.Zero, MAUC: decimal.Zero}
	}
	return State{
		Units:     units,
		TotalCost: unitCost.Mul(decimal.NewFromInt(units)),
		MAUC:      unitCost,
	}
}

func (p CostPolicy) ratio() decimal.Decimal {
	if p.DefaultCostRatio.IsPositive() {
		return p.DefaultCostRatio
	}
	return DefaultCostRatio
}
