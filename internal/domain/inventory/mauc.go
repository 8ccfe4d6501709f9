package inventory

import (
	"math"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/shopspring/decimal"
)

// State son los totales acumulados de un producto.
type State struct {
	Units     int64
	TotalCost decimal.Decimal
	MAUC      decimal.Decimal
}

// Result es el efecto de aplicar un movimiento sobre un State.
// UnitCost es el costo con el que se valoró el movimiento (el que queda en el ledger).
type Result struct {
	Previous        State
	Next            State
	TotalCostImpact decimal.Decimal
	UnitCost        decimal.Decimal
}

// Apply calcula el nuevo estado de costeo (Moving Average Unit Cost).
// Es una función pura: no toca persistencia.
//
// Entradas (receive, return, adjust positivo) promedian el costo:
//
//	MAUC = (TotalCost + q*costo) / (Units + q)
//
// Salidas (pull, sale, adjust negativo) descuentan al MAUC vigente y no lo cambian.
// Con cero unidades el estado vuelve a 0/0/0.
func Apply(s State, m Movement) (Result, error) {
	res := Result{Previous: s}

	switch mv := m.(type) {
	case Receive:
		if mv.Qty <= 0 {
			return Result{}, domain.ErrInvalidQuantity
		}
		next, impact, err := addUnits(s, mv.Qty, mv.UnitCost)
		if err != nil {
			return Result{}, err
		}
		res.Next, res.TotalCostImpact, res.UnitCost = next, impact, mv.UnitCost
	case Return:
		if mv.Qty <= 0 {
			return Result{}, domain.ErrInvalidQuantity
		}
		c := costOrMAUC(mv.UnitCost, s)
		next, impact, err := addUnits(s, mv.Qty, c)
		if err != nil {
			return Result{}, err
		}
		res.Next, res.TotalCostImpact, res.UnitCost = next, impact, c
	case Pull:
		next, impact, err := removeUnits(s, abs(mv.Qty))
		if err != nil {
			return Result{}, err
		}
		res.Next, res.TotalCostImpact, res.UnitCost = next, impact, s.MAUC
	case Sale:
		next, impact, err := removeUnits(s, abs(mv.Qty))
		if err != nil {
			return Result{}, err
		}
		res.Next, res.TotalCostImpact, res.UnitCost = next, impact, s.MAUC
	case Adjust:
		switch {
		case mv.Delta > 0:
			c := costOrMAUC(mv.UnitCost, s)
			next, impact, err := addUnits(s, mv.Delta, c)
			if err != nil {
				return Result{}, err
			}
			res.Next, res.TotalCostImpact, res.UnitCost = next, impact, c
		case mv.Delta == math.MinInt64:
			return Result{}, domain.ErrInvalidQuantity
		case mv.Delta < 0:
			next, impact, err := removeUnits(s, -mv.Delta)
			if err != nil {
				return Result{}, err
			}
			res.Next, res.TotalCostImpact, res.UnitCost = next, impact, s.MAUC
		default:
			return Result{}, domain.ErrInvalidQuantity
		}
		res.Next = average(res.Next)
	default:
		return Result{}, domain.ErrUnsupportedTransactionType
	}
	return res, nil
}

// addUnits rechaza entradas que desbordarían el contador de unidades.
func addUnits(s State, q int64, unitCost decimal.Decimal) (State, decimal.Decimal, error) {
	if q <= 0 || q > math.MaxInt64-s.Units {
		return State{}, decimal.Zero, domain.ErrInvalidQuantity
	}
	impact := unitCost.Mul(decimal.NewFromInt(q))
	next := State{
		Units:     s.Units + q,
		TotalCost: clampZero(s.TotalCost.Add(impact)),
	}
	return average(next), impact, nil
}

func removeUnits(s State, q int64) (State, decimal.Decimal, error) {
	if q <= 0 {
		return State{}, decimal.Zero, domain.ErrInvalidQuantity
	}
	if q > s.Units {
		return State{}, decimal.Zero, domain.ErrInsufficientStock
	}
	impact := s.MAUC.Mul(decimal.NewFromInt(q)).Neg()
	next := State{
		Units:     s.Units - q,
		TotalCost: clampZero(s.TotalCost.Add(impact)),
		MAUC:      s.MAUC,
	}
	if next.Units <= 0 {
		return State{TotalCost: decimal.Zero, MAUC: decimal.Zero}, impact, nil
	}
	return next, impact, nil
}

// average recalcula MAUC = TotalCost / Units, o 0/0/0 sin unidades.
func average(s State) State {
	if s.Units <= 0 {
		return State{TotalCost: decimal.Zero, MAUC: decimal.Zero}
	}
	s.MAUC = s.TotalCost.Div(decimal.NewFromInt(s.Units))
	return s
}

func costOrMAUC(c *decimal.Decimal, s State) decimal.Decimal {
	if c != nil {
		return *c
	}
	return s.MAUC
}

func clampZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
