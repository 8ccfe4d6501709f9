package entity

import "time"

// Tipos de unidad de medida.
const (
	UnitTypeWeight = "weight"
	UnitTypeVolume = "volume"
	UnitTypeLength = "length"
	UnitTypeCount  = "count"
	UnitTypeArea   = "area"
)

// UnitOfMeasure es una unidad en la que se cuenta un material (Bag, Kg, Ton...).
type UnitOfMeasure struct {
	ID           string
	Name         string
	Abbreviation string
	Type         string
	IsActive     bool
	CreatedBy    string
	CreatedAt    time.Time
}
