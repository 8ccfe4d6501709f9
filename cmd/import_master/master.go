package main

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/iamprathosh/BB-Inventory-APP/internal/application/dto"
	"github.com/iamprathosh/BB-Inventory-APP/internal/application/usecase"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
)

type masterCategory struct {
	name, description, icon string
}

type masterUnit struct {
	name, abbreviation, unitType string
}

type masterProduct struct {
	name, sku, category, unit string
	quantity                  int64
	price, costPrice          string
}

var masterCategories = []masterCategory{
	{"Cement & Concrete", "Cement, concrete mix, additives", "🧱"},
	{"Steel & Rebar", "Rebar, steel bars, mesh", "🔩"},
	{"Blocks & Bricks", "Concrete blocks, clay bricks", "🧱"},
	{"Sand & Gravel", "Construction sand, gravel, aggregates", "⛏️"},
	{"Electrical", "Wires, conduits, electrical components", "⚡"},
	{"Plumbing", "Pipes, fittings, plumbing supplies", "🔧"},
	{"Tools & Equipment", "Hand tools, power tools, equipment", "🔨"},
	{"Hardware", "Bolts, screws, fasteners", "🔩"},
	{"Paint & Finishes", "Paint, primers, finishing materials", "🎨"},
	{"Lumber & Wood", "Timber, plywood, wood products", "🌲"},
}

var masterUnits = []masterUnit{
	{"Bag", "bag", entity.UnitTypeCount},
	{"Piece", "pcs", entity.UnitTypeCount},
	{"Kilogram", "kg", entity.UnitTypeWeight},
	{"Ton", "ton", entity.UnitTypeWeight},
	{"Meter", "m", entity.UnitTypeLength},
	{"Cubic Meter", "m³", entity.UnitTypeVolume},
	{"Square Meter", "m²", entity.UnitTypeArea},
	{"Roll", "roll", entity.UnitTypeCount},
	{"Bundle", "bundle", entity.UnitTypeCount},
	{"Sheet", "sheet", entity.UnitTypeCount},
	{"Gallon", "gal", entity.UnitTypeVolume},
	{"Liter", "L", entity.UnitTypeVolume},
}

var masterProducts = []masterProduct{
	{"Portland Cement", "CEM-001", "Cement & Concrete", "bag", 50, "12.50", "10.00"},
	{"Ready Mix Concrete", "CEM-002", "Cement & Concrete", "m³", 25, "120.00", "95.00"},
	{`Concrete Blocks 8"`, "BLK-001", "Blocks & Bricks", "pcs", 500, "2.50", "1.80"},
	{`Concrete Blocks 6"`, "BLK-002", "Blocks & Bricks", "pcs", 300, "2.25", "1.60"},

	{"Rebar 10mm x 6m", "RB-001", "Steel & Rebar", "pcs", 200, "18.50", "14.50"},
	{"Rebar 12mm x 6m", "RB-002", "Steel & Rebar", "pcs", 150, "22.75", "18.50"},
	{"Steel Mesh 6x6", "SM-001", "Steel & Rebar", "sheet", 80, "45.00", "35.00"},

	{"Construction Sand", "AGG-001", "Sand & Gravel", "m³", 15, "45.00", "35.00"},
	{`Crushed Gravel 3/4"`, "AGG-002", "Sand & Gravel", "m³", 12, "55.00", "42.00"},
	{"Fill Dirt", "AGG-003", "Sand & Gravel", "m³", 20, "25.00", "18.00"},

	{"Electrical Wire 12 AWG", "ELE-001", "Electrical", "m", 500, "2.50", "1.80"},
	{`PVC Conduit 1/2"`, "ELE-002", "Electrical", "m", 300, "3.25", "2.40"},
	{"Junction Box", "ELE-003", "Electrical", "pcs", 100, "8.50", "6.20"},

	{`PVC Pipe 4" x 6m`, "PLB-001", "Plumbing", "pcs", 80, "28.50", "22.00"},
	{`PVC Pipe 2" x 6m`, "PLB-002", "Plumbing", "pcs", 120, "15.75", "12.50"},
	{`PVC Elbow 4"`, "PLB-003", "Plumbing", "pcs", 200, "4.25", "3.10"},

	{`Galvanized Bolts 1/2" x 6"`, "HW-001", "Hardware", "pcs", 500, "1.85", "1.35"},
	{"Concrete Screws", "HW-002", "Hardware", "pcs", 1000, "0.95", "0.65"},
	{"Anchor Bolts", "HW-003", "Hardware", "pcs", 300, "3.50", "2.75"},

	{"Shovel - Heavy Duty", "TL-001", "Tools & Equipment", "pcs", 25, "35.00", "25.00"},
	{"Wheelbarrow", "TL-002", "Tools & Equipment", "pcs", 10, "125.00", "95.00"},
	{"Level 4ft", "TL-003", "Tools & Equipment", "pcs", 15, "45.00", "32.00"},

	{"Exterior Paint - White", "PT-001", "Paint & Finishes", "gal", 50, "38.50", "28.00"},
	{"Primer - Universal", "PT-002", "Paint & Finishes", "gal", 40, "32.00", "24.50"},

	{"2x4 Lumber 8ft", "LBR-001", "Lumber & Wood", "pcs", 200, "8.50", "6.25"},
	{"2x6 Lumber 10ft", "LBR-002", "Lumber & Wood", "pcs", 150, "15.75", "12.50"},
	{`Plywood 3/4" 4x8`, "PLY-001", "Lumber & Wood", "sheet", 75, "65.00", "48.00"},
}

// summary cuenta lo creado y lo que ya existía en la base.
type summary struct {
	Categories, Units, Products int
	Skipped                     int
}

// seeder carga la lista maestra a través de los casos de uso, así cada saldo inicial
// queda en el ledger como un ajuste valorado al costo declarado.
type seeder struct {
	catalog  *usecase.CatalogUseCase
	products *usecase.ProductUseCase
}

func (s seeder) run(ctx context.Context, userID string) (summary, error) {
	var out summary

	for _, c := range masterCategories {
		_, err := s.catalog.CreateCategory(ctx, userID, dto.CategoryRequest{Name: c.name, Description: c.description, Icon: c.icon})
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			out.Skipped++
		case err != nil:
			return out, fmt.Errorf("categoría %q: %w", c.name, err)
		default:
			out.Categories++
		}
	}

	// Las unidades no tienen índice único; se compara por abreviatura.
	existing, err := s.catalog.ListUnits(ctx, false, "")
	if err != nil {
		return out, err
	}
	have := make(map[string]bool, len(existing))
	for _, u := range existing {
		have[u.Abbreviation] = true
	}
	for _, u := range masterUnits {
		if have[u.abbreviation] {
			out.Skipped++
			continue
		}
		if _, err := s.catalog.CreateUnit(ctx, userID, dto.UnitRequest{Name: u.name, Abbreviation: u.abbreviation, Type: u.unitType}); err != nil {
			return out, fmt.Errorf("unidad %q: %w", u.abbreviation, err)
		}
		have[u.abbreviation] = true
		out.Units++
	}

	for _, p := range masterProducts {
		_, err := s.products.Create(ctx, userID, productRequest(p))
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			out.Skipped++
		case err != nil:
			return out, fmt.Errorf("producto %s: %w", p.sku, err)
		default:
			out.Products++
		}
	}
	return out, nil
}

// productRequest: punto de reorden al 20% del stock inicial.
func productRequest(p masterProduct) dto.CreateProductRequest {
	cost := decimal.RequireFromString(p.costPrice)
	reorder := p.quantity / 5
	return dto.CreateProductRequest{
		SKU:             p.sku,
		Name:            p.name,
		Description:     p.name + " for construction use",
		Category:        p.category,
		UnitOfMeasure:   p.unit,
		MaterialType:    strings.ToLower(p.category),
		Price:           decimal.RequireFromString(p.price),
		CostPrice:       &cost,
		ReorderLevel:    &reorder,
		InitialQuantity: p.quantity,
	}
}
