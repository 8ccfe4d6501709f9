// Package pdf genera el documento imprimible de una orden de compra para el proveedor.
//
// Layout de la página Letter:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa             │  PURCHASE ORDER N° + Fechas  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  VENDOR: Nombre / contacto   │  SHIP TO: Obra               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: SKU | Descripción | Cant | Unidad | P.Unit | Total   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL                                                       │
//	│  FOOTER: QR con el N° de PO para la recepción en almacén     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/iamprathosh/BB-Inventory-APP/internal/application/purchasing"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

var _ purchasing.DocumentGenerator = (*MarotoPDFGenerator)(nil)

// MarotoPDFGenerator implementa purchasing.DocumentGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	companyName string
}

// NewMarotoPDFGenerator construye el generador; companyName encabeza el documento.
func NewMarotoPDFGenerator(companyName string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{companyName: companyName}
}

// GeneratePurchaseOrder genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GeneratePurchaseOrder(data purchasing.DocumentData) ([]byte, error) {
	po := data.Order
	if po == nil {
		return nil, fmt.Errorf("pdf: orden vacía")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.Letter).
		WithLeftMargin(12).WithRightMargin(12).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Purchase Order "+po.PONumber, true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.companyName, po))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(po, data.Vendor, data.Project))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(po.Items, data.Products)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(po.TotalAmount))

	m.AddRows(line.NewRow(4))
	m.AddRows(footerRow(po))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(company string, po *entity.PurchaseOrder) core.Row {
	dates := "Order date: " + po.OrderDate.Format("01/02/2006")
	if po.ExpectedDate != nil {
		dates += "   Expected: " + po.ExpectedDate.Format("01/02/2006")
	}
	return row.New(18).Add(
		col.New(6).Add(
			text.New(nonEmpty(company, "Inventory"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(6).Add(
			text.New("PURCHASE ORDER", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New(po.PONumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 6,
			}),
			text.New(dates, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// partiesRow proveedor (izq) y obra de destino (der).
func partiesRow(po *entity.PurchaseOrder, v *entity.Vendor, p *entity.Project) core.Row {
	vendorLines := []string{po.Supplier}
	if v != nil {
		if v.ContactPerson != "" {
			vendorLines = append(vendorLines, "Attn: "+v.ContactPerson)
		}
		if addr := joinNonEmpty(", ", v.Address, v.City, strings.TrimSpace(v.State+" "+v.ZipCode)); addr != "" {
			vendorLines = append(vendorLines, addr)
		}
		if contact := joinNonEmpty("   |   ", v.Phone, v.Email); contact != "" {
			vendorLines = append(vendorLines, contact)
		}
		if v.PaymentTerms != "" {
			vendorLines = append(vendorLines, "Terms: "+v.PaymentTerms)
		}
	}
	shipTo := "Main warehouse"
	if p != nil {
		shipTo = p.Name
	}

	return row.New(26).Add(
		col.New(7).Add(
			text.New("VENDOR", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(strings.Join(vendorLines, "\n"), props.Text{Size: 8, Top: 6}),
		),
		col.New(5).Add(
			text.New("SHIP TO", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(shipTo, props.Text{Size: 9, Top: 6}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("SKU", 2, align.Left),
		h("Description", 4, align.Left),
		h("Qty", 1, align.Center),
		h("Unit", 1, align.Center),
		h("Unit price", 2, align.Right),
		h("Amount", 2, align.Right),
	)
}

// itemRows una fila por línea; si el producto ya no existe se muestra su ID.
func itemRows(items []entity.PurchaseOrderItem, products map[string]*entity.Product) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, it := range items {
		sku, name, unit := "", it.ProductID, ""
		if p, ok := products[it.ProductID]; ok && p != nil {
			sku, name, unit = p.SKU, p.Name, p.UnitOfMeasure
		}
		out = append(out, row.New(7).Add(
			col.New(2).Add(text.New(sku, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(name, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", it.Quantity), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatMoney(it.UnitPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(formatMoney(it.Subtotal()), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return out
}

func totalRow(total decimal.Decimal) core.Row {
	return row.New(10).Add(
		col.New(8),
		col.New(2).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 2,
		})),
		col.New(2).Add(text.New(formatMoney(total), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Top: 2, Right: 1,
		})),
	)
}

// footerRow QR con el número de PO: el almacén lo escanea al recibir.
func footerRow(po *entity.PurchaseOrder) core.Row {
	return row.New(36).Add(
		col.New(3).Add(code.NewQr(po.PONumber, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			text.New("Please reference "+po.PONumber+" on all invoices and delivery receipts.", props.Text{
				Size: 8, Top: 6, Left: 3, Color: colorGray,
			}),
			text.New("Status: "+strings.ToUpper(po.Status), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 16, Left: 3, Color: colorPrimary,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func joinNonEmpty(sep string, parts ...string) string {
	var out []string
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}

// formatMoney formatea con separador de miles y dos decimales: 1234.5 → "$1,234.50".
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + frac
}
