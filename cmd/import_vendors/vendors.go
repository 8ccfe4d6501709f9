package main

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

const defaultPaymentTerms = "Net 30"

// vendorNamespace hace que el ID de un proveedor dependa solo de su nombre:
// reimportar la misma planilla no duplica filas.
var vendorNamespace = uuid.MustParse("6f1c1f8e-2b0a-4c3e-9a57-3d1f0c9b7e21")

// columnas de la planilla exportada (sin el "* " de campos obligatorios).
const (
	colName    = "vendor name"
	colEmail   = "email"
	colPhone   = "phone"
	colAddress = "address line 1"
	colCity    = "city"
	colState   = "state"
	colZip     = "zip code"
	colContact = "contact name"
)

// specialtyKeywords en orden: la salida conserva el orden de coincidencia.
var specialtyKeywords = []struct {
	keyword string
	specs   []string
}{
	{"concrete", []string{"Concrete", "Ready Mix"}},
	{"lumber", []string{"Lumber", "Framing"}},
	{"supply", []string{"General Supplies", "Building Materials"}},
	{"steel", []string{"Steel", "Metal Fabrication"}},
	{"masonry", []string{"Masonry", "Stone Work"}},
	{"roofing", []string{"Roofing", "Waterproofing"}},
	{"electric", []string{"Electrical", "Lighting"}},
	{"plumb", []string{"Plumbing", "HVAC"}},
	{"paint", []string{"Painting", "Coatings"}},
	{"glass", []string{"Glazing", "Windows"}},
	{"tile", []string{"Tile", "Flooring"}},
	{"insul", []string{"Insulation", "Thermal Protection"}},
	{"excavat", []string{"Excavation", "Earthwork"}},
	{"transport", []string{"Transportation", "Delivery"}},
	{"rental", []string{"Equipment Rental"}},
	{"demo", []string{"Demolition"}},
}

// decodeInput devuelve el contenido como UTF-8. Sin BOM y si no es UTF-8 válido se asume ISO-8859-1.
func decodeInput(raw []byte) (io.Reader, error) {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return bytes.NewReader(raw), nil
	}
	out, _, err := transform.Bytes(charmap.ISO8859_1.NewDecoder(), raw)
	if err != nil {
		return nil, fmt.Errorf("decodificar ISO-8859-1: %w", err)
	}
	return bytes.NewReader(out), nil
}

// parseVendors lee la planilla CSV. Las filas sin nombre se descartan.
func parseVendors(r io.Reader, now time.Time) ([]*entity.Vendor, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer encabezado: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[normalizeHeader(h)] = i
	}
	if _, ok := idx[colName]; !ok {
		return nil, fmt.Errorf("falta la columna %q", "Vendor Name")
	}
	get := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		v := strings.TrimSpace(row[i])
		if strings.EqualFold(v, "nan") {
			return ""
		}
		return v
	}

	var vendors []*entity.Vendor
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		name := get(row, colName)
		if name == "" {
			continue
		}
		vendors = append(vendors, &entity.Vendor{
			ID:             uuid.NewSHA1(vendorNamespace, []byte(strings.ToLower(name))).String(),
			Name:           name,
			Email:          get(row, colEmail),
			Phone:          cleanPhone(get(row, colPhone)),
			Address:        get(row, colAddress),
			City:           get(row, colCity),
			State:          get(row, colState),
			ZipCode:        cleanZip(get(row, colZip)),
			ContactPerson:  get(row, colContact),
			VendorType:     vendorType(name),
			Specialties:    specialties(name),
			Certifications: []string{},
			PaymentTerms:   defaultPaymentTerms,
			IsActive:       true,
			CreatedAt:      now,
		})
	}
	return vendors, nil
}

func normalizeHeader(h string) string {
	h = strings.TrimSpace(strings.TrimLeft(h, "* "))
	return strings.ToLower(h)
}

// cleanPhone formatea 10 dígitos como (XXX) XXX-XXXX; con 11 y prefijo 1 lo quita.
// Si no quedan 10 dígitos se devuelve el valor original.
func cleanPhone(s string) string {
	if s == "" {
		return ""
	}
	digits := numericDigits(s)
	if len(digits) == 11 && digits[0] == '1' {
		digits = digits[1:]
	}
	if len(digits) == 10 {
		return fmt.Sprintf("(%s) %s-%s", digits[:3], digits[3:6], digits[6:])
	}
	return s
}

// cleanZip quita la parte decimal de exportaciones numéricas ("02139.0" → "02139").
func cleanZip(s string) string {
	if s == "" {
		return ""
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && strings.ContainsAny(s, ".eE") {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

// numericDigits extrae los dígitos; valores como "5551234567.0" o "5.551234567E9" se leen como número.
func numericDigits(s string) string {
	if strings.ContainsAny(s, ".eE") {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return strconv.FormatInt(int64(f), 10)
		}
	}
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func specialties(name string) []string {
	lower := strings.ToLower(name)
	var out []string
	for _, k := range specialtyKeywords {
		if strings.Contains(lower, k.keyword) {
			out = append(out, k.specs...)
		}
	}
	if len(out) == 0 {
		return []string{"General Construction"}
	}
	return out
}

func vendorType(name string) string {
	lower := strings.ToLower(name)
	containsAny := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}
	switch {
	case containsAny("supply", "supplier", "materials"):
		return "supplier"
	case containsAny("contractor", "construction", "builders"):
		return "subcontractor"
	case containsAny("service", "rental", "transport"):
		return "service"
	}
	return "supplier"
}
