package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
)

// sqliteTimeLayout es el formato de created_at en el esquema SQLite.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z"

// writeSQL escribe un INSERT por proveedor; los IDs ya existentes se ignoran.
func writeSQL(w io.Writer, dialect string, vendors []*entity.Vendor) error {
	if dialect != "postgres" && dialect != "sqlite" {
		return fmt.Errorf("dialecto no soportado: %q", dialect)
	}
	fmt.Fprintf(w, "-- Proveedores importados desde planilla (%d)\n\n", len(vendors))
	for _, v := range vendors {
		var err error
		if dialect == "postgres" {
			_, err = fmt.Fprintf(w,
				"INSERT INTO vendors (id, name, email, phone, address, city, state, zip_code, contact_person, vendor_type, specialties, certifications, payment_terms, is_active)\n"+
					"VALUES ('%s', %s, %s, %s, %s, %s, %s, %s, %s, '%s', %s, %s, %s, TRUE)\n"+
					"ON CONFLICT (id) DO NOTHING;\n",
				v.ID, quote(v.Name), quote(v.Email), quote(v.Phone), quote(v.Address), quote(v.City),
				quote(v.State), quote(v.ZipCode), quote(v.ContactPerson), v.VendorType,
				pgArray(v.Specialties), pgArray(v.Certifications), quote(v.PaymentTerms))
		} else {
			_, err = fmt.Fprintf(w,
				"INSERT OR IGNORE INTO vendors (id, name, email, phone, address, city, state, zip_code, contact_person, vendor_type, specialties_json, certifications_json, payment_terms, is_active, created_at)\n"+
					"VALUES ('%s', %s, %s, %s, %s, %s, %s, %s, %s, '%s', %s, %s, %s, 1, '%s');\n",
				v.ID, quote(v.Name), quote(v.Email), quote(v.Phone), quote(v.Address), quote(v.City),
				quote(v.State), quote(v.ZipCode), quote(v.ContactPerson), v.VendorType,
				jsonText(v.Specialties), jsonText(v.Certifications), quote(v.PaymentTerms),
				v.CreatedAt.UTC().Format(sqliteTimeLayout))
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func escapeSQL(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}

func quote(s string) string {
	return "'" + escapeSQL(s) + "'"
}

func pgArray(items []string) string {
	if len(items) == 0 {
		return "'{}'::TEXT[]"
	}
	quoted := make([]string, len(items))
	for i, s := range items {
		quoted[i] = quote(s)
	}
	return "ARRAY[" + strings.Join(quoted, ", ") + "]"
}

func jsonText(items []string) string {
	if items == nil {
		items = []string{}
	}
	b, _ := json.Marshal(items)
	return quote(string(b))
}
