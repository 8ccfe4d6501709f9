package main

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/iamprathosh/BB-Inventory-APP/internal/infrastructure/sqlite"
)

const sampleCSV = `* Vendor Name,Email,Phone,Address Line 1,City,State,Zip Code,Contact Name
Acme Concrete Supply,ventas@acme.com,5551234567.0,12 Main St,Boston,MA,2139.0,Bob O'Neil
Metro Builders,,1-555-987-6543,,,,,
nan,x@y.com,,,,,,
,,,,,,,
Rapid Transport,,123,,,,,
`

var fixedNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestCleanPhone(t *testing.T) {
	cases := map[string]string{
		"555-123-4567":  "(555) 123-4567",
		"15551234567":   "(555) 123-4567",
		"5551234567.0":  "(555) 123-4567",
		"(555)123 4567": "(555) 123-4567",
		"123":           "123",
		"":              "",
	}
	for in, want := range cases {
		assert.Equal(t, want, cleanPhone(in), in)
	}
}

func TestCleanZip(t *testing.T) {
	assert.Equal(t, "2139", cleanZip("2139.0"))
	assert.Equal(t, "02139", cleanZip("02139"))
	assert.Equal(t, "M5V 2T6", cleanZip("M5V 2T6"))
	assert.Equal(t, "", cleanZip(""))
}

func TestSpecialties_OrdenDeCoincidencia(t *testing.T) {
	assert.Equal(t,
		[]string{"Concrete", "Ready Mix", "General Supplies", "Building Materials"},
		specialties("ACME Concrete Supply"))
	assert.Equal(t, []string{"Equipment Rental"}, specialties("City Rental Co"))
	assert.Equal(t, []string{"General Construction"}, specialties("Smith & Sons"))
}

func TestVendorType(t *testing.T) {
	assert.Equal(t, "supplier", vendorType("Acme Materials"))
	assert.Equal(t, "subcontractor", vendorType("Metro Builders"))
	assert.Equal(t, "service", vendorType("Rapid Transport"))
	assert.Equal(t, "supplier", vendorType("Smith & Sons"))
	// "supply" gana sobre "construction".
	assert.Equal(t, "supplier", vendorType("Construction Supply House"))
}

func TestParseVendors(t *testing.T) {
	vendors, err := parseVendors(strings.NewReader(sampleCSV), fixedNow)
	require.NoError(t, err)
	require.Len(t, vendors, 3)

	acme := vendors[0]
	assert.Equal(t, "Acme Concrete Supply", acme.Name)
	assert.Equal(t, "ventas@acme.com", acme.Email)
	assert.Equal(t, "(555) 123-4567", acme.Phone)
	assert.Equal(t, "2139", acme.ZipCode)
	assert.Equal(t, "Bob O'Neil", acme.ContactPerson)
	assert.Equal(t, "supplier", acme.VendorType)
	assert.Equal(t, "Net 30", acme.PaymentTerms)
	assert.True(t, acme.IsActive)
	assert.Empty(t, acme.Certifications)
	assert.Equal(t, fixedNow, acme.CreatedAt)

	assert.Equal(t, "(555) 987-6543", vendors[1].Phone)
	assert.Equal(t, "subcontractor", vendors[1].VendorType)
	assert.Equal(t, "123", vendors[2].Phone)

	// El ID depende solo del nombre.
	again, err := parseVendors(strings.NewReader(sampleCSV), fixedNow.Add(time.Hour))
	require.NoError(t, err)
	assert.Equal(t, acme.ID, again[0].ID)
	assert.NotEqual(t, vendors[0].ID, vendors[1].ID)
}

func TestParseVendors_SinColumnaNombre(t *testing.T) {
	_, err := parseVendors(strings.NewReader("Email,Phone\na@b.com,1\n"), fixedNow)
	assert.Error(t, err)
}

func TestDecodeInput_Latin1(t *testing.T) {
	latin1, err := charmap.ISO8859_1.NewEncoder().String("* Vendor Name\nFerretería Núñez\n")
	require.NoError(t, err)

	r, err := decodeInput([]byte(latin1))
	require.NoError(t, err)
	vendors, err := parseVendors(r, fixedNow)
	require.NoError(t, err)
	require.Len(t, vendors, 1)
	assert.Equal(t, "Ferretería Núñez", vendors[0].Name)
}

func TestDecodeInput_QuitaBOM(t *testing.T) {
	r, err := decodeInput([]byte("\xef\xbb\xbf* Vendor Name\nAcme\n"))
	require.NoError(t, err)
	b, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(b), "* Vendor Name"))
}

func TestWriteSQL_Postgres(t *testing.T) {
	vendors, err := parseVendors(strings.NewReader(sampleCSV), fixedNow)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, "postgres", vendors))
	sql := buf.String()
	assert.Contains(t, sql, "ARRAY['Concrete', 'Ready Mix', 'General Supplies', 'Building Materials']")
	assert.Contains(t, sql, "'Bob O''Neil'")
	assert.Contains(t, sql, "'{}'::TEXT[]")
	assert.Equal(t, 3, strings.Count(sql, "ON CONFLICT (id) DO NOTHING;"))
}

func TestWriteSQL_DialectoDesconocido(t *testing.T) {
	assert.Error(t, writeSQL(io.Discard, "mysql", nil))
}

// El SQL de SQLite se aplica sobre el esquema real y se relee con el repositorio.
func TestWriteSQL_SQLiteSeAplicaSobreElEsquema(t *testing.T) {
	ctx := context.Background()
	vendors, err := parseVendors(strings.NewReader(sampleCSV), fixedNow)
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, writeSQL(&buf, "sqlite", vendors))

	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	defer db.Close()

	// Dos pasadas: la segunda no inserta nada.
	for i := 0; i < 2; i++ {
		for _, stmt := range strings.Split(buf.String(), ";\n") {
			if strings.TrimSpace(stmt) == "" || strings.HasPrefix(strings.TrimSpace(stmt), "--") && !strings.Contains(stmt, "INSERT") {
				continue
			}
			_, err := db.ExecContext(ctx, stmt)
			require.NoError(t, err)
		}
	}

	repo := sqlite.NewVendorRepository(db)
	got, err := repo.List(ctx, true)
	require.NoError(t, err)
	require.Len(t, got, 3)

	acme, err := repo.GetByID(ctx, vendors[0].ID)
	require.NoError(t, err)
	require.NotNil(t, acme)
	assert.Equal(t, "Acme Concrete Supply", acme.Name)
	assert.Equal(t, []string{"Concrete", "Ready Mix", "General Supplies", "Building Materials"}, acme.Specialties)
	assert.True(t, acme.CreatedAt.Equal(fixedNow))
}
