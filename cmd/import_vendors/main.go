// import_vendors carga la planilla de proveedores (CSV exportado del sistema contable)
// y la convierte en un script SQL, en JSON o la inserta directamente en la base configurada.
//
// Uso:
//
//	go run ./cmd/import_vendors -in vendors.csv                       # SQL postgres a stdout
//	go run ./cmd/import_vendors -in vendors.csv -dialect sqlite -out seed.sql
//	go run ./cmd/import_vendors -in vendors.csv -export-json vendors.json
//	go run ./cmd/import_vendors -in vendors.csv -apply                # usa DB_DRIVER y .env
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/iamprathosh/BB-Inventory-APP/internal/infrastructure/postgres"
	"github.com/iamprathosh/BB-Inventory-APP/internal/infrastructure/sqlite"
	"github.com/iamprathosh/BB-Inventory-APP/pkg/config"
	"github.com/iamprathosh/BB-Inventory-APP/pkg/logger"
)

func main() {
	in := flag.String("in", "vendors.csv", "planilla CSV de proveedores")
	dialect := flag.String("dialect", "postgres", "dialecto del SQL generado: postgres | sqlite")
	out := flag.String("out", "", "archivo SQL de salida (vacío = stdout)")
	exportJSON := flag.String("export-json", "", "escribe los proveedores como JSON en esta ruta y termina")
	apply := flag.Bool("apply", false, "inserta en la base configurada en lugar de generar SQL")
	flag.Parse()

	raw, err := os.ReadFile(*in)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Leer CSV: %v\n", err)
		os.Exit(1)
	}
	r, err := decodeInput(raw)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	vendors, err := parseVendors(r, time.Now().UTC())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Procesar CSV: %v\n", err)
		os.Exit(1)
	}

	switch {
	case *exportJSON != "":
		if err := writeJSONFile(*exportJSON, vendors); err != nil {
			fmt.Fprintf(os.Stderr, "Exportar JSON: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Exportados %d proveedores a %s\n", len(vendors), *exportJSON)
	case *apply:
		if err := applyToDatabase(vendors); err != nil {
			fmt.Fprintf(os.Stderr, "Importar: %v\n", err)
			os.Exit(1)
		}
	default:
		w := io.Writer(os.Stdout)
		if *out != "" {
			f, err := os.Create(*out)
			if err != nil {
				fmt.Fprintf(os.Stderr, "Crear archivo: %v\n", err)
				os.Exit(1)
			}
			defer f.Close()
			w = f
		}
		if err := writeSQL(w, *dialect, vendors); err != nil {
			fmt.Fprintf(os.Stderr, "Generar SQL: %v\n", err)
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "Generados %d proveedores (%s)\n", len(vendors), *dialect)
	}
}

// vendorJSON es la forma exportada; las claves siguen la API.
type vendorJSON struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Email          string   `json:"email,omitempty"`
	Phone          string   `json:"phone,omitempty"`
	Address        string   `json:"address,omitempty"`
	City           string   `json:"city,omitempty"`
	State          string   `json:"state,omitempty"`
	ZipCode        string   `json:"zip_code,omitempty"`
	ContactPerson  string   `json:"contact_person,omitempty"`
	VendorType     string   `json:"vendor_type"`
	Specialties    []string `json:"specialties"`
	Certifications []string `json:"certifications"`
	PaymentTerms   string   `json:"payment_terms"`
	IsActive       bool     `json:"is_active"`
}

func writeJSONFile(path string, vendors []*entity.Vendor) error {
	items := make([]vendorJSON, 0, len(vendors))
	for _, v := range vendors {
		items = append(items, vendorJSON{
			ID: v.ID, Name: v.Name, Email: v.Email, Phone: v.Phone,
			Address: v.Address, City: v.City, State: v.State, ZipCode: v.ZipCode,
			ContactPerson: v.ContactPerson, VendorType: v.VendorType,
			Specialties: v.Specialties, Certifications: v.Certifications,
			PaymentTerms: v.PaymentTerms, IsActive: v.IsActive,
		})
	}
	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

// applyToDatabase inserta con los repositorios del driver configurado; los ya importados se omiten.
func applyToDatabase(vendors []*entity.Vendor) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("cargar configuración: %w", err)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("import_vendors")
	ctx := context.Background()

	var repo repository.VendorRepository
	if cfg.DB.Driver == config.DriverSQLite {
		db, err := sqlite.Open(ctx, cfg.DB.SQLitePath)
		if err != nil {
			return err
		}
		defer db.Close()
		repo = sqlite.NewVendorRepository(db)
	} else {
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return err
		}
		defer pool.Close()
		if err := postgres.Migrate(ctx, pool); err != nil {
			return err
		}
		repo = postgres.NewVendorRepository(pool)
	}

	var created, skipped int
	for _, v := range vendors {
		err := repo.Create(ctx, v)
		switch {
		case errors.Is(err, domain.ErrDuplicate):
			skipped++
		case err != nil:
			return fmt.Errorf("proveedor %q: %w", v.Name, err)
		default:
			created++
		}
	}
	log.Info().Int("created", created).Int("skipped", skipped).Str("driver", cfg.DB.Driver).Msg("proveedores importados")
	return nil
}
