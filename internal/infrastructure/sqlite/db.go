// Package sqlite es el almacenamiento embebido del inventario (jmoiron/sqlx sobre modernc.org/sqlite).
// Se usa en instalaciones de una sola obra y en las pruebas de integración de los casos de uso.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite" // driver "sqlite" en Go puro
)

// timeLayout ancho fijo en UTC: el orden lexicográfico del TEXT coincide con el cronológico.
const timeLayout = "2006-01-02T15:04:05.000000000Z"

// Open abre (o crea) la base y aplica el esquema. path ":memory:" crea una base volátil.
// Una sola conexión: SQLite admite un escritor y así :memory: comparte la misma base.
func Open(ctx context.Context, path string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := ensureSchema(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

func ensureSchema(ctx context.Context, db *sqlx.DB) error {
	schema := `
PRAGMA foreign_keys = ON;

CREATE TABLE IF NOT EXISTS users(
  id TEXT PRIMARY KEY,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  name TEXT NOT NULL,
  role TEXT NOT NULL DEFAULT 'worker',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  sku TEXT NOT NULL UNIQUE,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  category TEXT NOT NULL DEFAULT '',
  unit_of_measure TEXT NOT NULL DEFAULT '',
  material_type TEXT NOT NULL DEFAULT '',
  specifications TEXT NOT NULL DEFAULT '',
  price TEXT NOT NULL DEFAULT '0',
  cost_price TEXT,
  reorder_level INTEGER,
  supplier TEXT NOT NULL DEFAULT '',
  quantity INTEGER NOT NULL DEFAULT 0 CHECK (quantity >= 0),
  moving_average_cost TEXT NOT NULL DEFAULT '0',
  total_cost_in_stock TEXT NOT NULL DEFAULT '0',
  last_purchase_price TEXT,
  last_purchase_date TEXT,
  created_at TEXT NOT NULL,
  updated_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_products_name ON products(LOWER(name));

CREATE TABLE IF NOT EXISTS categories(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  icon TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_by TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_categories_name_nocase ON categories(LOWER(name));

CREATE TABLE IF NOT EXISTS units_of_measure(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  abbreviation TEXT NOT NULL,
  type TEXT NOT NULL,
  is_active INTEGER NOT NULL DEFAULT 1,
  created_by TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS vendors(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  email TEXT NOT NULL DEFAULT '',
  phone TEXT NOT NULL DEFAULT '',
  address TEXT NOT NULL DEFAULT '',
  city TEXT NOT NULL DEFAULT '',
  state TEXT NOT NULL DEFAULT '',
  zip_code TEXT NOT NULL DEFAULT '',
  contact_person TEXT NOT NULL DEFAULT '',
  vendor_type TEXT NOT NULL DEFAULT 'supplier',
  specialties_json TEXT NOT NULL DEFAULT '[]',
  certifications_json TEXT NOT NULL DEFAULT '[]',
  payment_terms TEXT NOT NULL DEFAULT '',
  is_active INTEGER NOT NULL DEFAULT 1,
  created_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS vendor_products(
  id TEXT PRIMARY KEY,
  vendor_id TEXT NOT NULL REFERENCES vendors(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id) ON DELETE CASCADE,
  price TEXT NOT NULL,
  minimum_order_quantity INTEGER,
  lead_time_days INTEGER,
  last_price_update TEXT,
  is_preferred_vendor INTEGER NOT NULL DEFAULT 0,
  UNIQUE(vendor_id, product_id)
);

CREATE TABLE IF NOT EXISTS projects(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  start_date TEXT NOT NULL,
  end_date TEXT,
  status TEXT NOT NULL DEFAULT 'active',
  budget TEXT,
  manager_id TEXT NOT NULL DEFAULT '',
  created_at TEXT NOT NULL
);

-- Ledger sin FK a products: la historia sobrevive al borrado del producto.
CREATE TABLE IF NOT EXISTS inventory_transactions(
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  project_id TEXT,
  vendor_id TEXT,
  user_id TEXT,
  type TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  unit_price TEXT NOT NULL DEFAULT '0',
  mauc_at_time_of_transaction TEXT NOT NULL DEFAULT '0',
  total_cost_impact TEXT NOT NULL DEFAULT '0',
  new_mauc_after_transaction TEXT NOT NULL DEFAULT '0',
  date TEXT NOT NULL,
  reference TEXT NOT NULL DEFAULT '',
  delivery_receipt_number TEXT NOT NULL DEFAULT '',
  notes TEXT NOT NULL DEFAULT ''
);
CREATE INDEX IF NOT EXISTS idx_inventory_transactions_product_date ON inventory_transactions(product_id, date);
CREATE INDEX IF NOT EXISTS idx_inventory_transactions_project ON inventory_transactions(project_id);

CREATE TABLE IF NOT EXISTS purchase_orders(
  id TEXT PRIMARY KEY,
  po_number TEXT NOT NULL UNIQUE,
  vendor_id TEXT REFERENCES vendors(id) ON DELETE SET NULL,
  supplier TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  order_date TEXT NOT NULL,
  expected_date TEXT,
  received_at TEXT,
  total_amount TEXT NOT NULL DEFAULT '0',
  project_id TEXT,
  created_by TEXT NOT NULL DEFAULT ''
);

CREATE TABLE IF NOT EXISTS purchase_order_items(
  purchase_order_id TEXT NOT NULL REFERENCES purchase_orders(id) ON DELETE CASCADE,
  line INTEGER NOT NULL,
  product_id TEXT NOT NULL,
  quantity INTEGER NOT NULL CHECK (quantity > 0),
  unit_price TEXT NOT NULL,
  PRIMARY KEY(purchase_order_id, line)
);

CREATE TABLE IF NOT EXISTS activity_logs(
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  action TEXT NOT NULL,
  details TEXT NOT NULL DEFAULT '',
  project_id TEXT,
  created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_activity_logs_created ON activity_logs(created_at);
`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("esquema sqlite: %w", err)
	}
	return nil
}

func fmtTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func fmtTimePtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := fmtTime(*t)
	return &s
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		// filas escritas a mano (seeds) pueden venir en RFC3339
		t, _ = time.Parse(time.RFC3339Nano, s)
	}
	return t
}

func parseTimePtr(s *string) *time.Time {
	if s == nil || *s == "" {
		return nil
	}
	t := parseTime(*s)
	return &t
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

// isUniqueViolation detecta SQLITE_CONSTRAINT_UNIQUE por el mensaje del driver.
func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func rowsAffected(res sql.Result) int64 {
	n, _ := res.RowsAffected()
	return n
}
