package postgres

import (
	"context"
	"fmt"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/jackc/pgx/v5"
)

var _ repository.VendorRepository = (*VendorRepo)(nil)

const (
	vendorColumns = `id, name, email, phone, address, city, state, zip_code, contact_person, vendor_type,
	specialties, certifications, payment_terms, is_active, created_at`
	vendorProductColumns = `id, vendor_id, product_id, price, minimum_order_quantity, lead_time_days,
	last_price_update, is_preferred_vendor`
)

// VendorRepo proveedores y sus listas de precio (vendor_products).
type VendorRepo struct {
	q Querier
}

// NewVendorRepository construye el adaptador.
func NewVendorRepository(q Querier) *VendorRepo {
	return &VendorRepo{q: q}
}

// Create persiste un proveedor. Specialties y certifications se guardan como TEXT[].
func (r *VendorRepo) Create(ctx context.Context, v *entity.Vendor) error {
	query := `INSERT INTO vendors (` + vendorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		v.ID, v.Name, v.Email, v.Phone, v.Address, v.City, v.State, v.ZipCode, v.ContactPerson, v.VendorType,
		nonNilStrings(v.Specialties), nonNilStrings(v.Certifications), v.PaymentTerms, v.IsActive, v.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert vendor: %w", err)
	}
	return nil
}

func (r *VendorRepo) GetByID(ctx context.Context, id string) (*entity.Vendor, error) {
	v, err := scanVendor(r.q.QueryRow(ctx, `SELECT `+vendorColumns+` FROM vendors WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return v, nil
}

func (r *VendorRepo) Update(ctx context.Context, v *entity.Vendor) error {
	query := `UPDATE vendors SET name = $2, email = $3, phone = $4, address = $5, city = $6, state = $7,
			zip_code = $8, contact_person = $9, vendor_type = $10, specialties = $11, certifications = $12,
			payment_terms = $13, is_active = $14
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		v.ID, v.Name, v.Email, v.Phone, v.Address, v.City, v.State, v.ZipCode, v.ContactPerson, v.VendorType,
		nonNilStrings(v.Specialties), nonNilStrings(v.Certifications), v.PaymentTerms, v.IsActive,
	)
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VendorRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors`
	if activeOnly {
		query += ` WHERE is_active`
	}
	rows, err := r.q.Query(ctx, query+` ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	defer rows.Close()
	var list []*entity.Vendor
	for rows.Next() {
		v, err := scanVendor(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor: %w", err)
		}
		list = append(list, v)
	}
	return list, rows.Err()
}

// UpsertProduct crea o reemplaza el precio (vendor, producto).
func (r *VendorRepo) UpsertProduct(ctx context.Context, vp *entity.VendorProduct) error {
	query := `INSERT INTO vendor_products (` + vendorProductColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (vendor_id, product_id) DO UPDATE SET
			price = EXCLUDED.price,
			minimum_order_quantity = EXCLUDED.minimum_order_quantity,
			lead_time_days = EXCLUDED.lead_time_days,
			last_price_update = EXCLUDED.last_price_update,
			is_preferred_vendor = EXCLUDED.is_preferred_vendor`
	_, err := r.q.Exec(ctx, query,
		vp.ID, vp.VendorID, vp.ProductID, vp.Price, vp.MinimumOrderQuantity, vp.LeadTimeDays,
		vp.LastPriceUpdate, vp.IsPreferredVendor,
	)
	if err != nil {
		return fmt.Errorf("upsert vendor product: %w", err)
	}
	return nil
}

func (r *VendorRepo) ListProducts(ctx context.Context, vendorID string) ([]*entity.VendorProduct, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+vendorProductColumns+` FROM vendor_products WHERE vendor_id = $1 ORDER BY price`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list vendor products: %w", err)
	}
	defer rows.Close()
	var list []*entity.VendorProduct
	for rows.Next() {
		vp, err := scanVendorProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vendor product: %w", err)
		}
		list = append(list, vp)
	}
	return list, rows.Err()
}

// ListOffersForProduct proveedores activos que ofrecen el producto; preferidos primero y luego por precio.
func (r *VendorRepo) ListOffersForProduct(ctx context.Context, productID string) ([]repository.VendorOffer, error) {
	query := `
		SELECT v.id, v.name, v.email, v.phone, v.address, v.city, v.state, v.zip_code, v.contact_person, v.vendor_type,
			v.specialties, v.certifications, v.payment_terms, v.is_active, v.created_at,
			vp.id, vp.vendor_id, vp.product_id, vp.price, vp.minimum_order_quantity, vp.lead_time_days,
			vp.last_price_update, vp.is_preferred_vendor
		FROM vendor_products vp
		JOIN vendors v ON v.id = vp.vendor_id
		WHERE vp.product_id = $1 AND v.is_active
		ORDER BY vp.is_preferred_vendor DESC, vp.price ASC, v.name`
	rows, err := r.q.Query(ctx, query, productID)
	if err != nil {
		return nil, fmt.Errorf("list vendor offers: %w", err)
	}
	defer rows.Close()
	var list []repository.VendorOffer
	for rows.Next() {
		var v entity.Vendor
		var vp entity.VendorProduct
		if err := rows.Scan(
			&v.ID, &v.Name, &v.Email, &v.Phone, &v.Address, &v.City, &v.State, &v.ZipCode, &v.ContactPerson, &v.VendorType,
			&v.Specialties, &v.Certifications, &v.PaymentTerms, &v.IsActive, &v.CreatedAt,
			&vp.ID, &vp.VendorID, &vp.ProductID, &vp.Price, &vp.MinimumOrderQuantity, &vp.LeadTimeDays,
			&vp.LastPriceUpdate, &vp.IsPreferredVendor,
		); err != nil {
			return nil, fmt.Errorf("scan vendor offer: %w", err)
		}
		list = append(list, repository.VendorOffer{Vendor: &v, Product: vp})
	}
	return list, rows.Err()
}

func scanVendor(row pgx.Row) (*entity.Vendor, error) {
	var v entity.Vendor
	err := row.Scan(
		&v.ID, &v.Name, &v.Email, &v.Phone, &v.Address, &v.City, &v.State, &v.ZipCode, &v.ContactPerson, &v.VendorType,
		&v.Specialties, &v.Certifications, &v.PaymentTerms, &v.IsActive, &v.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func scanVendorProduct(row pgx.Row) (*entity.VendorProduct, error) {
	var vp entity.VendorProduct
	err := row.Scan(&vp.ID, &vp.VendorID, &vp.ProductID, &vp.Price, &vp.MinimumOrderQuantity, &vp.LeadTimeDays,
		&vp.LastPriceUpdate, &vp.IsPreferredVendor)
	if err != nil {
		return nil, err
	}
	return &vp, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
