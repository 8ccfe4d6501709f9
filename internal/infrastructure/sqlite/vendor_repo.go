package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/iamprathosh/BB-Inventory-APP/internal/domain"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/entity"
	"github.com/iamprathosh/BB-Inventory-APP/internal/domain/repository"
	"github.com/jmoiron/sqlx"
	"github.com/shopspring/decimal"
)

var _ repository.VendorRepository = (*VendorRepo)(nil)

type vendorRow struct {
	ID                 string `db:"id"`
	Name               string `db:"name"`
	Email              string `db:"email"`
	Phone              string `db:"phone"`
	Address            string `db:"address"`
	City               string `db:"city"`
	State              string `db:"state"`
	ZipCode            string `db:"zip_code"`
	ContactPerson      string `db:"contact_person"`
	VendorType         string `db:"vendor_type"`
	SpecialtiesJSON    string `db:"specialties_json"`
	CertificationsJSON string `db:"certifications_json"`
	PaymentTerms       string `db:"payment_terms"`
	IsActive           bool   `db:"is_active"`
	CreatedAt          string `db:"created_at"`
}

func (r vendorRow) toEntity() *entity.Vendor {
	return &entity.Vendor{
		ID:             r.ID,
		Name:           r.Name,
		Email:          r.Email,
		Phone:          r.Phone,
		Address:        r.Address,
		City:           r.City,
		State:          r.State,
		ZipCode:        r.ZipCode,
		ContactPerson:  r.ContactPerson,
		VendorType:     r.VendorType,
		Specialties:    decodeList(r.SpecialtiesJSON),
		Certifications: decodeList(r.CertificationsJSON),
		PaymentTerms:   r.PaymentTerms,
		IsActive:       r.IsActive,
		CreatedAt:      parseTime(r.CreatedAt),
	}
}

type vendorProductRow struct {
	ID                   string          `db:"id"`
	VendorID             string          `db:"vendor_id"`
	ProductID            string          `db:"product_id"`
	Price                decimal.Decimal `db:"price"`
	MinimumOrderQuantity *int64          `db:"minimum_order_quantity"`
	LeadTimeDays         *int            `db:"lead_time_days"`
	LastPriceUpdate      *string         `db:"last_price_update"`
	IsPreferredVendor    bool            `db:"is_preferred_vendor"`
}

func (r vendorProductRow) toEntity() entity.VendorProduct {
	return entity.VendorProduct{
		ID:                   r.ID,
		VendorID:             r.VendorID,
		ProductID:            r.ProductID,
		Price:                r.Price,
		MinimumOrderQuantity: r.MinimumOrderQuantity,
		LeadTimeDays:         r.LeadTimeDays,
		LastPriceUpdate:      parseTimePtr(r.LastPriceUpdate),
		IsPreferredVendor:    r.IsPreferredVendor,
	}
}

// offerRow une vendors y vendor_products; las columnas de vendor_products llevan prefijo vp_.
type offerRow struct {
	vendorRow
	VPID                 string          `db:"vp_id"`
	VPPrice              decimal.Decimal `db:"vp_price"`
	MinimumOrderQuantity *int64          `db:"minimum_order_quantity"`
	LeadTimeDays         *int            `db:"lead_time_days"`
	LastPriceUpdate      *string         `db:"last_price_update"`
	IsPreferredVendor    bool            `db:"is_preferred_vendor"`
}

const (
	vendorColumns = `id, name, email, phone, address, city, state, zip_code, contact_person, vendor_type,
	specialties_json, certifications_json, payment_terms, is_active, created_at`
	vendorProductColumns = `id, vendor_id, product_id, price, minimum_order_quantity, lead_time_days,
	last_price_update, is_preferred_vendor`
)

// VendorRepo proveedores y listas de precio sobre SQLite. Las listas de texto se guardan como JSON.
type VendorRepo struct {
	q sqlx.ExtContext
}

// NewVendorRepository construye el adaptador.
func NewVendorRepository(q sqlx.ExtContext) *VendorRepo {
	return &VendorRepo{q: q}
}

func (r *VendorRepo) Create(ctx context.Context, v *entity.Vendor) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO vendors (`+vendorColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		v.ID, v.Name, v.Email, v.Phone, v.Address, v.City, v.State, v.ZipCode, v.ContactPerson, v.VendorType,
		encodeList(v.Specialties), encodeList(v.Certifications), v.PaymentTerms, v.IsActive, fmtTime(v.CreatedAt),
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
	var row vendorRow
	if err := sqlx.GetContext(ctx, r.q, &row, `SELECT `+vendorColumns+` FROM vendors WHERE id = ?`, id); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get vendor: %w", err)
	}
	return row.toEntity(), nil
}

func (r *VendorRepo) Update(ctx context.Context, v *entity.Vendor) error {
	res, err := r.q.ExecContext(ctx, `UPDATE vendors SET name = ?, email = ?, phone = ?, address = ?, city = ?,
			state = ?, zip_code = ?, contact_person = ?, vendor_type = ?, specialties_json = ?,
			certifications_json = ?, payment_terms = ?, is_active = ?
		WHERE id = ?`,
		v.Name, v.Email, v.Phone, v.Address, v.City, v.State, v.ZipCode, v.ContactPerson, v.VendorType,
		encodeList(v.Specialties), encodeList(v.Certifications), v.PaymentTerms, v.IsActive, v.ID,
	)
	if err != nil {
		return fmt.Errorf("update vendor: %w", err)
	}
	if rowsAffected(res) == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *VendorRepo) List(ctx context.Context, activeOnly bool) ([]*entity.Vendor, error) {
	query := `SELECT ` + vendorColumns + ` FROM vendors`
	if activeOnly {
		query += ` WHERE is_active = 1`
	}
	var rows []vendorRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query+` ORDER BY name`); err != nil {
		return nil, fmt.Errorf("list vendors: %w", err)
	}
	list := make([]*entity.Vendor, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

func (r *VendorRepo) UpsertProduct(ctx context.Context, vp *entity.VendorProduct) error {
	_, err := r.q.ExecContext(ctx, `INSERT INTO vendor_products (`+vendorProductColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(vendor_id, product_id) DO UPDATE SET
			price = excluded.price,
			minimum_order_quantity = excluded.minimum_order_quantity,
			lead_time_days = excluded.lead_time_days,
			last_price_update = excluded.last_price_update,
			is_preferred_vendor = excluded.is_preferred_vendor`,
		vp.ID, vp.VendorID, vp.ProductID, vp.Price, vp.MinimumOrderQuantity, vp.LeadTimeDays,
		fmtTimePtr(vp.LastPriceUpdate), vp.IsPreferredVendor,
	)
	if err != nil {
		return fmt.Errorf("upsert vendor product: %w", err)
	}
	return nil
}

// ListProducts ordena por precio; CAST porque el precio se guarda como TEXT.
func (r *VendorRepo) ListProducts(ctx context.Context, vendorID string) ([]*entity.VendorProduct, error) {
	var rows []vendorProductRow
	err := sqlx.SelectContext(ctx, r.q, &rows,
		`SELECT `+vendorProductColumns+` FROM vendor_products WHERE vendor_id = ? ORDER BY CAST(price AS REAL)`, vendorID)
	if err != nil {
		return nil, fmt.Errorf("list vendor products: %w", err)
	}
	list := make([]*entity.VendorProduct, 0, len(rows))
	for _, row := range rows {
		vp := row.toEntity()
		list = append(list, &vp)
	}
	return list, nil
}

func (r *VendorRepo) ListOffersForProduct(ctx context.Context, productID string) ([]repository.VendorOffer, error) {
	query := `
		SELECT v.id, v.name, v.email, v.phone, v.address, v.city, v.state, v.zip_code, v.contact_person,
			v.vendor_type, v.specialties_json, v.certifications_json, v.payment_terms, v.is_active, v.created_at,
			vp.id AS vp_id, vp.price AS vp_price, vp.minimum_order_quantity, vp.lead_time_days,
			vp.last_price_update, vp.is_preferred_vendor
		FROM vendor_products vp
		JOIN vendors v ON v.id = vp.vendor_id
		WHERE vp.product_id = ? AND v.is_active = 1
		ORDER BY vp.is_preferred_vendor DESC, CAST(vp.price AS REAL) ASC, v.name`
	var rows []offerRow
	if err := sqlx.SelectContext(ctx, r.q, &rows, query, productID); err != nil {
		return nil, fmt.Errorf("list vendor offers: %w", err)
	}
	list := make([]repository.VendorOffer, 0, len(rows))
	for _, row := range rows {
		list = append(list, repository.VendorOffer{
			Vendor: row.vendorRow.toEntity(),
			Product: entity.VendorProduct{
				ID:                   row.VPID,
				VendorID:             row.vendorRow.ID,
				ProductID:            productID,
				Price:                row.VPPrice,
				MinimumOrderQuantity: row.MinimumOrderQuantity,
				LeadTimeDays:         row.LeadTimeDays,
				LastPriceUpdate:      parseTimePtr(row.LastPriceUpdate),
				IsPreferredVendor:    row.IsPreferredVendor,
			},
		})
	}
	return list, nil
}

func encodeList(items []string) string {
	if len(items) == 0 {
		return "[]"
	}
	b, err := json.Marshal(items)
	if err != nil {
		return "[]"
	}
	return string(b)
}

func decodeList(s string) []string {
	out := []string{}
	if s == "" {
		return out
	}
	_ = json.Unmarshal([]byte(s), &out)
	return out
}
