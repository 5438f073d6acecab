package repository

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/pos-admin/internal/domain/vendor"
)

const vendorColumns = `id, name, company, email, phone, address, city, zip_code, country,
	website, contact_person, payment_terms, status, rating, total_orders, total_purchases,
	last_order_date, notes, tax_id, currency, lead_time, date_added`

const (
	listVendorsSQL = `SELECT ` + vendorColumns + `
		FROM vendors
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR company ILIKE '%' || $1 || '%'
		       OR email ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR status = $2)
		ORDER BY company, id`

	getVendorByIDSQL = `SELECT ` + vendorColumns + ` FROM vendors WHERE id = $1`

	insertVendorSQL = `INSERT INTO vendors (` + vendorColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
		        $17, $18, $19, $20, $21, $22)`

	updateVendorSQL = `UPDATE vendors SET
		name = $2, company = $3, email = $4, phone = $5, address = $6, city = $7,
		zip_code = $8, country = $9, website = $10, contact_person = $11,
		payment_terms = $12, status = $13, rating = $14, notes = $15, tax_id = $16,
		currency = $17, lead_time = $18
		WHERE id = $1`

	deleteVendorSQL = `DELETE FROM vendors WHERE id = $1`
)

var _ vendor.Repository = (*VendorRepository)(nil)

// VendorRepository implements vendor.Repository backed by PostgreSQL.
type VendorRepository struct {
	pool *pgxpool.Pool
}

// NewVendorRepository returns a VendorRepository that uses the given pool.
func NewVendorRepository(pool *pgxpool.Pool) *VendorRepository {
	return &VendorRepository{pool: pool}
}

func (r *VendorRepository) List(ctx context.Context, f vendor.Filter) ([]vendor.Vendor, error) {
	rows, err := r.pool.Query(ctx, listVendorsSQL, f.Search, string(f.Status))
	if err != nil {
		return nil, errors.Wrap(err, "query vendors")
	}
	return pgx.CollectRows(rows, scanVendor)
}

func (r *VendorRepository) GetByID(ctx context.Context, id string) (*vendor.Vendor, error) {
	rows, err := r.pool.Query(ctx, getVendorByIDSQL, id)
	if err != nil {
		return nil, errors.Wrapf(err, "query vendor %q", id)
	}
	v, err := pgx.CollectExactlyOneRow(rows, scanVendor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, vendor.ErrNotFound
		}
		return nil, errors.Wrapf(err, "scan vendor %q", id)
	}
	return &v, nil
}

func (r *VendorRepository) Create(ctx context.Context, v *vendor.Vendor) error {
	if _, err := r.pool.Exec(ctx, insertVendorSQL,
		v.ID, v.Name, v.Company, v.Email, v.Phone, v.Address, v.City, v.ZipCode, v.Country,
		v.Website, v.ContactPerson, v.PaymentTerms, string(v.Status), v.Rating, v.TotalOrders, v.TotalPurchases,
		v.LastOrderDate, v.Notes, v.TaxID, v.Currency, v.LeadTime, v.DateAdded,
	); err != nil {
		return errors.Wrap(err, "insert vendor")
	}
	return nil
}

func (r *VendorRepository) Update(ctx context.Context, v *vendor.Vendor) error {
	tag, err := r.pool.Exec(ctx, updateVendorSQL,
		v.ID, v.Name, v.Company, v.Email, v.Phone, v.Address, v.City,
		v.ZipCode, v.Country, v.Website, v.ContactPerson,
		v.PaymentTerms, string(v.Status), v.Rating, v.Notes, v.TaxID,
		v.Currency, v.LeadTime,
	)
	if err != nil {
		return errors.Wrap(err, "update vendor")
	}
	if tag.RowsAffected() == 0 {
		return vendor.ErrNotFound
	}
	return nil
}

func (r *VendorRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, deleteVendorSQL, id)
	if err != nil {
		return errors.Wrap(err, "delete vendor")
	}
	if tag.RowsAffected() == 0 {
		return vendor.ErrNotFound
	}
	return nil
}

func scanVendor(row pgx.CollectableRow) (vendor.Vendor, error) {
	var (
		v      vendor.Vendor
		status string
	)
	err := row.Scan(
		&v.ID, &v.Name, &v.Company, &v.Email, &v.Phone, &v.Address, &v.City, &v.ZipCode, &v.Country,
		&v.Website, &v.ContactPerson, &v.PaymentTerms, &status, &v.Rating, &v.TotalOrders, &v.TotalPurchases,
		&v.LastOrderDate, &v.Notes, &v.TaxID, &v.Currency, &v.LeadTime, &v.DateAdded,
	)
	v.Status = vendor.Status(status)
	return v, err
}
