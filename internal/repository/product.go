package repository

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/pos-admin/internal/domain/product"
)

const productColumns = `id, name, description, price, cost, stock, min_stock_level,
	category, sku, supplier, status, image, date_added, created_at, updated_at`

const (
	listProductsSQL = `SELECT ` + productColumns + `
		FROM products
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR sku ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR category = $2)
		  AND ($3 = '' OR status = $3)
		ORDER BY created_at DESC, id`

	getProductByIDSQL = `SELECT ` + productColumns + ` FROM products WHERE id = $1`

	getProductsByIDsSQL = `SELECT ` + productColumns + ` FROM products WHERE id = ANY($1)`

	insertProductSQL = `INSERT INTO products (` + productColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	updateProductSQL = `UPDATE products SET
		name = $2, description = $3, price = $4, cost = $5, stock = $6,
		min_stock_level = $7, category = $8, sku = $9, supplier = $10,
		status = $11, image = $12, updated_at = $13
		WHERE id = $1`

	deleteProductSQL = `DELETE FROM products WHERE id = $1`
)

const productSKUKey = "products_sku_key"

var _ product.Repository = (*ProductRepository)(nil)

// ProductRepository implements product.Repository backed by PostgreSQL.
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository returns a ProductRepository that uses the given pool.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// List returns products matching f, newest first.
func (r *ProductRepository) List(ctx context.Context, f product.Filter) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx, listProductsSQL, f.Search, f.Category, string(f.Status))
	if err != nil {
		return nil, errors.Wrap(err, "query products")
	}
	return pgx.CollectRows(rows, scanProduct)
}

// GetByID returns a single product by its identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*product.Product, error) {
	rows, err := r.pool.Query(ctx, getProductByIDSQL, id)
	if err != nil {
		return nil, errors.Wrapf(err, "query product %q", id)
	}

	p, err := pgx.CollectExactlyOneRow(rows, scanProduct)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, product.ErrNotFound
		}
		return nil, errors.Wrapf(err, "scan product %q", id)
	}
	return &p, nil
}

// GetByIDs returns products matching any of the given IDs.
func (r *ProductRepository) GetByIDs(ctx context.Context, ids []string) ([]product.Product, error) {
	rows, err := r.pool.Query(ctx, getProductsByIDsSQL, ids)
	if err != nil {
		return nil, errors.Wrap(err, "query products by ids")
	}
	return pgx.CollectRows(rows, scanProduct)
}

// Create inserts p. A taken SKU yields product.ErrDuplicateSKU.
func (r *ProductRepository) Create(ctx context.Context, p *product.Product) error {
	_, err := r.pool.Exec(ctx, insertProductSQL,
		p.ID, p.Name, p.Description, p.Price, p.Cost, p.Stock, p.MinStockLevel,
		p.Category, p.SKU, p.Supplier, string(p.Status), p.Image,
		p.DateAdded, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, productSKUKey) {
			return product.ErrDuplicateSKU
		}
		return errors.Wrap(err, "insert product")
	}
	return nil
}

// Update overwrites the mutable columns of p.
func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	tag, err := r.pool.Exec(ctx, updateProductSQL,
		p.ID, p.Name, p.Description, p.Price, p.Cost, p.Stock,
		p.MinStockLevel, p.Category, p.SKU, p.Supplier,
		string(p.Status), p.Image, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, productSKUKey) {
			return product.ErrDuplicateSKU
		}
		return errors.Wrap(err, "update product")
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

// Delete removes the product with the given id.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, deleteProductSQL, id)
	if err != nil {
		return errors.Wrap(err, "delete product")
	}
	if tag.RowsAffected() == 0 {
		return product.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.CollectableRow) (product.Product, error) {
	var (
		p      product.Product
		status string
	)
	err := row.Scan(
		&p.ID, &p.Name, &p.Description, &p.Price, &p.Cost, &p.Stock, &p.MinStockLevel,
		&p.Category, &p.SKU, &p.Supplier, &status, &p.Image,
		&p.DateAdded, &p.CreatedAt, &p.UpdatedAt,
	)
	p.Status = product.Status(status)
	return p, err
}
