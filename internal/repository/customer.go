package repository

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/pos-admin/internal/domain/customer"
)

const customerColumns = `id, name, email, phone, address, city, zip_code, total_orders,
	total_spent, last_order_date, loyalty_points, credit_balance, created_at, updated_at`

const (
	listCustomersSQL = `SELECT ` + customerColumns + `
		FROM customers
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%' OR email ILIKE '%' || $1 || '%'
		       OR phone LIKE '%' || $1 || '%')
		ORDER BY created_at DESC, id`

	getCustomerByIDSQL = `SELECT ` + customerColumns + ` FROM customers WHERE id = $1`

	insertCustomerSQL = `INSERT INTO customers (` + customerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`

	updateCustomerSQL = `UPDATE customers SET
		name = $2, email = $3, phone = $4, address = $5, city = $6, zip_code = $7,
		credit_balance = $8, updated_at = $9
		WHERE id = $1`

	deleteCustomerSQL = `DELETE FROM customers WHERE id = $1`

	adjustCreditSQL = `UPDATE customers
		SET credit_balance = credit_balance + $2, updated_at = $3
		WHERE id = $1 AND credit_balance + $2 >= 0
		RETURNING ` + customerColumns

	customerExistsSQL = `SELECT EXISTS (SELECT 1 FROM customers WHERE id = $1)`

	insertCreditTransactionSQL = `INSERT INTO credit_transactions
		(id, customer_id, order_id, amount, operation, description, created_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7)`
)

const customerEmailKey = "customers_email_key"

var _ customer.Repository = (*CustomerRepository)(nil)

// CustomerRepository implements customer.Repository backed by PostgreSQL.
type CustomerRepository struct {
	pool *pgxpool.Pool
}

// NewCustomerRepository returns a CustomerRepository that uses the given pool.
func NewCustomerRepository(pool *pgxpool.Pool) *CustomerRepository {
	return &CustomerRepository{pool: pool}
}

// List returns customers matching f, newest first.
func (r *CustomerRepository) List(ctx context.Context, f customer.Filter) ([]customer.Customer, error) {
	rows, err := r.pool.Query(ctx, listCustomersSQL, f.Search)
	if err != nil {
		return nil, errors.Wrap(err, "query customers")
	}
	return pgx.CollectRows(rows, scanCustomer)
}

// GetByID returns a single customer.
func (r *CustomerRepository) GetByID(ctx context.Context, id string) (*customer.Customer, error) {
	rows, err := r.pool.Query(ctx, getCustomerByIDSQL, id)
	if err != nil {
		return nil, errors.Wrapf(err, "query customer %q", id)
	}
	c, err := pgx.CollectExactlyOneRow(rows, scanCustomer)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, customer.ErrNotFound
		}
		return nil, errors.Wrapf(err, "scan customer %q", id)
	}
	return &c, nil
}

// Create inserts c. A taken email yields customer.ErrDuplicateEmail.
func (r *CustomerRepository) Create(ctx context.Context, c *customer.Customer) error {
	_, err := r.pool.Exec(ctx, insertCustomerSQL,
		c.ID, c.Name, c.Email, c.Phone, c.Address, c.City, c.ZipCode, c.TotalOrders,
		c.TotalSpent, c.LastOrderDate, c.LoyaltyPoints, c.CreditBalance, c.CreatedAt, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, customerEmailKey) {
			return customer.ErrDuplicateEmail
		}
		return errors.Wrap(err, "insert customer")
	}
	return nil
}

// Update overwrites the editable columns of c.
func (r *CustomerRepository) Update(ctx context.Context, c *customer.Customer) error {
	tag, err := r.pool.Exec(ctx, updateCustomerSQL,
		c.ID, c.Name, c.Email, c.Phone, c.Address, c.City, c.ZipCode,
		c.CreditBalance, c.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, customerEmailKey) {
			return customer.ErrDuplicateEmail
		}
		return errors.Wrap(err, "update customer")
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrNotFound
	}
	return nil
}

// Delete removes the customer and their credit ledger.
func (r *CustomerRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, deleteCustomerSQL, id)
	if err != nil {
		return errors.Wrap(err, "delete customer")
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrNotFound
	}
	return nil
}

// AdjustCredit applies tx.Amount to the balance and records tx in one
// transaction.
func (r *CustomerRepository) AdjustCredit(ctx context.Context, tx customer.CreditTransaction) (*customer.Customer, error) {
	var updated customer.Customer
	err := pgx.BeginFunc(ctx, r.pool, func(dbtx pgx.Tx) error {
		rows, err := dbtx.Query(ctx, adjustCreditSQL, tx.CustomerID, tx.Amount, tx.CreatedAt)
		if err != nil {
			return errors.Wrap(err, "update balance")
		}
		updated, err = pgx.CollectExactlyOneRow(rows, scanCustomer)
		if errors.Is(err, pgx.ErrNoRows) {
			return creditFailure(ctx, dbtx, tx.CustomerID)
		}
		if err != nil {
			return errors.Wrap(err, "scan customer")
		}
		return insertCreditTransaction(ctx, dbtx, tx)
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

// creditFailure tells a missing customer apart from a balance that would go
// negative.
func creditFailure(ctx context.Context, q pgx.Tx, customerID string) error {
	var exists bool
	if err := q.QueryRow(ctx, customerExistsSQL, customerID).Scan(&exists); err != nil {
		return errors.Wrap(err, "check customer")
	}
	if !exists {
		return customer.ErrNotFound
	}
	return customer.ErrInsufficientCredit
}

func insertCreditTransaction(ctx context.Context, q pgx.Tx, tx customer.CreditTransaction) error {
	if _, err := q.Exec(ctx, insertCreditTransactionSQL,
		tx.ID, tx.CustomerID, tx.OrderID, tx.Amount, string(tx.Operation), tx.Description, tx.CreatedAt,
	); err != nil {
		return errors.Wrap(err, "insert credit transaction")
	}
	return nil
}

func scanCustomer(row pgx.CollectableRow) (customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(
		&c.ID, &c.Name, &c.Email, &c.Phone, &c.Address, &c.City, &c.ZipCode, &c.TotalOrders,
		&c.TotalSpent, &c.LastOrderDate, &c.LoyaltyPoints, &c.CreditBalance, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}
