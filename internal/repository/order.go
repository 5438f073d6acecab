package repository

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/xenking/pos-admin/internal/domain/customer"
	"github.com/xenking/pos-admin/internal/domain/order"
	"github.com/xenking/pos-admin/internal/domain/pricing"
)

const orderColumns = `id, receipt_number, COALESCE(customer_id, ''), customer_name, subtotal,
	discount, discount_type, discount_value, discount_reason, tax_rate, tax, total,
	credit_used, amount_due, cash_received, change_given, payment_method,
	payment_status, status, notes, created_by, created_at, updated_at`

const (
	nextReceiptSQL = `SELECT nextval('receipt_number_seq')`

	insertOrderSQL = `INSERT INTO orders (id, receipt_number, customer_id, customer_name, subtotal,
		discount, discount_type, discount_value, discount_reason, tax_rate, tax, total,
		credit_used, amount_due, cash_received, change_given, payment_method,
		payment_status, status, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14,
		        $15, $16, $17, $18, $19, $20, $21, $22, $23)`

	// The status expression keeps inactive products inactive and otherwise
	// re-derives low-stock from the remaining quantity.
	decrementStockSQL = `UPDATE products SET
		stock = stock - $2,
		status = CASE
			WHEN status = 'inactive' THEN status
			WHEN stock - $2 < min_stock_level THEN 'low-stock'
			ELSE 'active'
		END,
		updated_at = $3
		WHERE id = $1 AND stock >= $2`

	currentStockSQL = `SELECT stock FROM products WHERE id = $1`

	recordPurchaseSQL = `UPDATE customers SET
		total_orders = total_orders + 1,
		total_spent = total_spent + $2,
		last_order_date = $3,
		loyalty_points = loyalty_points + $4,
		credit_balance = credit_balance - $5,
		updated_at = $3
		WHERE id = $1 AND credit_balance >= $5`

	listOrdersSQL = `SELECT ` + orderColumns + `, COUNT(*) OVER ()
		FROM orders
		WHERE ($1 = '' OR status = $1)
		  AND ($2 = '' OR customer_id = $2)
		ORDER BY created_at DESC, id
		LIMIT $3 OFFSET $4`

	getOrderByIDSQL = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	listOrderItemsSQL = `SELECT order_id, product_id, product_name, product_sku, quantity, price, cost, total
		FROM order_items WHERE order_id = ANY($1)
		ORDER BY order_id, position`

	updateOrderSQL = `UPDATE orders SET status = $2, payment_status = $3, notes = $4, updated_at = $5
		WHERE id = $1`
)

var orderItemColumns = []string{
	"order_id", "position", "product_id", "product_name", "product_sku",
	"quantity", "price", "cost", "total",
}

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create assigns a receipt number and persists o with all of its side
// effects in a single transaction. A concurrent sale that drained stock
// surfaces as *pricing.InsufficientStockError.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	return pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		var seq int64
		if err := tx.QueryRow(ctx, nextReceiptSQL).Scan(&seq); err != nil {
			return errors.Wrap(err, "next receipt number")
		}
		o.ReceiptNumber = order.FormatReceiptNumber(o.CreatedAt, seq)

		if _, err := tx.Exec(ctx, insertOrderSQL,
			o.ID, o.ReceiptNumber, o.CustomerID, o.CustomerName, o.Subtotal,
			o.Discount, string(o.DiscountType), o.DiscountValue, o.DiscountReason, o.TaxRate, o.Tax, o.Total,
			o.CreditUsed, o.AmountDue, o.CashReceived, o.ChangeGiven, string(o.PaymentMethod),
			string(o.PaymentStatus), string(o.Status), o.Notes, o.CreatedBy, o.CreatedAt, o.UpdatedAt,
		); err != nil {
			return errors.Wrap(err, "insert order")
		}

		if _, err := tx.CopyFrom(ctx, pgx.Identifier{"order_items"}, orderItemColumns,
			pgx.CopyFromSlice(len(o.Items), func(i int) ([]any, error) {
				it := o.Items[i]
				return []any{
					o.ID, i, it.ProductID, it.ProductName, it.ProductSKU,
					it.Quantity, it.Price, it.Cost, it.Total,
				}, nil
			}),
		); err != nil {
			return errors.Wrap(err, "copy order items")
		}

		for _, it := range o.Items {
			if err := decrementStock(ctx, tx, it, o); err != nil {
				return err
			}
		}

		if o.CustomerID == "" {
			return nil
		}
		return recordPurchase(ctx, tx, o)
	})
}

func decrementStock(ctx context.Context, tx pgx.Tx, it order.Item, o *order.Order) error {
	tag, err := tx.Exec(ctx, decrementStockSQL, it.ProductID, it.Quantity, o.CreatedAt)
	if err != nil {
		return errors.Wrapf(err, "decrement stock of %q", it.ProductID)
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	var available int
	if err := tx.QueryRow(ctx, currentStockSQL, it.ProductID).Scan(&available); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &order.ProductNotFoundError{ProductID: it.ProductID}
		}
		return errors.Wrapf(err, "read stock of %q", it.ProductID)
	}
	return &pricing.InsufficientStockError{
		ProductID: it.ProductID,
		Requested: it.Quantity,
		Available: available,
	}
}

func recordPurchase(ctx context.Context, tx pgx.Tx, o *order.Order) error {
	tag, err := tx.Exec(ctx, recordPurchaseSQL,
		o.CustomerID, o.Total, o.CreatedAt, o.LoyaltyPoints(), o.CreditUsed,
	)
	if err != nil {
		return errors.Wrap(err, "update customer statistics")
	}
	if tag.RowsAffected() == 0 {
		return creditFailure(ctx, tx, o.CustomerID)
	}

	if !o.CreditUsed.IsPositive() {
		return nil
	}
	return insertCreditTransaction(ctx, tx, customer.CreditTransaction{
		ID:          uuid.NewString(),
		CustomerID:  o.CustomerID,
		OrderID:     o.ID,
		Amount:      o.CreditUsed.Neg(),
		Operation:   customer.CreditDeduct,
		Description: o.CreditTransactionDescription(),
		CreatedAt:   o.CreatedAt,
	})
}

// List returns a page of orders with their items and the total number of
// orders matching f.
func (r *OrderRepository) List(ctx context.Context, f order.Filter) ([]order.Order, int, error) {
	rows, err := r.pool.Query(ctx, listOrdersSQL, string(f.Status), f.CustomerID, f.Limit, f.Offset)
	if err != nil {
		return nil, 0, errors.Wrap(err, "query orders")
	}

	var total int
	orders, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (order.Order, error) {
		return scanOrder(row, &total)
	})
	if err != nil {
		return nil, 0, errors.Wrap(err, "scan orders")
	}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

// GetByID returns a single order with its items.
func (r *OrderRepository) GetByID(ctx context.Context, id string) (*order.Order, error) {
	rows, err := r.pool.Query(ctx, getOrderByIDSQL, id)
	if err != nil {
		return nil, errors.Wrapf(err, "query order %q", id)
	}
	o, err := pgx.CollectExactlyOneRow(rows, func(row pgx.CollectableRow) (order.Order, error) {
		return scanOrder(row)
	})
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, errors.Wrapf(err, "scan order %q", id)
	}

	orders := []order.Order{o}
	if err := r.attachItems(ctx, orders); err != nil {
		return nil, err
	}
	return &orders[0], nil
}

// Update writes the status fields and notes of o.
func (r *OrderRepository) Update(ctx context.Context, o *order.Order) error {
	tag, err := r.pool.Exec(ctx, updateOrderSQL,
		o.ID, string(o.Status), string(o.PaymentStatus), o.Notes, o.UpdatedAt,
	)
	if err != nil {
		return errors.Wrap(err, "update order")
	}
	if tag.RowsAffected() == 0 {
		return order.ErrNotFound
	}
	return nil
}

func (r *OrderRepository) attachItems(ctx context.Context, orders []order.Order) error {
	if len(orders) == 0 {
		return nil
	}
	ids := make([]string, len(orders))
	byID := make(map[string]*order.Order, len(orders))
	for i := range orders {
		ids[i] = orders[i].ID
		byID[orders[i].ID] = &orders[i]
	}

	rows, err := r.pool.Query(ctx, listOrderItemsSQL, ids)
	if err != nil {
		return errors.Wrap(err, "query order items")
	}
	defer rows.Close()

	for rows.Next() {
		var (
			orderID string
			it      order.Item
		)
		if err := rows.Scan(
			&orderID, &it.ProductID, &it.ProductName, &it.ProductSKU,
			&it.Quantity, &it.Price, &it.Cost, &it.Total,
		); err != nil {
			return errors.Wrap(err, "scan order item")
		}
		if o, ok := byID[orderID]; ok {
			o.Items = append(o.Items, it)
		}
	}
	if err := rows.Err(); err != nil {
		return errors.Wrap(err, "iterate order items")
	}
	return nil
}

// scanOrder reads the order columns and, when total is given, the trailing
// window count.
func scanOrder(row pgx.CollectableRow, total ...*int) (order.Order, error) {
	var (
		o                                       order.Order
		discountType, method, payStatus, status string
	)
	dest := []any{
		&o.ID, &o.ReceiptNumber, &o.CustomerID, &o.CustomerName, &o.Subtotal,
		&o.Discount, &discountType, &o.DiscountValue, &o.DiscountReason, &o.TaxRate, &o.Tax, &o.Total,
		&o.CreditUsed, &o.AmountDue, &o.CashReceived, &o.ChangeGiven, &method,
		&payStatus, &status, &o.Notes, &o.CreatedBy, &o.CreatedAt, &o.UpdatedAt,
	}
	for _, t := range total {
		dest = append(dest, t)
	}
	err := row.Scan(dest...)

	o.DiscountType = pricing.DiscountKind(discountType)
	o.PaymentMethod = order.PaymentMethod(method)
	o.PaymentStatus = order.PaymentStatus(payStatus)
	o.Status = order.Status(status)
	return o, err
}
