package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/pos-admin/internal/domain/pricing"
)

// ErrNotFound is returned when a requested order does not exist.
var ErrNotFound = errors.New("order not found")

// PaymentMethod is how the customer settled the order.
type PaymentMethod string

const (
	PaymentCash          PaymentMethod = "cash"
	PaymentCreditCard    PaymentMethod = "credit_card"
	PaymentDebitCard     PaymentMethod = "debit_card"
	PaymentCreditBalance PaymentMethod = "credit_balance"
	PaymentSplit         PaymentMethod = "split"
)

// Valid reports whether m is a known payment method.
func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCreditCard, PaymentDebitCard, PaymentCreditBalance, PaymentSplit:
		return true
	}
	return false
}

// PaymentStatus tracks settlement of the order.
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "pending"
	PaymentCompleted PaymentStatus = "completed"
	PaymentFailed    PaymentStatus = "failed"
	PaymentRefunded  PaymentStatus = "refunded"
)

// Valid reports whether s is a known payment status.
func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Status is the lifecycle state of an order.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusRefunded  Status = "refunded"
)

// Valid reports whether s is a known order status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusCompleted, StatusCancelled, StatusRefunded:
		return true
	}
	return false
}

// Item is an order line frozen at sale time.
type Item struct {
	ProductID   string
	ProductName string
	ProductSKU  string
	Quantity    int
	Price       decimal.Decimal
	Cost        decimal.Decimal
	Total       decimal.Decimal
}

// Order is a completed sale with its monetary breakdown. All amounts are
// rounded to cents; TaxRate is a percentage.
type Order struct {
	ID             string
	ReceiptNumber  string
	CustomerID     string
	CustomerName   string
	Items          []Item
	Subtotal       decimal.Decimal
	Discount       decimal.Decimal
	DiscountType   pricing.DiscountKind
	DiscountValue  decimal.Decimal
	DiscountReason string
	TaxRate        decimal.Decimal
	Tax            decimal.Decimal
	Total          decimal.Decimal
	CreditUsed     decimal.Decimal
	AmountDue      decimal.Decimal
	CashReceived   decimal.Decimal
	ChangeGiven    decimal.Decimal
	PaymentMethod  PaymentMethod
	PaymentStatus  PaymentStatus
	Status         Status
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

var (
	hundred = decimal.NewFromInt(100)
	cent    = decimal.New(1, -2)
)

// TaxConsistent reports whether the stored tax was computed on the discounted
// amount at the stored percentage rate. Rows written before the rate was
// stored as a percentage, or with tax on the raw subtotal, report false.
func (o *Order) TaxConsistent() bool {
	expected := o.Subtotal.Sub(o.Discount).Mul(o.TaxRate).Div(hundred).Round(2)
	return o.Tax.Sub(expected).Abs().LessThanOrEqual(cent)
}

// LoyaltyPoints returns the points earned by the order: one per whole unit
// of the grand total.
func (o *Order) LoyaltyPoints() int {
	return int(o.Total.Floor().IntPart())
}

// FormatReceiptNumber renders a receipt number such as RCP-20260301-0042 from
// the sale date and a store-wide sequence value.
func FormatReceiptNumber(t time.Time, seq int64) string {
	return fmt.Sprintf("RCP-%s-%04d", t.UTC().Format("20060102"), seq)
}

// CreditTransactionDescription is the ledger text recorded when store credit
// pays for an order.
func (o *Order) CreditTransactionDescription() string {
	return "Credit used for order " + o.ReceiptNumber
}

// Filter narrows order listings.
type Filter struct {
	Status     Status
	CustomerID string
	Limit      int
	Offset     int
}

// Update holds the mutable fields of an existing order. Nil fields are left
// unchanged.
type Update struct {
	Status        *Status
	PaymentStatus *PaymentStatus
	Notes         *string
}

// Repository defines persistence operations for orders.
type Repository interface {
	// Create stores o with its items and applies its side effects in one
	// transaction: stock decrement, customer statistics and credit ledger.
	// ReceiptNumber and CreatedAt are assigned by the store.
	Create(ctx context.Context, o *Order) error
	List(ctx context.Context, f Filter) ([]Order, int, error)
	GetByID(ctx context.Context, id string) (*Order, error)
	Update(ctx context.Context, o *Order) error
}

// Publisher announces placed orders to downstream consumers.
type Publisher interface {
	OrderPlaced(ctx context.Context, o *Order) error
}
