package customer

import (
	"context"
	"strings"
	"time"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"

	"github.com/xenking/pos-admin/internal/domain/pricing"
	"github.com/xenking/pos-admin/internal/domain/validation"
)

var (
	// ErrNotFound is returned when a requested customer does not exist.
	ErrNotFound = errors.New("customer not found")
	// ErrDuplicateEmail is returned when another customer uses the email.
	ErrDuplicateEmail = errors.New("customer email already exists")
	// ErrInsufficientCredit is returned when a deduction exceeds the balance.
	ErrInsufficientCredit = pricing.ErrInsufficientCredit
)

// Customer is a store customer with purchase statistics and store credit.
type Customer struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	Address       string
	City          string
	ZipCode       string
	TotalOrders   int
	TotalSpent    decimal.Decimal
	LastOrderDate *time.Time
	LoyaltyPoints int
	CreditBalance decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Input holds the user-editable customer fields.
type Input struct {
	Name          string
	Email         string
	Phone         string
	Address       string
	City          string
	ZipCode       string
	CreditBalance decimal.Decimal
}

// Normalize trims every field and lower-cases the email.
func (in *Input) Normalize() {
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.ToLower(strings.TrimSpace(in.Email))
	in.Phone = strings.TrimSpace(in.Phone)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.ZipCode = strings.TrimSpace(in.ZipCode)
}

// Validate checks required fields. Call Normalize first.
func (in *Input) Validate() error {
	if in.Name == "" || in.Email == "" || in.Phone == "" {
		return validation.Message("Name, email, and phone are required fields")
	}
	if !strings.Contains(in.Email, "@") {
		return validation.Field("email", "must be a valid email address")
	}
	if in.CreditBalance.IsNegative() {
		return validation.Field("creditBalance", "must not be negative")
	}
	return nil
}

// Apply copies the input onto c.
func (in *Input) Apply(c *Customer) {
	c.Name = in.Name
	c.Email = in.Email
	c.Phone = in.Phone
	c.Address = in.Address
	c.City = in.City
	c.ZipCode = in.ZipCode
	c.CreditBalance = in.CreditBalance
}

// CreditOperation is the direction of a manual credit adjustment.
type CreditOperation string

const (
	CreditAdd    CreditOperation = "add"
	CreditDeduct CreditOperation = "deduct"
)

// Valid reports whether op is a known operation.
func (op CreditOperation) Valid() bool {
	return op == CreditAdd || op == CreditDeduct
}

// Signed returns amount with the sign the operation applies to the balance.
func (op CreditOperation) Signed(amount decimal.Decimal) decimal.Decimal {
	if op == CreditDeduct {
		return amount.Neg()
	}
	return amount
}

// CreditTransaction is one entry of the store-credit ledger. Amount is
// positive for additions and negative for deductions.
type CreditTransaction struct {
	ID          string
	CustomerID  string
	OrderID     string
	Amount      decimal.Decimal
	Operation   CreditOperation
	Description string
	CreatedAt   time.Time
}

// Filter narrows customer listings.
type Filter struct {
	// Search matches name or email case-insensitively, or a phone substring.
	Search string
}

// Matches reports whether c satisfies f.
func (f Filter) Matches(c *Customer) bool {
	if f.Search == "" {
		return true
	}
	q := strings.ToLower(f.Search)
	return strings.Contains(strings.ToLower(c.Name), q) ||
		strings.Contains(strings.ToLower(c.Email), q) ||
		strings.Contains(c.Phone, f.Search)
}

// Repository defines persistence operations for customers.
type Repository interface {
	List(ctx context.Context, f Filter) ([]Customer, error)
	GetByID(ctx context.Context, id string) (*Customer, error)
	Create(ctx context.Context, c *Customer) error
	Update(ctx context.Context, c *Customer) error
	Delete(ctx context.Context, id string) error
	// AdjustCredit changes the balance and records tx atomically. A deduction
	// that would make the balance negative fails with ErrInsufficientCredit.
	AdjustCredit(ctx context.Context, tx CreditTransaction) (*Customer, error)
}
