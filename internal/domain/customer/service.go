package customer

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/xenking/pos-admin/internal/domain/validation"
)

// CreditRequest is a manual store-credit adjustment.
type CreditRequest struct {
	Operation   CreditOperation
	Amount      decimal.Decimal
	Description string
}

// Service implements customer management and store credit.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a customer Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns customers matching f, newest first.
func (s *Service) List(ctx context.Context, f Filter) ([]Customer, error) {
	customers, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, errors.Wrap(err, "list customers")
	}
	return customers, nil
}

// Get returns a single customer.
func (s *Service) Get(ctx context.Context, id string) (*Customer, error) {
	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get customer")
	}
	return c, nil
}

// Create validates in and stores a new customer with zeroed statistics.
func (s *Service) Create(ctx context.Context, in Input) (*Customer, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	c := &Customer{
		ID:         uuid.NewString(),
		TotalSpent: decimal.Zero,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	in.Apply(c)

	if err := s.repo.Create(ctx, c); err != nil {
		return nil, errors.Wrap(err, "create customer")
	}
	zctx.From(ctx).Info("Customer created", zap.String("customer_id", c.ID))
	return c, nil
}

// Update replaces the editable fields of an existing customer. Purchase
// statistics are left untouched.
func (s *Service) Update(ctx context.Context, id string, in Input) (*Customer, error) {
	in.Normalize()
	if err := in.Validate(); err != nil {
		return nil, err
	}

	c, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get customer")
	}
	in.Apply(c)
	c.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, c); err != nil {
		return nil, errors.Wrap(err, "update customer")
	}
	return c, nil
}

// Delete removes a customer.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "delete customer")
	}
	return nil
}

// AdjustCredit adds or deducts store credit and records the ledger entry.
func (s *Service) AdjustCredit(ctx context.Context, id string, req CreditRequest) (*Customer, error) {
	if !req.Amount.IsPositive() {
		return nil, validation.Message("Invalid amount provided")
	}
	if !req.Operation.Valid() {
		return nil, validation.Message(`Invalid operation. Use "add" or "deduct"`)
	}

	desc := req.Description
	if desc == "" {
		verb := "added"
		if req.Operation == CreditDeduct {
			verb = "deducted"
		}
		desc = fmt.Sprintf("Credit %s manually", verb)
	}

	c, err := s.repo.AdjustCredit(ctx, CreditTransaction{
		ID:          uuid.NewString(),
		CustomerID:  id,
		Amount:      req.Operation.Signed(req.Amount),
		Operation:   req.Operation,
		Description: desc,
		CreatedAt:   s.now().UTC(),
	})
	if err != nil {
		return nil, errors.Wrap(err, "adjust credit")
	}

	zctx.From(ctx).Info("Customer credit adjusted",
		zap.String("customer_id", id),
		zap.String("operation", string(req.Operation)),
		zap.String("amount", req.Amount.StringFixed(2)),
		zap.String("balance", c.CreditBalance.StringFixed(2)),
	)
	return c, nil
}
