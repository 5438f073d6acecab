package product

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/xenking/pos-admin/internal/domain/validation"
)

// Service implements catalog management on top of a Repository.
type Service struct {
	repo Repository
	now  func() time.Time
}

// NewService creates a product Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// List returns the products matching f.
func (s *Service) List(ctx context.Context, f Filter) ([]Product, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, validation.Field("status", "must be one of active, inactive, low-stock")
	}
	products, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return products, nil
}

// Get returns a single product.
func (s *Service) Get(ctx context.Context, id string) (*Product, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get product")
	}
	return p, nil
}

// Create validates p, assigns its identity and stores it.
func (s *Service) Create(ctx context.Context, p *Product) error {
	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}

	now := s.now().UTC()
	p.ID = uuid.NewString()
	p.DateAdded = now
	p.CreatedAt = now
	p.UpdatedAt = now

	if err := s.repo.Create(ctx, p); err != nil {
		return errors.Wrap(err, "create product")
	}
	zctx.From(ctx).Info("Product created",
		zap.String("product_id", p.ID),
		zap.String("sku", p.SKU),
	)
	return nil
}

// Update replaces the mutable fields of an existing product.
func (s *Service) Update(ctx context.Context, p *Product) error {
	current, err := s.repo.GetByID(ctx, p.ID)
	if err != nil {
		return errors.Wrap(err, "get product")
	}

	p.Normalize()
	if err := p.Validate(); err != nil {
		return err
	}
	p.DateAdded = current.DateAdded
	p.CreatedAt = current.CreatedAt
	p.UpdatedAt = s.now().UTC()

	if err := s.repo.Update(ctx, p); err != nil {
		return errors.Wrap(err, "update product")
	}
	return nil
}

// Delete removes a product.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "delete product")
	}
	zctx.From(ctx).Info("Product deleted", zap.String("product_id", id))
	return nil
}
