package product

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
	// ErrNotFound is returned when a requested product does not exist.
	ErrNotFound = errors.New("product not found")
	// ErrDuplicateSKU is returned when another product already uses the SKU.
	ErrDuplicateSKU = errors.New("product sku already exists")
)

// DefaultMinStockLevel is used when a product is created without one.
const DefaultMinStockLevel = 10

// Status is the catalog status of a product.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusLowStock Status = "low-stock"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusActive, StatusInactive, StatusLowStock:
		return true
	}
	return false
}

// Product represents a catalog item available for sale.
type Product struct {
	ID            string
	Name          string
	Description   string
	Price         decimal.Decimal
	Cost          decimal.Decimal
	Stock         int
	MinStockLevel int
	Category      string
	SKU           string
	Supplier      string
	Status        Status
	Image         string
	DateAdded     time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Normalize trims text fields, fills defaults and derives the low-stock
// status from the stock level. Inactive products keep their status.
func (p *Product) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.Description = strings.TrimSpace(p.Description)
	p.Category = strings.TrimSpace(p.Category)
	p.SKU = strings.TrimSpace(p.SKU)
	p.Supplier = strings.TrimSpace(p.Supplier)
	p.Image = strings.TrimSpace(p.Image)

	if p.MinStockLevel <= 0 {
		p.MinStockLevel = DefaultMinStockLevel
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	if p.Status.Valid() {
		p.Status = p.StockStatus()
	}
}

// StockStatus returns the status implied by the current stock level.
func (p *Product) StockStatus() Status {
	if p.Status == StatusInactive {
		return StatusInactive
	}
	if p.Stock < p.MinStockLevel {
		return StatusLowStock
	}
	return StatusActive
}

// Validate checks the fields required to store the product.
func (p *Product) Validate() error {
	switch {
	case p.Name == "":
		return validation.Field("name", "is required")
	case p.Category == "":
		return validation.Field("category", "is required")
	case p.SKU == "":
		return validation.Field("sku", "is required")
	case p.Price.IsNegative():
		return validation.Field("price", "must not be negative")
	case p.Cost.IsNegative():
		return validation.Field("cost", "must not be negative")
	case p.Stock < 0:
		return validation.Field("stock", "must not be negative")
	case p.Status != "" && !p.Status.Valid():
		return validation.Field("status", "must be one of active, inactive, low-stock")
	}
	return nil
}

// Snapshot captures the fields an order line needs at selection time.
func (p *Product) Snapshot() pricing.Product {
	return pricing.Product{
		ID:    p.ID,
		Name:  p.Name,
		SKU:   p.SKU,
		Price: p.Price,
		Cost:  p.Cost,
		Stock: p.Stock,
	}
}

// Filter narrows product listings. Empty fields match everything.
type Filter struct {
	// Search matches name or SKU, case-insensitively.
	Search   string
	Category string
	Status   Status
}

// Repository defines persistence operations for the product catalog.
type Repository interface {
	List(ctx context.Context, f Filter) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	GetByIDs(ctx context.Context, ids []string) ([]Product, error)
	Create(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id string) error
}
