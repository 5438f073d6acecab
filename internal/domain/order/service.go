package order

import (
	"context"
	"fmt"
	"time"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xenking/pos-admin/internal/domain/customer"
	"github.com/xenking/pos-admin/internal/domain/pricing"
	"github.com/xenking/pos-admin/internal/domain/product"
	"github.com/xenking/pos-admin/internal/domain/validation"
)

// Sentinel errors for order validation.
var (
	ErrEmptyItems       = validation.Message("items required")
	ErrCustomerRequired = validation.Message("customer required")
)

// Listing bounds.
const (
	DefaultListLimit = 50
	MaxListLimit     = 100
)

// ProductNotFoundError indicates a requested product does not exist.
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product %s not found", e.ProductID)
}

// ProductFinder loads catalog products in a single batch.
type ProductFinder interface {
	GetByIDs(ctx context.Context, ids []string) ([]product.Product, error)
}

// CustomerFinder loads a single customer.
type CustomerFinder interface {
	GetByID(ctx context.Context, id string) (*customer.Customer, error)
}

// LineRequest asks for quantity units of a product.
type LineRequest struct {
	ProductID string
	Quantity  int
}

// Request is the input for quoting or placing an order.
type Request struct {
	CustomerID string
	Items      []LineRequest
	Discount   pricing.Discount
	// TaxRate overrides the store default when set. Percent.
	TaxRate *decimal.Decimal
	// CreditUsed is the store credit to spend. With PaymentCreditBalance
	// and no explicit amount the whole grand total is requested.
	CreditUsed    *decimal.Decimal
	PaymentMethod PaymentMethod
	// CashReceived is the cash handed over. For cash payments without it
	// the exact amount due is assumed.
	CashReceived *decimal.Decimal
	Notes        string
	CreatedBy    string
}

// Quote is a priced cart that has not been persisted.
type Quote struct {
	Items           []Item
	Totals          pricing.Totals
	TaxRate         decimal.Decimal
	Discount        pricing.Discount
	Customer        *customer.Customer
	CreditAvailable decimal.Decimal
	Settlement      pricing.Settlement
}

// Service encapsulates order pricing and placement.
type Service struct {
	products       ProductFinder
	customers      CustomerFinder
	orders         Repository
	events         Publisher
	defaultTaxRate decimal.Decimal
	now            func() time.Time
}

// NewService creates an order Service. defaultTaxRate is a percentage applied
// when a request carries no rate.
func NewService(
	products ProductFinder,
	customers CustomerFinder,
	orders Repository,
	events Publisher,
	defaultTaxRate decimal.Decimal,
) *Service {
	return &Service{
		products:       products,
		customers:      customers,
		orders:         orders,
		events:         events,
		defaultTaxRate: defaultTaxRate,
		now:            time.Now,
	}
}

// Quote prices req without persisting anything. The customer is optional
// and only needed to preview store credit.
func (s *Service) Quote(ctx context.Context, req Request) (*Quote, error) {
	if req.PaymentMethod != "" && !req.PaymentMethod.Valid() {
		return nil, invalidPaymentMethod(req.PaymentMethod)
	}

	ids := make([]string, 0, len(req.Items))
	for i, line := range req.Items {
		if line.Quantity < 1 {
			return nil, validation.Field(fmt.Sprintf("items[%d].quantity", i), "must be a positive integer")
		}
		ids = append(ids, line.ProductID)
	}

	var (
		fetched []product.Product
		cust    *customer.Customer
	)
	g, gctx := errgroup.WithContext(ctx)
	if len(ids) > 0 {
		g.Go(func() error {
			var err error
			if fetched, err = s.products.GetByIDs(gctx, ids); err != nil {
				return errors.Wrap(err, "get products")
			}
			return nil
		})
	}
	if req.CustomerID != "" {
		g.Go(func() error {
			var err error
			if cust, err = s.customers.GetByID(gctx, req.CustomerID); err != nil {
				return errors.Wrap(err, "get customer")
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cart, err := buildCart(req.Items, fetched)
	if err != nil {
		return nil, err
	}

	rate := s.defaultTaxRate
	if req.TaxRate != nil {
		rate = *req.TaxRate
	}
	totals, err := pricing.ComputeTotals(cart, req.Discount, pricing.Tax{RatePercent: rate})
	if err != nil {
		return nil, err
	}
	totals = totals.Round()

	available := decimal.Zero
	if cust != nil {
		available = cust.CreditBalance
	}
	requested := decimal.Zero
	switch {
	case req.CreditUsed != nil:
		requested = *req.CreditUsed
	case req.PaymentMethod == PaymentCreditBalance:
		requested = totals.GrandTotal
	}
	if requested.IsPositive() && cust == nil {
		return nil, ErrCustomerRequired
	}
	settlement, err := pricing.ApplyCredit(totals.GrandTotal, available, requested)
	if err != nil {
		return nil, err
	}

	return &Quote{
		Items:           toItems(cart),
		Totals:          totals,
		TaxRate:         rate,
		Discount:        req.Discount,
		Customer:        cust,
		CreditAvailable: available,
		Settlement:      settlement,
	}, nil
}

// PlaceOrder prices req, settles payment and persists the order together
// with its stock, customer and credit side effects.
func (s *Service) PlaceOrder(ctx context.Context, req Request) (*Order, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyItems
	}
	if req.CustomerID == "" {
		return nil, ErrCustomerRequired
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = PaymentCash
	}
	if !req.PaymentMethod.Valid() {
		return nil, invalidPaymentMethod(req.PaymentMethod)
	}

	q, err := s.Quote(ctx, req)
	if err != nil {
		return nil, err
	}

	settlement, err := tender(req, q.Settlement)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	o := &Order{
		ID:             uuid.NewString(),
		CustomerID:     q.Customer.ID,
		CustomerName:   q.Customer.Name,
		Items:          q.Items,
		Subtotal:       q.Totals.Subtotal,
		Discount:       q.Totals.DiscountAmount,
		DiscountType:   req.Discount.Kind,
		DiscountValue:  req.Discount.Value,
		DiscountReason: req.Discount.Reason,
		TaxRate:        q.TaxRate,
		Tax:            q.Totals.TaxAmount,
		Total:          q.Totals.GrandTotal,
		CreditUsed:     settlement.CreditUsed.Round(2),
		AmountDue:      settlement.AmountDue.Round(2),
		CashReceived:   settlement.CashReceived.Round(2),
		ChangeGiven:    settlement.ChangeGiven.Round(2),
		PaymentMethod:  req.PaymentMethod,
		PaymentStatus:  PaymentCompleted,
		Status:         StatusCompleted,
		Notes:          req.Notes,
		CreatedBy:      req.CreatedBy,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if o.DiscountType == "" && o.DiscountValue.IsPositive() {
		o.DiscountType = pricing.DiscountPercentage
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	lg := zctx.From(ctx)
	lg.Info("Order placed",
		zap.String("order_id", o.ID),
		zap.String("receipt_number", o.ReceiptNumber),
		zap.String("customer_id", o.CustomerID),
		zap.String("total", o.Total.StringFixed(2)),
		zap.String("payment_method", string(o.PaymentMethod)),
	)
	if err := s.events.OrderPlaced(ctx, o); err != nil {
		lg.Warn("Publish order placed event", zap.String("order_id", o.ID), zap.Error(err))
	}
	return o, nil
}

// List returns a page of orders and the total number matching f.
func (s *Service) List(ctx context.Context, f Filter) ([]Order, int, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, 0, validation.Field("status", "must be one of draft, completed, cancelled, refunded")
	}
	switch {
	case f.Limit <= 0:
		f.Limit = DefaultListLimit
	case f.Limit > MaxListLimit:
		f.Limit = MaxListLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}

	orders, total, err := s.orders.List(ctx, f)
	if err != nil {
		return nil, 0, errors.Wrap(err, "list orders")
	}
	for i := range orders {
		s.checkTax(ctx, &orders[i])
	}
	return orders, total, nil
}

// Get returns a single order.
func (s *Service) Get(ctx context.Context, id string) (*Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get order")
	}
	s.checkTax(ctx, o)
	return o, nil
}

// Update changes the status fields or notes of an existing order.
func (s *Service) Update(ctx context.Context, id string, u Update) (*Order, error) {
	if u.Status != nil && !u.Status.Valid() {
		return nil, validation.Field("status", "must be one of draft, completed, cancelled, refunded")
	}
	if u.PaymentStatus != nil && !u.PaymentStatus.Valid() {
		return nil, validation.Field("paymentStatus", "must be one of pending, completed, failed, refunded")
	}

	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get order")
	}
	if u.Status != nil {
		o.Status = *u.Status
	}
	if u.PaymentStatus != nil {
		o.PaymentStatus = *u.PaymentStatus
	}
	if u.Notes != nil {
		o.Notes = *u.Notes
	}
	o.UpdatedAt = s.now().UTC()

	if err := s.orders.Update(ctx, o); err != nil {
		return nil, errors.Wrap(err, "update order")
	}
	zctx.From(ctx).Info("Order updated",
		zap.String("order_id", o.ID),
		zap.String("status", string(o.Status)),
		zap.String("payment_status", string(o.PaymentStatus)),
	)
	return o, nil
}

func (s *Service) checkTax(ctx context.Context, o *Order) {
	if o.TaxConsistent() {
		return
	}
	zctx.From(ctx).Warn("Order tax does not match discounted amount",
		zap.String("order_id", o.ID),
		zap.String("receipt_number", o.ReceiptNumber),
		zap.String("tax_rate", o.TaxRate.String()),
		zap.String("tax", o.Tax.StringFixed(2)),
	)
}

// buildCart assembles line items in request order. Repeated products merge
// into one line and the merged quantity is checked against stock.
func buildCart(lines []LineRequest, fetched []product.Product) ([]pricing.LineItem, error) {
	byID := make(map[string]*product.Product, len(fetched))
	for i := range fetched {
		byID[fetched[i].ID] = &fetched[i]
	}

	var cart []pricing.LineItem
	for i, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok {
			return nil, &ProductNotFoundError{ProductID: line.ProductID}
		}
		if p.Status == product.StatusInactive {
			return nil, validation.Field(fmt.Sprintf("items[%d].productId", i), "product is not available for sale")
		}

		var err error
		cart, err = pricing.AddOrIncrementItem(cart, p.Snapshot(), line.Quantity)
		if err != nil {
			return nil, err
		}
	}
	return cart, nil
}

func toItems(cart []pricing.LineItem) []Item {
	items := make([]Item, len(cart))
	for i, li := range cart {
		items[i] = Item{
			ProductID:   li.Product.ID,
			ProductName: li.Product.Name,
			ProductSKU:  li.Product.SKU,
			Quantity:    li.Quantity,
			Price:       li.Product.Price,
			Cost:        li.Product.Cost,
			Total:       li.Subtotal().Round(2),
		}
	}
	return items
}

func tender(req Request, s pricing.Settlement) (pricing.Settlement, error) {
	if req.CashReceived != nil && req.CashReceived.IsNegative() {
		return s, validation.Field("cashReceived", "must not be negative")
	}
	switch req.PaymentMethod {
	case PaymentCash:
		cash := s.AmountDue
		if req.CashReceived != nil {
			cash = *req.CashReceived
		}
		return s.Tender(cash)
	case PaymentSplit:
		// The part of the amount due not covered by cash goes on a card.
		if req.CashReceived == nil {
			return s, nil
		}
		if req.CashReceived.GreaterThanOrEqual(s.AmountDue) {
			return s.Tender(*req.CashReceived)
		}
		s.CashReceived = *req.CashReceived
	case PaymentCreditBalance:
		if s.AmountDue.IsPositive() {
			return s, validation.Field("paymentMethod", "store credit does not cover the total, use split")
		}
	}
	return s, nil
}

func invalidPaymentMethod(m PaymentMethod) error {
	return validation.Field("paymentMethod", fmt.Sprintf("unsupported payment method %q", m))
}
