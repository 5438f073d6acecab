// Package pricing converts line items plus discount and tax parameters into
// an order total breakdown.
//
// Evaluation order is fixed: subtotal, discount, amount after discount, tax
// on the discounted amount, grand total. Intermediate values are kept at full
// decimal precision; Totals.Round is applied only for display and persistence.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// DiscountKind enumerates the supported discount strategies.
type DiscountKind string

const (
	// DiscountPercentage takes Value percent off the subtotal.
	DiscountPercentage DiscountKind = "percentage"
	// DiscountFixed takes a fixed amount off, capped at the subtotal.
	DiscountFixed DiscountKind = "fixed"
)

// Valid reports whether k is a known discount kind.
func (k DiscountKind) Valid() bool {
	return k == DiscountPercentage || k == DiscountFixed
}

// Discount describes the discount requested for an order. The zero value
// means no discount.
type Discount struct {
	Kind   DiscountKind
	Value  decimal.Decimal
	Reason string
}

// Tax holds the tax rate in percent (8 means 8%). The zero value means no tax.
type Tax struct {
	RatePercent decimal.Decimal
}

// Totals is the monetary breakdown of an order.
type Totals struct {
	Subtotal            decimal.Decimal
	DiscountAmount      decimal.Decimal
	AmountAfterDiscount decimal.Decimal
	TaxAmount           decimal.Decimal
	GrandTotal          decimal.Decimal
}

// Round returns a copy of t with every amount rounded to cents.
func (t Totals) Round() Totals {
	return Totals{
		Subtotal:            t.Subtotal.Round(2),
		DiscountAmount:      t.DiscountAmount.Round(2),
		AmountAfterDiscount: t.AmountAfterDiscount.Round(2),
		TaxAmount:           t.TaxAmount.Round(2),
		GrandTotal:          t.GrandTotal.Round(2),
	}
}

// ComputeTotals validates its inputs and computes the order totals.
func ComputeTotals(items []LineItem, discount Discount, tax Tax) (Totals, error) {
	if err := validate(items, discount, tax); err != nil {
		return Totals{}, err
	}

	subtotal := decimal.Zero
	for _, item := range items {
		subtotal = subtotal.Add(item.Subtotal())
	}

	var discountAmount decimal.Decimal
	switch kindOrDefault(discount.Kind) {
	case DiscountPercentage:
		discountAmount = subtotal.Mul(discount.Value).Div(hundred)
	case DiscountFixed:
		discountAmount = decimal.Min(discount.Value, subtotal)
	}

	afterDiscount := subtotal.Sub(discountAmount)
	taxAmount := afterDiscount.Mul(tax.RatePercent).Div(hundred)

	return Totals{
		Subtotal:            subtotal,
		DiscountAmount:      discountAmount,
		AmountAfterDiscount: afterDiscount,
		TaxAmount:           taxAmount,
		GrandTotal:          afterDiscount.Add(taxAmount),
	}, nil
}

func validate(items []LineItem, discount Discount, tax Tax) error {
	for i, item := range items {
		if item.Quantity < 1 {
			return invalid(fmt.Sprintf("items[%d].quantity", i), "must be a positive integer")
		}
		if item.Product.Price.IsNegative() {
			return invalid(fmt.Sprintf("items[%d].price", i), "must not be negative")
		}
	}
	if tax.RatePercent.IsNegative() {
		return invalid("taxRate", "must not be negative")
	}

	switch kindOrDefault(discount.Kind) {
	case DiscountPercentage:
		if discount.Value.IsNegative() || discount.Value.GreaterThan(hundred) {
			return invalid("discount.value", "percentage must be between 0 and 100")
		}
	case DiscountFixed:
		if discount.Value.IsNegative() {
			return invalid("discount.value", "fixed amount must not be negative")
		}
	default:
		return invalid("discount.kind", fmt.Sprintf("unsupported discount kind %q", discount.Kind))
	}
	return nil
}

// kindOrDefault treats an unset kind as a percentage discount so that the
// zero Discount is "0% off".
func kindOrDefault(k DiscountKind) DiscountKind {
	if k == "" {
		return DiscountPercentage
	}
	return k
}
