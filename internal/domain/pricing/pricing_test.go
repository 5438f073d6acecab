package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func item(id, price string, qty int) LineItem {
	return LineItem{
		Product:  Product{ID: id, Name: id, Price: d(price), Stock: 1000},
		Quantity: qty,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, d(want).Equal(got), "%s: expected %s, got %s", field, want, got)
}

func TestComputeTotals(t *testing.T) {
	tests := []struct {
		name         string
		items        []LineItem
		discount     Discount
		tax          Tax
		wantSubtotal string
		wantDiscount string
		wantAfter    string
		wantTax      string
		wantGrand    string
	}{
		{
			name:         "no discount no tax",
			items:        []LineItem{item("p1", "79.99", 2), item("p2", "24.99", 1)},
			wantSubtotal: "184.97",
			wantDiscount: "0",
			wantAfter:    "184.97",
			wantTax:      "0",
			wantGrand:    "184.97",
		},
		{
			name:         "percentage discount then tax",
			items:        []LineItem{item("p1", "100.00", 1)},
			discount:     Discount{Kind: DiscountPercentage, Value: d("10")},
			tax:          Tax{RatePercent: d("8")},
			wantSubtotal: "100",
			wantDiscount: "10",
			wantAfter:    "90",
			wantTax:      "7.2",
			wantGrand:    "97.2",
		},
		{
			name:         "fixed discount clamped to subtotal",
			items:        []LineItem{item("p1", "50.00", 1)},
			discount:     Discount{Kind: DiscountFixed, Value: d("75.00")},
			wantSubtotal: "50",
			wantDiscount: "50",
			wantAfter:    "0",
			wantTax:      "0",
			wantGrand:    "0",
		},
		{
			name:         "fixed discount below subtotal with tax",
			items:        []LineItem{item("p1", "12.99", 3)},
			discount:     Discount{Kind: DiscountFixed, Value: d("5")},
			tax:          Tax{RatePercent: d("10")},
			wantSubtotal: "38.97",
			wantDiscount: "5",
			wantAfter:    "33.97",
			wantTax:      "3.397",
			wantGrand:    "37.367",
		},
		{
			name:         "empty items yield zero totals",
			tax:          Tax{RatePercent: d("8")},
			discount:     Discount{Kind: DiscountFixed, Value: d("10")},
			wantSubtotal: "0",
			wantDiscount: "0",
			wantAfter:    "0",
			wantTax:      "0",
			wantGrand:    "0",
		},
		{
			name:         "zero discount value defaults to no discount",
			items:        []LineItem{item("p1", "10", 1)},
			wantSubtotal: "10",
			wantDiscount: "0",
			wantAfter:    "10",
			wantTax:      "0",
			wantGrand:    "10",
		},
		{
			name:         "full percentage discount",
			items:        []LineItem{item("p1", "25", 4)},
			discount:     Discount{Kind: DiscountPercentage, Value: d("100")},
			tax:          Tax{RatePercent: d("8")},
			wantSubtotal: "100",
			wantDiscount: "100",
			wantAfter:    "0",
			wantTax:      "0",
			wantGrand:    "0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ComputeTotals(tt.items, tt.discount, tt.tax)
			require.NoError(t, err)

			assertDecimal(t, tt.wantSubtotal, got.Subtotal, "subtotal")
			assertDecimal(t, tt.wantDiscount, got.DiscountAmount, "discount")
			assertDecimal(t, tt.wantAfter, got.AmountAfterDiscount, "amount after discount")
			assertDecimal(t, tt.wantTax, got.TaxAmount, "tax")
			assertDecimal(t, tt.wantGrand, got.GrandTotal, "grand total")
		})
	}
}

func TestComputeTotals_TaxOnDiscountedAmount(t *testing.T) {
	items := []LineItem{item("p1", "200", 1)}
	rate := d("8")

	got, err := ComputeTotals(items, Discount{Kind: DiscountPercentage, Value: d("25")}, Tax{RatePercent: rate})
	require.NoError(t, err)

	want := got.AmountAfterDiscount.Mul(rate).Div(hundred)
	assert.True(t, want.Equal(got.TaxAmount), "tax must be computed on the discounted amount")

	onSubtotal := got.Subtotal.Mul(rate).Div(hundred)
	assert.False(t, onSubtotal.Equal(got.TaxAmount), "tax must not be computed on the raw subtotal")
	assertDecimal(t, "12", got.TaxAmount, "tax")
	assertDecimal(t, "162", got.GrandTotal, "grand total")
}

func TestComputeTotals_NoFloatDrift(t *testing.T) {
	items := make([]LineItem, 0, 10)
	for i := range 10 {
		items = append(items, item(string(rune('a'+i)), "0.10", 1))
	}

	got, err := ComputeTotals(items, Discount{}, Tax{})
	require.NoError(t, err)
	assertDecimal(t, "1.00", got.GrandTotal, "grand total")
}

func TestComputeTotals_Idempotent(t *testing.T) {
	items := []LineItem{item("p1", "33.33", 3), item("p2", "0.01", 7)}
	discount := Discount{Kind: DiscountPercentage, Value: d("12.5")}
	tax := Tax{RatePercent: d("7.25")}

	first, err := ComputeTotals(items, discount, tax)
	require.NoError(t, err)
	second, err := ComputeTotals(items, discount, tax)
	require.NoError(t, err)

	assert.True(t, first.Subtotal.Equal(second.Subtotal))
	assert.True(t, first.DiscountAmount.Equal(second.DiscountAmount))
	assert.True(t, first.TaxAmount.Equal(second.TaxAmount))
	assert.True(t, first.GrandTotal.Equal(second.GrandTotal))
}

func TestComputeTotals_Invariants(t *testing.T) {
	discounts := []Discount{
		{},
		{Kind: DiscountPercentage, Value: d("0")},
		{Kind: DiscountPercentage, Value: d("37.5")},
		{Kind: DiscountPercentage, Value: d("100")},
		{Kind: DiscountFixed, Value: d("0")},
		{Kind: DiscountFixed, Value: d("19.99")},
		{Kind: DiscountFixed, Value: d("100000")},
	}
	rates := []string{"0", "5", "8", "21.5"}
	carts := [][]LineItem{
		nil,
		{item("p1", "0", 3)},
		{item("p1", "79.99", 2), item("p2", "24.99", 1)},
		{item("p1", "125.00", 1), item("p2", "12.99", 10), item("p3", "0.01", 99)},
	}

	for _, cart := range carts {
		for _, disc := range discounts {
			for _, rate := range rates {
				got, err := ComputeTotals(cart, disc, Tax{RatePercent: d(rate)})
				require.NoError(t, err)

				assert.False(t, got.GrandTotal.IsNegative())
				assert.True(t, got.GrandTotal.GreaterThanOrEqual(got.AmountAfterDiscount))
				assert.True(t, got.DiscountAmount.LessThanOrEqual(got.Subtotal))
				assert.False(t, got.AmountAfterDiscount.IsNegative())
			}
		}
	}
}

func TestComputeTotals_InvalidInput(t *testing.T) {
	tests := []struct {
		name      string
		items     []LineItem
		discount  Discount
		tax       Tax
		wantField string
	}{
		{
			name:      "negative quantity",
			items:     []LineItem{item("p1", "10", -1)},
			wantField: "items[0].quantity",
		},
		{
			name:      "zero quantity",
			items:     []LineItem{item("p1", "10", 1), item("p2", "10", 0)},
			wantField: "items[1].quantity",
		},
		{
			name:      "negative tax rate",
			items:     []LineItem{item("p1", "10", 1)},
			tax:       Tax{RatePercent: d("-1")},
			wantField: "taxRate",
		},
		{
			name:      "percentage above 100",
			items:     []LineItem{item("p1", "10", 1)},
			discount:  Discount{Kind: DiscountPercentage, Value: d("100.01")},
			wantField: "discount.value",
		},
		{
			name:      "negative percentage",
			items:     []LineItem{item("p1", "10", 1)},
			discount:  Discount{Kind: DiscountPercentage, Value: d("-5")},
			wantField: "discount.value",
		},
		{
			name:      "negative fixed amount",
			items:     []LineItem{item("p1", "10", 1)},
			discount:  Discount{Kind: DiscountFixed, Value: d("-0.01")},
			wantField: "discount.value",
		},
		{
			name:      "unknown discount kind",
			items:     []LineItem{item("p1", "10", 1)},
			discount:  Discount{Kind: "bogo", Value: d("1")},
			wantField: "discount.kind",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ComputeTotals(tt.items, tt.discount, tt.tax)
			require.ErrorIs(t, err, ErrInvalidInput)

			var inErr *InvalidInputError
			require.ErrorAs(t, err, &inErr)
			assert.Equal(t, tt.wantField, inErr.Field)
		})
	}
}

func TestTotals_Round(t *testing.T) {
	got, err := ComputeTotals(
		[]LineItem{item("p1", "12.99", 3)},
		Discount{Kind: DiscountFixed, Value: d("5")},
		Tax{RatePercent: d("10")},
	)
	require.NoError(t, err)

	r := got.Round()
	assertDecimal(t, "38.97", r.Subtotal, "subtotal")
	assertDecimal(t, "3.40", r.TaxAmount, "tax")
	assertDecimal(t, "37.37", r.GrandTotal, "grand total")
}
