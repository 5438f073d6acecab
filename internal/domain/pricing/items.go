package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// Product is the catalog snapshot a line item refers to. Price and Stock are
// captured when the product is selected and are not refreshed afterwards.
type Product struct {
	ID    string
	Name  string
	SKU   string
	Price decimal.Decimal
	Cost  decimal.Decimal
	Stock int
}

// LineItem pairs a product with a quantity.
type LineItem struct {
	Product  Product
	Quantity int
}

// Subtotal returns unit price times quantity.
func (li LineItem) Subtotal() decimal.Decimal {
	return li.Product.Price.Mul(decimal.NewFromInt(int64(li.Quantity)))
}

// AddOrIncrementItem adds quantity units of product. An existing line for the
// same product is incremented in place of appending a new one. On error the
// input slice is returned unchanged.
func AddOrIncrementItem(items []LineItem, product Product, quantity int) ([]LineItem, error) {
	if quantity < 1 {
		return items, invalid("quantity", "must be a positive integer")
	}

	idx := indexOf(items, product.ID)
	existing := 0
	if idx >= 0 {
		existing = items[idx].Quantity
	}
	// Compare against the remaining stock so the sum cannot overflow.
	if quantity > product.Stock-existing {
		requested := quantity
		if quantity <= math.MaxInt-existing {
			requested += existing
		}
		return items, &InsufficientStockError{
			ProductID: product.ID,
			Requested: requested,
			Available: product.Stock,
		}
	}
	total := existing + quantity

	out := clone(items)
	if idx >= 0 {
		out[idx].Quantity = total
		return out, nil
	}
	return append(out, LineItem{Product: product, Quantity: quantity}), nil
}

// SetItemQuantity replaces the quantity of the line for productID. A quantity
// of zero or less removes the line. Unknown products are ignored.
func SetItemQuantity(items []LineItem, productID string, quantity int) ([]LineItem, error) {
	if quantity <= 0 {
		return RemoveItem(items, productID), nil
	}

	idx := indexOf(items, productID)
	if idx < 0 {
		return items, nil
	}
	if stock := items[idx].Product.Stock; quantity > stock {
		return items, &InsufficientStockError{
			ProductID: productID,
			Requested: quantity,
			Available: stock,
		}
	}

	out := clone(items)
	out[idx].Quantity = quantity
	return out, nil
}

// RemoveItem drops the line for productID, if any.
func RemoveItem(items []LineItem, productID string) []LineItem {
	out := make([]LineItem, 0, len(items))
	for _, item := range items {
		if item.Product.ID != productID {
			out = append(out, item)
		}
	}
	return out
}

func indexOf(items []LineItem, productID string) int {
	for i, item := range items {
		if item.Product.ID == productID {
			return i
		}
	}
	return -1
}

func clone(items []LineItem) []LineItem {
	out := make([]LineItem, len(items), len(items)+1)
	copy(out, items)
	return out
}
