package wire

import (
	"github.com/go-faster/jx"

	"github.com/xenking/pos-admin/internal/domain/order"
	"github.com/xenking/pos-admin/internal/domain/pricing"
)

// EncodeOrder writes o as a JSON object.
func EncodeOrder(e *jx.Encoder, o *order.Order) {
	e.Obj(func(e *jx.Encoder) {
		str(e, "id", o.ID)
		str(e, "receiptNumber", o.ReceiptNumber)
		str(e, "customerId", o.CustomerID)
		str(e, "customerName", o.CustomerName)
		e.Field("items", func(e *jx.Encoder) {
			encodeItems(e, o.Items)
		})
		money(e, "subtotal", o.Subtotal)
		money(e, "discount", o.Discount)
		str(e, "discountType", string(o.DiscountType))
		number(e, "discountValue", o.DiscountValue)
		str(e, "discountReason", o.DiscountReason)
		number(e, "taxRate", o.TaxRate)
		money(e, "tax", o.Tax)
		money(e, "total", o.Total)
		money(e, "creditUsed", o.CreditUsed)
		money(e, "amountDue", o.AmountDue)
		money(e, "cashReceived", o.CashReceived)
		money(e, "changeGiven", o.ChangeGiven)
		str(e, "paymentMethod", string(o.PaymentMethod))
		str(e, "paymentStatus", string(o.PaymentStatus))
		str(e, "status", string(o.Status))
		str(e, "notes", o.Notes)
		str(e, "createdBy", o.CreatedBy)
		timestamp(e, "createdAt", o.CreatedAt)
		timestamp(e, "updatedAt", o.UpdatedAt)
	})
}

// EncodeOrders writes os as a JSON array.
func EncodeOrders(e *jx.Encoder, orders []order.Order) {
	e.Arr(func(e *jx.Encoder) {
		for i := range orders {
			EncodeOrder(e, &orders[i])
		}
	})
}

func encodeItems(e *jx.Encoder, items []order.Item) {
	e.Arr(func(e *jx.Encoder) {
		for _, it := range items {
			e.Obj(func(e *jx.Encoder) {
				str(e, "productId", it.ProductID)
				str(e, "productName", it.ProductName)
				str(e, "productSku", it.ProductSKU)
				integer(e, "quantity", it.Quantity)
				money(e, "price", it.Price)
				money(e, "total", it.Total)
			})
		}
	})
}

// EncodeQuote writes a priced cart.
func EncodeQuote(e *jx.Encoder, q *order.Quote) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("items", func(e *jx.Encoder) {
			encodeItems(e, q.Items)
		})
		money(e, "subtotal", q.Totals.Subtotal)
		money(e, "discountAmount", q.Totals.DiscountAmount)
		money(e, "amountAfterDiscount", q.Totals.AmountAfterDiscount)
		number(e, "taxRate", q.TaxRate)
		money(e, "taxAmount", q.Totals.TaxAmount)
		money(e, "grandTotal", q.Totals.GrandTotal)
		money(e, "creditAvailable", q.CreditAvailable)
		money(e, "creditUsed", q.Settlement.CreditUsed)
		money(e, "amountDue", q.Settlement.AmountDue)
	})
}

// DecodeOrderRequest reads a quote or order placement request. The discount
// may be given as a nested object or as flat discountType, discountValue and
// discountReason fields.
func DecodeOrderRequest(d *jx.Decoder, req *order.Request) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "customerId":
			req.CustomerID, err = String(d)
		case "items":
			req.Items, err = decodeLines(d)
		case "discount":
			err = decodeDiscount(d, &req.Discount)
		case "discountType":
			req.Discount.Kind, err = discountKind(d)
		case "discountValue":
			req.Discount.Value, err = Decimal(d)
		case "discountReason":
			req.Discount.Reason, err = String(d)
		case "taxRate":
			req.TaxRate, err = optDecimal(d)
		case "creditUsed":
			req.CreditUsed, err = optDecimal(d)
		case "paymentMethod":
			var s string
			s, err = String(d)
			req.PaymentMethod = order.PaymentMethod(s)
		case "cashReceived":
			req.CashReceived, err = optDecimal(d)
		case "notes":
			req.Notes, err = String(d)
		default:
			err = d.Skip()
		}
		return field(key, err)
	})
}

func decodeLines(d *jx.Decoder) ([]order.LineRequest, error) {
	var lines []order.LineRequest
	err := d.Arr(func(d *jx.Decoder) error {
		var line order.LineRequest
		if err := d.Obj(func(d *jx.Decoder, key string) error {
			var err error
			switch key {
			case "productId":
				line.ProductID, err = String(d)
			case "quantity":
				line.Quantity, err = Int(d)
			default:
				err = d.Skip()
			}
			return field(key, err)
		}); err != nil {
			return err
		}
		lines = append(lines, line)
		return nil
	})
	return lines, err
}

// discountKind reads a discount kind, accepting "fixedAmount" for fixed.
func discountKind(d *jx.Decoder) (pricing.DiscountKind, error) {
	s, err := String(d)
	if s == "fixedAmount" {
		return pricing.DiscountFixed, err
	}
	return pricing.DiscountKind(s), err
}

func decodeDiscount(d *jx.Decoder, disc *pricing.Discount) error {
	if d.Next() == jx.Null {
		return d.Null()
	}
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "type", "kind":
			disc.Kind, err = discountKind(d)
		case "value":
			disc.Value, err = Decimal(d)
		case "reason":
			disc.Reason, err = String(d)
		default:
			err = d.Skip()
		}
		return field(key, err)
	})
}

// DecodeOrderUpdate reads a partial order update.
func DecodeOrderUpdate(d *jx.Decoder, u *order.Update) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "status":
			var s string
			if s, err = String(d); err == nil {
				st := order.Status(s)
				u.Status = &st
			}
		case "paymentStatus":
			var s string
			if s, err = String(d); err == nil {
				ps := order.PaymentStatus(s)
				u.PaymentStatus = &ps
			}
		case "notes":
			var s string
			if s, err = String(d); err == nil {
				u.Notes = &s
			}
		default:
			err = d.Skip()
		}
		return field(key, err)
	})
}
