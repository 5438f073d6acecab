package wire

import (
	"github.com/go-faster/jx"

	"github.com/xenking/pos-admin/internal/domain/customer"
)

// EncodeCustomer writes c as a JSON object.
func EncodeCustomer(e *jx.Encoder, c *customer.Customer) {
	e.Obj(func(e *jx.Encoder) {
		str(e, "id", c.ID)
		str(e, "name", c.Name)
		str(e, "email", c.Email)
		str(e, "phone", c.Phone)
		str(e, "address", c.Address)
		str(e, "city", c.City)
		str(e, "zipCode", c.ZipCode)
		integer(e, "totalOrders", c.TotalOrders)
		money(e, "totalSpent", c.TotalSpent)
		money(e, "creditBalance", c.CreditBalance)
		integer(e, "loyaltyPoints", c.LoyaltyPoints)
		optTimestamp(e, "lastOrderDate", c.LastOrderDate)
		timestamp(e, "dateAdded", c.CreatedAt)
		timestamp(e, "createdAt", c.CreatedAt)
		timestamp(e, "updatedAt", c.UpdatedAt)
	})
}

// EncodeCustomers writes cs as a JSON array.
func EncodeCustomers(e *jx.Encoder, cs []customer.Customer) {
	e.Arr(func(e *jx.Encoder) {
		for i := range cs {
			EncodeCustomer(e, &cs[i])
		}
	})
}

// DecodeCustomerInput reads the editable customer fields.
func DecodeCustomerInput(d *jx.Decoder, in *customer.Input) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "name":
			in.Name, err = String(d)
		case "email":
			in.Email, err = String(d)
		case "phone":
			in.Phone, err = String(d)
		case "address":
			in.Address, err = String(d)
		case "city":
			in.City, err = String(d)
		case "zipCode":
			in.ZipCode, err = String(d)
		case "creditBalance":
			in.CreditBalance, err = Decimal(d)
		default:
			err = d.Skip()
		}
		return field(key, err)
	})
}

// DecodeCustomerInputs reads a JSON array of customer inputs.
func DecodeCustomerInputs(d *jx.Decoder) ([]customer.Input, error) {
	var out []customer.Input
	err := d.Arr(func(d *jx.Decoder) error {
		var in customer.Input
		if err := DecodeCustomerInput(d, &in); err != nil {
			return err
		}
		out = append(out, in)
		return nil
	})
	return out, err
}

// DecodeCreditRequest reads a manual credit adjustment.
func DecodeCreditRequest(d *jx.Decoder, req *customer.CreditRequest) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "amount":
			req.Amount, err = Decimal(d)
		case "operation":
			var s string
			s, err = String(d)
			req.Operation = customer.CreditOperation(s)
		case "description":
			req.Description, err = String(d)
		default:
			err = d.Skip()
		}
		return field(key, err)
	})
}
