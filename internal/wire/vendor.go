package wire

import (
	"github.com/go-faster/jx"

	"github.com/xenking/pos-admin/internal/domain/vendor"
)

// EncodeVendor writes v as a JSON object.
func EncodeVendor(e *jx.Encoder, v *vendor.Vendor) {
	e.Obj(func(e *jx.Encoder) {
		str(e, "id", v.ID)
		str(e, "name", v.Name)
		str(e, "company", v.Company)
		str(e, "email", v.Email)
		str(e, "phone", v.Phone)
		str(e, "address", v.Address)
		str(e, "city", v.City)
		str(e, "zipCode", v.ZipCode)
		str(e, "country", v.Country)
		str(e, "website", v.Website)
		str(e, "contactPerson", v.ContactPerson)
		str(e, "paymentTerms", v.PaymentTerms)
		str(e, "status", string(v.Status))
		integer(e, "rating", v.Rating)
		integer(e, "totalOrders", v.TotalOrders)
		money(e, "totalPurchases", v.TotalPurchases)
		optTimestamp(e, "lastOrderDate", v.LastOrderDate)
		str(e, "notes", v.Notes)
		str(e, "taxId", v.TaxID)
		str(e, "currency", v.Currency)
		integer(e, "leadTime", v.LeadTime)
		timestamp(e, "dateAdded", v.DateAdded)
	})
}

// EncodeVendors writes vs as a JSON array.
func EncodeVendors(e *jx.Encoder, vs []vendor.Vendor) {
	e.Arr(func(e *jx.Encoder) {
		for i := range vs {
			EncodeVendor(e, &vs[i])
		}
	})
}

// DecodeVendor reads a JSON object into v. Unknown fields are skipped.
func DecodeVendor(d *jx.Decoder, v *vendor.Vendor) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			v.ID, err = String(d)
		case "name":
			v.Name, err = String(d)
		case "company":
			v.Company, err = String(d)
		case "email":
			v.Email, err = String(d)
		case "phone":
			v.Phone, err = String(d)
		case "address":
			v.Address, err = String(d)
		case "city":
			v.City, err = String(d)
		case "zipCode":
			v.ZipCode, err = String(d)
		case "country":
			v.Country, err = String(d)
		case "website":
			v.Website, err = String(d)
		case "contactPerson":
			v.ContactPerson, err = String(d)
		case "paymentTerms":
			v.PaymentTerms, err = String(d)
		case "status":
			var s string
			s, err = String(d)
			v.Status = vendor.Status(s)
		case "rating":
			v.Rating, err = Int(d)
		case "totalOrders":
			v.TotalOrders, err = Int(d)
		case "totalPurchases":
			v.TotalPurchases, err = Decimal(d)
		case "lastOrderDate":
			v.LastOrderDate, err = optTime(d)
		case "notes":
			v.Notes, err = String(d)
		case "taxId":
			v.TaxID, err = String(d)
		case "currency":
			v.Currency, err = String(d)
		case "leadTime":
			v.LeadTime, err = Int(d)
		default:
			err = d.Skip()
		}
		return field(key, err)
	})
}

// DecodeVendors reads a JSON array of vendors.
func DecodeVendors(d *jx.Decoder) ([]vendor.Vendor, error) {
	var out []vendor.Vendor
	err := d.Arr(func(d *jx.Decoder) error {
		var v vendor.Vendor
		if err := DecodeVendor(d, &v); err != nil {
			return err
		}
		out = append(out, v)
		return nil
	})
	return out, err
}
