package wire

import (
	"github.com/go-faster/jx"

	"github.com/xenking/pos-admin/internal/domain/product"
)

// EncodeProduct writes p as a JSON object.
func EncodeProduct(e *jx.Encoder, p *product.Product) {
	e.Obj(func(e *jx.Encoder) {
		str(e, "id", p.ID)
		str(e, "name", p.Name)
		str(e, "description", p.Description)
		money(e, "price", p.Price)
		money(e, "cost", p.Cost)
		integer(e, "stock", p.Stock)
		integer(e, "minStockLevel", p.MinStockLevel)
		str(e, "category", p.Category)
		str(e, "sku", p.SKU)
		str(e, "supplier", p.Supplier)
		str(e, "status", string(p.Status))
		str(e, "image", p.Image)
		timestamp(e, "dateAdded", p.DateAdded)
		timestamp(e, "createdAt", p.CreatedAt)
		timestamp(e, "updatedAt", p.UpdatedAt)
	})
}

// EncodeProducts writes ps as a JSON array.
func EncodeProducts(e *jx.Encoder, ps []product.Product) {
	e.Arr(func(e *jx.Encoder) {
		for i := range ps {
			EncodeProduct(e, &ps[i])
		}
	})
}

// DecodeProduct reads a JSON object into p. Unknown fields are skipped.
func DecodeProduct(d *jx.Decoder, p *product.Product) error {
	return d.Obj(func(d *jx.Decoder, key string) error {
		var err error
		switch key {
		case "id":
			p.ID, err = String(d)
		case "name":
			p.Name, err = String(d)
		case "description":
			p.Description, err = String(d)
		case "price":
			p.Price, err = Decimal(d)
		case "cost":
			p.Cost, err = Decimal(d)
		case "stock":
			p.Stock, err = Int(d)
		case "minStockLevel":
			p.MinStockLevel, err = Int(d)
		case "category":
			p.Category, err = String(d)
		case "sku":
			p.SKU, err = String(d)
		case "supplier":
			p.Supplier, err = String(d)
		case "status":
			var s string
			s, err = String(d)
			p.Status = product.Status(s)
		case "image":
			p.Image, err = String(d)
		case "dateAdded":
			p.DateAdded, err = readTime(d)
		case "createdAt":
			p.CreatedAt, err = readTime(d)
		case "updatedAt":
			p.UpdatedAt, err = readTime(d)
		default:
			err = d.Skip()
		}
		return field(key, err)
	})
}

// DecodeProducts reads a JSON array of products.
func DecodeProducts(d *jx.Decoder) ([]product.Product, error) {
	var out []product.Product
	err := d.Arr(func(d *jx.Decoder) error {
		var p product.Product
		if err := DecodeProduct(d, &p); err != nil {
			return err
		}
		out = append(out, p)
		return nil
	})
	return out, err
}
