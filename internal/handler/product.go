package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/jx"

	"github.com/xenking/pos-admin/internal/domain/product"
	"github.com/xenking/pos-admin/internal/wire"
)

// ListProducts handles GET /api/products?search=&category=&status=.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	products, err := h.Products.List(r.Context(), product.Filter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		Status:   product.Status(q.Get("status")),
	})
	if err != nil {
		writeError(w, r, "fetch products", err)
		return
	}
	writeList(w, len(products), func(e *jx.Encoder) { wire.EncodeProducts(e, products) })
}

// GetProduct handles GET /api/products/{id}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.Products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "fetch product", err)
		return
	}
	writeData(w, http.StatusOK, "", func(e *jx.Encoder) { wire.EncodeProduct(e, p) })
}

// CreateProduct handles POST /api/products.
func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var p product.Product
	if err := decodeBody(w, r, func(d *jx.Decoder) error {
		return wire.DecodeProduct(d, &p)
	}); err != nil {
		writeError(w, r, "create product", err)
		return
	}

	if err := h.Products.Create(r.Context(), &p); err != nil {
		writeError(w, r, "create product", err)
		return
	}
	writeData(w, http.StatusCreated, "Product created successfully", func(e *jx.Encoder) {
		wire.EncodeProduct(e, &p)
	})
}

// UpdateProduct handles PUT /api/products/{id}. The body replaces every
// editable field.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var p product.Product
	if err := decodeBody(w, r, func(d *jx.Decoder) error {
		return wire.DecodeProduct(d, &p)
	}); err != nil {
		writeError(w, r, "update product", err)
		return
	}
	p.ID = chi.URLParam(r, "id")

	if err := h.Products.Update(r.Context(), &p); err != nil {
		writeError(w, r, "update product", err)
		return
	}
	writeData(w, http.StatusOK, "Product updated successfully", func(e *jx.Encoder) {
		wire.EncodeProduct(e, &p)
	})
}

// DeleteProduct handles DELETE /api/products/{id}.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.Products.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, "delete product", err)
		return
	}
	writeData(w, http.StatusOK, "Product deleted successfully", nil)
}
