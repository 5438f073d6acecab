package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/jx"

	"github.com/xenking/pos-admin/internal/domain/vendor"
	"github.com/xenking/pos-admin/internal/wire"
)

// ListVendors handles GET /api/vendors?search=&status=.
func (h *Handler) ListVendors(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	vendors, err := h.Vendors.List(r.Context(), vendor.Filter{
		Search: q.Get("search"),
		Status: vendor.Status(q.Get("status")),
	})
	if err != nil {
		writeError(w, r, "fetch vendors", err)
		return
	}
	writeList(w, len(vendors), func(e *jx.Encoder) { wire.EncodeVendors(e, vendors) })
}

// GetVendor handles GET /api/vendors/{id}.
func (h *Handler) GetVendor(w http.ResponseWriter, r *http.Request) {
	v, err := h.Vendors.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "fetch vendor", err)
		return
	}
	writeData(w, http.StatusOK, "", func(e *jx.Encoder) { wire.EncodeVendor(e, v) })
}

// CreateVendor handles POST /api/vendors.
func (h *Handler) CreateVendor(w http.ResponseWriter, r *http.Request) {
	var v vendor.Vendor
	err := decodeBody(w, r, func(d *jx.Decoder) error { return wire.DecodeVendor(d, &v) })
	if err == nil {
		err = h.Vendors.Create(r.Context(), &v)
	}
	if err != nil {
		writeError(w, r, "create vendor", err)
		return
	}
	writeData(w, http.StatusCreated, "Vendor created successfully", func(e *jx.Encoder) {
		wire.EncodeVendor(e, &v)
	})
}

// UpdateVendor handles PUT /api/vendors/{id}.
func (h *Handler) UpdateVendor(w http.ResponseWriter, r *http.Request) {
	var v vendor.Vendor
	err := decodeBody(w, r, func(d *jx.Decoder) error { return wire.DecodeVendor(d, &v) })
	if err == nil {
		v.ID = chi.URLParam(r, "id")
		err = h.Vendors.Update(r.Context(), &v)
	}
	if err != nil {
		writeError(w, r, "update vendor", err)
		return
	}
	writeData(w, http.StatusOK, "Vendor updated successfully", func(e *jx.Encoder) {
		wire.EncodeVendor(e, &v)
	})
}

// DeleteVendor handles DELETE /api/vendors/{id}.
func (h *Handler) DeleteVendor(w http.ResponseWriter, r *http.Request) {
	if err := h.Vendors.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, "delete vendor", err)
		return
	}
	writeData(w, http.StatusOK, "Vendor deleted successfully", nil)
}
