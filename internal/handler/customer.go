package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/jx"

	"github.com/xenking/pos-admin/internal/domain/customer"
	"github.com/xenking/pos-admin/internal/wire"
)

// ListCustomers handles GET /api/customers?search=.
func (h *Handler) ListCustomers(w http.ResponseWriter, r *http.Request) {
	customers, err := h.Customers.List(r.Context(), customer.Filter{
		Search: r.URL.Query().Get("search"),
	})
	if err != nil {
		writeError(w, r, "fetch customers", err)
		return
	}
	writeEnvelope(w, http.StatusOK, "Customers fetched successfully", len(customers), func(e *jx.Encoder) {
		wire.EncodeCustomers(e, customers)
	})
}

// GetCustomer handles GET /api/customers/{id}.
func (h *Handler) GetCustomer(w http.ResponseWriter, r *http.Request) {
	c, err := h.Customers.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "fetch customer", err)
		return
	}
	writeData(w, http.StatusOK, "", func(e *jx.Encoder) { wire.EncodeCustomer(e, c) })
}

// CreateCustomer handles POST /api/customers.
func (h *Handler) CreateCustomer(w http.ResponseWriter, r *http.Request) {
	var in customer.Input
	if err := decodeBody(w, r, func(d *jx.Decoder) error {
		return wire.DecodeCustomerInput(d, &in)
	}); err != nil {
		writeError(w, r, "create customer", err)
		return
	}

	c, err := h.Customers.Create(r.Context(), in)
	if err != nil {
		writeError(w, r, "create customer", err)
		return
	}
	writeData(w, http.StatusCreated, "Customer created successfully", func(e *jx.Encoder) {
		wire.EncodeCustomer(e, c)
	})
}

// UpdateCustomer handles PUT /api/customers/{id}.
func (h *Handler) UpdateCustomer(w http.ResponseWriter, r *http.Request) {
	var in customer.Input
	if err := decodeBody(w, r, func(d *jx.Decoder) error {
		return wire.DecodeCustomerInput(d, &in)
	}); err != nil {
		writeError(w, r, "update customer", err)
		return
	}

	c, err := h.Customers.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		writeError(w, r, "update customer", err)
		return
	}
	writeData(w, http.StatusOK, "Customer updated successfully", func(e *jx.Encoder) {
		wire.EncodeCustomer(e, c)
	})
}

// DeleteCustomer handles DELETE /api/customers/{id}.
func (h *Handler) DeleteCustomer(w http.ResponseWriter, r *http.Request) {
	if err := h.Customers.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		writeError(w, r, "delete customer", err)
		return
	}
	writeData(w, http.StatusOK, "Customer deleted successfully", nil)
}

// AdjustCredit handles POST /api/customers/{id}/credit.
func (h *Handler) AdjustCredit(w http.ResponseWriter, r *http.Request) {
	var req customer.CreditRequest
	if err := decodeBody(w, r, func(d *jx.Decoder) error {
		return wire.DecodeCreditRequest(d, &req)
	}); err != nil {
		writeError(w, r, "update customer credit", err)
		return
	}

	c, err := h.Customers.AdjustCredit(r.Context(), chi.URLParam(r, "id"), req)
	if err != nil {
		writeError(w, r, "update customer credit", err)
		return
	}
	msg := "Credit added successfully"
	if req.Operation == customer.CreditDeduct {
		msg = "Credit deducted successfully"
	}
	writeData(w, http.StatusOK, msg, func(e *jx.Encoder) { wire.EncodeCustomer(e, c) })
}
