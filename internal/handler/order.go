package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/jx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xenking/pos-admin/internal/domain/order"
	"github.com/xenking/pos-admin/internal/wire"
)

// ListOrders handles GET /api/orders?status=&customerId=&limit=&offset=.
func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit")
	if err != nil {
		writeError(w, r, "fetch orders", err)
		return
	}
	offset, err := queryInt(r, "offset")
	if err != nil {
		writeError(w, r, "fetch orders", err)
		return
	}

	q := r.URL.Query()
	orders, total, err := h.Orders.List(r.Context(), order.Filter{
		Status:     order.Status(q.Get("status")),
		CustomerID: q.Get("customerId"),
		Limit:      limit,
		Offset:     offset,
	})
	if err != nil {
		writeError(w, r, "fetch orders", err)
		return
	}
	writeList(w, total, func(e *jx.Encoder) { wire.EncodeOrders(e, orders) })
}

// GetOrder handles GET /api/orders/{id}.
func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.Orders.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, r, "fetch order", err)
		return
	}
	writeData(w, http.StatusOK, "", func(e *jx.Encoder) { wire.EncodeOrder(e, o) })
}

// QuoteOrder handles POST /api/orders/quote. It prices a cart without
// touching stock or store credit.
func (h *Handler) QuoteOrder(w http.ResponseWriter, r *http.Request) {
	var req order.Request
	if err := decodeBody(w, r, func(d *jx.Decoder) error {
		return wire.DecodeOrderRequest(d, &req)
	}); err != nil {
		writeError(w, r, "quote order", err)
		return
	}

	q, err := h.Orders.Quote(r.Context(), req)
	if err != nil {
		writeError(w, r, "quote order", err)
		return
	}
	writeData(w, http.StatusOK, "", func(e *jx.Encoder) { wire.EncodeQuote(e, q) })
}

// PlaceOrder handles POST /api/orders.
func (h *Handler) PlaceOrder(w http.ResponseWriter, r *http.Request) {
	var req order.Request
	if err := decodeBody(w, r, func(d *jx.Decoder) error {
		return wire.DecodeOrderRequest(d, &req)
	}); err != nil {
		writeError(w, r, "create order", err)
		return
	}
	req.CreatedBy = staffName(r)

	ctx := r.Context()
	o, err := h.Orders.PlaceOrder(ctx, req)
	if err != nil {
		writeError(w, r, "create order", err)
		return
	}

	attrs := metric.WithAttributes(attribute.String("payment_method", string(o.PaymentMethod)))
	h.ordersPlaced.Add(ctx, 1, attrs)
	h.revenue.Add(ctx, o.Total.InexactFloat64(), attrs)

	writeData(w, http.StatusCreated, "Order created successfully", func(e *jx.Encoder) {
		wire.EncodeOrder(e, o)
	})
}

// UpdateOrder handles PATCH /api/orders/{id}.
func (h *Handler) UpdateOrder(w http.ResponseWriter, r *http.Request) {
	var u order.Update
	if err := decodeBody(w, r, func(d *jx.Decoder) error {
		return wire.DecodeOrderUpdate(d, &u)
	}); err != nil {
		writeError(w, r, "update order", err)
		return
	}

	o, err := h.Orders.Update(r.Context(), chi.URLParam(r, "id"), u)
	if err != nil {
		writeError(w, r, "update order", err)
		return
	}
	writeData(w, http.StatusOK, "Order updated successfully", func(e *jx.Encoder) {
		wire.EncodeOrder(e, o)
	})
}
