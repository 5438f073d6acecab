// Package handler exposes the back-office services over a JSON HTTP API.
package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-faster/errors"
	"go.opentelemetry.io/otel/metric"

	"github.com/xenking/pos-admin/internal/domain/auth"
	"github.com/xenking/pos-admin/internal/domain/customer"
	"github.com/xenking/pos-admin/internal/domain/order"
	"github.com/xenking/pos-admin/internal/domain/product"
	"github.com/xenking/pos-admin/internal/domain/vendor"
)

// maxBodySize caps request bodies.
const maxBodySize = 1 << 20

// Services bundles the domain services served by the API.
type Services struct {
	Products  *product.Service
	Customers *customer.Service
	Vendors   *vendor.Service
	Orders    *order.Service
}

// Handler serves the /api routes.
type Handler struct {
	Services
	auth *auth.Authenticator
	now  func() time.Time

	ordersPlaced metric.Int64Counter
	revenue      metric.Float64Counter
}

// NewHandler creates a Handler. Sales counters are registered on meter.
func NewHandler(svc Services, authn *auth.Authenticator, meter metric.Meter) (*Handler, error) {
	placed, err := meter.Int64Counter("pos.orders.placed",
		metric.WithDescription("Orders placed through the API"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create orders counter")
	}
	revenue, err := meter.Float64Counter("pos.orders.revenue",
		metric.WithDescription("Grand total of placed orders"),
	)
	if err != nil {
		return nil, errors.Wrap(err, "create revenue counter")
	}
	return &Handler{
		Services:     svc,
		auth:         authn,
		now:          time.Now,
		ordersPlaced: placed,
		revenue:      revenue,
	}, nil
}

// Routes returns the API router. Every route except the index requires an
// X-API-Key carrying the listed permission.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Route("/api", func(r chi.Router) {
		r.Get("/", h.Index)

		r.Route("/customers", func(r chi.Router) {
			r.With(h.require(auth.ViewCustomers)).Get("/", h.ListCustomers)
			r.With(h.require(auth.ManageCustomers)).Post("/", h.CreateCustomer)
			r.With(h.require(auth.ViewCustomers)).Get("/{id}", h.GetCustomer)
			r.With(h.require(auth.ManageCustomers)).Put("/{id}", h.UpdateCustomer)
			r.With(h.require(auth.ManageCustomers)).Delete("/{id}", h.DeleteCustomer)
			r.With(h.require(auth.ManageCustomers)).Post("/{id}/credit", h.AdjustCredit)
		})

		r.Route("/products", func(r chi.Router) {
			r.With(h.require(auth.ViewProducts)).Get("/", h.ListProducts)
			r.With(h.require(auth.ManageProducts)).Post("/", h.CreateProduct)
			r.With(h.require(auth.ViewProducts)).Get("/{id}", h.GetProduct)
			r.With(h.require(auth.ManageProducts)).Put("/{id}", h.UpdateProduct)
			r.With(h.require(auth.ManageProducts)).Delete("/{id}", h.DeleteProduct)
		})

		r.Route("/vendors", func(r chi.Router) {
			r.With(h.require(auth.ViewProducts)).Get("/", h.ListVendors)
			r.With(h.require(auth.ManageInventory)).Post("/", h.CreateVendor)
			r.With(h.require(auth.ViewProducts)).Get("/{id}", h.GetVendor)
			r.With(h.require(auth.ManageInventory)).Put("/{id}", h.UpdateVendor)
			r.With(h.require(auth.ManageInventory)).Delete("/{id}", h.DeleteVendor)
		})

		r.Route("/orders", func(r chi.Router) {
			r.With(h.require(auth.ProcessSales)).Get("/", h.ListOrders)
			r.With(h.require(auth.ProcessSales)).Post("/", h.PlaceOrder)
			r.With(h.require(auth.ProcessSales)).Post("/quote", h.QuoteOrder)
			r.With(h.require(auth.ProcessSales)).Get("/{id}", h.GetOrder)
			r.With(h.require(auth.ProcessReturns)).Patch("/{id}", h.UpdateOrder)
		})
	})
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeFailure(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeFailure(w, http.StatusMethodNotAllowed, "Method not allowed")
	})
	return r
}
