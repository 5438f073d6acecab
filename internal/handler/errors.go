package handler

import (
	"net/http"

	"github.com/go-faster/errors"
	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/pos-admin/internal/domain/auth"
	"github.com/xenking/pos-admin/internal/domain/customer"
	"github.com/xenking/pos-admin/internal/domain/order"
	"github.com/xenking/pos-admin/internal/domain/pricing"
	"github.com/xenking/pos-admin/internal/domain/product"
	"github.com/xenking/pos-admin/internal/domain/validation"
	"github.com/xenking/pos-admin/internal/domain/vendor"
)

var notFound = []struct {
	err error
	msg string
}{
	{customer.ErrNotFound, "Customer not found"},
	{product.ErrNotFound, "Product not found"},
	{vendor.ErrNotFound, "Vendor not found"},
	{order.ErrNotFound, "Order not found"},
}

// errorStatus maps a domain error to its HTTP status and client message.
// Unknown errors map to 500 with an empty message.
func errorStatus(err error) (int, string) {
	var (
		verr     *validation.Error
		perr     *pricing.InvalidInputError
		stockErr *pricing.InsufficientStockError
		pnfErr   *order.ProductNotFoundError
	)
	switch {
	case errors.As(err, &verr):
		return http.StatusBadRequest, verr.Error()
	case errors.As(err, &perr):
		return http.StatusBadRequest, perr.Error()
	case errors.Is(err, errBadBody):
		return http.StatusBadRequest, err.Error()
	case errors.Is(err, auth.ErrUnauthorized):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, auth.ErrForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, product.ErrDuplicateSKU):
		return http.StatusConflict, product.ErrDuplicateSKU.Error()
	case errors.Is(err, customer.ErrDuplicateEmail):
		return http.StatusConflict, customer.ErrDuplicateEmail.Error()
	case errors.As(err, &stockErr):
		return http.StatusUnprocessableEntity, stockErr.Error()
	case errors.As(err, &pnfErr):
		return http.StatusUnprocessableEntity, pnfErr.Error()
	case errors.Is(err, pricing.ErrInsufficientCredit):
		return http.StatusUnprocessableEntity, pricing.ErrInsufficientCredit.Error()
	}
	for _, nf := range notFound {
		if errors.Is(err, nf.err) {
			return http.StatusNotFound, nf.msg
		}
	}
	return http.StatusInternalServerError, ""
}

// writeError writes the failure envelope for err. Internal errors are logged
// and reported to the client as "Failed to <action>".
func writeError(w http.ResponseWriter, r *http.Request, action string, err error) {
	status, msg := errorStatus(err)
	if status == http.StatusInternalServerError {
		zctx.From(r.Context()).Error("Request failed",
			zap.String("action", action),
			zap.Error(err),
		)
		msg = "Failed to " + action
	}
	writeFailure(w, status, msg)
}
