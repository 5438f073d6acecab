package handler

import (
	"net/http"

	"github.com/go-faster/sdk/zctx"
	"go.uber.org/zap"

	"github.com/xenking/pos-admin/internal/domain/auth"
)

// APIKeyHeader carries the staff API key.
const APIKeyHeader = "X-API-Key"

// require authenticates the request's API key and checks that it grants p.
// The key is stored in the request context for downstream handlers.
func (h *Handler) require(p auth.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			info, err := h.auth.Authorize(ctx, r.Header.Get(APIKeyHeader), p)
			if err != nil {
				if info != nil {
					zctx.From(ctx).Info("Permission denied",
						zap.String("key_id", info.ID),
						zap.String("role", string(info.Role)),
						zap.String("permission", string(p)),
					)
				}
				writeError(w, r, "authenticate", err)
				return
			}
			lg := zctx.From(ctx).With(zap.String("key_id", info.ID))
			ctx = zctx.Base(auth.WithKey(ctx, info), lg)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// staffName returns the name of the authenticated key, if any.
func staffName(r *http.Request) string {
	if info, ok := auth.FromContext(r.Context()); ok {
		return info.Name
	}
	return ""
}
