package handler

import (
	"net/http"
	"time"

	"github.com/go-faster/jx"
)

var endpoints = []struct {
	name, path string
}{
	{"customers", "/api/customers"},
	{"products", "/api/products"},
	{"vendors", "/api/vendors"},
	{"orders", "/api/orders"},
}

// Index handles GET /api. It needs no API key.
func (h *Handler) Index(w http.ResponseWriter, _ *http.Request) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("success", func(e *jx.Encoder) { e.Bool(true) })
		e.Field("message", func(e *jx.Encoder) { e.Str("POS API is working!") })
		e.Field("timestamp", func(e *jx.Encoder) {
			e.Str(h.now().UTC().Format(time.RFC3339))
		})
		e.Field("endpoints", func(e *jx.Encoder) {
			e.Obj(func(e *jx.Encoder) {
				for _, ep := range endpoints {
					e.Field(ep.name, func(e *jx.Encoder) { e.Str(ep.path) })
				}
			})
		})
	})
	writeBody(w, http.StatusOK, e.Bytes())
}
