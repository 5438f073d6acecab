package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-faster/errors"
	"github.com/go-faster/jx"
)

// noTotal omits the "total" member from an envelope.
const noTotal = -1

// writeEnvelope writes {"success":true,"data":…,"total":…,"message":…}.
// data may be nil.
func writeEnvelope(w http.ResponseWriter, status int, message string, total int, data func(e *jx.Encoder)) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("success", func(e *jx.Encoder) { e.Bool(true) })
		if data != nil {
			e.Field("data", data)
		}
		if total != noTotal {
			e.Field("total", func(e *jx.Encoder) { e.Int(total) })
		}
		if message != "" {
			e.Field("message", func(e *jx.Encoder) { e.Str(message) })
		}
	})
	writeBody(w, status, e.Bytes())
}

func writeData(w http.ResponseWriter, status int, message string, data func(e *jx.Encoder)) {
	writeEnvelope(w, status, message, noTotal, data)
}

func writeList(w http.ResponseWriter, total int, data func(e *jx.Encoder)) {
	writeEnvelope(w, http.StatusOK, "", total, data)
}

func writeFailure(w http.ResponseWriter, status int, msg string) {
	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("success", func(e *jx.Encoder) { e.Bool(false) })
		e.Field("error", func(e *jx.Encoder) { e.Str(msg) })
	})
	writeBody(w, status, e.Bytes())
}

func writeBody(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// errBadBody is matched by errors from decodeBody.
var errBadBody = errors.New("invalid request body")

type bodyError struct {
	err error
}

func (e *bodyError) Error() string { return "invalid request body: " + e.err.Error() }

func (e *bodyError) Unwrap() error { return e.err }

func (e *bodyError) Is(target error) bool { return target == errBadBody }

// decodeBody reads at most maxBodySize bytes of JSON and hands them to fn.
func decodeBody(w http.ResponseWriter, r *http.Request, fn func(d *jx.Decoder) error) error {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return &bodyError{err: err}
	}
	if len(body) == 0 {
		return &bodyError{err: errors.New("empty body")}
	}
	if err := fn(jx.DecodeBytes(body)); err != nil {
		return &bodyError{err: err}
	}
	return nil
}

// queryInt parses an optional non-negative integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	s := r.URL.Query().Get(name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, &bodyError{err: errors.Errorf("query %q must be a non-negative integer", name)}
	}
	return n, nil
}
