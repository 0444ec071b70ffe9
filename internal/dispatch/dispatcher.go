// Package dispatch turns inbound HTTP requests into normalized requests,
// resolves them against an immutable route table, and serializes each
// handler's single Response back onto the wire.
package dispatch

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/willimpizza/backend/internal/logging"
)

// Dispatcher is the http.Handler fronting the whole API surface.
type Dispatcher struct {
	table *Table
	log   logging.Logger
}

// New builds a dispatcher over the given route table.
func New(table *Table, log logging.Logger) *Dispatcher {
	return &Dispatcher{table: table, log: log}
}

// ServeHTTP drains the body, normalizes the request, routes it, and writes
// exactly one response. No bound is imposed on body size, matching the
// original design.
func (d *Dispatcher) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		d.log.Warn(r.Context(), "reading request body", "error", err)
		body = nil
	}

	req := Normalize(r, body)
	handler := d.table.Resolve(req.Path)
	resp := handler(r.Context(), req)
	d.write(w, r, resp)
}

func (d *Dispatcher) write(w http.ResponseWriter, r *http.Request, resp Response) {
	status := resp.Status
	if status < 100 || status > 599 {
		status = http.StatusOK
	}
	contentType := resp.ContentType
	if contentType == "" {
		contentType = ContentTypeJSON
	}

	var out []byte
	switch contentType {
	case ContentTypeJSON:
		out = marshalJSON(resp.Payload)
	case ContentTypeHTML:
		if s, ok := resp.Payload.(string); ok {
			out = []byte(s)
		}
	default:
		if b, ok := resp.Payload.([]byte); ok {
			out = b
		}
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(out)))
	w.WriteHeader(status)
	if _, err := w.Write(out); err != nil {
		d.log.Warn(r.Context(), "writing response", "error", err)
	}
}

// marshalJSON renders the payload, defaulting to an empty object when the
// payload is nil or refuses to marshal.
func marshalJSON(payload any) []byte {
	if payload == nil {
		return []byte("{}")
	}
	out, err := json.Marshal(payload)
	if err != nil {
		return []byte("{}")
	}
	return out
}
