package dispatch

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strings"
)

// Request is the normalized form every handler receives: path trimmed of
// surrounding slashes, method lower-cased, and the body decoded best-effort
// as JSON.
type Request struct {
	// Path is the URL path with leading and trailing slashes removed.
	Path string

	// Method is the lower-cased HTTP method.
	Method string

	// Query holds the parsed query string.
	Query url.Values

	// Headers holds the request headers.
	Headers http.Header

	// Payload is the decoded JSON body. A missing or malformed body yields
	// an empty map, never an error; handlers validate the fields they need.
	Payload map[string]any

	// Body is the raw body as received.
	Body []byte
}

// Normalize converts an inbound request plus its fully read body into the
// canonical Request shape.
func Normalize(r *http.Request, body []byte) *Request {
	return &Request{
		Path:    strings.Trim(r.URL.Path, "/"),
		Method:  strings.ToLower(r.Method),
		Query:   r.URL.Query(),
		Headers: r.Header,
		Payload: parseJSON(body),
		Body:    body,
	}
}

// Token returns the bearer token from the request's "token" header.
func (r *Request) Token() string {
	return r.Headers.Get("token")
}

// String returns the named payload field trimmed, or "" when it is absent or
// not a string.
func (r *Request) String(key string) string {
	s, _ := r.Payload[key].(string)
	return strings.TrimSpace(s)
}

// Int returns the named payload field as a positive integer. ok is false
// when the field is absent, non-numeric, fractional, or not positive.
func (r *Request) Int(key string) (int, bool) {
	f, isNum := r.Payload[key].(float64)
	if !isNum || f != float64(int(f)) || int(f) <= 0 {
		return 0, false
	}
	return int(f), true
}

// Bool returns the named payload field as a bool, false when absent or of
// another type.
func (r *Request) Bool(key string) bool {
	b, _ := r.Payload[key].(bool)
	return b
}

// parseJSON decodes b into an object, degrading to an empty map on any
// parse failure. Kept from the original contract: a malformed body is not an
// error at this stage.
func parseJSON(b []byte) map[string]any {
	out := map[string]any{}
	if len(b) == 0 {
		return out
	}
	if err := json.Unmarshal(b, &out); err != nil {
		return map[string]any{}
	}
	return out
}
