package dispatch

import "context"

// Content types the dispatcher knows how to serialize.
const (
	ContentTypeJSON = "application/json"
	ContentTypeHTML = "text/html"
)

// Response is the single terminal result of handling a request. Handlers
// return exactly one Response by value, which structurally rules out the
// double-completion hazard of callback dispatch.
//
// A zero Status means 200 and an empty ContentType means JSON, so the zero
// value is a valid empty success.
type Response struct {
	Status      int
	Payload     any
	ContentType string
}

// Handler processes one normalized request into one response.
type Handler func(ctx context.Context, req *Request) Response

// OK returns a 200 response carrying the given JSON payload.
func OK(payload any) Response {
	return Response{Status: 200, Payload: payload}
}

// StatusOnly returns an empty JSON response with the given status code.
func StatusOnly(status int) Response {
	return Response{Status: status}
}
