// Package handlers implements the domain services behind each API route:
// users, tokens, menu, shopping cart, and orders. Every handler owns its own
// authorization, validation, and persistence.
package handlers

import "github.com/willimpizza/backend/internal/dispatch"

// apiError is the error envelope every route replies with.
type apiError struct {
	Error string `json:"Error"`
}

func errorResponse(status int, msg string) dispatch.Response {
	return dispatch.Response{Status: status, Payload: apiError{Error: msg}}
}
