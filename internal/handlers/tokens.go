package handlers

import (
	"context"
	"errors"

	"github.com/willimpizza/backend/internal/auth"
	"github.com/willimpizza/backend/internal/dispatch"
	"github.com/willimpizza/backend/internal/logging"
	"github.com/willimpizza/backend/internal/recordstore"
)

// tokenIDLength is the length every client-supplied token id must have.
const tokenIDLength = 20

// Tokens owns the session lifecycle routes: issue, inspect, extend, revoke.
type Tokens struct {
	sessions *auth.Manager
	log      logging.Logger
}

// NewTokens constructs the handler.
func NewTokens(sessions *auth.Manager, log logging.Logger) *Tokens {
	return &Tokens{sessions: sessions, log: log}
}

// Handle routes by method; anything unsupported is a bare 405.
func (h *Tokens) Handle(ctx context.Context, req *dispatch.Request) dispatch.Response {
	switch req.Method {
	case "post":
		return h.issue(ctx, req)
	case "get":
		return h.inspect(ctx, req)
	case "put":
		return h.extend(ctx, req)
	case "delete":
		return h.revoke(ctx, req)
	default:
		return dispatch.StatusOnly(405)
	}
}

func (h *Tokens) issue(ctx context.Context, req *dispatch.Request) dispatch.Response {
	email := req.String("email")
	password := req.String("password")
	if email == "" || password == "" {
		return errorResponse(400, "Missing required field(s)")
	}

	token, err := h.sessions.IssueToken(ctx, email, password)
	switch {
	case err == nil:
		return dispatch.OK(token)
	case errors.Is(err, auth.ErrUserNotFound):
		return errorResponse(400, "Could not find such a user")
	case errors.Is(err, auth.ErrInvalidCredentials):
		return errorResponse(403, "Password did not match the specified user")
	default:
		h.log.Error(ctx, "issuing token", "email", email, "error", err)
		return errorResponse(500, "Could not create a new token")
	}
}

func (h *Tokens) inspect(ctx context.Context, req *dispatch.Request) dispatch.Response {
	id := req.Query.Get("id")
	if len(id) != tokenIDLength {
		return errorResponse(400, "Missing required field")
	}

	token, err := h.sessions.Lookup(ctx, id)
	if err != nil || token.ID == "" {
		return errorResponse(400, "Specified token does not exist")
	}
	return dispatch.OK(token)
}

func (h *Tokens) extend(ctx context.Context, req *dispatch.Request) dispatch.Response {
	id := req.String("id")
	if len(id) != tokenIDLength || !req.Bool("extend") {
		return errorResponse(400, "Missing required field(s) or invalid input")
	}

	token, err := h.sessions.Extend(ctx, id)
	switch {
	case err == nil:
		return dispatch.OK(token)
	case errors.Is(err, auth.ErrTokenExpired):
		return errorResponse(400, "Token has already expired")
	case errors.Is(err, recordstore.ErrNotFound):
		return errorResponse(400, "Specified token does not exist")
	default:
		h.log.Error(ctx, "extending token", "error", err)
		return errorResponse(500, "Could not update the token")
	}
}

func (h *Tokens) revoke(ctx context.Context, req *dispatch.Request) dispatch.Response {
	id := req.String("id")
	if len(id) != tokenIDLength {
		return errorResponse(400, "Missing required field")
	}

	if err := h.sessions.Revoke(ctx, id); err != nil {
		if errors.Is(err, recordstore.ErrNotFound) {
			return errorResponse(400, "Could not find a specified token")
		}
		h.log.Error(ctx, "revoking token", "error", err)
		return errorResponse(500, "Could not delete specified token")
	}
	return dispatch.StatusOnly(200)
}
