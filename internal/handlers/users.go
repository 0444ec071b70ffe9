package handlers

import (
	"context"
	"errors"

	"github.com/willimpizza/backend/internal/auth"
	"github.com/willimpizza/backend/internal/dispatch"
	"github.com/willimpizza/backend/internal/logging"
	"github.com/willimpizza/backend/internal/models"
	"github.com/willimpizza/backend/internal/recordstore"
)

const usersCollection = "users"

// Users owns account CRUD. All reads and mutations except signup require a
// token owned by the affected email.
type Users struct {
	store    *recordstore.Store
	sessions *auth.Manager
	log      logging.Logger
}

// NewUsers constructs the handler.
func NewUsers(store *recordstore.Store, sessions *auth.Manager, log logging.Logger) *Users {
	return &Users{store: store, sessions: sessions, log: log}
}

// Handle routes by method; anything unsupported is a bare 405.
func (h *Users) Handle(ctx context.Context, req *dispatch.Request) dispatch.Response {
	switch req.Method {
	case "post":
		return h.create(ctx, req)
	case "get":
		return h.read(ctx, req)
	case "put":
		return h.update(ctx, req)
	case "delete":
		return h.delete(ctx, req)
	default:
		return dispatch.StatusOnly(405)
	}
}

func (h *Users) create(ctx context.Context, req *dispatch.Request) dispatch.Response {
	name := req.String("name")
	email := req.String("email")
	password := req.String("password")
	streetAddress := req.String("streetAddress")
	if name == "" || email == "" || password == "" || streetAddress == "" {
		return errorResponse(400, "Missing required fields")
	}

	user := models.User{
		Name:           name,
		Email:          email,
		HashedPassword: h.sessions.HashPassword(password),
		StreetAddress:  streetAddress,
	}
	if err := h.store.Create(ctx, usersCollection, email, user); err != nil {
		if errors.Is(err, recordstore.ErrExists) {
			return errorResponse(400, "Could not create account because the user already exists")
		}
		h.log.Error(ctx, "creating user", "email", email, "error", err)
		return errorResponse(500, "Could not create a user")
	}
	return dispatch.StatusOnly(200)
}

func (h *Users) read(ctx context.Context, req *dispatch.Request) dispatch.Response {
	email := req.Query.Get("email")
	if email == "" {
		return errorResponse(400, "Missing required fields")
	}
	if !h.sessions.VerifyOwnership(ctx, req.Token(), email) {
		return errorResponse(403, "Missing required token in header, or token invalid")
	}

	var user models.User
	if err := h.store.Read(ctx, usersCollection, email, &user); err != nil || user.Email == "" {
		return errorResponse(400, "Could not find a specified user")
	}
	user.HashedPassword = ""
	return dispatch.OK(user)
}

func (h *Users) update(ctx context.Context, req *dispatch.Request) dispatch.Response {
	email := req.String("email")
	if email == "" {
		return errorResponse(400, "Missing required field")
	}
	name := req.String("name")
	password := req.String("password")
	streetAddress := req.String("streetAddress")
	if name == "" && password == "" && streetAddress == "" {
		return errorResponse(400, "Missing fields to update")
	}
	if !h.sessions.VerifyOwnership(ctx, req.Token(), email) {
		return errorResponse(400, "Missing required token in header, or token is invalid")
	}

	var user models.User
	if err := h.store.Read(ctx, usersCollection, email, &user); err != nil || user.Email == "" {
		return errorResponse(400, "The specified user does not exist")
	}
	if name != "" {
		user.Name = name
	}
	if password != "" {
		user.HashedPassword = h.sessions.HashPassword(password)
	}
	if streetAddress != "" {
		user.StreetAddress = streetAddress
	}
	if err := h.store.Update(ctx, usersCollection, email, user); err != nil {
		h.log.Error(ctx, "updating user", "email", email, "error", err)
		return errorResponse(500, "Could not update the specified user")
	}
	return dispatch.StatusOnly(200)
}

// delete removes the account file only. Carts, tokens, and orders are not
// cascaded; that matches the original behavior and is a known gap.
func (h *Users) delete(ctx context.Context, req *dispatch.Request) dispatch.Response {
	email := req.String("email")
	if email == "" {
		return errorResponse(400, "Missing required fields")
	}
	if !h.sessions.VerifyOwnership(ctx, req.Token(), email) {
		return errorResponse(400, "Missing required token in header, or token is invalid")
	}

	var user models.User
	if err := h.store.Read(ctx, usersCollection, email, &user); err != nil || user.Email == "" {
		return errorResponse(400, "The user does not exist")
	}
	if err := h.store.Delete(ctx, usersCollection, email); err != nil {
		h.log.Error(ctx, "deleting user", "email", email, "error", err)
		return errorResponse(500, "Could not delete specified user")
	}
	return dispatch.StatusOnly(200)
}
