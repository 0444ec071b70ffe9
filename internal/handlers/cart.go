package handlers

import (
	"context"
	"errors"

	"github.com/willimpizza/backend/internal/auth"
	"github.com/willimpizza/backend/internal/dispatch"
	"github.com/willimpizza/backend/internal/logging"
	"github.com/willimpizza/backend/internal/menu"
	"github.com/willimpizza/backend/internal/models"
	"github.com/willimpizza/backend/internal/recordstore"
)

const cartsCollection = "shopping-cart"

// Cart owns the shopping-cart routes. Cart identity is always derived from
// the caller's token, never from the payload.
type Cart struct {
	store    *recordstore.Store
	sessions *auth.Manager
	catalog  *menu.Catalog
	log      logging.Logger
}

// NewCart constructs the handler.
func NewCart(store *recordstore.Store, sessions *auth.Manager, catalog *menu.Catalog, log logging.Logger) *Cart {
	return &Cart{store: store, sessions: sessions, catalog: catalog, log: log}
}

// Handle routes by method; anything unsupported is a bare 405.
func (h *Cart) Handle(ctx context.Context, req *dispatch.Request) dispatch.Response {
	switch req.Method {
	case "post":
		return h.add(ctx, req)
	case "get":
		return h.get(ctx, req)
	case "delete":
		return h.remove(ctx, req)
	default:
		return dispatch.StatusOnly(405)
	}
}

// add merges the quantity into an existing line or appends a new one,
// creating the cart on first add.
func (h *Cart) add(ctx context.Context, req *dispatch.Request) dispatch.Response {
	token, ok := h.sessions.VerifyLive(ctx, req.Token())
	if !ok {
		return errorResponse(403, "You must be logged in and token should be valid to use the cart")
	}

	item := req.String("menuItem")
	quantity, qtyOK := req.Int("quantity")
	if item == "" || !h.catalog.Has(item) || !qtyOK {
		return errorResponse(400, "Missing required field(s) or input is invalid")
	}

	var cart models.Cart
	err := h.store.Read(ctx, cartsCollection, token.Email, &cart)
	if errors.Is(err, recordstore.ErrNotFound) {
		cart = models.Cart{{MenuItem: item, Quantity: quantity}}
		if err := h.store.Create(ctx, cartsCollection, token.Email, cart); err != nil {
			h.log.Error(ctx, "creating cart", "email", token.Email, "error", err)
			return errorResponse(500, "Could not create shopping cart")
		}
		return dispatch.OK(cart)
	}
	if err != nil {
		h.log.Error(ctx, "reading cart", "email", token.Email, "error", err)
		return errorResponse(500, "Could not read shopping cart")
	}

	merged := false
	for i := range cart {
		if cart[i].MenuItem == item {
			cart[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart = append(cart, models.CartItem{MenuItem: item, Quantity: quantity})
	}
	if err := h.store.Update(ctx, cartsCollection, token.Email, cart); err != nil {
		h.log.Error(ctx, "updating cart", "email", token.Email, "error", err)
		return errorResponse(500, "Could not update shopping cart")
	}
	return dispatch.OK(cart)
}

func (h *Cart) get(ctx context.Context, req *dispatch.Request) dispatch.Response {
	token, ok := h.sessions.VerifyLive(ctx, req.Token())
	if !ok {
		return errorResponse(403, "You must be logged in and token should be valid to use the cart")
	}

	var cart models.Cart
	if err := h.store.Read(ctx, cartsCollection, token.Email, &cart); err != nil {
		return errorResponse(400, "Could not find specified cart")
	}
	return dispatch.OK(cart)
}

// remove drops quantity from a named line (removing the line when the
// requested quantity zeroes or exceeds it, or when no quantity is given).
// With no item named, the whole cart file is deleted.
func (h *Cart) remove(ctx context.Context, req *dispatch.Request) dispatch.Response {
	token, ok := h.sessions.VerifyLive(ctx, req.Token())
	if !ok {
		return errorResponse(403, "You must be logged in and token should be valid to use the cart")
	}

	var cart models.Cart
	if err := h.store.Read(ctx, cartsCollection, token.Email, &cart); err != nil {
		return errorResponse(400, "You dont have a shopping cart")
	}

	item := req.String("menuItem")
	if item == "" {
		if err := h.store.Delete(ctx, cartsCollection, token.Email); err != nil {
			h.log.Error(ctx, "deleting cart", "email", token.Email, "error", err)
			return errorResponse(500, "Could not delete the cart")
		}
		return dispatch.StatusOnly(200)
	}

	index := -1
	for i := range cart {
		if cart[i].MenuItem == item {
			index = i
			break
		}
	}
	if index < 0 {
		return errorResponse(400, "There is no such a specified item in the cart")
	}

	quantity, qtyOK := req.Int("quantity")
	if qtyOK && quantity < cart[index].Quantity {
		cart[index].Quantity -= quantity
	} else {
		cart = append(cart[:index], cart[index+1:]...)
	}
	if err := h.store.Update(ctx, cartsCollection, token.Email, cart); err != nil {
		h.log.Error(ctx, "updating cart", "email", token.Email, "error", err)
		return errorResponse(500, "Could not delete the item")
	}
	return dispatch.OK(cart)
}
