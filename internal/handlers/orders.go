package handlers

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/willimpizza/backend/internal/auth"
	"github.com/willimpizza/backend/internal/dispatch"
	"github.com/willimpizza/backend/internal/email"
	"github.com/willimpizza/backend/internal/logging"
	"github.com/willimpizza/backend/internal/menu"
	"github.com/willimpizza/backend/internal/models"
	"github.com/willimpizza/backend/internal/payments"
	"github.com/willimpizza/backend/internal/recordstore"
	"github.com/willimpizza/backend/internal/upstream"
)

// Orders composes user, cart, and menu prices into a quote (GET) or a paid
// checkout (POST).
type Orders struct {
	store    *recordstore.Store
	sessions *auth.Manager
	catalog  *menu.Catalog
	charger  payments.Charger
	mailer   email.Sender
	currency string
	log      logging.Logger
}

// NewOrders constructs the handler.
func NewOrders(store *recordstore.Store, sessions *auth.Manager, catalog *menu.Catalog,
	charger payments.Charger, mailer email.Sender, currency string, log logging.Logger) *Orders {
	return &Orders{
		store:    store,
		sessions: sessions,
		catalog:  catalog,
		charger:  charger,
		mailer:   mailer,
		currency: currency,
		log:      log,
	}
}

// Handle routes by method; anything unsupported is a bare 405.
func (h *Orders) Handle(ctx context.Context, req *dispatch.Request) dispatch.Response {
	switch req.Method {
	case "get":
		return h.quote(ctx, req)
	case "post":
		return h.checkout(ctx, req)
	default:
		return dispatch.StatusOnly(405)
	}
}

func (h *Orders) quote(ctx context.Context, req *dispatch.Request) dispatch.Response {
	token, ok := h.sessions.VerifyLive(ctx, req.Token())
	if !ok {
		return errorResponse(403, "You are not logged in or token has expired")
	}
	order, resp := h.buildOrder(ctx, token.Email)
	if resp != nil {
		return *resp
	}
	return dispatch.OK(order)
}

// checkout charges the payment source for the order total in minor units
// and, only when the charge succeeds, emails an order summary. The cart is
// intentionally left in place afterwards, matching the original behavior.
func (h *Orders) checkout(ctx context.Context, req *dispatch.Request) dispatch.Response {
	source := req.String("source")
	if source == "" {
		return errorResponse(400, "Missing required fields")
	}
	token, ok := h.sessions.VerifyLive(ctx, req.Token())
	if !ok {
		return errorResponse(403, "You are not logged in or token has expired")
	}

	order, resp := h.buildOrder(ctx, token.Email)
	if resp != nil {
		return *resp
	}

	description, err := json.Marshal(order)
	if err != nil {
		h.log.Error(ctx, "marshalling order", "email", order.Email, "error", err)
		return errorResponse(500, "Could not prepare the order")
	}

	if err := h.charger.Charge(ctx, order.TotalPrice*100, order.Currency, source, string(description)); err != nil {
		status, isUpstream := upstream.StatusOf(err)
		if !isUpstream {
			status = 500
		}
		h.log.Warn(ctx, "charge failed", "email", order.Email, "status", status, "error", err)
		return errorResponse(status, "Source is invalid or payment service is down")
	}

	subject := "Willim Pizza Order Confirmation"
	body := fmt.Sprintf("Your payment for order was successful. Here are the details:\n%s", description)
	if err := h.mailer.Send(ctx, order.Email, subject, body); err != nil {
		status, isUpstream := upstream.StatusOf(err)
		if !isUpstream {
			status = 500
		}
		h.log.Warn(ctx, "confirmation email failed", "email", order.Email, "status", status, "error", err)
		return errorResponse(status, "Were not able to send email")
	}
	return dispatch.StatusOnly(200)
}

// buildOrder runs the documented sequence: read user, read cart, price every
// line against the catalog. On failure it returns the response to send.
func (h *Orders) buildOrder(ctx context.Context, emailAddr string) (models.Order, *dispatch.Response) {
	var user models.User
	if err := h.store.Read(ctx, usersCollection, emailAddr, &user); err != nil || user.Email == "" {
		resp := errorResponse(500, "Could not read specified user")
		return models.Order{}, &resp
	}

	var cart models.Cart
	if err := h.store.Read(ctx, cartsCollection, emailAddr, &cart); err != nil {
		resp := errorResponse(500, "Could not read shopping cart")
		return models.Order{}, &resp
	}

	total := 0
	for _, line := range cart {
		price, _ := h.catalog.Price(line.MenuItem)
		total += price * line.Quantity
	}

	return models.Order{
		Email:         user.Email,
		StreetAddress: user.StreetAddress,
		Products:      cart,
		TotalPrice:    total,
		Currency:      h.currency,
	}, nil
}
