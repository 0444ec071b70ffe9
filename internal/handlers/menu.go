package handlers

import (
	"context"

	"github.com/willimpizza/backend/internal/auth"
	"github.com/willimpizza/backend/internal/dispatch"
	"github.com/willimpizza/backend/internal/menu"
)

// Menu serves the static catalog to logged-in users.
type Menu struct {
	sessions *auth.Manager
	catalog  *menu.Catalog
}

// NewMenu constructs the handler.
func NewMenu(sessions *auth.Manager, catalog *menu.Catalog) *Menu {
	return &Menu{sessions: sessions, catalog: catalog}
}

// Handle checks login first, then only allows GET.
func (h *Menu) Handle(ctx context.Context, req *dispatch.Request) dispatch.Response {
	if _, ok := h.sessions.VerifyLive(ctx, req.Token()); !ok {
		return errorResponse(403, "You must be logged in and token should be valid to see the menu")
	}
	if req.Method != "get" {
		return errorResponse(400, "Only GET method is allowed")
	}
	return dispatch.OK(h.catalog.Items())
}
