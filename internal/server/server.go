package server

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/willimpizza/backend/internal/auth"
	"github.com/willimpizza/backend/internal/config"
	"github.com/willimpizza/backend/internal/dispatch"
	"github.com/willimpizza/backend/internal/email"
	"github.com/willimpizza/backend/internal/handlers"
	"github.com/willimpizza/backend/internal/logging"
	"github.com/willimpizza/backend/internal/menu"
	"github.com/willimpizza/backend/internal/middleware"
	"github.com/willimpizza/backend/internal/payments"
	"github.com/willimpizza/backend/internal/recordstore"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner *http.Server
}

// New wires the domain services into a dispatcher, stacks the middleware,
// and returns a ready server. The route table is built exactly once here;
// nothing registers routes globally.
func New(cfg config.Config, log logging.Logger, store *recordstore.Store,
	charger payments.Charger, mailer email.Sender) *Server {

	sessions := auth.NewManager(store, cfg.HashSecret, cfg.TokenTTL)
	catalog := menu.Default()

	users := handlers.NewUsers(store, sessions, log)
	tokens := handlers.NewTokens(sessions, log)
	menuHandler := handlers.NewMenu(sessions, catalog)
	cart := handlers.NewCart(store, sessions, catalog, log)
	orders := handlers.NewOrders(store, sessions, catalog, charger, mailer, cfg.Currency, log)

	table := dispatch.NewTable(dispatch.TableConfig{
		Routes: map[string]dispatch.Handler{
			"ping":              handlers.Ping,
			"api/users":         users.Handle,
			"api/tokens":        tokens.Handle,
			"api/menu":          menuHandler.Handle,
			"api/shopping-cart": cart.Handle,
			"api/orders":        orders.Handle,
		},
		StaticPrefix: "public",
	})
	dispatcher := dispatch.New(table, log)

	registry := prometheus.NewRegistry()
	metrics := middleware.NewMetrics(registry)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	mux.Handle("/", dispatcher)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(log, metrics.Handler(mux)))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer}
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
