package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/willimpizza/backend/internal/auth"
	"github.com/willimpizza/backend/internal/dispatch"
	"github.com/willimpizza/backend/internal/logging"
	"github.com/willimpizza/backend/internal/menu"
	"github.com/willimpizza/backend/internal/models"
	"github.com/willimpizza/backend/internal/recordstore"
)

type chargeCall struct {
	Amount      int
	Currency    string
	Source      string
	Description string
}

type fakeCharger struct {
	err   error
	calls []chargeCall
}

func (f *fakeCharger) Charge(ctx context.Context, amount int, currency, source, description string) error {
	f.calls = append(f.calls, chargeCall{Amount: amount, Currency: currency, Source: source, Description: description})
	return f.err
}

type mailCall struct {
	To      string
	Subject string
	Body    string
}

type fakeMailer struct {
	err   error
	calls []mailCall
}

func (f *fakeMailer) Send(ctx context.Context, to, subject, body string) error {
	f.calls = append(f.calls, mailCall{To: to, Subject: subject, Body: body})
	return f.err
}

// env is a full API stack over a temp-dir store, served through the real
// dispatcher so tests exercise routing and serialization too.
type env struct {
	store    *recordstore.Store
	sessions *auth.Manager
	catalog  *menu.Catalog
	charger  *fakeCharger
	mailer   *fakeMailer
	server   *httptest.Server
}

func newEnv(t *testing.T) *env {
	t.Helper()

	store := recordstore.New(t.TempDir())
	sessions := auth.NewManager(store, "test-secret", time.Hour)
	catalog := menu.NewCatalog([]menu.Item{
		{Name: "A", Price: 100},
		{Name: "B", Price: 250},
		{Name: "C", Price: 175},
	})
	charger := &fakeCharger{}
	mailer := &fakeMailer{}
	log := logging.Nop()

	users := NewUsers(store, sessions, log)
	tokens := NewTokens(sessions, log)
	menuHandler := NewMenu(sessions, catalog)
	cart := NewCart(store, sessions, catalog, log)
	orders := NewOrders(store, sessions, catalog, charger, mailer, "czk", log)

	table := dispatch.NewTable(dispatch.TableConfig{
		Routes: map[string]dispatch.Handler{
			"ping":              Ping,
			"api/users":         users.Handle,
			"api/tokens":        tokens.Handle,
			"api/menu":          menuHandler.Handle,
			"api/shopping-cart": cart.Handle,
			"api/orders":        orders.Handle,
		},
	})

	server := httptest.NewServer(dispatch.New(table, log))
	t.Cleanup(server.Close)

	return &env{
		store:    store,
		sessions: sessions,
		catalog:  catalog,
		charger:  charger,
		mailer:   mailer,
		server:   server,
	}
}

// do sends a request with an optional token header and JSON payload, and
// returns the status plus the raw response body.
func (e *env) do(t *testing.T, method, path, token string, payload any) (int, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, e.server.URL+path, body)
	require.NoError(t, err)
	if token != "" {
		req.Header.Set("token", token)
	}

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, out
}

func decode[T any](t *testing.T, data []byte) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(data, &out))
	return out
}

// signup creates a user and returns a live token for it.
func (e *env) signup(t *testing.T, email, password string) models.Token {
	t.Helper()

	status, _ := e.do(t, http.MethodPost, "/api/users", "", map[string]string{
		"name":          "Jo",
		"email":         email,
		"password":      password,
		"streetAddress": "1 Rd",
	})
	require.Equal(t, http.StatusOK, status)

	status, body := e.do(t, http.MethodPost, "/api/tokens", "", map[string]string{
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusOK, status)
	return decode[models.Token](t, body)
}
