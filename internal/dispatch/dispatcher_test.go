package dispatch

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/willimpizza/backend/internal/logging"
)

func echoHandler(captured **Request) Handler {
	return func(ctx context.Context, req *Request) Response {
		*captured = req
		return OK(map[string]string{"route": req.Path})
	}
}

func serve(t *testing.T, d *Dispatcher, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	d.ServeHTTP(rec, req)
	return rec
}

func TestNormalization(t *testing.T) {
	var captured *Request
	table := NewTable(TableConfig{Routes: map[string]Handler{
		"api/users": echoHandler(&captured),
	}})
	d := New(table, logging.Nop())

	rec := serve(t, d, http.MethodPost, "/api/users/?email=jo%40x.com", `{"name":"Jo","quantity":2,"extend":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, captured)

	assert.Equal(t, "api/users", captured.Path)
	assert.Equal(t, "post", captured.Method)
	assert.Equal(t, "jo@x.com", captured.Query.Get("email"))
	assert.Equal(t, "Jo", captured.String("name"))
	qty, ok := captured.Int("quantity")
	assert.True(t, ok)
	assert.Equal(t, 2, qty)
	assert.True(t, captured.Bool("extend"))
}

func TestMalformedBodyYieldsEmptyPayload(t *testing.T) {
	var captured *Request
	table := NewTable(TableConfig{Routes: map[string]Handler{
		"ping": echoHandler(&captured),
	}})
	d := New(table, logging.Nop())

	rec := serve(t, d, http.MethodPost, "/ping", "{this is not json")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, captured.Payload)
}

func TestDefaultsStatusAndContentType(t *testing.T) {
	table := NewTable(TableConfig{Routes: map[string]Handler{
		"zero": func(ctx context.Context, req *Request) Response {
			return Response{}
		},
	}})
	d := New(table, logging.Nop())

	rec := serve(t, d, http.MethodGet, "/zero", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, ContentTypeJSON, rec.Header().Get("Content-Type"))
	assert.JSONEq(t, "{}", rec.Body.String())
}

func TestNotFoundFallback(t *testing.T) {
	table := NewTable(TableConfig{Routes: map[string]Handler{}})
	d := New(table, logging.Nop())

	rec := serve(t, d, http.MethodGet, "/no/such/route", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, "{}", rec.Body.String())
}

func TestStaticPrefixBeforeTableLookup(t *testing.T) {
	table := NewTable(TableConfig{
		Routes: map[string]Handler{
			"public/app.css": func(ctx context.Context, req *Request) Response {
				t.Fatal("static prefix must win over the route table")
				return Response{}
			},
		},
		StaticPrefix: "public",
		Static: func(ctx context.Context, req *Request) Response {
			return Response{Status: 200, Payload: []byte("body{}"), ContentType: "text/css"}
		},
	})
	d := New(table, logging.Nop())

	rec := serve(t, d, http.MethodGet, "/public/app.css", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/css", rec.Header().Get("Content-Type"))
	assert.Equal(t, "body{}", rec.Body.String())
}

func TestHTMLContentTypeWrittenRaw(t *testing.T) {
	table := NewTable(TableConfig{Routes: map[string]Handler{
		"index": func(ctx context.Context, req *Request) Response {
			return Response{Status: 200, Payload: "<h1>hi</h1>", ContentType: ContentTypeHTML}
		},
	}})
	d := New(table, logging.Nop())

	rec := serve(t, d, http.MethodGet, "/index", "")
	assert.Equal(t, ContentTypeHTML, rec.Header().Get("Content-Type"))
	assert.Equal(t, "<h1>hi</h1>", rec.Body.String())
}

func TestInvalidStatusDefaultsTo200(t *testing.T) {
	table := NewTable(TableConfig{Routes: map[string]Handler{
		"odd": func(ctx context.Context, req *Request) Response {
			return Response{Status: 42}
		},
	}})
	d := New(table, logging.Nop())

	rec := serve(t, d, http.MethodGet, "/odd", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestIntRejectsFractionalAndNonPositive(t *testing.T) {
	req := &Request{Payload: map[string]any{
		"frac": 1.5,
		"zero": float64(0),
		"neg":  float64(-2),
		"str":  "3",
	}}
	for _, key := range []string{"frac", "zero", "neg", "str", "absent"} {
		_, ok := req.Int(key)
		assert.False(t, ok, "key %q", key)
	}
}
