package dispatch

import (
	"context"
	"strings"
)

// TableConfig describes the routes a Table is built from.
type TableConfig struct {
	// Routes maps trimmed paths to their handlers.
	Routes map[string]Handler

	// NotFound handles any path with no route. Defaults to an empty 404.
	NotFound Handler

	// StaticPrefix, when non-empty, short-circuits table lookup: any path
	// under it goes to Static. Used for the asset-serving collaborator,
	// which is outside this service's core.
	StaticPrefix string
	Static       Handler
}

// Table is the immutable route table, constructed once at startup and
// injected into the dispatcher.
type Table struct {
	routes       map[string]Handler
	notFound     Handler
	staticPrefix string
	static       Handler
}

// NewTable copies the config into an immutable table, filling in defaults.
func NewTable(cfg TableConfig) *Table {
	t := &Table{
		routes:       make(map[string]Handler, len(cfg.Routes)),
		notFound:     cfg.NotFound,
		staticPrefix: strings.Trim(cfg.StaticPrefix, "/"),
		static:       cfg.Static,
	}
	for path, h := range cfg.Routes {
		t.routes[strings.Trim(path, "/")] = h
	}
	if t.notFound == nil {
		t.notFound = notFound
	}
	if t.static == nil {
		t.static = notFound
	}
	return t
}

// Resolve picks the handler for a trimmed path: static prefix first, then
// the route table, then the not-found fallback.
func (t *Table) Resolve(path string) Handler {
	if t.staticPrefix != "" && (path == t.staticPrefix || strings.HasPrefix(path, t.staticPrefix+"/")) {
		return t.static
	}
	if h, ok := t.routes[path]; ok {
		return h
	}
	return t.notFound
}

func notFound(ctx context.Context, req *Request) Response {
	return StatusOnly(404)
}
