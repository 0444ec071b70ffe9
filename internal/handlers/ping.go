package handlers

import (
	"context"

	"github.com/willimpizza/backend/internal/dispatch"
)

// Ping is the liveness probe: 200 with an empty body for any method.
func Ping(ctx context.Context, req *dispatch.Request) dispatch.Response {
	return dispatch.StatusOnly(200)
}
