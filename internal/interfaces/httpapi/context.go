package httpapi

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

type contextKey string

const (
	requestIDContextKey contextKey = "request_id"
	requestIDHeader                = "X-Request-ID"
	maxRequestIDLength             = 128
)

func withRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDContextKey, id)
}

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDContextKey).(string)
	return id
}

// resolveRequestID keeps a caller supplied id when it is sane, otherwise it
// mints a new uuid.
func resolveRequestID(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw != "" && len(raw) <= maxRequestIDLength && !strings.ContainsAny(raw, " \t\r\n") {
		return raw
	}
	return uuid.NewString()
}
