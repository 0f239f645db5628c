package api

import (
	"context"
	"time"
)

type keyType string

const (
	adminKey     keyType = "admin"
	requestIDKey keyType = "requestID"
)

// AdminCapability marks a request as coming from an unlocked admin UI. It
// gates editing affordances and is not a security boundary.
type AdminCapability struct {
	TokenID   string
	ExpiresAt time.Time
	// Open is set when no admin password is configured.
	Open bool
}

func ctxWithAdmin(ctx context.Context, capability AdminCapability) context.Context {
	return context.WithValue(ctx, adminKey, capability)
}

// AdminFromContext returns the capability attached by requireAdmin.
func AdminFromContext(ctx context.Context) (AdminCapability, bool) {
	capability, ok := ctx.Value(adminKey).(AdminCapability)
	return capability, ok
}

func ctxWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}
