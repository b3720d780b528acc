// Package principal carries the authenticated caller through context.Context
// so services and repositories never read credentials from globals.
package principal

import (
	"context"

	"github.com/google/uuid"
)

type Principal struct {
	UserID   uuid.UUID
	UserName string
	Role     string
	Token    string
}

type ctxKey struct{}

func With(ctx context.Context, p Principal) context.Context {
	return context.WithValue(ctx, ctxKey{}, p)
}

// From: ok=false kalau request tanpa auth (mis. AUTH dimatikan di dev).
func From(ctx context.Context) (Principal, bool) {
	p, ok := ctx.Value(ctxKey{}).(Principal)
	return p, ok
}

// UserIDString untuk field log; "" kalau anonim.
func UserIDString(ctx context.Context) string {
	if p, ok := From(ctx); ok {
		return p.UserID.String()
	}
	return ""
}
