package auth

import (
	"context"

	"github.com/fitlog/fitlog/internal/model"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

// principalKey is the context key for the authenticated principal.
const principalKey contextKey = "principal"

// ContextWithPrincipal adds the principal to the context.
func ContextWithPrincipal(ctx context.Context, p *model.Principal) context.Context {
	return context.WithValue(ctx, principalKey, p)
}

// PrincipalFromContext retrieves the principal from the context.
// Returns nil if the request is not authenticated.
func PrincipalFromContext(ctx context.Context) *model.Principal {
	p, ok := ctx.Value(principalKey).(*model.Principal)
	if !ok {
		return nil
	}
	return p
}

// MustPrincipalFromContext retrieves the principal from the context.
// Panics if absent (use only behind the session middleware).
func MustPrincipalFromContext(ctx context.Context) *model.Principal {
	p := PrincipalFromContext(ctx)
	if p == nil {
		panic("principal not found - ensure session middleware is applied")
	}
	return p
}
