// Package ctxutil provides context utilities that can be safely imported anywhere.
// This package has no internal dependencies to avoid import cycles.
package ctxutil

import "context"

// SessionKey is the context key for the interactive session ID.
type SessionKey struct{}

// WithSessionID returns a context with the session ID embedded.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, SessionKey{}, sessionID)
}

// SessionFromContext returns the session ID from context, or empty string if not set.
func SessionFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(SessionKey{}).(string); ok {
		return v
	}
	return ""
}
