// Package ctxutil carries request-scoped values through the service layer.
// It has no internal dependencies so any package may import it.
package ctxutil

import "context"

type surfaceKey struct{}

// WithSurface tags ctx with the user interface issuing the calls ("tui", "shell").
func WithSurface(ctx context.Context, surface string) context.Context {
	return context.WithValue(ctx, surfaceKey{}, surface)
}

// SurfaceFromContext returns the surface tag, or "unknown" if none was set.
func SurfaceFromContext(ctx context.Context) string {
	if v, ok := ctx.Value(surfaceKey{}).(string); ok && v != "" {
		return v
	}
	return "unknown"
}
