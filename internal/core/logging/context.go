package logging

import "context"

type contextKey string

const (
	loadIDKey contextKey = "load_id"
	sourceKey contextKey = "source"
)

// WithLoadID tags the context with the ID of a file load.
func WithLoadID(ctx context.Context, loadID string) context.Context {
	return context.WithValue(ctx, loadIDKey, loadID)
}

// WithSource tags the context with the name of the input being processed.
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey, source)
}

// GetLoadID retrieves the load ID from the context.
// Returns empty string if not present.
func GetLoadID(ctx context.Context) string {
	if id, ok := ctx.Value(loadIDKey).(string); ok {
		return id
	}
	return ""
}

// GetSource retrieves the input name from the context.
// Returns empty string if not present.
func GetSource(ctx context.Context) string {
	if s, ok := ctx.Value(sourceKey).(string); ok {
		return s
	}
	return ""
}
