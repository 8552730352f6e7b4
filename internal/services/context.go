package services

import "context"

type contextKey string

const (
	requestIDKey contextKey = "request_id"
	kindKey      contextKey = "kind"
	sourceKey    contextKey = "source"
)

// WithRequestID annotates context with the correlation identifier generated
// for one pipeline invocation.
func WithRequestID(ctx context.Context, id string) context.Context {
	if id == "" {
		return ctx
	}
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext returns the correlation identifier if present.
func RequestIDFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(requestIDKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithKind annotates context with the classified media kind.
func WithKind(ctx context.Context, kind string) context.Context {
	if kind == "" {
		return ctx
	}
	return context.WithValue(ctx, kindKey, kind)
}

// KindFromContext returns the media kind if present.
func KindFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(kindKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}

// WithSource annotates context with the source path being processed.
func WithSource(ctx context.Context, source string) context.Context {
	if source == "" {
		return ctx
	}
	return context.WithValue(ctx, sourceKey, source)
}

// SourceFromContext returns the source path if present.
func SourceFromContext(ctx context.Context) (string, bool) {
	if str, ok := ctx.Value(sourceKey).(string); ok && str != "" {
		return str, true
	}
	return "", false
}
