package diag

import "context"

type contextKeys string

const requestIDKey contextKeys = "requestID"

// ContextWithRequestID returns a child context that carries the requestID
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDValue returns requestID taken from context or empty string
func RequestIDValue(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	if val, ok := ctx.Value(requestIDKey).(string); ok {
		return val
	}
	return ""
}
