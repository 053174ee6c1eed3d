package diag

import "context"

type contextKey string

const requestIDKey contextKey = "requestID"

// ContextWithRequestID attaches a correlation id to the context.
// The CLI front end mints a fresh id per dispatched operation so
// log entries of one operation can be grouped.
func ContextWithRequestID(ctx context.Context, requestID string) context.Context {
	return context.WithValue(ctx, requestIDKey, requestID)
}

// RequestIDValue returns the correlation id, empty string when unset
func RequestIDValue(ctx context.Context) string {
	if val, ok := ctx.Value(requestIDKey).(string); ok {
		return val
	}
	return ""
}
