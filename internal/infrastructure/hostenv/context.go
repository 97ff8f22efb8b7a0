package hostenv

import "context"

type callerKey struct{}

// WithCaller returns a copy of the context carrying the account invoking the
// current call.
func WithCaller(ctx context.Context, caller string) context.Context {
	return context.WithValue(ctx, callerKey{}, caller)
}

// CallerFromContext returns the caller carried by the context, if any.
func CallerFromContext(ctx context.Context) (string, bool) {
	caller, ok := ctx.Value(callerKey{}).(string)
	if !ok || len(caller) <= 0 {
		return "", false
	}
	return caller, true
}
