package authctx

import (
	"context"
)

type ctxKey string

const (
	tokenKey     ctxKey = "token"
	requestIDKey ctxKey = "requestID"
)

// WithToken stores the raw Authorization header value.
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, tokenKey, token)
}

// Token returns the raw Authorization value; "" when the request had none.
func Token(ctx context.Context) string {
	v, _ := ctx.Value(tokenKey).(string)
	return v
}

func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

func RequestID(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok && id != ""
}
