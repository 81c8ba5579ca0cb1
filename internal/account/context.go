package account

import (
	"context"
)

type ctxKey string

const contextAccountKey ctxKey = "account"

// FromContext returns the authenticated account stored by the auth
// middleware.
func FromContext(ctx context.Context) (*Account, bool) {
	if ctx == nil {
		return nil, false
	}
	acc, ok := ctx.Value(contextAccountKey).(*Account)
	return acc, ok
}

func NewContext(ctx context.Context, acc *Account) context.Context {
	return context.WithValue(ctx, contextAccountKey, acc)
}
