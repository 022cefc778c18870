package middleware

import (
	"context"

	"github.com/baharkarakas/learnhub-backend/internal/models"
)

type accountKey struct{}

// WithAccount attaches the resolved account to ctx.
func WithAccount(ctx context.Context, a models.Account) context.Context {
	return context.WithValue(ctx, accountKey{}, a)
}

// AccountFrom returns the account the auth gate resolved for this request.
func AccountFrom(ctx context.Context) (models.Account, bool) {
	a, ok := ctx.Value(accountKey{}).(models.Account)
	return a, ok
}
