package auth

import (
	"context"
	"fmt"
)

type ctxKey int

const userCtxKey ctxKey = iota + 1

// ContextWithUser returns a new context carrying the resolved user ID.
//
//nolint:ireturn // returning context.Context is intentional
func ContextWithUser(baseCtx context.Context, userID string) context.Context {
	return context.WithValue(baseCtx, userCtxKey, userID)
}

// UserFromContext extracts the user ID attached by RequireToken.
func UserFromContext(ctx context.Context) (string, error) {
	val := ctx.Value(userCtxKey)
	if val == nil {
		return "", fmt.Errorf("%w: no user ID in context", ErrNoToken)
	}

	userID, ok := val.(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID is not a non-empty string: %T", val)
	}

	return userID, nil
}
