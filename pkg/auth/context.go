package auth

import (
	"context"
	"errors"
)

// UserContext represents user information extracted from a validated token
type UserContext struct {
	UserID string
	Email  string
	Name   string
}

type contextKey string

const userContextKey contextKey = "user"

// ErrNoUserInContext is returned when the request context carries no user
var ErrNoUserInContext = errors.New("no user in context")

// SetUserInContext stores the user context in the request context
func SetUserInContext(ctx context.Context, user *UserContext) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}

// GetUserFromContext retrieves the user context from the request context
func GetUserFromContext(ctx context.Context) (*UserContext, error) {
	user, ok := ctx.Value(userContextKey).(*UserContext)
	if !ok || user == nil {
		return nil, ErrNoUserInContext
	}
	return user, nil
}
