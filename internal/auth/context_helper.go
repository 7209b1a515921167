package auth

import "context"

type contextKey string

const (
	UserKey     contextKey = "user"
	UsernameKey contextKey = "username"
)

// WithUser injects the verified claims into the request context
func WithUser(ctx context.Context, claims *Claims) context.Context {
	return context.WithValue(ctx, UserKey, claims) //to avoid collisions - use custom key type
}

// UserFromContext retrieves the verified claims from the request context
func UserFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(UserKey).(*Claims)
	return claims, ok && claims != nil
}

// WithUsername injects the username into the request context
func WithUsername(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, UsernameKey, username)
}

// GetUsername retrieves the username from the request context
func GetUsername(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(UsernameKey).(string)
	return username, ok
}
