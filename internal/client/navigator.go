package client

import (
	"context"

	"tokenguard/internal/logger"
)

// Navigator performs the page change that follows login and logout.
type Navigator interface {
	Navigate(ctx context.Context, path string)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(ctx context.Context, path string)

// Navigate calls f(ctx, path).
func (f NavigatorFunc) Navigate(ctx context.Context, path string) {
	f(ctx, path)
}

// LogNavigator only reports the target, for callers without a page to change.
type LogNavigator struct{}

// Navigate implements Navigator.
func (LogNavigator) Navigate(_ context.Context, path string) {
	logger.Info("navigate", "path", path)
}
