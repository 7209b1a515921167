// Package client keeps a token in persisted key-value storage and answers
// "who am I" and "am I logged in" from it locally. It never asks a server
// whether the token is valid: decoding a token is not trusting it.
package client

import (
	"context"
	"errors"

	"tokenguard/internal/clock"
	"tokenguard/internal/logger"
)

const (
	// TokenKey is the storage key the token lives under.
	TokenKey = "id_token"

	// RootPath is where Login navigates to.
	RootPath = "/"
	// LoginPath is where Logout navigates to.
	LoginPath = "/login"
)

// Accessor reads and writes the token through an injected Storage.
type Accessor struct {
	storage   Storage
	navigator Navigator
	clock     clock.Clocker
}

// Option configures an Accessor.
type Option func(*Accessor)

// WithNavigator sets the Navigator used by Login and Logout.
func WithNavigator(n Navigator) Option {
	return func(a *Accessor) { a.navigator = n }
}

// WithClock sets the time source for expiry checks.
func WithClock(c clock.Clocker) Option {
	return func(a *Accessor) { a.clock = c }
}

// NewAccessor returns an Accessor over storage. It navigates with a
// LogNavigator and reads the system clock unless told otherwise.
func NewAccessor(storage Storage, opts ...Option) *Accessor {
	a := &Accessor{
		storage:   storage,
		navigator: LogNavigator{},
		clock:     clock.New(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Token returns the stored token. Read failures count as no token.
func (a *Accessor) Token(ctx context.Context) (string, bool) {
	token, err := a.storage.Get(ctx, TokenKey)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			logger.Warn("failed to read token from storage", "error", err)
		}
		return "", false
	}
	return token, token != ""
}

// Profile decodes the stored token. A token that cannot be decoded is logged
// and reported as absent, the same way IsTokenExpired treats it.
func (a *Accessor) Profile(ctx context.Context) (Payload, bool) {
	token, ok := a.Token(ctx)
	if !ok {
		return nil, false
	}

	payload, err := Decode(token)
	if err != nil {
		logger.Error("error decoding token", "error", err)
		return nil, false
	}
	return payload, true
}

// IsTokenExpired reports whether token is past its exp claim. Tokens that
// cannot be decoded or carry no exp count as expired.
func (a *Accessor) IsTokenExpired(token string) bool {
	payload, err := Decode(token)
	if err != nil {
		logger.Error("error decoding token", "error", err)
		return true
	}

	exp, ok := payload.Expiry()
	if !ok {
		return true
	}
	return exp < a.clock.Now().Unix()
}

// LoggedIn is true when a token is stored and it has not expired.
func (a *Accessor) LoggedIn(ctx context.Context) bool {
	token, ok := a.Token(ctx)
	return ok && !a.IsTokenExpired(token)
}

// StoreToken writes token to storage.
func (a *Accessor) StoreToken(ctx context.Context, token string) error {
	return a.storage.Set(ctx, TokenKey, token)
}

// ClearToken removes the token from storage.
func (a *Accessor) ClearToken(ctx context.Context) error {
	return a.storage.Remove(ctx, TokenKey)
}

// Login stores token and navigates to RootPath. Nothing navigates if the write fails.
func (a *Accessor) Login(ctx context.Context, token string) error {
	if err := a.StoreToken(ctx, token); err != nil {
		return err
	}
	a.navigator.Navigate(ctx, RootPath)
	return nil
}

// Logout clears the token and navigates to LoginPath. Nothing navigates if the removal fails.
func (a *Accessor) Logout(ctx context.Context) error {
	if err := a.ClearToken(ctx); err != nil {
		return err
	}
	a.navigator.Navigate(ctx, LoginPath)
	return nil
}
