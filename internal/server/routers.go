package server

import (
	"net/http"

	"github.com/rs/cors"

	"tokenguard/internal/auth"
	"tokenguard/internal/httputil"
)

// scopedRoute represents a single API route
type scopedRoute struct {
	Name        string
	Method      string
	Pattern     string
	HandlerFunc http.HandlerFunc
	Protected   bool // whether the route requires JWT
}

// Options holds router dependencies
type Options struct {
	Verifier           auth.Verifier
	CORSAllowedOrigins []string
}

// NewRouter initializes all routes and returns an http.Handler
func NewRouter(opts Options) http.Handler {
	routes := []scopedRoute{
		// Public routes
		{
			Name:        "Health",
			Method:      http.MethodGet,
			Pattern:     "/healthz",
			HandlerFunc: Health,
			Protected:   false,
		},

		// Protected routes
		{
			Name:        "CurrentUser",
			Method:      http.MethodGet,
			Pattern:     "/api/me",
			HandlerFunc: CurrentUser,
			Protected:   true,
		},
	}

	mux := http.NewServeMux()
	for _, route := range routes {
		var handler http.Handler = route.HandlerFunc
		handler = auth.MethodMiddleware(route.Method)(handler)

		// Wrap protected routes with JWT middleware
		if route.Protected {
			handler = auth.JWTMiddleware(opts.Verifier, handler)
		}

		mux.Handle(route.Pattern, handler)
	}

	corsHandler := cors.New(cors.Options{
		AllowedOrigins: opts.CORSAllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodOptions,
		},
		AllowedHeaders: []string{"Authorization", "Content-Type", httputil.HeaderCorrelationID},
		ExposedHeaders: []string{httputil.HeaderCorrelationID},
	})

	return httputil.CorrelationIDMiddleware(recoverer(corsHandler.Handler(mux)))
}
