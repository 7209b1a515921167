package auth

import (
	"net/http"
	"strings"

	"tokenguard/internal/httputil"
	"tokenguard/internal/logger"
)

const (
	MsgTokenMissing = "Access token is missing"
	MsgTokenInvalid = "Invalid or expired token"
)

// JWTMiddleware validates the bearer token and injects the claims into the request context.
// A request without a token gets 401, any verification failure gets 403.
func JWTMiddleware(verifier Verifier, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r.Header.Get("Authorization"))
		if token == "" {
			httputil.WriteMessage(w, http.StatusUnauthorized, MsgTokenMissing)
			return
		}

		claims, err := verifier.Verify(token)
		if err != nil {
			// the cause stays in the logs, the caller only sees the generic message
			logger.Debug("token verification failed",
				"error", err,
				"correlation_id", httputil.CorrelationID(r.Context()))
			httputil.WriteMessage(w, http.StatusForbidden, MsgTokenInvalid)
			return
		}

		ctx := WithUser(r.Context(), claims)
		ctx = WithUsername(ctx, claims.Username)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// bearerToken returns the second whitespace separated field of an
// Authorization header ("Bearer <token>"), or "" when there is none.
func bearerToken(header string) string {
	parts := strings.Fields(header)
	if len(parts) < 2 {
		return ""
	}
	return parts[1]
}

// MethodMiddleware enforces allowed HTTP methods for a handler
func MethodMiddleware(allowedMethods ...string) func(http.Handler) http.Handler {
	methods := make(map[string]struct{}, len(allowedMethods))
	for _, m := range allowedMethods {
		methods[m] = struct{}{}
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if _, ok := methods[r.Method]; !ok {
				httputil.WriteMessage(w, http.StatusMethodNotAllowed, "Method not allowed")
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
