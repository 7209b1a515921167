package httputil

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
)

const (
	// HeaderCorrelationID is the canonical header used to track requests end-to-end.
	HeaderCorrelationID = "X-Correlation-ID"
	// HeaderRequestID is an accepted alternative header name used by some proxies.
	HeaderRequestID = "X-Request-ID"

	maxCorrelationIDLen = 128
)

type correlationKey struct{}

// WithCorrelationID stores the correlation ID in the context.
func WithCorrelationID(ctx context.Context, cid string) context.Context {
	return context.WithValue(ctx, correlationKey{}, cid)
}

// CorrelationID returns the correlation ID stored in the context, or "".
func CorrelationID(ctx context.Context) string {
	cid, _ := ctx.Value(correlationKey{}).(string)
	return cid
}

func normalizeCorrelationID(v string) string {
	if strings.ContainsAny(v, "\r\n") {
		return ""
	}
	v = strings.TrimSpace(v)
	if len(v) > maxCorrelationIDLen {
		v = v[:maxCorrelationIDLen]
	}
	return v
}

// CorrelationIDMiddleware propagates X-Correlation-ID (or X-Request-ID) and
// generates a UUID when the caller did not send one.
func CorrelationIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cid := normalizeCorrelationID(r.Header.Get(HeaderCorrelationID))
		if cid == "" {
			cid = normalizeCorrelationID(r.Header.Get(HeaderRequestID))
		}
		if cid == "" {
			cid = uuid.NewString()
		}

		w.Header().Set(HeaderCorrelationID, cid)
		next.ServeHTTP(w, r.WithContext(WithCorrelationID(r.Context(), cid)))
	})
}
