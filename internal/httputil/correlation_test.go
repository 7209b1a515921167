package httputil

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCorrelationIDMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		check   func(t *testing.T, cid string)
	}{
		{
			name:    "keeps caller correlation id",
			headers: map[string]string{HeaderCorrelationID: "abc-123"},
			check:   func(t *testing.T, cid string) { assert.Equal(t, "abc-123", cid) },
		},
		{
			name:    "falls back to request id",
			headers: map[string]string{HeaderRequestID: "req-9"},
			check:   func(t *testing.T, cid string) { assert.Equal(t, "req-9", cid) },
		},
		{
			name:    "generates uuid when absent",
			headers: nil,
			check: func(t *testing.T, cid string) {
				_, err := uuid.Parse(cid)
				assert.NoError(t, err)
			},
		},
		{
			name:    "truncates long ids",
			headers: map[string]string{HeaderCorrelationID: strings.Repeat("x", 300)},
			check:   func(t *testing.T, cid string) { assert.Len(t, cid, maxCorrelationIDLen) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var seen string
			h := CorrelationIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = CorrelationID(r.Context())
			}))

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			require.NotEmpty(t, seen)
			assert.Equal(t, seen, rr.Header().Get(HeaderCorrelationID))
			tt.check(t, seen)
		})
	}
}
