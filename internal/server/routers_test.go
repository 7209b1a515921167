package server

import (
	"context"
	"encoding/json"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tokenguard/internal/auth"
	"tokenguard/internal/httputil"
)

const testSecret = "router-test-secret"

func signed(t *testing.T, username string, ttl time.Duration) string {
	t.Helper()
	return signedWith(t, username, ttl, []byte(testSecret))
}

func signedWith(t *testing.T, username string, ttl time.Duration, key []byte) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}).SignedString(key)
	require.NoError(t, err)
	return token
}

func newTestRouter() http.Handler {
	return NewRouter(Options{
		Verifier:           auth.NewJWTManager([]byte(testSecret)),
		CORSAllowedOrigins: []string{"https://app.example"},
	})
}

// Helper: do HTTP request with optional Authorization header
func doRequest(h http.Handler, method, path, authHeader string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestRouter_ProtectedRoute(t *testing.T) {
	router := newTestRouter()

	tests := []struct {
		name         string
		authHeader   func(t *testing.T) string
		expectStatus int
		expectBody   string
	}{
		{
			name:         "no authorization header",
			authHeader:   func(*testing.T) string { return "" },
			expectStatus: http.StatusUnauthorized,
			expectBody:   `{"message":"Access token is missing"}`,
		},
		{
			name:         "bad token",
			authHeader:   func(*testing.T) string { return "Bearer badtoken" },
			expectStatus: http.StatusForbidden,
			expectBody:   `{"message":"Invalid or expired token"}`,
		},
		{
			name:         "expired token",
			authHeader:   func(t *testing.T) string { return "Bearer " + signed(t, "alice", -time.Minute) },
			expectStatus: http.StatusForbidden,
			expectBody:   `{"message":"Invalid or expired token"}`,
		},
		{
			name:         "valid token",
			authHeader:   func(t *testing.T) string { return "Bearer " + signed(t, "alice", time.Minute) },
			expectStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := doRequest(router, http.MethodGet, "/api/me", tt.authHeader(t))

			require.Equal(t, tt.expectStatus, rr.Code)
			assert.NotEmpty(t, rr.Header().Get(httputil.HeaderCorrelationID))
			if tt.expectBody != "" {
				assert.JSONEq(t, tt.expectBody, rr.Body.String())
				return
			}

			var me MeResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&me))
			assert.Equal(t, "alice", me.Username)
			assert.InDelta(t, time.Now().Add(time.Minute).Unix(), me.ExpiresAt, 2)
		})
	}
}

func TestRouter_PublicRoute(t *testing.T) {
	rr := doRequest(newTestRouter(), http.MethodGet, "/healthz", "")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rr.Body.String())
}

func TestRouter_MethodNotAllowed(t *testing.T) {
	rr := doRequest(newTestRouter(), http.MethodPost, "/healthz", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/api/me", nil)
	req.Header.Set("Origin", "https://app.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	req.Header.Set("Access-Control-Request-Headers", "Authorization")
	rr := httptest.NewRecorder()

	newTestRouter().ServeHTTP(rr, req)

	assert.Equal(t, "https://app.example", rr.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rr.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRouter_CORSRejectsUnknownOrigin(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example")
	rr := httptest.NewRecorder()

	newTestRouter().ServeHTTP(rr, req)

	assert.Empty(t, rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestRecoverer(t *testing.T) {
	h := recoverer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("kaboom")
	}))

	rr := doRequest(h, http.MethodGet, "/", "")

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"message":"Internal server error"}`, rr.Body.String())
}

func TestServe_ShutsDownOnCancel(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := NewHTTPServer(ln.Addr().String(), newTestRouter())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- Serve(ctx, srv, ln) }()

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + ln.Addr().String() + "/healthz")
		if err != nil {
			return false
		}
		resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 20*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}
