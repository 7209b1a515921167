package server

import (
	"net/http"

	"tokenguard/internal/auth"
	"tokenguard/internal/httputil"
)

// MeResponse is returned by /api/me
type MeResponse struct {
	Username  string `json:"username"`
	ExpiresAt int64  `json:"exp,omitempty"`
}

// Health handles GET /healthz
func Health(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// CurrentUser handles GET /api/me and echoes the verified claims
func CurrentUser(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.UserFromContext(r.Context())
	if !ok {
		httputil.WriteMessage(w, http.StatusInternalServerError, "user not found in context")
		return
	}

	resp := MeResponse{Username: claims.Username}
	if claims.ExpiresAt != nil {
		resp.ExpiresAt = claims.ExpiresAt.Unix()
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}
