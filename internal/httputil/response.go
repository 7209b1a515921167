// Package httputil holds the JSON response writers shared by the HTTP layer.
package httputil

import (
	"encoding/json"
	"net/http"

	"tokenguard/internal/logger"
)

// MessageResponse is the body of every error response: {"message": "..."}.
type MessageResponse struct {
	Message string `json:"message"`
}

// WriteJSON writes data as a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		// headers are already sent, nothing left to report to the client
		logger.Error("failed to encode JSON response", "error", err)
	}
}

// WriteMessage writes {"message": msg} with the given status code.
func WriteMessage(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, MessageResponse{Message: msg})
}
