package server

import (
	"net/http"
	"runtime/debug"

	"tokenguard/internal/httputil"
	"tokenguard/internal/logger"
)

func recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rvr := recover(); rvr != nil {
				if rvr == http.ErrAbortHandler {
					panic(rvr)
				}

				logger.Error("panic on the server",
					"because", rvr,
					"stack", string(debug.Stack()),
					"correlation_id", httputil.CorrelationID(r.Context()))
				httputil.WriteMessage(w, http.StatusInternalServerError, "Internal server error")
			}
		}()

		next.ServeHTTP(w, r)
	})
}
