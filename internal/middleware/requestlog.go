package middleware

import (
	"net/http"
	"time"

	"fn7-backend/internal/authctx"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/hashicorp/go-hclog"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags each request with an id (the caller's X-Request-ID or a
// new UUID), echoes it on the response and logs the outcome at debug.
func RequestLogger(log hclog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(RequestIDHeader)
			if id == "" {
				id = uuid.NewString()
			}
			w.Header().Set(RequestIDHeader, id)

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r.WithContext(authctx.WithRequestID(r.Context(), id)))

			log.Debug("request",
				"request_id", id,
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"token_present", r.Header.Get("Authorization") != "",
				"duration", time.Since(start),
			)
		})
	}
}
