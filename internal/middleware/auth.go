package middleware

import (
	"net/http"

	"fn7-backend/internal/authctx"
	"fn7-backend/internal/httpjson"
	"fn7-backend/internal/sdk"
)

// WithToken puts the Authorization header, unparsed and unverified, on the
// request context. Verification is left to the SDK.
func WithToken(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := authctx.WithToken(r.Context(), r.Header.Get("Authorization"))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireSDK answers 500 "SDK not initialized" before any handler runs when
// the SDK failed to construct at startup.
func RequireSDK(h sdk.Handle) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !h.Initialized() {
				httpjson.Error(w, http.StatusInternalServerError, sdk.ErrNotInitialized.Error())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
