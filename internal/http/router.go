package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"

	"fn7-backend/internal/authctx"
	"fn7-backend/internal/config"
	"fn7-backend/internal/domain/user"
	"fn7-backend/internal/httpjson"
	"fn7-backend/internal/middleware"
	"fn7-backend/internal/sdk"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/hashicorp/go-hclog"
)

type RouterDeps struct {
	Cfg    config.Config
	Logger hclog.Logger
	SDK    sdk.Handle
	Users  *user.Repo
}

func NewRouter(d RouterDeps) http.Handler {
	log := d.Logger
	if log == nil {
		log = hclog.NewNullLogger()
	}
	users := d.Users
	if users == nil {
		users = user.NewRepo(d.SDK)
	}

	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.CORS(d.Cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpjson.Write(w, http.StatusOK, map[string]any{
			"status":          "ok",
			"sdk_initialized": d.SDK.Initialized(),
		})
	})

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.RequireSDK(d.SDK))
		api.Use(middleware.WithToken)

		// ===== Users =====
		api.Post("/search/users", func(w http.ResponseWriter, r *http.Request) {
			var in user.SearchInput
			if err := httpjson.Read(r, &in); err != nil {
				httpjson.Error(w, http.StatusBadRequest, "invalid json")
				return
			}

			out, err := users.Search(r.Context(), in, authctx.Token(r.Context()))
			if err != nil {
				fail(w, r, log, err)
				return
			}
			httpjson.Write(w, http.StatusOK, out)
		})

		api.Get("/users/{userID}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := userID(w, r)
			if !ok {
				return
			}

			out, err := users.Get(r.Context(), id, authctx.Token(r.Context()))
			if err != nil {
				fail(w, r, log, err)
				return
			}
			httpjson.Write(w, http.StatusOK, out)
		})

		api.Post("/users/{userID}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := userID(w, r)
			if !ok {
				return
			}
			in, ok := readWriteInput(w, r)
			if !ok {
				return
			}

			out, err := users.Create(r.Context(), id, in, authctx.Token(r.Context()))
			if err != nil {
				fail(w, r, log, err)
				return
			}
			httpjson.Write(w, http.StatusOK, out)
		})

		api.Put("/users/{userID}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := userID(w, r)
			if !ok {
				return
			}
			in, ok := readWriteInput(w, r)
			if !ok {
				return
			}

			out, err := users.Update(r.Context(), id, in, authctx.Token(r.Context()))
			if err != nil {
				fail(w, r, log, err)
				return
			}
			httpjson.Write(w, http.StatusOK, out)
		})

		api.Delete("/users/{userID}", func(w http.ResponseWriter, r *http.Request) {
			id, ok := userID(w, r)
			if !ok {
				return
			}

			if err := users.Delete(r.Context(), id, authctx.Token(r.Context())); err != nil {
				fail(w, r, log, err)
				return
			}
			httpjson.Write(w, http.StatusOK, map[string]string{"status": "deleted"})
		})

		// ===== Auth =====
		api.Post("/auth/custom-token", func(w http.ResponseWriter, r *http.Request) {
			tok, err := users.CustomToken(r.Context(), authctx.Token(r.Context()))
			if err != nil {
				fail(w, r, log, err)
				return
			}
			httpjson.Write(w, http.StatusOK, map[string]string{"token": tok})
		})
	})

	return r
}

// userID returns the decoded path id. chi matches on RawPath when Go keeps
// one (%2F, non-canonical escapes like %41), otherwise on the decoded Path.
func userID(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "userID")
	if r.URL.RawPath == "" {
		return raw, true
	}
	id, err := url.PathUnescape(raw)
	if err != nil {
		httpjson.Error(w, http.StatusBadRequest, "invalid user id")
		return "", false
	}
	return id, true
}

func readWriteInput(w http.ResponseWriter, r *http.Request) (user.WriteInput, bool) {
	var in user.WriteInput
	if err := httpjson.Read(r, &in); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) && typeErr.Field == "data" {
			httpjson.Error(w, http.StatusBadRequest, "data must be an object")
			return in, false
		}
		httpjson.Error(w, http.StatusBadRequest, "invalid json")
		return in, false
	}
	in.Normalize()
	return in, true
}

func fail(w http.ResponseWriter, r *http.Request, log hclog.Logger, err error) {
	status, msg := mapUserError(err)
	reqID, _ := authctx.RequestID(r.Context())
	log.Error("request failed", "request_id", reqID, "method", r.Method, "path", r.URL.Path, "error", msg)
	httpjson.Error(w, status, msg)
}

// mapUserError keeps the taxonomy flat: every failure is a 500 carrying the message.
func mapUserError(err error) (int, string) {
	if err == nil {
		return http.StatusInternalServerError, "unknown error"
	}
	if user.IsErrNotInitialized(err) {
		return http.StatusInternalServerError, sdk.ErrNotInitialized.Error()
	}
	if f, ok := user.AsFault(err); ok {
		return http.StatusInternalServerError, f.Message
	}
	return http.StatusInternalServerError, err.Error()
}
