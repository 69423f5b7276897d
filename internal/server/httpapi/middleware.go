package httpapi

import (
	"context"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/ikhlashousing/propertycms/internal/common"
	"github.com/ikhlashousing/propertycms/internal/logging"
)

type ctxKey string

const credentialIDKey ctxKey = "credentialID"

func credentialIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(credentialIDKey).(string)
	return id, ok
}

// requireAdmin rejects requests without a valid bearer access token.
func (h *Handler) requireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get(common.AuthorizationHeaderName)
		accessToken, found := strings.CutPrefix(header, common.BearerPrefix)
		if !found || accessToken == "" {
			respondMessage(w, http.StatusUnauthorized, "missing token")
			return
		}

		id, err := h.auth.Authenticate(r.Context(), accessToken)
		if err != nil {
			respondMessage(w, http.StatusUnauthorized, "Unauthorized")
			return
		}

		ctx := context.WithValue(r.Context(), credentialIDKey, id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// auditMutation records which administrator changed the catalog.
func (h *Handler) auditMutation(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		id, _ := credentialIDFromContext(r.Context())
		h.logger.Info(r.Context(), "catalog change",
			"credential_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
		)
	})
}

// requestLogger logs one line per request once the response is written.
func requestLogger(logger logging.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			logger.Info(r.Context(), "request",
				"request_id", middleware.GetReqID(r.Context()),
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
			)
		})
	}
}

// cors answers preflight requests and sets the allow headers for origins in
// allowed. "*" allows any origin.
func cors(allowed []string) func(http.Handler) http.Handler {
	wildcard := slices.Contains(allowed, "*")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			origin := r.Header.Get("Origin")
			if origin != "" && (wildcard || slices.Contains(allowed, origin)) {
				h := w.Header()
				if wildcard {
					h.Set("Access-Control-Allow-Origin", "*")
				} else {
					h.Set("Access-Control-Allow-Origin", origin)
					h.Add("Vary", "Origin")
				}
				h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
				h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
			}
			if r.Method == http.MethodOptions && r.Header.Get("Access-Control-Request-Method") != "" {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
