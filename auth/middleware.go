package auth

import (
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/user/movieapi-go/apperror"
	"github.com/user/movieapi-go/metrics"
)

// Bearer rejects any request without a valid `Authorization: Bearer <token>`
// header with 401 before the next handler runs. On success the resolved user
// is stored in the request context (see UserFromContext).
func Bearer(verifier TokenVerifier) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, r, "missing_header", "Authorization header is missing", nil)
				return
			}

			scheme, token, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "bearer") || strings.TrimSpace(token) == "" {
				unauthorized(w, r, "malformed_header", "Authorization header format must be Bearer {token}", nil)
				return
			}

			user, err := verifier.VerifyToken(r.Context(), strings.TrimSpace(token))
			if err != nil {
				if !errors.Is(err, ErrInvalidToken) {
					// Store failures are not the caller's fault.
					apperror.WriteError(w, r, apperror.NewDatabaseError("failed to resolve token subject", err))
					return
				}
				unauthorized(w, r, "invalid_token", "Unauthorized", err)
				return
			}

			next.ServeHTTP(w, r.WithContext(NewContextWithUser(r.Context(), user)))
		})
	}
}

func unauthorized(w http.ResponseWriter, r *http.Request, reason, message string, cause error) {
	metrics.RecordAuthFailure(reason)
	log.Ctx(r.Context()).Debug().Err(cause).Str("reason", reason).Msg("bearer authentication rejected")
	w.Header().Set("WWW-Authenticate", `Bearer realm="movieapi"`)
	apperror.WriteError(w, r, apperror.NewAuthError(message, cause))
}

// RequireOwner only lets the request through when the authenticated user's ID
// equals the URL parameter `param`. A mismatch answers 400 "Permission denied."
// and the wrapped handler never runs, so nothing is mutated.
// It must be mounted after Bearer.
func RequireOwner(param string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, ok := UserFromContext(r.Context())
			if !ok {
				apperror.WriteError(w, r, apperror.NewAuthError("Unauthorized", nil))
				return
			}
			if user.ID != chi.URLParam(r, param) {
				metrics.RecordAuthFailure("permission_denied")
				apperror.WriteError(w, r, apperror.NewPermissionDeniedError("Permission denied."))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
