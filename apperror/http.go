package apperror

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"
)

// WriteJSON serializes `data` to JSON and writes it with the given `status`.
// A nil `data` writes only the status line and headers.
func WriteJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// WriteError converts any error into the standardized error response.
// Errors that are not already an *AppError become an InternalError, and every
// 5xx is logged together with its underlying cause before the generic body is sent.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	appErr, ok := FromError(err)
	if !ok {
		appErr = NewInternalError("unexpected error", err)
	}

	if appErr.StatusCode() >= http.StatusInternalServerError {
		log.Ctx(r.Context()).Error().
			Err(appErr).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Msg("request failed")
	}

	WriteJSON(w, appErr.StatusCode(), appErr.ToResponse())
}
