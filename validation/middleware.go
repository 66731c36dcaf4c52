package validation

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/user/movieapi-go/apperror"
)

// maxBodyBytes caps request bodies read by the middleware.
const maxBodyBytes = 1 << 20

// Middleware validates the JSON body against rules and conditional rules.
// A body that is not a JSON object answers 400, any violation answers 422 with
// the full list, and otherwise the body is rewound for the next handler.
func Middleware(rules RuleSet, conditional ...Requires) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
			if err != nil {
				var tooLarge *http.MaxBytesError
				if errors.As(err, &tooLarge) {
					apperror.WriteError(w, r, apperror.NewBadRequestError("request body too large", err))
					return
				}
				apperror.WriteError(w, r, apperror.NewBadRequestError("failed to read request body", err))
				return
			}
			_ = r.Body.Close()

			body := map[string]interface{}{}
			if len(bytes.TrimSpace(raw)) > 0 {
				if err := json.Unmarshal(raw, &body); err != nil {
					apperror.WriteError(w, r, apperror.NewBadRequestError("request body must be a JSON object", err))
					return
				}
			}

			violations := rules.Validate(body)
			for _, c := range conditional {
				if v, ok := body[c.Trigger]; ok && v != nil {
					violations = append(violations, RuleSet{c.Rule}.Validate(body)...)
				}
			}
			if len(violations) > 0 {
				apperror.WriteError(w, r, apperror.NewValidationError(violations))
				return
			}

			r.Body = io.NopCloser(bytes.NewReader(raw))
			r.ContentLength = int64(len(raw))
			next.ServeHTTP(w, r)
		})
	}
}
