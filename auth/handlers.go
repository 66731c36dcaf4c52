package auth

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/user/movieapi-go/apperror"
	"github.com/user/movieapi-go/metrics"
)

// loginFailedMessage is the only thing a failed login reveals.
const loginFailedMessage = "Incorrect username or password."

// Handlers provides the login endpoint.
type Handlers struct {
	credentials CredentialVerifier
	tokens      *TokenService
}

// NewHandlers creates a new Handlers instance
func NewHandlers(credentials CredentialVerifier, tokens *TokenService) *Handlers {
	return &Handlers{credentials: credentials, tokens: tokens}
}

// HandleLogin godoc
// @Summary User Login
// @Description Checks a username/password pair and returns a signed bearer token valid for 7 days.
// @Description Credentials are read from the JSON body, or from the Username/Password query parameters when the body is empty.
// @Tags Auth
// @Accept json
// @Produce json
// @Param loginBody body auth.LoginRequest false "User login credentials"
// @Param Username query string false "Username (alternative to the body)"
// @Param Password query string false "Password (alternative to the body)"
// @Success 200 {object} auth.LoginResponse "Login successful"
// @Failure 400 {object} apperror.ErrorResponse "Incorrect username or password"
// @Failure 429 {string} string "Too many login attempts"
// @Failure 500 {object} apperror.ErrorResponse "Internal Server Error"
// @Router /login [post]
func (h *Handlers) HandleLogin() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req, err := decodeLogin(r)
		if err != nil {
			apperror.WriteError(w, r, apperror.NewBadRequestError("invalid request body", err))
			return
		}

		user, err := h.credentials.VerifyCredentials(r.Context(), req.Username, req.Password)
		if err != nil {
			if errors.Is(err, ErrInvalidCredentials) {
				metrics.RecordAuthFailure("bad_credentials")
				apperror.WriteError(w, r, apperror.NewBadRequestError(loginFailedMessage, nil))
				return
			}
			apperror.WriteError(w, r, apperror.NewDatabaseError("failed to verify credentials", err))
			return
		}

		token, _, err := h.tokens.Issue(user)
		if err != nil {
			apperror.WriteError(w, r, apperror.NewInternalError("failed to issue token", err))
			return
		}

		log.Ctx(r.Context()).Info().Str("user_id", user.ID).Msg("user logged in")
		apperror.WriteJSON(w, http.StatusOK, LoginResponse{
			Username: user.Username,
			UserID:   user.ID,
			Token:    token,
			User:     user,
		})
	}
}

// decodeLogin reads credentials from the JSON body, falling back to the query string when the body is empty.
func decodeLogin(r *http.Request) (LoginRequest, error) {
	var req LoginRequest
	if r.Body != nil {
		defer r.Body.Close()
		err := json.NewDecoder(io.LimitReader(r.Body, 1<<20)).Decode(&req)
		if err != nil && !errors.Is(err, io.EOF) {
			return req, err
		}
	}
	if req.Username == "" && req.Password == "" {
		q := r.URL.Query()
		req.Username = q.Get("Username")
		req.Password = q.Get("Password")
	}
	return req, nil
}
