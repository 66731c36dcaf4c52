package users

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/movieapi-go/apperror"
)

// Handlers provides the HTTP handlers for user accounts.
// Routes under /users/{userID} expect auth.Bearer and auth.RequireOwner in front of them.
type Handlers struct {
	service *Service
}

// NewHandlers creates user Handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

func decode(r *http.Request, dst interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperror.NewBadRequestError("invalid request body", err)
	}
	return nil
}

// HandleRegister godoc
// @Summary Register a user
// @Description Creates a new account. The password is stored hashed and never returned.
// @Tags Users
// @Accept json
// @Produce json
// @Param user body users.CreateUserRequest true "New account"
// @Success 201 {object} models.User
// @Failure 400 {object} apperror.ErrorResponse "Username already exists"
// @Failure 422 {object} apperror.ValidationErrorResponse
// @Failure 500 {object} apperror.ErrorResponse
// @Router /users [post]
func (h *Handlers) HandleRegister() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req CreateUserRequest
		if err := decode(r, &req); err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		user, err := h.service.Register(r.Context(), req)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusCreated, user)
	}
}

// HandleGetUser godoc
// @Summary Get own user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 200 {object} models.User
// @Failure 400 {object} apperror.ErrorResponse "Permission denied"
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /users/{userID} [get]
func (h *Handlers) HandleGetUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.service.Get(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, user)
	}
}

// HandleUpdateUser godoc
// @Summary Update own user
// @Description Changes only the fields present in the body. A new Password needs the matching CurrentPassword.
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Param user body users.UpdateUserRequest true "Fields to change"
// @Success 200 {object} models.User
// @Failure 400 {object} apperror.ErrorResponse "Permission denied or username taken"
// @Failure 401 {object} apperror.ErrorResponse "Missing token or wrong current password"
// @Failure 404 {object} apperror.ErrorResponse
// @Failure 422 {object} apperror.ValidationErrorResponse
// @Router /users/{userID} [put]
func (h *Handlers) HandleUpdateUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpdateUserRequest
		if err := decode(r, &req); err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		user, err := h.service.Update(r.Context(), chi.URLParam(r, "userID"), req)
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, user)
	}
}

// HandleDeleteUser godoc
// @Summary Delete own user
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Success 200 {object} users.MessageResponse
// @Failure 400 {object} apperror.ErrorResponse "Permission denied"
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /users/{userID} [delete]
func (h *Handlers) HandleDeleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username, err := h.service.Delete(r.Context(), chi.URLParam(r, "userID"))
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, MessageResponse{Message: username + " was deleted."})
	}
}

// HandleAddFavorite godoc
// @Summary Add a favorite movie
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Param movieID path string true "Movie ID"
// @Success 200 {object} models.User
// @Failure 400 {object} apperror.ErrorResponse "Permission denied"
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /users/{userID}/FavoriteMovies/{movieID} [put]
func (h *Handlers) HandleAddFavorite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.service.AddFavorite(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "movieID"))
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, user)
	}
}

// HandleRemoveFavorite godoc
// @Summary Remove a favorite movie
// @Description Removes one occurrence of the movie from the favorites. Absent IDs are a no-op.
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Param userID path string true "User ID"
// @Param movieID path string true "Movie ID"
// @Success 200 {object} models.User
// @Failure 400 {object} apperror.ErrorResponse "Permission denied"
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /users/{userID}/FavoriteMovies/{movieID} [delete]
func (h *Handlers) HandleRemoveFavorite() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.service.RemoveFavorite(r.Context(), chi.URLParam(r, "userID"), chi.URLParam(r, "movieID"))
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, user)
	}
}
