package movies

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/user/movieapi-go/apperror"
)

// Handlers provides the HTTP handlers for the movie catalogue.
type Handlers struct {
	service *Service
}

// NewHandlers creates movie Handlers.
func NewHandlers(service *Service) *Handlers {
	return &Handlers{service: service}
}

// HandleListMovies godoc
// @Summary List movies
// @Description Returns every movie in the catalogue.
// @Tags Movies
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Movie
// @Failure 401 {object} apperror.ErrorResponse "Missing or invalid token"
// @Failure 500 {object} apperror.ErrorResponse
// @Router /movies [get]
func (h *Handlers) HandleListMovies() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movies, err := h.service.List(r.Context())
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, movies)
	}
}

// HandleGetMovie godoc
// @Summary Get a movie
// @Description Returns a single movie by ID, falling back to an exact title match.
// @Tags Movies
// @Produce json
// @Security BearerAuth
// @Param movieID path string true "Movie ID or title"
// @Success 200 {object} models.Movie
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /movies/{movieID} [get]
func (h *Handlers) HandleGetMovie() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		movie, err := h.service.Get(r.Context(), chi.URLParam(r, "movieID"))
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, movie)
	}
}

// HandleGetGenre godoc
// @Summary Get a genre
// @Description Returns the name and description of a genre.
// @Tags Movies
// @Produce json
// @Security BearerAuth
// @Param name path string true "Genre name"
// @Success 200 {object} models.Genre
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /genres/{name} [get]
func (h *Handlers) HandleGetGenre() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		genre, err := h.service.Genre(r.Context(), chi.URLParam(r, "name"))
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, genre)
	}
}

// HandleGetDirector godoc
// @Summary Get a director
// @Description Returns a director's name, bio, and birth and death dates.
// @Tags Movies
// @Produce json
// @Security BearerAuth
// @Param name path string true "Director name"
// @Success 200 {object} models.Director
// @Failure 401 {object} apperror.ErrorResponse
// @Failure 404 {object} apperror.ErrorResponse
// @Router /directors/{name} [get]
func (h *Handlers) HandleGetDirector() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		director, err := h.service.Director(r.Context(), chi.URLParam(r, "name"))
		if err != nil {
			apperror.WriteError(w, r, err)
			return
		}
		apperror.WriteJSON(w, http.StatusOK, director)
	}
}

// RegisterRoutes mounts the catalogue routes on router.
// Authentication is the caller's concern (see server.NewRouter).
func (h *Handlers) RegisterRoutes(router chi.Router) {
	router.Get("/movies", h.HandleListMovies())
	router.Get("/movies/{movieID}", h.HandleGetMovie())
	router.Get("/genres/{name}", h.HandleGetGenre())
	router.Get("/directors/{name}", h.HandleGetDirector())
}
