// Package server wires the services, handlers and middleware into one chi router
// and runs the HTTP server with graceful shutdown.
package server

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/user/movieapi-go/apperror"
	"github.com/user/movieapi-go/auth"
	"github.com/user/movieapi-go/config"
	_ "github.com/user/movieapi-go/docs" // Generated Swagger docs
	"github.com/user/movieapi-go/logging"
	"github.com/user/movieapi-go/metrics"
	"github.com/user/movieapi-go/movies"
	"github.com/user/movieapi-go/store"
	"github.com/user/movieapi-go/users"
	"github.com/user/movieapi-go/validation"
)

const usageMessage = `This is the movie API. Available endpoints:

1. "/" displays this message
2. "/login" exchanges a username and password for a bearer token
3. "/movies" returns every movie (bearer token required)
4. "/documentation.html" returns the full API documentation
5. "/swagger/index.html" serves the interactive API reference
`

// Deps is everything NewRouter needs.
type Deps struct {
	Store  store.Store
	Auth   *config.AuthConfig
	Server *config.ServerConfig
	// AccessLog receives one line per request. Nil disables the access log.
	AccessLog io.Writer
}

// NewRouter builds the full HTTP handler.
func NewRouter(deps Deps) http.Handler {
	tokens := auth.NewTokenService(*deps.Auth)
	bearer := auth.Bearer(auth.NewJWTStrategy(tokens, deps.Store))
	authHandlers := auth.NewHandlers(auth.NewLocalStrategy(deps.Store), tokens)
	movieHandlers := movies.NewHandlers(movies.NewService(deps.Store))
	userHandlers := users.NewHandlers(users.NewService(deps.Store))

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger)
	if deps.AccessLog != nil {
		r.Use(logging.AccessLog(deps.AccessLog))
	}
	r.Use(logging.Recoverer)
	r.Use(metrics.Instrument)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: deps.Server.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = io.WriteString(w, usageMessage)
	})
	r.Get("/healthz", handleHealth(deps.Store))
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.With(loginLimiter(deps.Auth.LoginRateLimit)).Post("/login", authHandlers.HandleLogin())
	r.With(validation.Middleware(validation.CreateUserRules)).Post("/users", userHandlers.HandleRegister())

	r.Group(func(r chi.Router) {
		r.Use(bearer)

		movieHandlers.RegisterRoutes(r)

		r.Route("/users/{userID}", func(r chi.Router) {
			r.Use(auth.RequireOwner("userID"))

			r.Get("/", userHandlers.HandleGetUser())
			r.With(validation.Middleware(validation.UpdateUserRules, validation.UpdateUserConditionalRules...)).
				Put("/", userHandlers.HandleUpdateUser())
			r.Delete("/", userHandlers.HandleDeleteUser())
			r.Put("/FavoriteMovies/{movieID}", userHandlers.HandleAddFavorite())
			r.Delete("/FavoriteMovies/{movieID}", userHandlers.HandleRemoveFavorite())
		})
	})

	if deps.Server.StaticDir != "" {
		r.Handle("/*", http.FileServer(http.Dir(deps.Server.StaticDir)))
	}

	return r
}

// loginLimiter caps login attempts per client IP per minute.
func loginLimiter(perMinute int) func(http.Handler) http.Handler {
	return httprate.Limit(perMinute, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			metrics.RecordAuthFailure("rate_limited")
			apperror.WriteJSON(w, http.StatusTooManyRequests, apperror.ErrorResponse{Error: "Too many login attempts, try again later."})
		}),
	)
}

// HealthResponse is the /healthz body.
type HealthResponse struct {
	Status string `json:"status" example:"ok"`
}

// handleHealth godoc
// @Summary Health check
// @Description Reports whether the store answers a ping.
// @Tags Health
// @Produce json
// @Success 200 {object} server.HealthResponse
// @Failure 503 {object} server.HealthResponse
// @Router /healthz [get]
func handleHealth(s store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := s.Ping(ctx); err != nil {
			apperror.WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable"})
			return
		}
		apperror.WriteJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}
