// Package store declares the persistence boundary of the API.
// Handlers and services only see these interfaces, so the document database
// can be swapped (MongoDB, PostgreSQL, or the in-memory Memory store used by
// tests) without touching the HTTP layer.
package store

import (
	"context"
	"errors"

	"github.com/user/movieapi-go/models"
)

var (
	// ErrNotFound is returned when no document matches the lookup.
	ErrNotFound = errors.New("store: not found")
	// ErrDuplicateUsername is returned when a create or update would break username uniqueness.
	ErrDuplicateUsername = errors.New("store: username already exists")
)

// MovieStore is the read side of the movie catalogue plus bulk seeding.
type MovieStore interface {
	ListMovies(ctx context.Context) ([]models.Movie, error)
	GetMovie(ctx context.Context, id string) (*models.Movie, error)
	GetMovieByTitle(ctx context.Context, title string) (*models.Movie, error)
	// FindGenre returns the Genre embedded in the first movie whose genre has this name.
	FindGenre(ctx context.Context, name string) (*models.Genre, error)
	// FindDirector returns the Director embedded in the first movie directed by name.
	FindDirector(ctx context.Context, name string) (*models.Director, error)
	InsertMovies(ctx context.Context, movies []models.Movie) (int, error)
}

// UserStore manages user accounts and their favorites.
type UserStore interface {
	// CreateUser inserts the user and returns it with its assigned ID.
	CreateUser(ctx context.Context, user *models.User) (*models.User, error)
	GetUser(ctx context.Context, id string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, update models.UserUpdate) (*models.User, error)
	DeleteUser(ctx context.Context, id string) error
	// AddFavorite appends movieID to the end of the user's favorites.
	AddFavorite(ctx context.Context, userID, movieID string) (*models.User, error)
	// RemoveFavorite removes the last occurrence of movieID; absent ids are a no-op.
	RemoveFavorite(ctx context.Context, userID, movieID string) (*models.User, error)
}

// Store is everything the server needs from a backend.
type Store interface {
	MovieStore
	UserStore
	Ping(ctx context.Context) error
	Close(ctx context.Context) error
}
