// Package movies serves the read-only movie catalogue: the movie list,
// single movies, and the genre and director sub-documents embedded in them.
package movies

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/movieapi-go/apperror"
	"github.com/user/movieapi-go/models"
	"github.com/user/movieapi-go/store"
)

// Service provides movie lookups on top of a MovieStore.
type Service struct {
	store store.MovieStore
}

// NewService creates a new movie Service.
func NewService(s store.MovieStore) *Service {
	return &Service{store: s}
}

// List returns every movie.
func (s *Service) List(ctx context.Context) ([]models.Movie, error) {
	movies, err := s.store.ListMovies(ctx)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to list movies", err)
	}
	if movies == nil {
		movies = []models.Movie{}
	}
	return movies, nil
}

// Get returns a movie by ID, or by exact title when no ID matches.
// Older clients address movies by title, newer ones by ID.
func (s *Service) Get(ctx context.Context, idOrTitle string) (*models.Movie, error) {
	movie, err := s.store.GetMovie(ctx, idOrTitle)
	if err == nil {
		return movie, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, apperror.NewDatabaseError("failed to get movie", err)
	}

	movie, err = s.store.GetMovieByTitle(ctx, idOrTitle)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Movie %s was not found.", idOrTitle), nil)
		}
		return nil, apperror.NewDatabaseError("failed to get movie by title", err)
	}
	return movie, nil
}

// Genre returns the genre named name.
func (s *Service) Genre(ctx context.Context, name string) (*models.Genre, error) {
	genre, err := s.store.FindGenre(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Genre %s was not found.", name), nil)
		}
		return nil, apperror.NewDatabaseError("failed to find genre", err)
	}
	return genre, nil
}

// Director returns the director named name.
func (s *Service) Director(ctx context.Context, name string) (*models.Director, error) {
	director, err := s.store.FindDirector(ctx, name)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NewNotFoundError(fmt.Sprintf("Director %s was not found.", name), nil)
		}
		return nil, apperror.NewDatabaseError("failed to find director", err)
	}
	return director, nil
}
