package store

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/user/movieapi-go/models"
)

// Memory is an in-process Store. Every read returns a copy, so callers can
// never mutate stored state behind the mutex.
type Memory struct {
	mu         sync.RWMutex
	movies     []models.Movie
	users      map[string]*models.User
	byUsername map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{
		users:      make(map[string]*models.User),
		byUsername: make(map[string]string),
	}
}

func copyUser(u *models.User) *models.User {
	c := *u
	c.FavoriteMovies = append([]string{}, u.FavoriteMovies...)
	if u.Birthday != nil {
		b := *u.Birthday
		c.Birthday = &b
	}
	return &c
}

// Ping always succeeds.
func (m *Memory) Ping(context.Context) error { return nil }

// Close is a no-op.
func (m *Memory) Close(context.Context) error { return nil }

// ListMovies returns every movie in insertion order.
func (m *Memory) ListMovies(context.Context) ([]models.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]models.Movie, len(m.movies))
	copy(out, m.movies)
	return out, nil
}

// GetMovie looks a movie up by ID.
func (m *Memory) GetMovie(_ context.Context, id string) (*models.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, mv := range m.movies {
		if mv.ID == id {
			c := mv
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// GetMovieByTitle looks a movie up by exact title.
func (m *Memory) GetMovieByTitle(_ context.Context, title string) (*models.Movie, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, mv := range m.movies {
		if mv.Title == title {
			c := mv
			return &c, nil
		}
	}
	return nil, ErrNotFound
}

// FindGenre returns the genre of the first movie whose genre name matches.
func (m *Memory) FindGenre(_ context.Context, name string) (*models.Genre, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, mv := range m.movies {
		if mv.Genre.Name == name {
			g := mv.Genre
			return &g, nil
		}
	}
	return nil, ErrNotFound
}

// FindDirector returns the director of the first movie whose director name matches.
func (m *Memory) FindDirector(_ context.Context, name string) (*models.Director, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, mv := range m.movies {
		if mv.Director.Name == name {
			d := mv.Director
			return &d, nil
		}
	}
	return nil, ErrNotFound
}

// InsertMovies appends movies, assigning IDs to those without one.
func (m *Memory) InsertMovies(_ context.Context, movies []models.Movie) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, mv := range movies {
		if mv.ID == "" {
			mv.ID = uuid.NewString()
		}
		m.movies = append(m.movies, mv)
	}
	return len(movies), nil
}

// CreateUser stores a copy of user under a fresh ID.
func (m *Memory) CreateUser(_ context.Context, user *models.User) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, taken := m.byUsername[user.Username]; taken {
		return nil, ErrDuplicateUsername
	}
	stored := copyUser(user)
	stored.ID = uuid.NewString()
	if stored.FavoriteMovies == nil {
		stored.FavoriteMovies = []string{}
	}
	m.users[stored.ID] = stored
	m.byUsername[stored.Username] = stored.ID
	return copyUser(stored), nil
}

// GetUser looks a user up by ID.
func (m *Memory) GetUser(_ context.Context, id string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(u), nil
}

// GetUserByUsername looks a user up by username.
func (m *Memory) GetUserByUsername(_ context.Context, username string) (*models.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	id, ok := m.byUsername[username]
	if !ok {
		return nil, ErrNotFound
	}
	return copyUser(m.users[id]), nil
}

// UpdateUser merges update into the stored user.
func (m *Memory) UpdateUser(_ context.Context, id string, update models.UserUpdate) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	if update.Username != nil && *update.Username != u.Username {
		if _, taken := m.byUsername[*update.Username]; taken {
			return nil, ErrDuplicateUsername
		}
		delete(m.byUsername, u.Username)
		m.byUsername[*update.Username] = id
	}
	update.Apply(u)
	return copyUser(u), nil
}

// DeleteUser removes the user.
func (m *Memory) DeleteUser(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[id]
	if !ok {
		return ErrNotFound
	}
	delete(m.byUsername, u.Username)
	delete(m.users, id)
	return nil
}

// AddFavorite appends movieID to the user's favorites.
func (m *Memory) AddFavorite(_ context.Context, userID, movieID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	u.FavoriteMovies = models.AppendFavorite(u.FavoriteMovies, movieID)
	return copyUser(u), nil
}

// RemoveFavorite drops the last occurrence of movieID from the user's favorites.
func (m *Memory) RemoveFavorite(_ context.Context, userID, movieID string) (*models.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	u, ok := m.users[userID]
	if !ok {
		return nil, ErrNotFound
	}
	u.FavoriteMovies = models.RemoveFavorite(u.FavoriteMovies, movieID)
	return copyUser(u), nil
}

var _ Store = (*Memory)(nil)
