// Package pgstore implements store.Store on PostgreSQL through a pgx connection pool.
// The schema lives in db/migrations: genre and director are jsonb columns and
// favorites a text[] column, mirroring the embedded document shape.
package pgstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/user/movieapi-go/models"
	"github.com/user/movieapi-go/store"
)

// uniqueViolation is the SQLSTATE for a unique constraint failure.
const uniqueViolation = "23505"

// Store is a PostgreSQL backed store.Store.
type Store struct {
	pool *pgxpool.Pool
}

var _ store.Store = (*Store)(nil)

// New wraps an open pool.
func New(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Ping checks a connection can be acquired.
func (s *Store) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close closes the pool.
func (s *Store) Close(context.Context) error {
	s.pool.Close()
	return nil
}

const movieColumns = `id, title, description, genre, director, image_path, featured`

func scanMovie(row pgx.Row) (*models.Movie, error) {
	var m models.Movie
	err := row.Scan(&m.ID, &m.Title, &m.Description, &m.Genre, &m.Director, &m.ImagePath, &m.Featured)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// ListMovies returns every movie in insertion order.
func (s *Store) ListMovies(ctx context.Context) ([]models.Movie, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+movieColumns+` FROM movies ORDER BY seq`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []models.Movie{}
	for rows.Next() {
		m, err := scanMovie(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// GetMovie looks a movie up by ID.
func (s *Store) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	return scanMovie(s.pool.QueryRow(ctx, `SELECT `+movieColumns+` FROM movies WHERE id = $1`, id))
}

// GetMovieByTitle returns the first movie with this exact title.
func (s *Store) GetMovieByTitle(ctx context.Context, title string) (*models.Movie, error) {
	return scanMovie(s.pool.QueryRow(ctx, `SELECT `+movieColumns+` FROM movies WHERE title = $1 ORDER BY seq LIMIT 1`, title))
}

// FindGenre returns the genre of the first movie whose genre has this name.
func (s *Store) FindGenre(ctx context.Context, name string) (*models.Genre, error) {
	var g models.Genre
	err := s.pool.QueryRow(ctx, `SELECT genre FROM movies WHERE genre->>'Name' = $1 ORDER BY seq LIMIT 1`, name).Scan(&g)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &g, nil
}

// FindDirector returns the director of the first movie by that director.
func (s *Store) FindDirector(ctx context.Context, name string) (*models.Director, error) {
	var d models.Director
	err := s.pool.QueryRow(ctx, `SELECT director FROM movies WHERE director->>'Name' = $1 ORDER BY seq LIMIT 1`, name).Scan(&d)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		return nil, err
	}
	return &d, nil
}

// InsertMovies inserts all movies in one batch inside a transaction.
// Movies without an ID get a fresh UUID.
func (s *Store) InsertMovies(ctx context.Context, movies []models.Movie) (int, error) {
	if len(movies) == 0 {
		return 0, nil
	}
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		batch := &pgx.Batch{}
		for _, m := range movies {
			id := m.ID
			if id == "" {
				id = uuid.NewString()
			}
			batch.Queue(
				`INSERT INTO movies (id, title, description, genre, director, image_path, featured)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				id, m.Title, m.Description, m.Genre, m.Director, m.ImagePath, m.Featured,
			)
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return 0, err
	}
	return len(movies), nil
}

const userColumns = `id, username, password, email, birthday, favorite_movies`

func scanUser(row pgx.Row) (*models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Password, &u.Email, &u.Birthday, &u.FavoriteMovies)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, store.ErrNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return nil, store.ErrDuplicateUsername
		}
		return nil, err
	}
	if u.FavoriteMovies == nil {
		u.FavoriteMovies = []string{}
	}
	return &u, nil
}

// CreateUser inserts user under a fresh UUID.
func (s *Store) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	favorites := user.FavoriteMovies
	if favorites == nil {
		favorites = []string{}
	}
	return scanUser(s.pool.QueryRow(ctx,
		`INSERT INTO users (id, username, password, email, birthday, favorite_movies)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING `+userColumns,
		uuid.NewString(), user.Username, user.Password, user.Email, user.Birthday, favorites,
	))
}

// GetUser looks a user up by ID.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	return scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
}

// GetUserByUsername looks a user up by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	return scanUser(s.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username))
}

// UpdateUser applies the non-nil fields of update. COALESCE keeps the
// stored value for every field passed as NULL.
func (s *Store) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`UPDATE users SET
			username = COALESCE($2, username),
			password = COALESCE($3, password),
			email    = COALESCE($4, email),
			birthday = COALESCE($5, birthday)
		 WHERE id = $1
		 RETURNING `+userColumns,
		id, update.Username, update.Password, update.Email, update.Birthday,
	))
}

// DeleteUser removes the user row.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return store.ErrNotFound
	}
	return nil
}

// AddFavorite appends movieID to favorite_movies.
func (s *Store) AddFavorite(ctx context.Context, userID, movieID string) (*models.User, error) {
	return scanUser(s.pool.QueryRow(ctx,
		`UPDATE users SET favorite_movies = array_append(favorite_movies, $2)
		 WHERE id = $1
		 RETURNING `+userColumns,
		userID, movieID,
	))
}

// RemoveFavorite drops the last occurrence of movieID. The row is locked
// while the new array is computed.
func (s *Store) RemoveFavorite(ctx context.Context, userID, movieID string) (*models.User, error) {
	var out *models.User
	err := pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		current, err := scanUser(tx.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1 FOR UPDATE`, userID))
		if err != nil {
			return err
		}
		next := models.RemoveFavorite(current.FavoriteMovies, movieID)
		if len(next) == len(current.FavoriteMovies) {
			out = current
			return nil
		}
		out, err = scanUser(tx.QueryRow(ctx,
			`UPDATE users SET favorite_movies = $2 WHERE id = $1 RETURNING `+userColumns,
			userID, next,
		))
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("remove favorite: %w", err)
	}
	return out, nil
}
