// Package mongostore implements store.Store on MongoDB using the official v2 driver.
// Movies live in the "movies" collection and users in "users", with a unique
// index on Username.
package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/user/movieapi-go/models"
	"github.com/user/movieapi-go/store"
)

const (
	moviesCollection = "movies"
	usersCollection  = "users"

	// maxFavoriteRetries bounds the compare-and-swap loop in RemoveFavorite.
	maxFavoriteRetries = 5
)

// Store is a MongoDB backed store.Store.
type Store struct {
	client *mongo.Client
	movies *mongo.Collection
	users  *mongo.Collection
}

var _ store.Store = (*Store)(nil)

// New wraps a connected client and ensures the username index exists.
func New(ctx context.Context, client *mongo.Client, database string) (*Store, error) {
	db := client.Database(database)
	s := &Store{
		client: client,
		movies: db.Collection(moviesCollection),
		users:  db.Collection(usersCollection),
	}

	_, err := s.users.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "Username", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("username_unique"),
	})
	if err != nil {
		return nil, fmt.Errorf("create username index: %w", err)
	}
	return s, nil
}

// Ping checks the primary is reachable.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close disconnects the client.
func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

func parseID(id string) (bson.ObjectID, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		// A malformed id can never match a document.
		return bson.ObjectID{}, store.ErrNotFound
	}
	return oid, nil
}

func notFound(err error) error {
	if errors.Is(err, mongo.ErrNoDocuments) {
		return store.ErrNotFound
	}
	return err
}

// ListMovies returns every movie in natural order.
func (s *Store) ListMovies(ctx context.Context) ([]models.Movie, error) {
	cursor, err := s.movies.Find(ctx, bson.D{})
	if err != nil {
		return nil, err
	}
	var docs []movieDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}
	out := make([]models.Movie, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.model())
	}
	return out, nil
}

func (s *Store) findMovie(ctx context.Context, filter bson.D) (*movieDoc, error) {
	var doc movieDoc
	if err := s.movies.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return &doc, nil
}

// GetMovie looks a movie up by its ObjectID hex.
func (s *Store) GetMovie(ctx context.Context, id string) (*models.Movie, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	doc, err := s.findMovie(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return nil, err
	}
	m := doc.model()
	return &m, nil
}

// GetMovieByTitle looks a movie up by exact title.
func (s *Store) GetMovieByTitle(ctx context.Context, title string) (*models.Movie, error) {
	doc, err := s.findMovie(ctx, bson.D{{Key: "Title", Value: title}})
	if err != nil {
		return nil, err
	}
	m := doc.model()
	return &m, nil
}

// FindGenre returns the genre embedded in the first movie with that genre name.
func (s *Store) FindGenre(ctx context.Context, name string) (*models.Genre, error) {
	doc, err := s.findMovie(ctx, bson.D{{Key: "Genre.Name", Value: name}})
	if err != nil {
		return nil, err
	}
	g := doc.Genre.model()
	return &g, nil
}

// FindDirector returns the director embedded in the first movie by that director.
func (s *Store) FindDirector(ctx context.Context, name string) (*models.Director, error) {
	doc, err := s.findMovie(ctx, bson.D{{Key: "Director.Name", Value: name}})
	if err != nil {
		return nil, err
	}
	d := doc.Director.model()
	return &d, nil
}

// InsertMovies bulk inserts movies. IDs that are valid ObjectID hex strings are kept.
func (s *Store) InsertMovies(ctx context.Context, movies []models.Movie) (int, error) {
	if len(movies) == 0 {
		return 0, nil
	}
	docs := make([]interface{}, 0, len(movies))
	for _, m := range movies {
		docs = append(docs, fromMovie(m))
	}
	res, err := s.movies.InsertMany(ctx, docs)
	if err != nil {
		return 0, err
	}
	return len(res.InsertedIDs), nil
}

// CreateUser inserts user under a new ObjectID.
func (s *Store) CreateUser(ctx context.Context, user *models.User) (*models.User, error) {
	doc := fromUser(user)
	if _, err := s.users.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, store.ErrDuplicateUsername
		}
		return nil, err
	}
	return doc.model(), nil
}

func (s *Store) findUser(ctx context.Context, filter bson.D) (*userDoc, error) {
	var doc userDoc
	if err := s.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		return nil, notFound(err)
	}
	return &doc, nil
}

// GetUser looks a user up by ObjectID hex.
func (s *Store) GetUser(ctx context.Context, id string) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	doc, err := s.findUser(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return nil, err
	}
	return doc.model(), nil
}

// GetUserByUsername looks a user up by username.
func (s *Store) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	doc, err := s.findUser(ctx, bson.D{{Key: "Username", Value: username}})
	if err != nil {
		return nil, err
	}
	return doc.model(), nil
}

func (s *Store) findOneAndUpdate(ctx context.Context, filter, update bson.D) (*models.User, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var doc userDoc
	if err := s.users.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, store.ErrDuplicateUsername
		}
		return nil, notFound(err)
	}
	return doc.model(), nil
}

// UpdateUser applies the non-nil fields of update and returns the new document.
func (s *Store) UpdateUser(ctx context.Context, id string, update models.UserUpdate) (*models.User, error) {
	oid, err := parseID(id)
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return s.GetUser(ctx, id)
	}
	return s.findOneAndUpdate(ctx, bson.D{{Key: "_id", Value: oid}}, updateDoc(update))
}

// DeleteUser removes the user document.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	oid, err := parseID(id)
	if err != nil {
		return err
	}
	res, err := s.users.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

// AddFavorite pushes movieID onto the end of FavoriteMovies.
func (s *Store) AddFavorite(ctx context.Context, userID, movieID string) (*models.User, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	return s.findOneAndUpdate(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{{Key: "$push", Value: bson.D{{Key: "FavoriteMovies", Value: movieID}}}},
	)
}

// RemoveFavorite removes the last occurrence of movieID. $pull would drop every
// occurrence, so the new array is computed client side and written only if the
// stored array is still the one that was read.
func (s *Store) RemoveFavorite(ctx context.Context, userID, movieID string) (*models.User, error) {
	oid, err := parseID(userID)
	if err != nil {
		return nil, err
	}
	for attempt := 0; attempt < maxFavoriteRetries; attempt++ {
		current, err := s.findUser(ctx, bson.D{{Key: "_id", Value: oid}})
		if err != nil {
			return nil, err
		}
		old := current.FavoriteMovies
		if old == nil {
			old = []string{}
		}
		next := models.RemoveFavorite(old, movieID)
		if len(next) == len(old) {
			return current.model(), nil
		}

		user, err := s.findOneAndUpdate(ctx,
			bson.D{{Key: "_id", Value: oid}, {Key: "FavoriteMovies", Value: old}},
			bson.D{{Key: "$set", Value: bson.D{{Key: "FavoriteMovies", Value: next}}}},
		)
		if errors.Is(err, store.ErrNotFound) {
			log.Ctx(ctx).Debug().Str("user_id", userID).Int("attempt", attempt).Msg("favorites changed concurrently, retrying")
			continue
		}
		return user, err
	}
	return nil, fmt.Errorf("remove favorite: too much contention on user %s", userID)
}
