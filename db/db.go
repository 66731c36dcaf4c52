// Package db provides database connectivity and migration functionality for the movie API.
// It opens the MongoDB client and the PostgreSQL connection pool and runs the
// SQL migrations, so the store backends receive ready connections.
package db

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres" // registers the postgres:// scheme
	_ "github.com/golang-migrate/migrate/v4/source/file"       // For file-based migrations
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq" // database/sql driver used by migrate's postgres driver
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"

	"github.com/user/movieapi-go/apperror"
	"github.com/user/movieapi-go/config"
)

// ConnectMongo opens a client for cfg.URI and verifies it with a ping against the primary.
func ConnectMongo(ctx context.Context, cfg *config.MongoConfig) (*mongo.Client, error) {
	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(10 * time.Second)

	client, err := mongo.Connect(opts)
	if err != nil {
		return nil, apperror.NewDatabaseError("failed to create mongo client", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, apperror.NewDatabaseError("error connecting to mongo", err)
	}

	log.Info().Str("database", cfg.Database).Msg("connected to mongo")
	return client, nil
}

// NewPool establishes a pgxpool connection pool for cfg.URL.
func NewPool(ctx context.Context, cfg *config.PostgresConfig) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, apperror.NewDatabaseError("error parsing DATABASE_URL", err)
	}
	poolConfig.MaxConns = int32(cfg.MaxConns)
	poolConfig.MaxConnIdleTime = 10 * time.Minute
	poolConfig.MaxConnLifetime = 30 * time.Minute

	createCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	pool, err := pgxpool.NewWithConfig(createCtx, poolConfig)
	if err != nil {
		return nil, apperror.NewDatabaseError("error creating pgxpool", err)
	}

	pingCtx, pingCancel := context.WithTimeout(ctx, 5*time.Second)
	defer pingCancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, apperror.NewDatabaseError("error connecting to postgres with pgxpool", err)
	}

	log.Info().Int("max_conns", cfg.MaxConns).Msg("connected to postgres")
	return pool, nil
}

// migrateURL rewrites the pgx style scheme into the one registered by migrate's postgres driver.
func migrateURL(url string) string {
	if rest, ok := strings.CutPrefix(url, "postgresql://"); ok {
		return "postgres://" + rest
	}
	return url
}

// RunMigrations applies any pending migrations from cfg.MigrationsPath.
// The directory holds golang-migrate pairs named {version}_{description}.up.sql / .down.sql.
func RunMigrations(cfg *config.PostgresConfig) error {
	m, err := migrate.New("file://"+cfg.MigrationsPath, migrateURL(cfg.URL))
	if err != nil {
		return apperror.NewMigrationError("failed to create migrator", err)
	}
	defer func() {
		if srcErr, dbErr := m.Close(); srcErr != nil || dbErr != nil {
			log.Warn().AnErr("source", srcErr).AnErr("database", dbErr).Msg("error closing migrator")
		}
	}()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return apperror.NewMigrationError("failed to run migrations", err)
	}

	version, dirty, err := m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return apperror.NewMigrationError("failed to read migration version", err)
	}
	if dirty {
		return apperror.NewMigrationError(fmt.Sprintf("database is dirty at version %d", version), nil)
	}
	log.Info().Uint("version", version).Msg("migrations applied")
	return nil
}
