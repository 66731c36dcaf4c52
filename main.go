// Command movieapi serves the movie API and carries its operational subcommands:
// applying SQL migrations and seeding the movie catalogue.
//
// @title Movie API
// @version 1.0
// @description Movie metadata and user accounts with favorite-movie lists.
// @contact.name API Support
// @license.name MIT
// @license.url https://opensource.org/licenses/MIT
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type 'Bearer YOUR_JWT_TOKEN' to authorize
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/user/movieapi-go/config"
	"github.com/user/movieapi-go/db"
	"github.com/user/movieapi-go/logging"
	"github.com/user/movieapi-go/models"
	"github.com/user/movieapi-go/server"
	"github.com/user/movieapi-go/store"
	"github.com/user/movieapi-go/store/mongostore"
	"github.com/user/movieapi-go/store/pgstore"
)

func main() {
	if err := godotenv.Load(); err != nil {
		// Not fatal: production sets the environment directly.
		fmt.Fprintf(os.Stderr, "Warning: .env file not found or error loading it: %v\n", err)
	}

	logging.Init(logging.Config{
		Level:  os.Getenv("LOG_LEVEL"),
		Format: os.Getenv("LOG_FORMAT"),
	})

	app := &cli.App{
		Name:  "movieapi",
		Usage: "movie metadata and user accounts API",
		Commands: []*cli.Command{
			{
				Name:   "serve",
				Usage:  "start the HTTP server",
				Action: serve,
				Flags: []cli.Flag{
					&cli.BoolFlag{Name: "migrate", Usage: "apply pending SQL migrations first (postgres driver only)"},
				},
			},
			{
				Name:   "migrate",
				Usage:  "apply pending SQL migrations (postgres driver only)",
				Action: migrateCmd,
			},
			{
				Name:   "seed",
				Usage:  "insert movies from a JSON file into the catalogue",
				Action: seed,
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "file", Aliases: []string{"f"}, Value: "data/movies.json", Usage: "JSON array of movies"},
				},
			},
		},
		DefaultCommand: "serve",
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal().Err(err).Msg("movieapi failed")
	}
}

// openStore connects the backend selected by STORE_DRIVER.
func openStore(ctx context.Context, cfg *config.StoreConfig) (store.Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, err := db.ConnectMongo(ctx, cfg.Mongo)
		if err != nil {
			return nil, err
		}
		s, err := mongostore.New(ctx, client, cfg.Mongo.Database)
		if err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		return s, nil
	case config.DriverPostgres:
		pool, err := db.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, err
		}
		return pgstore.New(pool), nil
	case config.DriverMemory:
		log.Warn().Msg("using in-memory store, data is lost on exit")
		return store.NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.Driver)
	}
}

func closeStore(s store.Store) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.Close(ctx); err != nil {
		log.Warn().Err(err).Msg("error closing store")
	}
}

func serve(c *cli.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logging.Init(logging.Config{Level: cfg.Log.Level, Format: cfg.Log.Format})

	ctx, stop := signal.NotifyContext(c.Context, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if c.Bool("migrate") && cfg.Store.Driver == config.DriverPostgres {
		if err := db.RunMigrations(cfg.Store.Postgres); err != nil {
			return err
		}
	}

	s, err := openStore(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore(s)

	var accessLog io.Writer
	if cfg.Server.AccessLogPath != "" {
		f, err := os.OpenFile(cfg.Server.AccessLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open access log: %w", err)
		}
		defer f.Close()
		accessLog = f
	}

	handler := server.NewRouter(server.Deps{
		Store:     s,
		Auth:      cfg.Auth,
		Server:    cfg.Server,
		AccessLog: accessLog,
	})
	return server.Run(ctx, server.New(cfg.Server.Port, handler))
}

func migrateCmd(c *cli.Context) error {
	cfg, err := config.LoadStoreConfig()
	if err != nil {
		return err
	}
	if cfg.Driver != config.DriverPostgres {
		return fmt.Errorf("migrate needs STORE_DRIVER=%s, got %q", config.DriverPostgres, cfg.Driver)
	}
	return db.RunMigrations(cfg.Postgres)
}

func seed(c *cli.Context) error {
	cfg, err := config.LoadStoreConfig()
	if err != nil {
		return err
	}

	raw, err := os.ReadFile(c.String("file"))
	if err != nil {
		return fmt.Errorf("read seed file: %w", err)
	}
	var movies []models.Movie
	if err := json.Unmarshal(raw, &movies); err != nil {
		return fmt.Errorf("parse seed file: %w", err)
	}

	s, err := openStore(c.Context, cfg)
	if err != nil {
		return err
	}
	defer closeStore(s)

	n, err := s.InsertMovies(c.Context, movies)
	if err != nil {
		return fmt.Errorf("insert movies: %w", err)
	}
	log.Info().Int("count", n).Str("file", c.String("file")).Msg("movies seeded")
	return nil
}
