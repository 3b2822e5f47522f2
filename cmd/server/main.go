package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/sync/errgroup"

	"github.com/bingorally/hunt-api/internal/bingo"
	"github.com/bingorally/hunt-api/internal/config"
	"github.com/bingorally/hunt-api/internal/database"
	"github.com/bingorally/hunt-api/internal/server"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(stdout, &slog.HandlerOptions{
		Level: cfg.LogLevel,
	}))

	defaults := bingo.GameState{Duration: cfg.GameDuration}

	// --- Store ---
	var store server.Store
	switch cfg.StoreDriver {
	case "mongo":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			return fmt.Errorf("connecting to mongodb: %w", err)
		}
		defer client.Disconnect(context.Background())

		store, err = server.NewMongoStore(ctx, client, cfg.MongoDB, defaults)
		if err != nil {
			return fmt.Errorf("initializing mongo store: %w", err)
		}
		logger.Info("connected to mongodb", "database", cfg.MongoDB)
	default:
		db, err := database.Open(ctx, cfg.DBPath)
		if err != nil {
			return fmt.Errorf("connecting to sqlite: %w", err)
		}
		defer db.Close()

		store, err = server.NewDocStore(ctx, db, defaults)
		if err != nil {
			return fmt.Errorf("initializing sqlite store: %w", err)
		}
		logger.Info("connected to sqlite", "path", cfg.DBPath)
	}

	// --- Redis (optional leaderboard cache) ---
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = openRedis(ctx, cfg.RedisURL)
		if err != nil {
			return fmt.Errorf("connecting to redis: %w", err)
		}
		defer rdb.Close()
		logger.Info("connected to redis")
	}

	if err := server.EnsureDefaults(ctx, logger, store, cfg.AdminPassword); err != nil {
		return fmt.Errorf("seeding defaults: %w", err)
	}

	// --- HTTP Server ---
	srv := server.New(cfg.HTTPAddr, logger, server.Options{
		Store:    store,
		Redis:    rdb,
		CacheTTL: cfg.CacheTTL,
		Policy:   server.StartPolicy(cfg.StartPolicy),
		SPADir:   cfg.SPADir,
	})

	// --- Run ---
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("starting http server", "addr", cfg.HTTPAddr, "policy", cfg.StartPolicy)
		return srv.Run(gctx)
	})

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down http server")
		return srv.Shutdown(context.Background())
	})

	return g.Wait()
}

func openRedis(ctx context.Context, rawURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("parsing redis url: %w", err)
	}
	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("pinging redis: %w", err)
	}
	return rdb, nil
}
