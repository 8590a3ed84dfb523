package main

import (
	"context"
	"fmt"
	"log/slog"

	goredis "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/aretw0/vine"
	"github.com/aretw0/vine/internal/config"
	"github.com/aretw0/vine/internal/logging"
	"github.com/aretw0/vine/internal/metrics"
	"github.com/aretw0/vine/pkg/adapters/file"
	"github.com/aretw0/vine/pkg/adapters/memory"
	mongoadapter "github.com/aretw0/vine/pkg/adapters/mongo"
	redisadapter "github.com/aretw0/vine/pkg/adapters/redis"
	"github.com/aretw0/vine/pkg/ports"
)

// app holds everything a command needs after wiring: the quiz facade plus
// the raw ports for commands that bypass it (validate, graph, session).
type app struct {
	cfg          config.Config
	logger       *slog.Logger
	quiz         *vine.Quiz
	catalog      ports.Catalog
	rules        ports.RuleTable
	restrictions ports.RestrictionTable
	store        ports.SessionStore
	metrics      *metrics.Metrics

	closers []func() error
}

// Close releases backend connections in reverse wiring order.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			a.logger.Warn("closing backend", "err", err)
		}
	}
}

func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newLogger(cfg config.LogConfig) *slog.Logger {
	var level slog.Level
	switch cfg.Level {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}
	if cfg.Format == "json" {
		return logging.NewJSON(level)
	}
	return logging.New(level)
}

// buildApp wires the catalog, session store, and quiz facade from config.
func buildApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:     cfg,
		logger:  newLogger(cfg.Log),
		metrics: metrics.New(),
	}

	startQuestion := cfg.Quiz.StartQuestion

	switch cfg.Catalog.Backend {
	case "file":
		graph, fileStart, err := file.Load(cfg.Catalog.Path)
		if err != nil {
			return nil, fmt.Errorf("loading catalog from %s: %w", cfg.Catalog.Path, err)
		}
		if startQuestion == "" {
			startQuestion = fileStart
		}
		a.catalog, a.rules, a.restrictions = graph, graph, graph
	case "mongo":
		catalog, err := mongoadapter.Connect(ctx, cfg.Catalog.URI, cfg.Catalog.Database)
		if err != nil {
			return nil, fmt.Errorf("connecting to mongo: %w", err)
		}
		a.closers = append(a.closers, func() error { return catalog.Close(context.Background()) })
		a.catalog, a.rules, a.restrictions = catalog, catalog, catalog
	default:
		return nil, fmt.Errorf("unknown catalog backend %q", cfg.Catalog.Backend)
	}

	var locker ports.DistributedLocker

	switch cfg.Store.Backend {
	case "memory":
		a.store = memory.NewStore()
	case "redis":
		client := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Store.Addr,
			Password: cfg.Store.Password,
			DB:       cfg.Store.DB,
		})
		a.closers = append(a.closers, client.Close)

		var opts []redisadapter.Option
		if cfg.Store.TTL.Std() > 0 {
			opts = append(opts, redisadapter.WithTTL(cfg.Store.TTL.Std()))
		}
		a.store = redisadapter.NewFromClient(client, opts...)
		if cfg.Store.Lock {
			locker = redisadapter.NewLocker(client, "vine:lock:")
		}
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	quizOpts := []vine.Option{
		vine.WithLogger(a.logger),
		vine.WithMetrics(a.metrics),
	}
	if startQuestion != "" {
		quizOpts = append(quizOpts, vine.WithStartQuestion(startQuestion))
	}

	a.quiz = vine.New(a.catalog, a.rules, a.restrictions, a.store, locker, quizOpts...)
	return a, nil
}
