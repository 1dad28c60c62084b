package cmd

import (
	"context"
	"fmt"

	"licensee-matcher/core/config"
	"licensee-matcher/core/database"
	"licensee-matcher/core/dataset"
	"licensee-matcher/core/logger"
	"licensee-matcher/core/storage"
	"licensee-matcher/feature/matching"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Overrides shared by the commands that touch datasets.
var (
	backendFlag   string
	dataDirFlag   string
	chunkSizeFlag int
	workersFlag   int
)

func addDatasetFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&backendFlag, "backend", "", "Dataset backend: s3 or local (overrides MATCH_BACKEND)")
	cmd.Flags().StringVar(&dataDirFlag, "data-dir", "", "Root directory of the local backend (overrides MATCH_DATA_DIR)")
	cmd.Flags().IntVar(&workersFlag, "workers", 0, "Concurrent dataset reads and writes (overrides MATCH_WORKERS)")
}

// app bundles what a command needs.
type app struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *matching.Service
}

// bootstrap loads configuration, applies flag overrides and wires the
// matching service. The database is optional: a failed connection only
// disables run history.
func bootstrap(ctx context.Context) (*app, error) {
	cfg, err := config.LoadConfig(".")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if backendFlag != "" {
		cfg.Match.Backend = backendFlag
	}
	if dataDirFlag != "" {
		cfg.Match.DataDir = dataDirFlag
	}
	if chunkSizeFlag > 0 {
		cfg.Match.ChunkSize = chunkSizeFlag
	}
	if workersFlag > 0 {
		cfg.Match.Workers = workersFlag
	}

	l, err := logger.New(&cfg.Log)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	store, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var history *matching.History
	if cfg.Database.Enabled {
		if db, err := database.Connect(cfg.Database); err != nil {
			l.Warn("Optional database connection failed, run history disabled", zap.Error(err))
		} else {
			history = matching.NewHistory(db)
			if err := history.Migrate(); err != nil {
				l.Warn("Run history migration failed, run history disabled", zap.Error(err))
				history = nil
			}
		}
	}

	return &app{
		cfg:     cfg,
		logger:  l,
		service: matching.NewService(store, cfg.Match, l, history),
	}, nil
}

func openStore(ctx context.Context, cfg *config.Config) (dataset.Store, error) {
	switch cfg.Match.Backend {
	case matching.BackendLocal:
		return dataset.NewLocalStore(cfg.Match.DataDir), nil
	case matching.BackendS3:
		client, err := storage.NewClient(cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to create storage client: %w", err)
		}
		if err := storage.EnsureBucket(ctx, client, cfg.Storage.Bucket, cfg.Storage.Region); err != nil {
			return nil, err
		}
		return dataset.NewObjectStore(client, cfg.Storage.Bucket), nil
	default:
		return nil, fmt.Errorf("unknown dataset backend %q", cfg.Match.Backend)
	}
}
