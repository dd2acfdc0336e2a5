// Package bootstrap wires the configured storage backend for the binaries.
package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/personal-finance-tracker/internal/config"
	"github.com/personal-finance-tracker/internal/data/file"
	"github.com/personal-finance-tracker/internal/data/mongo"
	"github.com/personal-finance-tracker/internal/data/postgres"
	"github.com/personal-finance-tracker/internal/domain/ledger"
	"github.com/personal-finance-tracker/internal/platform/persistence"
	"github.com/personal-finance-tracker/internal/store"
)

// CloseFunc releases whatever a backend holds open
type CloseFunc func(ctx context.Context) error

func noopClose(context.Context) error { return nil }

// OpenRepository connects to the backend selected in cfg.Storage.Backend
func OpenRepository(ctx context.Context, log *slog.Logger, cfg *config.Config, fsys afero.Fs) (ledger.Repository, CloseFunc, error) {
	switch cfg.Storage.Backend {
	case config.BackendPostgres:
		db, err := persistence.NewPostgresDB(ctx, log, &cfg.Postgres)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize PostgreSQL: %w", err)
		}
		closeFn := func(context.Context) error {
			db.Close()
			return nil
		}
		return postgres.NewLedgerRepository(log, db), closeFn, nil

	case config.BackendMongo:
		db, err := persistence.NewMongoDB(ctx, log, &cfg.MongoDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to initialize MongoDB: %w", err)
		}
		return mongo.NewLedgerRepository(log, db.Collection(mongo.LedgerCollectionName)), db.Close, nil

	case config.BackendFile:
		log.Info("Using file storage", "path", cfg.Storage.DataFile)
		return file.NewLedgerRepository(log, fsys, cfg.Storage.DataFile), noopClose, nil

	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

// OpenStore builds the serialized entry store on top of the configured backend
func OpenStore(ctx context.Context, log *slog.Logger, cfg *config.Config, fsys afero.Fs) (*store.SerializedStore, CloseFunc, error) {
	repo, closeRepo, err := OpenRepository(ctx, log, cfg, fsys)
	if err != nil {
		return nil, nil, err
	}

	serialized, err := store.NewSerializedStore(
		store.NewEntryStore(repo, log),
		store.SerializedStoreConfig{MaxBlockingTasks: cfg.Writer.MaxBlockingTasks},
		log,
	)
	if err != nil {
		_ = closeRepo(ctx)
		return nil, nil, fmt.Errorf("failed to start store writer: %w", err)
	}

	closeFn := func(ctx context.Context) error {
		serialized.Shutdown()
		return closeRepo(ctx)
	}
	return serialized, closeFn, nil
}
