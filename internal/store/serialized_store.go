package store

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/panjf2000/ants/v2"
	"github.com/shopspring/decimal"

	"github.com/personal-finance-tracker/internal/domain/ledger"
)

// SerializedStore runs every operation of the wrapped Store on a single worker,
// so no two load-modify-persist cycles ever overlap
type SerializedStore struct {
	base   Store
	pool   *ants.Pool
	logger *slog.Logger
}

type SerializedStoreConfig struct {
	// MaxBlockingTasks bounds how many callers may wait for the writer; 0 means unbounded
	MaxBlockingTasks int
}

func NewSerializedStore(base Store, config SerializedStoreConfig, logger *slog.Logger) (*SerializedStore, error) {
	pool, err := ants.NewPool(1, ants.WithMaxBlockingTasks(config.MaxBlockingTasks))
	if err != nil {
		return nil, err
	}

	return &SerializedStore{
		base:   base,
		pool:   pool,
		logger: logger.With("component", "serialized_store"),
	}, nil
}

func (s *SerializedStore) Load(ctx context.Context) (*ledger.Ledger, error) {
	var l *ledger.Ledger
	err := s.run(ctx, "load", func(ctx context.Context) error {
		var err error
		l, err = s.base.Load(ctx)
		return err
	})
	return l, err
}

func (s *SerializedStore) SetStartingBalance(ctx context.Context, amount decimal.Decimal) (ledger.Money, error) {
	var balance ledger.Money
	err := s.run(ctx, "set_starting_balance", func(ctx context.Context) error {
		var err error
		balance, err = s.base.SetStartingBalance(ctx, amount)
		return err
	})
	return balance, err
}

func (s *SerializedStore) CreateEntry(ctx context.Context, in ledger.CreateEntryInput) (ledger.Entry, error) {
	var entry ledger.Entry
	err := s.run(ctx, "create_entry", func(ctx context.Context) error {
		var err error
		entry, err = s.base.CreateEntry(ctx, in)
		return err
	})
	return entry, err
}

func (s *SerializedStore) UpdateEntry(ctx context.Context, id string, in ledger.UpdateEntryInput) (ledger.Entry, error) {
	var entry ledger.Entry
	err := s.run(ctx, "update_entry", func(ctx context.Context) error {
		var err error
		entry, err = s.base.UpdateEntry(ctx, id, in)
		return err
	})
	return entry, err
}

func (s *SerializedStore) DeleteEntry(ctx context.Context, id string) error {
	return s.run(ctx, "delete_entry", func(ctx context.Context) error {
		return s.base.DeleteEntry(ctx, id)
	})
}

// run submits fn to the writer and waits for its result.
// Every path through the task sends exactly once on resultChan, panics included.
func (s *SerializedStore) run(ctx context.Context, op string, fn func(ctx context.Context) error) error {
	resultChan := make(chan error, 1)

	err := s.pool.Submit(func() {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Error("Operation panicked",
					"operation", op,
					"panic", r,
				)
				resultChan <- ledger.ErrStorageUnavailable{Op: op, Err: fmt.Errorf("panic: %v", r)}
			}
		}()

		// The caller may have given up while queued
		if err := ctx.Err(); err != nil {
			resultChan <- ledger.ErrStorageUnavailable{Op: op, Err: err}
			return
		}
		resultChan <- fn(ctx)
	})
	if err != nil {
		s.logger.Error("Failed to submit operation to writer",
			"operation", op,
			"error", err,
		)
		return ledger.ErrStorageUnavailable{Op: op, Err: err}
	}

	return <-resultChan
}

// Shutdown releases the writer; later calls fail with ErrStorageUnavailable
func (s *SerializedStore) Shutdown() {
	s.logger.Info("Shutting down writer", "waiting", s.pool.Waiting())
	s.pool.Release()
}
