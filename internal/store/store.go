package store

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/personal-finance-tracker/internal/domain/ledger"
)

// EntryStore implements Store on top of a whole-ledger Repository
type EntryStore struct {
	repo   ledger.Repository
	logger *slog.Logger
	newID  func() string
}

// NewEntryStore creates a new entry store
func NewEntryStore(repo ledger.Repository, logger *slog.Logger) *EntryStore {
	return &EntryStore{
		repo:   repo,
		logger: logger.With("component", "entry_store"),
		newID:  ledger.NewEntryID,
	}
}

// Load returns the persisted ledger
func (s *EntryStore) Load(ctx context.Context) (*ledger.Ledger, error) {
	return s.load(ctx)
}

// SetStartingBalance rounds amount to two decimals and persists it as the new starting balance.
// Any sign is allowed, but the magnitude is bounded like an entry amount.
func (s *EntryStore) SetStartingBalance(ctx context.Context, amount decimal.Decimal) (ledger.Money, error) {
	balance, err := ledger.BoundedMoney(ledger.FieldAmount, amount)
	if err != nil {
		s.logRejected("set_starting_balance", err)
		return ledger.Money{}, err
	}

	l, err := s.load(ctx)
	if err != nil {
		return ledger.Money{}, err
	}

	l.StartingBalance = balance
	if err := s.save(ctx, l); err != nil {
		return ledger.Money{}, err
	}

	s.logger.Info("Starting balance updated", "starting_balance", balance.String())
	return balance, nil
}

// CreateEntry validates in, then appends the new entry to the freshly loaded ledger
func (s *EntryStore) CreateEntry(ctx context.Context, in ledger.CreateEntryInput) (ledger.Entry, error) {
	entry, err := ledger.NewEntry(s.newID(), in)
	if err != nil {
		s.logRejected("create", err)
		return ledger.Entry{}, err
	}

	l, err := s.load(ctx)
	if err != nil {
		return ledger.Entry{}, err
	}

	for l.IndexOf(entry.ID) >= 0 {
		entry.ID = s.newID()
	}

	l.Entries = append(l.Entries, entry)
	if err := s.save(ctx, l); err != nil {
		return ledger.Entry{}, err
	}

	s.logger.Info("Entry created",
		"entry_id", entry.ID,
		"kind", entry.Kind,
		"amount", entry.Amount.String(),
	)
	return entry, nil
}

// UpdateEntry applies the supplied fields of in to the entry with the given id
func (s *EntryStore) UpdateEntry(ctx context.Context, id string, in ledger.UpdateEntryInput) (ledger.Entry, error) {
	if err := in.Validate(); err != nil {
		s.logRejected("update", err)
		return ledger.Entry{}, err
	}

	l, err := s.load(ctx)
	if err != nil {
		return ledger.Entry{}, err
	}

	idx := l.IndexOf(id)
	if idx < 0 {
		s.logger.Warn("Entry not found", "operation", "update", "entry_id", id)
		return ledger.Entry{}, ledger.ErrEntryNotFound{ID: id}
	}

	if in.IsEmpty() {
		return l.Entries[idx], nil
	}

	updated, err := in.Apply(l.Entries[idx])
	if err != nil {
		s.logRejected("update", err)
		return ledger.Entry{}, err
	}

	l.Entries[idx] = updated
	if err := s.save(ctx, l); err != nil {
		return ledger.Entry{}, err
	}

	s.logger.Info("Entry updated", "entry_id", id)
	return updated, nil
}

// DeleteEntry removes the entry with the given id
func (s *EntryStore) DeleteEntry(ctx context.Context, id string) error {
	l, err := s.load(ctx)
	if err != nil {
		return err
	}

	idx := l.IndexOf(id)
	if idx < 0 {
		s.logger.Warn("Entry not found", "operation", "delete", "entry_id", id)
		return ledger.ErrEntryNotFound{ID: id}
	}

	l.Entries = append(l.Entries[:idx], l.Entries[idx+1:]...)
	if err := s.save(ctx, l); err != nil {
		return err
	}

	s.logger.Info("Entry deleted", "entry_id", id)
	return nil
}

func (s *EntryStore) load(ctx context.Context) (*ledger.Ledger, error) {
	l, err := s.repo.Load(ctx)
	if errors.Is(err, ledger.ErrLedgerMissing) {
		s.logger.Info("No persisted ledger found, initializing default ledger")
		l = ledger.NewLedger()
		if err := s.save(ctx, l); err != nil {
			return nil, err
		}
		return l, nil
	}
	if err != nil {
		return nil, s.storageError("load", err)
	}

	if l.Entries == nil {
		l.Entries = []ledger.Entry{}
	}
	return l, nil
}

func (s *EntryStore) save(ctx context.Context, l *ledger.Ledger) error {
	if err := s.repo.Save(ctx, l); err != nil {
		return s.storageError("save", err)
	}
	return nil
}

func (s *EntryStore) storageError(op string, err error) error {
	s.logger.Error("Storage failure", "operation", op, "error", err)

	var storageErr ledger.ErrStorageUnavailable
	if errors.As(err, &storageErr) {
		return storageErr
	}
	return ledger.ErrStorageUnavailable{Op: op, Err: err}
}

func (s *EntryStore) logRejected(op string, err error) {
	var invalid ledger.ErrInvalidInput
	if errors.As(err, &invalid) {
		s.logger.Info("Rejected invalid input", "operation", op, "field", invalid.Field, "reason", invalid.Reason)
		return
	}
	s.logger.Info("Rejected input", "operation", op, "error", err)
}
