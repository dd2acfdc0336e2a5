package store

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/personal-finance-tracker/internal/domain/ledger"
)

// Store defines the operations on the persisted ledger.
// Every mutation loads the full ledger, applies the change and writes the full ledger back.
type Store interface {
	// Load returns the persisted ledger, creating and persisting the default one if none exists
	Load(ctx context.Context) (*ledger.Ledger, error)

	// SetStartingBalance overwrites the starting balance, rounded to two decimals
	SetStartingBalance(ctx context.Context, amount decimal.Decimal) (ledger.Money, error)

	// CreateEntry validates the input and appends a new entry with a fresh id
	// Returns ErrInvalidInput naming the first offending field
	CreateEntry(ctx context.Context, in ledger.CreateEntryInput) (ledger.Entry, error)

	// UpdateEntry replaces only the supplied fields of an existing entry
	// Returns ErrEntryNotFound if no entry has the given id
	UpdateEntry(ctx context.Context, id string, in ledger.UpdateEntryInput) (ledger.Entry, error)

	// DeleteEntry removes an entry
	// Returns ErrEntryNotFound if no entry has the given id
	DeleteEntry(ctx context.Context, id string) error
}
