package ledger

import (
	"context"
)

// Repository persists the ledger as a unit: one full read, one full overwrite
type Repository interface {
	// Load returns the persisted ledger, or ErrLedgerMissing when none exists yet
	Load(ctx context.Context) (*Ledger, error)

	// Save replaces the persisted ledger with l
	Save(ctx context.Context, l *Ledger) error
}
