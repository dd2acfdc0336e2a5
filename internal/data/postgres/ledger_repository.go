// Package postgres provides the PostgreSQL implementation of ledger.Repository.
// The starting balance lives in a single-row settings table and entries keep their
// insertion order through an explicit position column.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/personal-finance-tracker/internal/domain/ledger"
	"github.com/personal-finance-tracker/internal/platform/persistence"
)

const (
	selectSettingsQuery = `SELECT starting_balance::text FROM ledger_settings WHERE id = 1`

	selectEntriesQuery = `
		SELECT id, kind, amount::text, category, description, to_char(entry_date, 'YYYY-MM-DD')
		FROM ledger_entries
		ORDER BY position
	`

	upsertSettingsQuery = `
		INSERT INTO ledger_settings (id, starting_balance, updated_at)
		VALUES (1, $1::numeric, NOW())
		ON CONFLICT (id) DO UPDATE SET starting_balance = EXCLUDED.starting_balance, updated_at = EXCLUDED.updated_at
	`

	deleteEntriesQuery = `DELETE FROM ledger_entries`

	insertEntryQuery = `
		INSERT INTO ledger_entries (id, position, kind, amount, category, description, entry_date)
		VALUES ($1, $2, $3, $4::numeric, $5, $6, $7::date)
	`
)

// LedgerRepository implements the ledger.Repository interface for PostgreSQL
type LedgerRepository struct {
	pool   persistence.Pool // *pgxpool.Pool in production
	logger *slog.Logger
}

// NewLedgerRepository creates a new PostgreSQL ledger repository
func NewLedgerRepository(logger *slog.Logger, db *persistence.PostgresDB) ledger.Repository {
	return &LedgerRepository{
		pool:   db.Pool(),
		logger: logger,
	}
}

// Load reads the settings row and every entry in insertion order.
// Returns ErrLedgerMissing if the settings row has never been written.
func (r *LedgerRepository) Load(ctx context.Context) (*ledger.Ledger, error) {
	var balanceText string
	err := r.pool.QueryRow(ctx, selectSettingsQuery).Scan(&balanceText)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ledger.ErrLedgerMissing
		}
		r.logger.Error("Failed to load ledger settings", "error", err)
		return nil, fmt.Errorf("failed to load ledger settings: %w", err)
	}

	balance, err := decimal.NewFromString(balanceText)
	if err != nil {
		return nil, fmt.Errorf("invalid starting balance %q: %w", balanceText, err)
	}

	entries, err := r.loadEntries(ctx)
	if err != nil {
		return nil, err
	}

	return &ledger.Ledger{
		StartingBalance: ledger.NewMoney(balance),
		Entries:         entries,
	}, nil
}

func (r *LedgerRepository) loadEntries(ctx context.Context) ([]ledger.Entry, error) {
	rows, err := r.pool.Query(ctx, selectEntriesQuery)
	if err != nil {
		r.logger.Error("Failed to query ledger entries", "error", err)
		return nil, fmt.Errorf("failed to query ledger entries: %w", err)
	}
	defer rows.Close()

	entries := []ledger.Entry{}
	for rows.Next() {
		var (
			e          ledger.Entry
			kind       string
			amountText string
			dateText   string
		)
		if err := rows.Scan(&e.ID, &kind, &amountText, &e.Category, &e.Description, &dateText); err != nil {
			r.logger.Error("Failed to scan ledger entry", "error", err)
			return nil, fmt.Errorf("failed to scan ledger entry: %w", err)
		}

		amount, err := decimal.NewFromString(amountText)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q for entry %s: %w", amountText, e.ID, err)
		}
		e.Date, err = ledger.ParseDate(dateText)
		if err != nil {
			return nil, fmt.Errorf("invalid date %q for entry %s: %w", dateText, e.ID, err)
		}
		e.Kind = ledger.Kind(kind)
		e.Amount = ledger.NewMoney(amount)

		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		r.logger.Error("Failed to iterate ledger entries", "error", err)
		return nil, fmt.Errorf("failed to iterate ledger entries: %w", err)
	}

	return entries, nil
}

// Save replaces the settings row and all entries inside one transaction
func (r *LedgerRepository) Save(ctx context.Context, l *ledger.Ledger) error {
	err := persistence.ExecuteTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, upsertSettingsQuery, l.StartingBalance.String()); err != nil {
			return fmt.Errorf("failed to save starting balance: %w", err)
		}

		if _, err := tx.Exec(ctx, deleteEntriesQuery); err != nil {
			return fmt.Errorf("failed to clear ledger entries: %w", err)
		}

		for i, e := range l.Entries {
			_, err := tx.Exec(ctx, insertEntryQuery,
				e.ID,
				i,
				string(e.Kind),
				e.Amount.String(),
				e.Category,
				e.Description,
				e.Date.String(),
			)
			if err != nil {
				return fmt.Errorf("failed to insert entry %s: %w", e.ID, err)
			}
		}
		return nil
	})
	if err != nil {
		r.logger.Error("Failed to save ledger", "entries", len(l.Entries), "error", err)
		return err
	}

	return nil
}
