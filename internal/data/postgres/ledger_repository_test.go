package postgres

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"regexp"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/personal-finance-tracker/internal/domain/ledger"
)

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func sampleLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	food := decimal.RequireFromString("30")
	salary := decimal.RequireFromString("50.25")

	e1, err := ledger.NewEntry("e1", ledger.CreateEntryInput{Kind: "expense", Amount: &food, Category: "food", Date: "2024-03-05"})
	require.NoError(t, err)
	e2, err := ledger.NewEntry("e2", ledger.CreateEntryInput{Kind: "income", Amount: &salary, Category: "salary", Description: "march", Date: "2024-03-10"})
	require.NoError(t, err)

	balance := ledger.NewMoney(decimal.RequireFromString("100"))
	return &ledger.Ledger{StartingBalance: balance, Entries: []ledger.Entry{e1, e2}}
}

func TestLedgerRepository_Load(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()

	settingsQuery := regexp.QuoteMeta(selectSettingsQuery)
	entriesQuery := regexp.QuoteMeta(selectEntriesQuery)

	t.Run("Success", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		repo := &LedgerRepository{pool: mock, logger: logger}

		mock.ExpectQuery(settingsQuery).
			WillReturnRows(pgxmock.NewRows([]string{"starting_balance"}).AddRow("100.00"))
		mock.ExpectQuery(entriesQuery).
			WillReturnRows(pgxmock.NewRows([]string{"id", "kind", "amount", "category", "description", "to_char"}).
				AddRow("e1", "expense", "30.00", "food", "", "2024-03-05").
				AddRow("e2", "income", "50.25", "salary", "march", "2024-03-10"))

		l, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.True(t, sampleLedger(t).Equal(l))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("NoEntries", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		repo := &LedgerRepository{pool: mock, logger: logger}

		mock.ExpectQuery(settingsQuery).
			WillReturnRows(pgxmock.NewRows([]string{"starting_balance"}).AddRow("0.00"))
		mock.ExpectQuery(entriesQuery).
			WillReturnRows(pgxmock.NewRows([]string{"id", "kind", "amount", "category", "description", "to_char"}))

		l, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.NotNil(t, l.Entries)
		assert.Empty(t, l.Entries)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Missing", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		repo := &LedgerRepository{pool: mock, logger: logger}

		mock.ExpectQuery(settingsQuery).WillReturnError(pgx.ErrNoRows)

		_, err = repo.Load(ctx)
		assert.ErrorIs(t, err, ledger.ErrLedgerMissing)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("DatabaseError", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		repo := &LedgerRepository{pool: mock, logger: logger}

		dbErr := errors.New("connection reset")
		mock.ExpectQuery(settingsQuery).
			WillReturnRows(pgxmock.NewRows([]string{"starting_balance"}).AddRow("0.00"))
		mock.ExpectQuery(entriesQuery).WillReturnError(dbErr)

		_, err = repo.Load(ctx)
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestLedgerRepository_Save(t *testing.T) {
	ctx := context.Background()
	logger := newTestLogger()

	upsertQuery := regexp.QuoteMeta(upsertSettingsQuery)
	deleteQuery := regexp.QuoteMeta(deleteEntriesQuery)
	insertQuery := regexp.QuoteMeta(insertEntryQuery)

	t.Run("ReplacesEverythingInOneTransaction", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		repo := &LedgerRepository{pool: mock, logger: logger}

		mock.ExpectBegin()
		mock.ExpectExec(upsertQuery).WithArgs("100.00").WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(deleteQuery).WillReturnResult(pgxmock.NewResult("DELETE", 5))
		mock.ExpectExec(insertQuery).
			WithArgs("e1", 0, "expense", "30.00", "food", "", "2024-03-05").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(insertQuery).
			WithArgs("e2", 1, "income", "50.25", "salary", "march", "2024-03-10").
			WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectCommit()

		require.NoError(t, repo.Save(ctx, sampleLedger(t)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("RollsBackOnInsertFailure", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()
		repo := &LedgerRepository{pool: mock, logger: logger}

		dbErr := errors.New("check constraint violated")
		mock.ExpectBegin()
		mock.ExpectExec(upsertQuery).WithArgs("100.00").WillReturnResult(pgxmock.NewResult("INSERT", 1))
		mock.ExpectExec(deleteQuery).WillReturnResult(pgxmock.NewResult("DELETE", 0))
		mock.ExpectExec(insertQuery).
			WithArgs("e1", 0, "expense", "30.00", "food", "", "2024-03-05").
			WillReturnError(dbErr)
		mock.ExpectRollback()

		err = repo.Save(ctx, sampleLedger(t))
		assert.ErrorIs(t, err, dbErr)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
