package file

import (
	"context"
	"log/slog"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/personal-finance-tracker/internal/domain/ledger"
)

const dataPath = "/data/ledger.json"

func sampleLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	amount := decimal.RequireFromString("19.995")
	expense, err := ledger.NewEntry("a1", ledger.CreateEntryInput{
		Kind:        "expense",
		Amount:      &amount,
		Category:    "food",
		Description: `dinner "out", with friends`,
		Date:        "2024-02-29",
	})
	require.NoError(t, err)

	income := decimal.RequireFromString("1000")
	salary, err := ledger.NewEntry("b2", ledger.CreateEntryInput{
		Kind:     "income",
		Amount:   &income,
		Category: "salary",
		Date:     "2024-03-01",
	})
	require.NoError(t, err)

	balance := ledger.NewMoney(decimal.RequireFromString("250.5"))
	return &ledger.Ledger{StartingBalance: balance, Entries: []ledger.Entry{expense, salary}}
}

func TestLedgerRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	repo := NewLedgerRepository(slog.Default(), fsys, dataPath)

	original := sampleLedger(t)
	require.NoError(t, repo.Save(ctx, original))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.True(t, original.Equal(loaded))

	// No temporary files are left behind
	files, err := afero.ReadDir(fsys, "/data")
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, "ledger.json", files[0].Name())
}

func TestLedgerRepository_Format(t *testing.T) {
	ctx := context.Background()
	fsys := afero.NewMemMapFs()
	repo := NewLedgerRepository(slog.Default(), fsys, dataPath)

	require.NoError(t, repo.Save(ctx, sampleLedger(t)))

	data, err := afero.ReadFile(fsys, dataPath)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"startingBalance": 250.50,
		"entries": [
			{"id": "a1", "kind": "expense", "amount": 20.00, "category": "food", "description": "dinner \"out\", with friends", "date": "2024-02-29"},
			{"id": "b2", "kind": "income", "amount": 1000.00, "category": "salary", "description": "", "date": "2024-03-01"}
		]
	}`, string(data))
}

func TestLedgerRepository_Load(t *testing.T) {
	ctx := context.Background()

	t.Run("MissingFile", func(t *testing.T) {
		repo := NewLedgerRepository(slog.Default(), afero.NewMemMapFs(), dataPath)

		_, err := repo.Load(ctx)
		assert.ErrorIs(t, err, ledger.ErrLedgerMissing)
	})

	t.Run("CorruptFile", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, dataPath, []byte("{not json"), 0o644))
		repo := NewLedgerRepository(slog.Default(), fsys, dataPath)

		_, err := repo.Load(ctx)
		require.Error(t, err)
		assert.NotErrorIs(t, err, ledger.ErrLedgerMissing)
	})

	t.Run("MissingEntriesKey", func(t *testing.T) {
		fsys := afero.NewMemMapFs()
		require.NoError(t, afero.WriteFile(fsys, dataPath, []byte(`{"startingBalance": 12}`), 0o644))
		repo := NewLedgerRepository(slog.Default(), fsys, dataPath)

		l, err := repo.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, "12.00", l.StartingBalance.String())
		assert.NotNil(t, l.Entries)
		assert.Empty(t, l.Entries)
	})

	t.Run("CancelledContext", func(t *testing.T) {
		repo := NewLedgerRepository(slog.Default(), afero.NewMemMapFs(), dataPath)
		cctx, cancel := context.WithCancel(ctx)
		cancel()

		_, err := repo.Load(cctx)
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestLedgerRepository_SaveFailure(t *testing.T) {
	ctx := context.Background()
	base := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(base, dataPath, []byte(`{"startingBalance": 1, "entries": []}`), 0o644))

	repo := NewLedgerRepository(slog.Default(), afero.NewReadOnlyFs(base), dataPath)

	err := repo.Save(ctx, sampleLedger(t))
	require.Error(t, err)

	// The previous state is still intact
	l, err := repo.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "1.00", l.StartingBalance.String())
	assert.Empty(t, l.Entries)
}
