package mongo

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/personal-finance-tracker/internal/domain/ledger"
)

func sampleLedger(t *testing.T) *ledger.Ledger {
	t.Helper()
	amount := decimal.RequireFromString("42.5")
	entry, err := ledger.NewEntry("e1", ledger.CreateEntryInput{
		Kind:        "expense",
		Amount:      &amount,
		Category:    "transport",
		Description: "monthly pass",
		Date:        "2024-02-29",
	})
	require.NoError(t, err)

	balance := ledger.NewMoney(decimal.RequireFromString("-10.05"))
	return &ledger.Ledger{StartingBalance: balance, Entries: []ledger.Entry{entry}}
}

// documentOf renders l exactly as the repository stores it
func documentOf(t *testing.T, l *ledger.Ledger) bson.D {
	t.Helper()
	doc, err := toDocument(l, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	raw, err := bson.Marshal(doc)
	require.NoError(t, err)

	var d bson.D
	require.NoError(t, bson.Unmarshal(raw, &d))
	return d
}

func TestDocumentMapping_RoundTrip(t *testing.T) {
	original := sampleLedger(t)

	doc, err := toDocument(original, time.Now())
	require.NoError(t, err)
	assert.Equal(t, DefaultLedgerID, doc.ID)
	assert.Equal(t, "-10.05", doc.StartingBalance.String())
	require.Len(t, doc.Entries, 1)
	assert.Equal(t, "42.50", doc.Entries[0].Amount.String())
	assert.Equal(t, "2024-02-29", doc.Entries[0].Date)

	loaded, err := fromDocument(doc)
	require.NoError(t, err)
	assert.True(t, original.Equal(loaded))
}

func TestDocumentMapping_EmptyLedger(t *testing.T) {
	doc, err := toDocument(ledger.NewLedger(), time.Now())
	require.NoError(t, err)
	assert.NotNil(t, doc.Entries)

	loaded, err := fromDocument(doc)
	require.NoError(t, err)
	assert.NotNil(t, loaded.Entries)
	assert.True(t, loaded.Equal(ledger.NewLedger()))
}

func TestLedgerRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))
	ctx := context.Background()

	mt.Run("LoadExisting", func(mt *mtest.T) {
		original := sampleLedger(t)
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch, documentOf(t, original)))

		repo := NewLedgerRepository(slog.Default(), mt.Coll)
		loaded, err := repo.Load(ctx)
		require.NoError(mt, err)
		assert.True(mt, original.Equal(loaded))
	})

	mt.Run("LoadMissing", func(mt *mtest.T) {
		ns := mt.Coll.Database().Name() + "." + mt.Coll.Name()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, ns, mtest.FirstBatch))

		repo := NewLedgerRepository(slog.Default(), mt.Coll)
		_, err := repo.Load(ctx)
		assert.ErrorIs(mt, err, ledger.ErrLedgerMissing)
	})

	mt.Run("LoadFailure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized",
		}))

		repo := NewLedgerRepository(slog.Default(), mt.Coll)
		_, err := repo.Load(ctx)
		require.Error(mt, err)
		assert.NotErrorIs(mt, err, ledger.ErrLedgerMissing)
	})

	mt.Run("SaveUpserts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse(
			bson.E{Key: "n", Value: 1},
			bson.E{Key: "nModified", Value: 1},
		))

		repo := NewLedgerRepository(slog.Default(), mt.Coll)
		require.NoError(mt, repo.Save(ctx, sampleLedger(t)))

		started := mt.GetStartedEvent()
		require.NotNil(mt, started)
		assert.Equal(mt, "update", started.CommandName)

		updates := started.Command.Lookup("updates").Array()
		values, err := updates.Values()
		require.NoError(mt, err)
		require.Len(mt, values, 1)

		update := values[0].Document()
		assert.True(mt, update.Lookup("upsert").Boolean())
		assert.Equal(mt, DefaultLedgerID, update.Lookup("q", "_id").StringValue())
		assert.Equal(mt, "transport", update.Lookup("u", "entries", "0", "category").StringValue())
	})

	mt.Run("SaveFailure", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "duplicate key error",
		}))

		repo := NewLedgerRepository(slog.Default(), mt.Coll)
		err := repo.Save(ctx, sampleLedger(t))
		assert.ErrorContains(mt, err, "failed to save ledger document")
	})
}
