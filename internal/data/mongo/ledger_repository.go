package mongo

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/personal-finance-tracker/internal/domain/ledger"
)

const (
	// LedgerCollectionName is the name of the ledger collection in MongoDB
	LedgerCollectionName = "ledgers"

	// DefaultLedgerID identifies the single ledger document
	DefaultLedgerID = "default"
)

type ledgerDocument struct {
	ID              string               `bson:"_id"`
	StartingBalance primitive.Decimal128 `bson:"starting_balance"`
	Entries         []entryDocument      `bson:"entries"`
	UpdatedAt       time.Time            `bson:"updated_at"`
}

type entryDocument struct {
	ID          string               `bson:"id"`
	Kind        string               `bson:"kind"`
	Amount      primitive.Decimal128 `bson:"amount"`
	Category    string               `bson:"category"`
	Description string               `bson:"description"`
	Date        string               `bson:"date"`
}

// LedgerRepository implements the ledger.Repository interface for MongoDB.
// The whole ledger lives in one document so a save is a single atomic replace.
type LedgerRepository struct {
	collection *mongo.Collection
	logger     *slog.Logger
	now        func() time.Time
}

// NewLedgerRepository creates a new MongoDB ledger repository
func NewLedgerRepository(logger *slog.Logger, collection *mongo.Collection) ledger.Repository {
	return &LedgerRepository{
		collection: collection,
		logger:     logger,
		now:        time.Now,
	}
}

// Load fetches the ledger document.
// Returns ErrLedgerMissing if it has never been saved.
func (r *LedgerRepository) Load(ctx context.Context) (*ledger.Ledger, error) {
	var doc ledgerDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": DefaultLedgerID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ledger.ErrLedgerMissing
		}
		r.logger.Error("Failed to load ledger document", "error", err)
		return nil, fmt.Errorf("failed to load ledger document: %w", err)
	}

	l, err := fromDocument(doc)
	if err != nil {
		r.logger.Error("Failed to decode ledger document", "error", err)
		return nil, fmt.Errorf("failed to decode ledger document: %w", err)
	}
	return l, nil
}

// Save replaces the ledger document, inserting it on first use
func (r *LedgerRepository) Save(ctx context.Context, l *ledger.Ledger) error {
	doc, err := toDocument(l, r.now())
	if err != nil {
		return fmt.Errorf("failed to encode ledger document: %w", err)
	}

	opts := options.Replace().SetUpsert(true)
	if _, err := r.collection.ReplaceOne(ctx, bson.M{"_id": DefaultLedgerID}, doc, opts); err != nil {
		r.logger.Error("Failed to save ledger document",
			"entries", len(l.Entries),
			"error", err)
		return fmt.Errorf("failed to save ledger document: %w", err)
	}

	return nil
}

func toDocument(l *ledger.Ledger, now time.Time) (ledgerDocument, error) {
	balance, err := primitive.ParseDecimal128(l.StartingBalance.String())
	if err != nil {
		return ledgerDocument{}, fmt.Errorf("starting balance: %w", err)
	}

	entries := make([]entryDocument, 0, len(l.Entries))
	for _, e := range l.Entries {
		amount, err := primitive.ParseDecimal128(e.Amount.String())
		if err != nil {
			return ledgerDocument{}, fmt.Errorf("amount of entry %s: %w", e.ID, err)
		}
		entries = append(entries, entryDocument{
			ID:          e.ID,
			Kind:        string(e.Kind),
			Amount:      amount,
			Category:    e.Category,
			Description: e.Description,
			Date:        e.Date.String(),
		})
	}

	return ledgerDocument{
		ID:              DefaultLedgerID,
		StartingBalance: balance,
		Entries:         entries,
		UpdatedAt:       now.UTC(),
	}, nil
}

func fromDocument(doc ledgerDocument) (*ledger.Ledger, error) {
	balance, err := decimal.NewFromString(doc.StartingBalance.String())
	if err != nil {
		return nil, fmt.Errorf("starting balance: %w", err)
	}

	l := &ledger.Ledger{
		StartingBalance: ledger.NewMoney(balance),
		Entries:         make([]ledger.Entry, 0, len(doc.Entries)),
	}

	for _, d := range doc.Entries {
		amount, err := decimal.NewFromString(d.Amount.String())
		if err != nil {
			return nil, fmt.Errorf("amount of entry %s: %w", d.ID, err)
		}
		date, err := ledger.ParseDate(d.Date)
		if err != nil {
			return nil, fmt.Errorf("date of entry %s: %w", d.ID, err)
		}
		l.Entries = append(l.Entries, ledger.Entry{
			ID:          d.ID,
			Kind:        ledger.Kind(d.Kind),
			Amount:      ledger.NewMoney(amount),
			Category:    d.Category,
			Description: d.Description,
			Date:        date,
		})
	}

	return l, nil
}
