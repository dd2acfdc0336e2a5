package ledger

import (
	"github.com/google/uuid"
)

// Kind defines whether an entry takes money out of or brings money into the ledger
type Kind string

const (
	KindExpense Kind = "expense"
	KindIncome  Kind = "income"
)

// Valid reports whether k is a known entry kind
func (k Kind) Valid() bool {
	return k == KindExpense || k == KindIncome
}

// Entry represents one income or expense record
type Entry struct {
	ID          string `json:"id"`
	Kind        Kind   `json:"kind"`
	Amount      Money  `json:"amount"` // Always positive, two decimals
	Category    string `json:"category"`
	Description string `json:"description"`
	Date        Date   `json:"date"`
}

// Equal compares every field of two entries
func (e Entry) Equal(other Entry) bool {
	return e.ID == other.ID &&
		e.Kind == other.Kind &&
		e.Amount.Equal(other.Amount) &&
		e.Category == other.Category &&
		e.Description == other.Description &&
		e.Date.Equal(other.Date)
}

// Ledger is the full persisted financial state
type Ledger struct {
	StartingBalance Money   `json:"startingBalance"`
	Entries         []Entry `json:"entries"`
}

// NewLedger returns the default ledger used when nothing is persisted yet
func NewLedger() *Ledger {
	return &Ledger{
		StartingBalance: ZeroMoney(),
		Entries:         []Entry{},
	}
}

// IndexOf returns the position of the entry with the given id, or -1
func (l *Ledger) IndexOf(id string) int {
	for i := range l.Entries {
		if l.Entries[i].ID == id {
			return i
		}
	}
	return -1
}

// Equal compares the starting balance and the entries in order
func (l *Ledger) Equal(other *Ledger) bool {
	if l == nil || other == nil {
		return l == other
	}
	if !l.StartingBalance.Equal(other.StartingBalance) || len(l.Entries) != len(other.Entries) {
		return false
	}
	for i := range l.Entries {
		if !l.Entries[i].Equal(other.Entries[i]) {
			return false
		}
	}
	return true
}

// NewEntryID returns a fresh entry identifier: a millisecond timestamp followed by random bits
func NewEntryID() string {
	return uuid.Must(uuid.NewV7()).String()
}
