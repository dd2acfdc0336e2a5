package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Field names used in ErrInvalidInput
const (
	FieldKind        = "kind"
	FieldAmount      = "amount"
	FieldCategory    = "category"
	FieldDescription = "description"
	FieldDate        = "date"
)

// CreateEntryInput carries the fields of a new entry before validation
type CreateEntryInput struct {
	Kind        string
	Amount      *decimal.Decimal
	Category    string
	Description string
	Date        string
}

// UpdateEntryInput carries a partial update; nil fields are left unchanged
type UpdateEntryInput struct {
	Kind        *string
	Amount      *decimal.Decimal
	Category    *string
	Description *string
	Date        *string
}

// IsEmpty reports whether no field was supplied
func (in UpdateEntryInput) IsEmpty() bool {
	return in.Kind == nil && in.Amount == nil && in.Category == nil && in.Description == nil && in.Date == nil
}

// ParseAmount converts a textual number into a decimal, naming field on failure
func ParseAmount(field, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return decimal.Decimal{}, ErrInvalidInput{Field: field, Reason: "must be a number"}
	}
	return d, nil
}

// NewEntry validates in and builds an entry with the given id
func NewEntry(id string, in CreateEntryInput) (Entry, error) {
	kind, err := validateKind(in.Kind)
	if err != nil {
		return Entry{}, err
	}
	amount, err := validateAmount(in.Amount)
	if err != nil {
		return Entry{}, err
	}
	category, err := validateCategory(in.Category)
	if err != nil {
		return Entry{}, err
	}
	date, err := validateDate(in.Date)
	if err != nil {
		return Entry{}, err
	}

	return Entry{
		ID:          id,
		Kind:        kind,
		Amount:      amount,
		Category:    category,
		Description: strings.TrimSpace(in.Description),
		Date:        date,
	}, nil
}

// Validate checks every supplied field with the same rules as NewEntry
func (in UpdateEntryInput) Validate() error {
	_, err := in.Apply(Entry{})
	return err
}

// Apply returns a copy of e with the supplied fields replaced.
// Either every supplied field is valid and applied, or e is returned untouched with an error.
func (in UpdateEntryInput) Apply(e Entry) (Entry, error) {
	updated := e

	if in.Kind != nil {
		kind, err := validateKind(*in.Kind)
		if err != nil {
			return e, err
		}
		updated.Kind = kind
	}
	if in.Amount != nil {
		amount, err := validateAmount(in.Amount)
		if err != nil {
			return e, err
		}
		updated.Amount = amount
	}
	if in.Category != nil {
		category, err := validateCategory(*in.Category)
		if err != nil {
			return e, err
		}
		updated.Category = category
	}
	if in.Description != nil {
		updated.Description = strings.TrimSpace(*in.Description)
	}
	if in.Date != nil {
		date, err := validateDate(*in.Date)
		if err != nil {
			return e, err
		}
		updated.Date = date
	}

	return updated, nil
}

func validateKind(s string) (Kind, error) {
	kind := Kind(s)
	if !kind.Valid() {
		return "", ErrInvalidInput{Field: FieldKind, Reason: `must be "expense" or "income"`}
	}
	return kind, nil
}

func validateAmount(d *decimal.Decimal) (Money, error) {
	if d == nil {
		return Money{}, ErrInvalidInput{Field: FieldAmount, Reason: "is required"}
	}
	amount, err := BoundedMoney(FieldAmount, *d)
	if err != nil {
		return Money{}, err
	}
	// Checked after rounding so a stored amount can never be 0.00
	if !amount.IsPositive() {
		return Money{}, ErrInvalidInput{Field: FieldAmount, Reason: "must be greater than zero"}
	}
	return amount, nil
}

func validateCategory(s string) (string, error) {
	category := strings.TrimSpace(s)
	if category == "" {
		return "", ErrInvalidInput{Field: FieldCategory, Reason: "is required"}
	}
	return category, nil
}

func validateDate(s string) (Date, error) {
	date, err := ParseDate(s)
	if err != nil {
		return Date{}, ErrInvalidInput{Field: FieldDate, Reason: "must be a valid date in YYYY-MM-DD format"}
	}
	return date, nil
}
