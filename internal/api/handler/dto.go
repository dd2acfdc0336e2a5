package handler

import (
	"bytes"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"

	"github.com/personal-finance-tracker/internal/domain/ledger"
)

// StartingBalanceRequest represents a request to overwrite the starting balance
type StartingBalanceRequest struct {
	Amount json.RawMessage `json:"amount"`
}

// StartingBalanceResponse carries the stored starting balance
type StartingBalanceResponse struct {
	StartingBalance ledger.Money `json:"startingBalance"`
}

// CreateEntryRequest represents a request to add an entry
type CreateEntryRequest struct {
	Kind        string          `json:"kind"`
	Amount      json.RawMessage `json:"amount"`
	Category    string          `json:"category"`
	Description string          `json:"description"`
	Date        string          `json:"date"`
}

// UpdateEntryRequest represents a partial update; omitted fields stay unchanged
type UpdateEntryRequest struct {
	Kind        *string         `json:"kind"`
	Amount      json.RawMessage `json:"amount"`
	Category    *string         `json:"category"`
	Description *string         `json:"description"`
	Date        *string         `json:"date"`
}

// EntryListResponse represents a filtered list of entries, newest first
type EntryListResponse struct {
	Entries []ledger.Entry `json:"entries"`
	Count   int            `json:"count"`
}

// DeleteEntryResponse confirms a removal
type DeleteEntryResponse struct {
	ID      string `json:"id"`
	Deleted bool   `json:"deleted"`
}

// ToInput converts the request into the domain input
func (r CreateEntryRequest) ToInput() (ledger.CreateEntryInput, error) {
	amount, err := parseAmount(r.Amount)
	if err != nil {
		return ledger.CreateEntryInput{}, err
	}
	return ledger.CreateEntryInput{
		Kind:        r.Kind,
		Amount:      amount,
		Category:    r.Category,
		Description: r.Description,
		Date:        r.Date,
	}, nil
}

// ToInput converts the request into the domain input
func (r UpdateEntryRequest) ToInput() (ledger.UpdateEntryInput, error) {
	amount, err := parseAmount(r.Amount)
	if err != nil {
		return ledger.UpdateEntryInput{}, err
	}
	return ledger.UpdateEntryInput{
		Kind:        r.Kind,
		Amount:      amount,
		Category:    r.Category,
		Description: r.Description,
		Date:        r.Date,
	}, nil
}

// parseAmount accepts only a JSON number. An absent or null amount yields nil.
func parseAmount(raw json.RawMessage) (*decimal.Decimal, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.UseNumber()

	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, ledger.ErrInvalidInput{Field: ledger.FieldAmount, Reason: "must be a number"}
	}
	number, ok := v.(json.Number)
	if !ok {
		return nil, ledger.ErrInvalidInput{Field: ledger.FieldAmount, Reason: "must be a number"}
	}

	amount, err := ledger.ParseAmount(ledger.FieldAmount, number.String())
	if err != nil {
		return nil, err
	}
	return &amount, nil
}

// bindError describes a request body that could not be decoded
func bindError(err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return ledger.ErrInvalidInput{Field: typeErr.Field, Reason: "has the wrong type"}
	}
	return ledger.ErrInvalidInput{Field: "body", Reason: "must be a valid JSON object"}
}
