package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/personal-finance-tracker/internal/api/middleware"
	"github.com/personal-finance-tracker/internal/domain/ledger"
)

type MockStore struct {
	mock.Mock
}

func (m *MockStore) Load(ctx context.Context) (*ledger.Ledger, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Ledger), args.Error(1)
}

func (m *MockStore) SetStartingBalance(ctx context.Context, amount decimal.Decimal) (ledger.Money, error) {
	args := m.Called(ctx, amount)
	return args.Get(0).(ledger.Money), args.Error(1)
}

func (m *MockStore) CreateEntry(ctx context.Context, in ledger.CreateEntryInput) (ledger.Entry, error) {
	args := m.Called(ctx, in)
	return args.Get(0).(ledger.Entry), args.Error(1)
}

func (m *MockStore) UpdateEntry(ctx context.Context, id string, in ledger.UpdateEntryInput) (ledger.Entry, error) {
	args := m.Called(ctx, id, in)
	return args.Get(0).(ledger.Entry), args.Error(1)
}

func (m *MockStore) DeleteEntry(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type envelope struct {
	Data          json.RawMessage `json:"data"`
	Error         *ErrorInfo      `json:"error"`
	CorrelationID string          `json:"correlation_id"`
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func setupTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.CorrelationID())
	return r
}

func doRequest(t *testing.T, router *gin.Engine, method, path, body string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)

	var env envelope
	if rr.Header().Get("Content-Type") == "application/json; charset=utf-8" {
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env))
	}
	return rr, env
}

func testEntry(t *testing.T, id, kind, amount, category, description, date string) ledger.Entry {
	t.Helper()
	d := decimal.RequireFromString(amount)
	e, err := ledger.NewEntry(id, ledger.CreateEntryInput{
		Kind:        kind,
		Amount:      &d,
		Category:    category,
		Description: description,
		Date:        date,
	})
	require.NoError(t, err)
	return e
}

func decimalEquals(s string) interface{} {
	expected := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool {
		return d.Equal(expected)
	})
}
