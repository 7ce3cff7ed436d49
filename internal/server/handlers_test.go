package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paisahub/finassist/internal/assistant"
	"paisahub/finassist/internal/categorizer"
	"paisahub/finassist/internal/logging"
	"paisahub/finassist/internal/nlparser"
)

func newTestServer() *Server {
	logger := logging.NewMockLogger()
	a := assistant.New(nil, logger)
	p := nlparser.NewParser(nlparser.WithClock(func() time.Time {
		return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	}))
	c := categorizer.New(nil, categorizer.WithLogger(logger))
	return New(":0", a, p, c, logger)
}

func doRequest(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var payload map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &payload))
	return payload
}

func TestRootAndHealth(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])

	rec = doRequest(t, s, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "healthy", body["status"])
	assert.Equal(t, true, body["ml_enabled"])
	assert.Equal(t, "INR", body["currency"])
}

func TestAIStatus(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodGet, "/api/ai/status", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec)["data"].(map[string]any)
	features := data["features"].(map[string]any)
	assert.Equal(t, true, features["smart_categorization"])
	assert.Equal(t, true, features["nlp_expense_entry"])
	assert.Equal(t, false, features["statistical_model"])
}

func TestCreateAndGetBudget(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodPost, "/api/budget",
		`{"income": 50000, "expenses": 30000}`)
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, "5000", data["recommended_savings"])
	assert.Equal(t, "15000", data["leftover"])

	rec = doRequest(t, s, http.MethodGet, "/api/budget", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, decodeBody(t, rec)["data"])
}

func TestGetBudgetBeforeCreate(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodGet, "/api/budget", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, decodeBody(t, rec)["data"])
}

func TestCreateBudgetValidationError(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodPost, "/api/budget",
		`{"income": -5, "expenses": 0}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
}

func TestCreateAndListExpenses(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodPost, "/api/expenses",
		`{"amount": 250.5, "category": "Transport"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/expenses", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].([]any)
	require.Len(t, data, 1)
	entry := data[0].(map[string]any)
	assert.Equal(t, "Transport", entry["category"])
}

func TestCreateExpenseInvalid(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodPost, "/api/expenses",
		`{"amount": -10, "category": "Transport"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/expenses", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateExpenseNLP(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodPost, "/api/expenses/nlp",
		`{"text": "spent 500 on groceries yesterday"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	payload := decodeBody(t, rec)
	data := payload["data"].(map[string]any)
	assert.Equal(t, "Groceries", data["category"])
	assert.Equal(t, "2025-03-14", data["date"])
	assert.Equal(t, true, data["auto_categorized"])

	insights := payload["ai_insights"].(map[string]any)
	assert.Equal(t, "Groceries", insights["detected_category"])
}

func TestCreateExpenseNLPUnparseable(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodPost, "/api/expenses/nlp",
		`{"text": "just a note"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateExpenseNLPDisabled(t *testing.T) {
	logger := logging.NewMockLogger()
	s := New(":0", assistant.New(nil, logger), nil, nil, logger)

	rec := doRequest(t, s, http.MethodPost, "/api/expenses/nlp",
		`{"text": "spent 500 on groceries"}`)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestSuggestCategory(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodGet,
		"/api/expenses/suggest-category?description=swiggy+dinner", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, "Dining", data["suggested_category"])
	assert.Equal(t, 0.5, data["confidence"])
}

func TestSuggestCategoryMissingDescription(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodGet, "/api/expenses/suggest-category", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSuggestCategoryDisabled(t *testing.T) {
	logger := logging.NewMockLogger()
	s := New(":0", assistant.New(nil, logger), nlparser.NewParser(), nil, logger)

	rec := doRequest(t, s, http.MethodGet,
		"/api/expenses/suggest-category?description=swiggy", "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestExpenseSummaryAndReset(t *testing.T) {
	s := newTestServer()

	doRequest(t, s, http.MethodPost, "/api/expenses", `{"amount": 100, "category": "Groceries"}`)
	doRequest(t, s, http.MethodPost, "/api/expenses", `{"amount": 200, "category": "Dining"}`)

	rec := doRequest(t, s, http.MethodGet, "/api/expenses/summary", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, float64(2), data["count"])

	rec = doRequest(t, s, http.MethodDelete, "/api/expenses/reset", "")
	require.Equal(t, http.StatusOK, rec.Code)
	result := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, float64(2), result["deleted_count"])
	assert.Equal(t, float64(0), result["remaining_count"])
}

func TestDebtsAndPayoffPlan(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodPost, "/api/debts",
		`{"name": "CreditCard", "balance": 1500, "interest_rate": 18, "minimum_payment": 50}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodPost, "/api/debts",
		`{"name": "StudentLoan", "balance": 10000, "interest_rate": 5, "minimum_payment": 100}`)
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, "11500", data["total_debt"])

	rec = doRequest(t, s, http.MethodGet, "/api/debts/payoff-plan?method=snowball", "")
	require.Equal(t, http.StatusOK, rec.Code)
	plan := decodeBody(t, rec)["data"].([]any)
	require.Len(t, plan, 2)
	assert.Contains(t, plan[0], "CreditCard")
}

func TestGoals(t *testing.T) {
	s := newTestServer()

	rec := doRequest(t, s, http.MethodPost, "/api/goals",
		`{"name": "Vacation", "amount": 50000, "target_date": "2026-06-01"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doRequest(t, s, http.MethodGet, "/api/goals", "")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].([]any)
	require.Len(t, data, 1)
}

func TestDashboardStats(t *testing.T) {
	s := newTestServer()

	doRequest(t, s, http.MethodPost, "/api/expenses", `{"amount": 100, "category": "Groceries"}`)
	doRequest(t, s, http.MethodPost, "/api/debts",
		`{"name": "Loan", "balance": 5000, "interest_rate": 7, "minimum_payment": 100}`)

	rec := doRequest(t, s, http.MethodGet, "/api/dashboard/stats", "")
	require.Equal(t, http.StatusOK, rec.Code)

	data := decodeBody(t, rec)["data"].(map[string]any)
	assert.Equal(t, float64(1), data["expense_count"])
	assert.Equal(t, float64(1), data["debt_count"])
	assert.Equal(t, "5000", data["total_debt"])
	assert.Nil(t, data["budget"])
}

func TestUnknownRoute(t *testing.T) {
	s := newTestServer()
	rec := doRequest(t, s, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
