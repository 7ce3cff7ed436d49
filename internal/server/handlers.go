package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"paisahub/finassist/internal/assistant"
	"paisahub/finassist/internal/models"
	"paisahub/finassist/internal/nlparser"
)

type budgetRequest struct {
	Income            decimal.Decimal `json:"income"`
	Expenses          decimal.Decimal `json:"expenses"`
	SavingsPercentage *float64        `json:"savings_percentage"`
}

type expenseRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Category string          `json:"category"`
}

type nlpExpenseRequest struct {
	Text string `json:"text"`
}

type debtRequest struct {
	Name           string          `json:"name"`
	Balance        decimal.Decimal `json:"balance"`
	InterestRate   decimal.Decimal `json:"interest_rate"`
	MinimumPayment decimal.Decimal `json:"minimum_payment"`
}

type goalRequest struct {
	Name       string          `json:"name"`
	Amount     decimal.Decimal `json:"amount"`
	TargetDate string          `json:"target_date"`
}

func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

func (s *Server) handleRoot(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"message": "Personal Finance Assistant API",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]any{
		"status":     "healthy",
		"ml_enabled": s.categorizer != nil,
		"currency":   "INR",
		"region":     "India",
	})
}

func (s *Server) handleAIStatus(w http.ResponseWriter, _ *http.Request) {
	enabled := s.categorizer != nil
	s.respondData(w, map[string]any{
		"ml_enabled": enabled,
		"features": map[string]bool{
			"smart_categorization": enabled,
			"nlp_expense_entry":    enabled && s.parser != nil,
			"auto_suggestions":     enabled,
			"statistical_model":    enabled && s.categorizer.HasPredictor(),
		},
	})
}

func (s *Server) handleCreateBudget(w http.ResponseWriter, r *http.Request) {
	var req budgetRequest
	if !s.decodeBody(w, r, &req) {
		return
	}
	pct := assistant.DefaultSavingsPercentage
	if req.SavingsPercentage != nil {
		pct = *req.SavingsPercentage
	}

	budget, err := s.assistant.CreateBudget(r.Context(), req.Income, req.Expenses, pct)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondData(w, budget)
}

func (s *Server) handleGetBudget(w http.ResponseWriter, _ *http.Request) {
	budget, ok := s.assistant.Budget()
	if !ok {
		s.respondData(w, nil)
		return
	}
	s.respondData(w, budget)
}

func (s *Server) handleCreateExpense(w http.ResponseWriter, r *http.Request) {
	var req expenseRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	entry, err := s.assistant.LogExpense(r.Context(), req.Amount, req.Category)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondData(w, entry)
}

func (s *Server) handleGetExpenses(w http.ResponseWriter, _ *http.Request) {
	s.respondData(w, s.assistant.Expenses())
}

func (s *Server) handleCreateExpenseNLP(w http.ResponseWriter, r *http.Request) {
	if s.parser == nil {
		s.respondError(w, http.StatusServiceUnavailable,
			"AI features not available. Please use the standard form.")
		return
	}

	var req nlpExpenseRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	parsed := s.parser.Parse(req.Text)
	if !nlparser.Validate(parsed) {
		s.respondError(w, http.StatusBadRequest,
			"Could not understand. Try: 'spent [amount] on [category]'")
		return
	}

	entry, err := s.assistant.LogExpenseOn(r.Context(), parsed.Amount, string(parsed.Category), parsed.Date)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data": map[string]any{
			"amount":           entry.Amount,
			"category":         entry.Category,
			"date":             entry.Date,
			"auto_categorized": true,
			"confidence":       parsed.Confidence,
			"merchant":         parsed.Merchant,
		},
		"ai_insights": map[string]any{
			"parsed_text":       req.Text,
			"confidence":        parsed.Confidence,
			"detected_category": parsed.Category,
			"detected_merchant": parsed.Merchant,
			"payment_method":    parsed.PaymentMethod,
		},
	})
}

func (s *Server) handleSuggestCategory(w http.ResponseWriter, r *http.Request) {
	if s.categorizer == nil {
		s.respondError(w, http.StatusServiceUnavailable, "AI features not available")
		return
	}

	description := r.URL.Query().Get("description")
	if description == "" {
		s.respondError(w, http.StatusBadRequest, "description query parameter is required")
		return
	}

	category, confidence := s.categorizer.Suggest(r.Context(), description)
	s.respondData(w, map[string]any{
		"suggested_category": category,
		"confidence":         confidence,
		"description":        fmt.Sprintf("%.0f%% confident this is %s", confidence*100, category),
	})
}

func (s *Server) handleExpenseSummary(w http.ResponseWriter, _ *http.Request) {
	s.respondData(w, s.assistant.ExpenseSummary())
}

func (s *Server) handleResetExpenses(w http.ResponseWriter, r *http.Request) {
	beforeDate := r.URL.Query().Get("before_date")
	result := s.assistant.ResetExpenses(r.Context(), beforeDate)
	s.respondJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    result,
		"message": fmt.Sprintf("Deleted %d expense(s). %d remaining.",
			result.DeletedCount, result.RemainingCount),
	})
}

func (s *Server) handleCreateDebt(w http.ResponseWriter, r *http.Request) {
	var req debtRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	total, err := s.assistant.ManageDebt(r.Context(), models.Debt{
		Name:           req.Name,
		Balance:        req.Balance,
		InterestRate:   req.InterestRate,
		MinimumPayment: req.MinimumPayment,
	})
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondData(w, map[string]any{"total_debt": total})
}

func (s *Server) handleGetDebts(w http.ResponseWriter, _ *http.Request) {
	s.respondData(w, s.assistant.Debts())
}

func (s *Server) handlePayoffPlan(w http.ResponseWriter, r *http.Request) {
	method := r.URL.Query().Get("method")
	if method == "" {
		method = assistant.MethodAvalanche
	}
	s.respondData(w, s.assistant.DebtPayoffPlan(method))
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	goal, err := s.assistant.SetSavingsGoal(r.Context(), models.SavingsGoal{
		Name:       req.Name,
		Amount:     req.Amount,
		TargetDate: req.TargetDate,
	})
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.respondData(w, goal)
}

func (s *Server) handleGetGoals(w http.ResponseWriter, _ *http.Request) {
	s.respondData(w, s.assistant.Goals())
}

func (s *Server) handleDashboardStats(w http.ResponseWriter, _ *http.Request) {
	summary := s.assistant.ExpenseSummary()

	totalDebt := decimal.Zero
	debts := s.assistant.Debts()
	for _, d := range debts {
		totalDebt = totalDebt.Add(d.Balance)
	}

	totalGoals := decimal.Zero
	goals := s.assistant.Goals()
	for _, g := range goals {
		totalGoals = totalGoals.Add(g.Amount)
	}

	stats := map[string]any{
		"total_spent":   summary.TotalSpent,
		"expense_count": summary.Count,
		"total_debt":    totalDebt,
		"debt_count":    len(debts),
		"total_goals":   totalGoals,
		"goal_count":    len(goals),
	}
	if budget, ok := s.assistant.Budget(); ok {
		stats["budget"] = budget
	} else {
		stats["budget"] = nil
	}
	s.respondData(w, stats)
}
