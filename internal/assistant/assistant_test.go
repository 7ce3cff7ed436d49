package assistant

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paisahub/finassist/internal/logging"
	"paisahub/finassist/internal/models"
)

// memStore is an in-memory Store used by tests. Setting failAll makes every
// method return an error.
type memStore struct {
	expenses []models.ExpenseEntry
	debts    []models.Debt
	goals    []models.SavingsGoal
	budget   *models.Budget
	nextID   int64
	failAll  bool
}

var errStore = errors.New("store unavailable")

func (s *memStore) LoadExpenses(context.Context) ([]models.ExpenseEntry, error) {
	if s.failAll {
		return nil, errStore
	}
	return s.expenses, nil
}

func (s *memStore) SaveExpense(_ context.Context, entry *models.ExpenseEntry) error {
	if s.failAll {
		return errStore
	}
	s.nextID++
	entry.ID = s.nextID
	s.expenses = append(s.expenses, *entry)
	return nil
}

func (s *memStore) DeleteExpensesBefore(_ context.Context, date string) (int64, error) {
	if s.failAll {
		return 0, errStore
	}
	var kept []models.ExpenseEntry
	for _, e := range s.expenses {
		if e.Date >= date {
			kept = append(kept, e)
		}
	}
	deleted := int64(len(s.expenses) - len(kept))
	s.expenses = kept
	return deleted, nil
}

func (s *memStore) DeleteAllExpenses(context.Context) (int64, error) {
	if s.failAll {
		return 0, errStore
	}
	deleted := int64(len(s.expenses))
	s.expenses = nil
	return deleted, nil
}

func (s *memStore) LoadDebts(context.Context) ([]models.Debt, error) {
	if s.failAll {
		return nil, errStore
	}
	return s.debts, nil
}

func (s *memStore) UpsertDebt(_ context.Context, debt models.Debt) error {
	if s.failAll {
		return errStore
	}
	for i := range s.debts {
		if s.debts[i].Name == debt.Name {
			s.debts[i] = debt
			return nil
		}
	}
	s.debts = append(s.debts, debt)
	return nil
}

func (s *memStore) LoadGoals(context.Context) ([]models.SavingsGoal, error) {
	if s.failAll {
		return nil, errStore
	}
	return s.goals, nil
}

func (s *memStore) UpsertGoal(_ context.Context, goal models.SavingsGoal) error {
	if s.failAll {
		return errStore
	}
	for i := range s.goals {
		if s.goals[i].Name == goal.Name {
			s.goals[i] = goal
			return nil
		}
	}
	s.goals = append(s.goals, goal)
	return nil
}

func (s *memStore) LoadBudget(context.Context) (*models.Budget, error) {
	if s.failAll {
		return nil, errStore
	}
	return s.budget, nil
}

func (s *memStore) SaveBudget(_ context.Context, budget models.Budget) error {
	if s.failAll {
		return errStore
	}
	s.budget = &budget
	return nil
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newMemoryAssistant() *Assistant {
	return New(nil, logging.NewMockLogger())
}

func TestCreateBudget(t *testing.T) {
	a := newMemoryAssistant()

	budget, err := a.CreateBudget(context.Background(), dec("50000"), dec("30000"), DefaultSavingsPercentage)
	require.NoError(t, err)

	assert.True(t, budget.RecommendedSavings.Equal(dec("5000")))
	assert.True(t, budget.Leftover.Equal(dec("15000")))

	stored, ok := a.Budget()
	require.True(t, ok)
	assert.True(t, stored.Income.Equal(dec("50000")))
}

func TestCreateBudgetLeftoverFloorsAtZero(t *testing.T) {
	a := newMemoryAssistant()

	budget, err := a.CreateBudget(context.Background(), dec("1000"), dec("2000"), DefaultSavingsPercentage)
	require.NoError(t, err)
	assert.True(t, budget.Leftover.IsZero())
}

func TestCreateBudgetValidation(t *testing.T) {
	a := newMemoryAssistant()
	ctx := context.Background()

	_, err := a.CreateBudget(ctx, dec("-1"), dec("0"), 0.1)
	assert.Error(t, err)

	_, err = a.CreateBudget(ctx, dec("100"), dec("-5"), 0.1)
	assert.Error(t, err)

	_, err = a.CreateBudget(ctx, dec("100"), dec("50"), 1.5)
	assert.Error(t, err)
}

func TestLogExpenseAndSummary(t *testing.T) {
	a := newMemoryAssistant()
	ctx := context.Background()

	_, err := a.LogExpense(ctx, dec("200"), "Groceries")
	require.NoError(t, err)
	_, err = a.LogExpense(ctx, dec("50.50"), "Dining")
	require.NoError(t, err)
	_, err = a.LogExpense(ctx, dec("100"), "Groceries")
	require.NoError(t, err)

	summary := a.ExpenseSummary()
	assert.Equal(t, 3, summary.Count)
	assert.True(t, summary.TotalSpent.Equal(dec("350.50")))
	assert.True(t, summary.ByCategory["Groceries"].Equal(dec("300")))
	assert.True(t, summary.ByCategory["Dining"].Equal(dec("50.50")))
}

func TestLogExpenseValidation(t *testing.T) {
	a := newMemoryAssistant()
	ctx := context.Background()

	_, err := a.LogExpense(ctx, dec("-10"), "Groceries")
	assert.Error(t, err)

	_, err = a.LogExpense(ctx, dec("10"), "   ")
	assert.Error(t, err)
}

func TestLogExpenseOn(t *testing.T) {
	a := newMemoryAssistant()
	ctx := context.Background()

	entry, err := a.LogExpenseOn(ctx, dec("500"), "Groceries", "2025-03-14")
	require.NoError(t, err)
	assert.Equal(t, "2025-03-14", entry.Date)

	entry, err = a.LogExpenseOn(ctx, dec("100"), "Dining", "")
	require.NoError(t, err)
	assert.Equal(t, time.Now().Format(models.DateLayoutISO), entry.Date)

	_, err = a.LogExpenseOn(ctx, dec("-10"), "Groceries", "2025-03-14")
	assert.Error(t, err)
}

func TestResetExpensesAll(t *testing.T) {
	a := newMemoryAssistant()
	ctx := context.Background()

	_, _ = a.LogExpense(ctx, dec("100"), "Groceries")
	_, _ = a.LogExpense(ctx, dec("200"), "Dining")

	result := a.ResetExpenses(ctx, "")
	assert.Equal(t, 2, result.DeletedCount)
	assert.Equal(t, 0, result.RemainingCount)
	assert.Empty(t, a.Expenses())
}

func TestResetExpensesBeforeDate(t *testing.T) {
	a := newMemoryAssistant()
	a.expenses = []models.ExpenseEntry{
		{Amount: dec("100"), Category: "Groceries", Date: "2025-01-10"},
		{Amount: dec("200"), Category: "Dining", Date: "2025-02-10"},
		{Amount: dec("300"), Category: "Transport", Date: "2025-03-10"},
	}

	result := a.ResetExpenses(context.Background(), "2025-02-10")
	assert.Equal(t, 1, result.DeletedCount)
	assert.Equal(t, 2, result.RemainingCount)
}

func TestManageDebtTotals(t *testing.T) {
	a := newMemoryAssistant()
	ctx := context.Background()

	total, err := a.ManageDebt(ctx, models.Debt{
		Name: "CreditCard", Balance: dec("1500"), InterestRate: dec("18"), MinimumPayment: dec("50"),
	})
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("1500")))

	total, err = a.ManageDebt(ctx, models.Debt{
		Name: "StudentLoan", Balance: dec("10000"), InterestRate: dec("5"), MinimumPayment: dec("100"),
	})
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("11500")))

	// Updating an existing debt replaces it rather than adding.
	total, err = a.ManageDebt(ctx, models.Debt{
		Name: "CreditCard", Balance: dec("1000"), InterestRate: dec("18"), MinimumPayment: dec("50"),
	})
	require.NoError(t, err)
	assert.True(t, total.Equal(dec("11000")))
}

func TestManageDebtValidation(t *testing.T) {
	a := newMemoryAssistant()
	ctx := context.Background()

	_, err := a.ManageDebt(ctx, models.Debt{Name: "  ", Balance: dec("100")})
	assert.Error(t, err)

	_, err = a.ManageDebt(ctx, models.Debt{Name: "Loan", Balance: dec("-1")})
	assert.Error(t, err)
}

func TestDebtPayoffPlanOrdering(t *testing.T) {
	a := newMemoryAssistant()
	ctx := context.Background()

	_, _ = a.ManageDebt(ctx, models.Debt{Name: "StudentLoan", Balance: dec("10000"), InterestRate: dec("5"), MinimumPayment: dec("100")})
	_, _ = a.ManageDebt(ctx, models.Debt{Name: "CreditCard", Balance: dec("1500"), InterestRate: dec("18"), MinimumPayment: dec("50")})

	avalanche := a.DebtPayoffPlan(MethodAvalanche)
	require.Len(t, avalanche, 2)
	assert.Contains(t, avalanche[0], "CreditCard")

	snowball := a.DebtPayoffPlan(MethodSnowball)
	assert.Contains(t, snowball[0], "CreditCard")

	_, _ = a.ManageDebt(ctx, models.Debt{Name: "CarLoan", Balance: dec("500"), InterestRate: dec("9"), MinimumPayment: dec("25")})
	snowball = a.DebtPayoffPlan(MethodSnowball)
	assert.Contains(t, snowball[0], "CarLoan")
}

func TestDebtPayoffPlanEmpty(t *testing.T) {
	a := newMemoryAssistant()
	assert.Equal(t, []string{"No debts recorded."}, a.DebtPayoffPlan(MethodAvalanche))
}

func TestSavingsGoals(t *testing.T) {
	a := newMemoryAssistant()
	ctx := context.Background()

	_, err := a.SetSavingsGoal(ctx, models.SavingsGoal{Name: "Vacation", Amount: dec("50000"), TargetDate: "2026-06-01"})
	require.NoError(t, err)

	// Same name updates in place.
	_, err = a.SetSavingsGoal(ctx, models.SavingsGoal{Name: "Vacation", Amount: dec("60000"), TargetDate: "2026-08-01"})
	require.NoError(t, err)

	goals := a.Goals()
	require.Len(t, goals, 1)
	assert.True(t, goals[0].Amount.Equal(dec("60000")))

	progress := a.SavingsProgress()
	require.Len(t, progress, 1)
	assert.Contains(t, progress[0], "Vacation")
}

func TestSavingsGoalValidation(t *testing.T) {
	a := newMemoryAssistant()
	ctx := context.Background()

	_, err := a.SetSavingsGoal(ctx, models.SavingsGoal{Name: "", Amount: dec("100")})
	assert.Error(t, err)

	_, err = a.SetSavingsGoal(ctx, models.SavingsGoal{Name: "X", Amount: dec("-1")})
	assert.Error(t, err)
}

func TestFinancialEducation(t *testing.T) {
	a := newMemoryAssistant()
	assert.Contains(t, a.FinancialEducation("Budgeting"), "consumerfinance.gov")
	assert.Equal(t, "No curated resources for this topic yet.", a.FinancialEducation("crypto"))
}

func TestMotivationalQuote(t *testing.T) {
	a := newMemoryAssistant()
	assert.Contains(t, motivationalQuotes, a.MotivationalQuote())
}

func TestPersistenceRoundTrip(t *testing.T) {
	store := &memStore{}
	a := New(store, logging.NewMockLogger())
	ctx := context.Background()

	_, err := a.LogExpense(ctx, dec("250"), "Transport")
	require.NoError(t, err)
	_, err = a.ManageDebt(ctx, models.Debt{Name: "Loan", Balance: dec("5000"), InterestRate: dec("7"), MinimumPayment: dec("100")})
	require.NoError(t, err)
	_, err = a.SetSavingsGoal(ctx, models.SavingsGoal{Name: "Fund", Amount: dec("10000"), TargetDate: "2026-01-01"})
	require.NoError(t, err)
	_, err = a.CreateBudget(ctx, dec("40000"), dec("25000"), DefaultSavingsPercentage)
	require.NoError(t, err)

	// A fresh assistant on the same store sees everything.
	b := New(store, logging.NewMockLogger())
	assert.Len(t, b.Expenses(), 1)
	assert.Len(t, b.Debts(), 1)
	assert.Len(t, b.Goals(), 1)
	_, ok := b.Budget()
	assert.True(t, ok)
}

func TestStoreFailureIsGraceful(t *testing.T) {
	logger := logging.NewMockLogger()
	a := New(&memStore{failAll: true}, logger)

	// Load failure degrades to memory-only.
	assert.False(t, a.Persistent())
	assert.True(t, logger.HasEntry("warning", "Could not load persisted state, continuing in memory only"))

	// Operations still work.
	_, err := a.LogExpense(context.Background(), dec("100"), "Groceries")
	require.NoError(t, err)
	assert.Equal(t, 1, a.ExpenseSummary().Count)
}
