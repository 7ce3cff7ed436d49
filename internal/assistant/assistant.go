// Package assistant implements the budgeting, expense, debt and savings-goal
// operations behind both the HTTP API and the interactive console. State is
// held in memory and mirrored to a persistent store when one is attached;
// persistence failures are logged and never fail the operation.
package assistant

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"paisahub/finassist/internal/logging"
	"paisahub/finassist/internal/models"
)

// Store persists assistant state. All methods must be safe for sequential use
// from the assistant's lock.
type Store interface {
	LoadExpenses(ctx context.Context) ([]models.ExpenseEntry, error)
	SaveExpense(ctx context.Context, entry *models.ExpenseEntry) error
	DeleteExpensesBefore(ctx context.Context, date string) (int64, error)
	DeleteAllExpenses(ctx context.Context) (int64, error)

	LoadDebts(ctx context.Context) ([]models.Debt, error)
	UpsertDebt(ctx context.Context, debt models.Debt) error

	LoadGoals(ctx context.Context) ([]models.SavingsGoal, error)
	UpsertGoal(ctx context.Context, goal models.SavingsGoal) error

	LoadBudget(ctx context.Context) (*models.Budget, error)
	SaveBudget(ctx context.Context, budget models.Budget) error
}

// Assistant is the in-memory finance state plus its operations. All exported
// methods are safe for concurrent use.
type Assistant struct {
	mu sync.Mutex

	budget   *models.Budget
	expenses []models.ExpenseEntry
	debts    []models.Debt
	goals    []models.SavingsGoal

	store  Store
	logger logging.Logger
}

// New creates an Assistant. A nil store leaves it memory-only. When loading
// existing state from the store fails the assistant degrades to memory-only
// instead of failing.
func New(store Store, logger logging.Logger) *Assistant {
	if logger == nil {
		logger = logging.GetLogger()
	}
	a := &Assistant{store: store, logger: logger}
	if store != nil {
		if err := a.loadFromStore(context.Background()); err != nil {
			logger.WithError(err).Warn("Could not load persisted state, continuing in memory only")
			a.store = nil
		}
	}
	return a
}

func (a *Assistant) loadFromStore(ctx context.Context) error {
	expenses, err := a.store.LoadExpenses(ctx)
	if err != nil {
		return err
	}
	debts, err := a.store.LoadDebts(ctx)
	if err != nil {
		return err
	}
	goals, err := a.store.LoadGoals(ctx)
	if err != nil {
		return err
	}
	budget, err := a.store.LoadBudget(ctx)
	if err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	a.expenses = expenses
	a.debts = debts
	a.goals = goals
	a.budget = budget
	return nil
}

// Persistent reports whether a store is attached.
func (a *Assistant) Persistent() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.store != nil
}

// roundMoney rounds to two decimal places, the precision used everywhere
// money is reported.
func roundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
