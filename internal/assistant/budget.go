package assistant

import (
	"context"

	"github.com/shopspring/decimal"

	"paisahub/finassist/internal/finerror"
	"paisahub/finassist/internal/models"
)

// DefaultSavingsPercentage is the share of income recommended for savings
// when the caller does not supply one.
const DefaultSavingsPercentage = 0.10

// CreateBudget computes the recommended savings and leftover for a monthly
// income and expense total, stores the budget, and returns it. A
// savingsPercentage of zero is valid; pass DefaultSavingsPercentage for the
// standard recommendation.
func (a *Assistant) CreateBudget(ctx context.Context, income, expensesTotal decimal.Decimal, savingsPercentage float64) (models.Budget, error) {
	if income.IsNegative() {
		return models.Budget{}, finerror.NewValidationError("income", "must be non-negative")
	}
	if expensesTotal.IsNegative() {
		return models.Budget{}, finerror.NewValidationError("expenses", "must be non-negative")
	}
	if savingsPercentage < 0 || savingsPercentage > 1 {
		return models.Budget{}, finerror.NewValidationError("savings_percentage", "must be between 0 and 1")
	}

	recommended := roundMoney(income.Mul(decimal.NewFromFloat(savingsPercentage)))
	leftover := income.Sub(expensesTotal).Sub(recommended)
	if leftover.IsNegative() {
		leftover = decimal.Zero
	}

	budget := models.Budget{
		Income:             income,
		ExpensesTotal:      expensesTotal,
		RecommendedSavings: recommended,
		Leftover:           roundMoney(leftover),
	}

	a.mu.Lock()
	a.budget = &budget
	store := a.store
	a.mu.Unlock()

	if store != nil {
		if err := store.SaveBudget(ctx, budget); err != nil {
			a.logger.WithError(err).Warn("Could not persist budget")
		}
	}
	return budget, nil
}

// Budget returns the most recently created budget, or false when none exists.
func (a *Assistant) Budget() (models.Budget, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.budget == nil {
		return models.Budget{}, false
	}
	return *a.budget, true
}
