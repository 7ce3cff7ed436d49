package assistant

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"paisahub/finassist/internal/finerror"
	"paisahub/finassist/internal/models"
)

// Summary aggregates logged expenses.
type Summary struct {
	TotalSpent decimal.Decimal            `json:"total_spent"`
	ByCategory map[string]decimal.Decimal `json:"by_category"`
	Count      int                        `json:"count"`
}

// ResetResult reports how a reset changed the expense list.
type ResetResult struct {
	DeletedCount   int `json:"deleted_count"`
	RemainingCount int `json:"remaining_count"`
}

// LogExpense records a single expense dated today and returns the stored
// entry.
func (a *Assistant) LogExpense(ctx context.Context, amount decimal.Decimal, category string) (models.ExpenseEntry, error) {
	return a.LogExpenseOn(ctx, amount, category, "")
}

// LogExpenseOn records an expense with an explicit ISO date, as produced by
// the free-text parser or a CSV import. An empty date means today.
func (a *Assistant) LogExpenseOn(ctx context.Context, amount decimal.Decimal, category, date string) (models.ExpenseEntry, error) {
	if amount.IsNegative() {
		return models.ExpenseEntry{}, finerror.NewValidationError("amount", "must be non-negative")
	}
	category = strings.TrimSpace(category)
	if category == "" {
		return models.ExpenseEntry{}, finerror.NewValidationError("category", "cannot be empty")
	}

	var entry models.ExpenseEntry
	if date = strings.TrimSpace(date); date == "" {
		entry = models.NewExpenseEntry(amount, category)
	} else {
		entry = models.NewExpenseEntryOn(amount, category, date)
	}

	a.mu.Lock()
	store := a.store
	a.mu.Unlock()

	if store != nil {
		if err := store.SaveExpense(ctx, &entry); err != nil {
			a.logger.WithError(err).Warn("Could not persist expense")
		}
	}

	a.mu.Lock()
	a.expenses = append(a.expenses, entry)
	a.mu.Unlock()

	return entry, nil
}

// Expenses returns a copy of all logged expenses in insertion order.
func (a *Assistant) Expenses() []models.ExpenseEntry {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.ExpenseEntry, len(a.expenses))
	copy(out, a.expenses)
	return out
}

// ExpenseSummary returns the total spent, a per-category breakdown and the
// entry count.
func (a *Assistant) ExpenseSummary() Summary {
	a.mu.Lock()
	defer a.mu.Unlock()

	total := decimal.Zero
	byCategory := make(map[string]decimal.Decimal)
	for _, e := range a.expenses {
		total = total.Add(e.Amount)
		byCategory[e.Category] = byCategory[e.Category].Add(e.Amount)
	}
	for cat, sum := range byCategory {
		byCategory[cat] = roundMoney(sum)
	}
	return Summary{
		TotalSpent: roundMoney(total),
		ByCategory: byCategory,
		Count:      len(a.expenses),
	}
}

// ResetExpenses deletes expenses. With an empty beforeDate everything is
// deleted; otherwise only entries dated strictly before it are removed.
func (a *Assistant) ResetExpenses(ctx context.Context, beforeDate string) ResetResult {
	a.mu.Lock()
	store := a.store

	var kept []models.ExpenseEntry
	if beforeDate != "" {
		for _, e := range a.expenses {
			if e.Date >= beforeDate {
				kept = append(kept, e)
			}
		}
	}
	deleted := len(a.expenses) - len(kept)
	a.expenses = kept
	remaining := len(kept)
	a.mu.Unlock()

	if store != nil {
		var err error
		if beforeDate != "" {
			_, err = store.DeleteExpensesBefore(ctx, beforeDate)
		} else {
			_, err = store.DeleteAllExpenses(ctx)
		}
		if err != nil {
			a.logger.WithError(err).Warn("Could not persist expense reset")
		}
	}

	return ResetResult{DeletedCount: deleted, RemainingCount: remaining}
}
