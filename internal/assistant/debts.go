package assistant

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"paisahub/finassist/internal/finerror"
	"paisahub/finassist/internal/models"
)

// Payoff plan orderings.
const (
	MethodAvalanche = "avalanche"
	MethodSnowball  = "snowball"
)

// ManageDebt adds or updates a named debt and returns the new total balance
// across all debts.
func (a *Assistant) ManageDebt(ctx context.Context, debt models.Debt) (decimal.Decimal, error) {
	debt.Name = strings.TrimSpace(debt.Name)
	if debt.Name == "" {
		return decimal.Zero, finerror.NewValidationError("name", "cannot be empty")
	}
	if debt.Balance.IsNegative() || debt.InterestRate.IsNegative() || debt.MinimumPayment.IsNegative() {
		return decimal.Zero, finerror.NewValidationError("debt", "values must be non-negative")
	}

	a.mu.Lock()
	replaced := false
	for i := range a.debts {
		if a.debts[i].Name == debt.Name {
			a.debts[i] = debt
			replaced = true
			break
		}
	}
	if !replaced {
		a.debts = append(a.debts, debt)
	}
	total := decimal.Zero
	for _, d := range a.debts {
		total = total.Add(d.Balance)
	}
	store := a.store
	a.mu.Unlock()

	if store != nil {
		if err := store.UpsertDebt(ctx, debt); err != nil {
			a.logger.WithError(err).Warn("Could not persist debt")
		}
	}

	return roundMoney(total), nil
}

// Debts returns a copy of all debts in insertion order.
func (a *Assistant) Debts() []models.Debt {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.Debt, len(a.debts))
	copy(out, a.debts)
	return out
}

// DebtPayoffPlan orders the debts by the chosen method and renders one line
// per debt. Avalanche pays the highest interest rate first, snowball the
// smallest balance first; any unknown method falls back to avalanche. Equal
// keys keep insertion order.
func (a *Assistant) DebtPayoffPlan(method string) []string {
	a.mu.Lock()
	debts := make([]models.Debt, len(a.debts))
	copy(debts, a.debts)
	a.mu.Unlock()

	if len(debts) == 0 {
		return []string{"No debts recorded."}
	}

	if method == MethodSnowball {
		sort.SliceStable(debts, func(i, j int) bool {
			return debts[i].Balance.LessThan(debts[j].Balance)
		})
	} else {
		sort.SliceStable(debts, func(i, j int) bool {
			return debts[i].InterestRate.GreaterThan(debts[j].InterestRate)
		})
	}

	plan := make([]string, len(debts))
	for i, d := range debts {
		plan[i] = fmt.Sprintf("Pay off %s: ₹%s at %s%% (min ₹%s/mo)",
			d.Name, d.Balance, d.InterestRate, d.MinimumPayment)
	}
	return plan
}
