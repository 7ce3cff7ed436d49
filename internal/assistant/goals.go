package assistant

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"paisahub/finassist/internal/finerror"
	"paisahub/finassist/internal/models"
)

// SetSavingsGoal creates or updates a named savings goal.
func (a *Assistant) SetSavingsGoal(ctx context.Context, goal models.SavingsGoal) (models.SavingsGoal, error) {
	goal.Name = strings.TrimSpace(goal.Name)
	if goal.Name == "" {
		return models.SavingsGoal{}, finerror.NewValidationError("name", "cannot be empty")
	}
	if goal.Amount.IsNegative() {
		return models.SavingsGoal{}, finerror.NewValidationError("amount", "must be non-negative")
	}

	a.mu.Lock()
	replaced := false
	for i := range a.goals {
		if a.goals[i].Name == goal.Name {
			a.goals[i] = goal
			replaced = true
			break
		}
	}
	if !replaced {
		a.goals = append(a.goals, goal)
	}
	store := a.store
	a.mu.Unlock()

	if store != nil {
		if err := store.UpsertGoal(ctx, goal); err != nil {
			a.logger.WithError(err).Warn("Could not persist savings goal")
		}
	}

	return goal, nil
}

// Goals returns a copy of all savings goals in insertion order.
func (a *Assistant) Goals() []models.SavingsGoal {
	a.mu.Lock()
	defer a.mu.Unlock()
	out := make([]models.SavingsGoal, len(a.goals))
	copy(out, a.goals)
	return out
}

// SavingsProgress renders one line per goal.
func (a *Assistant) SavingsProgress() []string {
	goals := a.Goals()
	lines := make([]string, len(goals))
	for i, g := range goals {
		lines[i] = fmt.Sprintf("Goal: %s - Target: ₹%s by %s", g.Name, g.Amount, g.TargetDate)
	}
	return lines
}

var educationResources = map[string]string{
	"budgeting":       "Learn budgeting basics: https://www.consumerfinance.gov/learn/",
	"investing":       "Beginner investing guides: https://www.investopedia.com/",
	"debt_management": "Debt management strategies: https://www.consumerfinance.gov/",
}

// FinancialEducation returns a short pointer to resources for a topic.
func (a *Assistant) FinancialEducation(topic string) string {
	if resource, ok := educationResources[strings.ToLower(topic)]; ok {
		return resource
	}
	return "No curated resources for this topic yet."
}

var motivationalQuotes = []string{
	"Start where you are. Use what you have. Do what you can.",
	"The secret to getting ahead is getting started.",
	"Don't watch the clock; do what it does. Keep going.",
}

// MotivationalQuote returns a random quote.
func (a *Assistant) MotivationalQuote() string {
	return motivationalQuotes[rand.Intn(len(motivationalQuotes))]
}
