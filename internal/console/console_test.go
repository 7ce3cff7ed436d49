package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"paisahub/finassist/internal/assistant"
	"paisahub/finassist/internal/categorizer"
	"paisahub/finassist/internal/logging"
	"paisahub/finassist/internal/nlparser"
)

func runConsole(t *testing.T, input string) string {
	t.Helper()
	logger := logging.NewMockLogger()
	a := assistant.New(nil, logger)
	p := nlparser.NewParser(nlparser.WithClock(func() time.Time {
		return time.Date(2025, 3, 15, 12, 0, 0, 0, time.UTC)
	}))
	cat := categorizer.New(nil, categorizer.WithLogger(logger))

	var out bytes.Buffer
	c := New(a, p, cat, strings.NewReader(input), &out, logger)
	assert.NoError(t, c.Run(context.Background()))
	return out.String()
}

func TestQuit(t *testing.T) {
	out := runConsole(t, "quit\n")
	assert.Contains(t, out, "Goodbye!")
}

func TestHelp(t *testing.T) {
	out := runConsole(t, "help\nquit\n")
	assert.Contains(t, out, "Income <amount> Expenses <amount>")
}

func TestBudgetFlow(t *testing.T) {
	out := runConsole(t, "Income 4000 Expenses 2500\nshow budget\nquit\n")
	assert.Contains(t, out, "Budget created:")
	assert.Contains(t, out, "Recommended savings: ₹400.00")
	assert.Contains(t, out, "Current budget:")
}

func TestBudgetUnparseable(t *testing.T) {
	out := runConsole(t, "Income only expenses\nquit\n")
	assert.Contains(t, out, "Could not parse. Try: Income 4000 Expenses 2500")
}

func TestShowBudgetUnset(t *testing.T) {
	out := runConsole(t, "show budget\nquit\n")
	assert.Contains(t, out, "No budget set.")
}

func TestLogExpense(t *testing.T) {
	out := runConsole(t, "Log 200 groceries\nshow summary\nquit\n")
	assert.Contains(t, out, "Logged: ₹200.00 in Groceries")
	assert.Contains(t, out, "Total spent: ₹200.00")
}

func TestLogExpenseSegments(t *testing.T) {
	out := runConsole(t, "Log 200 groceries; 50 dining\nquit\n")
	assert.Contains(t, out, "Logged: ₹200.00 in Groceries")
	assert.Contains(t, out, "Logged: ₹50.00 in Dining")
}

func TestLogExpenseSegmentsCommaSeparated(t *testing.T) {
	out := runConsole(t, "Log 50 groceries, 30 coffee\nquit\n")
	assert.Contains(t, out, "Logged: ₹50.00 in Groceries")
	assert.Contains(t, out, "Logged: ₹30.00 in Coffee")
}

func TestLogExpenseThousandsComma(t *testing.T) {
	out := runConsole(t, "Log 1,200.50 dining\nquit\n")
	assert.Contains(t, out, "Logged: ₹1200.50 in Dining")
}

func TestAddDebtAndPlan(t *testing.T) {
	input := "Add debts CreditCard 1500 18 50; StudentLoan 10000 5 100\ndebt plan\nquit\n"
	out := runConsole(t, input)
	assert.Contains(t, out, `Debt "CreditCard" recorded`)
	assert.Contains(t, out, "Debt payoff plan (avalanche method):")

	i := strings.Index(out, "Pay off CreditCard")
	j := strings.Index(out, "Pay off StudentLoan")
	assert.True(t, i >= 0 && j >= 0 && i < j, "avalanche pays highest rate first")
}

func TestSetGoalAndShowGoals(t *testing.T) {
	out := runConsole(t, "Set goal Vacation 50000 2026-06-01\nshow goals\nquit\n")
	assert.Contains(t, out, `Goal "Vacation" set`)
	assert.Contains(t, out, "Goal: Vacation")
}

func TestSuggest(t *testing.T) {
	out := runConsole(t, "suggest swiggy dinner\nquit\n")
	assert.Contains(t, out, "confident this is Dining")
}

func TestFreeTextExpense(t *testing.T) {
	out := runConsole(t, "spent 500 on groceries yesterday\nshow summary\nquit\n")
	assert.Contains(t, out, "Logged: ₹500.00 in Groceries on 2025-03-14")
	assert.Contains(t, out, "Total spent: ₹500.00")
}

func TestFreeTextNotUnderstood(t *testing.T) {
	out := runConsole(t, "hello there\nquit\n")
	assert.Contains(t, out, "I didn't understand that.")
}

func TestResetExpenses(t *testing.T) {
	out := runConsole(t, "Log 100 dining\nreset expenses\nquit\n")
	assert.Contains(t, out, "Deleted 1 expense(s). 0 remaining.")
}

func TestEducationAndQuote(t *testing.T) {
	out := runConsole(t, "education budgeting\nquote\nquit\n")
	assert.Contains(t, out, "consumerfinance.gov")
}
