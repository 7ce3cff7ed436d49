// Package console provides the interactive text front-end. It recognizes a
// small command language (budgets, expense logging, debts, goals, exports)
// and falls back to free-text expense parsing for anything else.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"paisahub/finassist/internal/assistant"
	"paisahub/finassist/internal/categorizer"
	"paisahub/finassist/internal/export"
	"paisahub/finassist/internal/logging"
	"paisahub/finassist/internal/models"
	"paisahub/finassist/internal/nlparser"
)

// Console reads commands from in and writes responses to out.
type Console struct {
	assistant   *assistant.Assistant
	parser      *nlparser.Parser
	categorizer *categorizer.Categorizer
	logger      logging.Logger

	in  io.Reader
	out io.Writer

	expensesCSV string
	debtsCSV    string
}

// New creates a Console bound to the given reader and writer.
func New(a *assistant.Assistant, p *nlparser.Parser, c *categorizer.Categorizer, in io.Reader, out io.Writer, logger logging.Logger) *Console {
	if logger == nil {
		logger = logging.GetLogger()
	}
	return &Console{
		assistant:   a,
		parser:      p,
		categorizer: c,
		logger:      logger,
		in:          in,
		out:         out,
		expensesCSV: "exports/expenses.csv",
		debtsCSV:    "exports/debts.csv",
	}
}

var (
	numberPattern = regexp.MustCompile(`[-+]?[0-9]*\.?[0-9]+`)
	logPattern    = regexp.MustCompile(`(?i)^log(?: expense)?\s+\$?([0-9,.]+)\s+(.+)$`)
)

// Run reads lines until EOF, "quit" or the context is canceled.
func (c *Console) Run(ctx context.Context) error {
	fmt.Fprintln(c.out, "Personal Finance Assistant - Interactive Console")
	fmt.Fprintln(c.out, `Type "help" for commands or "quit" to exit.`)

	scanner := bufio.NewScanner(c.in)
	c.prompt()
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		text := strings.TrimSpace(scanner.Text())
		if text == "" {
			c.prompt()
			continue
		}
		if low := strings.ToLower(text); low == "quit" || low == "exit" {
			fmt.Fprintln(c.out, "Goodbye!")
			return nil
		}
		c.handleLine(ctx, text)
		c.prompt()
	}
	return scanner.Err()
}

func (c *Console) prompt() {
	fmt.Fprint(c.out, "\n> ")
}

func (c *Console) handleLine(ctx context.Context, text string) {
	low := strings.ToLower(text)

	switch {
	case low == "help":
		c.printHelp()
	case strings.HasPrefix(low, "income") && strings.Contains(low, "expenses"):
		c.createBudget(ctx, text)
	case strings.HasPrefix(low, "log ") && (strings.Contains(text, ";") || strings.Contains(text, ", ")):
		c.logExpenseSegments(ctx, strings.TrimSpace(text[4:]))
	case logPattern.MatchString(text):
		c.logExpense(ctx, text)
	case strings.HasPrefix(low, "log "):
		c.logExpenseSegments(ctx, strings.TrimSpace(text[4:]))
	case strings.HasPrefix(low, "add debt"):
		c.addDebts(ctx, text)
	case low == "show summary" || low == "expense summary" || low == "show expenses":
		c.showSummary()
	case low == "show budget" || low == "show my budget":
		c.showBudget()
	case low == "show goals" || low == "savings progress":
		c.showGoals()
	case strings.HasPrefix(low, "set goal "):
		c.setGoal(ctx, text)
	case strings.HasPrefix(low, "debt plan"):
		c.showDebtPlan(strings.TrimSpace(low[len("debt plan"):]))
	case strings.HasPrefix(low, "suggest "):
		c.suggestCategory(ctx, strings.TrimSpace(text[len("suggest "):]))
	case low == "export expenses" || low == "export my expenses":
		c.exportExpenses()
	case low == "export debts" || low == "export my debts":
		c.exportDebts()
	case strings.HasPrefix(low, "reset expenses"):
		c.resetExpenses(ctx, strings.TrimSpace(low[len("reset expenses"):]))
	case strings.HasPrefix(low, "education "):
		fmt.Fprintln(c.out, c.assistant.FinancialEducation(strings.TrimSpace(text[len("education "):])))
	case low == "quote":
		fmt.Fprintln(c.out, c.assistant.MotivationalQuote())
	default:
		c.tryFreeText(ctx, text)
	}
}

func (c *Console) printHelp() {
	fmt.Fprintln(c.out, `Commands:
  Income <amount> Expenses <amount>      create a budget
  Log <amount> <category>                log one expense
  Log 200 groceries; 50 dining           log several expenses
  Add debt <name> <balance> <rate> <min> record a debt
  Add debts Card 1500 18 50; Loan ...    record several debts
  Set goal <name> <amount> <date>        create a savings goal
  Show summary | Show budget | Show goals
  Debt plan [snowball]                   payoff plan (avalanche default)
  Suggest <description>                  category suggestion
  Export expenses | Export debts         write CSV files
  Reset expenses [before YYYY-MM-DD]     delete expenses
  Education <topic> | Quote
  ...or just type "spent 500 on groceries yesterday"`)
}

func (c *Console) createBudget(ctx context.Context, text string) {
	numbers := numberPattern.FindAllString(text, -1)
	if len(numbers) < 2 {
		fmt.Fprintln(c.out, "Could not parse. Try: Income 4000 Expenses 2500")
		return
	}
	income, err1 := decimal.NewFromString(strings.ReplaceAll(numbers[0], ",", ""))
	expenses, err2 := decimal.NewFromString(strings.ReplaceAll(numbers[1], ",", ""))
	if err1 != nil || err2 != nil {
		fmt.Fprintln(c.out, "Could not parse. Try: Income 4000 Expenses 2500")
		return
	}

	budget, err := c.assistant.CreateBudget(ctx, income, expenses, assistant.DefaultSavingsPercentage)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintln(c.out, "Budget created:")
	fmt.Fprintf(c.out, "  Income: ₹%s\n", budget.Income.StringFixed(2))
	fmt.Fprintf(c.out, "  Expenses: ₹%s\n", budget.ExpensesTotal.StringFixed(2))
	fmt.Fprintf(c.out, "  Recommended savings: ₹%s\n", budget.RecommendedSavings.StringFixed(2))
	fmt.Fprintf(c.out, "  Leftover: ₹%s\n", budget.Leftover.StringFixed(2))
}

func (c *Console) logExpense(ctx context.Context, text string) {
	match := logPattern.FindStringSubmatch(text)
	amount, err := decimal.NewFromString(strings.ReplaceAll(match[1], ",", ""))
	if err != nil {
		fmt.Fprintln(c.out, "Could not parse amount.")
		return
	}
	category := titleCase(strings.TrimSpace(match[2]))

	entry, err := c.assistant.LogExpense(ctx, amount, category)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Logged: ₹%s in %s on %s\n", entry.Amount.StringFixed(2), entry.Category, entry.Date)
}

func (c *Console) logExpenseSegments(ctx context.Context, text string) {
	items := nlparser.ParseExpenseSegments(text)
	if len(items) == 0 {
		fmt.Fprintln(c.out, "Could not parse. Try: Log 200 groceries; 50 dining")
		return
	}
	for _, item := range items {
		if !item.AmountFound {
			fmt.Fprintf(c.out, "Skipping invalid amount for %q\n", item.Category)
			continue
		}
		entry, err := c.assistant.LogExpense(ctx, item.Amount, titleCase(item.Category))
		if err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(c.out, "Logged: ₹%s in %s\n", entry.Amount.StringFixed(2), entry.Category)
	}
}

func (c *Console) addDebts(ctx context.Context, text string) {
	segments := nlparser.ParseDebtSegments(text)
	if len(segments) == 0 {
		fmt.Fprintln(c.out, "Use: Add debt CreditCard 1500 18 50")
		return
	}
	for _, seg := range segments {
		if !seg.BalanceFound || !seg.RateFound {
			fmt.Fprintf(c.out, "Skipping invalid: %s\n", seg.Name)
			continue
		}
		debt := models.Debt{
			Name:           seg.Name,
			Balance:        seg.Balance,
			InterestRate:   seg.InterestRate,
			MinimumPayment: seg.Minimum,
		}
		if _, err := c.assistant.ManageDebt(ctx, debt); err != nil {
			fmt.Fprintf(c.out, "Error: %v\n", err)
			continue
		}
		fmt.Fprintf(c.out, "Debt %q recorded: ₹%s @ %s%% (min ₹%s)\n",
			debt.Name, debt.Balance.StringFixed(2), debt.InterestRate, debt.MinimumPayment.StringFixed(2))
	}
}

func (c *Console) showSummary() {
	summary := c.assistant.ExpenseSummary()
	fmt.Fprintln(c.out, "Expense summary:")
	fmt.Fprintf(c.out, "  Total spent: ₹%s\n", summary.TotalSpent.StringFixed(2))
	fmt.Fprintln(c.out, "  By category:")
	for _, category := range sortedKeys(summary.ByCategory) {
		fmt.Fprintf(c.out, "    - %s: ₹%s\n", category, summary.ByCategory[category].StringFixed(2))
	}
}

func (c *Console) showBudget() {
	budget, ok := c.assistant.Budget()
	if !ok {
		fmt.Fprintln(c.out, "No budget set. Create one with: Income <amount> Expenses <amount>")
		return
	}
	fmt.Fprintln(c.out, "Current budget:")
	fmt.Fprintf(c.out, "  Income: ₹%s\n", budget.Income.StringFixed(2))
	fmt.Fprintf(c.out, "  Expenses: ₹%s\n", budget.ExpensesTotal.StringFixed(2))
	fmt.Fprintf(c.out, "  Recommended savings: ₹%s\n", budget.RecommendedSavings.StringFixed(2))
}

func (c *Console) showGoals() {
	goals := c.assistant.SavingsProgress()
	if len(goals) == 0 {
		fmt.Fprintln(c.out, "No savings goals set.")
		return
	}
	fmt.Fprintln(c.out, "Savings goals:")
	for _, g := range goals {
		fmt.Fprintf(c.out, "  %s\n", g)
	}
}

func (c *Console) setGoal(ctx context.Context, text string) {
	tokens := strings.Fields(text)
	if len(tokens) < 5 {
		fmt.Fprintln(c.out, "Use: Set goal <name> <amount> <YYYY-MM-DD>")
		return
	}
	amount, err := decimal.NewFromString(strings.ReplaceAll(tokens[3], ",", ""))
	if err != nil {
		fmt.Fprintln(c.out, "Could not parse goal amount.")
		return
	}
	goal, err := c.assistant.SetSavingsGoal(ctx, models.SavingsGoal{
		Name:       tokens[2],
		Amount:     amount,
		TargetDate: tokens[4],
	})
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Goal %q set: ₹%s by %s\n", goal.Name, goal.Amount.StringFixed(2), goal.TargetDate)
}

func (c *Console) showDebtPlan(method string) {
	if method == "" {
		method = assistant.MethodAvalanche
	}
	fmt.Fprintf(c.out, "Debt payoff plan (%s method):\n", method)
	for _, line := range c.assistant.DebtPayoffPlan(method) {
		fmt.Fprintf(c.out, "  %s\n", line)
	}
}

func (c *Console) suggestCategory(ctx context.Context, description string) {
	if c.categorizer == nil {
		fmt.Fprintln(c.out, "Category suggestions are not available.")
		return
	}
	category, confidence := c.categorizer.Suggest(ctx, description)
	fmt.Fprintf(c.out, "%.0f%% confident this is %s\n", confidence*100, category)
}

func (c *Console) exportExpenses() {
	if err := export.WriteExpensesFile(c.expensesCSV, c.assistant.Expenses(), c.logger); err != nil {
		fmt.Fprintf(c.out, "Export failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Exported expenses to %s\n", c.expensesCSV)
}

func (c *Console) exportDebts() {
	if err := export.WriteDebtsFile(c.debtsCSV, c.assistant.Debts(), c.logger); err != nil {
		fmt.Fprintf(c.out, "Export failed: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Exported debts to %s\n", c.debtsCSV)
}

func (c *Console) resetExpenses(ctx context.Context, rest string) {
	beforeDate := strings.TrimSpace(strings.TrimPrefix(rest, "before"))
	result := c.assistant.ResetExpenses(ctx, beforeDate)
	fmt.Fprintf(c.out, "Deleted %d expense(s). %d remaining.\n",
		result.DeletedCount, result.RemainingCount)
}

// tryFreeText runs the natural-language parser over unrecognized input and
// logs the expense when the parse is confident enough.
func (c *Console) tryFreeText(ctx context.Context, text string) {
	if c.parser == nil {
		fmt.Fprintln(c.out, `I didn't understand that. Type "help" for commands.`)
		return
	}
	parsed := c.parser.Parse(text)
	if !nlparser.Validate(parsed) {
		fmt.Fprintln(c.out, `I didn't understand that. Type "help" for commands.`)
		return
	}
	entry, err := c.assistant.LogExpenseOn(ctx, parsed.Amount, string(parsed.Category), parsed.Date)
	if err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(c.out, "Logged: ₹%s in %s on %s (%.0f%% confident)\n",
		entry.Amount.StringFixed(2), entry.Category, entry.Date, parsed.Confidence*100)
	if parsed.Merchant != "" {
		fmt.Fprintf(c.out, "  Merchant: %s\n", parsed.Merchant)
	}
}

func titleCase(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.Join(words, " ")
}

func sortedKeys(m map[string]decimal.Decimal) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
