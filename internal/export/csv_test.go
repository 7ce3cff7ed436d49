package export

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paisahub/finassist/internal/logging"
	"paisahub/finassist/internal/models"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestWriteExpenses(t *testing.T) {
	expenses := []models.ExpenseEntry{
		{Amount: dec("250.5"), Category: "Transport", Date: "2025-03-10"},
		{Amount: dec("100"), Category: "Groceries", Date: "2025-03-11"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteExpenses(&buf, expenses, logging.NewMockLogger()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Category,Amount", lines[0])
	assert.Equal(t, "2025-03-10,Transport,250.50", lines[1])
}

func TestWriteDebts(t *testing.T) {
	debts := []models.Debt{
		{Name: "CreditCard", Balance: dec("1500"), InterestRate: dec("18"), MinimumPayment: dec("50")},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteDebts(&buf, debts, logging.NewMockLogger()))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "Name,Balance,Interest Rate,Minimum Payment", lines[0])
	assert.Equal(t, "CreditCard,1500.00,18,50.00", lines[1])
}

func TestWriteExpensesFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "expenses.csv")
	expenses := []models.ExpenseEntry{
		{Amount: dec("250.5"), Category: "Transport", Date: "2025-03-10"},
	}

	require.NoError(t, WriteExpensesFile(path, expenses, logging.NewMockLogger()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2025-03-10,Transport,250.50")
}

func TestWriteDebtsFileCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "exports", "debts.csv")
	debts := []models.Debt{
		{Name: "CreditCard", Balance: dec("1500"), InterestRate: dec("18"), MinimumPayment: dec("50")},
	}

	require.NoError(t, WriteDebtsFile(path, debts, logging.NewMockLogger()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "CreditCard,1500.00,18,50.00")
}

func TestReadExpensesRoundTrip(t *testing.T) {
	expenses := []models.ExpenseEntry{
		{Amount: dec("250.50"), Category: "Transport", Date: "2025-03-10"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteExpenses(&buf, expenses, logging.NewMockLogger()))

	parsed, err := ReadExpenses(&buf, logging.NewMockLogger())
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.True(t, parsed[0].Amount.Equal(dec("250.50")))
	assert.Equal(t, "Transport", parsed[0].Category)
}

func TestReadExpensesSkipsInvalidAmounts(t *testing.T) {
	csv := "Date,Category,Amount\n2025-03-10,Transport,abc\n2025-03-11,Groceries,100\n"
	logger := logging.NewMockLogger()

	parsed, err := ReadExpenses(strings.NewReader(csv), logger)
	require.NoError(t, err)
	require.Len(t, parsed, 1)
	assert.Equal(t, "Groceries", parsed[0].Category)
	assert.True(t, logger.HasEntry("warning", "Skipping row with invalid amount"))
}

func TestReadTrainingExamples(t *testing.T) {
	csv := "description,category\ndinner at swiggy,Dining\nuber ride,Transport\n"

	examples, err := ReadTrainingExamples(strings.NewReader(csv), logging.NewMockLogger())
	require.NoError(t, err)
	require.Len(t, examples, 2)
	assert.Equal(t, "Dining", examples[0].Category)
}
