// Package export reads and writes assistant data as CSV.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"
	"github.com/shopspring/decimal"

	"paisahub/finassist/internal/classifier"
	"paisahub/finassist/internal/logging"
	"paisahub/finassist/internal/models"
)

// Delimiter used for CSV output.
var Delimiter = ','

// SetDelimiter changes the CSV output delimiter.
func SetDelimiter(delim rune) {
	Delimiter = delim
	gocsv.TagSeparator = fmt.Sprintf("%c", delim)
}

func createFile(path string) (*os.File, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

// expenseRow is the CSV layout for one expense.
type expenseRow struct {
	Date     string `csv:"Date"`
	Category string `csv:"Category"`
	Amount   string `csv:"Amount"`
}

// debtRow is the CSV layout for one debt.
type debtRow struct {
	Name           string `csv:"Name"`
	Balance        string `csv:"Balance"`
	InterestRate   string `csv:"Interest Rate"`
	MinimumPayment string `csv:"Minimum Payment"`
}

// WriteExpenses writes expenses as CSV to w.
func WriteExpenses(w io.Writer, expenses []models.ExpenseEntry, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetLogger()
	}

	rows := make([]*expenseRow, len(expenses))
	for i, e := range expenses {
		rows[i] = &expenseRow{
			Date:     e.Date,
			Category: e.Category,
			Amount:   e.Amount.StringFixed(2),
		}
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = Delimiter
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		logger.WithError(err).Error("Failed to write expenses to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	logger.WithField("count", len(rows)).Info("Wrote expenses to CSV")
	return nil
}

// WriteExpensesFile writes expenses as CSV to path, creating parent
// directories as needed.
func WriteExpensesFile(path string, expenses []models.ExpenseEntry, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetLogger()
	}
	file, err := createFile(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()
	return WriteExpenses(file, expenses, logger)
}

// WriteDebts writes debts as CSV to w.
func WriteDebts(w io.Writer, debts []models.Debt, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetLogger()
	}

	rows := make([]*debtRow, len(debts))
	for i, d := range debts {
		rows[i] = &debtRow{
			Name:           d.Name,
			Balance:        d.Balance.StringFixed(2),
			InterestRate:   d.InterestRate.String(),
			MinimumPayment: d.MinimumPayment.StringFixed(2),
		}
	}

	csvWriter := csv.NewWriter(w)
	csvWriter.Comma = Delimiter
	if err := gocsv.MarshalCSV(&rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		logger.WithError(err).Error("Failed to write debts to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	logger.WithField("count", len(rows)).Info("Wrote debts to CSV")
	return nil
}

// WriteDebtsFile writes debts as CSV to path, creating parent directories as
// needed.
func WriteDebtsFile(path string, debts []models.Debt, logger logging.Logger) error {
	if logger == nil {
		logger = logging.GetLogger()
	}
	file, err := createFile(path)
	if err != nil {
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()
	return WriteDebts(file, debts, logger)
}

// ReadExpenses parses an expense CSV written by WriteExpenses. Rows with an
// unparsable amount are skipped with a warning.
func ReadExpenses(r io.Reader, logger logging.Logger) ([]models.ExpenseEntry, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}

	var rows []*expenseRow
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		logger.WithError(err).Error("Failed to parse expense CSV")
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}

	expenses := make([]models.ExpenseEntry, 0, len(rows))
	for _, row := range rows {
		amount, err := decimal.NewFromString(row.Amount)
		if err != nil {
			logger.WithField("amount", row.Amount).Warn("Skipping row with invalid amount")
			continue
		}
		expenses = append(expenses, models.ExpenseEntry{
			Amount:   amount,
			Category: row.Category,
			Date:     row.Date,
		})
	}

	logger.WithField("count", len(expenses)).Info("Read expenses from CSV")
	return expenses, nil
}

// ReadExpensesFile parses an expense CSV from path.
func ReadExpensesFile(path string, logger logging.Logger) ([]models.ExpenseEntry, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()
	return ReadExpenses(file, logger)
}

// ReadTrainingExamples parses labeled training data (description and
// category columns) used to fit the category model.
func ReadTrainingExamples(r io.Reader, logger logging.Logger) ([]classifier.Example, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	var rows []classifier.Example
	if err := gocsv.Unmarshal(r, &rows); err != nil {
		logger.WithError(err).Error("Failed to parse training CSV")
		return nil, fmt.Errorf("error parsing CSV data: %w", err)
	}
	return rows, nil
}

// ReadTrainingExamplesFile parses labeled training data from path.
func ReadTrainingExamplesFile(path string, logger logging.Logger) ([]classifier.Example, error) {
	if logger == nil {
		logger = logging.GetLogger()
	}
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			logger.WithError(err).Warn("Failed to close file")
		}
	}()
	return ReadTrainingExamples(file, logger)
}
