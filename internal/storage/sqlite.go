// Package storage persists assistant state in SQLite. Money columns are
// stored as TEXT to keep decimal values exact.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"github.com/shopspring/decimal"

	_ "github.com/mattn/go-sqlite3" // SQLite driver

	"paisahub/finassist/internal/logging"
	"paisahub/finassist/internal/models"
)

// SQLiteStore implements the assistant Store interface on a SQLite file.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
	logger logging.Logger
}

// NewSQLiteStore opens (or creates) the database at dbPath and applies any
// pending migrations.
func NewSQLiteStore(dbPath string, logger logging.Logger) (*SQLiteStore, error) {
	if dbPath == "" {
		return nil, fmt.Errorf("database path cannot be empty")
	}
	if logger == nil {
		logger = logging.GetLogger()
	}

	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite doesn't benefit from multiple connections.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &SQLiteStore{db: db, dbPath: dbPath, logger: logger}
	if err := s.Migrate(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// LoadExpenses returns all expenses in insertion order.
func (s *SQLiteStore) LoadExpenses(ctx context.Context) ([]models.ExpenseEntry, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT id, amount, category, date FROM expenses ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var expenses []models.ExpenseEntry
	for rows.Next() {
		var entry models.ExpenseEntry
		var amount string
		if err := rows.Scan(&entry.ID, &amount, &entry.Category, &entry.Date); err != nil {
			return nil, fmt.Errorf("failed to scan expense: %w", err)
		}
		entry.Amount, err = decimal.NewFromString(amount)
		if err != nil {
			return nil, fmt.Errorf("invalid amount %q for expense %d: %w", amount, entry.ID, err)
		}
		expenses = append(expenses, entry)
	}
	return expenses, rows.Err()
}

// SaveExpense inserts an expense and fills in its assigned ID.
func (s *SQLiteStore) SaveExpense(ctx context.Context, entry *models.ExpenseEntry) error {
	result, err := s.db.ExecContext(ctx,
		"INSERT INTO expenses (amount, category, date) VALUES (?, ?, ?)",
		entry.Amount.String(), entry.Category, entry.Date)
	if err != nil {
		return fmt.Errorf("failed to save expense: %w", err)
	}
	entry.ID, err = result.LastInsertId()
	if err != nil {
		return fmt.Errorf("failed to get expense id: %w", err)
	}
	return nil
}

// DeleteExpensesBefore deletes expenses dated strictly before date and
// returns how many were removed.
func (s *SQLiteStore) DeleteExpensesBefore(ctx context.Context, date string) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM expenses WHERE date < ?", date)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expenses: %w", err)
	}
	return result.RowsAffected()
}

// DeleteAllExpenses removes every expense and returns the count.
func (s *SQLiteStore) DeleteAllExpenses(ctx context.Context) (int64, error) {
	result, err := s.db.ExecContext(ctx, "DELETE FROM expenses")
	if err != nil {
		return 0, fmt.Errorf("failed to delete expenses: %w", err)
	}
	return result.RowsAffected()
}

// LoadDebts returns all debts.
func (s *SQLiteStore) LoadDebts(ctx context.Context) ([]models.Debt, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, balance, interest_rate, minimum_payment FROM debts ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to load debts: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var debts []models.Debt
	for rows.Next() {
		var debt models.Debt
		var balance, rate, minimum string
		if err := rows.Scan(&debt.Name, &balance, &rate, &minimum); err != nil {
			return nil, fmt.Errorf("failed to scan debt: %w", err)
		}
		if debt.Balance, err = decimal.NewFromString(balance); err != nil {
			return nil, fmt.Errorf("invalid balance for debt %s: %w", debt.Name, err)
		}
		if debt.InterestRate, err = decimal.NewFromString(rate); err != nil {
			return nil, fmt.Errorf("invalid interest rate for debt %s: %w", debt.Name, err)
		}
		if debt.MinimumPayment, err = decimal.NewFromString(minimum); err != nil {
			return nil, fmt.Errorf("invalid minimum payment for debt %s: %w", debt.Name, err)
		}
		debts = append(debts, debt)
	}
	return debts, rows.Err()
}

// UpsertDebt inserts or replaces a debt by name.
func (s *SQLiteStore) UpsertDebt(ctx context.Context, debt models.Debt) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO debts (name, balance, interest_rate, minimum_payment) VALUES (?, ?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET balance = excluded.balance,
		 interest_rate = excluded.interest_rate, minimum_payment = excluded.minimum_payment`,
		debt.Name, debt.Balance.String(), debt.InterestRate.String(), debt.MinimumPayment.String())
	if err != nil {
		return fmt.Errorf("failed to upsert debt: %w", err)
	}
	return nil
}

// LoadGoals returns all savings goals.
func (s *SQLiteStore) LoadGoals(ctx context.Context) ([]models.SavingsGoal, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT name, amount, target_date FROM savings_goals ORDER BY rowid")
	if err != nil {
		return nil, fmt.Errorf("failed to load savings goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []models.SavingsGoal
	for rows.Next() {
		var goal models.SavingsGoal
		var amount string
		if err := rows.Scan(&goal.Name, &amount, &goal.TargetDate); err != nil {
			return nil, fmt.Errorf("failed to scan savings goal: %w", err)
		}
		if goal.Amount, err = decimal.NewFromString(amount); err != nil {
			return nil, fmt.Errorf("invalid amount for goal %s: %w", goal.Name, err)
		}
		goals = append(goals, goal)
	}
	return goals, rows.Err()
}

// UpsertGoal inserts or replaces a savings goal by name.
func (s *SQLiteStore) UpsertGoal(ctx context.Context, goal models.SavingsGoal) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO savings_goals (name, amount, target_date) VALUES (?, ?, ?)
		 ON CONFLICT(name) DO UPDATE SET amount = excluded.amount,
		 target_date = excluded.target_date`,
		goal.Name, goal.Amount.String(), goal.TargetDate)
	if err != nil {
		return fmt.Errorf("failed to upsert savings goal: %w", err)
	}
	return nil
}

// LoadBudget returns the most recently saved budget, or nil when none has
// been saved yet.
func (s *SQLiteStore) LoadBudget(ctx context.Context) (*models.Budget, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT income, expenses_total, recommended_savings FROM budget ORDER BY id DESC LIMIT 1")

	var income, expenses, recommended string
	err := row.Scan(&income, &expenses, &recommended)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load budget: %w", err)
	}

	var budget models.Budget
	if budget.Income, err = decimal.NewFromString(income); err != nil {
		return nil, fmt.Errorf("invalid budget income: %w", err)
	}
	if budget.ExpensesTotal, err = decimal.NewFromString(expenses); err != nil {
		return nil, fmt.Errorf("invalid budget expenses: %w", err)
	}
	if budget.RecommendedSavings, err = decimal.NewFromString(recommended); err != nil {
		return nil, fmt.Errorf("invalid budget savings: %w", err)
	}
	leftover := budget.Income.Sub(budget.ExpensesTotal).Sub(budget.RecommendedSavings)
	if leftover.IsNegative() {
		leftover = decimal.Zero
	}
	budget.Leftover = leftover.Round(2)
	return &budget, nil
}

// SaveBudget appends a budget row. History is kept; LoadBudget reads the
// latest.
func (s *SQLiteStore) SaveBudget(ctx context.Context, budget models.Budget) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO budget (income, expenses_total, recommended_savings, updated_at)
		 VALUES (?, ?, ?, datetime('now'))`,
		budget.Income.String(), budget.ExpensesTotal.String(), budget.RecommendedSavings.String())
	if err != nil {
		return fmt.Errorf("failed to save budget: %w", err)
	}
	return nil
}
