package storage

import (
	"context"
	"database/sql"
	"fmt"

	"paisahub/finassist/internal/logging"
)

// expectedSchemaVersion is the schema version the application requires.
const expectedSchemaVersion = 1

// Migration is one schema change, applied inside a transaction.
type Migration struct {
	Up          func(*sql.Tx) error
	Description string
	Version     int
}

var migrations = []Migration{
	{
		Version:     1,
		Description: "Initial schema",
		Up: func(tx *sql.Tx) error {
			queries := []string{
				`CREATE TABLE IF NOT EXISTS expenses (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					amount TEXT NOT NULL,
					category TEXT NOT NULL,
					date TEXT NOT NULL
				)`,
				`CREATE INDEX IF NOT EXISTS idx_expenses_date ON expenses(date)`,
				`CREATE INDEX IF NOT EXISTS idx_expenses_category ON expenses(category)`,

				`CREATE TABLE IF NOT EXISTS debts (
					name TEXT PRIMARY KEY,
					balance TEXT NOT NULL,
					interest_rate TEXT NOT NULL,
					minimum_payment TEXT NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS savings_goals (
					name TEXT PRIMARY KEY,
					amount TEXT NOT NULL,
					target_date TEXT NOT NULL
				)`,

				`CREATE TABLE IF NOT EXISTS budget (
					id INTEGER PRIMARY KEY AUTOINCREMENT,
					income TEXT NOT NULL,
					expenses_total TEXT NOT NULL,
					recommended_savings TEXT NOT NULL,
					updated_at TEXT NOT NULL
				)`,
			}
			for _, q := range queries {
				if _, err := tx.Exec(q); err != nil {
					return err
				}
			}
			return nil
		},
	},
}

// Migrate applies all pending migrations and verifies the final version.
func (s *SQLiteStore) Migrate(ctx context.Context) error {
	var currentVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&currentVersion); err != nil {
		return fmt.Errorf("failed to get schema version: %w", err)
	}

	for _, migration := range migrations {
		if migration.Version <= currentVersion {
			continue
		}

		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		if err := migration.Up(tx); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", migration.Version, err)
		}

		if _, err := tx.Exec(fmt.Sprintf("PRAGMA user_version = %d", migration.Version)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to update schema version: %w", err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", migration.Version, err)
		}

		s.logger.WithFields(
			logging.Field{Key: "version", Value: migration.Version},
			logging.Field{Key: "description", Value: migration.Description},
		).Info("Applied migration")
	}

	var finalVersion int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&finalVersion); err != nil {
		return fmt.Errorf("failed to verify schema version: %w", err)
	}
	if finalVersion != expectedSchemaVersion {
		return fmt.Errorf("database schema version mismatch: expected %d, got %d",
			expectedSchemaVersion, finalVersion)
	}
	return nil
}
