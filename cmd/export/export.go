// Package export handles writing stored data to CSV files.
package export

import (
	"os"

	"github.com/spf13/cobra"

	"paisahub/finassist/cmd/root"
	"paisahub/finassist/internal/export"
)

var (
	expensesFile string
	debtsFile    string
)

// Cmd represents the export command.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export expenses and debts to CSV",
	Run:   exportFunc,
}

func init() {
	Cmd.Flags().StringVar(&expensesFile, "expenses", "exports/expenses.csv", "Expenses CSV output file")
	Cmd.Flags().StringVar(&debtsFile, "debts", "", "Debts CSV output file (omit to skip)")
}

func exportFunc(cmd *cobra.Command, args []string) {
	a, cleanup := root.NewAssistant()
	defer cleanup()

	if expensesFile != "" {
		if err := export.WriteExpensesFile(expensesFile, a.Expenses(), root.Log); err != nil {
			root.Log.WithError(err).Error("Failed to export expenses")
			os.Exit(1)
		}
		root.Log.WithField("file", expensesFile).Info("Exported expenses")
	}

	if debtsFile != "" {
		if err := export.WriteDebtsFile(debtsFile, a.Debts(), root.Log); err != nil {
			root.Log.WithError(err).Error("Failed to export debts")
			os.Exit(1)
		}
		root.Log.WithField("file", debtsFile).Info("Exported debts")
	}
}
