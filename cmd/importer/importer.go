// Package importer handles loading expenses from a CSV file into the store.
package importer

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"paisahub/finassist/cmd/root"
	"paisahub/finassist/internal/assistant"
	"paisahub/finassist/internal/export"
)

var inputFile string

// Cmd represents the import command.
var Cmd = &cobra.Command{
	Use:   "import",
	Short: "Import expenses from a CSV file",
	Long:  `Import expenses from a CSV file with Date, Category and Amount columns.`,
	Run:   importFunc,
}

func init() {
	Cmd.Flags().StringVarP(&inputFile, "input", "i", "", "Expenses CSV input file")
	_ = Cmd.MarkFlagRequired("input")
}

func importFunc(cmd *cobra.Command, args []string) {
	expenses, err := export.ReadExpensesFile(inputFile, root.Log)
	if err != nil {
		root.Log.WithError(err).Error("Failed to read expenses CSV")
		os.Exit(1)
	}

	store, err := root.NewStore()
	if err != nil {
		root.Log.WithError(err).Error("Failed to open database")
		os.Exit(1)
	}
	defer func() {
		if err := store.Close(); err != nil {
			root.Log.WithError(err).Warn("Failed to close database")
		}
	}()

	a := assistant.New(store, root.Log)

	ctx := context.Background()
	imported := 0
	for i, e := range expenses {
		if _, err := a.LogExpenseOn(ctx, e.Amount, e.Category, e.Date); err != nil {
			root.Log.WithError(err).WithField("row", i+1).Warn("Skipping expense")
			continue
		}
		imported++
	}

	root.Log.WithField("count", imported).Info("Imported expenses")
}
