// Package console starts the interactive text console.
package console

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"paisahub/finassist/cmd/root"
	"paisahub/finassist/internal/console"
)

// Cmd represents the console command.
var Cmd = &cobra.Command{
	Use:   "console",
	Short: "Start the interactive console",
	Long:  `An interactive prompt for budgets, expense logging, debts, goals and exports.`,
	Run:   consoleFunc,
}

func consoleFunc(cmd *cobra.Command, args []string) {
	a, cleanup := root.NewAssistant()
	defer cleanup()

	c := console.New(a, root.NewParser(), root.NewCategorizer(), os.Stdin, os.Stdout, root.Log)
	if err := c.Run(context.Background()); err != nil {
		root.Log.WithError(err).Error("Console exited with error")
	}
}
