// Package parse handles the plain-text expense parsing command.
package parse

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"paisahub/finassist/cmd/root"
	"paisahub/finassist/internal/nlparser"
)

// Cmd represents the parse command.
var Cmd = &cobra.Command{
	Use:   "parse [text]",
	Short: "Parse a plain-text expense description",
	Long: `Parse text like "spent 500 on groceries yesterday" and print the
extracted amount, category, merchant, date and payment method as JSON.`,
	Args: cobra.MinimumNArgs(1),
	Run:  parseFunc,
}

func parseFunc(cmd *cobra.Command, args []string) {
	text := strings.Join(args, " ")
	parsed := root.NewParser().Parse(text)

	out, err := json.MarshalIndent(parsed, "", "  ")
	if err != nil {
		root.Log.WithError(err).Error("Failed to encode parse result")
		os.Exit(1)
	}
	fmt.Println(string(out))

	if !nlparser.Validate(parsed) {
		root.Log.Warn("Parse is below the confidence threshold, not usable as an expense")
	}
}
