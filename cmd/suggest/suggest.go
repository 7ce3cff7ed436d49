// Package suggest handles the category suggestion command.
package suggest

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"paisahub/finassist/cmd/root"
)

// Cmd represents the suggest command.
var Cmd = &cobra.Command{
	Use:   "suggest [description]",
	Short: "Suggest a spending category for a description",
	Long: `Suggest a category for an expense description using the keyword
matcher blended with the trained model or Gemini when available.`,
	Args: cobra.MinimumNArgs(1),
	Run:  suggestFunc,
}

func suggestFunc(cmd *cobra.Command, args []string) {
	description := strings.Join(args, " ")

	c := root.NewCategorizer()
	category, confidence := c.Suggest(cmd.Context(), description)

	fmt.Printf("%s (%.0f%% confident)\n", category, confidence*100)
}
