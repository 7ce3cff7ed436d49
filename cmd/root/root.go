// Package root contains the root command for the application
package root

import (
	"os"

	"github.com/spf13/cobra"

	"paisahub/finassist/internal/config"
	"paisahub/finassist/internal/export"
	"paisahub/finassist/internal/logging"
)

var (
	// Log is the shared logger instance for commands.
	Log logging.Logger = logging.GetLogger()

	// Cfg is the loaded application configuration, available to all
	// subcommands after PersistentPreRun.
	Cfg *config.Config

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "finassist",
		Short: "A personal finance assistant with plain-text expense entry.",
		Long: `finassist tracks budgets, expenses, debts and savings goals.
Expenses can be entered as plain text ("spent 500 on groceries yesterday");
a keyword matcher and an optional statistical model pick the category.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to finassist!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				config.Logger.Errorf("Configuration error: %v", err)
				os.Exit(1)
			}
			applyFlagOverrides(cfg)
			Cfg = cfg

			Log = logging.NewLogrusAdapterFromLogger(config.ConfigureLogging(cfg))
			logging.SetDefault(Log)

			if cfg.CSV.Delimiter != "" {
				export.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			}
		},
	}

	// Flag overrides for common configuration values.
	DBPath    string
	HTTPAddr  string
	ModelPath string
)

func applyFlagOverrides(cfg *config.Config) {
	if DBPath != "" {
		cfg.Database.Path = DBPath
	}
	if HTTPAddr != "" {
		cfg.HTTP.Addr = HTTPAddr
	}
	if ModelPath != "" {
		cfg.Classifier.ModelPath = ModelPath
	}
}

// Init initializes the root command and all persistent flags.
func Init() {
	Cmd.PersistentFlags().StringVar(&DBPath, "db", "", "Path to the SQLite database file")
	Cmd.PersistentFlags().StringVar(&HTTPAddr, "addr", "", "HTTP listen address")
	Cmd.PersistentFlags().StringVar(&ModelPath, "model", "", "Path to the trained category model")
}
