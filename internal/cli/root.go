// Package cli implements the mealwright command line interface. The CLI
// drives the same service layer as the server, against a local SQLite
// database, so recipes and plans managed here are exactly what the server
// would compute from.
package cli

import (
	"log/slog"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/mealwright/mealwright/pkg/logging"
)

var (
	// Global flags
	dbPath  string
	userID  string
	verbose bool

	titleColor = color.New(color.FgCyan, color.Bold)
	warnColor  = color.New(color.FgYellow)
	errColor   = color.New(color.FgRed, color.Bold)
)

// rootCmd is the root command for mealwright.
var rootCmd = &cobra.Command{
	Use:     "mealwright",
	Version: "dev",
	Short:   "Meal-plan shopping list generator",
	Long: `mealwright turns plain-text recipes and a meal plan into an aggregated,
categorized shopping list with exact fractional amounts.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	CompletionOptions: cobra.CompletionOptions{
		DisableDefaultCmd: true,
	},
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Commands print their own output; keep slog to warnings unless
		// --verbose asks for the full service log.
		level := slog.LevelWarn
		if verbose {
			level = slog.LevelDebug
		}
		logging.SetupWithLevel(level)
	},
}

// SetVersion overrides the version shown by --version.
func SetVersion(v string) {
	if v == "" {
		return
	}
	rootCmd.Version = v
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", defaultDBPath(), "Path to the SQLite database")
	rootCmd.PersistentFlags().StringVar(&userID, "user", "local", "User id to operate as")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show service logs")

	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(recipeCmd)
	rootCmd.AddCommand(planCmd)
	rootCmd.AddCommand(shopCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
