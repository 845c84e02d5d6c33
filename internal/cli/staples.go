package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var staplesCmd = &cobra.Command{
	Use:   "staples",
	Short: "Manage the standing staples list",
	Long: `Staples are standing items merged into every shopping list, kept as one
recipe-format file per user.`,
}

var staplesSetCmd = &cobra.Command{
	Use:   "set <file>",
	Short: "Replace the staples list from a file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		warnings, err := app.recipes.SetStaples(context.Background(), userID, string(data))
		if err != nil {
			return err
		}
		for _, w := range warnings {
			warnColor.Fprintf(cmd.ErrOrStderr(), "  skipped line %d: %q: %v\n", w.Line, w.Raw, w.Err)
		}
		return nil
	},
}

var staplesShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the staples list",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		lines, err := app.recipes.Staples(context.Background(), userID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			name := line.Key.Name
			if line.Key.Form != "" {
				name += " (" + line.Key.Form + ")"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", line.Quantity.String(), name)
		}
		return nil
	},
}

func init() {
	staplesCmd.AddCommand(staplesSetCmd)
	staplesCmd.AddCommand(staplesShowCmd)
	rootCmd.AddCommand(staplesCmd)
}
