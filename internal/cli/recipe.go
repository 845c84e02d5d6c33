package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var recipeCmd = &cobra.Command{
	Use:   "recipe",
	Short: "Manage recipes",
}

var recipeAddCmd = &cobra.Command{
	Use:   "add <file>...",
	Short: "Parse and save recipe files",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := context.Background()
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			rec, warnings, err := app.recipes.Ingest(ctx, userID, "", string(data))
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "saved %q (%s, %d ingredients)\n", rec.Title, rec.ID, len(rec.Ingredients))
			for _, w := range warnings {
				warnColor.Fprintf(cmd.ErrOrStderr(), "  skipped line %d: %q: %v\n", w.Line, w.Raw, w.Err)
			}
		}
		return nil
	},
}

var recipeLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List saved recipes",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		recipes, err := app.recipes.List(context.Background(), userID)
		if err != nil {
			return err
		}
		for _, rec := range recipes {
			fmt.Fprintf(cmd.OutOrStdout(), "%s  %s (%d ingredients)\n", rec.ID, rec.Title, len(rec.Ingredients))
		}
		return nil
	},
}

var recipeRmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete a recipe",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.recipes.Delete(context.Background(), userID, args[0])
	},
}

func init() {
	recipeCmd.AddCommand(recipeAddCmd)
	recipeCmd.AddCommand(recipeLsCmd)
	recipeCmd.AddCommand(recipeRmCmd)
}
