package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mealwright/mealwright/internal/models"
)

var planDate string

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage meal plans",
}

var planSetCmd = &cobra.Command{
	Use:   "set <recipe-id>[=<count>]...",
	Short: "Set the plan for a date",
	Long: `Replace the plan for the given date with the listed recipes. Each
argument is a recipe id, optionally with a count, e.g. "a1b2=2". The count
defaults to 1.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateArg(planDate)
		if err != nil {
			return err
		}

		planned := make([]models.PlannedRecipe, 0, len(args))
		for _, arg := range args {
			id, countStr, hasCount := strings.Cut(arg, "=")
			count := int64(1)
			if hasCount {
				count, err = strconv.ParseInt(countStr, 10, 64)
				if err != nil {
					return fmt.Errorf("invalid count in %q: %w", arg, err)
				}
			}
			planned = append(planned, models.PlannedRecipe{RecipeID: id, Count: count})
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		if err := app.plans.Set(context.Background(), userID, date, planned); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "plan for %s: %d recipe(s)\n", date.Format(dateLayout), len(planned))
		return nil
	},
}

var planLsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List plan dates, newest first",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		dates, err := app.plans.Dates(context.Background(), userID)
		if err != nil {
			return err
		}
		for _, d := range dates {
			fmt.Fprintln(cmd.OutOrStdout(), d.Format(dateLayout))
		}
		return nil
	},
}

var planRmCmd = &cobra.Command{
	Use:   "rm <date>",
	Short: "Delete the plan for a date and its overrides",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := parseDateArg(args[0])
		if err != nil {
			return err
		}

		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		return app.plans.Delete(context.Background(), userID, date)
	},
}

func init() {
	planSetCmd.Flags().StringVar(&planDate, "date", "today", "Plan date (YYYY-MM-DD)")
	planCmd.AddCommand(planSetCmd)
	planCmd.AddCommand(planLsCmd)
	planCmd.AddCommand(planRmCmd)
}
