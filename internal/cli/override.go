package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/mealwright/mealwright/internal/models"
)

// Flags shared by the override subcommands. Overrides are scoped to a plan
// date; the key flags identify which aggregated ingredient they touch.
var (
	overrideDate    string
	overrideForm    string
	overrideMeasure string
)

func overrideKey(name string) models.IngredientKey {
	return models.IngredientKey{Name: name, Form: overrideForm, MeasureType: overrideMeasure}
}

func overridePlanDate() (time.Time, error) {
	return parseDateArg(overrideDate)
}

var skipCmd = &cobra.Command{
	Use:   "skip <name>",
	Short: "Exclude an ingredient from the list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := overridePlanDate()
		if err != nil {
			return err
		}
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()
		return app.override.Filter(context.Background(), userID, date, overrideKey(args[0]))
	},
}

var unskipCmd = &cobra.Command{
	Use:   "unskip <name>",
	Short: "Remove an exclusion",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := overridePlanDate()
		if err != nil {
			return err
		}
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()
		return app.override.Unfilter(context.Background(), userID, date, overrideKey(args[0]))
	},
}

var amountCmd = &cobra.Command{
	Use:   "amount <name> <quantity>",
	Short: "Override the computed amount for an ingredient",
	Long: `Replace the aggregated amount with the given quantity, e.g.
"mealwright shop amount flour '2 1/2 cups'". The quantity's unit family must
match the ingredient's.`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := overridePlanDate()
		if err != nil {
			return err
		}
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()
		return app.override.SetAmount(context.Background(), userID, date, overrideKey(args[0]), args[1])
	},
}

var extraCmd = &cobra.Command{
	Use:   "extra <name> [quantity]",
	Short: "Add a manual item to the list",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		date, err := overridePlanDate()
		if err != nil {
			return err
		}
		amount := "1"
		if len(args) == 2 {
			amount = args[1]
		}
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()
		if err := app.override.AddExtra(context.Background(), userID, date, args[0], amount); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "added %s (%s)\n", args[0], amount)
		return nil
	},
}

var categoryCmd = &cobra.Command{
	Use:   "category <name> <category>",
	Short: "Map an ingredient name to a category",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()
		return app.override.SetCategory(context.Background(), userID, args[0], args[1])
	},
}

func init() {
	for _, cmd := range []*cobra.Command{skipCmd, unskipCmd, amountCmd, extraCmd} {
		cmd.Flags().StringVar(&overrideDate, "date", "today", "Plan date the override applies to")
	}
	for _, cmd := range []*cobra.Command{skipCmd, unskipCmd, amountCmd} {
		cmd.Flags().StringVar(&overrideForm, "form", "", "Ingredient form, when the recipe specifies one")
		cmd.Flags().StringVar(&overrideMeasure, "measure", "Volume", "Unit family of the ingredient (Count, Volume, Weight)")
	}

	shopCmd.AddCommand(skipCmd)
	shopCmd.AddCommand(unskipCmd)
	shopCmd.AddCommand(amountCmd)
	shopCmd.AddCommand(extraCmd)
	shopCmd.AddCommand(categoryCmd)
}
