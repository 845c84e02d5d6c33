package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mealwright/mealwright/internal/service"
)

var shopDate string

var shopCmd = &cobra.Command{
	Use:   "shop",
	Short: "Build the shopping list",
	Long: `Aggregate the planned recipes for the latest plan date (or --date),
apply overrides, and print the list grouped by category.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		defer app.Close()

		ctx := context.Background()
		var list *service.ShoppingList
		if shopDate == "" {
			list, err = app.shopping.Build(ctx, userID)
		} else {
			date, derr := parseDateArg(shopDate)
			if derr != nil {
				return derr
			}
			list, err = app.shopping.BuildForDate(ctx, userID, date)
		}
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Shopping list for %s\n", list.Date.Format(dateLayout))

		category := ""
		for _, e := range list.Entries {
			if e.Category != category {
				category = e.Category
				titleColor.Fprintf(out, "\n%s\n", category)
			}
			line := e.Name
			if e.Form != "" {
				line += " (" + e.Form + ")"
			}
			fmt.Fprintf(out, "  %s  %s\n", e.Quantity.String(), line)
		}

		for _, u := range list.Diagnostics.Unresolved {
			warnColor.Fprintf(cmd.ErrOrStderr(),
				"unresolved: %s needs a manual amount (%v)\n", u.Key.Name, u.Conflict)
		}
		return nil
	},
}

func init() {
	shopCmd.Flags().StringVar(&shopDate, "date", "", "Plan date to shop for (default: latest)")
}
