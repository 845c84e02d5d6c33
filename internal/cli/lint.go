package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mealwright/mealwright/internal/recipe"
)

var lintCmd = &cobra.Command{
	Use:   "lint <file>...",
	Short: "Check recipe files for malformed ingredient lines",
	Long: `Parse each recipe file and report every ingredient line the parser
rejects, without saving anything. Exits non-zero if any file has problems.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		bad := 0
		for _, path := range args {
			data, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			rec, warnings, err := recipe.Parse(string(data))
			if err != nil {
				errColor.Fprintf(cmd.ErrOrStderr(), "%s: %v\n", path, err)
				bad++
				continue
			}
			if len(warnings) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: ok (%q, %d ingredients)\n", path, rec.Title, len(rec.Ingredients))
				continue
			}
			bad++
			warnColor.Fprintf(cmd.ErrOrStderr(), "%s: %d problem(s)\n", path, len(warnings))
			for _, w := range warnings {
				fmt.Fprintf(cmd.ErrOrStderr(), "  line %d: %q: %v\n", w.Line, w.Raw, w.Err)
			}
		}
		if bad > 0 {
			return fmt.Errorf("%d file(s) with problems", bad)
		}
		return nil
	},
}
