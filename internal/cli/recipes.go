package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newRecipesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "recipes",
		Short: "List the recipes shipped with this binary",
		RunE: func(cmd *cobra.Command, _ []string) error {
			result := newAppService().ListRecipes()
			out := cmd.OutOrStdout()
			for _, recipe := range result.Recipes {
				fmt.Fprintf(out, "%s\t%s\n", recipe.Ref(), recipe.Description)
			}
			return nil
		},
	}
}
