package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"native-recipes/internal/app"
)

type optionsOptions struct {
	Target targetOptions
}

func newOptionsCommand() *cobra.Command {
	opts := optionsOptions{}
	cmd := &cobra.Command{
		Use:   "options",
		Short: "Show a recipe's options and where they apply",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOptions(cmd.Context(), cmd, opts)
		},
	}
	addTargetFlags(cmd, &opts.Target, false)
	return cmd
}

func runOptions(ctx context.Context, cmd *cobra.Command, opts optionsOptions) error {
	target, err := targetFromFlags(cmd, opts.Target)
	if err != nil {
		return err
	}
	result, err := newAppService().Options(ctx, app.OptionsRequest{Target: target})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "recipe: %s\nplatform: %s\n", result.Recipe.Ref(), result.Platform)
	for _, info := range result.Options {
		decl := info.Declaration
		domain := make([]string, 0, len(decl.Domain))
		for _, value := range decl.Domain {
			domain = append(domain, string(value))
		}
		status := "applies"
		if !info.Applicable {
			status = "not offered"
		}
		fmt.Fprintf(out, "%s\tdefault=%s\t[%s]\t%s\t%s\n", decl.Name, decl.Default, strings.Join(domain, ","), status, decl.Description)
	}
	return nil
}
