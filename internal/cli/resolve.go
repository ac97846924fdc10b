package cli

import (
	"context"
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"native-recipes/internal/adapters"
	"native-recipes/internal/app"
)

type resolveOptions struct {
	Target targetOptions
	Format string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve options and print the toolchain variables",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}
	addTargetFlags(cmd, &opts.Target, true)
	cmd.Flags().StringVar(&opts.Format, "format", "text", "Output format: text or cmake")
	_ = viper.BindPFlag("format", cmd.Flags().Lookup("format"))
	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	target, err := targetFromFlags(cmd, opts.Target)
	if err != nil {
		return err
	}
	format := resolveString(cmd, opts.Format, "format", "format")
	if format != "text" && format != "cmake" && format != "" {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported format: %s", format))
	}
	result, err := newAppService().Resolve(ctx, app.ResolveRequest{Target: target})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if format == "cmake" {
		for _, arg := range adapters.DefineArgs(result.Variables) {
			fmt.Fprintln(out, arg)
		}
		return nil
	}
	fmt.Fprintf(out, "recipe: %s\nplatform: %s\npackage_id: %s\noptions: %s\n", result.Recipe.Ref(), result.Platform, result.PackageID, result.Options)
	for _, name := range result.Variables.Names() {
		fmt.Fprintf(out, "%s=%s\n", name, result.Variables[name])
	}
	return nil
}
