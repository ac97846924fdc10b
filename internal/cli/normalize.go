package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"native-recipes/internal/app"
)

type normalizeOptions struct {
	Target     targetOptions
	PackageDir string
}

func newNormalizeCommand() *cobra.Command {
	opts := normalizeOptions{}
	cmd := &cobra.Command{
		Use:   "normalize",
		Short: "Normalize an installed package tree in place",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runNormalize(cmd.Context(), cmd, opts)
		},
	}
	addTargetFlags(cmd, &opts.Target, false)
	cmd.Flags().StringVar(&opts.PackageDir, "package-dir", "", "Installed package directory")
	_ = viper.BindPFlag("package_dir", cmd.Flags().Lookup("package-dir"))
	return cmd
}

func runNormalize(ctx context.Context, cmd *cobra.Command, opts normalizeOptions) error {
	target, err := targetFromFlags(cmd, opts.Target)
	if err != nil {
		return err
	}
	result, err := newAppService().Normalize(ctx, app.NormalizeRequest{
		Target:     target,
		PackageDir: resolveString(cmd, opts.PackageDir, "package_dir", "package-dir"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "normalized: %s\ninclude: %s\nlib: %s\n", result.Layout.Root, result.Layout.IncludeDir, result.Layout.LibDir)
	return nil
}
