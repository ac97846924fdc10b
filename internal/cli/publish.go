package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"native-recipes/internal/app"
)

type publishOptions struct {
	Target      targetOptions
	PackageDir  string
	MetadataDir string
}

func newPublishCommand() *cobra.Command {
	opts := publishOptions{}
	cmd := &cobra.Command{
		Use:   "publish",
		Short: "Write discovery descriptors for an installed package",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPublish(cmd.Context(), cmd, opts)
		},
	}
	addTargetFlags(cmd, &opts.Target, true)
	cmd.Flags().StringVar(&opts.PackageDir, "package-dir", "", "Installed package directory")
	cmd.Flags().StringVar(&opts.MetadataDir, "metadata-dir", "", "Descriptor directory (default: beside the package)")
	_ = viper.BindPFlag("package_dir", cmd.Flags().Lookup("package-dir"))
	_ = viper.BindPFlag("metadata_dir", cmd.Flags().Lookup("metadata-dir"))
	return cmd
}

func runPublish(ctx context.Context, cmd *cobra.Command, opts publishOptions) error {
	target, err := targetFromFlags(cmd, opts.Target)
	if err != nil {
		return err
	}
	result, err := newAppService().Publish(ctx, app.PublishRequest{
		Target:      target,
		PackageDir:  resolveString(cmd, opts.PackageDir, "package_dir", "package-dir"),
		MetadataDir: resolveString(cmd, opts.MetadataDir, "metadata_dir", "metadata-dir"),
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "libraries: %s\n", strings.Join(result.Metadata.Libraries, ","))
	printDescriptors(cmd, result.Descriptors)
	return nil
}
