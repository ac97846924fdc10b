package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"native-recipes/internal/app"
)

type buildOptions struct {
	Target      targetOptions
	SourceDir   string
	OutputDir   string
	MetadataDir string
	BuildType   string
	Generator   string
}

func newBuildCommand() *cobra.Command {
	opts := buildOptions{}
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build, normalize and publish a package",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBuild(cmd.Context(), cmd, opts)
		},
	}
	addTargetFlags(cmd, &opts.Target, true)
	cmd.Flags().StringVar(&opts.SourceDir, "source", "", "Upstream source directory")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "out", "Output directory")
	cmd.Flags().StringVar(&opts.MetadataDir, "metadata-dir", "", "Descriptor directory (default: beside the package)")
	cmd.Flags().StringVar(&opts.BuildType, "build-type", "", "CMake build type (default: profile or Release)")
	cmd.Flags().StringVar(&opts.Generator, "generator", "", "CMake generator")

	_ = viper.BindPFlag("source", cmd.Flags().Lookup("source"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("metadata_dir", cmd.Flags().Lookup("metadata-dir"))
	_ = viper.BindPFlag("build_type", cmd.Flags().Lookup("build-type"))
	_ = viper.BindPFlag("generator", cmd.Flags().Lookup("generator"))
	return cmd
}

func runBuild(ctx context.Context, cmd *cobra.Command, opts buildOptions) error {
	target, err := targetFromFlags(cmd, opts.Target)
	if err != nil {
		return err
	}
	result, err := newAppService().Build(ctx, app.BuildRequest{
		Target:      target,
		SourceDir:   resolveString(cmd, opts.SourceDir, "source", "source"),
		OutputDir:   resolveString(cmd, opts.OutputDir, "output", "output"),
		MetadataDir: resolveString(cmd, opts.MetadataDir, "metadata_dir", "metadata-dir"),
		BuildType:   resolveString(cmd, opts.BuildType, "build_type", "build-type"),
		Generator:   resolveString(cmd, opts.Generator, "generator", "generator"),
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "package_id: %s\npackage: %s\n", result.PackageID, result.PackageDir)
	printDescriptors(cmd, result.Descriptors)
	return nil
}

func printDescriptors(cmd *cobra.Command, descriptors []string) {
	for _, path := range descriptors {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote: %s\n", path)
	}
}
