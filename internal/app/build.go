package app

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"native-recipes/internal/ports"
)

// DefaultBuildType is used when neither the request nor the profile sets one.
const DefaultBuildType = "Release"

// Build runs the whole pipeline: resolve, map, native build, normalize and
// publish. Every configuration builds into its own
// <output>/<name>/<version>/<package_id> directory.
func (s Service) Build(ctx context.Context, req BuildRequest) (BuildResult, error) {
	sourceDir := strings.TrimSpace(req.SourceDir)
	if sourceDir == "" {
		return BuildResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("source directory is required")
	}
	outputDir := strings.TrimSpace(req.OutputDir)
	if outputDir == "" {
		return BuildResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("output directory is required")
	}
	sel, err := s.selectTarget(ctx, req.Target)
	if err != nil {
		return BuildResult{}, err
	}
	options, vars, err := s.resolveSelection(ctx, sel)
	if err != nil {
		return BuildResult{}, err
	}
	packageID := options.PackageID(sel.platform)

	root := filepath.Join(outputDir, sel.recipe.Name, sel.recipe.Version, packageID)
	buildDir := filepath.Join(root, "build")
	packageDir := filepath.Join(root, "package")
	metadataDir := strings.TrimSpace(req.MetadataDir)
	if metadataDir == "" {
		metadataDir = filepath.Join(root, "metadata")
	}
	// A rebuild installs over a clean prefix so the normalizer always sees a
	// fresh install tree.
	if err := os.RemoveAll(packageDir); err != nil {
		return BuildResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to clean package directory").
			WithCause(err)
	}
	if err := os.MkdirAll(packageDir, 0755); err != nil {
		return BuildResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create package directory").
			WithCause(err)
	}

	buildType := firstNonEmpty(req.BuildType, sel.profile.BuildType, DefaultBuildType)
	generator := firstNonEmpty(req.Generator, sel.profile.Generator)
	logger := log.Ctx(ctx).With().Str("recipe", sel.recipe.Ref()).Str("package_id", packageID).Logger()
	logger.Info().Str("source", sourceDir).Str("build_type", buildType).Msg("building package")

	err = s.Toolchain.Build(ctx, ports.ToolchainRequest{
		SourceDir:  sourceDir,
		BuildDir:   buildDir,
		PackageDir: packageDir,
		BuildType:  buildType,
		Generator:  generator,
		Variables:  vars,
	})
	if err != nil {
		return BuildResult{}, err
	}

	layout, err := s.normalizeTree(ctx, sel.recipe, sel.platform, packageDir)
	if err != nil {
		return BuildResult{}, err
	}
	meta, descriptors, err := s.publishLayout(ctx, layout, sel.recipe, options, metadataDir)
	if err != nil {
		return BuildResult{}, err
	}
	logger.Info().Strs("libraries", meta.Libraries).Msg("package built")
	return BuildResult{
		PackageID:   packageID,
		BuildDir:    buildDir,
		PackageDir:  layout.Root,
		MetadataDir: metadataDir,
		Metadata:    meta,
		Descriptors: descriptors,
	}, nil
}

func firstNonEmpty(values ...string) string {
	for _, value := range values {
		if trimmed := strings.TrimSpace(value); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
