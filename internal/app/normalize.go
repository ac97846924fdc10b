package app

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"native-recipes/internal/core"
	"native-recipes/internal/types"
)

func (s Service) Normalize(ctx context.Context, req NormalizeRequest) (NormalizeResult, error) {
	packageDir := strings.TrimSpace(req.PackageDir)
	if packageDir == "" {
		return NormalizeResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package directory is required")
	}
	sel, err := s.selectTarget(ctx, req.Target)
	if err != nil {
		return NormalizeResult{}, err
	}
	layout, err := s.normalizeTree(ctx, sel.recipe, sel.platform, packageDir)
	if err != nil {
		return NormalizeResult{}, err
	}
	return NormalizeResult{Layout: layout}, nil
}

func (s Service) normalizeTree(ctx context.Context, recipe types.Recipe, platform types.Platform, packageDir string) (types.NormalizedLayout, error) {
	tree, err := s.Tree(packageDir)
	if err != nil {
		return types.NormalizedLayout{}, err
	}
	return core.NewLayoutNormalizer(tree).Normalize(ctx, types.NormalizeRequest{
		VersionedName: recipe.VersionedName(),
		CanonicalName: recipe.CanonicalName(),
		Platform:      platform,
		Rules:         recipe.Layout,
	})
}

// defaultMetadataDir places descriptors next to the package tree, never
// inside it.
func defaultMetadataDir(packageDir string) string {
	return filepath.Join(filepath.Dir(filepath.Clean(packageDir)), "metadata")
}
