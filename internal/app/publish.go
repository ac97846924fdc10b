package app

import (
	"context"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"native-recipes/internal/core"
	"native-recipes/internal/types"
)

// Publish derives metadata for an installed tree and writes its descriptors.
// The tree is normalized first; on an already normalized tree that is a
// no-op.
func (s Service) Publish(ctx context.Context, req PublishRequest) (PublishResult, error) {
	packageDir := strings.TrimSpace(req.PackageDir)
	if packageDir == "" {
		return PublishResult{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package directory is required")
	}
	sel, err := s.selectTarget(ctx, req.Target)
	if err != nil {
		return PublishResult{}, err
	}
	options, _, err := s.resolveSelection(ctx, sel)
	if err != nil {
		return PublishResult{}, err
	}
	layout, err := s.normalizeTree(ctx, sel.recipe, sel.platform, packageDir)
	if err != nil {
		return PublishResult{}, err
	}
	metadataDir := strings.TrimSpace(req.MetadataDir)
	if metadataDir == "" {
		metadataDir = defaultMetadataDir(packageDir)
	}
	meta, descriptors, err := s.publishLayout(ctx, layout, sel.recipe, options, metadataDir)
	if err != nil {
		return PublishResult{}, err
	}
	return PublishResult{Metadata: meta, Descriptors: descriptors}, nil
}

func (s Service) publishLayout(ctx context.Context, layout types.NormalizedLayout, recipe types.Recipe, options types.ResolvedOptionSet, metadataDir string) (types.PackageMetadata, []string, error) {
	meta, err := core.NewMetadataPublisher(s.Scanner).Publish(ctx, layout, recipe, options)
	if err != nil {
		return types.PackageMetadata{}, nil, err
	}
	writer := s.Metadata(metadataDir)
	var descriptors []string
	if meta.ConfigDiscovery {
		path, err := writer.WriteCMakeConfig(meta)
		if err != nil {
			return types.PackageMetadata{}, nil, err
		}
		descriptors = append(descriptors, path)
	}
	if meta.PkgConfigDiscovery {
		path, err := writer.WritePkgConfig(meta)
		if err != nil {
			return types.PackageMetadata{}, nil, err
		}
		descriptors = append(descriptors, path)
	}
	path, err := writer.WriteManifest(meta)
	if err != nil {
		return types.PackageMetadata{}, nil, err
	}
	descriptors = append(descriptors, path)
	sort.Strings(descriptors)
	log.Ctx(ctx).Info().Str("dir", metadataDir).Strs("descriptors", descriptors).Msg("descriptors written")
	return meta, descriptors, nil
}
