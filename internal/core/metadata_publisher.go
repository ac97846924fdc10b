package core

import (
	"context"
	"slices"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"native-recipes/internal/policies"
	"native-recipes/internal/ports"
	"native-recipes/internal/types"
)

type MetadataPublisher struct {
	Scanner ports.LibraryScannerPort
}

func NewMetadataPublisher(scanner ports.LibraryScannerPort) MetadataPublisher {
	return MetadataPublisher{Scanner: scanner}
}

// Publish collects the libraries of a normalized layout and combines them
// with the recipe's canonical identifiers. Library names are sorted so
// repeated runs yield identical metadata.
func (p MetadataPublisher) Publish(ctx context.Context, layout types.NormalizedLayout, recipe types.Recipe, options types.ResolvedOptionSet) (types.PackageMetadata, error) {
	if p.Scanner == nil {
		return types.PackageMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("publisher requires a library scanner")
	}
	files, err := p.Scanner.ScanLibraries(layout.Root, layout.LibDir, layout.Platform)
	if err != nil {
		return types.PackageMetadata{}, err
	}
	files = slices.Clone(files)
	sort.Strings(files)

	convention := policies.ConventionFor(layout.Platform)
	seen := map[string]struct{}{}
	var libraries []string
	for _, file := range files {
		name, ok := convention.LibraryName(file)
		if !ok {
			continue
		}
		if _, dup := seen[name]; dup {
			continue
		}
		seen[name] = struct{}{}
		libraries = append(libraries, name)
	}
	sort.Strings(libraries)

	if len(libraries) == 0 && expectsLibrary(recipe.Expectations, options) {
		return types.PackageMetadata{}, &types.RecipeError{
			Kind:     types.FailureEmptyPackage,
			Expected: "at least one library for " + options.String(),
			Found:    "no libraries in " + layout.LibDir,
		}
	}

	identity := recipe.Identity
	if identity.Name == "" {
		identity.Name = recipe.Name
	}
	if identity.Version == "" {
		identity.Version = recipe.Version
	}
	meta := types.PackageMetadata{
		Identity:           identity,
		Platform:           layout.Platform,
		PackageID:          options.PackageID(layout.Platform),
		Root:               layout.Root,
		Options:            optionPairs(options),
		LibraryFiles:       files,
		Libraries:          libraries,
		IncludeDirs:        []string{layout.IncludeDir},
		LibDirs:            []string{layout.LibDir},
		ConfigDiscovery:    identity.FindMode == types.FindModeConfig || identity.FindMode == types.FindModeBoth,
		PkgConfigDiscovery: identity.PkgConfigName != "",
	}
	log.Ctx(ctx).Info().
		Str("package", identity.Name).
		Strs("libraries", libraries).
		Msg("package metadata published")
	return meta, nil
}

func expectsLibrary(expectations []types.ArtifactExpectation, options types.ResolvedOptionSet) bool {
	for _, expectation := range expectations {
		value, ok := options.Get(expectation.Option)
		if ok && slices.Contains(expectation.Values, value) {
			return true
		}
	}
	return false
}

func optionPairs(options types.ResolvedOptionSet) []string {
	pairs := make([]string, 0, options.Len())
	for _, name := range options.Names() {
		value, _ := options.Get(name)
		pairs = append(pairs, name+"="+string(value))
	}
	return pairs
}
