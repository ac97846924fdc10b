package core

import (
	"context"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"native-recipes/internal/policies"
	"native-recipes/internal/ports"
	"native-recipes/internal/types"
)

const (
	includeDir = "include"
	libDir     = "lib"
)

// DefaultMetadataDirs are the build-system directories consumers never need.
var DefaultMetadataDirs = []string{"lib/cmake", "lib/pkgconfig"}

// LayoutNormalizer turns an installed artifact tree into the stable layout.
// Each step checks the tree before changing it, so a run interrupted at any
// point converges when normalization is started again from scratch.
type LayoutNormalizer struct {
	Tree ports.PackageTreePort
}

func NewLayoutNormalizer(tree ports.PackageTreePort) LayoutNormalizer {
	return LayoutNormalizer{Tree: tree}
}

// copyStep is one planned library copy into lib/.
type copyStep struct {
	from string
	to   string
}

func (n LayoutNormalizer) Normalize(ctx context.Context, req types.NormalizeRequest) (types.NormalizedLayout, error) {
	if n.Tree == nil {
		return types.NormalizedLayout{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("normalizer requires a package tree")
	}
	if strings.TrimSpace(req.VersionedName) == "" || strings.TrimSpace(req.CanonicalName) == "" {
		return types.NormalizedLayout{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("versioned and canonical names are required")
	}
	logger := log.Ctx(ctx).With().Str("root", n.Tree.Root()).Logger()

	metadataDirs := req.Rules.MetadataDirs
	if metadataDirs == nil {
		metadataDirs = DefaultMetadataDirs
	}
	if err := n.removeMetadataDirs(metadataDirs); err != nil {
		return types.NormalizedLayout{}, err
	}
	logger.Debug().Strs("dirs", metadataDirs).Msg("metadata directories removed")

	if err := n.renameIncludeDir(req.VersionedName, req.CanonicalName); err != nil {
		return types.NormalizedLayout{}, err
	}
	logger.Debug().Str("include", path.Join(includeDir, req.CanonicalName)).Msg("include directory in place")

	if policies.Applies(req.Rules.CollectLibraries, req.Platform) {
		versionedLib := path.Join(libDir, req.VersionedName)
		plan, err := n.planLibraryCopies(versionedLib, req.Platform)
		if err != nil {
			return types.NormalizedLayout{}, err
		}
		for _, step := range plan {
			if err := n.Tree.CopyFile(step.from, step.to); err != nil {
				return types.NormalizedLayout{}, err
			}
		}
		logger.Debug().Int("copied", len(plan)).Msg("libraries collected")

		if err := n.removeIfExists(versionedLib); err != nil {
			return types.NormalizedLayout{}, err
		}
	}

	layout := types.NormalizedLayout{
		Root:          n.Tree.Root(),
		IncludeDir:    path.Join(includeDir, req.CanonicalName),
		LibDir:        libDir,
		CanonicalName: req.CanonicalName,
		Platform:      req.Platform,
	}
	logger.Info().Str("platform", req.Platform.String()).Msg("layout normalized")
	return layout, nil
}

func (n LayoutNormalizer) removeMetadataDirs(dirs []string) error {
	for _, dir := range dirs {
		if err := n.removeIfExists(dir); err != nil {
			return err
		}
	}
	return nil
}

func (n LayoutNormalizer) removeIfExists(p string) error {
	exists, err := n.Tree.Exists(p)
	if err != nil {
		return err
	}
	if !exists {
		return nil
	}
	return n.Tree.RemoveAll(p)
}

func (n LayoutNormalizer) renameIncludeDir(versioned string, canonical string) error {
	from := path.Join(includeDir, versioned)
	to := path.Join(includeDir, canonical)
	fromExists, err := n.Tree.IsDir(from)
	if err != nil {
		return err
	}
	if from == to {
		if fromExists {
			return nil
		}
		return n.layoutMismatch(from)
	}
	toExists, err := n.Tree.IsDir(to)
	if err != nil {
		return err
	}
	switch {
	case fromExists && !toExists:
		return n.Tree.Rename(from, to)
	case !fromExists && toExists:
		return nil
	case fromExists && toExists:
		return &types.RecipeError{
			Kind:     types.FailureLayoutMismatch,
			Expected: from + " only",
			Found:    from + " and " + to,
		}
	default:
		return n.layoutMismatch(from)
	}
}

func (n LayoutNormalizer) layoutMismatch(expected string) error {
	found := includeDir + "/ missing"
	if ok, err := n.Tree.IsDir(includeDir); err == nil && ok {
		entries, err := n.Tree.List(includeDir)
		if err != nil {
			return err
		}
		found = includeDir + "/[" + strings.Join(entries, ", ") + "]"
	}
	return &types.RecipeError{
		Kind:     types.FailureLayoutMismatch,
		Expected: expected,
		Found:    found,
	}
}

// planLibraryCopies validates every copy before the first one runs, so a
// collision never leaves a partial copy in lib/.
func (n LayoutNormalizer) planLibraryCopies(versionedLib string, platform types.Platform) ([]copyStep, error) {
	exists, err := n.Tree.IsDir(versionedLib)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, nil
	}
	convention := policies.ConventionFor(platform)
	byName := map[string][]string{}
	err = n.Tree.Walk(versionedLib, func(p string, entry fs.DirEntry) error {
		if entry.IsDir() || !convention.Matches(entry.Name()) {
			return nil
		}
		byName[entry.Name()] = append(byName[entry.Name()], p)
		return nil
	})
	if err != nil {
		return nil, err
	}

	names := sortedKeys(byName)
	for _, name := range names {
		sources := byName[name]
		if len(sources) > 1 {
			sort.Strings(sources)
			return nil, &types.RecipeError{
				Kind:   types.FailureNameCollision,
				Reason: "libraries share the destination " + path.Join(libDir, name),
				Paths:  sources,
			}
		}
	}

	var plan []copyStep
	for _, name := range names {
		from := byName[name][0]
		to := path.Join(libDir, name)
		present, err := n.Tree.Exists(to)
		if err != nil {
			return nil, err
		}
		if present {
			same, err := n.Tree.SameContent(from, to)
			if err != nil {
				return nil, err
			}
			if same {
				continue
			}
			return nil, &types.RecipeError{
				Kind:   types.FailureNameCollision,
				Reason: "destination already holds a different library",
				Paths:  []string{from, to},
			}
		}
		plan = append(plan, copyStep{from: from, to: to})
	}
	return plan, nil
}
