package core

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"native-recipes/internal/adapters"
	"native-recipes/internal/policies"
	"native-recipes/internal/types"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

func listFiles(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			return err
		}
		files = append(files, filepath.ToSlash(rel))
		return nil
	})
	require.NoError(t, err)
	sort.Strings(files)
	return files
}

func windowsInstallTree() map[string]string {
	return map[string]string{
		"include/mimalloc-2.1/mimalloc.h":          "header",
		"include/mimalloc-2.1/mimalloc-override.h": "override",
		"lib/cmake/mimalloc/mimalloc-config.cmake": "cmake",
		"lib/pkgconfig/mimalloc.pc":                "pc",
		"lib/mimalloc-2.1/mimalloc-static.lib":     "archive",
		"lib/mimalloc-2.1/mimalloc.dll":            "runtime",
	}
}

func mimallocRequest(platform types.Platform) types.NormalizeRequest {
	return types.NormalizeRequest{
		VersionedName: "mimalloc-2.1",
		CanonicalName: "mimalloc",
		Platform:      platform,
		Rules:         types.LayoutRules{CollectLibraries: policies.Everywhere()},
	}
}

func newNormalizer(t *testing.T, root string) LayoutNormalizer {
	t.Helper()
	tree, err := adapters.NewPackageTreeAdapter(root)
	require.NoError(t, err)
	return NewLayoutNormalizer(tree)
}

func TestLayoutNormalizerWindowsTree(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, windowsInstallTree())

	layout, err := newNormalizer(t, root).Normalize(t.Context(), mimallocRequest(windowsX64))
	require.NoError(t, err)
	require.Equal(t, "include/mimalloc", layout.IncludeDir)
	require.Equal(t, "lib", layout.LibDir)

	want := []string{
		"include/mimalloc/mimalloc-override.h",
		"include/mimalloc/mimalloc.h",
		"lib/mimalloc-static.lib",
	}
	if diff := cmp.Diff(want, listFiles(t, root)); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestLayoutNormalizerIsIdempotent(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, windowsInstallTree())
	normalizer := newNormalizer(t, root)

	first, err := normalizer.Normalize(t.Context(), mimallocRequest(windowsX64))
	require.NoError(t, err)
	firstFiles := listFiles(t, root)

	second, err := normalizer.Normalize(t.Context(), mimallocRequest(windowsX64))
	require.NoError(t, err)
	require.Equal(t, first, second)
	if diff := cmp.Diff(firstFiles, listFiles(t, root)); diff != "" {
		t.Fatalf("second run changed the tree (-want +got):\n%s", diff)
	}
}

func TestLayoutNormalizerResumesInterruptedRun(t *testing.T) {
	root := t.TempDir()
	// include already renamed and one library already copied before the
	// previous run stopped.
	writeFiles(t, root, map[string]string{
		"include/mimalloc/mimalloc.h":    "header",
		"lib/mimalloc-2.1/libmimalloc.a": "archive",
		"lib/mimalloc-2.1/libextra.a":    "extra",
		"lib/libmimalloc.a":              "archive",
		"lib/.libextra.a.partial":        "ext",
	})

	_, err := newNormalizer(t, root).Normalize(t.Context(), mimallocRequest(linuxX64))
	require.NoError(t, err)
	want := []string{
		"include/mimalloc/mimalloc.h",
		"lib/libextra.a",
		"lib/libmimalloc.a",
	}
	if diff := cmp.Diff(want, listFiles(t, root)); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}
}

func TestLayoutNormalizerNameCollisionCopiesNothing(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"include/mimalloc-2.1/mimalloc.h":        "header",
		"lib/mimalloc-2.1/release/mimalloc.lib":  "release",
		"lib/mimalloc-2.1/debug/mimalloc.lib":    "debug",
		"lib/mimalloc-2.1/mimalloc-redirect.lib": "redirect",
	})

	_, err := newNormalizer(t, root).Normalize(t.Context(), mimallocRequest(windowsX64))
	recipeErr := requireRecipeError(t, err, types.FailureNameCollision)
	want := []string{"lib/mimalloc-2.1/debug/mimalloc.lib", "lib/mimalloc-2.1/release/mimalloc.lib"}
	if diff := cmp.Diff(want, recipeErr.Paths); diff != "" {
		t.Fatalf("unexpected collision paths (-want +got):\n%s", diff)
	}
	_, statErr := os.Stat(filepath.Join(root, "lib", "mimalloc-redirect.lib"))
	require.True(t, os.IsNotExist(statErr), "no library may be copied when a collision is found")
	_, statErr = os.Stat(filepath.Join(root, "lib", "mimalloc-2.1"))
	require.NoError(t, statErr)
}

func TestLayoutNormalizerDifferentExistingDestination(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"include/mimalloc/mimalloc.h":   "header",
		"lib/mimalloc-2.1/mimalloc.lib": "new",
		"lib/mimalloc.lib":              "old",
	})
	_, err := newNormalizer(t, root).Normalize(t.Context(), mimallocRequest(windowsX64))
	recipeErr := requireRecipeError(t, err, types.FailureNameCollision)
	require.Equal(t, []string{"lib/mimalloc-2.1/mimalloc.lib", "lib/mimalloc.lib"}, recipeErr.Paths)
}

func TestLayoutNormalizerLayoutMismatch(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		found string
	}{
		{
			name:  "versioned include missing",
			files: map[string]string{"include/mimalloc-2.0/mimalloc.h": "header"},
			found: "include/[mimalloc-2.0]",
		},
		{
			name:  "no include directory",
			files: map[string]string{"lib/libmimalloc.a": "archive"},
			found: "include/ missing",
		},
		{
			name: "both directories present",
			files: map[string]string{
				"include/mimalloc-2.1/mimalloc.h": "header",
				"include/mimalloc/mimalloc.h":     "header",
			},
			found: "include/mimalloc-2.1 and include/mimalloc",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			writeFiles(t, root, tt.files)
			_, err := newNormalizer(t, root).Normalize(t.Context(), mimallocRequest(linuxX64))
			recipeErr := requireRecipeError(t, err, types.FailureLayoutMismatch)
			require.Equal(t, tt.found, recipeErr.Found)
		})
	}
}

func TestLayoutNormalizerSkipsCollectionWhenRuleExcludesPlatform(t *testing.T) {
	root := t.TempDir()
	writeFiles(t, root, map[string]string{
		"include/mimalloc-2.1/mimalloc.h": "header",
		"lib/mimalloc-2.1/libmimalloc.a":  "archive",
	})
	req := mimallocRequest(linuxX64)
	req.Rules.CollectLibraries = policies.OnlyOn(types.OSWindows)

	_, err := newNormalizer(t, root).Normalize(t.Context(), req)
	require.NoError(t, err)
	want := []string{"include/mimalloc/mimalloc.h", "lib/mimalloc-2.1/libmimalloc.a"}
	if diff := cmp.Diff(want, listFiles(t, root)); diff != "" {
		t.Fatalf("unexpected tree (-want +got):\n%s", diff)
	}
}
