// Package testutil provides shared test helpers used across integration,
// e2e, and unit test packages.
package testutil

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"native-recipes/internal/ports"
)

// RepoRoot returns the absolute path to the repository root by walking
// up from the current working directory. It fails the test if the
// working directory cannot be determined.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Clean(filepath.Join(dir, "..", ".."))
}

// WriteTree creates files (slash-separated paths relative to root).
func WriteTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
}

// ListTree returns every regular file below root as a sorted slash path.
func ListTree(t *testing.T, root string) []string {
	t.Helper()
	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
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

// MimallocLinuxInstall is the tree a static Linux mimalloc build installs.
func MimallocLinuxInstall() map[string]string {
	return map[string]string{
		"include/mimalloc-2.1/mimalloc.h":              "header",
		"lib/cmake/mimalloc-2.1/mimalloc-config.cmake": "cmake",
		"lib/pkgconfig/mimalloc.pc":                    "pc",
		"lib/mimalloc-2.1/libmimalloc.a":               "archive",
	}
}

// InstallingToolchain replaces the native build by copying Files into the
// requested package directory.
type InstallingToolchain struct {
	Files    map[string]string
	Requests []ports.ToolchainRequest
}

func (f *InstallingToolchain) Build(ctx context.Context, req ports.ToolchainRequest) error {
	f.Requests = append(f.Requests, req)
	for rel, content := range f.Files {
		path := filepath.Join(req.PackageDir, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
			return err
		}
	}
	return nil
}
