package integration

import (
	"os/exec"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"native-recipes/internal/app"
	"native-recipes/tests/testutil"
)

// TestCMakeBuildStubProject drives the real cmake adapter against a small
// project that installs the same versioned layout as mimalloc.
func TestCMakeBuildStubProject(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping native build in short mode")
	}
	if runtime.GOOS == "windows" {
		t.Skip("stub project assumes a Unix toolchain")
	}
	if _, err := exec.LookPath("cmake"); err != nil {
		t.Skip("cmake not installed")
	}
	if _, err := exec.LookPath("cc"); err != nil {
		t.Skip("no C compiler installed")
	}

	source := filepath.Join(testutil.RepoRoot(t), "tests", "integration", "testdata", "mimalloc-stub")
	host := map[string]string{"linux": "Linux", "darwin": "Macos", "freebsd": "FreeBSD"}[runtime.GOOS]
	require.NotEmpty(t, host)

	result, err := app.NewService().Build(t.Context(), app.BuildRequest{
		Target: app.Target{
			Recipe:  "mimalloc",
			OS:      host,
			Arch:    runtime.GOARCH,
			Options: map[string]string{"shared": "false"},
		},
		SourceDir: source,
		OutputDir: t.TempDir(),
	})
	require.NoError(t, err)
	require.Equal(t, []string{"mimalloc"}, result.Metadata.Libraries)
	require.Equal(t, []string{"libmimalloc.a"}, result.Metadata.LibraryFiles)

	tree := testutil.ListTree(t, result.PackageDir)
	require.Contains(t, tree, "include/mimalloc/mimalloc.h")
	require.Contains(t, tree, "lib/libmimalloc.a")
	require.NotContains(t, tree, "lib/pkgconfig/mimalloc.pc")
}
