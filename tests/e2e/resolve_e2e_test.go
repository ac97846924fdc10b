package e2e

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"native-recipes/tests/testutil"
)

func runCLI(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := exec.Command("go", append([]string{"run", "./cmd/native-recipes"}, args...)...)
	cmd.Dir = testutil.RepoRoot(t)
	cmd.Env = append(os.Environ(), "GO111MODULE=on")
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func TestResolveCommandE2E(t *testing.T) {
	out, err := runCLI(t, "resolve",
		"--recipe", "mimalloc",
		"--os", "Windows",
		"--arch", "x86_64",
		"-o", "etw=true",
		"--format", "cmake",
	)
	require.NoError(t, err, out)
	require.Contains(t, out, "-DMI_TRACK_ETW:BOOL=ON")
	require.Contains(t, out, "-DMI_BUILD_STATIC:BOOL=ON")
	require.NotContains(t, out, "CMAKE_POSITION_INDEPENDENT_CODE")
}

func TestResolveRejectsInapplicableOptionE2E(t *testing.T) {
	out, err := runCLI(t, "resolve",
		"--recipe", "mimalloc",
		"--os", "Linux",
		"--arch", "x86_64",
		"-o", "etw=true",
	)
	require.Error(t, err)
	require.Contains(t, out, "InvalidOption")
	require.Contains(t, out, "inapplicable")
}

func TestNormalizeAndPublishCommandsE2E(t *testing.T) {
	root := t.TempDir()
	packageDir := filepath.Join(root, "package")
	metadataDir := filepath.Join(root, "metadata")
	testutil.WriteTree(t, packageDir, map[string]string{
		"include/mimalloc-2.1/mimalloc.h":              "header",
		"lib/cmake/mimalloc-2.1/mimalloc-config.cmake": "cmake",
		"lib/mimalloc-2.1/mimalloc.lib":                "import",
		"bin/mimalloc.dll":                             "dll",
	})

	out, err := runCLI(t, "normalize",
		"--recipe", "mimalloc",
		"--os", "Windows",
		"--arch", "x86_64",
		"--package-dir", packageDir,
	)
	require.NoError(t, err, out)
	require.FileExists(t, filepath.Join(packageDir, "include", "mimalloc", "mimalloc.h"))
	require.FileExists(t, filepath.Join(packageDir, "lib", "mimalloc.lib"))
	require.NoDirExists(t, filepath.Join(packageDir, "lib", "cmake"))

	out, err = runCLI(t, "publish",
		"--recipe", "mimalloc",
		"--os", "Windows",
		"--arch", "x86_64",
		"-o", "shared=true",
		"--package-dir", packageDir,
		"--metadata-dir", metadataDir,
	)
	require.NoError(t, err, out)
	require.Contains(t, out, "libraries: mimalloc")
	require.FileExists(t, filepath.Join(metadataDir, "mimalloc-config.cmake"))
	require.FileExists(t, filepath.Join(metadataDir, "mimalloc.pc"))
	require.FileExists(t, filepath.Join(metadataDir, "package-metadata.yaml"))
}
