package adapters

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"native-recipes/internal/types"
)

func TestLibraryScannerAdapter(t *testing.T) {
	root := t.TempDir()
	writeTreeFile(t, root, "lib/libmimalloc.a", "a")
	writeTreeFile(t, root, "lib/libmimalloc.so.2.1", "so")
	writeTreeFile(t, root, "lib/mimalloc.lib", "lib")
	writeTreeFile(t, root, "lib/README", "doc")
	writeTreeFile(t, root, "lib/nested/libinner.a", "a")

	scanner := NewLibraryScannerAdapter()
	tests := []struct {
		name     string
		platform types.Platform
		want     []string
	}{
		{
			name:     "linux",
			platform: types.Platform{OS: types.OSLinux, Arch: types.ArchX86_64},
			want:     []string{"libmimalloc.a", "libmimalloc.so.2.1"},
		},
		{
			name:     "windows",
			platform: types.Platform{OS: types.OSWindows, Arch: types.ArchX86_64},
			want:     []string{"mimalloc.lib"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := scanner.ScanLibraries(root, "lib", tt.platform)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("unexpected libraries (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLibraryScannerAdapterMissingDir(t *testing.T) {
	files, err := NewLibraryScannerAdapter().ScanLibraries(filepath.Join(t.TempDir()), "lib", types.HostPlatform())
	require.NoError(t, err)
	require.Empty(t, files)
}
