package adapters

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"native-recipes/internal/policies"
	"native-recipes/internal/ports"
	"native-recipes/internal/types"
)

type LibraryScannerAdapter struct{}

func NewLibraryScannerAdapter() LibraryScannerAdapter {
	return LibraryScannerAdapter{}
}

// ScanLibraries lists the library files directly under root/libDir.
// Subdirectories are not searched; a missing directory yields no files.
func (a LibraryScannerAdapter) ScanLibraries(root string, libDir string, platform types.Platform) ([]string, error) {
	if root == "" {
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("package root is empty")
	}
	dir := filepath.Join(root, filepath.FromSlash(libDir))
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to scan library directory").
			WithCause(err)
	}
	convention := policies.ConventionFor(platform)
	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if convention.Matches(entry.Name()) {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)
	return files, nil
}

var _ ports.LibraryScannerPort = LibraryScannerAdapter{}
