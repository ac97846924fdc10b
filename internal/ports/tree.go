package ports

import (
	"io/fs"

	"native-recipes/internal/types"
)

// PackageTreePort gives rooted access to one package output tree. Every
// path is relative to the root; implementations reject paths that escape it.
type PackageTreePort interface {
	Root() string
	Exists(path string) (bool, error)
	IsDir(path string) (bool, error)
	// List returns the sorted entry names of a directory.
	List(dir string) ([]string, error)
	// Walk visits the files below dir, reporting paths relative to the root.
	Walk(dir string, fn func(path string, entry fs.DirEntry) error) error
	Rename(from string, to string) error
	RemoveAll(path string) error
	// CopyFile copies atomically: the destination either keeps its previous
	// state or holds a complete copy.
	CopyFile(from string, to string) error
	SameContent(a string, b string) (bool, error)
}

// LibraryScannerPort lists the library files of a normalized layout.
type LibraryScannerPort interface {
	ScanLibraries(root string, libDir string, platform types.Platform) ([]string, error)
}
