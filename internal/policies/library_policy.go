package policies

import (
	"path/filepath"
	"strings"

	"native-recipes/internal/types"
)

// LibraryConvention captures how a platform names link libraries.
type LibraryConvention struct {
	// Prefix is stripped from file names to obtain the library name.
	Prefix string
	// Patterns select linkable library files (static, import or shared).
	Patterns []string
}

var windowsConvention = LibraryConvention{
	Patterns: []string{"*.lib"},
}

var macosConvention = LibraryConvention{
	Prefix:   "lib",
	Patterns: []string{"*.a", "*.dylib"},
}

var unixConvention = LibraryConvention{
	Prefix:   "lib",
	Patterns: []string{"*.a", "*.so", "*.so.*"},
}

// ConventionFor returns the library convention of the target platform.
// Windows packages link against static or import libraries only.
func ConventionFor(platform types.Platform) LibraryConvention {
	switch platform.OS {
	case types.OSWindows:
		return windowsConvention
	case types.OSMacos:
		return macosConvention
	default:
		return unixConvention
	}
}

// Matches reports whether fileName is a library under this convention.
func (c LibraryConvention) Matches(fileName string) bool {
	base := filepath.Base(fileName)
	if strings.HasPrefix(base, ".") {
		return false
	}
	for _, pattern := range c.Patterns {
		if ok, err := filepath.Match(pattern, base); err == nil && ok {
			return true
		}
	}
	return false
}

// LibraryName converts a library file name into the name passed to the
// linker, e.g. "libmimalloc.so.2.1" -> "mimalloc".
func (c LibraryConvention) LibraryName(fileName string) (string, bool) {
	if !c.Matches(fileName) {
		return "", false
	}
	name := filepath.Base(fileName)
	if idx := strings.Index(name, ".so."); idx > 0 {
		name = name[:idx]
	} else {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	if c.Prefix != "" && strings.HasPrefix(name, c.Prefix) && len(name) > len(c.Prefix) {
		name = strings.TrimPrefix(name, c.Prefix)
	}
	return name, name != ""
}
