package types

import (
	"strings"

	"golang.org/x/mod/semver"
)

// FindMode tells downstream CMake projects which discovery mechanism the
// package supports.
type FindMode string

const (
	FindModeConfig FindMode = "config"
	FindModeModule FindMode = "module"
	FindModeBoth   FindMode = "both"
	FindModeNone   FindMode = "none"
)

// PackageIdentity holds the canonical names consumers use to locate a
// package without inspecting its layout.
type PackageIdentity struct {
	Name          string   `yaml:"name"`
	Version       string   `yaml:"version"`
	CMakeFileName string   `yaml:"cmake_file_name"`
	CMakeTarget   string   `yaml:"cmake_target_name"`
	PkgConfigName string   `yaml:"pkg_config_name"`
	FindMode      FindMode `yaml:"cmake_find_mode"`
}

// LayoutRules describe how an installed tree is normalized.
type LayoutRules struct {
	// MetadataDirs are removed before anything else, relative to the
	// package root (for example "lib/cmake").
	MetadataDirs []string
	// CollectLibraries selects the platforms on which libraries are
	// installed under lib/<versioned> and must be flattened into lib/.
	CollectLibraries PlatformRule
	// VersionedDir overrides the derived version-qualified directory name.
	VersionedDir string
}

// ArtifactExpectation states that at least one library is expected when
// Option resolves to one of Values.
type ArtifactExpectation struct {
	Option string
	Values []OptionValue
}

// Recipe is the static description of how one native library is packaged.
type Recipe struct {
	Name        string
	Version     string
	Description string
	License     string
	// RequiresEngine is a PEP 440 specifier the engine version must satisfy.
	RequiresEngine string

	Options      []OptionDeclaration
	Variables    []VariableRule
	Fixed        []FixedVariable
	Layout       LayoutRules
	Expectations []ArtifactExpectation
	Identity     PackageIdentity
}

// Ref returns "name/version".
func (r Recipe) Ref() string {
	return r.Name + "/" + r.Version
}

// CanonicalName is the stable, version-independent directory name.
func (r Recipe) CanonicalName() string {
	return r.Name
}

// VersionedName is the version-qualified directory name the upstream build
// installs into, "<name>-<major>.<minor>" unless overridden.
func (r Recipe) VersionedName() string {
	if r.Layout.VersionedDir != "" {
		return r.Layout.VersionedDir
	}
	version := r.Version
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	majorMinor := semver.MajorMinor(version)
	if majorMinor == "" {
		return r.Name + "-" + r.Version
	}
	return r.Name + "-" + strings.TrimPrefix(majorMinor, "v")
}

// Option looks up a declaration by name.
func (r Recipe) Option(name string) (OptionDeclaration, bool) {
	for _, decl := range r.Options {
		if decl.Name == name {
			return decl, true
		}
	}
	return OptionDeclaration{}, false
}
