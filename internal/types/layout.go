package types

// NormalizeRequest describes one normalization of an installed package tree.
type NormalizeRequest struct {
	VersionedName string
	CanonicalName string
	Platform      Platform
	Rules         LayoutRules
}

// NormalizedLayout is the stable directory shape exposed to consumers.
// IncludeDir and LibDir are relative to Root.
type NormalizedLayout struct {
	Root          string
	IncludeDir    string
	LibDir        string
	CanonicalName string
	Platform      Platform
}

// PackageMetadata is the consumer-facing description of a published package.
// It is the single source for every discovery descriptor.
type PackageMetadata struct {
	Identity     PackageIdentity `yaml:"identity"`
	Platform     Platform        `yaml:"platform"`
	PackageID    string          `yaml:"package_id"`
	Root         string          `yaml:"root"`
	Options      []string        `yaml:"options"`
	LibraryFiles []string        `yaml:"library_files"`
	Libraries    []string        `yaml:"libraries"`
	IncludeDirs  []string        `yaml:"include_dirs"`
	LibDirs      []string        `yaml:"lib_dirs"`

	ConfigDiscovery    bool `yaml:"config_discovery"`
	PkgConfigDiscovery bool `yaml:"pkg_config_discovery"`
}
