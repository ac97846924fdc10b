package app

import "native-recipes/internal/types"

// Target selects a recipe, a platform and overrides. Flags win over the
// profile and the profile wins over recipe defaults.
type Target struct {
	Recipe      string
	ProfilePath string
	OS          string
	Arch        string
	Options     map[string]string
}

type RecipesResult struct {
	Recipes []types.Recipe
}

type OptionsRequest struct {
	Target
}

type OptionInfo struct {
	Declaration types.OptionDeclaration
	Applicable  bool
}

type OptionsResult struct {
	Recipe   types.Recipe
	Platform types.Platform
	Options  []OptionInfo
}

type ResolveRequest struct {
	Target
}

type ResolveResult struct {
	Recipe    types.Recipe
	Platform  types.Platform
	Options   types.ResolvedOptionSet
	Variables types.ToolchainVariableMap
	PackageID string
}

type BuildRequest struct {
	Target
	SourceDir   string
	OutputDir   string
	MetadataDir string
	BuildType   string
	Generator   string
}

type BuildResult struct {
	PackageID   string
	BuildDir    string
	PackageDir  string
	MetadataDir string
	Metadata    types.PackageMetadata
	Descriptors []string
}

type NormalizeRequest struct {
	Target
	PackageDir string
}

type NormalizeResult struct {
	Layout types.NormalizedLayout
}

type PublishRequest struct {
	Target
	PackageDir  string
	MetadataDir string
}

type PublishResult struct {
	Metadata    types.PackageMetadata
	Descriptors []string
}
