package ports

import (
	"context"

	"native-recipes/internal/types"
)

// ToolchainRequest is the sole input of a native build: sources, a private
// build directory, the install prefix and the derived variables.
type ToolchainRequest struct {
	SourceDir  string
	BuildDir   string
	PackageDir string
	BuildType  string
	Generator  string
	Variables  types.ToolchainVariableMap
}

// ToolchainPort drives the external native build system.
type ToolchainPort interface {
	Build(ctx context.Context, req ToolchainRequest) error
}
