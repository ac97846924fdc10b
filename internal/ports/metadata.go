package ports

import "native-recipes/internal/types"

// MetadataWriterPort publishes discovery descriptors derived from one
// PackageMetadata value.
type MetadataWriterPort interface {
	WriteCMakeConfig(meta types.PackageMetadata) (string, error)
	WritePkgConfig(meta types.PackageMetadata) (string, error)
	WriteManifest(meta types.PackageMetadata) (string, error)
}
