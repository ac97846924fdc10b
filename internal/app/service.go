package app

import (
	"native-recipes/internal/adapters"
	"native-recipes/internal/core"
	"native-recipes/internal/ports"
	"native-recipes/internal/recipes"
)

type Service struct {
	Recipes       ports.RecipeSourcePort
	Profiles      ports.ProfilePort
	Toolchain     ports.ToolchainPort
	Scanner       ports.LibraryScannerPort
	Tree          func(root string) (ports.PackageTreePort, error)
	Metadata      func(dir string) ports.MetadataWriterPort
	EngineVersion string
}

func NewService() Service {
	return Service{
		Recipes:   recipes.Default(),
		Profiles:  adapters.NewProfileFileAdapter(),
		Toolchain: adapters.NewCMakeToolchainAdapter(),
		Scanner:   adapters.NewLibraryScannerAdapter(),
		Tree: func(root string) (ports.PackageTreePort, error) {
			return adapters.NewPackageTreeAdapter(root)
		},
		Metadata: func(dir string) ports.MetadataWriterPort {
			return adapters.NewMetadataFileAdapter(dir)
		},
		EngineVersion: core.EngineVersion,
	}
}
