package recipes

import (
	"native-recipes/internal/policies"
	"native-recipes/internal/types"
)

func boolOption(name string, def bool, description string, rule types.PlatformRule) types.OptionDeclaration {
	return types.OptionDeclaration{
		Name:        name,
		Description: description,
		Domain:      types.BoolDomain,
		Default:     types.BoolValue(def),
		AppliesTo:   rule,
	}
}

func identity(option string, variable string) types.VariableRule {
	return types.VariableRule{
		Option:      option,
		Derivations: []types.VariableDerivation{{Variable: variable, Transform: types.TransformIdentity}},
	}
}

func off(name string) types.FixedVariable {
	return types.FixedVariable{Name: name, Value: types.BoolVariable(false)}
}

// Mimalloc packages microsoft/mimalloc 2.1.2.
func Mimalloc() types.Recipe {
	return types.Recipe{
		Name:           "mimalloc",
		Version:        "2.1.2",
		Description:    "A compact general purpose allocator with excellent performance",
		License:        "MIT",
		RequiresEngine: ">=2.0",
		Options: []types.OptionDeclaration{
			boolOption("shared", false, "build a shared library instead of a static one", policies.Everywhere()),
			boolOption("fPIC", true, "compile position independent code", policies.ExceptOn(types.OSWindows)),
			boolOption("full_debug", false, "enable full internal heap invariant checking (slow)", policies.Everywhere()),
			boolOption("xmalloc", true, "abort on allocation failure", policies.Everywhere()),
			boolOption("sanitizer", false, "track allocations for the address sanitizer", policies.Everywhere()),
			boolOption("etw", false, "emit Windows event tracing events", policies.OnlyOn(types.OSWindows)),
			boolOption("secure", false, "guard pages, encoded free lists and allocation randomization", policies.Everywhere()),
		},
		Variables: []types.VariableRule{
			{
				Option: "shared",
				Derivations: []types.VariableDerivation{
					{Variable: "MI_BUILD_SHARED", Transform: types.TransformIdentity},
					{Variable: "MI_BUILD_STATIC", Transform: types.TransformNegate},
				},
			},
			identity("fPIC", "CMAKE_POSITION_INDEPENDENT_CODE"),
			identity("full_debug", "MI_DEBUG_FULL"),
			identity("xmalloc", "MI_XMALLOC"),
			identity("sanitizer", "MI_TRACK_ASAN"),
			identity("etw", "MI_TRACK_ETW"),
			identity("secure", "MI_SECURE"),
		},
		Fixed: []types.FixedVariable{
			{Name: "CMAKE_DEBUG_POSTFIX", Value: types.StringVariable("")},
			off("MI_OVERRIDE"),
			off("MI_USE_CXX"),
			off("MI_SEE_ASM"),
			off("MI_WIN_REDIRECT"),
			off("MI_BUILD_OBJECT"),
			off("MI_BUILD_TESTS"),
			off("MI_SKIP_COLLECT_ON_EXIT"),
		},
		Layout: types.LayoutRules{
			MetadataDirs:     []string{"lib/cmake", "lib/pkgconfig"},
			CollectLibraries: policies.Everywhere(),
		},
		Expectations: []types.ArtifactExpectation{
			{Option: "shared", Values: types.BoolDomain},
		},
		Identity: types.PackageIdentity{
			Name:          "mimalloc",
			Version:       "2.1.2",
			CMakeFileName: "mimalloc",
			CMakeTarget:   "mimalloc::mimalloc",
			PkgConfigName: "mimalloc",
			FindMode:      types.FindModeBoth,
		},
	}
}
