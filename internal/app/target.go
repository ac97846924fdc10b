package app

import (
	"context"
	"maps"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"native-recipes/internal/core"
	"native-recipes/internal/types"
)

// selection is a Target after the recipe, profile and platform are loaded.
type selection struct {
	recipe    types.Recipe
	platform  types.Platform
	overrides map[string]string
	profile   types.Profile
}

func (s Service) selectTarget(ctx context.Context, target Target) (selection, error) {
	ref := strings.TrimSpace(target.Recipe)
	if ref == "" {
		return selection{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("recipe is required")
	}
	recipe, err := s.Recipes.Lookup(ref)
	if err != nil {
		return selection{}, err
	}
	if err := core.ValidateRecipe(ctx, recipe); err != nil {
		return selection{}, err
	}
	engine := s.EngineVersion
	if engine == "" {
		engine = core.EngineVersion
	}
	if err := core.CheckEngine(recipe, engine); err != nil {
		return selection{}, err
	}

	var profile types.Profile
	if path := strings.TrimSpace(target.ProfilePath); path != "" {
		profile, err = s.Profiles.LoadProfile(path)
		if err != nil {
			return selection{}, err
		}
	}
	platform, err := selectPlatform(target, profile)
	if err != nil {
		return selection{}, err
	}

	overrides := map[string]string{}
	maps.Copy(overrides, profile.Options)
	maps.Copy(overrides, target.Options)

	log.Ctx(ctx).Debug().
		Str("recipe", recipe.Ref()).
		Str("platform", platform.String()).
		Int("overrides", len(overrides)).
		Msg("target selected")
	return selection{recipe: recipe, platform: platform, overrides: overrides, profile: profile}, nil
}

func selectPlatform(target Target, profile types.Profile) (types.Platform, error) {
	platform := types.HostPlatform()
	if profile.Platform.OS != "" {
		platform.OS = profile.Platform.OS
	}
	if profile.Platform.Arch != "" {
		platform.Arch = profile.Platform.Arch
	}
	if value := strings.TrimSpace(target.OS); value != "" {
		platform.OS = value
	}
	if value := strings.TrimSpace(target.Arch); value != "" {
		platform.Arch = value
	}
	return types.ParsePlatform(platform.OS, platform.Arch)
}

func (s Service) resolveSelection(ctx context.Context, sel selection) (types.ResolvedOptionSet, types.ToolchainVariableMap, error) {
	options, err := core.NewOptionResolver().Resolve(ctx, sel.recipe.Options, sel.platform, sel.overrides)
	if err != nil {
		return types.ResolvedOptionSet{}, nil, err
	}
	vars, err := core.NewVariableMapper(sel.recipe).ToVariables(options)
	if err != nil {
		return types.ResolvedOptionSet{}, nil, err
	}
	return options, vars, nil
}
