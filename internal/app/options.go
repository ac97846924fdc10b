package app

import (
	"context"

	"native-recipes/internal/policies"
)

func (s Service) ListRecipes() RecipesResult {
	return RecipesResult{Recipes: s.Recipes.All()}
}

// Options reports the schema of a recipe and which options are offered on
// the selected platform.
func (s Service) Options(ctx context.Context, req OptionsRequest) (OptionsResult, error) {
	sel, err := s.selectTarget(ctx, req.Target)
	if err != nil {
		return OptionsResult{}, err
	}
	infos := make([]OptionInfo, 0, len(sel.recipe.Options))
	for _, decl := range sel.recipe.Options {
		infos = append(infos, OptionInfo{
			Declaration: decl,
			Applicable:  policies.Applies(decl.AppliesTo, sel.platform),
		})
	}
	return OptionsResult{Recipe: sel.recipe, Platform: sel.platform, Options: infos}, nil
}
