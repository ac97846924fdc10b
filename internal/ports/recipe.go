package ports

import "native-recipes/internal/types"

// RecipeSourcePort looks up static recipes by "name" or "name/version".
type RecipeSourcePort interface {
	Lookup(ref string) (types.Recipe, error)
	All() []types.Recipe
}
