// Package recipes holds the static recipes shipped with native-recipes.
package recipes

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"native-recipes/internal/ports"
	"native-recipes/internal/types"
)

// Registry is an immutable set of recipes keyed by name.
type Registry struct {
	recipes []types.Recipe
}

// NewRegistry returns a registry of the given recipes, sorted by name and
// then version.
func NewRegistry(recipes ...types.Recipe) Registry {
	sorted := append([]types.Recipe(nil), recipes...)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].Version < sorted[j].Version
	})
	return Registry{recipes: sorted}
}

// Default holds every recipe shipped with the binary.
func Default() Registry {
	return NewRegistry(Mimalloc())
}

// Lookup accepts "name" or "name/version". A bare name matches when exactly
// one version of that recipe is registered.
func (r Registry) Lookup(ref string) (types.Recipe, error) {
	name, version, hasVersion := strings.Cut(strings.TrimSpace(ref), "/")
	var matches []types.Recipe
	for _, recipe := range r.recipes {
		if recipe.Name != name {
			continue
		}
		if hasVersion && recipe.Version != version {
			continue
		}
		matches = append(matches, recipe)
	}
	switch len(matches) {
	case 0:
		return types.Recipe{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg(fmt.Sprintf("recipe not found: %s", ref))
	case 1:
		return matches[0], nil
	default:
		return types.Recipe{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("recipe %s is ambiguous, use name/version", ref))
	}
}

func (r Registry) All() []types.Recipe {
	return append([]types.Recipe(nil), r.recipes...)
}

var _ ports.RecipeSourcePort = Registry{}
