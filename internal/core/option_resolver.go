package core

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"native-recipes/internal/policies"
	"native-recipes/internal/types"
)

type OptionResolver struct{}

func NewOptionResolver() OptionResolver {
	return OptionResolver{}
}

// Resolve applies the platform to the schema and then the overrides. Options
// not applicable on the platform are dropped from the result, never
// defaulted. Overrides are validated in name order so the first reported
// failure does not depend on map iteration.
func (r OptionResolver) Resolve(ctx context.Context, schema []types.OptionDeclaration, platform types.Platform, overrides map[string]string) (types.ResolvedOptionSet, error) {
	if err := ValidateSchema(ctx, schema); err != nil {
		return types.ResolvedOptionSet{}, err
	}
	declared := make(map[string]types.OptionDeclaration, len(schema))
	for _, decl := range schema {
		declared[decl.Name] = decl
	}

	accepted := map[string]types.OptionValue{}
	for _, name := range sortedKeys(overrides) {
		decl, ok := declared[name]
		if !ok {
			return types.ResolvedOptionSet{}, &types.RecipeError{
				Kind:   types.FailureInvalidOption,
				Option: name,
				Reason: types.ReasonUnknown,
			}
		}
		if !policies.Applies(decl.AppliesTo, platform) {
			return types.ResolvedOptionSet{}, &types.RecipeError{
				Kind:   types.FailureInvalidOption,
				Option: name,
				Reason: types.ReasonInapplicable,
				Found:  platform.String(),
			}
		}
		value := decl.NormalizeValue(overrides[name])
		if !decl.Allows(value) {
			return types.ResolvedOptionSet{}, &types.RecipeError{
				Kind:     types.FailureInvalidOption,
				Option:   name,
				Reason:   types.ReasonOutOfDomain,
				Expected: domainString(decl.Domain),
				Found:    fmt.Sprintf("%q", overrides[name]),
			}
		}
		accepted[name] = value
	}

	values := map[string]types.OptionValue{}
	for _, decl := range schema {
		if !policies.Applies(decl.AppliesTo, platform) {
			log.Ctx(ctx).Debug().Str("option", decl.Name).Str("platform", platform.String()).Msg("option not offered on platform")
			continue
		}
		if value, ok := accepted[decl.Name]; ok {
			values[decl.Name] = value
			continue
		}
		values[decl.Name] = decl.Default
	}
	resolved := types.NewResolvedOptionSet(values)
	log.Ctx(ctx).Debug().Str("options", resolved.String()).Msg("options resolved")
	return resolved, nil
}

func domainString(domain []types.OptionValue) string {
	parts := make([]string, 0, len(domain))
	for _, value := range domain {
		parts = append(parts, string(value))
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for key := range m {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}
