package core

import (
	"context"
	"fmt"

	assert "github.com/ZanzyTHEbar/assert-lib"
	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"native-recipes/internal/types"
)

// ValidateSchema checks the static option schema: unique names, non-empty
// duplicate-free domains and defaults inside their domain.
func ValidateSchema(ctx context.Context, schema []types.OptionDeclaration) error {
	seen := map[string]struct{}{}
	for _, decl := range schema {
		if decl.Name == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("option name must not be empty")
		}
		if _, ok := seen[decl.Name]; ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("option %s declared twice", decl.Name))
		}
		seen[decl.Name] = struct{}{}
		if err := validateDomain(decl); err != nil {
			return err
		}
	}
	log.Ctx(ctx).Debug().Int("options", len(schema)).Msg("option schema validated")
	return nil
}

// ValidateRecipe checks a recipe before any of its data is used.
func ValidateRecipe(ctx context.Context, recipe types.Recipe) error {
	assert.NotEmpty(ctx, recipe.Name, "recipe name must be set")
	assert.NotEmpty(ctx, recipe.Version, "recipe version must be set")
	if err := ValidateSchema(ctx, recipe.Options); err != nil {
		return err
	}
	for _, expectation := range recipe.Expectations {
		decl, ok := recipe.Option(expectation.Option)
		if !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("artifact expectation references undeclared option %s", expectation.Option))
		}
		for _, value := range expectation.Values {
			if !decl.Allows(value) {
				return errbuilder.New().
					WithCode(errbuilder.CodeInvalidArgument).
					WithMsg(fmt.Sprintf("artifact expectation value %s not in domain of %s", value, decl.Name))
			}
		}
	}
	return NewVariableMapper(recipe).CheckCoverage(recipe.Options)
}

func validateDomain(decl types.OptionDeclaration) error {
	if len(decl.Domain) == 0 {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("option %s has an empty domain", decl.Name))
	}
	values := map[types.OptionValue]struct{}{}
	for _, value := range decl.Domain {
		if _, ok := values[value]; ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("option %s lists %s twice", decl.Name, value))
		}
		values[value] = struct{}{}
	}
	if _, ok := values[decl.Default]; !ok {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("option %s default %s is not in its domain", decl.Name, decl.Default))
	}
	return nil
}
