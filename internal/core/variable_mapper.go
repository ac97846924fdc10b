package core

import (
	"fmt"

	"github.com/ZanzyTHEbar/errbuilder-go"

	"native-recipes/internal/types"
)

// VariableMapper translates resolved options into toolchain variables through
// a static table. It performs no I/O and reads nothing but its input.
type VariableMapper struct {
	Rules []types.VariableRule
	Fixed []types.FixedVariable
}

func NewVariableMapper(recipe types.Recipe) VariableMapper {
	return VariableMapper{Rules: recipe.Variables, Fixed: recipe.Fixed}
}

// ToVariables maps every resolved option through its rule and adds the
// policy-fixed variables. An option without a rule is a MissingDerivation.
func (m VariableMapper) ToVariables(options types.ResolvedOptionSet) (types.ToolchainVariableMap, error) {
	rules := make(map[string]types.VariableRule, len(m.Rules))
	for _, rule := range m.Rules {
		rules[rule.Option] = rule
	}

	vars := types.ToolchainVariableMap{}
	for _, fixed := range m.Fixed {
		vars[fixed.Name] = fixed.Value
	}
	for _, name := range options.Names() {
		rule, ok := rules[name]
		if !ok || len(rule.Derivations) == 0 {
			return nil, &types.RecipeError{
				Kind:   types.FailureMissingDerivation,
				Option: name,
				Reason: "no translation rule registered",
			}
		}
		value, _ := options.Get(name)
		for _, derivation := range rule.Derivations {
			derived, err := applyTransform(name, value, derivation.Transform)
			if err != nil {
				return nil, err
			}
			vars[derivation.Variable] = derived
		}
	}
	return vars, nil
}

// CheckCoverage audits the table against a schema: every option has a rule,
// every rule names a declared option, and no variable has two sources.
func (m VariableMapper) CheckCoverage(schema []types.OptionDeclaration) error {
	declared := make(map[string]types.OptionDeclaration, len(schema))
	for _, decl := range schema {
		declared[decl.Name] = decl
	}
	sources := map[string]string{}
	for _, fixed := range m.Fixed {
		if prev, ok := sources[fixed.Name]; ok {
			return duplicateSource(fixed.Name, prev, "fixed")
		}
		sources[fixed.Name] = "fixed"
	}

	covered := map[string]struct{}{}
	for _, rule := range m.Rules {
		decl, ok := declared[rule.Option]
		if !ok {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("translation rule for undeclared option %s", rule.Option))
		}
		if _, dup := covered[rule.Option]; dup {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg(fmt.Sprintf("option %s has two translation rules", rule.Option))
		}
		covered[rule.Option] = struct{}{}
		for _, derivation := range rule.Derivations {
			if derivation.Transform == types.TransformNegate && !decl.IsBoolDomain() {
				return errbuilder.New().
					WithCode(errbuilder.CodeInternal).
					WithMsg(fmt.Sprintf("negate transform on non-boolean option %s", rule.Option))
			}
			if prev, ok := sources[derivation.Variable]; ok {
				return duplicateSource(derivation.Variable, prev, rule.Option)
			}
			sources[derivation.Variable] = rule.Option
		}
	}
	for _, decl := range schema {
		if _, ok := covered[decl.Name]; !ok {
			return &types.RecipeError{
				Kind:   types.FailureMissingDerivation,
				Option: decl.Name,
				Reason: "no translation rule registered",
			}
		}
	}
	return nil
}

func applyTransform(option string, value types.OptionValue, transform types.Transform) (types.VariableValue, error) {
	b, isBool := value.Bool()
	switch transform {
	case types.TransformIdentity, "":
		if isBool {
			return types.BoolVariable(b), nil
		}
		return types.StringVariable(string(value)), nil
	case types.TransformNegate:
		if !isBool {
			return types.VariableValue{}, &types.RecipeError{
				Kind:   types.FailureMissingDerivation,
				Option: option,
				Reason: fmt.Sprintf("negate transform on non-boolean value %q", value),
			}
		}
		return types.BoolVariable(!b), nil
	default:
		return types.VariableValue{}, &types.RecipeError{
			Kind:   types.FailureMissingDerivation,
			Option: option,
			Reason: fmt.Sprintf("unknown transform %q", transform),
		}
	}
}

func duplicateSource(variable string, first string, second string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("variable %s derived from both %s and %s", variable, first, second))
}
