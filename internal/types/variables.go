package types

import (
	"sort"
	"strconv"
)

type VariableKind string

const (
	VariableKindBool   VariableKind = "bool"
	VariableKindString VariableKind = "string"
	VariableKindPath   VariableKind = "path"
)

// VariableValue is a typed toolchain configuration value.
type VariableValue struct {
	Kind VariableKind
	Bool bool
	Text string
}

func BoolVariable(b bool) VariableValue {
	return VariableValue{Kind: VariableKindBool, Bool: b}
}

func StringVariable(s string) VariableValue {
	return VariableValue{Kind: VariableKindString, Text: s}
}

func PathVariable(p string) VariableValue {
	return VariableValue{Kind: VariableKindPath, Text: p}
}

func (v VariableValue) String() string {
	if v.Kind == VariableKindBool {
		return strconv.FormatBool(v.Bool)
	}
	return v.Text
}

// ToolchainVariableMap is the complete configuration handed to the native
// toolchain.
type ToolchainVariableMap map[string]VariableValue

// Names returns the variable names in lexicographic order.
func (m ToolchainVariableMap) Names() []string {
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Transform converts a resolved option value into a variable value.
type Transform string

const (
	TransformIdentity Transform = "identity"
	TransformNegate   Transform = "negate"
)

// VariableDerivation names one variable produced from an option.
type VariableDerivation struct {
	Variable  string
	Transform Transform
}

// VariableRule is one row of a recipe's translation table.
type VariableRule struct {
	Option      string
	Derivations []VariableDerivation
}

// FixedVariable is a toolchain policy constant, present regardless of the
// options in effect.
type FixedVariable struct {
	Name  string
	Value VariableValue
}
