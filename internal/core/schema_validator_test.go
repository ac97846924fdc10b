package core

import (
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/stretchr/testify/require"

	"native-recipes/internal/types"
)

func TestValidateSchema(t *testing.T) {
	tests := []struct {
		name    string
		schema  []types.OptionDeclaration
		wantErr bool
	}{
		{name: "valid", schema: sharedEtwSchema()},
		{name: "empty name", schema: []types.OptionDeclaration{{Domain: types.BoolDomain, Default: types.OptionFalse}}, wantErr: true},
		{name: "duplicate", schema: append(sharedEtwSchema(), sharedEtwSchema()[0]), wantErr: true},
		{name: "empty domain", schema: []types.OptionDeclaration{{Name: "x", Default: "a"}}, wantErr: true},
		{name: "repeated value", schema: []types.OptionDeclaration{{Name: "x", Domain: []types.OptionValue{"a", "a"}, Default: "a"}}, wantErr: true},
		{name: "default outside domain", schema: []types.OptionDeclaration{{Name: "x", Domain: []types.OptionValue{"a", "b"}, Default: "c"}}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSchema(t.Context(), tt.schema)
			if !tt.wantErr {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
		})
	}
}

func TestValidateRecipeExpectations(t *testing.T) {
	recipe := sharedEtwRecipe()
	require.NoError(t, ValidateRecipe(t.Context(), recipe))

	recipe.Expectations = []types.ArtifactExpectation{{Option: "lto", Values: types.BoolDomain}}
	require.Error(t, ValidateRecipe(t.Context(), recipe))

	recipe.Expectations = []types.ArtifactExpectation{{Option: "shared", Values: []types.OptionValue{"maybe"}}}
	require.Error(t, ValidateRecipe(t.Context(), recipe))
}

func TestCheckEngine(t *testing.T) {
	recipe := sharedEtwRecipe()
	recipe.RequiresEngine = ">=2.0"
	require.NoError(t, CheckEngine(recipe, EngineVersion))
	require.NoError(t, CheckEngine(types.Recipe{Name: "any", Version: "1"}, EngineVersion))

	err := CheckEngine(recipe, "1.9.0")
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeFailedPrecondition, errbuilder.CodeOf(err))

	recipe.RequiresEngine = "not a specifier"
	err = CheckEngine(recipe, EngineVersion)
	require.Error(t, err)
	require.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
}
