package cli

import (
	"bytes"
	"testing"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"native-recipes/internal/types"
)

// ---------- Command tree tests ----------

func TestRootCommandHasSubcommands(t *testing.T) {
	root := newRootCommand()
	names := make([]string, 0, len(root.Commands()))
	for _, cmd := range root.Commands() {
		names = append(names, cmd.Name())
	}
	expected := []string{"recipes", "options", "resolve", "build", "normalize", "publish"}
	for _, name := range expected {
		assert.Contains(t, names, name, "missing subcommand: %s", name)
	}
}

func TestRootCommandVersion(t *testing.T) {
	root := newRootCommand()
	assert.Equal(t, "dev", root.Version)
}

func TestBuildCommandFlags(t *testing.T) {
	cmd := newBuildCommand()
	flags := []string{
		"recipe", "profile", "os", "arch", "option",
		"source", "output", "metadata-dir", "build-type", "generator",
	}
	for _, name := range flags {
		flag := cmd.Flags().Lookup(name)
		assert.NotNil(t, flag, "missing flag: %s", name)
	}
	assert.NotNil(t, cmd.Flags().ShorthandLookup("o"))
}

func TestPostBuildCommandFlags(t *testing.T) {
	normalize := newNormalizeCommand()
	assert.NotNil(t, normalize.Flags().Lookup("package-dir"))
	assert.Nil(t, normalize.Flags().Lookup("option"))

	publish := newPublishCommand()
	for _, name := range []string{"package-dir", "metadata-dir", "option"} {
		assert.NotNil(t, publish.Flags().Lookup(name), "missing flag: %s", name)
	}
}

// ---------- Command execution tests ----------

func runRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(t.Context())
	return out.String(), err
}

func TestResolveCommandCMakeFormat(t *testing.T) {
	out, err := runRoot(t, "resolve", "--recipe", "mimalloc", "--os", "Linux", "--arch", "x86_64", "-o", "shared=true", "--format", "cmake")
	require.NoError(t, err)
	assert.Contains(t, out, "-DMI_BUILD_SHARED:BOOL=ON\n")
	assert.Contains(t, out, "-DMI_BUILD_STATIC:BOOL=OFF\n")
	assert.NotContains(t, out, "MI_TRACK_ETW")
}

func TestResolveCommandRejectsInapplicableOption(t *testing.T) {
	_, err := runRoot(t, "resolve", "--recipe", "mimalloc", "--os", "Linux", "--arch", "x86_64", "-o", "etw=true")
	require.Error(t, err)
	assert.Equal(t, 2, exitCodeForError(err))
}

func TestRecipesCommand(t *testing.T) {
	out, err := runRoot(t, "recipes")
	require.NoError(t, err)
	assert.Contains(t, out, "mimalloc/2.1.2")
}

// ---------- Helper function tests ----------

func TestParseOptionOverrides(t *testing.T) {
	got, err := parseOptionOverrides([]string{"shared=True", "secure = false", "shared=false"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"shared": "false", "secure": "false"}, got)

	for _, bad := range []string{"shared", "=true"} {
		_, err := parseOptionOverrides([]string{bad})
		require.Error(t, err, bad)
		assert.Equal(t, errbuilder.CodeInvalidArgument, errbuilder.CodeOf(err))
	}
}

func TestResolveString(t *testing.T) {
	tests := []struct {
		name     string
		cmd      *cobra.Command
		value    string
		expected string
	}{
		{
			name:     "nil cmd with value returns value",
			cmd:      nil,
			value:    "explicit",
			expected: "explicit",
		},
		{
			name:     "nil cmd empty value returns empty",
			cmd:      nil,
			value:    "",
			expected: "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolveString(tt.cmd, tt.value, "test_key", "test-flag")
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestResolveStrings(t *testing.T) {
	got := resolveStrings(nil, []string{"a", "b"}, "test_key", "test-flag")
	assert.Equal(t, []string{"a", "b"}, got)
	assert.Empty(t, resolveStrings(nil, nil, "test_key", "test-flag"))
}

func TestFlagChanged(t *testing.T) {
	assert.False(t, flagChanged(nil, "anything"), "nil cmd should return false")
	assert.False(t, flagChanged(nil, ""), "nil cmd with empty name")

	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().String("myflag", "", "test flag")
	assert.False(t, flagChanged(cmd, "myflag"), "unchanged flag")
	assert.False(t, flagChanged(cmd, "nonexistent"), "nonexistent flag")

	require.NoError(t, cmd.Flags().Set("myflag", "val"))
	assert.True(t, flagChanged(cmd, "myflag"))
}

// ---------- Exit code tests ----------

func TestExitCodeForError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{
			name:     "invalid option",
			err:      &types.RecipeError{Kind: types.FailureInvalidOption, Option: "etw", Reason: types.ReasonInapplicable},
			expected: 2,
		},
		{
			name:     "layout mismatch",
			err:      &types.RecipeError{Kind: types.FailureLayoutMismatch},
			expected: 3,
		},
		{
			name:     "name collision",
			err:      &types.RecipeError{Kind: types.FailureNameCollision},
			expected: 3,
		},
		{
			name:     "empty package",
			err:      &types.RecipeError{Kind: types.FailureEmptyPackage},
			expected: 4,
		},
		{
			name:     "missing derivation",
			err:      &types.RecipeError{Kind: types.FailureMissingDerivation},
			expected: 5,
		},
		{
			name: "invalid argument",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("bad input"),
			expected: 2,
		},
		{
			name: "failed precondition",
			err: errbuilder.New().
				WithCode(errbuilder.CodeFailedPrecondition).
				WithMsg("engine too old"),
			expected: 4,
		},
		{
			name: "not found",
			err: errbuilder.New().
				WithCode(errbuilder.CodeNotFound).
				WithMsg("recipe not found"),
			expected: 5,
		},
		{
			name:     "unknown error",
			err:      assert.AnError,
			expected: 1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := exitCodeForError(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected string
	}{
		{
			name: "errbuilder with msg",
			err: errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("something broke"),
			expected: "something broke",
		},
		{
			name:     "recipe error",
			err:      &types.RecipeError{Kind: types.FailureNameCollision, Paths: []string{"a/x.lib", "b/x.lib"}},
			expected: "NameCollision: a/x.lib, b/x.lib",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := errorMessage(tt.err)
			assert.Equal(t, tt.expected, got)
		})
	}
}
