package core

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	pep440 "github.com/aquasecurity/go-pep440-version"

	"native-recipes/internal/types"
)

// EngineVersion is the recipe format version implemented by this engine.
const EngineVersion = "2.1.0"

// CheckEngine verifies that the recipe's engine requirement admits
// engineVersion. A recipe without a requirement is always accepted.
func CheckEngine(recipe types.Recipe, engineVersion string) error {
	requirement := strings.TrimSpace(recipe.RequiresEngine)
	if requirement == "" {
		return nil
	}
	specifiers, err := pep440.NewSpecifiers(requirement)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("recipe %s has an invalid engine requirement %q", recipe.Ref(), requirement)).
			WithCause(err)
	}
	version, err := pep440.Parse(engineVersion)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("invalid engine version %q", engineVersion)).
			WithCause(err)
	}
	if !specifiers.Check(version) {
		return errbuilder.New().
			WithCode(errbuilder.CodeFailedPrecondition).
			WithMsg(fmt.Sprintf("recipe %s requires engine %s, running %s", recipe.Ref(), requirement, engineVersion))
	}
	return nil
}
