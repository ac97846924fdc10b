package types

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// FailureKind classifies the failures a recipe run can abort with.
type FailureKind string

const (
	FailureInvalidOption     FailureKind = "InvalidOption"
	FailureMissingDerivation FailureKind = "MissingDerivation"
	FailureLayoutMismatch    FailureKind = "LayoutMismatch"
	FailureNameCollision     FailureKind = "NameCollision"
	FailureEmptyPackage      FailureKind = "EmptyPackage"
)

// Reasons attached to InvalidOption failures.
const (
	ReasonOutOfDomain  = "out-of-domain"
	ReasonInapplicable = "inapplicable"
	ReasonUnknown      = "unknown"
)

// Code maps the failure kind onto an errbuilder code.
func (k FailureKind) Code() errbuilder.ErrCode {
	switch k {
	case FailureInvalidOption:
		return errbuilder.CodeInvalidArgument
	case FailureMissingDerivation:
		return errbuilder.CodeInternal
	case FailureLayoutMismatch:
		return errbuilder.CodeFailedPrecondition
	case FailureNameCollision:
		return errbuilder.CodeAlreadyExists
	case FailureEmptyPackage:
		return errbuilder.CodeFailedPrecondition
	default:
		return errbuilder.CodeInternal
	}
}

// RecipeError is the structured error for every failure in the taxonomy.
// Only the fields relevant to Kind are set.
type RecipeError struct {
	Kind     FailureKind
	Option   string
	Reason   string
	Expected string
	Found    string
	Paths    []string
	Err      error
}

func (e *RecipeError) Error() string {
	var b strings.Builder
	b.WriteString(string(e.Kind))
	if e.Option != "" {
		fmt.Fprintf(&b, ": option %q", e.Option)
	}
	if e.Reason != "" {
		fmt.Fprintf(&b, ": %s", e.Reason)
	}
	if e.Expected != "" {
		fmt.Fprintf(&b, ": expected %s", e.Expected)
	}
	if e.Found != "" {
		fmt.Fprintf(&b, ", found %s", e.Found)
	}
	if len(e.Paths) > 0 {
		fmt.Fprintf(&b, ": %s", strings.Join(e.Paths, ", "))
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *RecipeError) Unwrap() error {
	return e.Err
}
