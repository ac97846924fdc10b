package policies

import (
	"slices"
	"strings"

	"native-recipes/internal/types"
)

// Applies evaluates a declarative platform rule. Every option and layout
// rule is checked through this one predicate.
func Applies(rule types.PlatformRule, platform types.Platform) bool {
	if len(rule.OS) > 0 && !containsFold(rule.OS, platform.OS) {
		return false
	}
	if containsFold(rule.ExceptOS, platform.OS) {
		return false
	}
	if len(rule.Arch) > 0 && !containsFold(rule.Arch, platform.Arch) {
		return false
	}
	return true
}

// OnlyOn builds a rule limited to the given operating systems.
func OnlyOn(osNames ...string) types.PlatformRule {
	return types.PlatformRule{OS: osNames}
}

// ExceptOn builds a rule excluding the given operating systems.
func ExceptOn(osNames ...string) types.PlatformRule {
	return types.PlatformRule{ExceptOS: osNames}
}

// Everywhere is the unrestricted rule.
func Everywhere() types.PlatformRule {
	return types.PlatformRule{}
}

func containsFold(values []string, target string) bool {
	return slices.ContainsFunc(values, func(value string) bool {
		return strings.EqualFold(value, target)
	})
}
