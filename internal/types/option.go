package types

import (
	"crypto/sha256"
	"encoding/hex"
	"slices"
	"sort"
	"strconv"
	"strings"
)

// OptionValue is one legal value of an option domain. Boolean domains use
// the literals "true" and "false".
type OptionValue string

const (
	OptionTrue  OptionValue = "true"
	OptionFalse OptionValue = "false"
)

// BoolDomain is the domain shared by on/off options.
var BoolDomain = []OptionValue{OptionFalse, OptionTrue}

// BoolValue converts b to its option literal.
func BoolValue(b bool) OptionValue {
	if b {
		return OptionTrue
	}
	return OptionFalse
}

// Bool returns the boolean meaning of v and whether v is a boolean literal.
func (v OptionValue) Bool() (bool, bool) {
	switch v {
	case OptionTrue:
		return true, true
	case OptionFalse:
		return false, true
	default:
		return false, false
	}
}

// PlatformRule declares on which platforms something applies. Empty lists
// place no restriction, so the zero value applies everywhere.
type PlatformRule struct {
	// OS lists the operating systems the rule is limited to.
	OS []string
	// ExceptOS lists operating systems excluded even if OS matches.
	ExceptOS []string
	// Arch lists the architectures the rule is limited to.
	Arch []string
}

// OptionDeclaration is a single entry of a recipe's option schema.
type OptionDeclaration struct {
	Name        string
	Description string
	Domain      []OptionValue
	Default     OptionValue
	// AppliesTo keeps the platform rule next to the option it governs.
	AppliesTo PlatformRule
}

// IsBoolDomain reports whether the domain is exactly {false, true}.
func (d OptionDeclaration) IsBoolDomain() bool {
	if len(d.Domain) != 2 {
		return false
	}
	return slices.Contains(d.Domain, OptionTrue) && slices.Contains(d.Domain, OptionFalse)
}

// Allows reports whether value is in the option's domain.
func (d OptionDeclaration) Allows(value OptionValue) bool {
	return slices.Contains(d.Domain, value)
}

// NormalizeValue converts a caller-supplied string onto the declaration's
// spelling. Boolean domains accept any strconv.ParseBool literal; other
// domains are matched after trimming whitespace.
func (d OptionDeclaration) NormalizeValue(raw string) OptionValue {
	trimmed := strings.TrimSpace(raw)
	if d.IsBoolDomain() {
		switch strings.ToLower(trimmed) {
		case "yes", "on":
			return OptionTrue
		case "no", "off":
			return OptionFalse
		}
		if parsed, err := strconv.ParseBool(trimmed); err == nil {
			return BoolValue(parsed)
		}
	}
	return OptionValue(trimmed)
}

// ResolvedOptionSet holds the concrete option values in effect for one build.
// Options that are not offered on the target platform are absent.
type ResolvedOptionSet struct {
	values map[string]OptionValue
}

// NewResolvedOptionSet copies values into a new set.
func NewResolvedOptionSet(values map[string]OptionValue) ResolvedOptionSet {
	copied := make(map[string]OptionValue, len(values))
	for name, value := range values {
		copied[name] = value
	}
	return ResolvedOptionSet{values: copied}
}

func (s ResolvedOptionSet) Get(name string) (OptionValue, bool) {
	value, ok := s.values[name]
	return value, ok
}

func (s ResolvedOptionSet) Has(name string) bool {
	_, ok := s.values[name]
	return ok
}

func (s ResolvedOptionSet) Len() int {
	return len(s.values)
}

// Names returns the option names in lexicographic order.
func (s ResolvedOptionSet) Names() []string {
	names := make([]string, 0, len(s.values))
	for name := range s.values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Values returns a copy of the underlying mapping.
func (s ResolvedOptionSet) Values() map[string]OptionValue {
	out := make(map[string]OptionValue, len(s.values))
	for name, value := range s.values {
		out[name] = value
	}
	return out
}

// String renders the set canonically as "name=value" pairs sorted by name.
func (s ResolvedOptionSet) String() string {
	pairs := make([]string, 0, len(s.values))
	for _, name := range s.Names() {
		pairs = append(pairs, name+"="+string(s.values[name]))
	}
	return strings.Join(pairs, ",")
}

// PackageID identifies one build configuration: the same platform and
// options always produce the same id.
func (s ResolvedOptionSet) PackageID(platform Platform) string {
	sum := sha256.Sum256([]byte(platform.String() + "|" + s.String()))
	return hex.EncodeToString(sum[:])[:12]
}
