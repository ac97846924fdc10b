package types

// Profile is a caller-supplied build profile. It is read from YAML or TOML
// and carries the target platform plus option overrides.
type Profile struct {
	Platform  Platform          `yaml:"platform" toml:"platform"`
	Options   map[string]string `yaml:"options" toml:"options"`
	BuildType string            `yaml:"build_type,omitempty" toml:"build_type"`
	Generator string            `yaml:"generator,omitempty" toml:"generator"`
}
