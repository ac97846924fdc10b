package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"native-recipes/internal/ports"
	"native-recipes/internal/types"
)

type ProfileFileAdapter struct{}

func NewProfileFileAdapter() ProfileFileAdapter {
	return ProfileFileAdapter{}
}

// profileDocument mirrors types.Profile with loosely typed option values so
// that `shared: true` and `shared = true` both decode.
type profileDocument struct {
	Platform  types.Platform `yaml:"platform" toml:"platform"`
	Options   map[string]any `yaml:"options" toml:"options"`
	BuildType string         `yaml:"build_type" toml:"build_type"`
	Generator string         `yaml:"generator" toml:"generator"`
}

// LoadProfile reads a YAML (.yaml, .yml) or TOML (.toml) build profile.
func (a ProfileFileAdapter) LoadProfile(path string) (types.Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Profile{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("profile file not found").
			WithCause(err)
	}
	var doc profileDocument
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return types.Profile{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to parse profile yaml").
				WithCause(err)
		}
	case ".toml":
		if err := toml.Unmarshal(data, &doc); err != nil {
			return types.Profile{}, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg("failed to parse profile toml").
				WithCause(err)
		}
	default:
		return types.Profile{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported profile format: %s", filepath.Ext(path)))
	}

	profile := types.Profile{
		Options:   map[string]string{},
		BuildType: strings.TrimSpace(doc.BuildType),
		Generator: strings.TrimSpace(doc.Generator),
	}
	for name, value := range doc.Options {
		profile.Options[strings.TrimSpace(name)] = fmt.Sprint(value)
	}
	if doc.Platform.OS != "" || doc.Platform.Arch != "" {
		platform, err := types.ParsePlatform(doc.Platform.OS, doc.Platform.Arch)
		if err != nil {
			return types.Profile{}, err
		}
		profile.Platform = platform
	}
	return profile, nil
}

var _ ports.ProfilePort = ProfileFileAdapter{}
