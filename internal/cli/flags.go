package cli

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"native-recipes/internal/app"
)

type targetOptions struct {
	Recipe  string
	Profile string
	OS      string
	Arch    string
	Options []string
}

func addTargetFlags(cmd *cobra.Command, opts *targetOptions, withOverrides bool) {
	cmd.Flags().StringVar(&opts.Recipe, "recipe", "", "Recipe reference (name or name/version)")
	cmd.Flags().StringVar(&opts.Profile, "profile", "", "Build profile (.yaml, .yml or .toml)")
	cmd.Flags().StringVar(&opts.OS, "os", "", "Target operating system (default: profile or host)")
	cmd.Flags().StringVar(&opts.Arch, "arch", "", "Target architecture (default: profile or host)")
	_ = viper.BindPFlag("recipe", cmd.Flags().Lookup("recipe"))
	_ = viper.BindPFlag("profile", cmd.Flags().Lookup("profile"))
	_ = viper.BindPFlag("os", cmd.Flags().Lookup("os"))
	_ = viper.BindPFlag("arch", cmd.Flags().Lookup("arch"))
	if withOverrides {
		cmd.Flags().StringArrayVarP(&opts.Options, "option", "o", nil, "Option override name=value (repeatable)")
		_ = viper.BindPFlag("options", cmd.Flags().Lookup("option"))
	}
}

func targetFromFlags(cmd *cobra.Command, opts targetOptions) (app.Target, error) {
	overrides, err := parseOptionOverrides(resolveStrings(cmd, opts.Options, "options", "option"))
	if err != nil {
		return app.Target{}, err
	}
	return app.Target{
		Recipe:      resolveString(cmd, opts.Recipe, "recipe", "recipe"),
		ProfilePath: resolveString(cmd, opts.Profile, "profile", "profile"),
		OS:          resolveString(cmd, opts.OS, "os", "os"),
		Arch:        resolveString(cmd, opts.Arch, "arch", "arch"),
		Options:     overrides,
	}, nil
}

// parseOptionOverrides turns name=value pairs into a map. A repeated name
// keeps its last value.
func parseOptionOverrides(values []string) (map[string]string, error) {
	overrides := map[string]string{}
	for _, value := range values {
		name, raw, ok := strings.Cut(value, "=")
		name = strings.TrimSpace(name)
		if !ok || name == "" {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(fmt.Sprintf("invalid option override %q, expected name=value", value))
		}
		overrides[name] = strings.TrimSpace(raw)
	}
	return overrides, nil
}

func resolveString(cmd *cobra.Command, value string, key string, flagName string) string {
	if cmd == nil {
		if value != "" {
			return value
		}
		return viper.GetString(key)
	}
	if flagChanged(cmd, flagName) {
		return value
	}
	return viper.GetString(key)
}

func resolveStrings(cmd *cobra.Command, values []string, key string, flagName string) []string {
	if cmd == nil {
		if len(values) > 0 {
			return values
		}
		return viper.GetStringSlice(key)
	}
	if flagChanged(cmd, flagName) {
		return values
	}
	return viper.GetStringSlice(key)
}

func flagChanged(cmd *cobra.Command, name string) bool {
	if cmd == nil || strings.TrimSpace(name) == "" {
		return false
	}
	if flag := cmd.Flags().Lookup(name); flag != nil {
		return flag.Changed
	}
	if flag := cmd.PersistentFlags().Lookup(name); flag != nil {
		return flag.Changed
	}
	return false
}
