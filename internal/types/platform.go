package types

import (
	"fmt"
	"runtime"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
)

// Canonical operating system identifiers. These follow the naming used by
// native package recipes rather than runtime.GOOS.
const (
	OSWindows = "Windows"
	OSLinux   = "Linux"
	OSMacos   = "Macos"
	OSFreeBSD = "FreeBSD"
)

// Canonical architecture identifiers.
const (
	ArchX86    = "x86"
	ArchX86_64 = "x86_64"
	ArchArmv7  = "armv7"
	ArchArmv8  = "armv8"
)

var osAliases = map[string]string{
	"windows": OSWindows,
	"win":     OSWindows,
	"linux":   OSLinux,
	"macos":   OSMacos,
	"darwin":  OSMacos,
	"osx":     OSMacos,
	"freebsd": OSFreeBSD,
}

var archAliases = map[string]string{
	"x86":     ArchX86,
	"386":     ArchX86,
	"i386":    ArchX86,
	"i686":    ArchX86,
	"x86_64":  ArchX86_64,
	"amd64":   ArchX86_64,
	"x64":     ArchX86_64,
	"armv7":   ArchArmv7,
	"arm":     ArchArmv7,
	"armv8":   ArchArmv8,
	"arm64":   ArchArmv8,
	"aarch64": ArchArmv8,
}

// Platform is the target a recipe is resolved and built for. It is supplied
// once per run and never mutated.
type Platform struct {
	OS   string `yaml:"os" toml:"os"`
	Arch string `yaml:"arch" toml:"arch"`
}

func (p Platform) String() string {
	return p.OS + "-" + p.Arch
}

// IsWindows reports whether the platform targets Windows.
func (p Platform) IsWindows() bool {
	return p.OS == OSWindows
}

// ParsePlatform maps user-facing os/arch spellings onto canonical identifiers.
func ParsePlatform(osName string, arch string) (Platform, error) {
	canonicalOS, ok := osAliases[strings.ToLower(strings.TrimSpace(osName))]
	if !ok {
		return Platform{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported os: %q", osName))
	}
	canonicalArch, ok := archAliases[strings.ToLower(strings.TrimSpace(arch))]
	if !ok {
		return Platform{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("unsupported arch: %q", arch))
	}
	return Platform{OS: canonicalOS, Arch: canonicalArch}, nil
}

// HostPlatform returns the platform of the running process. Unknown GOOS or
// GOARCH values fall back to Linux/x86_64.
func HostPlatform() Platform {
	platform, err := ParsePlatform(runtime.GOOS, runtime.GOARCH)
	if err != nil {
		return Platform{OS: OSLinux, Arch: ArchX86_64}
	}
	return platform
}
