package adapters

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"native-recipes/internal/ports"
	"native-recipes/internal/shared"
	"native-recipes/internal/types"
)

// ToolchainFileName is written into the build directory and passed to CMake
// as CMAKE_TOOLCHAIN_FILE.
const ToolchainFileName = "recipe_toolchain.cmake"

// CMakeToolchainAdapter drives cmake configure, build and install.
type CMakeToolchainAdapter struct {
	Binary string
}

func NewCMakeToolchainAdapter() CMakeToolchainAdapter {
	return CMakeToolchainAdapter{Binary: "cmake"}
}

func (a CMakeToolchainAdapter) Build(ctx context.Context, req ports.ToolchainRequest) error {
	for name, value := range map[string]string{
		"source directory":  req.SourceDir,
		"build directory":   req.BuildDir,
		"package directory": req.PackageDir,
	} {
		if strings.TrimSpace(value) == "" {
			return errbuilder.New().
				WithCode(errbuilder.CodeInvalidArgument).
				WithMsg(name + " is empty")
		}
	}
	if err := os.MkdirAll(req.BuildDir, 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create build directory").
			WithCause(err)
	}
	toolchainFile, err := WriteToolchainFile(req.Variables, req.BuildDir)
	if err != nil {
		return err
	}

	configure := []string{
		"-S", req.SourceDir,
		"-B", req.BuildDir,
		"-DCMAKE_TOOLCHAIN_FILE=" + filepath.ToSlash(toolchainFile),
		"-DCMAKE_INSTALL_PREFIX=" + filepath.ToSlash(req.PackageDir),
	}
	if req.Generator != "" {
		configure = append(configure, "-G", req.Generator)
	}
	if req.BuildType != "" {
		configure = append(configure, "-DCMAKE_BUILD_TYPE="+req.BuildType)
	}
	if err := a.run(ctx, "configure", configure); err != nil {
		return err
	}

	build := []string{"--build", req.BuildDir}
	if req.BuildType != "" {
		build = append(build, "--config", req.BuildType)
	}
	if err := a.run(ctx, "build", build); err != nil {
		return err
	}

	install := []string{"--install", req.BuildDir, "--prefix", req.PackageDir}
	if req.BuildType != "" {
		install = append(install, "--config", req.BuildType)
	}
	return a.run(ctx, "install", install)
}

func (a CMakeToolchainAdapter) run(ctx context.Context, stage string, args []string) error {
	binary := a.Binary
	if binary == "" {
		binary = "cmake"
	}
	log.Ctx(ctx).Debug().Str("stage", stage).Strs("args", args).Msg("running cmake")
	cmd := exec.CommandContext(ctx, binary, args...)
	output, err := cmd.CombinedOutput()
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg(fmt.Sprintf("cmake %s failed", stage)).
			WithCause(shared.CommandError(output, err))
	}
	return nil
}

// WriteToolchainFile renders vars as cache entries, sorted by name so the
// file is byte-identical for identical input.
func WriteToolchainFile(vars types.ToolchainVariableMap, dir string) (string, error) {
	var b strings.Builder
	b.WriteString("# Generated by native-recipes. Do not edit.\n")
	for _, name := range vars.Names() {
		value, typeName := cmakeValue(vars[name])
		if vars[name].Kind != types.VariableKindBool {
			value = quoteCMake(value)
		}
		fmt.Fprintf(&b, "set(%s %s CACHE %s \"\" FORCE)\n", name, value, typeName)
	}
	path := filepath.Join(dir, ToolchainFileName)
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write toolchain file").
			WithCause(err)
	}
	return path, nil
}

// DefineArgs renders vars as sorted -DNAME:TYPE=VALUE arguments.
func DefineArgs(vars types.ToolchainVariableMap) []string {
	args := make([]string, 0, len(vars))
	for _, name := range vars.Names() {
		value, typeName := cmakeValue(vars[name])
		args = append(args, "-D"+name+":"+typeName+"="+value)
	}
	return args
}

func cmakeValue(v types.VariableValue) (string, string) {
	switch v.Kind {
	case types.VariableKindBool:
		if v.Bool {
			return "ON", "BOOL"
		}
		return "OFF", "BOOL"
	case types.VariableKindPath:
		return filepath.ToSlash(v.Text), "PATH"
	default:
		return v.Text, "STRING"
	}
}

func quoteCMake(s string) string {
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + replacer.Replace(s) + `"`
}

var _ ports.ToolchainPort = CMakeToolchainAdapter{}
