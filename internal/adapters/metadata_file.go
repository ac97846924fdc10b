package adapters

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"gopkg.in/yaml.v3"

	"native-recipes/internal/ports"
	"native-recipes/internal/types"
)

// ManifestFileName is the machine-readable record of a published package.
const ManifestFileName = "package-metadata.yaml"

// MetadataFileAdapter renders discovery descriptors into Dir. Every file is
// a pure function of the metadata it is given.
type MetadataFileAdapter struct {
	Dir string
}

func NewMetadataFileAdapter(dir string) MetadataFileAdapter {
	return MetadataFileAdapter{Dir: dir}
}

func (a MetadataFileAdapter) WriteCMakeConfig(meta types.PackageMetadata) (string, error) {
	fileName := meta.Identity.CMakeFileName
	if fileName == "" {
		fileName = meta.Identity.Name
	}
	target := meta.Identity.CMakeTarget
	if target == "" {
		target = meta.Identity.Name + "::" + meta.Identity.Name
	}
	path, err := a.ensurePath(fileName + "-config.cmake")
	if err != nil {
		return "", err
	}
	root := filepath.ToSlash(meta.Root)
	var b strings.Builder
	fmt.Fprintf(&b, "# Generated by native-recipes for %s/%s (%s).\n", meta.Identity.Name, meta.Identity.Version, meta.Platform)
	fmt.Fprintf(&b, "set(_%s_ROOT \"%s\")\n\n", fileName, root)
	fmt.Fprintf(&b, "if(NOT TARGET %s)\n", target)
	fmt.Fprintf(&b, "  add_library(%s INTERFACE IMPORTED)\n", target)
	fmt.Fprintf(&b, "  set_target_properties(%s PROPERTIES\n", target)
	fmt.Fprintf(&b, "    INTERFACE_INCLUDE_DIRECTORIES \"%s\"\n", joinUnder("${_"+fileName+"_ROOT}", meta.IncludeDirs))
	fmt.Fprintf(&b, "    INTERFACE_LINK_DIRECTORIES \"%s\"\n", joinUnder("${_"+fileName+"_ROOT}", meta.LibDirs))
	fmt.Fprintf(&b, "    INTERFACE_LINK_LIBRARIES \"%s\")\n", strings.Join(meta.Libraries, ";"))
	b.WriteString("endif()\n\n")
	fmt.Fprintf(&b, "set(%s_FOUND TRUE)\n", fileName)
	fmt.Fprintf(&b, "set(%s_VERSION \"%s\")\n", fileName, meta.Identity.Version)
	fmt.Fprintf(&b, "unset(_%s_ROOT)\n", fileName)
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", writeError("cmake config", err)
	}
	return path, nil
}

func (a MetadataFileAdapter) WritePkgConfig(meta types.PackageMetadata) (string, error) {
	name := meta.Identity.PkgConfigName
	if name == "" {
		name = meta.Identity.Name
	}
	path, err := a.ensurePath(name + ".pc")
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "prefix=%s\n", filepath.ToSlash(meta.Root))
	var cflags, libs []string
	for i, dir := range meta.IncludeDirs {
		key := indexedKey("includedir", i)
		fmt.Fprintf(&b, "%s=${prefix}/%s\n", key, dir)
		cflags = append(cflags, "-I${"+key+"}")
	}
	for i, dir := range meta.LibDirs {
		key := indexedKey("libdir", i)
		fmt.Fprintf(&b, "%s=${prefix}/%s\n", key, dir)
		libs = append(libs, "-L${"+key+"}")
	}
	for _, lib := range meta.Libraries {
		libs = append(libs, "-l"+lib)
	}
	b.WriteString("\n")
	fmt.Fprintf(&b, "Name: %s\n", name)
	fmt.Fprintf(&b, "Description: %s native package\n", meta.Identity.Name)
	fmt.Fprintf(&b, "Version: %s\n", meta.Identity.Version)
	fmt.Fprintf(&b, "Libs: %s\n", strings.Join(libs, " "))
	fmt.Fprintf(&b, "Cflags: %s\n", strings.Join(cflags, " "))
	if err := os.WriteFile(path, []byte(b.String()), 0644); err != nil {
		return "", writeError("pkg-config file", err)
	}
	return path, nil
}

func (a MetadataFileAdapter) WriteManifest(meta types.PackageMetadata) (string, error) {
	path, err := a.ensurePath(ManifestFileName)
	if err != nil {
		return "", err
	}
	data, err := yaml.Marshal(meta)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to encode package metadata").
			WithCause(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", writeError("package manifest", err)
	}
	return path, nil
}

// ReadManifest loads a manifest previously written by WriteManifest.
func (a MetadataFileAdapter) ReadManifest() (types.PackageMetadata, error) {
	data, err := os.ReadFile(filepath.Join(a.Dir, ManifestFileName))
	if err != nil {
		return types.PackageMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("package manifest not found").
			WithCause(err)
	}
	var meta types.PackageMetadata
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return types.PackageMetadata{}, errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("failed to parse package manifest").
			WithCause(err)
	}
	return meta, nil
}

func (a MetadataFileAdapter) ensurePath(filename string) (string, error) {
	if a.Dir == "" {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg("metadata directory is empty")
	}
	if err := os.MkdirAll(a.Dir, 0755); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create metadata directory").
			WithCause(err)
	}
	return filepath.Join(a.Dir, filename), nil
}

func joinUnder(root string, dirs []string) string {
	parts := make([]string, 0, len(dirs))
	for _, dir := range dirs {
		parts = append(parts, root+"/"+dir)
	}
	return strings.Join(parts, ";")
}

func indexedKey(base string, i int) string {
	if i == 0 {
		return base
	}
	return fmt.Sprintf("%s%d", base, i+1)
}

func writeError(what string, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg("failed to write " + what).
		WithCause(err)
}

var _ ports.MetadataWriterPort = MetadataFileAdapter{}
