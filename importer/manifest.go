package importer

import (
	"bytes"
	"errors"
	"fmt"
	"path"

	"github.com/BurntSushi/toml"
	"github.com/quillscript/quill/ast"
	"gopkg.in/yaml.v3"
)

// Manifest file names, in lookup order.
const (
	ManifestTOML = "package.toml"
	ManifestYAML = "package.yaml"
)

// Manifest is a parsed package manifest.
type Manifest struct {
	Package PackageInfo `toml:"package" yaml:"package"`
}

// PackageInfo is the `package` table of a manifest. Fields that are not
// relevant to evaluation are ignored.
type PackageInfo struct {
	Name        string   `toml:"name" yaml:"name"`
	Version     string   `toml:"version" yaml:"version"`
	Entrypoint  string   `toml:"entrypoint" yaml:"entrypoint"`
	Compiler    string   `toml:"compiler" yaml:"compiler"`
	Authors     []string `toml:"authors" yaml:"authors"`
	Description string   `toml:"description" yaml:"description"`
}

// ParseManifest decodes a manifest. The format is chosen by the file
// extension of name.
func ParseManifest(name string, data []byte) (*Manifest, error) {
	var m Manifest
	switch path.Ext(name) {
	case ".toml":
		if _, err := toml.NewDecoder(bytes.NewReader(data)).Decode(&m); err != nil {
			return nil, fmt.Errorf("package manifest is malformed: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &m); err != nil {
			return nil, fmt.Errorf("package manifest is malformed: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported package manifest format: %s", name)
	}
	return &m, nil
}

// Validate checks that the manifest describes spec and that the running
// compiler is new enough.
func (m *Manifest) Validate(spec ast.PackageSpec, current string) error {
	info := m.Package
	if info.Name != spec.Name {
		return fmt.Errorf("package manifest contains mismatched name `%s`", info.Name)
	}
	if info.Version != spec.Version {
		return fmt.Errorf("package manifest contains mismatched version %s", info.Version)
	}
	if info.Entrypoint == "" {
		return fmt.Errorf("package manifest is missing an entrypoint")
	}
	if info.Compiler != "" {
		if err := ValidateVersion(info.Compiler); err != nil {
			return fmt.Errorf("package manifest is malformed: %w", err)
		}
		if CompareVersions(current, info.Compiler) < 0 {
			return fmt.Errorf("package requires quill %s or newer (current version is %s)",
				info.Compiler, current)
		}
	}
	return nil
}

// LoadManifest reads and validates the manifest of a package.
func LoadManifest(world World, spec ast.PackageSpec, current string) (*Manifest, error) {
	for _, name := range []string{ManifestTOML, ManifestYAML} {
		data, err := world.File(ast.FileID{Package: spec, Path: "/" + name})
		if errors.Is(err, ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		m, err := ParseManifest(name, data)
		if err != nil {
			return nil, err
		}
		if err := m.Validate(spec, current); err != nil {
			return nil, err
		}
		return m, nil
	}
	return nil, fmt.Errorf("package %s has no manifest", spec)
}
