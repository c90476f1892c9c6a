package importer

import (
	"fmt"
	"strings"

	"github.com/quillscript/quill/ast"
	"github.com/quillscript/quill/object"
	"golang.org/x/mod/semver"
)

// ParsePackageSpec parses `@namespace/name:version`.
func ParsePackageSpec(s string) (ast.PackageSpec, error) {
	rest, ok := strings.CutPrefix(s, "@")
	if !ok {
		return ast.PackageSpec{}, fmt.Errorf("package specification must start with '@'")
	}
	namespace, rest, _ := strings.Cut(rest, "/")
	if namespace == "" {
		return ast.PackageSpec{}, fmt.Errorf("package specification is missing namespace")
	}
	if !object.IsIdent(namespace) {
		return ast.PackageSpec{}, fmt.Errorf("`%s` is not a valid package namespace", namespace)
	}
	name, version, _ := strings.Cut(rest, ":")
	if name == "" {
		return ast.PackageSpec{}, fmt.Errorf("package specification is missing name")
	}
	if !object.IsIdent(name) {
		return ast.PackageSpec{}, fmt.Errorf("`%s` is not a valid package name", name)
	}
	if version == "" {
		return ast.PackageSpec{}, fmt.Errorf("package specification is missing version")
	}
	if err := ValidateVersion(version); err != nil {
		return ast.PackageSpec{}, err
	}
	return ast.PackageSpec{Namespace: namespace, Name: name, Version: version}, nil
}

// ValidateVersion checks that v is a full major.minor.patch version.
func ValidateVersion(v string) error {
	sv := "v" + v
	if !semver.IsValid(sv) {
		return fmt.Errorf("`%s` is not a valid package version", v)
	}
	if semver.Prerelease(sv) != "" || semver.Build(sv) != "" {
		return fmt.Errorf("version `%s` must not have a pre-release or build suffix", v)
	}
	if semver.Canonical(sv) != sv || strings.Count(v, ".") != 2 {
		return fmt.Errorf("`%s` is not a valid package version", v)
	}
	return nil
}

// CompareVersions compares two versions that passed ValidateVersion.
func CompareVersions(a, b string) int {
	return semver.Compare("v"+a, "v"+b)
}
