package ast

import (
	"fmt"
	"path"
	"strings"
)

// PackageSpec identifies a versioned package: @namespace/name:version.
type PackageSpec struct {
	Namespace string
	Name      string
	Version   string
}

// IsZero reports whether the spec is empty, meaning "no package".
func (p PackageSpec) IsZero() bool {
	return p == PackageSpec{}
}

func (p PackageSpec) String() string {
	return fmt.Sprintf("@%s/%s:%s", p.Namespace, p.Name, p.Version)
}

// FileID identifies a source file, optionally inside a package. Paths are
// virtual, rooted at "/" of the project or the package.
type FileID struct {
	Package PackageSpec
	Path    string
}

// NewFileID returns a file id for a path in the project root.
func NewFileID(p string) FileID {
	return FileID{Path: cleanVirtual(p)}
}

// Join resolves a path relative to the directory of this file. Absolute
// paths resolve against the root of the file's package or project.
func (id FileID) Join(p string) FileID {
	if strings.HasPrefix(p, "/") {
		return FileID{Package: id.Package, Path: cleanVirtual(p)}
	}
	return FileID{Package: id.Package, Path: cleanVirtual(path.Join(path.Dir(id.Path), p))}
}

// Stem returns the file name without directory and extension.
func (id FileID) Stem() string {
	base := path.Base(id.Path)
	return strings.TrimSuffix(base, path.Ext(base))
}

func (id FileID) String() string {
	if id.Package.IsZero() {
		return id.Path
	}
	return id.Package.String() + id.Path
}

func cleanVirtual(p string) string {
	return path.Clean("/" + p)
}

// Span is a byte range inside a file. The zero Span is detached and
// points nowhere.
type Span struct {
	File  FileID
	Start int
	End   int
}

// Detached returns a span with no location.
func Detached() Span {
	return Span{}
}

// IsDetached reports whether the span points nowhere.
func (s Span) IsDetached() bool {
	return s == Span{}
}

// Join returns the smallest span covering s and other. Detached spans are
// ignored.
func (s Span) Join(other Span) Span {
	if s.IsDetached() {
		return other
	}
	if other.IsDetached() || other.File != s.File {
		return s
	}
	return Span{File: s.File, Start: min(s.Start, other.Start), End: max(s.End, other.End)}
}

func (s Span) String() string {
	if s.IsDetached() {
		return "<detached>"
	}
	return fmt.Sprintf("%s[%d..%d]", s.File, s.Start, s.End)
}
