// Package importer resolves import and include paths to evaluated modules.
//
// Files are looked up through a World. Package imports
// (`@namespace/name:version`) read and validate the package manifest
// before the entrypoint is loaded. The chain of files currently being
// evaluated travels in the context as a Route, which is how cyclic imports
// are detected.
package importer

import (
	"errors"
	"fmt"
	"sync"

	"github.com/quillscript/quill/ast"
)

// ErrNotFound is returned by a World when a file does not exist.
var ErrNotFound = errors.New("file not found")

// World gives access to the files of a project and its packages.
type World interface {
	// Source returns a parsed source file.
	Source(id ast.FileID) (*ast.Source, error)

	// File returns the raw bytes of a file.
	File(id ast.FileID) ([]byte, error)
}

// MemoryWorld is a World backed by maps. It is safe for concurrent use.
type MemoryWorld struct {
	mu      sync.RWMutex
	sources map[ast.FileID]*ast.Source
	files   map[ast.FileID][]byte
}

// NewMemoryWorld creates an empty world.
func NewMemoryWorld() *MemoryWorld {
	return &MemoryWorld{
		sources: map[ast.FileID]*ast.Source{},
		files:   map[ast.FileID][]byte{},
	}
}

// AddSource registers a parsed source under its id.
func (w *MemoryWorld) AddSource(src *ast.Source) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sources[src.ID()] = src
}

// AddFile registers raw file contents.
func (w *MemoryWorld) AddFile(id ast.FileID, data []byte) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[id] = data
}

func (w *MemoryWorld) Source(id ast.FileID) (*ast.Source, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	src, ok := w.sources[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return src, nil
}

// File returns raw contents. The text of registered sources is readable
// as a file too.
func (w *MemoryWorld) File(id ast.FileID) ([]byte, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	if data, ok := w.files[id]; ok {
		return data, nil
	}
	if src, ok := w.sources[id]; ok {
		return []byte(src.Text()), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
}
