package importer

import (
	"context"

	"github.com/quillscript/quill/ast"
)

type contextKey string

const routeKey = contextKey("quill:route")

// Route is the chain of files currently being evaluated, innermost first.
// A nil Route is empty.
type Route struct {
	parent *Route
	file   ast.FileID
	depth  int
}

// Push returns a route with file entered on top of r.
func (r *Route) Push(file ast.FileID) *Route {
	return &Route{parent: r, file: file, depth: r.Len() + 1}
}

// Contains reports whether file is being evaluated somewhere on the route.
func (r *Route) Contains(file ast.FileID) bool {
	for cur := r; cur != nil; cur = cur.parent {
		if cur.file == file {
			return true
		}
	}
	return false
}

// Current returns the innermost file.
func (r *Route) Current() (ast.FileID, bool) {
	if r == nil {
		return ast.FileID{}, false
	}
	return r.file, true
}

// Len returns the number of files on the route.
func (r *Route) Len() int {
	if r == nil {
		return 0
	}
	return r.depth
}

// WithRoute stores a route in the context.
func WithRoute(ctx context.Context, r *Route) context.Context {
	return context.WithValue(ctx, routeKey, r)
}

// RouteFrom returns the route stored in the context, or nil.
func RouteFrom(ctx context.Context) *Route {
	r, _ := ctx.Value(routeKey).(*Route)
	return r
}

// Enter pushes file onto the route of ctx.
func Enter(ctx context.Context, file ast.FileID) context.Context {
	return WithRoute(ctx, RouteFrom(ctx).Push(file))
}
