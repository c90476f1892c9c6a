package bytecode

import (
	"github.com/quillscript/quill/ast"
)

// PatternKind is the top-level shape of a pattern.
type PatternKind uint8

const (
	// PatternSingle binds the whole value to Target.
	PatternSingle PatternKind = iota
	// PatternPlaceholder discards the value.
	PatternPlaceholder
	// PatternItems destructures an array or a dictionary.
	PatternItems
)

// PatternItemKind is the kind of one destructuring item.
type PatternItemKind uint8

const (
	ItemPlaceholder PatternItemKind = iota
	ItemSimple
	ItemNested
	ItemSpread
	ItemSpreadDiscard
	ItemNamed
)

// Pattern is a compiled destructuring pattern.
type Pattern struct {
	Kind   PatternKind
	Span   ast.Span
	Target Writable
	Items  []PatternItem
}

// PatternItem is one item of a destructuring pattern.
//
// Simple items bind to Target; Key holds the identifier name when the
// item is a plain identifier, which lets it bind the dictionary key of the
// same name. Nested items recurse into pattern Pattern. Named items look
// up Key and bind the result according to Inner, which is ItemPlaceholder,
// ItemSimple or ItemNested.
type PatternItem struct {
	Kind    PatternItemKind
	Span    ast.Span
	Target  Writable
	Key     string
	Pattern int
	Inner   PatternItemKind
}

// HasSpread reports whether the pattern has a spread item.
func (p *Pattern) HasSpread() bool {
	for _, item := range p.Items {
		if item.Kind == ItemSpread || item.Kind == ItemSpreadDiscard {
			return true
		}
	}
	return false
}
