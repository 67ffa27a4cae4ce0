package ast

import (
	"github.com/gerunddev/vimwiki/region"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// StructuralOptions are the cmp options under which two trees are
// structurally equal: regions and the page source are ignored and empty
// slices equal nil ones.
var StructuralOptions = cmp.Options{
	cmpopts.IgnoreTypes(region.Region{}),
	cmpopts.IgnoreFields(Page{}, "Source"),
	cmpopts.EquateEmpty(),
}

// Equal reports whether a and b are structurally equal
func Equal(a, b *Page) bool {
	return cmp.Equal(a, b, StructuralOptions)
}

// Diff returns a human readable structural diff of a and b, or "" when
// they are equal
func Diff(a, b *Page) string {
	return cmp.Diff(a, b, StructuralOptions)
}

// EqualBlocks reports whether two blocks are structurally equal
func EqualBlocks(a, b Block) bool {
	return cmp.Equal(a, b, StructuralOptions)
}

// EqualInlines reports whether two inline sequences are structurally equal
func EqualInlines(a, b Inlines) bool {
	return cmp.Equal(a, b, StructuralOptions)
}
