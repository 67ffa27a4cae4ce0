// Package ast defines the document tree produced by the vimwiki parser.
//
// Block and inline kinds form closed sets: every kind implements a marker
// method that is unexported, so consumers can switch over them exhaustively.
package ast

import "github.com/gerunddev/vimwiki/region"

// Located pairs an element with the region of source it came from
type Located[T any] struct {
	Region region.Region
	Value  T
}

// At wraps v with region r
func At[T any](r region.Region, v T) Located[T] {
	return Located[T]{Region: r, Value: v}
}

// Page is the root of a parsed document. Source is the buffer every
// region of the page indexes into.
type Page struct {
	Blocks []Located[Block]
	Source string
}

// Text returns the source text covered by r
func (p *Page) Text(r region.Region) string {
	return r.Slice(p.Source)
}

// Block is a structural element occupying whole lines
type Block interface {
	blockNode()
}

// ListItemBlock is a block allowed inside a list item
type ListItemBlock interface {
	Block
	listItemBlockNode()
}

// Inline is an element within a line of text
type Inline interface {
	inlineNode()
}

// Inlines is an ordered sequence of inline elements
type Inlines []Located[Inline]

// Property is an ordered key/value pair used by code blocks and
// transclusions
type Property struct {
	Key   string
	Value string
}

// Properties is an ordered set of properties
type Properties []Property

// Get returns the value for key
func (ps Properties) Get(key string) (string, bool) {
	for _, p := range ps {
		if p.Key == key {
			return p.Value, true
		}
	}
	return "", false
}

// Set replaces the value of an existing key in place or appends a new one
func (ps Properties) Set(key, value string) Properties {
	for i := range ps {
		if ps[i].Key == key {
			ps[i].Value = value
			return ps
		}
	}
	return append(ps, Property{Key: key, Value: value})
}
