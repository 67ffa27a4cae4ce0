package ast

import "github.com/gerunddev/vimwiki/region"

// Node is a located value seen during a walk
type Node struct {
	Value  any
	Region region.Region
}

// Children returns the located children of v in source order. v is any
// value held by a Located in the tree.
func Children(v any) []Node {
	var out []Node
	addInlines := func(in Inlines) {
		for _, el := range in {
			out = append(out, Node{Value: el.Value, Region: el.Region})
		}
	}

	switch v := v.(type) {
	case Header:
		addInlines(v.Content)
	case Paragraph:
		addInlines(v.Content)
	case DefinitionList:
		for _, e := range v.Entries {
			out = append(out, Node{Value: e.Value, Region: e.Region})
		}
	case Definition:
		addInlines(v.Term)
		for _, d := range v.Definitions {
			out = append(out, Node{Value: d.Value, Region: d.Region})
		}
	case Inlines:
		addInlines(v)
	case List:
		for _, it := range v.Items {
			out = append(out, Node{Value: it.Value, Region: it.Region})
		}
	case ListItem:
		for _, c := range v.Contents {
			out = append(out, Node{Value: c.Value, Region: c.Region})
		}
	case Table:
		for _, r := range v.Rows {
			out = append(out, Node{Value: r.Value, Region: r.Region})
		}
	case Row:
		for _, c := range v.Cells {
			out = append(out, Node{Value: c.Value, Region: c.Region})
		}
	case Cell:
		addInlines(v.Content)
	case Blockquote:
		for _, line := range v.Lines {
			addInlines(line)
		}
	case Decorated:
		addInlines(v.Content)
	case Link:
		addInlines(v.Description)
	}
	return out
}

// Walk visits every located node of the page depth first in document
// order. Returning false from fn skips the children of that node.
func Walk(p *Page, fn func(n Node, depth int) bool) {
	for _, b := range p.Blocks {
		walk(Node{Value: b.Value, Region: b.Region}, 0, fn)
	}
}

func walk(n Node, depth int, fn func(Node, int) bool) {
	if !fn(n, depth) {
		return
	}
	for _, c := range Children(n.Value) {
		walk(c, depth+1, fn)
	}
}

// Headers returns every header of the page in document order
func Headers(p *Page) []Located[Header] {
	var out []Located[Header]
	for _, b := range p.Blocks {
		if h, ok := b.Value.(Header); ok {
			out = append(out, At(b.Region, h))
		}
	}
	return out
}

// Links returns every link of the page in document order, including
// links nested in lists, tables and descriptions
func Links(p *Page) []Located[Link] {
	var out []Located[Link]
	Walk(p, func(n Node, _ int) bool {
		if l, ok := n.Value.(Link); ok {
			out = append(out, At(n.Region, l))
		}
		return true
	})
	return out
}
