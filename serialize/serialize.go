// Package serialize writes an ast.Page back out as vimwiki markup.
//
// Output is canonical rather than a copy of the source: spacing inside
// headers, tables and list items is normalized, while code and math
// lines are written verbatim. Parsing the output again yields a tree
// structurally equal to the one serialized.
package serialize

import (
	"strings"

	"github.com/gerunddev/vimwiki/ast"
)

// Page serializes every block of the page
func Page(page *ast.Page) string {
	if page == nil {
		return ""
	}
	var w writer
	for _, b := range page.Blocks {
		w.block(b.Value, "", true)
	}
	return w.String()
}

// Block serializes a single top level block
func Block(b ast.Block) string {
	var w writer
	w.block(b, "", true)
	return w.String()
}

// Inlines serializes a run of inline elements. Line breaks become
// newlines.
func Inlines(in ast.Inlines) string {
	var b strings.Builder
	writeInlines(&b, in)
	return b.String()
}

type writer struct {
	strings.Builder
}

// line writes one output line
func (w *writer) line(parts ...string) {
	for _, p := range parts {
		w.WriteString(p)
	}
	w.WriteByte('\n')
}

// block writes b with every line prefixed by indent. top is false inside
// list items, where headers and tables are never centered.
func (w *writer) block(b ast.Block, indent string, top bool) {
	switch b := b.(type) {
	case ast.Header:
		marks := strings.Repeat("=", b.Level)
		lead := ""
		if b.Centered && top {
			lead = " "
		}
		w.line(lead, marks, " ", Inlines(b.Content), " ", marks)
	case ast.Paragraph:
		for _, l := range b.Lines() {
			w.line(indent, Inlines(l))
		}
	case ast.DefinitionList:
		w.definitionList(b, indent)
	case ast.List:
		w.list(b, indent)
	case ast.Table:
		w.table(b, indent, top)
	case ast.CodeBlock:
		w.line(indent, "{{{", fenceInfo(b))
		for _, l := range b.Lines {
			w.line(l)
		}
		w.line(indent, "}}}")
	case ast.MathBlock:
		env := ""
		if b.Environment != "" {
			env = "%" + b.Environment + "%"
		}
		w.line(indent, "{{$", env)
		for _, l := range b.Lines {
			w.line(l)
		}
		w.line(indent, "}}$")
	case ast.Blockquote:
		w.blockquote(b, indent)
	case ast.Divider:
		w.line("----")
	case ast.Placeholder:
		if b.Value == "" {
			w.line("%", b.Keyword())
		} else {
			w.line("%", b.Keyword(), " ", b.Value)
		}
	case ast.Comment:
		w.line(comment(b))
	case ast.BlankLine:
		w.line()
	}
}

func fenceInfo(c ast.CodeBlock) string {
	parts := []string{}
	if c.Language != "" {
		parts = append(parts, c.Language)
	}
	if props := properties(c.Properties); props != "" {
		parts = append(parts, props)
	}
	return strings.Join(parts, " ")
}

func properties(ps ast.Properties) string {
	parts := make([]string, len(ps))
	for i, p := range ps {
		parts[i] = p.Key + `="` + p.Value + `"`
	}
	return strings.Join(parts, " ")
}

func comment(c ast.Comment) string {
	if c.Multiline {
		return "%%+" + c.Content + "+%%"
	}
	return "%%" + c.Content
}

func (w *writer) definitionList(dl ast.DefinitionList, indent string) {
	for _, e := range dl.Entries {
		term := Inlines(e.Value.Term)
		defs := e.Value.Definitions
		if len(defs) == 0 {
			w.line(indent, term, "::")
			continue
		}
		w.line(indent, term, ":: ", Inlines(defs[0].Value))
		for _, d := range defs[1:] {
			w.line(indent, ":: ", Inlines(d.Value))
		}
	}
}

// list writes each item as its marker line followed by the item's
// remaining blocks at the item's content column
func (w *writer) list(l ast.List, indent string) {
	for _, it := range l.Items {
		item := it.Value
		head := indent + item.Marker + " " + item.Checkbox.Mark()
		content := indent + strings.Repeat(" ", len(item.Marker)+1)

		rest := item.Contents
		if len(rest) > 0 {
			if p, ok := rest[0].Value.(ast.Paragraph); ok {
				lines := p.Lines()
				first := Inlines(lines[0])
				// Text that reads as a checkbox stays off the marker line
				if item.Checkbox == ast.NoCheckbox && looksLikeCheckbox(first) {
					w.line(head)
					for _, l := range lines {
						w.line(content, Inlines(l))
					}
				} else {
					if item.Checkbox != ast.NoCheckbox {
						head += " "
					}
					w.line(head, first)
					for _, l := range lines[1:] {
						w.line(content, Inlines(l))
					}
				}
				rest = rest[1:]
				for _, b := range rest {
					w.block(b.Value, content, false)
				}
				continue
			}
		}
		w.line(head)
		for _, b := range rest {
			w.block(b.Value, content, false)
		}
	}
}

func looksLikeCheckbox(s string) bool {
	if len(s) < 3 || s[0] != '[' || s[2] != ']' || !strings.ContainsRune(" .oOX-", rune(s[1])) {
		return false
	}
	return len(s) == 3 || s[3] == ' ' || s[3] == '\t'
}

var alignCells = map[ast.Align]string{
	ast.AlignNone:   "---",
	ast.AlignLeft:   ":---",
	ast.AlignCenter: ":---:",
	ast.AlignRight:  "---:",
}

func (w *writer) table(t ast.Table, indent string, top bool) {
	lead := indent
	if t.Centered && top {
		lead += " "
	}
	for _, r := range t.Rows {
		var b strings.Builder
		b.WriteString(lead)
		b.WriteString("|")
		for _, c := range r.Value.Cells {
			b.WriteString(" ")
			b.WriteString(cellText(c.Value, r.Value.Divider))
			b.WriteString(" |")
		}
		w.line(b.String())
	}
}

func cellText(c ast.Cell, divider bool) string {
	switch {
	case divider:
		return alignCells[c.Align]
	case c.Span == ast.SpanLeft:
		return ">"
	case c.Span == ast.SpanAbove:
		return `\/`
	}
	return Inlines(c.Content)
}

func (w *writer) blockquote(q ast.Blockquote, indent string) {
	for _, l := range q.Lines {
		switch {
		case q.Indented:
			w.line(indent, "    ", Inlines(l))
		case len(l) == 0:
			w.line(indent, ">")
		default:
			w.line(indent, "> ", Inlines(l))
		}
	}
}
