package render

import (
	"strconv"
	"strings"

	"github.com/gerunddev/vimwiki/ast"
	"golang.org/x/net/html"
)

var escape = html.EscapeString

// blocks renders a block sequence, one block per line of output
func (r *renderer) blocks(bs []ast.Located[ast.Block]) {
	for _, b := range bs {
		before := r.out.Len()
		r.block(b.Value)
		if r.out.Len() > before {
			r.write("\n")
		}
	}
}

func (r *renderer) block(b ast.Block) {
	switch b := b.(type) {
	case ast.Header:
		r.header(b)
	case ast.Paragraph:
		r.write("<p>")
		r.inlines(b.Content)
		r.write("</p>")
	case ast.DefinitionList:
		r.definitionList(b)
	case ast.List:
		r.list(b)
	case ast.Table:
		r.table(b)
	case ast.CodeBlock:
		r.codeBlock(b)
	case ast.MathBlock:
		r.mathBlock(b)
	case ast.Blockquote:
		r.blockquote(b)
	case ast.Divider:
		r.write("<hr />")
	case ast.Placeholder:
		r.placeholder(b)
	case ast.Comment:
		r.comment(b)
	case ast.BlankLine:
	}
}

func (r *renderer) header(h ast.Header) {
	text := ast.PlainText(h.Content)
	id := escape(r.ids.unique(r.opts.IDs(text)))
	level := strconv.Itoa(h.Level)

	if h.Level == 1 && r.opts.TOCHeader != "" && strings.TrimSpace(text) == r.opts.TOCHeader {
		r.write(`<div class="toc"><h1 id="`, id, `">`)
		r.inlines(h.Content)
		r.write("</h1></div>")
		return
	}

	class := "header"
	if h.Centered {
		class += " center"
	}
	r.write("<h", level, ` id="`, id, `" class="`, class, `"><a href="#`, id, `">`)
	r.inlines(h.Content)
	r.write("</a></h", level, ">")
}

func (r *renderer) definitionList(dl ast.DefinitionList) {
	r.write("<dl>\n")
	for _, e := range dl.Entries {
		r.write("<dt>")
		r.inlines(e.Value.Term)
		r.write("</dt>\n")
		for _, d := range e.Value.Definitions {
			r.write("<dd>")
			r.inlines(d.Value)
			r.write("</dd>\n")
		}
	}
	r.write("</dl>")
}

var listTypes = map[ast.MarkerStyle]string{
	ast.MarkerLowerAlpha: "a",
	ast.MarkerUpperAlpha: "A",
	ast.MarkerLowerRoman: "i",
	ast.MarkerUpperRoman: "I",
}

var checkboxClasses = map[ast.Checkbox]string{
	ast.Incomplete: "done0",
	ast.Partial1:   "done1",
	ast.Partial2:   "done2",
	ast.Partial3:   "done3",
	ast.Complete:   "done4",
	ast.Rejected:   "rejected",
}

func (r *renderer) list(l ast.List) {
	tag := "ul"
	if l.Kind == ast.Ordered {
		tag = "ol"
	}
	r.write("<", tag)
	if len(l.Items) > 0 && l.Kind == ast.Ordered {
		first := l.Items[0].Value
		if t, ok := listTypes[first.Style]; ok {
			r.write(` type="`, t, `"`)
		}
		if first.Number > 1 {
			r.write(` start="`, strconv.Itoa(first.Number), `"`)
		}
	}
	r.write(">\n")

	for _, it := range l.Items {
		r.write("<li")
		if class, ok := checkboxClasses[it.Value.Checkbox]; ok {
			r.write(` class="`, class, `"`)
		}
		r.write(">")
		for i, c := range it.Value.Contents {
			if i > 0 {
				r.write("\n")
			}
			r.block(c.Value)
		}
		r.write("</li>\n")
	}
	r.write("</", tag, ">")
}

func (r *renderer) table(t ast.Table) {
	if t.Centered {
		r.write(`<table class="center">`, "\n")
	} else {
		r.write("<table>\n")
	}

	var head, body []int
	for i, row := range t.Rows {
		switch {
		case row.Value.Divider:
		case row.Value.Header:
			head = append(head, i)
		default:
			body = append(body, i)
		}
	}
	section := func(name, cellTag string, rows []int) {
		if len(rows) == 0 {
			return
		}
		r.write("<", name, ">\n")
		for _, i := range rows {
			r.tableRow(t, i, cellTag)
		}
		r.write("</", name, ">\n")
	}
	section("thead", "th", head)
	section("tbody", "td", body)
	r.write("</table>")
}

func (r *renderer) tableRow(t ast.Table, row int, tag string) {
	r.write("<tr>")
	for col, c := range t.Rows[row].Value.Cells {
		if c.Value.Span != ast.NoSpan {
			continue
		}
		r.write("<", tag)
		if n := t.RowSpan(row, col); n > 1 {
			r.write(` rowspan="`, strconv.Itoa(n), `"`)
		}
		if n := t.ColSpan(row, col); n > 1 {
			r.write(` colspan="`, strconv.Itoa(n), `"`)
		}
		if align := t.Alignment(col); align != ast.AlignNone {
			r.write(` style="text-align: `, align.String(), `;"`)
		}
		r.write(">")
		r.inlines(c.Value.Content)
		r.write("</", tag, ">")
	}
	r.write("</tr>\n")
}

func (r *renderer) codeBlock(c ast.CodeBlock) {
	if r.opts.Highlighter != nil {
		if out, err := r.opts.Highlighter.Highlight(c.Language, c.Lines); err == nil {
			r.write(out)
			return
		}
	}

	r.write("<pre")
	for _, p := range c.Properties {
		r.write(" ", escape(p.Key), `="`, escape(p.Value), `"`)
	}
	r.write("><code")
	if c.Language != "" {
		r.write(` class="`, escape(c.Language), `"`)
	}
	r.write(">")
	r.write(escape(strings.Join(c.Lines, "\n")))
	r.write("</code></pre>")
}

func (r *renderer) mathBlock(m ast.MathBlock) {
	begin, end := `\[`, `\]`
	if m.Environment != "" {
		begin, end = `\begin{`+m.Environment+`}`, `\end{`+m.Environment+`}`
	}
	r.write(`<div class="math">`, "\n", escape(begin), "\n")
	for _, l := range m.Lines {
		r.write(escape(l), "\n")
	}
	r.write(escape(end), "\n</div>")
}

func (r *renderer) blockquote(q ast.Blockquote) {
	r.write("<blockquote>\n")
	for _, group := range q.Groups() {
		r.write("<p>")
		for i, line := range group {
			if i > 0 {
				r.write("\n")
			}
			r.inlines(line)
		}
		r.write("</p>\n")
	}
	r.write("</blockquote>")
}

// placeholder records metadata. Later placeholders of the same kind
// override earlier ones.
func (r *renderer) placeholder(p ast.Placeholder) {
	switch p.Kind {
	case ast.PlaceholderTitle:
		r.meta.Title = p.Value
	case ast.PlaceholderDate:
		r.meta.Date = p.Value
	case ast.PlaceholderTemplate:
		r.meta.Template = p.Value
	case ast.PlaceholderNoHTML:
		r.meta.NoHTML = true
	default:
		r.meta.Other = append(r.meta.Other, p)
	}
}

func (r *renderer) comment(c ast.Comment) {
	if !r.opts.IncludeComments {
		return
	}
	r.write("<!--", strings.ReplaceAll(c.Content, "--", "- -"), "-->")
}
