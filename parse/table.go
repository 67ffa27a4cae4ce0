package parse

import (
	"strings"

	"github.com/gerunddev/vimwiki/ast"
)

func startsTableRow(l line) bool {
	s := l.trimmed()
	return len(s) >= 2 && s[0] == '|' && s[len(s)-1] == '|'
}

// rawCell is a cell's text bounds within its line
type rawCell struct {
	from, to int
}

// splitCells splits a row on `|`, skipping separators inside links,
// transclusions and code spans
func splitCells(s string, from, to int) []rawCell {
	var cells []rawCell
	start := from + 1
	for k := from + 1; k < to; k++ {
		switch {
		case strings.HasPrefix(s[k:], "[["):
			if end := strings.Index(s[k+2:to], "]]"); end >= 0 {
				k += end + 3
			}
		case strings.HasPrefix(s[k:], "{{"):
			if end := strings.Index(s[k+2:to], "}}"); end >= 0 {
				k += end + 3
			}
		case s[k] == '`':
			if end := strings.IndexByte(s[k+1:to], '`'); end >= 0 {
				k += end + 1
			}
		case s[k] == '|':
			cells = append(cells, rawCell{from: start, to: k})
			start = k + 1
		}
	}
	return append(cells, rawCell{from: start, to: to})
}

// cellAlign recognises `---`, `:---`, `---:` and `:---:`
func cellAlign(s string) (ast.Align, bool) {
	left := strings.HasPrefix(s, ":")
	right := strings.HasSuffix(s, ":") && len(s) > 1
	body := s
	if left {
		body = body[1:]
	}
	if right {
		body = body[:len(body)-1]
	}
	if len(body) < 3 || strings.Trim(body, "-") != "" {
		return ast.AlignNone, false
	}
	switch {
	case left && right:
		return ast.AlignCenter, true
	case left:
		return ast.AlignLeft, true
	case right:
		return ast.AlignRight, true
	}
	return ast.AlignNone, true
}

func (p *parser) table(lines []line, i int, sc scope) (located, int, bool) {
	if !startsTableRow(lines[i]) {
		return located{}, 0, false
	}
	n := 0
	for i+n < len(lines) && startsTableRow(lines[i+n]) {
		n++
	}
	rows := lines[i : i+n]

	t := ast.Table{Centered: sc == scopePage && rows[0].indent() > 0}
	malformed := false
	for _, l := range rows {
		if mixedRow(l) {
			p.report(MalformedTable, l.contentStart(), l.contentEnd(), "row mixes divider cells with content cells")
			malformed = true
		}
	}
	if malformed {
		return p.paragraphOf(rows, sc), n, true
	}
	for _, l := range rows {
		t.Rows = append(t.Rows, p.tableRow(l))
	}

	// rows above the first divider are header rows
	for k, r := range t.Rows {
		if !r.Value.Divider {
			continue
		}
		for h := 0; h < k; h++ {
			t.Rows[h].Value.Header = true
		}
		break
	}
	first, last := rows[0], rows[n-1]
	return ast.At[ast.Block](p.span(first.contentStart(), last.contentEnd()), t), n, true
}

// rowCells returns the trimmed cell bounds of a row line
func rowCells(l line) [][2]int {
	s := l.text
	to := len(strings.TrimRight(s, " \t")) - 1
	var out [][2]int
	for _, rc := range splitCells(s, l.indent(), to) {
		cf, ct := trimBounds(s, rc.from, rc.to)
		out = append(out, [2]int{cf, ct})
	}
	return out
}

// mixedRow reports a row holding both divider and content cells
func mixedRow(l line) bool {
	cells := rowCells(l)
	dividers := 0
	for _, c := range cells {
		if _, ok := cellAlign(l.text[c[0]:c[1]]); ok {
			dividers++
		}
	}
	return dividers > 0 && dividers != len(cells)
}

func (p *parser) tableRow(l line) ast.Located[ast.Row] {
	var row ast.Row
	for _, c := range rowCells(l) {
		cf, ct := c[0], c[1]
		text := l.text[cf:ct]
		var cell ast.Cell
		if align, ok := cellAlign(text); ok {
			cell.Align = align
			row.Divider = true
		} else {
			switch text {
			case ">":
				cell.Span = ast.SpanLeft
			case `\/`:
				cell.Span = ast.SpanAbove
			default:
				cell.Content = p.inlines(text, l.start+cf, false)
			}
		}
		row.Cells = append(row.Cells, ast.At(p.span(l.start+cf, l.start+ct), cell))
	}
	return ast.At(p.span(l.contentStart(), l.contentEnd()), row)
}
