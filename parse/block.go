package parse

import (
	"strings"

	"github.com/gerunddev/vimwiki/ast"
)

// scope restricts the rules available to a block sequence
type scope int

const (
	scopePage scope = iota
	scopeItem
)

type located = ast.Located[ast.Block]

// blockRule is one block matcher. starts is a single line test used to
// decide whether a line ends the paragraph above it; parse consumes one
// or more lines beginning at lines[i].
type blockRule struct {
	name       string
	inItems    bool
	interrupts bool
	starts     func(l line) bool
	parse      func(p *parser, lines []line, i int, sc scope) (located, int, bool)
}

// blockRules is in priority order. The first rule whose parse succeeds
// wins, regardless of how many lines a later rule would consume.
var blockRules []blockRule

func init() {
	blockRules = []blockRule{
		{name: "header", interrupts: true, starts: startsHeader, parse: (*parser).header},
		{name: "divider", interrupts: true, starts: startsDivider, parse: (*parser).divider},
		{name: "placeholder", interrupts: true, starts: startsPlaceholder, parse: (*parser).placeholder},
		{name: "comment", interrupts: true, starts: startsComment, parse: (*parser).comment},
		{name: "code", inItems: true, interrupts: true, starts: startsCodeFence, parse: (*parser).codeBlock},
		{name: "math", inItems: true, interrupts: true, starts: startsMathFence, parse: (*parser).mathBlock},
		{name: "table", inItems: true, interrupts: true, starts: startsTableRow, parse: (*parser).table},
		{name: "blockquote", inItems: true, interrupts: true, starts: startsArrowQuote, parse: (*parser).blockquote},
		{name: "definition", interrupts: true, starts: startsDefinitionTerm, parse: (*parser).definitionList},
		{name: "list", inItems: true, interrupts: true, starts: startsListItem, parse: (*parser).list},
		{name: "blank", interrupts: true, starts: line.blank, parse: (*parser).blankLine},
	}
}

func ruleApplies(r blockRule, sc scope) bool {
	return sc == scopePage || r.inItems
}

// blocks parses lines into a block sequence
func (p *parser) blocks(lines []line, sc scope) []located {
	var out []located
	for i := 0; i < len(lines) && !p.fatal; {
		b, n := p.block(lines, i, sc)
		if p.fatal {
			break
		}
		out = append(out, b)
		i += n
	}
	return out
}

func (p *parser) block(lines []line, i int, sc scope) (located, int) {
	for _, r := range blockRules {
		if !ruleApplies(r, sc) {
			continue
		}
		if b, n, ok := r.parse(p, lines, i, sc); ok {
			return b, n
		}
		if p.fatal {
			return located{}, len(lines) - i
		}
	}
	return p.paragraph(lines, i, sc)
}

// interrupts reports whether l begins a block that ends a paragraph
func interrupts(l line, sc scope) bool {
	for _, r := range blockRules {
		if r.interrupts && ruleApplies(r, sc) && r.starts(l) {
			return true
		}
	}
	return false
}

// paragraph consumes lines[i] and every following line that neither is
// blank nor starts another block
func (p *parser) paragraph(lines []line, i int, sc scope) (located, int) {
	n := 1
	for i+n < len(lines) {
		next := lines[i+n]
		if next.blank() || interrupts(next, sc) {
			break
		}
		n++
	}
	return p.paragraphOf(lines[i:i+n], sc), n
}

// paragraphOf builds a paragraph from lines without checking block
// rules. Outside list items leading whitespace is kept as text.
func (p *parser) paragraphOf(lines []line, sc scope) located {
	var content ast.Inlines
	start, end := -1, 0
	prevEnd := 0
	for idx, l := range lines {
		from := l.start
		if sc == scopeItem {
			from = l.contentStart()
		}
		to := l.contentEnd()
		if to < from {
			to = from
		}
		if start < 0 {
			start = from
		}
		if idx > 0 {
			content = append(content, ast.At[ast.Inline](p.span(prevEnd, from), ast.LineBreak{}))
		}
		content = append(content, p.inlines(p.src[from:to], from, false)...)
		prevEnd = to
		end = to
	}
	return ast.At[ast.Block](p.span(start, end), ast.Paragraph{Content: content})
}

func (p *parser) blankLine(lines []line, i int, _ scope) (located, int, bool) {
	l := lines[i]
	if !l.blank() {
		return located{}, 0, false
	}
	return ast.At[ast.Block](p.span(l.start, l.end()), ast.BlankLine{}), 1, true
}

// headerShape splits a line of the form `= text =` into its marker run
// lengths and text bounds
func headerShape(l line) (lead, trail, from, to int, ok bool) {
	s := strings.TrimRight(l.text, " \t")
	ind := l.indent()
	if ind >= len(s) || s[ind] != '=' || s[len(s)-1] != '=' {
		return 0, 0, 0, 0, false
	}
	for ind+lead < len(s) && s[ind+lead] == '=' {
		lead++
	}
	for trail < len(s)-ind && s[len(s)-1-trail] == '=' {
		trail++
	}
	from, to = ind+lead, len(s)-trail
	if from >= to || strings.TrimSpace(s[from:to]) == "" {
		return 0, 0, 0, 0, false
	}
	return lead, trail, from, to, true
}

func startsHeader(l line) bool {
	_, _, _, _, ok := headerShape(l)
	return ok
}

func (p *parser) header(lines []line, i int, sc scope) (located, int, bool) {
	l := lines[i]
	lead, trail, from, to, ok := headerShape(l)
	if !ok {
		return located{}, 0, false
	}
	if lead != trail || lead > 6 {
		msg := "header markers must match and be at most 6 long"
		if lead != trail {
			msg = "opening and closing header markers differ"
		}
		p.report(InvalidHeaderLevel, l.contentStart(), l.contentEnd(), msg)
		return p.paragraphOf(lines[i:i+1], sc), 1, true
	}

	inner := l.text[from:to]
	textFrom := l.start + from + (len(inner) - len(strings.TrimLeft(inner, " \t")))
	textTo := l.start + from + len(strings.TrimRight(inner, " \t"))
	h := ast.Header{
		Level:    lead,
		Content:  p.inlines(p.src[textFrom:textTo], textFrom, false),
		Centered: l.indent() > 0,
	}
	return ast.At[ast.Block](p.span(l.contentStart(), l.contentEnd()), h), 1, true
}

func startsDivider(l line) bool {
	s := strings.TrimRight(l.text, " \t")
	return len(s) >= 4 && strings.Trim(s, "-") == ""
}

func (p *parser) divider(lines []line, i int, _ scope) (located, int, bool) {
	l := lines[i]
	if !startsDivider(l) {
		return located{}, 0, false
	}
	return ast.At[ast.Block](p.span(l.start, l.contentEnd()), ast.Divider{}), 1, true
}

// placeholderShape splits `%name value`
func placeholderShape(s string) (name, value string, ok bool) {
	if len(s) < 2 || s[0] != '%' || s[1] == '%' {
		return "", "", false
	}
	s = strings.TrimRight(s, " \t")
	end := 1
	for end < len(s) && !isSpace(s[end]) {
		if s[end] == '%' {
			return "", "", false
		}
		end++
	}
	if end == 1 {
		return "", "", false
	}
	return s[1:end], strings.TrimSpace(s[end:]), true
}

func startsPlaceholder(l line) bool {
	_, _, ok := placeholderShape(l.text)
	return ok
}

func (p *parser) placeholder(lines []line, i int, _ scope) (located, int, bool) {
	l := lines[i]
	name, value, ok := placeholderShape(l.text)
	if !ok {
		return located{}, 0, false
	}
	ph := ast.Placeholder{Value: value}
	switch {
	case name == "title":
		ph.Kind = ast.PlaceholderTitle
	case name == "date":
		ph.Kind = ast.PlaceholderDate
	case name == "template":
		ph.Kind = ast.PlaceholderTemplate
	case name == "nohtml" && value == "":
		ph.Kind = ast.PlaceholderNoHTML
	default:
		ph.Kind = ast.PlaceholderOther
		ph.Name = name
	}
	return ast.At[ast.Block](p.span(l.start, l.contentEnd()), ph), 1, true
}

func startsComment(l line) bool {
	return strings.HasPrefix(l.text, "%%")
}

// comment parses `%%` line comments and `%%+ … +%%` comments whose
// closing marker ends a line
func (p *parser) comment(lines []line, i int, _ scope) (located, int, bool) {
	l := lines[i]
	if !startsComment(l) {
		return located{}, 0, false
	}
	if strings.HasPrefix(l.text, "%%+") {
		for k := i; k < len(lines); k++ {
			text := strings.TrimRight(lines[k].text, " \t")
			from := 0
			if k == i {
				from = 3
			}
			if len(text)-from >= 3 && strings.HasSuffix(text, "+%%") {
				contentFrom := l.start + 3
				contentTo := lines[k].start + len(text) - 3
				c := ast.Comment{Content: p.src[contentFrom:contentTo], Multiline: true}
				return ast.At[ast.Block](p.span(l.start, lines[k].start+len(text)), c), k - i + 1, true
			}
		}
	}
	c := ast.Comment{Content: l.text[2:]}
	return ast.At[ast.Block](p.span(l.start, l.end()), c), 1, true
}

func startsArrowQuote(l line) bool {
	s := strings.TrimLeft(l.text, " \t")
	return strings.HasPrefix(s, "> ") || strings.TrimRight(s, " \t") == ">"
}

// startsIndentedQuote matches the four-space form. It never interrupts
// a paragraph and never applies to list items.
func startsIndentedQuote(l line) bool {
	if l.blank() {
		return false
	}
	lead := l.text[:l.indent()]
	if !strings.Contains(lead, "\t") && len(lead) < 4 {
		return false
	}
	_, _, ok := parseMarker(l.text[l.indent():])
	return !ok
}

func (p *parser) blockquote(lines []line, i int, sc scope) (located, int, bool) {
	if startsArrowQuote(lines[i]) {
		return p.arrowQuote(lines, i)
	}
	if sc == scopePage && startsIndentedQuote(lines[i]) {
		return p.indentedQuote(lines, i)
	}
	return located{}, 0, false
}

func (p *parser) quoteLine(l line) ast.Inlines {
	s := strings.TrimLeft(l.text, " \t")
	from := l.start + (len(l.text) - len(s)) + 1
	if len(s) > 1 {
		from++
	}
	to := l.contentEnd()
	if to <= from {
		return nil
	}
	return p.inlines(p.src[from:to], from, false)
}

func (p *parser) arrowQuote(lines []line, i int) (located, int, bool) {
	var q ast.Blockquote
	n := 0
	for i+n < len(lines) {
		l := lines[i+n]
		if startsArrowQuote(l) {
			q.Lines = append(q.Lines, p.quoteLine(l))
			n++
			continue
		}
		// blank lines stay inside the quote when another `>` line follows
		gap := 0
		for i+n+gap < len(lines) && lines[i+n+gap].blank() {
			gap++
		}
		if gap == 0 || i+n+gap >= len(lines) || !startsArrowQuote(lines[i+n+gap]) {
			break
		}
		for ; gap > 0; gap-- {
			q.Lines = append(q.Lines, nil)
			n++
		}
	}
	first, last := lines[i], lines[i+n-1]
	return ast.At[ast.Block](p.span(first.contentStart(), last.contentEnd()), q), n, true
}

func (p *parser) indentedQuote(lines []line, i int) (located, int, bool) {
	q := ast.Blockquote{Indented: true}
	n := 0
	for i+n < len(lines) {
		l := lines[i+n]
		if !startsIndentedQuote(l) || (n > 0 && startsBefore(l, "blockquote")) {
			break
		}
		from, to := l.contentStart(), l.contentEnd()
		q.Lines = append(q.Lines, p.inlines(p.src[from:to], from, false))
		n++
	}
	first, last := lines[i], lines[i+n-1]
	return ast.At[ast.Block](p.span(first.contentStart(), last.contentEnd()), q), n, true
}

// startsBefore reports whether a rule ranked above the named one
// matches l
func startsBefore(l line, name string) bool {
	for _, r := range blockRules {
		if r.name == name {
			return false
		}
		if r.starts(l) {
			return true
		}
	}
	return false
}

// termShape finds the `::` separating a term from its inline definition
func termShape(s string) (sep int, ok bool) {
	s = strings.TrimRight(s, " \t")
	for k := 0; k+1 < len(s); k++ {
		if s[k] != ':' || s[k+1] != ':' {
			continue
		}
		if k+2 < len(s) && !isSpace(s[k+2]) {
			continue
		}
		if strings.TrimSpace(s[:k]) == "" {
			return 0, false
		}
		return k, true
	}
	return 0, false
}

func startsDefinitionTerm(l line) bool {
	_, ok := termShape(l.text)
	return ok
}

func isDefinitionLine(l line) bool {
	s := strings.TrimLeft(l.text, " \t")
	return len(s) > 3 && strings.HasPrefix(s, "::") && isSpace(s[2]) && strings.TrimSpace(s[2:]) != ""
}

func (p *parser) definitionList(lines []line, i int, _ scope) (located, int, bool) {
	if !startsDefinitionTerm(lines[i]) {
		return located{}, 0, false
	}
	var dl ast.DefinitionList
	n := 0
	for i+n < len(lines) {
		l := lines[i+n]
		if sep, ok := termShape(l.text); ok {
			termFrom, termTo := trimBounds(l.text, 0, sep)
			def := ast.Definition{Term: p.inlines(l.text[termFrom:termTo], l.start+termFrom, false)}
			if from, to := trimBounds(l.text, sep+2, len(l.text)); from < to {
				def.Definitions = append(def.Definitions, p.definition(l, from, to))
			}
			dl.Entries = append(dl.Entries, ast.At(p.span(l.start+termFrom, l.contentEnd()), def))
			n++
			continue
		}
		if isDefinitionLine(l) && len(dl.Entries) > 0 {
			s := l.indent() + 2
			from, to := trimBounds(l.text, s, len(l.text))
			last := &dl.Entries[len(dl.Entries)-1]
			last.Value.Definitions = append(last.Value.Definitions, p.definition(l, from, to))
			last.Region = last.Region.Union(p.span(l.start+from, l.start+to))
			n++
			continue
		}
		break
	}
	first, last := lines[i], lines[i+n-1]
	return ast.At[ast.Block](p.span(first.contentStart(), last.contentEnd()), dl), n, true
}

func (p *parser) definition(l line, from, to int) ast.Located[ast.Inlines] {
	return ast.At(p.span(l.start+from, l.start+to), p.inlines(l.text[from:to], l.start+from, false))
}

// trimBounds narrows s[from:to] to exclude surrounding whitespace
func trimBounds(s string, from, to int) (int, int) {
	for from < to && isSpace(s[from]) {
		from++
	}
	for to > from && isSpace(s[to-1]) {
		to--
	}
	return from, to
}
