package ast

// Header is a `= title =` line
type Header struct {
	Level    int
	Content  Inlines
	Centered bool
}

// Paragraph is a run of text lines. Lines are separated by LineBreak.
type Paragraph struct {
	Content Inlines
}

// Lines splits the paragraph content at its line breaks
func (p Paragraph) Lines() []Inlines {
	return SplitLines(p.Content)
}

// Definition is one term of a definition list with its definitions
type Definition struct {
	Term        Inlines
	Definitions []Located[Inlines]
}

// DefinitionList is a sequence of `term:: definition` entries
type DefinitionList struct {
	Entries []Located[Definition]
}

// ListKind distinguishes ordered and unordered lists
type ListKind int

const (
	Unordered ListKind = iota
	Ordered
)

func (k ListKind) String() string {
	if k == Ordered {
		return "ordered"
	}
	return "unordered"
}

// MarkerStyle is the family of a list item marker. Items of one List
// always share a style.
type MarkerStyle int

const (
	MarkerHyphen MarkerStyle = iota
	MarkerAsterisk
	MarkerPound
	MarkerNumber
	MarkerLowerAlpha
	MarkerUpperAlpha
	MarkerLowerRoman
	MarkerUpperRoman
)

var markerStyleNames = [...]string{
	"hyphen", "asterisk", "pound", "number",
	"lower-alpha", "upper-alpha", "lower-roman", "upper-roman",
}

func (s MarkerStyle) String() string {
	if int(s) < len(markerStyleNames) {
		return markerStyleNames[s]
	}
	return "unknown"
}

// Kind returns the list kind implied by the marker style
func (s MarkerStyle) Kind() ListKind {
	if s == MarkerHyphen || s == MarkerAsterisk {
		return Unordered
	}
	return Ordered
}

// Checkbox is the todo state of a list item
type Checkbox int

const (
	NoCheckbox Checkbox = iota
	Incomplete
	Partial1
	Partial2
	Partial3
	Complete
	Rejected
)

var checkboxMarks = [...]string{"", "[ ]", "[.]", "[o]", "[O]", "[X]", "[-]"}

// Mark returns the checkbox as written in markup, or "" for none
func (c Checkbox) Mark() string {
	if int(c) < len(checkboxMarks) {
		return checkboxMarks[c]
	}
	return ""
}

func (c Checkbox) String() string {
	switch c {
	case NoCheckbox:
		return "none"
	case Incomplete:
		return "incomplete"
	case Partial1, Partial2, Partial3:
		return "partial"
	case Complete:
		return "complete"
	case Rejected:
		return "rejected"
	}
	return "unknown"
}

// ListItem is one item of a list. Marker is the raw marker text, Number
// the explicit number it carries (zero for bullets and `#`).
type ListItem struct {
	Marker   string
	Style    MarkerStyle
	Number   int
	Checkbox Checkbox
	Contents []Located[ListItemBlock]
}

// List is a run of items with the same marker style
type List struct {
	Kind  ListKind
	Items []Located[ListItem]
}

// CellSpan marks a cell merged into a neighbour
type CellSpan int

const (
	NoSpan CellSpan = iota
	SpanLeft
	SpanAbove
)

// Align is the column alignment declared by a divider row cell
type Align int

const (
	AlignNone Align = iota
	AlignLeft
	AlignCenter
	AlignRight
)

func (a Align) String() string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignCenter:
		return "center"
	case AlignRight:
		return "right"
	}
	return ""
}

// Cell is a table cell. Divider row cells only carry Align.
type Cell struct {
	Content Inlines
	Span    CellSpan
	Align   Align
}

// Row is a table row
type Row struct {
	Cells   []Located[Cell]
	Header  bool
	Divider bool
}

// Table is a `|a|b|` grid
type Table struct {
	Rows     []Located[Row]
	Centered bool
}

// cell returns the cell at (row, col) if present
func (t Table) cell(row, col int) (Cell, bool) {
	if row < 0 || row >= len(t.Rows) {
		return Cell{}, false
	}
	cells := t.Rows[row].Value.Cells
	if col < 0 || col >= len(cells) {
		return Cell{}, false
	}
	return cells[col].Value, true
}

// ColSpan returns how many columns the cell at (row, col) covers,
// counting the `>` cells that follow it
func (t Table) ColSpan(row, col int) int {
	span := 1
	for c := col + 1; ; c++ {
		cell, ok := t.cell(row, c)
		if !ok || cell.Span != SpanLeft {
			return span
		}
		span++
	}
}

// RowSpan returns how many rows the cell at (row, col) covers, counting
// the `\/` cells below it. Divider rows are skipped.
func (t Table) RowSpan(row, col int) int {
	span := 1
	for r := row + 1; r < len(t.Rows); r++ {
		if t.Rows[r].Value.Divider {
			continue
		}
		cell, ok := t.cell(r, col)
		if !ok || cell.Span != SpanAbove {
			return span
		}
		span++
	}
	return span
}

// Columns returns the widest row's cell count
func (t Table) Columns() int {
	n := 0
	for _, r := range t.Rows {
		if len(r.Value.Cells) > n {
			n = len(r.Value.Cells)
		}
	}
	return n
}

// Alignment returns the alignment of column col, taken from the first
// divider row
func (t Table) Alignment(col int) Align {
	for _, r := range t.Rows {
		if !r.Value.Divider {
			continue
		}
		if col < len(r.Value.Cells) {
			return r.Value.Cells[col].Value.Align
		}
		return AlignNone
	}
	return AlignNone
}

// CodeBlock is a `{{{ … }}}` fenced block. Lines are kept verbatim.
type CodeBlock struct {
	Language   string
	Properties Properties
	Lines      []string
}

// MathBlock is a `{{$ … }}$` fenced block. Lines are kept verbatim.
type MathBlock struct {
	Environment string
	Lines       []string
}

// Blockquote is a run of `> ` lines, or of lines indented by four
// spaces when Indented is set. Empty entries separate groups.
type Blockquote struct {
	Lines    []Inlines
	Indented bool
}

// Groups splits the quote at its empty lines
func (b Blockquote) Groups() [][]Inlines {
	var groups [][]Inlines
	var cur []Inlines
	for _, line := range b.Lines {
		if len(line) == 0 {
			if len(cur) > 0 {
				groups = append(groups, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, line)
	}
	if len(cur) > 0 {
		groups = append(groups, cur)
	}
	return groups
}

// Divider is a horizontal rule
type Divider struct{}

// PlaceholderKind is the kind of a `%name value` line
type PlaceholderKind int

const (
	PlaceholderTitle PlaceholderKind = iota
	PlaceholderDate
	PlaceholderTemplate
	PlaceholderNoHTML
	PlaceholderOther
)

// Placeholder is a `%title`, `%date`, `%template`, `%nohtml` or other
// `%name value` line. Name is only set for PlaceholderOther.
type Placeholder struct {
	Kind  PlaceholderKind
	Name  string
	Value string
}

// Keyword returns the placeholder name as written after `%`
func (p Placeholder) Keyword() string {
	switch p.Kind {
	case PlaceholderTitle:
		return "title"
	case PlaceholderDate:
		return "date"
	case PlaceholderTemplate:
		return "template"
	case PlaceholderNoHTML:
		return "nohtml"
	}
	return p.Name
}

// Comment is a `%%` line comment or a `%%+ … +%%` multiline comment. It
// is used both as a block and as an inline element.
type Comment struct {
	Content   string
	Multiline bool
}

// BlankLine is an empty line between blocks
type BlankLine struct{}

func (Header) blockNode()         {}
func (Paragraph) blockNode()      {}
func (DefinitionList) blockNode() {}
func (List) blockNode()           {}
func (Table) blockNode()          {}
func (CodeBlock) blockNode()      {}
func (MathBlock) blockNode()      {}
func (Blockquote) blockNode()     {}
func (Divider) blockNode()        {}
func (Placeholder) blockNode()    {}
func (Comment) blockNode()        {}
func (BlankLine) blockNode()      {}

func (Paragraph) listItemBlockNode()  {}
func (List) listItemBlockNode()       {}
func (Table) listItemBlockNode()      {}
func (CodeBlock) listItemBlockNode()  {}
func (MathBlock) listItemBlockNode()  {}
func (Blockquote) listItemBlockNode() {}
