package region

import (
	"sort"
	"unicode/utf8"
)

// Position is a 1-based line and column. Columns count runes.
type Position struct {
	Line   int
	Column int
}

// Index maps byte offsets of a source to line/column positions
type Index struct {
	src    string
	starts []int
}

// NewIndex builds the line-offset table of src
func NewIndex(src string) *Index {
	starts := []int{0}
	for i := 0; i < len(src); i++ {
		if src[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Index{src: src, starts: starts}
}

// Lines returns the number of lines in the source
func (ix *Index) Lines() int {
	return len(ix.starts)
}

// LineStart returns the byte offset where the given 1-based line starts
func (ix *Index) LineStart(line int) int {
	if line < 1 {
		return 0
	}
	if line > len(ix.starts) {
		return len(ix.src)
	}
	return ix.starts[line-1]
}

// LineText returns the text of the given 1-based line without its newline
func (ix *Index) LineText(line int) string {
	start := ix.LineStart(line)
	end := len(ix.src)
	if line < len(ix.starts) {
		end = ix.starts[line] - 1
	}
	if end < start {
		return ""
	}
	return ix.src[start:end]
}

// Position returns the line/column of a byte offset
func (ix *Index) Position(offset int) Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(ix.src) {
		offset = len(ix.src)
	}
	line := sort.Search(len(ix.starts), func(i int) bool {
		return ix.starts[i] > offset
	})
	start := ix.starts[line-1]
	return Position{
		Line:   line,
		Column: utf8.RuneCountInString(ix.src[start:offset]) + 1,
	}
}

// Locate returns r with Line and Column filled in
func (ix *Index) Locate(r Region) Region {
	pos := ix.Position(r.Offset)
	r.Line = pos.Line
	r.Column = pos.Column
	return r
}
