// Package region tracks spans of source text.
package region

import "fmt"

// Region is a contiguous span of source text. Offset and Len are byte
// based. Line and Column are 1-based and zero unless they were computed.
type Region struct {
	Offset int
	Len    int
	Line   int
	Column int
}

// New returns a region without line/column information
func New(offset, length int) Region {
	return Region{Offset: offset, Len: length}
}

// Span returns the region covering [start, end)
func Span(start, end int) Region {
	if end < start {
		end = start
	}
	return Region{Offset: start, Len: end - start}
}

// End returns the offset just past the region
func (r Region) End() int {
	return r.Offset + r.Len
}

// IsEmpty reports whether the region covers no bytes
func (r Region) IsEmpty() bool {
	return r.Len == 0
}

// HasPosition reports whether line/column were computed
func (r Region) HasPosition() bool {
	return r.Line > 0
}

// Contains reports whether o lies entirely within r
func (r Region) Contains(o Region) bool {
	return o.Offset >= r.Offset && o.End() <= r.End()
}

// Overlaps reports whether r and o share at least one byte
func (r Region) Overlaps(o Region) bool {
	return r.Offset < o.End() && o.Offset < r.End()
}

// Before reports whether r ends at or before the start of o
func (r Region) Before(o Region) bool {
	return r.End() <= o.Offset
}

// Union returns the smallest region covering both r and o. The
// line/column of the earlier region is kept.
func (r Region) Union(o Region) Region {
	first := r
	if o.Offset < r.Offset {
		first = o
	}
	end := r.End()
	if o.End() > end {
		end = o.End()
	}
	first.Len = end - first.Offset
	return first
}

// Slice returns the text of src covered by the region
func (r Region) Slice(src string) string {
	start, end := r.Offset, r.End()
	if start < 0 {
		start = 0
	}
	if end > len(src) {
		end = len(src)
	}
	if start >= end {
		return ""
	}
	return src[start:end]
}

func (r Region) String() string {
	if r.HasPosition() {
		return fmt.Sprintf("%d:%d@%d+%d", r.Line, r.Column, r.Offset, r.Len)
	}
	return fmt.Sprintf("%d+%d", r.Offset, r.Len)
}
