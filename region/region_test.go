package region

import "testing"

func TestRegionArithmetic(t *testing.T) {
	a := New(2, 3) // [2,5)
	b := New(4, 4) // [4,8)
	c := New(5, 1) // [5,6)

	if a.End() != 5 {
		t.Errorf("Expected end 5, got %d", a.End())
	}
	if !a.Overlaps(b) || a.Overlaps(c) {
		t.Error("Overlap mismatch")
	}
	if !a.Before(c) || c.Before(a) {
		t.Error("Before mismatch")
	}
	if u := a.Union(b); u.Offset != 2 || u.Len != 6 {
		t.Errorf("Expected union 2+6, got %v", u)
	}
	if !b.Contains(c) || c.Contains(b) {
		t.Error("Contains mismatch")
	}
	if !New(3, 0).IsEmpty() {
		t.Error("Expected zero length region to be empty")
	}
	if s := Span(5, 2); s.Len != 0 {
		t.Errorf("Expected inverted span to be empty, got %v", s)
	}
}

func TestSlice(t *testing.T) {
	src := "hello world"
	tests := []struct {
		r    Region
		want string
	}{
		{New(0, 5), "hello"},
		{New(6, 5), "world"},
		{New(6, 50), "world"},
		{New(20, 2), ""},
	}
	for _, tt := range tests {
		if got := tt.r.Slice(src); got != tt.want {
			t.Errorf("Slice(%v): expected %q, got %q", tt.r, tt.want, got)
		}
	}
}

func TestIndex(t *testing.T) {
	src := "ab\nçd\n\nx"
	ix := NewIndex(src)

	if ix.Lines() != 4 {
		t.Fatalf("Expected 4 lines, got %d", ix.Lines())
	}

	tests := []struct {
		offset int
		want   Position
	}{
		{0, Position{1, 1}},
		{2, Position{1, 3}},
		{3, Position{2, 1}},
		{5, Position{2, 2}}, // after the two byte ç
		{7, Position{3, 1}},
		{8, Position{4, 1}},
		{100, Position{4, 2}},
	}
	for _, tt := range tests {
		if got := ix.Position(tt.offset); got != tt.want {
			t.Errorf("Position(%d): expected %v, got %v", tt.offset, tt.want, got)
		}
	}

	if got := ix.LineText(2); got != "çd" {
		t.Errorf("Expected line 2 %q, got %q", "çd", got)
	}
	if got := ix.LineText(3); got != "" {
		t.Errorf("Expected empty line 3, got %q", got)
	}

	r := ix.Locate(New(5, 1))
	if r.Line != 2 || r.Column != 2 || !r.HasPosition() {
		t.Errorf("Locate: expected 2:2, got %v", r)
	}
	if r.String() != "2:2@5+1" {
		t.Errorf("Unexpected String() %q", r.String())
	}
}
