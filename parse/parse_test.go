package parse

import (
	"os"
	"testing"

	"github.com/gerunddev/vimwiki/ast"
	"github.com/gerunddev/vimwiki/region"
)

var regionInputs = []string{
	"= Hello =\nWorld\n",
	"- A\n  - B *bold*\n- [X] C [[Page|desc _it_]]\n",
	"| a | b |\n|---|---|\n| `c` | {{img.png|alt}} |\n",
	"Term:: def\n:: more\n\n> quote\n>\n> again\n",
	"para one\n  continued :tag:\n\n{{{sh\nls\n}}}\n%title T\n",
	"1. one\n   two\n2. three\n   - nested\n",
}

// checkContainment verifies every child lies inside its parent and
// siblings appear in order without overlapping
func checkContainment(t *testing.T, src string, parent ast.Node) {
	t.Helper()
	var prev *region.Region
	for _, c := range ast.Children(parent.Value) {
		if !parent.Region.Contains(c.Region) {
			t.Errorf("%q: %T %v escapes parent %T %v", src, c.Value, c.Region, parent.Value, parent.Region)
		}
		if prev != nil && !prev.Before(c.Region) {
			t.Errorf("%q: %T %v overlaps or precedes its sibling %v", src, c.Value, c.Region, *prev)
		}
		r := c.Region
		prev = &r
		checkContainment(t, src, c)
	}
}

func TestRegionContainment(t *testing.T) {
	for _, src := range regionInputs {
		page := mustParse(t, src)
		root := region.Span(0, len(src))
		var prev *region.Region
		for _, b := range page.Blocks {
			if !root.Contains(b.Region) {
				t.Errorf("%q: block %T %v escapes the source", src, b.Value, b.Region)
			}
			if prev != nil && !prev.Before(b.Region) {
				t.Errorf("%q: block %T %v overlaps its predecessor", src, b.Value, b.Region)
			}
			r := b.Region
			prev = &r
			checkContainment(t, src, ast.Node{Value: b.Value, Region: b.Region})
		}
	}
}

func TestRegionText(t *testing.T) {
	src := "= Hello =\nsee [[Page|it]] now\n"
	page := mustParse(t, src)

	if got := page.Text(page.Blocks[0].Region); got != "= Hello =" {
		t.Errorf("Expected header text %q, got %q", "= Hello =", got)
	}
	links := ast.Links(page)
	if len(links) != 1 {
		t.Fatalf("Expected 1 link, got %d", len(links))
	}
	if got := page.Text(links[0].Region); got != "[[Page|it]]" {
		t.Errorf("Expected link text %q, got %q", "[[Page|it]]", got)
	}
}

func TestLineColumns(t *testing.T) {
	src := "= Hello =\n\n  text *b*\n"
	page, err := Parse(src, Options{TrackRegions: true, ComputeLineColumns: true})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	tests := []struct {
		block        int
		line, column int
	}{
		{0, 1, 1},
		{1, 2, 1},
		{2, 3, 1},
	}
	for _, tt := range tests {
		r := page.Blocks[tt.block].Region
		if r.Line != tt.line || r.Column != tt.column {
			t.Errorf("Block %d: expected %d:%d, got %d:%d", tt.block, tt.line, tt.column, r.Line, r.Column)
		}
	}

	bold := page.Blocks[2].Value.(ast.Paragraph).Content[1]
	if bold.Region.Line != 3 || bold.Region.Column != 8 {
		t.Errorf("Expected bold at 3:8, got %d:%d", bold.Region.Line, bold.Region.Column)
	}
}

func TestWithoutRegions(t *testing.T) {
	page, err := Parse(regionInputs[1], Options{})
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	ast.Walk(page, func(n ast.Node, _ int) bool {
		if n.Region != (region.Region{}) {
			t.Errorf("Expected zero region for %T, got %v", n.Value, n.Region)
		}
		return true
	})

	// structure does not depend on region tracking
	tracked := mustParse(t, regionInputs[1])
	if !ast.Equal(page, tracked) {
		t.Errorf("Pages differ:\n%s", ast.Diff(tracked, page))
	}
}

func TestParseFixture(t *testing.T) {
	content, err := os.ReadFile("testdata/sample.wiki")
	if err != nil {
		t.Fatalf("Failed to read fixture: %v", err)
	}
	page := mustParse(t, string(content))

	counts := map[string]int{}
	for _, b := range page.Blocks {
		switch b.Value.(type) {
		case ast.Header:
			counts["header"]++
		case ast.List:
			counts["list"]++
		case ast.Table:
			counts["table"]++
		case ast.CodeBlock:
			counts["code"]++
		case ast.Placeholder:
			counts["placeholder"]++
		}
	}
	for kind, min := range map[string]int{"header": 3, "list": 2, "table": 1, "code": 1, "placeholder": 2} {
		if counts[kind] < min {
			t.Errorf("Expected at least %d %s blocks, got %d", min, kind, counts[kind])
		}
	}
	if len(ast.Links(page)) < 4 {
		t.Errorf("Expected at least 4 links, got %d", len(ast.Links(page)))
	}
}
