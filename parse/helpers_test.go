package parse

import (
	"testing"

	"github.com/gerunddev/vimwiki/ast"
	"github.com/google/go-cmp/cmp"
)

func text(s string) ast.Located[ast.Inline] {
	return ast.Located[ast.Inline]{Value: ast.Text{Value: s}}
}

func inl(v ast.Inline) ast.Located[ast.Inline] {
	return ast.Located[ast.Inline]{Value: v}
}

func deco(d ast.Decoration, content ...ast.Located[ast.Inline]) ast.Located[ast.Inline] {
	return inl(ast.Decorated{Decoration: d, Content: content})
}

func blk(b ast.Block) ast.Located[ast.Block] {
	return ast.Located[ast.Block]{Value: b}
}

func para(content ...ast.Located[ast.Inline]) ast.Paragraph {
	return ast.Paragraph{Content: content}
}

func item(marker string, style ast.MarkerStyle, contents ...ast.ListItemBlock) ast.Located[ast.ListItem] {
	it := ast.ListItem{Marker: marker, Style: style}
	for _, c := range contents {
		it.Contents = append(it.Contents, ast.Located[ast.ListItemBlock]{Value: c})
	}
	return ast.Located[ast.ListItem]{Value: it}
}

// mustParse parses src and fails the test on any error
func mustParse(t *testing.T, src string) *ast.Page {
	t.Helper()
	page, err := ParseString(src)
	if err != nil {
		t.Fatalf("Parse(%q) failed: %v", src, err)
	}
	return page
}

func checkBlocks(t *testing.T, src string, got []ast.Located[ast.Block], want ...ast.Block) {
	t.Helper()
	expected := make([]ast.Located[ast.Block], len(want))
	for i, b := range want {
		expected[i] = blk(b)
	}
	if diff := cmp.Diff(expected, got, ast.StructuralOptions); diff != "" {
		t.Errorf("Parse(%q) blocks mismatch (-want +got):\n%s", src, diff)
	}
}
