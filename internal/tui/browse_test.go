package tui

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gerunddev/vimwiki/internal/build"
	"github.com/gerunddev/vimwiki/parse"
)

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func update(t *testing.T, m browseModel, msg tea.Msg) (browseModel, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	bm, ok := next.(browseModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return bm, cmd
}

func TestPageStatus(t *testing.T) {
	tests := []struct {
		name string
		page build.PageResult
		want string
	}{
		{"ok", build.PageResult{}, "✓ ok"},
		{"failed", build.PageResult{Err: errors.New("x")}, "✗ unparsable"},
		{"skipped", build.PageResult{Skipped: "nohtml"}, "- nohtml"},
		{"problems", build.PageResult{Problems: []*parse.ErrorEntry{{}, {}}}, "⚠ 2 problem(s)"},
		{"unresolved", build.PageResult{Unresolved: []string{"a"}}, "⚠ 1 unresolved"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pageStatus(tt.page); got != tt.want {
				t.Errorf("pageStatus() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestBrowseNavigation(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "index.wiki"), []byte("= Hi =\n"), 0644); err != nil {
		t.Fatalf("Failed to create page: %v", err)
	}

	m := InitBrowseModel(root, nil, nil)
	m, _ = update(t, m, BrowseMsg{Pages: []build.PageResult{
		{Source: "index.wiki", Title: "Home", Headers: []string{"Hi"}},
	}})

	if !m.ready || len(m.table.Rows()) != 1 {
		t.Fatalf("Expected one row after BrowseMsg")
	}
	if row := m.table.Rows()[0]; row[0] != "index.wiki" || row[1] != "Home" || row[2] != "1" {
		t.Errorf("Unexpected row %v", row)
	}
	if !strings.Contains(m.View(), "Pages: 1") {
		t.Errorf("Table view missing page count:\n%s", m.View())
	}

	m, cmd := update(t, m, key("enter"))
	if !m.showingPage || cmd == nil {
		t.Fatal("Expected enter to open the page detail")
	}
	detail, ok := cmd().(DetailMsg)
	if !ok || detail.Err != nil {
		t.Fatalf("Expected DetailMsg, got %#v", detail)
	}
	if !strings.Contains(detail.Content, "Already formatted") {
		t.Errorf("Detail missing format status:\n%s", detail.Content)
	}

	m, _ = update(t, m, key("esc"))
	if m.showingPage {
		t.Error("Expected esc to return to the table")
	}

	_, cmd = update(t, m, key("q"))
	if cmd == nil {
		t.Fatal("Expected q to quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("Expected a quit command")
	}
}

func TestBrowseFormat(t *testing.T) {
	root := t.TempDir()
	var formatted string
	m := InitBrowseModel(root, func(path string) error {
		formatted = path
		return nil
	}, nil)
	m, _ = update(t, m, BrowseMsg{Pages: []build.PageResult{{Source: "a.wiki"}}})
	m.showingPage = true
	m.selectedPage = &m.pages[0]

	m, cmd := update(t, m, key("f"))
	if m.showingPage || cmd == nil {
		t.Fatal("Expected f to leave the detail view and format")
	}
	if _, ok := cmd().(RefreshBrowseMsg); !ok {
		t.Error("Expected a refresh after formatting")
	}
	if formatted != filepath.Join(root, "a.wiki") {
		t.Errorf("formatFunc got %q", formatted)
	}
}

func TestPageDetail(t *testing.T) {
	root := t.TempDir()
	src := "=Title=\n| --- | x |\n"
	if err := os.WriteFile(filepath.Join(root, "a.wiki"), []byte(src), 0644); err != nil {
		t.Fatalf("Failed to create page: %v", err)
	}

	_, err := parse.Parse(src, parse.Options{TrackRegions: true, ComputeLineColumns: true})
	var perr *parse.Error
	if !errors.As(err, &perr) {
		t.Fatalf("Expected parse problems, got %v", err)
	}

	out, err := PageDetail(root, build.PageResult{
		Source:     "a.wiki",
		Headers:    []string{"Title"},
		Unresolved: []string{"Gone"},
		Problems:   perr.Entries,
	})
	if err != nil {
		t.Fatalf("PageDetail() error = %v", err)
	}
	for _, want := range []string{"Headers", "Title", "Unresolved links", "Gone", "Problems", "| --- | x |", "^", "Formatting changes"} {
		if !strings.Contains(out, want) {
			t.Errorf("PageDetail() missing %q:\n%s", want, out)
		}
	}

	if _, err := PageDetail(root, build.PageResult{Source: "missing.wiki"}); err == nil {
		t.Error("Expected error for a missing page")
	}
}

func TestBuildView(t *testing.T) {
	m := InitBuildModel("/wiki")
	if !strings.Contains(m.View(), "Building /wiki") {
		t.Errorf("Unexpected progress view %q", m.View())
	}

	start := time.Now()
	next, cmd := m.Update(BuildMsg{Result: &build.BuildResult{
		Pages: []build.PageResult{
			{Source: "a.wiki"},
			{Source: "b.wiki", Skipped: "nohtml"},
			{Source: "c.wiki", Err: errors.New("failed to parse c.wiki")},
		},
		StartTime: start,
		EndTime:   start.Add(time.Second),
	}})
	if cmd == nil {
		t.Error("Expected the program to quit after the build")
	}
	view := next.View()
	for _, want := range []string{"Built 1 page(s)", "1 skipped", "1 failed", "failed to parse c.wiki"} {
		if !strings.Contains(view, want) {
			t.Errorf("Build view missing %q:\n%s", want, view)
		}
	}
}
