package build

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gerunddev/vimwiki/ast"
	"github.com/gerunddev/vimwiki/internal/config"
	"github.com/gerunddev/vimwiki/internal/logger"
	"github.com/google/go-cmp/cmp"
)

var wikiFiles = map[string]string{
	"index.wiki": `%title Home
= Index =
[[sub/page]] [[Missing]] [[diary:2024-01-02]]
`,
	"sub/page.wiki":         "[[../index]] [[diary:2024-01-02]] [[/index]]\n| --- | x |\n",
	"diary/2024-01-02.wiki": "= Tuesday =\n",
	"private.wiki":          "%nohtml\nsecret\n",
	"broken.wiki":           "{{{\nnever closed\n",
	"drafts/wip.wiki":       "draft\n",
	"notes.txt":             "not a page\n",
}

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		p := filepath.Join(root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(p), 0755); err != nil {
			t.Fatalf("Failed to create directory: %v", err)
		}
		if err := os.WriteFile(p, []byte(content), 0644); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}
	}
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	tmpDir := t.TempDir()
	cfg := config.DefaultConfig()
	cfg.Root = filepath.Join(tmpDir, "wiki")
	cfg.OutputDir = filepath.Join(tmpDir, "html")
	cfg.ExcludePatterns = []string{"drafts"}
	cfg.HighlightStyle = ""
	cfg.Workers = 2
	writeFiles(t, cfg.Root, wikiFiles)
	return cfg
}

func readOutput(t *testing.T, cfg *config.Config, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.OutputDir, filepath.FromSlash(name)))
	if err != nil {
		t.Fatalf("Failed to read output %s: %v", name, err)
	}
	return string(data)
}

func TestBuild(t *testing.T) {
	cfg := testConfig(t)
	builder := NewBuilder(cfg)

	var logBuf bytes.Buffer
	builder.SetLogger(logger.New(&logBuf))

	result, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var sources []string
	for _, p := range result.Pages {
		sources = append(sources, filepath.ToSlash(p.Source))
	}
	wantSources := []string{"broken.wiki", "diary/2024-01-02.wiki", "index.wiki", "private.wiki", "sub/page.wiki"}
	if diff := cmp.Diff(wantSources, sources); diff != "" {
		t.Fatalf("pages mismatch (-want +got):\n%s", diff)
	}

	if result.Failed() != 1 || result.Pages[0].Err == nil {
		t.Errorf("Expected broken.wiki to fail, got %d failures", result.Failed())
	}
	if result.Skipped() != 1 || result.Pages[3].Skipped != "nohtml" {
		t.Errorf("Expected private.wiki to be skipped")
	}
	if result.Problems() != 1 {
		t.Errorf("Expected 1 recoverable problem, got %d", result.Problems())
	}

	index := result.Pages[2]
	if index.Title != "Home" {
		t.Errorf("Expected title Home, got %q", index.Title)
	}
	if diff := cmp.Diff([]string{"Missing"}, index.Unresolved); diff != "" {
		t.Errorf("Unresolved mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Index"}, index.Headers); diff != "" {
		t.Errorf("Headers mismatch (-want +got):\n%s", diff)
	}
	if index.Links != 3 {
		t.Errorf("Expected 3 links, got %d", index.Links)
	}

	t.Run("index page", func(t *testing.T) {
		out := readOutput(t, cfg, "index.html")
		for _, want := range []string{
			"<title>Home</title>",
			`<a href="sub/page.html">sub/page</a>`,
			`<a href="Missing.html" class="unresolved">Missing</a>`,
			`<a href="diary/2024-01-02.html">2024-01-02</a>`,
		} {
			if !strings.Contains(out, want) {
				t.Errorf("index.html missing %q:\n%s", want, out)
			}
		}
	})

	t.Run("nested page", func(t *testing.T) {
		out := readOutput(t, cfg, "sub/page.html")
		for _, want := range []string{
			"<title>page</title>",
			`<a href="../index.html">../index</a>`,
			`<a href="../index.html">/index</a>`,
			`<a href="../diary/2024-01-02.html">`,
		} {
			if !strings.Contains(out, want) {
				t.Errorf("sub/page.html missing %q:\n%s", want, out)
			}
		}
		if strings.Contains(out, "unresolved") {
			t.Errorf("sub/page.html should have no unresolved links:\n%s", out)
		}
	})

	t.Run("skipped and failed pages", func(t *testing.T) {
		for _, name := range []string{"private.html", "broken.html", "drafts/wip.html"} {
			if _, err := os.Stat(filepath.Join(cfg.OutputDir, name)); !os.IsNotExist(err) {
				t.Errorf("Expected %s not to be written", name)
			}
		}
	})

	t.Run("manifest", func(t *testing.T) {
		var pages []PageResult
		if err := json.Unmarshal([]byte(readOutput(t, cfg, ManifestName)), &pages); err != nil {
			t.Fatalf("Failed to decode manifest: %v", err)
		}
		if len(pages) != 5 {
			t.Fatalf("Expected 5 manifest entries, got %d", len(pages))
		}
		if pages[2].ID != PageID("index.wiki") {
			t.Errorf("Manifest id mismatch for index.wiki")
		}
	})

	logOutput := logBuf.String()
	for _, want := range []string{"build started", "build completed", "page rendered", "parse problem"} {
		if !strings.Contains(logOutput, want) {
			t.Errorf("Expected %q log message, got: %s", want, logOutput)
		}
	}
}

func TestBuildDryRun(t *testing.T) {
	cfg := testConfig(t)
	builder := NewBuilder(cfg)
	builder.DryRun = true

	result, err := builder.Build()
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if len(result.Pages) != 5 {
		t.Errorf("Expected 5 pages, got %d", len(result.Pages))
	}
	if _, err := os.Stat(cfg.OutputDir); !os.IsNotExist(err) {
		t.Error("Dry run should not create the output directory")
	}
	if !strings.HasPrefix(result.String(), "Build complete: 5 pages, 1 skipped, 1 problems, 1 failed") {
		t.Errorf("Unexpected summary %q", result.String())
	}
}

func TestBuildTemplates(t *testing.T) {
	cfg := testConfig(t)
	cfg.TemplateDir = filepath.Join(t.TempDir(), "templates")
	writeFiles(t, cfg.TemplateDir, map[string]string{
		"default.tpl": "default|{{ .Root }}|{{ .Title }}",
		"diary.tpl":   "diary|{{ .Title }}",
	})
	writeFiles(t, cfg.Root, map[string]string{
		"diary/2024-01-02.wiki": "%template diary\n%title Tuesday\n",
	})

	if _, err := NewBuilder(cfg).Build(); err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	tests := []struct {
		page string
		want string
	}{
		{"index.html", "default||Home"},
		{"sub/page.html", "default|..|page"},
		{"diary/2024-01-02.html", "diary|Tuesday"},
	}
	for _, tt := range tests {
		if got := readOutput(t, cfg, tt.page); got != tt.want {
			t.Errorf("%s = %q, want %q", tt.page, got, tt.want)
		}
	}
}

func TestBuildSanitize(t *testing.T) {
	cfg := testConfig(t)
	cfg.Sanitize = true
	cfg.IncludeComments = true
	writeFiles(t, cfg.Root, map[string]string{"index.wiki": "%% hidden\n[[page]]\n"})

	if _, err := NewBuilder(cfg).Build(); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	out := readOutput(t, cfg, "index.html")
	if strings.Contains(out, "hidden") {
		t.Errorf("Expected comment to be sanitized away:\n%s", out)
	}
	if !strings.Contains(out, `href="page.html"`) {
		t.Errorf("Expected link to survive sanitizing:\n%s", out)
	}
}

func TestPageID(t *testing.T) {
	a := PageID("index.wiki")
	if a != PageID("index.wiki") {
		t.Error("PageID should be stable")
	}
	if a == PageID("other.wiki") {
		t.Error("PageID should differ between pages")
	}
	if a.Version() != 5 {
		t.Errorf("Expected a version 5 UUID, got %d", a.Version())
	}
}

func TestRootFrom(t *testing.T) {
	tests := map[string]string{
		".":     "",
		"a":     "..",
		"a/b":   "../..",
		"a/b/c": "../../..",
	}
	for dir, want := range tests {
		if got := rootFrom(dir); got != want {
			t.Errorf("rootFrom(%q) = %q, want %q", dir, got, want)
		}
	}
}

func TestExistsFrom(t *testing.T) {
	idx := newPageIndex([]string{"index.wiki", "sub/page.wiki", "diary/2024-01-02.wiki"}, ".wiki")

	tests := []struct {
		name string
		dir  string
		link ast.Link
		want bool
	}{
		{"sibling", ".", ast.Link{Kind: ast.WikiLink, Target: "index"}, true},
		{"missing", ".", ast.Link{Kind: ast.WikiLink, Target: "nope"}, false},
		{"into subdirectory", ".", ast.Link{Kind: ast.WikiLink, Target: "sub/page"}, true},
		{"parent", "sub", ast.Link{Kind: ast.WikiLink, Target: "../index"}, true},
		{"relative to page", "sub", ast.Link{Kind: ast.WikiLink, Target: "index"}, false},
		{"root relative", "sub", ast.Link{Kind: ast.WikiLink, Target: "/index"}, true},
		{"directory", ".", ast.Link{Kind: ast.WikiLink, Target: "sub/"}, true},
		{"missing directory", ".", ast.Link{Kind: ast.WikiLink, Target: "other/"}, false},
		{"url", ".", ast.Link{Kind: ast.WikiLink, Target: "https://example.com"}, true},
		{"diary", "sub", ast.Link{Kind: ast.DiaryLink, Target: "2024-01-02"}, true},
		{"missing diary", ".", ast.Link{Kind: ast.DiaryLink, Target: "1999-01-01"}, false},
		{"interwiki", ".", ast.Link{Kind: ast.InterwikiLink, Wiki: "Work", Target: "x"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := idx.existsFrom(tt.dir, "")(tt.link); got != tt.want {
				t.Errorf("exists = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestScanDirectory(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"file1.wiki":        "test",
		"file2.wiki":        "test",
		"file.md":           "test",
		"subdir/file3.wiki": "test",
		"skip/file4.wiki":   "test",
		"subdir/tmp.wiki":   "test",
	})

	files, err := ScanDirectory(tmpDir, ".wiki", []string{"skip", "subdir/tmp.wiki"})
	if err != nil {
		t.Fatalf("ScanDirectory failed: %v", err)
	}

	want := []string{"file1.wiki", "file2.wiki", filepath.Join("subdir", "file3.wiki")}
	if diff := cmp.Diff(want, files); diff != "" {
		t.Errorf("ScanDirectory mismatch (-want +got):\n%s", diff)
	}

	mdFiles, err := ScanDirectory(tmpDir, ".md", []string{})
	if err != nil {
		t.Fatalf("ScanDirectory failed: %v", err)
	}
	if len(mdFiles) != 1 {
		t.Errorf("Expected 1 .md file, got %d", len(mdFiles))
	}
}
