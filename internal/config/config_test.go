package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gerunddev/vimwiki/ast"
	"github.com/gerunddev/vimwiki/parse"
	"github.com/gerunddev/vimwiki/render"
	"github.com/google/go-cmp/cmp"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Root == "" {
		t.Error("Expected Root to be set")
	}
	if cfg.OutputDir == "" {
		t.Error("Expected OutputDir to be set")
	}
	if cfg.LogFile == "" {
		t.Error("Expected LogFile to be set")
	}
	if cfg.Extension != ".wiki" {
		t.Errorf("Expected Extension to be .wiki, got %q", cfg.Extension)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected default config to be valid, got %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func(change func(c *Config)) *Config {
		c := DefaultConfig()
		change(c)
		return c
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "empty root",
			config:  valid(func(c *Config) { c.Root = "" }),
			wantErr: true,
		},
		{
			name:    "empty output_dir",
			config:  valid(func(c *Config) { c.OutputDir = "" }),
			wantErr: true,
		},
		{
			name:    "extension without dot",
			config:  valid(func(c *Config) { c.Extension = "wiki" }),
			wantErr: true,
		},
		{
			name:    "negative workers",
			config:  valid(func(c *Config) { c.Workers = -1 }),
			wantErr: true,
		},
		{
			name:    "unknown log level",
			config:  valid(func(c *Config) { c.LogLevel = "chatty" }),
			wantErr: true,
		},
		{
			name:    "unknown highlight style",
			config:  valid(func(c *Config) { c.HighlightStyle = "no-such-style" }),
			wantErr: true,
		},
		{
			name:    "highlighting disabled",
			config:  valid(func(c *Config) { c.HighlightStyle = "" }),
			wantErr: false,
		},
		{
			name:    "bad exclude pattern",
			config:  valid(func(c *Config) { c.ExcludePatterns = []string{"[a-"} }),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	tmpDir := t.TempDir()
	testConfigPath := filepath.Join(tmpDir, "config.json")

	// Override ConfigPath for testing
	originalConfigPath := ConfigPath
	ConfigPath = func() string {
		return testConfigPath
	}
	defer func() {
		ConfigPath = originalConfigPath
	}()

	testCfg := DefaultConfig()
	testCfg.Root = "/test/wiki"
	testCfg.OutputDir = "/test/html"
	testCfg.LogFile = "/tmp/vimwiki-test.log"
	testCfg.Workers = 3
	testCfg.Wikis = map[string]string{"Work": "https://work.example/"}

	if err := testCfg.Save(); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	if _, err := os.Stat(testConfigPath); os.IsNotExist(err) {
		t.Fatal("Config file was not created")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if diff := cmp.Diff(testCfg, loaded); diff != "" {
		t.Errorf("loaded config differs (-saved +loaded):\n%s", diff)
	}
}

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	originalConfigPath := ConfigPath
	ConfigPath = func() string {
		return filepath.Join(t.TempDir(), "missing.json")
	}
	defer func() {
		ConfigPath = originalConfigPath
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if diff := cmp.Diff(DefaultConfig(), cfg); diff != "" {
		t.Errorf("expected defaults (-want +got):\n%s", diff)
	}
}

// TestLoadFileFormats tests that every accepted format decodes to the same
// configuration
func TestLoadFileFormats(t *testing.T) {
	files := map[string]string{
		"config.json": `{
  "root": "/w",
  "output_dir": "/o",
  "workers": 2,
  "hard_line_breaks": true,
  "wikis": {"Work": "https://work.example/"}
}`,
		"config.toml": `root = "/w"
output_dir = "/o"
workers = 2
hard_line_breaks = true

[wikis]
Work = "https://work.example/"
`,
		"config.yaml": `root: /w
output_dir: /o
workers: 2
hard_line_breaks: true
wikis:
  Work: https://work.example/
`,
	}

	want := DefaultConfig()
	want.Root = "/w"
	want.OutputDir = "/o"
	want.Workers = 2
	want.HardLineBreaks = true
	want.Wikis = map[string]string{"Work": "https://work.example/"}
	if err := want.ExpandPaths(); err != nil {
		t.Fatalf("ExpandPaths() error = %v", err)
	}

	dir := t.TempDir()
	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			if err := os.WriteFile(path, []byte(content), 0644); err != nil {
				t.Fatalf("failed to write %s: %v", name, err)
			}
			got, err := LoadFile(path)
			if err != nil {
				t.Fatalf("LoadFile() error = %v", err)
			}
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("LoadFile() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestLoadFileErrors(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name    string
		file    string
		content string
		wantMsg string
	}{
		{"syntax", "bad.json", "{", "failed to parse config"},
		{"toml syntax", "bad.toml", "root = ", "failed to parse config"},
		{"invalid value", "bad.yaml", "extension: wiki\n", "invalid configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(dir, tt.file)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatalf("failed to write: %v", err)
			}
			_, err := LoadFile(path)
			if err == nil || !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("LoadFile() error = %v, want %q", err, tt.wantMsg)
			}
		})
	}
}

func TestExpandPaths(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	cfg := DefaultConfig()
	cfg.Root = "~/notes"
	cfg.OutputDir = "~"
	if err := cfg.ExpandPaths(); err != nil {
		t.Fatalf("ExpandPaths() error = %v", err)
	}
	if cfg.Root != filepath.Join(home, "notes") {
		t.Errorf("Root = %q", cfg.Root)
	}
	if cfg.OutputDir != home {
		t.Errorf("OutputDir = %q", cfg.OutputDir)
	}
}

// TestRenderOptions tests that render settings and the existence check
// reach the renderer
func TestRenderOptions(t *testing.T) {
	cfg := DefaultConfig()
	cfg.HighlightStyle = ""
	cfg.UnresolvedClass = "missing"
	cfg.HTMLExtension = ".htm"

	exists := func(link ast.Link) bool { return link.Target == "Here" }
	opts, err := cfg.RenderOptions("", exists)
	if err != nil {
		t.Fatalf("RenderOptions() error = %v", err)
	}
	if opts.Highlighter != nil {
		t.Error("expected no highlighter when highlight_style is empty")
	}

	page, err := parse.ParseString("[[Here]] [[Gone]]\n")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	out, meta := render.Render(page, opts)
	if !strings.Contains(out, `<a href="Here.htm">Here</a>`) {
		t.Errorf("missing resolved link in %q", out)
	}
	if !strings.Contains(out, `class="missing"`) {
		t.Errorf("missing unresolved class in %q", out)
	}
	if diff := cmp.Diff([]string{"Gone"}, meta.Unresolved); diff != "" {
		t.Errorf("Unresolved mismatch (-want +got):\n%s", diff)
	}

	cfg.HighlightStyle = "monokai"
	opts, err = cfg.RenderOptions("..", nil)
	if err != nil {
		t.Fatalf("RenderOptions() error = %v", err)
	}
	if opts.Highlighter == nil {
		t.Error("expected a highlighter")
	}

	page, err = parse.ParseString("[[diary:2024-01-02]] [[/index]]\n")
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	out, _ = render.Render(page, opts)
	if !strings.Contains(out, `href="../diary/2024-01-02.htm"`) {
		t.Errorf("diary link not relative to the root: %q", out)
	}
	if !strings.Contains(out, `<a href="../index.htm">/index</a>`) {
		t.Errorf("root link not relative to the root: %q", out)
	}
}
