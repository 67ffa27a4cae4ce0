package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/adrg/xdg"
	"github.com/gerunddev/vimwiki/ast"
	"github.com/gerunddev/vimwiki/internal/highlight"
	"github.com/gerunddev/vimwiki/internal/logger"
	"github.com/gerunddev/vimwiki/render"
	"gopkg.in/yaml.v3"
)

// Config represents the vimwiki configuration
type Config struct {
	Root            string   `json:"root" toml:"root" yaml:"root"`
	Extension       string   `json:"extension" toml:"extension" yaml:"extension"`
	OutputDir       string   `json:"output_dir" toml:"output_dir" yaml:"output_dir"`
	LogFile         string   `json:"log_file" toml:"log_file" yaml:"log_file"`
	LogLevel        string   `json:"log_level,omitempty" toml:"log_level" yaml:"log_level,omitempty"`
	Workers         int      `json:"workers,omitempty" toml:"workers" yaml:"workers,omitempty"`
	ExcludePatterns []string `json:"exclude_patterns,omitempty" toml:"exclude_patterns" yaml:"exclude_patterns,omitempty"`

	// Links
	HTMLExtension string            `json:"html_extension" toml:"html_extension" yaml:"html_extension"`
	DiaryDir      string            `json:"diary_dir" toml:"diary_dir" yaml:"diary_dir"`
	Wikis         map[string]string `json:"wikis,omitempty" toml:"wikis" yaml:"wikis,omitempty"`
	Indexed       []string          `json:"indexed,omitempty" toml:"indexed" yaml:"indexed,omitempty"`

	// Rendering
	IncludeComments bool   `json:"include_comments" toml:"include_comments" yaml:"include_comments"`
	HardLineBreaks  bool   `json:"hard_line_breaks" toml:"hard_line_breaks" yaml:"hard_line_breaks"`
	UnresolvedClass string `json:"unresolved_class" toml:"unresolved_class" yaml:"unresolved_class"`
	TOCHeader       string `json:"toc_header" toml:"toc_header" yaml:"toc_header"`
	HighlightStyle  string `json:"highlight_style,omitempty" toml:"highlight_style" yaml:"highlight_style,omitempty"`
	Sanitize        bool   `json:"sanitize" toml:"sanitize" yaml:"sanitize"`
	Stylesheet      string `json:"stylesheet,omitempty" toml:"stylesheet" yaml:"stylesheet,omitempty"`
	TemplateDir     string `json:"template_dir,omitempty" toml:"template_dir" yaml:"template_dir,omitempty"`
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	home, _ := os.UserHomeDir()
	return &Config{
		Root:            filepath.Join(home, "vimwiki"),
		Extension:       ".wiki",
		OutputDir:       filepath.Join(home, "vimwiki_html"),
		LogFile:         filepath.Join(xdg.StateHome, "vimwiki", "vimwiki.log"),
		LogLevel:        "info",
		ExcludePatterns: []string{},
		HTMLExtension:   ".html",
		DiaryDir:        "diary",
		UnresolvedClass: "unresolved",
		TOCHeader:       "Contents",
		HighlightStyle:  "monokai",
	}
}

// ConfigPath returns the path to the config file
// Uses ~/.config on all platforms for consistency
// Can be overridden for testing
var ConfigPath = func() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(xdg.ConfigHome, "vimwiki", "config.json")
	}
	return filepath.Join(home, ".config", "vimwiki", "config.json")
}

// Load reads configuration from ConfigPath, falling back to defaults when
// the file does not exist
func Load() (*Config, error) {
	cfg, err := LoadFile(ConfigPath())
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

// LoadFile reads configuration from path. The format follows the
// extension: .toml, .yaml and .yml are accepted, anything else is JSON.
// Keys missing from the file keep their default values.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := DefaultConfig()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, cfg)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, cfg)
	default:
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.ExcludePatterns == nil {
		cfg.ExcludePatterns = []string{}
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.ExpandPaths(); err != nil {
		return nil, fmt.Errorf("failed to expand paths: %w", err)
	}

	return cfg, nil
}

// Save writes configuration to ConfigPath as JSON
func (c *Config) Save() error {
	configPath := ConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Root == "" {
		return fmt.Errorf("root cannot be empty")
	}
	if c.OutputDir == "" {
		return fmt.Errorf("output_dir cannot be empty")
	}
	if !strings.HasPrefix(c.Extension, ".") {
		return fmt.Errorf("invalid extension '%s': must start with a dot", c.Extension)
	}
	if c.HTMLExtension != "" && !strings.HasPrefix(c.HTMLExtension, ".") {
		return fmt.Errorf("invalid html_extension '%s': must start with a dot", c.HTMLExtension)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers cannot be negative")
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if c.HighlightStyle != "" && !highlight.ValidStyle(c.HighlightStyle) {
		return fmt.Errorf("invalid highlight_style '%s'", c.HighlightStyle)
	}
	for _, pattern := range c.ExcludePatterns {
		if _, err := filepath.Match(pattern, ""); err != nil {
			return fmt.Errorf("invalid exclude pattern '%s': %w", pattern, err)
		}
	}
	return nil
}

// ExpandPaths expands any ~ or relative paths to absolute paths
func (c *Config) ExpandPaths() error {
	var err error

	c.Root, err = expandPath(c.Root)
	if err != nil {
		return fmt.Errorf("failed to expand root: %w", err)
	}

	c.OutputDir, err = expandPath(c.OutputDir)
	if err != nil {
		return fmt.Errorf("failed to expand output_dir: %w", err)
	}

	c.LogFile, err = expandPath(c.LogFile)
	if err != nil {
		return fmt.Errorf("failed to expand log_file: %w", err)
	}

	c.TemplateDir, err = expandPath(c.TemplateDir)
	if err != nil {
		return fmt.Errorf("failed to expand template_dir: %w", err)
	}

	return nil
}

// RenderOptions builds renderer options for a page. root is the relative
// path from the page's directory back to the wiki root, empty for pages at
// the top. exists reports whether a linked page has a source file and may
// be nil.
func (c *Config) RenderOptions(root string, exists func(link ast.Link) bool) (render.Options, error) {
	diaryDir := c.DiaryDir
	if diaryDir == "" {
		diaryDir = "diary"
	}
	if root != "" {
		diaryDir = path.Join(root, diaryDir)
	}

	resolver := render.PathResolver{
		Extension: c.HTMLExtension,
		DiaryDir:  diaryDir,
		Wikis:     c.Wikis,
		Indexed:   c.Indexed,
		Root:      root,
		Exists:    exists,
	}

	opts := render.Options{
		IDs:             render.Slug,
		Resolver:        resolver,
		IncludeComments: c.IncludeComments,
		HardLineBreaks:  c.HardLineBreaks,
		UnresolvedClass: c.UnresolvedClass,
		TOCHeader:       c.TOCHeader,
	}

	if c.HighlightStyle != "" {
		h, err := highlight.New(c.HighlightStyle)
		if err != nil {
			return opts, err
		}
		opts.Highlighter = h
	}

	return opts, nil
}

// expandPath expands ~ to home directory and converts to absolute path
func expandPath(path string) (string, error) {
	if path == "" {
		return path, nil
	}

	if path[0] == '~' {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		if len(path) == 1 {
			return homeDir, nil
		}
		path = filepath.Join(homeDir, path[1:])
	}

	return filepath.Abs(path)
}
