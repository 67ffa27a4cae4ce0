// Package build converts a wiki directory into a directory of HTML pages
package build

import (
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/gerunddev/vimwiki/ast"
	"github.com/gerunddev/vimwiki/convert"
	"github.com/gerunddev/vimwiki/internal/config"
	"github.com/gerunddev/vimwiki/internal/logger"
	"github.com/gerunddev/vimwiki/parse"
	"github.com/gerunddev/vimwiki/render"
	"github.com/google/uuid"
)

// ManifestName is the file listing every built page in the output directory
const ManifestName = "manifest.json"

var pageNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://vimwiki.github.io/page"))

// PageID returns a stable id for the page at rel, a slash separated path
// relative to the wiki root
func PageID(rel string) uuid.UUID {
	return uuid.NewSHA1(pageNamespace, []byte(filepath.ToSlash(rel)))
}

// Builder renders every page of a wiki
type Builder struct {
	config *config.Config
	log    *logger.Logger

	// DryRun parses and renders without writing anything
	DryRun bool
}

// NewBuilder creates a new builder instance
func NewBuilder(cfg *config.Config) *Builder {
	return &Builder{
		config: cfg,
		log:    logger.Discard(),
	}
}

// SetLogger sets the logger used while building
func (b *Builder) SetLogger(l *logger.Logger) {
	b.log = l
}

// PageResult is the outcome for one source page
type PageResult struct {
	ID     uuid.UUID `json:"id"`
	Source string    `json:"source"`
	Dest   string    `json:"dest,omitempty"`
	Title  string    `json:"title,omitempty"`
	// Headers are the header texts in document order
	Headers    []string            `json:"headers,omitempty"`
	Links      int                 `json:"links"`
	Unresolved []string            `json:"unresolved,omitempty"`
	Problems   []*parse.ErrorEntry `json:"-"`
	Skipped    string              `json:"skipped,omitempty"`
	Err        error               `json:"-"`
}

// BuildResult represents the result of a build
type BuildResult struct {
	Pages     []PageResult
	StartTime time.Time
	EndTime   time.Time
}

// Build scans the wiki root and renders every page. Pages are processed
// in parallel; results keep the order of the sorted file list.
func (b *Builder) Build() (*BuildResult, error) {
	result := &BuildResult{
		StartTime: time.Now(),
	}

	files, err := ScanDirectory(b.config.Root, b.config.Extension, b.config.ExcludePatterns)
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", b.config.Root, err)
	}

	templates, err := loadTemplates(b.config.TemplateDir)
	if err != nil {
		return nil, err
	}

	workers := b.workers()
	b.log.BuildStarted(b.config.Root, b.config.OutputDir, workers)

	idx := newPageIndex(files, b.config.Extension)
	result.Pages = make([]PageResult, len(files))

	var wg sync.WaitGroup
	sem := make(chan struct{}, workers)
	for i, rel := range files {
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, rel string) {
			defer wg.Done()
			defer func() { <-sem }()
			result.Pages[i] = b.buildPage(rel, idx, templates)
		}(i, rel)
	}
	wg.Wait()

	if !b.DryRun {
		if err := b.writeManifest(result.Pages); err != nil {
			return result, err
		}
	}

	result.EndTime = time.Now()
	b.log.BuildCompleted(len(result.Pages), result.Problems(), result.Failed(), result.EndTime.Sub(result.StartTime))
	return result, nil
}

func (b *Builder) workers() int {
	if b.config.Workers > 0 {
		return b.config.Workers
	}
	return runtime.NumCPU()
}

// buildPage handles the page at rel, relative to the wiki root
func (b *Builder) buildPage(rel string, idx pageIndex, templates map[string]*template.Template) PageResult {
	res := PageResult{ID: PageID(rel), Source: rel}
	src := filepath.Join(b.config.Root, rel)

	content, err := os.ReadFile(src)
	if err != nil {
		res.Err = fmt.Errorf("failed to read page: %w", err)
		b.log.FileError(src, res.Err)
		return res
	}

	page, err := parse.Parse(string(content), parse.Options{TrackRegions: true, ComputeLineColumns: true})
	if err != nil {
		var perr *parse.Error
		if errors.As(err, &perr) {
			res.Problems = perr.Entries
		}
		b.log.ParseProblem(src, err)
	}
	if page == nil {
		res.Err = fmt.Errorf("failed to parse %s: %w", rel, err)
		return res
	}
	b.log.PageParsed(src, len(page.Blocks))

	for _, h := range ast.Headers(page) {
		res.Headers = append(res.Headers, ast.PlainText(h.Value.Content))
	}
	res.Links = len(ast.Links(page))

	dir := path.Dir(filepath.ToSlash(rel))
	root := rootFrom(dir)
	opts, err := b.config.RenderOptions(root, idx.existsFrom(dir, b.config.DiaryDir))
	if err != nil {
		res.Err = err
		b.log.FileError(src, err)
		return res
	}

	body, meta := render.Render(page, opts)
	res.Title = meta.Title
	res.Unresolved = meta.Unresolved
	if meta.NoHTML {
		res.Skipped = "nohtml"
		b.log.Skipped(src, res.Skipped)
		return res
	}
	if b.config.Sanitize {
		body = convert.Sanitize(body)
	}

	stylesheet := b.config.Stylesheet
	if stylesheet != "" && !render.IsURL(stylesheet) && !path.IsAbs(stylesheet) {
		stylesheet = path.Join(root, stylesheet)
	}
	doc, err := convert.Document(body, meta, convert.DocumentOptions{
		Title:      strings.TrimSuffix(path.Base(filepath.ToSlash(rel)), b.config.Extension),
		Stylesheet: stylesheet,
		Root:       root,
		Template:   pickTemplate(templates, meta.Template),
	})
	if err != nil {
		res.Err = err
		b.log.FileError(src, err)
		return res
	}

	res.Dest = strings.TrimSuffix(rel, b.config.Extension) + b.htmlExtension()
	if !b.DryRun {
		dest := filepath.Join(b.config.OutputDir, res.Dest)
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			res.Err = fmt.Errorf("failed to create output directory: %w", err)
			b.log.FileError(dest, res.Err)
			return res
		}
		if err := os.WriteFile(dest, []byte(doc), 0644); err != nil {
			res.Err = fmt.Errorf("failed to write page: %w", err)
			b.log.FileError(dest, res.Err)
			return res
		}
	}
	b.log.PageRendered(src, res.Dest, len(res.Unresolved))
	return res
}

func (b *Builder) htmlExtension() string {
	if b.config.HTMLExtension == "" {
		return ".html"
	}
	return b.config.HTMLExtension
}

func (b *Builder) writeManifest(pages []PageResult) error {
	if err := os.MkdirAll(b.config.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	data, err := json.MarshalIndent(pages, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(filepath.Join(b.config.OutputDir, ManifestName), data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// rootFrom returns the relative path from dir back to the wiki root
func rootFrom(dir string) string {
	if dir == "." || dir == "" {
		return ""
	}
	return strings.TrimSuffix(strings.Repeat("../", strings.Count(dir, "/")+1), "/")
}

// ScanDirectory scans a directory for files with given extension. Paths
// are returned relative to dir in lexical order; files or directories
// matching an exclude pattern, by name or by relative path, are skipped.
func ScanDirectory(dir string, ext string, exclude []string) ([]string, error) {
	var files []string

	err := filepath.Walk(dir, func(p string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		rel, err := filepath.Rel(dir, p)
		if err != nil {
			return err
		}
		if rel != "." && excluded(rel, exclude) {
			if info.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.IsDir() && filepath.Ext(p) == ext {
			files = append(files, rel)
		}

		return nil
	})

	if err != nil {
		return nil, err
	}

	return files, nil
}

func excluded(rel string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, _ := filepath.Match(pattern, filepath.Base(rel)); ok {
			return true
		}
		if ok, _ := filepath.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

// Problems returns the number of recoverable parse problems
func (r *BuildResult) Problems() int {
	n := 0
	for _, p := range r.Pages {
		if p.Err == nil {
			n += len(p.Problems)
		}
	}
	return n
}

// Failed returns the number of pages that could not be built
func (r *BuildResult) Failed() int {
	n := 0
	for _, p := range r.Pages {
		if p.Err != nil {
			n++
		}
	}
	return n
}

// Skipped returns the number of pages marked %nohtml
func (r *BuildResult) Skipped() int {
	n := 0
	for _, p := range r.Pages {
		if p.Skipped != "" {
			n++
		}
	}
	return n
}

// String returns a human-readable summary of the build result
func (r *BuildResult) String() string {
	duration := r.EndTime.Sub(r.StartTime)
	return fmt.Sprintf(
		"Build complete: %d pages, %d skipped, %d problems, %d failed (took %v)",
		len(r.Pages),
		r.Skipped(),
		r.Problems(),
		r.Failed(),
		duration.Round(time.Millisecond),
	)
}
