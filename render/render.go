// Package render turns an ast.Page into HTML.
//
// Rendering is a single pass over the tree. Link targets and code
// highlighting are delegated to the LinkResolver and CodeHighlighter in
// Options; the renderer itself never touches the file system. Rendering
// the same page with the same options always produces the same bytes.
package render

import (
	"strings"

	"github.com/gerunddev/vimwiki/ast"
)

// HeaderIDStrategy computes the base id of a header from its plain text.
// Collisions are resolved by the renderer.
type HeaderIDStrategy func(text string) string

// CodeHighlighter turns the raw lines of a code block into an HTML
// fragment
type CodeHighlighter interface {
	Highlight(lang string, lines []string) (string, error)
}

// Options controls rendering
type Options struct {
	// IDs computes header ids, Slug when nil
	IDs HeaderIDStrategy
	// Resolver maps wiki, diary and interwiki links to URLs. When nil a
	// PathResolver with default settings is used.
	Resolver LinkResolver
	// Highlighter renders code blocks. When nil, or when it fails, code
	// is emitted as escaped text.
	Highlighter CodeHighlighter
	// IncludeComments emits comments as HTML comments
	IncludeComments bool
	// HardLineBreaks turns paragraph line breaks into <br />
	HardLineBreaks bool
	// UnresolvedClass is added to links whose target does not exist
	UnresolvedClass string
	// TOCHeader is the text of the level one header holding the table
	// of contents. Empty disables the special case.
	TOCHeader string
}

// DefaultOptions returns the options used by Render when fields are unset
func DefaultOptions() Options {
	return Options{
		IDs:             Slug,
		Resolver:        PathResolver{},
		UnresolvedClass: "unresolved",
		TOCHeader:       "Contents",
	}
}

// Metadata is everything extracted from placeholders, plus the links the
// resolver could not resolve
type Metadata struct {
	Title    string
	Date     string
	Template string
	NoHTML   bool
	// Other holds unknown placeholders in document order
	Other []ast.Placeholder
	// Unresolved lists link targets that do not exist, first occurrence
	// first
	Unresolved []string
}

// Render renders page as an HTML fragment
func Render(page *ast.Page, opts Options) (string, Metadata) {
	r := newRenderer(opts)
	if page != nil {
		r.blocks(page.Blocks)
	}
	return r.out.String(), r.meta
}

type renderer struct {
	opts       Options
	out        strings.Builder
	meta       Metadata
	ids        idSet
	unresolved map[string]bool
}

func newRenderer(opts Options) *renderer {
	def := DefaultOptions()
	if opts.IDs == nil {
		opts.IDs = def.IDs
	}
	if opts.Resolver == nil {
		opts.Resolver = def.Resolver
	}
	if opts.UnresolvedClass == "" {
		opts.UnresolvedClass = def.UnresolvedClass
	}
	return &renderer{opts: opts, ids: idSet{}, unresolved: map[string]bool{}}
}

func (r *renderer) write(parts ...string) {
	for _, p := range parts {
		r.out.WriteString(p)
	}
}

func (r *renderer) flagUnresolved(target string) {
	if r.unresolved[target] {
		return
	}
	r.unresolved[target] = true
	r.meta.Unresolved = append(r.meta.Unresolved, target)
}
