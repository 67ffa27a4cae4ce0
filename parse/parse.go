// Package parse turns vimwiki markup into an ast.Page.
//
// Parsing is line oriented. Each position tries the block rules in a fixed
// priority order and the first match wins; the text of every block is
// then scanned for inline elements. Problems local to one block degrade
// that block to a paragraph and are reported alongside the page. An
// unterminated fence aborts the parse.
package parse

import (
	"strings"

	"github.com/gerunddev/vimwiki/ast"
	"github.com/gerunddev/vimwiki/region"
)

// Options controls how regions are attached to the tree
type Options struct {
	// TrackRegions attaches source spans to every node. When false all
	// regions are zero.
	TrackRegions bool
	// ComputeLineColumns fills Line and Column of every region
	ComputeLineColumns bool
}

// DefaultOptions tracks regions without line/column information
func DefaultOptions() Options {
	return Options{TrackRegions: true}
}

// Parse parses src. When src has problems that only affect single blocks,
// the returned page is complete with those blocks degraded to paragraphs
// and err is a *Error listing the problems. When a fenced block is never
// closed the page is nil.
func Parse(src string, opts Options) (*ast.Page, error) {
	p := newParser(src, opts)
	blocks := p.blocks(splitLines(src), scopePage)
	if p.fatal {
		return nil, p.err()
	}
	page := &ast.Page{Blocks: blocks, Source: src}
	if err := p.err(); err != nil {
		return page, err
	}
	return page, nil
}

// ParseString parses src with DefaultOptions
func ParseString(src string) (*ast.Page, error) {
	return Parse(src, DefaultOptions())
}

type parser struct {
	src     string
	opts    Options
	index   *region.Index
	entries []*ErrorEntry
	fatal   bool
}

func newParser(src string, opts Options) *parser {
	return &parser{src: src, opts: opts}
}

func (p *parser) lineIndex() *region.Index {
	if p.index == nil {
		p.index = region.NewIndex(p.src)
	}
	return p.index
}

// span returns the region [start, end) honouring the options
func (p *parser) span(start, end int) region.Region {
	if !p.opts.TrackRegions {
		return region.Region{}
	}
	r := region.Span(start, end)
	if p.opts.ComputeLineColumns {
		r = p.lineIndex().Locate(r)
	}
	return r
}

func (p *parser) report(kind Kind, start, end int, msg string) {
	r := p.lineIndex().Locate(region.Span(start, end))
	p.entries = append(p.entries, &ErrorEntry{Kind: kind, Message: msg, Region: r})
	if kind == UnterminatedBlock {
		p.fatal = true
	}
}

func (p *parser) err() error {
	if len(p.entries) == 0 {
		return nil
	}
	return &Error{Entries: p.entries}
}

// line is one source line without its terminator
type line struct {
	text  string
	start int
}

func splitLines(src string) []line {
	var lines []line
	start := 0
	for start < len(src) {
		end := strings.IndexByte(src[start:], '\n')
		if end < 0 {
			end = len(src)
		} else {
			end += start
		}
		lines = append(lines, line{text: strings.TrimSuffix(src[start:end], "\r"), start: start})
		start = end + 1
	}
	return lines
}

func (l line) blank() bool {
	return strings.TrimSpace(l.text) == ""
}

// indent returns the number of leading space and tab bytes
func (l line) indent() int {
	n := 0
	for n < len(l.text) && (l.text[n] == ' ' || l.text[n] == '\t') {
		n++
	}
	return n
}

// trimmed returns the line without surrounding whitespace
func (l line) trimmed() string {
	return strings.TrimSpace(l.text)
}

// contentStart and contentEnd bound the trimmed text
func (l line) contentStart() int {
	return l.start + l.indent()
}

func (l line) contentEnd() int {
	return l.start + len(strings.TrimRight(l.text, " \t"))
}

func (l line) end() int {
	return l.start + len(l.text)
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t'
}
