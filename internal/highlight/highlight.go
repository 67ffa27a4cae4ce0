// Package highlight colors code blocks with chroma
package highlight

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrNoLexer is returned for languages chroma does not know. The renderer
// falls back to plain code in that case.
var ErrNoLexer = errors.New("no lexer for language")

// Highlighter implements render.CodeHighlighter
type Highlighter struct {
	style     *chroma.Style
	formatter *html.Formatter
}

// New returns a highlighter using the named chroma style. Colors are
// written as inline styles so pages need no extra stylesheet.
func New(style string) (*Highlighter, error) {
	s, ok := styles.Registry[strings.ToLower(style)]
	if !ok {
		return nil, fmt.Errorf("unknown highlight style '%s'", style)
	}
	return &Highlighter{
		style:     s,
		formatter: html.New(html.WithClasses(false), html.TabWidth(4)),
	}, nil
}

// ValidStyle reports whether chroma has a style with the given name
func ValidStyle(name string) bool {
	_, ok := styles.Registry[strings.ToLower(name)]
	return ok
}

// Highlight renders lines as a highlighted <pre> block
func (h *Highlighter) Highlight(lang string, lines []string) (string, error) {
	if lang == "" {
		return "", ErrNoLexer
	}
	lexer := lexers.Get(lang)
	if lexer == nil {
		return "", fmt.Errorf("%w: %s", ErrNoLexer, lang)
	}
	lexer = chroma.Coalesce(lexer)

	it, err := lexer.Tokenise(nil, strings.Join(lines, "\n"))
	if err != nil {
		return "", fmt.Errorf("failed to tokenise %s: %w", lang, err)
	}

	var b strings.Builder
	if err := h.formatter.Format(&b, h.style, it); err != nil {
		return "", fmt.Errorf("failed to format %s: %w", lang, err)
	}
	return strings.TrimSuffix(b.String(), "\n"), nil
}
