// Package convert pairs the parser with the renderer and the serializer
// for callers that work on whole sources
package convert

import (
	"errors"

	"github.com/gerunddev/vimwiki/parse"
	"github.com/gerunddev/vimwiki/render"
	"github.com/gerunddev/vimwiki/serialize"
	"github.com/microcosm-cc/bluemonday"
)

// ToHTML parses src and renders it. Recoverable parse problems are returned
// as a *parse.Error together with the output. When the parse is aborted the
// output is empty.
func ToHTML(src string, opts render.Options) (string, render.Metadata, error) {
	page, err := parse.ParseString(src)
	if page == nil {
		return "", render.Metadata{}, err
	}
	out, meta := render.Render(page, opts)
	return out, meta, err
}

// Reformat rewrites src in canonical markup. Like ToHTML it returns
// recoverable problems alongside the result; blocks with problems keep
// their text.
func Reformat(src string) (string, error) {
	page, err := parse.ParseString(src)
	if page == nil {
		return "", err
	}
	return serialize.Page(page), err
}

// Fatal reports whether err means the source could not be parsed at all
func Fatal(err error) bool {
	var perr *parse.Error
	if errors.As(err, &perr) {
		return perr.Fatal()
	}
	return err != nil
}

var policy = newPolicy()

func newPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowAttrs("class").Globally()
	p.AllowAttrs("id").OnElements("h1", "h2", "h3", "h4", "h5", "h6", "span")
	p.AllowAttrs("type", "start").OnElements("ol")
	p.AllowAttrs("rowspan", "colspan").OnElements("td", "th")
	p.AllowStyles("text-align").MatchingEnum("left", "center", "right").OnElements("td", "th")
	p.AllowStyles("color", "background-color", "font-weight", "font-style", "text-decoration").
		OnElements("pre", "span")
	return p
}

// Sanitize strips everything from rendered HTML that could run script or
// load remote content other than images and links. Transcluded documents
// rendered as <object> are removed.
func Sanitize(html string) string {
	return policy.Sanitize(html)
}
