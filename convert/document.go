package convert

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/gerunddev/vimwiki/render"
)

// DefaultTemplate wraps a page body in a minimal HTML document
const DefaultTemplate = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>{{ .Title }}</title>
{{- if .Date }}
<meta name="date" content="{{ .Date }}">
{{- end }}
{{- if .Stylesheet }}
<link rel="stylesheet" href="{{ .Stylesheet }}">
{{- end }}
</head>
<body>
{{ .Content }}
</body>
</html>
`

// DocumentDot is the data a page template is executed with
type DocumentDot struct {
	Title      string
	Date       string
	Stylesheet string
	Root       string
	Content    template.HTML
}

// DocumentOptions controls Document
type DocumentOptions struct {
	// Title is used when the page has no %title placeholder
	Title string
	// Stylesheet is linked from the head when not empty
	Stylesheet string
	// Root is the relative path from the page back to the output root,
	// made available to templates
	Root string
	// Template replaces DefaultTemplate
	Template *template.Template
}

var defaultTemplate = template.Must(template.New("page").Parse(DefaultTemplate))

// ParseTemplate parses a page template. Templates see a DocumentDot.
func ParseTemplate(name, source string) (*template.Template, error) {
	t, err := template.New(name).Parse(source)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return t, nil
}

// Document wraps a rendered body in a complete HTML page. body must already
// be safe HTML, as produced by render.Render or Sanitize.
func Document(body string, meta render.Metadata, opts DocumentOptions) (string, error) {
	dot := DocumentDot{
		Title:      meta.Title,
		Date:       meta.Date,
		Stylesheet: opts.Stylesheet,
		Root:       opts.Root,
		Content:    template.HTML(strings.TrimSuffix(body, "\n")),
	}
	if dot.Title == "" {
		dot.Title = opts.Title
	}

	t := opts.Template
	if t == nil {
		t = defaultTemplate
	}

	var b strings.Builder
	if err := t.Execute(&b, dot); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", t.Name(), err)
	}
	return b.String(), nil
}
