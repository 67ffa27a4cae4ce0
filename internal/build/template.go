package build

import (
	"html/template"
	"os"
	"path/filepath"
	"strings"

	"github.com/gerunddev/vimwiki/convert"
)

// defaultTemplateName is used for pages without a %template placeholder
const defaultTemplateName = "default"

// loadTemplates reads every .tpl file in dir, keyed by name without
// extension. A missing or empty dir yields no templates.
func loadTemplates(dir string) (map[string]*template.Template, error) {
	templates := map[string]*template.Template{}
	if dir == "" {
		return templates, nil
	}

	matches, err := filepath.Glob(filepath.Join(dir, "*.tpl"))
	if err != nil {
		return nil, err
	}
	for _, m := range matches {
		data, err := os.ReadFile(m)
		if err != nil {
			return nil, err
		}
		name := strings.TrimSuffix(filepath.Base(m), ".tpl")
		t, err := convert.ParseTemplate(name, string(data))
		if err != nil {
			return nil, err
		}
		templates[name] = t
	}
	return templates, nil
}

// pickTemplate returns the named template, the default one, or nil for the
// built-in document
func pickTemplate(templates map[string]*template.Template, name string) *template.Template {
	if t, ok := templates[name]; ok && name != "" {
		return t
	}
	return templates[defaultTemplateName]
}
