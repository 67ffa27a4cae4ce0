// Package diff shows how formatting would change a page
package diff

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/glamour"
	"github.com/gerunddev/vimwiki/convert"
	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Generate returns a unified diff from before to after. The result is
// empty when the two are equal.
func Generate(name, before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(name, name+" (formatted)", before, edits))
}

// File diffs a page on disk against its canonical form. The formatted
// text is returned too so callers can write it back.
func File(path string) (unified, formatted string, err error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return "", "", fmt.Errorf("failed to read page: %w", err)
	}

	formatted, err = convert.Reformat(string(content))
	if convert.Fatal(err) {
		return "", "", fmt.Errorf("failed to format %s: %w", path, err)
	}

	return Generate(filepath.Base(path), string(content), formatted), formatted, nil
}

// Render formats a unified diff for the terminal. Plain text is returned
// when glamour cannot render it.
func Render(unified string) string {
	if unified == "" {
		return ""
	}

	// Wrap in a diff fence so additions and removals get colored
	diffMarkdown := fmt.Sprintf("```diff\n%s```\n", unified)

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(120),
	)
	if err != nil {
		return unified
	}

	rendered, err := renderer.Render(diffMarkdown)
	if err != nil {
		return unified
	}

	return rendered
}
