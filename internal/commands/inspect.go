package commands

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/gerunddev/vimwiki/ast"
	"github.com/gerunddev/vimwiki/internal/build"
	"github.com/gerunddev/vimwiki/parse"
	"gopkg.in/yaml.v3"
)

// nodeSummary is the YAML shape of one located node
type nodeSummary struct {
	Kind     string            `yaml:"kind"`
	Region   string            `yaml:"region"`
	Attrs    map[string]string `yaml:"attrs,omitempty"`
	Children []nodeSummary     `yaml:"children,omitempty"`
}

// pageSummary is the YAML document printed by inspect
type pageSummary struct {
	ID     string        `yaml:"id"`
	Source string        `yaml:"source"`
	Blocks []nodeSummary `yaml:"blocks"`
}

// Inspect prints the tree of a page as YAML
func Inspect(args []string) {
	if err := runInspect(args, os.Stdin, os.Stdout); err != nil {
		fail(err)
	}
}

func runInspect(args []string, stdin io.Reader, stdout io.Writer) error {
	o, err := parseArgs(args, nil, nil)
	if err != nil {
		return err
	}
	if len(o.args) != 1 {
		return fmt.Errorf("usage: vimwiki inspect <page.wiki|->")
	}
	path := o.args[0]
	src, err := readSource(path, stdin)
	if err != nil {
		return err
	}

	page, err := parse.Parse(src, parse.Options{TrackRegions: true, ComputeLineColumns: true})
	if page == nil {
		return err
	}

	data, err := inspectPage(path, page)
	if err != nil {
		return err
	}
	_, err = stdout.Write(data)
	return err
}

// inspectPage encodes the page tree as YAML
func inspectPage(path string, page *ast.Page) ([]byte, error) {
	doc := pageSummary{Source: path, ID: build.PageID(path).String()}
	for _, b := range page.Blocks {
		doc.Blocks = append(doc.Blocks, summarize(ast.Node{Value: b.Value, Region: b.Region}))
	}

	var b strings.Builder
	enc := yaml.NewEncoder(&b)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to encode page: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

func summarize(n ast.Node) nodeSummary {
	s := nodeSummary{
		Kind:   strings.TrimPrefix(fmt.Sprintf("%T", n.Value), "ast."),
		Region: n.Region.String(),
		Attrs:  attrs(n.Value),
	}
	for _, c := range ast.Children(n.Value) {
		s.Children = append(s.Children, summarize(c))
	}
	return s
}

func attrs(v any) map[string]string {
	m := map[string]string{}
	switch v := v.(type) {
	case ast.Header:
		m["level"] = fmt.Sprint(v.Level)
		if v.Centered {
			m["centered"] = "true"
		}
	case ast.List:
		m["kind"] = v.Kind.String()
	case ast.ListItem:
		m["marker"] = v.Marker
		if v.Checkbox != ast.NoCheckbox {
			m["checkbox"] = v.Checkbox.String()
		}
	case ast.CodeBlock:
		if v.Language != "" {
			m["language"] = v.Language
		}
		m["lines"] = fmt.Sprint(len(v.Lines))
	case ast.MathBlock:
		if v.Environment != "" {
			m["environment"] = v.Environment
		}
		m["lines"] = fmt.Sprint(len(v.Lines))
	case ast.Placeholder:
		m["name"] = v.Keyword()
		if v.Value != "" {
			m["value"] = v.Value
		}
	case ast.Text:
		m["value"] = v.Value
	case ast.Decorated:
		m["decoration"] = v.Decoration.String()
	case ast.Link:
		m["link"] = v.Kind.String()
		if v.Target != "" {
			m["target"] = v.Target
		}
		if v.Anchor != "" {
			m["anchor"] = v.Anchor
		}
		if v.Wiki != "" {
			m["wiki"] = v.Wiki
		}
	case ast.Tag:
		m["names"] = strings.Join(v.Names, ":")
	case ast.Math:
		m["value"] = v.Value
	case ast.Keyword:
		m["word"] = v.Word
	case ast.Comment:
		m["content"] = v.Content
	case ast.Cell:
		if v.Span != ast.NoSpan {
			m["span"] = v.Span.String()
		}
	}
	if len(m) == 0 {
		return nil
	}
	return m
}
