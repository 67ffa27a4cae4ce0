package render

import (
	"fmt"
	"net/url"
	"path"
	"strings"

	"github.com/gerunddev/vimwiki/ast"
)

// Resolution is where a link points and whether the target exists
type Resolution struct {
	URL    string
	Exists bool
}

// LinkResolver maps wiki, indexed wiki, diary and interwiki links to URLs.
// The anchor of the link is appended by the renderer.
type LinkResolver interface {
	Resolve(link ast.Link) (Resolution, error)
}

// LinkResolverFunc adapts a function to LinkResolver
type LinkResolverFunc func(link ast.Link) (Resolution, error)

// Resolve calls f(link)
func (f LinkResolverFunc) Resolve(link ast.Link) (Resolution, error) {
	return f(link)
}

// PathResolver resolves links to relative paths. Targets that already
// are URLs are returned unchanged.
type PathResolver struct {
	// Extension is appended to page targets, ".html" when empty
	Extension string
	// DiaryDir holds diary pages, "diary" when empty
	DiaryDir string
	// Wikis maps interwiki names to base URLs
	Wikis map[string]string
	// Indexed lists the base URL of each numbered wiki
	Indexed []string
	// Root is the path from the rendered page to the wiki root, used
	// for wiki targets starting with "/"
	Root string
	// Exists reports whether a page target exists. Nil means every
	// target exists.
	Exists func(link ast.Link) bool
}

// Resolve implements LinkResolver
func (p PathResolver) Resolve(link ast.Link) (Resolution, error) {
	if IsURL(link.Target) {
		return Resolution{URL: link.Target, Exists: true}, nil
	}

	ext := p.Extension
	if ext == "" {
		ext = ".html"
	}
	page := link.Target
	if page != "" && !strings.HasSuffix(page, "/") {
		page += ext
	}

	var base string
	switch link.Kind {
	case ast.WikiLink:
		if strings.HasPrefix(page, "/") {
			page = strings.TrimLeft(page, "/")
			base = p.Root
			if base == "" {
				base = "."
			}
		}
	case ast.DiaryLink:
		base = p.DiaryDir
		if base == "" {
			base = "diary"
		}
	case ast.IndexedWikiLink:
		if link.Index < 0 || link.Index >= len(p.Indexed) {
			return Resolution{}, fmt.Errorf("no wiki with index %d", link.Index)
		}
		base = p.Indexed[link.Index]
	case ast.InterwikiLink:
		b, ok := p.Wikis[link.Wiki]
		if !ok {
			return Resolution{}, fmt.Errorf("unknown wiki %q", link.Wiki)
		}
		base = b
	default:
		return Resolution{}, fmt.Errorf("cannot resolve %s link", link.Kind)
	}

	target := page
	if base != "" {
		target = strings.TrimSuffix(base, "/") + "/" + page
		if !IsURL(base) {
			target = path.Clean(target)
			if strings.HasSuffix(page, "/") {
				target += "/"
			}
		}
	}

	exists := p.Exists == nil || p.Exists(link)
	return Resolution{URL: escapePath(target), Exists: exists}, nil
}

// IsURL reports whether s is an absolute `scheme://` or `mailto:` URL
func IsURL(s string) bool {
	if strings.HasPrefix(s, "mailto:") {
		return true
	}
	u, err := url.Parse(s)
	return err == nil && u.Scheme != "" && strings.HasPrefix(s[len(u.Scheme):], "://")
}

// escapePath percent-encodes a relative path, leaving URLs alone
func escapePath(p string) string {
	if IsURL(p) {
		return p
	}
	return (&url.URL{Path: p}).EscapedPath()
}
