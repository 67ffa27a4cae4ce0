package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/gerunddev/vimwiki/ast"
)

var (
	indexedPattern   = regexp.MustCompile(`^wiki(\d+):`)
	interwikiPattern = regexp.MustCompile(`^wn\.([^:\s]+):`)
)

// rawSchemes are the URL schemes recognised outside brackets
var rawSchemes = []string{"https://", "http://", "ftp://", "file://", "mailto:"}

func (sc *inlineScanner) wikiLink(i int) int {
	s := sc.s
	if sc.inDesc || !strings.HasPrefix(s[i:], "[[") {
		return 0
	}
	k := strings.Index(s[i+2:], "]]")
	if k < 0 {
		return 0
	}
	end := i + 2 + k + 2
	link, ok := sc.p.wikiLink(s[i+2:i+2+k], sc.base+i+2)
	if !ok {
		sc.p.report(MalformedLink, sc.base+i, sc.base+end, "link has no target")
		return sc.skip(i, end)
	}
	return sc.emit(link, i, end)
}

// wikiLink parses the text between `[[` and `]]`, which starts at base
func (p *parser) wikiLink(inner string, base int) (ast.Link, bool) {
	target, desc, hasDesc := strings.Cut(inner, "|")
	link := ast.Link{Kind: ast.WikiLink}
	prefixed := true
	switch {
	case strings.HasPrefix(target, "diary:"):
		link.Kind = ast.DiaryLink
		target = strings.TrimPrefix(target, "diary:")
	case indexedPattern.MatchString(target):
		m := indexedPattern.FindStringSubmatch(target)
		n, err := strconv.Atoi(m[1])
		if err != nil {
			return ast.Link{}, false
		}
		link.Kind = ast.IndexedWikiLink
		link.Index = n
		target = target[len(m[0]):]
	case interwikiPattern.MatchString(target):
		m := interwikiPattern.FindStringSubmatch(target)
		link.Kind = ast.InterwikiLink
		link.Wiki = m[1]
		target = target[len(m[0]):]
	default:
		prefixed = false
	}

	if page, anchor, ok := strings.Cut(target, "#"); ok {
		target = page
		link.Anchor = anchor
	}
	link.Target = target
	if strings.TrimSpace(link.Target) == "" {
		if prefixed || strings.TrimSpace(link.Anchor) == "" {
			return ast.Link{}, false
		}
	}
	if hasDesc && desc != "" {
		link.Description = p.inlines(desc, base+len(inner)-len(desc), true)
	}
	return link, true
}

func (sc *inlineScanner) transclusion(i int) int {
	s := sc.s
	if !strings.HasPrefix(s[i:], "{{") {
		return 0
	}
	k := strings.Index(s[i+2:], "}}")
	if k < 0 {
		return 0
	}
	end := i + 2 + k + 2
	inner := s[i+2 : i+2+k]
	parts := strings.SplitN(inner, "|", 3)
	if strings.TrimSpace(parts[0]) == "" {
		sc.p.report(MalformedLink, sc.base+i, sc.base+end, "transclusion has no URL")
		return sc.skip(i, end)
	}
	link := ast.Link{Kind: ast.TransclusionLink, Target: parts[0]}
	if len(parts) > 1 && parts[1] != "" {
		at := i + 2 + len(parts[0]) + 1
		link.Description = sc.p.inlines(parts[1], sc.base+at, true)
	}
	if len(parts) > 2 {
		link.Properties = parseProperties(parts[2])
	}
	return sc.emit(link, i, end)
}

func (sc *inlineScanner) rawLink(i int) int {
	s := sc.s
	if sc.inDesc || (i > 0 && isWordByte(s[i-1])) {
		return 0
	}
	for _, scheme := range rawSchemes {
		if !strings.HasPrefix(s[i:], scheme) {
			continue
		}
		end := i + len(scheme)
		for end < len(s) && !isSpace(s[end]) {
			end++
		}
		for end > i+len(scheme) && strings.IndexByte(".,;:!?", s[end-1]) >= 0 {
			end--
		}
		if end == i+len(scheme) {
			return 0
		}
		return sc.emit(ast.Link{Kind: ast.RawLink, Target: s[i:end]}, i, end)
	}
	return 0
}
