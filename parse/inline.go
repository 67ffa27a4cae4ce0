package parse

import (
	"strings"

	"github.com/gerunddev/vimwiki/ast"
)

// delimiter is a decoration marker waiting for its partner
type delimiter struct {
	text       string
	decoration ast.Decoration
	start, end int
}

// delimiters are tried in order at each position, two-byte markers first
var delimiters = []struct {
	text       string
	decoration ast.Decoration
}{
	{"~~", ast.Strikethrough},
	{",,", ast.Subscript},
	{"*", ast.Bold},
	{"_", ast.Italic},
	{"^", ast.Superscript},
}

// inlineItem is either a finished element or an unmatched opener
type inlineItem struct {
	node  ast.Located[ast.Inline]
	delim *delimiter
}

// inlineScanner scans one line of text. Offsets are relative to s and
// shifted by base when building regions.
type inlineScanner struct {
	p         *parser
	s         string
	base      int
	inDesc    bool
	items     []inlineItem
	openers   []int
	textStart int
}

// inlines parses s, which starts at byte offset base of the source. Link
// descriptions (inDesc) may not contain wiki links or raw URLs.
func (p *parser) inlines(s string, base int, inDesc bool) ast.Inlines {
	sc := &inlineScanner{p: p, s: s, base: base, inDesc: inDesc, textStart: -1}
	return sc.run()
}

func (sc *inlineScanner) run() ast.Inlines {
	for i := 0; i < len(sc.s); {
		if n := sc.try(i); n > 0 {
			i += n
			continue
		}
		if sc.textStart < 0 {
			sc.textStart = i
		}
		i++
	}
	sc.flush(len(sc.s))

	for _, idx := range sc.openers {
		sc.items[idx] = sc.literal(sc.items[idx].delim)
	}
	sc.openers = nil
	return mergeText(sc.toInlines(sc.items))
}

// try matches an element at i and returns how many bytes it consumed
func (sc *inlineScanner) try(i int) int {
	for _, match := range []func(int) int{
		sc.comment,
		sc.code,
		sc.math,
		sc.wikiLink,
		sc.transclusion,
		sc.rawLink,
		sc.tags,
		sc.keyword,
		sc.delimiter,
	} {
		if n := match(i); n > 0 {
			return n
		}
	}
	return 0
}

func (sc *inlineScanner) region(from, to int) ast.Located[ast.Inline] {
	return ast.Located[ast.Inline]{Region: sc.p.span(sc.base+from, sc.base+to)}
}

// flush turns pending literal bytes before i into a Text element
func (sc *inlineScanner) flush(i int) {
	if sc.textStart < 0 || sc.textStart >= i {
		sc.textStart = -1
		return
	}
	sc.items = append(sc.items, sc.item(ast.Text{Value: sc.s[sc.textStart:i]}, sc.textStart, i))
	sc.textStart = -1
}

func (sc *inlineScanner) item(v ast.Inline, from, to int) inlineItem {
	n := sc.region(from, to)
	n.Value = v
	return inlineItem{node: n}
}

// emit appends an element spanning [from, to) and returns its length
func (sc *inlineScanner) emit(v ast.Inline, from, to int) int {
	sc.flush(from)
	sc.items = append(sc.items, sc.item(v, from, to))
	return to - from
}

// skip keeps [from, to) as literal text and returns its length
func (sc *inlineScanner) skip(from, to int) int {
	if sc.textStart < 0 {
		sc.textStart = from
	}
	return to - from
}

func (sc *inlineScanner) literal(d *delimiter) inlineItem {
	return sc.item(ast.Text{Value: d.text}, d.start, d.end)
}

func (sc *inlineScanner) comment(i int) int {
	s := sc.s
	if !strings.HasPrefix(s[i:], "%%") {
		return 0
	}
	if strings.HasPrefix(s[i:], "%%+") {
		if k := strings.Index(s[i+3:], "+%%"); k >= 0 {
			return sc.emit(ast.Comment{Content: s[i+3 : i+3+k], Multiline: true}, i, i+3+k+3)
		}
	}
	return sc.emit(ast.Comment{Content: s[i+2:]}, i, len(s))
}

func (sc *inlineScanner) code(i int) int {
	s := sc.s
	if s[i] != '`' {
		return 0
	}
	k := strings.IndexByte(s[i+1:], '`')
	if k <= 0 {
		return 0
	}
	inner := sc.item(ast.Text{Value: s[i+1 : i+1+k]}, i+1, i+1+k).node
	return sc.emit(ast.Decorated{Decoration: ast.Code, Content: ast.Inlines{inner}}, i, i+k+2)
}

func (sc *inlineScanner) math(i int) int {
	s := sc.s
	if s[i] != '$' {
		return 0
	}
	k := strings.IndexByte(s[i+1:], '$')
	if k <= 0 {
		return 0
	}
	body := s[i+1 : i+1+k]
	if isSpace(body[0]) || isSpace(body[len(body)-1]) {
		return 0
	}
	return sc.emit(ast.Math{Value: body}, i, i+k+2)
}

func (sc *inlineScanner) tags(i int) int {
	s := sc.s
	if s[i] != ':' || (i > 0 && !isSpace(s[i-1])) {
		return 0
	}
	var names []string
	j := i + 1
	for {
		st := j
		for j < len(s) && s[j] != ':' && !isSpace(s[j]) {
			j++
		}
		if j == st || j >= len(s) || s[j] != ':' {
			return 0
		}
		names = append(names, s[st:j])
		j++
		if j == len(s) || isSpace(s[j]) {
			break
		}
	}
	return sc.emit(ast.Tag{Names: names}, i, j)
}

func isWordByte(c byte) bool {
	return c == '_' || c >= 0x80 ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}

func (sc *inlineScanner) keyword(i int) int {
	s := sc.s
	if s[i] < 'A' || s[i] > 'Z' || (i > 0 && isWordByte(s[i-1])) {
		return 0
	}
	for _, kw := range ast.Keywords {
		end := i + len(kw)
		if !strings.HasPrefix(s[i:], kw) || (end < len(s) && isWordByte(s[end])) {
			continue
		}
		return sc.emit(ast.Keyword{Word: kw}, i, end)
	}
	return 0
}

// delimiter handles decoration markers. A marker followed by a non-space
// may open; one preceded by a non-space may close the nearest open marker
// of the same kind, turning any markers opened after it into text.
func (sc *inlineScanner) delimiter(i int) int {
	s := sc.s
	for _, d := range delimiters {
		if !strings.HasPrefix(s[i:], d.text) {
			continue
		}
		end := i + len(d.text)
		canOpen := end < len(s) && !isSpace(s[end])
		canClose := i > 0 && !isSpace(s[i-1])
		sc.flush(i)
		dl := &delimiter{text: d.text, decoration: d.decoration, start: i, end: end}
		switch {
		case canClose && sc.close(dl):
		case canOpen:
			sc.openers = append(sc.openers, len(sc.items))
			sc.items = append(sc.items, inlineItem{delim: dl})
		default:
			sc.items = append(sc.items, sc.literal(dl))
		}
		return len(d.text)
	}
	return 0
}

func (sc *inlineScanner) close(closer *delimiter) bool {
	for k := len(sc.openers) - 1; k >= 0; k-- {
		at := sc.openers[k]
		opener := sc.items[at].delim
		if opener.decoration != closer.decoration {
			continue
		}
		for _, above := range sc.openers[k+1:] {
			sc.items[above] = sc.literal(sc.items[above].delim)
		}
		sc.openers = sc.openers[:k]

		if at == len(sc.items)-1 {
			// nothing between the markers
			sc.items[at] = sc.literal(opener)
			sc.items = append(sc.items, sc.literal(closer))
			return true
		}
		content := mergeText(sc.toInlines(sc.items[at+1:]))
		dec := sc.item(decorate(opener.decoration, content), opener.start, closer.end)
		sc.items = append(sc.items[:at], dec)
		return true
	}
	return false
}

// decorate builds a decorated span, folding bold around a lone italic
// (or the reverse) into BoldItalic
func decorate(d ast.Decoration, content ast.Inlines) ast.Decorated {
	if len(content) == 1 {
		if inner, ok := content[0].Value.(ast.Decorated); ok {
			if (d == ast.Bold && inner.Decoration == ast.Italic) || (d == ast.Italic && inner.Decoration == ast.Bold) {
				return ast.Decorated{Decoration: ast.BoldItalic, Content: inner.Content, ItalicOuter: d == ast.Italic}
			}
		}
	}
	return ast.Decorated{Decoration: d, Content: content}
}

func (sc *inlineScanner) toInlines(items []inlineItem) ast.Inlines {
	out := make(ast.Inlines, 0, len(items))
	for _, it := range items {
		if it.delim != nil {
			it = sc.literal(it.delim)
		}
		out = append(out, it.node)
	}
	return out
}

// mergeText joins adjacent Text elements
func mergeText(in ast.Inlines) ast.Inlines {
	var out ast.Inlines
	for _, el := range in {
		if t, ok := el.Value.(ast.Text); ok && len(out) > 0 {
			last := &out[len(out)-1]
			if prev, ok := last.Value.(ast.Text); ok {
				last.Value = ast.Text{Value: prev.Value + t.Value}
				last.Region = last.Region.Union(el.Region)
				continue
			}
		}
		out = append(out, el)
	}
	return out
}
