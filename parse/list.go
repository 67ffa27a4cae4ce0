package parse

import (
	"strconv"
	"strings"

	"github.com/gerunddev/vimwiki/ast"
)

type markerFamily int

const (
	familyHyphen markerFamily = iota
	familyAsterisk
	familyPound
	familyNumber
	familyLower
	familyUpper
)

// marker is a list item marker as written
type marker struct {
	text   string
	family markerFamily
	suffix byte
}

// key groups items into one list
func (m marker) key() string {
	return strconv.Itoa(int(m.family)) + string(m.suffix)
}

var bulletFamilies = map[byte]markerFamily{'-': familyHyphen, '*': familyAsterisk, '#': familyPound}

const (
	lowerRoman = "ivxlcdm"
	upperRoman = "IVXLCDM"
)

// parseMarker recognises the marker at the start of s. after is the
// offset just past the space that must follow the marker.
func parseMarker(s string) (m marker, after int, ok bool) {
	if len(s) < 2 {
		return marker{}, 0, false
	}
	switch s[0] {
	case '-', '*', '#':
		if !isSpace(s[1]) {
			return marker{}, 0, false
		}
		return marker{text: s[:1], family: bulletFamilies[s[0]]}, 2, true
	}

	k := 0
	var family markerFamily
	switch c := s[0]; {
	case c >= '0' && c <= '9':
		family = familyNumber
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
	case c >= 'a' && c <= 'z':
		family = familyLower
		for k < len(s) && s[k] >= 'a' && s[k] <= 'z' {
			k++
		}
		if k > 1 && strings.Trim(s[:k], lowerRoman) != "" {
			return marker{}, 0, false
		}
	case c >= 'A' && c <= 'Z':
		family = familyUpper
		for k < len(s) && s[k] >= 'A' && s[k] <= 'Z' {
			k++
		}
		if k > 1 && strings.Trim(s[:k], upperRoman) != "" {
			return marker{}, 0, false
		}
	default:
		return marker{}, 0, false
	}
	if k+1 >= len(s) || (s[k] != '.' && s[k] != ')') || !isSpace(s[k+1]) {
		return marker{}, 0, false
	}
	if family == familyNumber {
		if _, err := strconv.Atoi(s[:k]); err != nil {
			return marker{}, 0, false
		}
	}
	return marker{text: s[:k+1], family: family, suffix: s[k]}, k + 2, true
}

func startsListItem(l line) bool {
	_, _, ok := parseMarker(l.text[l.indent():])
	return ok
}

var checkboxes = map[byte]ast.Checkbox{
	' ': ast.Incomplete,
	'.': ast.Partial1,
	'o': ast.Partial2,
	'O': ast.Partial3,
	'X': ast.Complete,
	'-': ast.Rejected,
}

// parseCheckbox recognises `[ ]`, `[.]`, `[o]`, `[O]`, `[X]` and `[-]`
func parseCheckbox(s string) (ast.Checkbox, int) {
	if len(s) < 3 || s[0] != '[' || s[2] != ']' {
		return ast.NoCheckbox, 0
	}
	cb, ok := checkboxes[s[1]]
	if !ok || (len(s) > 3 && !isSpace(s[3])) {
		return ast.NoCheckbox, 0
	}
	return cb, 3
}

// list groups consecutive items sharing a marker family and suffix.
// Lines indented deeper than an item belong to it; a blank line ends
// the list.
func (p *parser) list(lines []line, i int, _ scope) (located, int, bool) {
	first, _, ok := parseMarker(lines[i].text[lines[i].indent():])
	if !ok {
		return located{}, 0, false
	}

	var items []ast.Located[ast.ListItem]
	var markers []marker
	j := i
	for j < len(lines) {
		l := lines[j]
		if l.blank() {
			break
		}
		m, after, ok := parseMarker(l.text[l.indent():])
		if !ok || m.key() != first.key() {
			break
		}
		end, ok := p.itemEnd(lines, j)
		if !ok {
			return located{}, 0, false
		}
		items = append(items, p.listItem(lines[j:end], m, after))
		markers = append(markers, m)
		j = end
	}

	style := listStyle(markers)
	for k := range items {
		items[k].Value.Style = style
		items[k].Value.Number = markerNumber(markers[k], style)
	}
	r := items[0].Region.Union(items[len(items)-1].Region)
	return ast.At[ast.Block](r, ast.List{Kind: style.Kind(), Items: items}), j - i, true
}

// itemEnd returns the index just past the last line of the item starting
// at lines[j]. Fenced blocks inside the item may contain blank or
// shallower lines.
func (p *parser) itemEnd(lines []line, j int) (int, bool) {
	ind := lines[j].indent()
	k := j + 1
	for k < len(lines) {
		l := lines[k]
		if l.blank() || l.indent() <= ind {
			break
		}
		var closes func(line) bool
		what := ""
		switch {
		case startsCodeFence(l):
			closes, what = isCodeClose, "code block"
		case startsMathFence(l):
			closes, what = isMathClose, "math block"
		}
		if closes != nil {
			end, ok := p.fenceEnd(lines, k, closes, what)
			if !ok {
				return 0, false
			}
			k = end + 1
			continue
		}
		k++
	}
	return k, true
}

func (p *parser) listItem(lines []line, m marker, after int) ast.Located[ast.ListItem] {
	l := lines[0]
	ind := l.indent()
	pos := ind + after
	for pos < len(l.text) && isSpace(l.text[pos]) {
		pos++
	}
	cb, n := parseCheckbox(l.text[pos:])
	pos += n
	for pos < len(l.text) && isSpace(l.text[pos]) {
		pos++
	}

	item := ast.ListItem{Marker: m.text, Checkbox: cb}
	var body []line
	hasText := pos < len(strings.TrimRight(l.text, " \t"))
	if hasText {
		body = append(body, line{text: l.text[pos:], start: l.start + pos})
	}
	body = append(body, lines[1:]...)
	item.Contents = p.itemBlocks(body, hasText)

	end := l.contentEnd()
	if len(lines) > 1 {
		end = lines[len(lines)-1].contentEnd()
	}
	return ast.At(p.span(l.contentStart(), end), item)
}

// itemBlocks parses the body of a list item. When leadText is set the
// first line is the text after the marker and always opens a paragraph.
func (p *parser) itemBlocks(body []line, leadText bool) []ast.Located[ast.ListItemBlock] {
	var out []ast.Located[ast.ListItemBlock]
	add := func(b located) {
		if ib, ok := b.Value.(ast.ListItemBlock); ok {
			out = append(out, ast.At(b.Region, ib))
		}
	}
	i := 0
	if leadText {
		para, n := p.paragraph(body, 0, scopeItem)
		add(para)
		i = n
	}
	for _, b := range p.blocks(body[i:], scopeItem) {
		add(b)
	}
	return out
}

// listStyle resolves the style of a list. Lettered lists are roman only
// when every marker is a roman numeral.
func listStyle(markers []marker) ast.MarkerStyle {
	switch markers[0].family {
	case familyHyphen:
		return ast.MarkerHyphen
	case familyAsterisk:
		return ast.MarkerAsterisk
	case familyPound:
		return ast.MarkerPound
	case familyNumber:
		return ast.MarkerNumber
	case familyLower:
		if allRoman(markers, lowerRoman) {
			return ast.MarkerLowerRoman
		}
		return ast.MarkerLowerAlpha
	default:
		if allRoman(markers, upperRoman) {
			return ast.MarkerUpperRoman
		}
		return ast.MarkerUpperAlpha
	}
}

func allRoman(markers []marker, digits string) bool {
	for _, m := range markers {
		if strings.Trim(m.text[:len(m.text)-1], digits) != "" {
			return false
		}
	}
	return true
}

func markerNumber(m marker, style ast.MarkerStyle) int {
	word := strings.TrimRight(m.text, ".)")
	switch style {
	case ast.MarkerNumber:
		n, _ := strconv.Atoi(word)
		return n
	case ast.MarkerLowerAlpha, ast.MarkerUpperAlpha:
		return letterNumber(strings.ToLower(word))
	case ast.MarkerLowerRoman, ast.MarkerUpperRoman:
		return romanNumber(strings.ToLower(word))
	}
	return 0
}

// letterNumber maps a, b, …, z, aa, ab, … to 1, 2, …
func letterNumber(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		n = n*26 + int(s[i]-'a') + 1
	}
	return n
}

var romanDigits = map[byte]int{'i': 1, 'v': 5, 'x': 10, 'l': 50, 'c': 100, 'd': 500, 'm': 1000}

func romanNumber(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		v := romanDigits[s[i]]
		if i+1 < len(s) && v < romanDigits[s[i+1]] {
			n -= v
		} else {
			n += v
		}
	}
	return n
}
