package parse

import (
	"regexp"
	"strings"

	"github.com/gerunddev/vimwiki/ast"
)

var (
	propertyPattern = regexp.MustCompile(`^([^\s="]+)="([^"]*)"`)
	envPattern      = regexp.MustCompile(`^%([^%\s]+)%$`)
)

func startsCodeFence(l line) bool {
	return strings.HasPrefix(strings.TrimLeft(l.text, " \t"), "{{{")
}

func isCodeClose(l line) bool {
	return l.trimmed() == "}}}"
}

func startsMathFence(l line) bool {
	_, ok := mathEnvironment(l)
	return ok
}

func isMathClose(l line) bool {
	return l.trimmed() == "}}$"
}

// mathEnvironment parses the `{{$%env%` opening line
func mathEnvironment(l line) (string, bool) {
	s := l.trimmed()
	if !strings.HasPrefix(s, "{{$") {
		return "", false
	}
	rest := strings.TrimSpace(s[3:])
	if rest == "" {
		return "", true
	}
	m := envPattern.FindStringSubmatch(rest)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// fenceEnd returns the index of the closing line of the fence opened at
// lines[i], reporting an unterminated block when there is none
func (p *parser) fenceEnd(lines []line, i int, closes func(line) bool, what string) (int, bool) {
	for k := i + 1; k < len(lines); k++ {
		if closes(lines[k]) {
			return k, true
		}
	}
	l := lines[i]
	p.report(UnterminatedBlock, l.contentStart(), l.contentEnd(), what+" is never closed")
	return 0, false
}

func rawLines(lines []line) []string {
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.text
	}
	return out
}

func (p *parser) codeBlock(lines []line, i int, _ scope) (located, int, bool) {
	l := lines[i]
	if !startsCodeFence(l) {
		return located{}, 0, false
	}
	k, ok := p.fenceEnd(lines, i, isCodeClose, "code block")
	if !ok {
		return located{}, 0, false
	}
	info := strings.TrimSpace(strings.TrimLeft(l.text, " \t")[3:])
	lang, props := parseFenceInfo(info)
	cb := ast.CodeBlock{Language: lang, Properties: props, Lines: rawLines(lines[i+1 : k])}
	return ast.At[ast.Block](p.span(l.contentStart(), lines[k].contentEnd()), cb), k - i + 1, true
}

func (p *parser) mathBlock(lines []line, i int, _ scope) (located, int, bool) {
	l := lines[i]
	env, ok := mathEnvironment(l)
	if !ok {
		return located{}, 0, false
	}
	k, ok := p.fenceEnd(lines, i, isMathClose, "math block")
	if !ok {
		return located{}, 0, false
	}
	mb := ast.MathBlock{Environment: env, Lines: rawLines(lines[i+1 : k])}
	return ast.At[ast.Block](p.span(l.contentStart(), lines[k].contentEnd()), mb), k - i + 1, true
}

// parseFenceInfo splits `lang key="value" …`. A leading token that is not
// a property is the language; later duplicate keys overwrite earlier ones
// in place. Unrecognised trailing text is dropped.
func parseFenceInfo(info string) (string, ast.Properties) {
	var lang string
	if info != "" && propertyPattern.FindStringIndex(info) == nil {
		end := strings.IndexAny(info, " \t")
		if end < 0 {
			end = len(info)
		}
		lang, info = info[:end], strings.TrimSpace(info[end:])
	}
	return lang, parseProperties(info)
}

// parseProperties reads space separated `key="value"` pairs
func parseProperties(s string) ast.Properties {
	var props ast.Properties
	s = strings.TrimSpace(s)
	for s != "" {
		m := propertyPattern.FindStringSubmatch(s)
		if m == nil {
			break
		}
		props = props.Set(m[1], m[2])
		s = strings.TrimSpace(s[len(m[0]):])
	}
	return props
}
