package render

import (
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Slug lowercases text, strips accents and joins the remaining words
// with `-`. Text without any letter or digit becomes "section".
func Slug(text string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, text)
	if err != nil {
		folded = text
	}
	folded = cases.Lower(language.Und).String(folded)

	var b strings.Builder
	gap := false
	for _, c := range folded {
		if !unicode.IsLetter(c) && !unicode.IsDigit(c) && c != '_' {
			gap = true
			continue
		}
		if gap && b.Len() > 0 {
			b.WriteByte('-')
		}
		gap = false
		b.WriteRune(c)
	}
	if b.Len() == 0 {
		return "section"
	}
	return b.String()
}

// idSet hands out unique ids: the first request for a base gets the base
// itself, later ones get -1, -2, …
type idSet map[string]bool

func (s idSet) unique(base string) string {
	id := base
	for n := 1; s[id]; n++ {
		id = base + "-" + strconv.Itoa(n)
	}
	s[id] = true
	return id
}
