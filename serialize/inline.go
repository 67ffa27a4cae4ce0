package serialize

import (
	"strconv"
	"strings"

	"github.com/gerunddev/vimwiki/ast"
)

var delimiters = map[ast.Decoration][2]string{
	ast.Bold:          {"*", "*"},
	ast.Italic:        {"_", "_"},
	ast.BoldItalic:    {"*_", "_*"},
	ast.Strikethrough: {"~~", "~~"},
	ast.Superscript:   {"^", "^"},
	ast.Subscript:     {",,", ",,"},
	ast.Code:          {"`", "`"},
}

func writeInlines(b *strings.Builder, in ast.Inlines) {
	for _, el := range in {
		writeInline(b, el.Value)
	}
}

func writeInline(b *strings.Builder, v ast.Inline) {
	switch v := v.(type) {
	case ast.Text:
		b.WriteString(v.Value)
	case ast.Decorated:
		d := delimiters[v.Decoration]
		if v.Decoration == ast.BoldItalic && v.ItalicOuter {
			d = [2]string{"_*", "*_"}
		}
		b.WriteString(d[0])
		writeInlines(b, v.Content)
		b.WriteString(d[1])
	case ast.Link:
		writeLink(b, v)
	case ast.Tag:
		b.WriteString(":" + strings.Join(v.Names, ":") + ":")
	case ast.LineBreak:
		b.WriteByte('\n')
	case ast.Math:
		b.WriteString("$" + v.Value + "$")
	case ast.Keyword:
		b.WriteString(v.Word)
	case ast.Comment:
		b.WriteString(comment(v))
	}
}

func writeLink(b *strings.Builder, l ast.Link) {
	switch l.Kind {
	case ast.RawLink:
		b.WriteString(l.Target)
		return
	case ast.TransclusionLink:
		b.WriteString("{{" + l.Target)
		props := properties(l.Properties)
		if len(l.Description) > 0 || props != "" {
			b.WriteString("|")
			writeInlines(b, l.Description)
		}
		if props != "" {
			b.WriteString("|" + props)
		}
		// An empty field keeps a trailing brace from closing the link early
		if endsWith(b, '}') {
			b.WriteString("|")
		}
		b.WriteString("}}")
		return
	}

	b.WriteString("[[")
	switch l.Kind {
	case ast.DiaryLink:
		b.WriteString("diary:")
	case ast.IndexedWikiLink:
		b.WriteString("wiki" + strconv.Itoa(l.Index) + ":")
	case ast.InterwikiLink:
		b.WriteString("wn." + l.Wiki + ":")
	}
	b.WriteString(l.Target)
	if l.Anchor != "" {
		b.WriteString("#" + l.Anchor)
	}
	if len(l.Description) > 0 {
		b.WriteString("|")
		writeInlines(b, l.Description)
	} else if endsWith(b, ']') {
		b.WriteString("|")
	}
	b.WriteString("]]")
}

func endsWith(b *strings.Builder, c byte) bool {
	s := b.String()
	return len(s) > 0 && s[len(s)-1] == c
}
