package ast

import "strings"

// Text is a literal run of characters
type Text struct {
	Value string
}

// Decoration is the typeface applied by a Decorated span
type Decoration int

const (
	Bold Decoration = iota
	Italic
	BoldItalic
	Strikethrough
	Superscript
	Subscript
	Code
)

var decorationNames = [...]string{
	"bold", "italic", "bold-italic", "strikethrough", "superscript", "subscript", "code",
}

func (d Decoration) String() string {
	if int(d) < len(decorationNames) {
		return decorationNames[d]
	}
	return "unknown"
}

// Decorated is text wrapped in typeface delimiters. Code spans hold a
// single Text.
type Decorated struct {
	Decoration Decoration
	Content    Inlines
	// ItalicOuter marks a BoldItalic span written _*x*_ rather than *_x_*
	ItalicOuter bool
}

// LinkKind is the flavour of a link
type LinkKind int

const (
	WikiLink LinkKind = iota
	IndexedWikiLink
	DiaryLink
	RawLink
	TransclusionLink
	InterwikiLink
)

var linkKindNames = [...]string{"wiki", "indexed-wiki", "diary", "raw", "transclusion", "interwiki"}

func (k LinkKind) String() string {
	if int(k) < len(linkKindNames) {
		return linkKindNames[k]
	}
	return "unknown"
}

// Link is any of the link forms. Target never includes the anchor; Wiki
// is the interwiki name and Index the indexed wiki number.
type Link struct {
	Kind        LinkKind
	Target      string
	Anchor      string
	Wiki        string
	Index       int
	Description Inlines
	Properties  Properties
}

// IsLocalAnchor reports whether the link points at an anchor of the
// current page
func (l Link) IsLocalAnchor() bool {
	return l.Target == "" && l.Anchor != ""
}

// Tag is a `:tag1:tag2:` run
type Tag struct {
	Names []string
}

// LineBreak separates the lines of a paragraph
type LineBreak struct{}

// Math is an inline `$…$` formula
type Math struct {
	Value string
}

// Keyword is one of the highlighted todo words
type Keyword struct {
	Word string
}

// Keywords lists the words recognised as Keyword
var Keywords = []string{"TODO", "DONE", "STARTED", "FIXME", "FIXED", "XXX"}

func (Text) inlineNode()      {}
func (Decorated) inlineNode() {}
func (Link) inlineNode()      {}
func (Tag) inlineNode()       {}
func (Comment) inlineNode()   {}
func (LineBreak) inlineNode() {}
func (Math) inlineNode()      {}
func (Keyword) inlineNode()   {}

// SplitLines splits an inline sequence at its LineBreak elements
func SplitLines(in Inlines) []Inlines {
	if len(in) == 0 {
		return nil
	}
	lines := []Inlines{nil}
	for _, el := range in {
		if _, ok := el.Value.(LineBreak); ok {
			lines = append(lines, nil)
			continue
		}
		lines[len(lines)-1] = append(lines[len(lines)-1], el)
	}
	return lines
}

// PlainText returns the text content of a sequence with all markup
// removed. Comments are dropped.
func PlainText(in Inlines) string {
	var b strings.Builder
	writePlain(&b, in)
	return b.String()
}

func writePlain(b *strings.Builder, in Inlines) {
	for _, el := range in {
		switch v := el.Value.(type) {
		case Text:
			b.WriteString(v.Value)
		case Decorated:
			writePlain(b, v.Content)
		case Link:
			if len(v.Description) > 0 {
				writePlain(b, v.Description)
			} else {
				b.WriteString(v.Target)
				if v.Anchor != "" {
					b.WriteString("#" + v.Anchor)
				}
			}
		case Tag:
			b.WriteString(strings.Join(v.Names, " "))
		case LineBreak:
			b.WriteByte(' ')
		case Math:
			b.WriteString(v.Value)
		case Keyword:
			b.WriteString(v.Word)
		}
	}
}
