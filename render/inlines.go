package render

import (
	"path"
	"strconv"
	"strings"

	"github.com/gerunddev/vimwiki/ast"
)

var decorationTags = map[ast.Decoration][]string{
	ast.Bold:          {"strong"},
	ast.Italic:        {"em"},
	ast.BoldItalic:    {"strong", "em"},
	ast.Strikethrough: {"del"},
	ast.Superscript:   {"sup", "small"},
	ast.Subscript:     {"sub", "small"},
	ast.Code:          {"code"},
}

// objectExtensions are transcluded with <object> rather than <img>
var objectExtensions = map[string]bool{".pdf": true, ".html": true, ".htm": true}

func (r *renderer) inlines(in ast.Inlines) {
	for _, el := range in {
		r.inline(el.Value)
	}
}

func (r *renderer) inline(v ast.Inline) {
	switch v := v.(type) {
	case ast.Text:
		r.write(escape(v.Value))
	case ast.Decorated:
		r.decorated(v)
	case ast.Link:
		r.link(v)
	case ast.Tag:
		for _, name := range v.Names {
			id := escape(r.ids.unique(r.opts.IDs(name)))
			r.write(`<span class="tag" id="`, id, `">`, escape(name), "</span>")
		}
	case ast.LineBreak:
		if r.opts.HardLineBreaks {
			r.write("<br />")
		}
		r.write("\n")
	case ast.Math:
		r.write(`\(`, escape(v.Value), `\)`)
	case ast.Keyword:
		if v.Word == "TODO" {
			r.write(`<span class="todo">TODO</span>`)
		} else {
			r.write(escape(v.Word))
		}
	case ast.Comment:
		r.comment(v)
	}
}

func (r *renderer) decorated(d ast.Decorated) {
	tags := decorationTags[d.Decoration]
	for _, t := range tags {
		r.write("<", t, ">")
	}
	if d.Decoration == ast.Code {
		r.write(escape(ast.PlainText(d.Content)))
	} else {
		r.inlines(d.Content)
	}
	for i := len(tags) - 1; i >= 0; i-- {
		r.write("</", tags[i], ">")
	}
}

func (r *renderer) link(l ast.Link) {
	switch l.Kind {
	case ast.RawLink:
		r.write(`<a href="`, escape(l.Target), `">`, escape(l.Target), "</a>")
	case ast.TransclusionLink:
		r.transclusion(l)
	default:
		r.wikiLink(l)
	}
}

func (r *renderer) wikiLink(l ast.Link) {
	var href, class string
	if l.Kind == ast.WikiLink && l.IsLocalAnchor() {
		href = "#" + r.opts.IDs(l.Anchor)
	} else {
		res, err := r.opts.Resolver.Resolve(l)
		if err != nil {
			res = Resolution{URL: l.Target}
		}
		if err != nil || !res.Exists {
			class = r.opts.UnresolvedClass
			r.flagUnresolved(LinkTarget(l))
		}
		href = res.URL
		if l.Anchor != "" {
			if IsURL(l.Target) {
				href += "#" + l.Anchor
			} else {
				href += "#" + r.opts.IDs(l.Anchor)
			}
		}
	}

	r.write(`<a href="`, escape(href), `"`)
	if class != "" {
		r.write(` class="`, escape(class), `"`)
	}
	r.write(">")
	if len(l.Description) > 0 {
		r.inlines(l.Description)
	} else if l.IsLocalAnchor() {
		r.write(escape(l.Anchor))
	} else {
		r.write(escape(l.Target))
		if l.Anchor != "" {
			r.write("#", escape(l.Anchor))
		}
	}
	r.write("</a>")
}

// LinkTarget returns the target of a link as written, including its
// diary, wikiN or interwiki prefix
func LinkTarget(l ast.Link) string {
	var prefix string
	switch l.Kind {
	case ast.DiaryLink:
		prefix = "diary:"
	case ast.IndexedWikiLink:
		prefix = "wiki" + strconv.Itoa(l.Index) + ":"
	case ast.InterwikiLink:
		prefix = "wn." + l.Wiki + ":"
	}
	return prefix + l.Target
}

func (r *renderer) transclusion(l ast.Link) {
	src := escape(l.Target)
	target := l.Target
	if i := strings.IndexAny(target, "?#"); i >= 0 {
		target = target[:i]
	}

	attrs := func() {
		for _, p := range l.Properties {
			r.write(" ", escape(p.Key), `="`, escape(p.Value), `"`)
		}
	}
	if objectExtensions[strings.ToLower(path.Ext(target))] {
		r.write(`<object data="`, src, `"`)
		attrs()
		r.write(">")
		r.inlines(l.Description)
		r.write("</object>")
		return
	}
	r.write(`<img src="`, src, `"`)
	if len(l.Description) > 0 {
		r.write(` alt="`, escape(ast.PlainText(l.Description)), `"`)
	}
	attrs()
	r.write(" />")
}
