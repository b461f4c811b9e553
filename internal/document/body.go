package document

import (
	"html"
	"strconv"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/gosimple/slug"

	"github.com/alnah/go-scribe/internal/flow"
	"github.com/alnah/go-scribe/internal/fonts"
	"github.com/alnah/go-scribe/internal/markup"
	"github.com/alnah/go-scribe/internal/style"
)

// fallbackAnchor is used when a heading slugifies to nothing.
const fallbackAnchor = "section"

// bodyWriter accumulates the <body> markup of one document.
type bodyWriter struct {
	buf       strings.Builder
	codeStyle *chroma.Style
	formatter *chromahtml.Formatter
	anchors   map[string]int
}

func newBodyWriter(codeStyle *chroma.Style) *bodyWriter {
	return &bodyWriter{
		codeStyle: codeStyle,
		formatter: chromahtml.New(
			chromahtml.WithClasses(false),
			chromahtml.PreventSurroundingPre(true),
		),
		anchors: make(map[string]int),
	}
}

func (w *bodyWriter) String() string {
	return w.buf.String()
}

func (w *bodyWriter) node(n flow.Node) {
	switch n.Type {
	case flow.NodeText:
		w.textNode(n)
	case flow.NodeSpacer:
		w.buf.WriteString(`<div class="` + style.ClassName(n.Block) + `" style="height: ` +
			strconv.FormatFloat(n.Height, 'f', 1, 64) + `pt;"></div>` + "\n")
	case flow.NodeList:
		w.list(n)
	}
}

func (w *bodyWriter) textNode(n flow.Node) {
	class := style.ClassName(n.Block)

	switch {
	case n.Block.IsHeading():
		tag := "h" + strconv.Itoa(int(n.Block-markup.KindHeading1)+1)
		w.buf.WriteString(`<` + tag + ` id="` + w.anchor(n.Text) + `" class="` + class + `">`)
		w.inline(n)
		w.buf.WriteString(`</` + tag + ">\n")

	case n.Block == markup.KindBlockquote:
		w.buf.WriteString(`<blockquote class="` + class + `">`)
		w.inline(n)
		w.buf.WriteString("</blockquote>\n")

	case n.Block == markup.KindCodeBlock:
		w.buf.WriteString(`<pre class="` + class + `"><code>`)
		w.code(n.Text, n.Language)
		w.buf.WriteString("</code></pre>\n")

	default:
		w.buf.WriteString(`<p class="` + class + `">`)
		w.inline(n)
		w.buf.WriteString("</p>\n")
	}
}

func (w *bodyWriter) list(n flow.Node) {
	if n.List == nil {
		return
	}
	tag := "ul"
	if n.List.Ordered {
		tag = "ol"
	}
	w.buf.WriteString(`<` + tag + ` class="list ` + style.ClassName(n.Block) + `">` + "\n")
	for _, it := range n.List.Items {
		w.buf.WriteString(`<li class="` + style.ClassName(it.Body.Block) + `"><span class="marker">` +
			html.EscapeString(it.Marker) + `</span>`)
		w.inline(it.Body)
		for _, child := range it.Children {
			w.buf.WriteString("\n")
			w.list(child)
		}
		w.buf.WriteString("</li>\n")
	}
	w.buf.WriteString(`</` + tag + ">\n")
}

// inline writes a text node's content, honoring runs when present.
func (w *bodyWriter) inline(n flow.Node) {
	if len(n.Runs) == 0 {
		w.text(n.Text)
		return
	}
	for _, r := range n.Runs {
		var open, closing []string
		if r.Bold {
			open, closing = append(open, "<strong>"), append([]string{"</strong>"}, closing...)
		}
		if r.Italic {
			open, closing = append(open, "<em>"), append([]string{"</em>"}, closing...)
		}
		if r.Code {
			open, closing = append(open, "<code>"), append([]string{"</code>"}, closing...)
		}
		w.buf.WriteString(strings.Join(open, ""))
		w.text(r.Text)
		w.buf.WriteString(strings.Join(closing, ""))
	}
}

// text escapes s, converts newlines to <br> and wraps glyphs the primary
// font lacks in fallback spans.
func (w *bodyWriter) text(s string) {
	if !fonts.NeedsFallback(s) {
		w.buf.WriteString(strings.ReplaceAll(html.EscapeString(s), "\n", "<br>\n"))
		return
	}
	for _, seg := range fonts.Split(s) {
		escaped := html.EscapeString(seg.Text)
		if seg.Class == fonts.Primary {
			w.buf.WriteString(strings.ReplaceAll(escaped, "\n", "<br>\n"))
			continue
		}
		w.buf.WriteString(`<span class="` + fonts.ClassName(seg.Class) + `">` + escaped + `</span>`)
	}
}

// code writes highlighted tokens, or escaped text when no lexer matches.
func (w *bodyWriter) code(src, language string) {
	var lexer chroma.Lexer
	if language != "" {
		lexer = lexers.Get(language)
	}
	if lexer == nil {
		w.buf.WriteString(html.EscapeString(src))
		return
	}

	it, err := chroma.Coalesce(lexer).Tokenise(nil, src)
	if err != nil {
		w.buf.WriteString(html.EscapeString(src))
		return
	}

	var out strings.Builder
	if err := w.formatter.Format(&out, w.codeStyle, it); err != nil {
		w.buf.WriteString(html.EscapeString(src))
		return
	}
	w.buf.WriteString(out.String())
}

// anchor returns a unique slug ID for a heading.
func (w *bodyWriter) anchor(text string) string {
	id := slug.Make(text)
	if id == "" {
		id = fallbackAnchor
	}
	n := w.anchors[id]
	w.anchors[id] = n + 1
	if n > 0 {
		id += "-" + strconv.Itoa(n)
	}
	return id
}
