// Package document lays out flow nodes as a printable HTML page.
//
// The page is a single html/template (normally templates/document.html
// from the asset loader) filled with the body markup, the stylesheet
// generated from the style registry and the @font-face rules of the
// configured fallback fonts. Headless Chrome prints the result.
package document

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/styles"

	"github.com/alnah/go-scribe/internal/flow"
	"github.com/alnah/go-scribe/internal/fonts"
	"github.com/alnah/go-scribe/internal/markup"
	"github.com/alnah/go-scribe/internal/style"
)

// ErrTemplate indicates the page template failed to parse or execute.
var ErrTemplate = errors.New("document template error")

// DefaultTitle is used when the document has no level-one heading.
const DefaultTitle = "Document"

// DefaultCodeStyle names the chroma style used for code blocks.
const DefaultCodeStyle = "github"

// Page holds the CSS values of the @page rule.
type Page struct {
	Size   string // e.g. "8.5in 11in"
	Margin string // e.g. "0.50in"
	Lang   string
}

// DefaultPage is US Letter portrait with half-inch margins.
func DefaultPage() Page {
	return Page{Size: "8.5in 11in", Margin: "0.50in", Lang: "en"}
}

// Renderer turns flow nodes into a complete HTML document.
// A Renderer is immutable after New and safe for sequential reuse.
type Renderer struct {
	tmpl      *template.Template
	styles    *style.Registry
	fonts     fonts.Set
	page      Page
	codeStyle *chroma.Style
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithStyles sets the style registry used for the stylesheet.
func WithStyles(r *style.Registry) Option {
	return func(rd *Renderer) {
		if r != nil {
			rd.styles = r
		}
	}
}

// WithFonts sets the fallback font faces.
func WithFonts(s fonts.Set) Option {
	return func(rd *Renderer) {
		rd.fonts = s
	}
}

// WithPage sets the @page size and margins.
func WithPage(p Page) Option {
	return func(rd *Renderer) {
		rd.page = p
	}
}

// New parses the page template and applies options.
func New(tmplSrc string, opts ...Option) (*Renderer, error) {
	tmpl, err := template.New("document").Parse(tmplSrc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTemplate, err)
	}

	r := &Renderer{
		tmpl:      tmpl,
		styles:    style.Default(),
		fonts:     fonts.DefaultSet(),
		page:      DefaultPage(),
		codeStyle: styles.Get(DefaultCodeStyle),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// pageData is the template payload.
type pageData struct {
	Lang      string
	Title     string
	PageSize  template.CSS
	Margin    template.CSS
	FontFaces template.CSS
	CSS       template.CSS
	Body      template.HTML
}

// Render lays out nodes and executes the page template.
// An empty node list produces a valid page with an empty body.
func (r *Renderer) Render(ctx context.Context, nodes []flow.Node) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	w := newBodyWriter(r.codeStyle)
	for _, n := range nodes {
		w.node(n)
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// #nosec G203 -- CSS values are sanitized and the body is built from escaped text.
	data := pageData{
		Lang:      r.page.Lang,
		Title:     Title(nodes),
		PageSize:  template.CSS(sanitizeCSS(r.page.Size)),
		Margin:    template.CSS(sanitizeCSS(r.page.Margin)),
		FontFaces: template.CSS(sanitizeCSS(r.fonts.FaceCSS())),
		CSS:       template.CSS(sanitizeCSS(r.stylesheet())),
		Body:      template.HTML(w.String()),
	}

	var buf strings.Builder
	if err := r.tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("%w: %v", ErrTemplate, err)
	}
	return buf.String(), nil
}

func (r *Renderer) stylesheet() string {
	return style.CSS(r.styles, r.fonts.Families()...) + r.fonts.ClassCSS()
}

// Title returns the text of the first level-one heading, or DefaultTitle.
func Title(nodes []flow.Node) string {
	for _, n := range nodes {
		if n.Type == flow.NodeText && n.Block == markup.KindHeading1 && strings.TrimSpace(n.Text) != "" {
			return n.Text
		}
	}
	return DefaultTitle
}

// sanitizeCSS escapes sequences that could close the <style> element.
func sanitizeCSS(css string) string {
	return strings.ReplaceAll(css, "</", `<\/`)
}
