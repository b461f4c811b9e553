package pipeline

import (
	"bytes"
	"context"
	"fmt"

	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
)

// previewStyle is the chroma style used for fenced code in the preview.
const previewStyle = "github"

// HTMLRenderer abstracts Markdown to HTML fragment rendering.
type HTMLRenderer interface {
	ToHTML(ctx context.Context, content string) (string, error)
}

// PreviewRenderer renders the live preview fragment with goldmark.
type PreviewRenderer struct {
	md goldmark.Markdown
}

// NewPreviewRenderer creates a PreviewRenderer with GFM, syntax highlighting
// and line-break preservation.
func NewPreviewRenderer() *PreviewRenderer {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM, // Tables, strikethrough, autolinks, task lists
			highlighting.NewHighlighting(
				highlighting.WithStyle(previewStyle),
				highlighting.WithFormatOptions(
					chromahtml.WithClasses(false), // Inline styles: the preview view has no stylesheet
				),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(), // Treat newlines as <br>
			html.WithXHTML(),
		),
	)
	return &PreviewRenderer{md: md}
}

// ToHTML renders content as an HTML fragment (no <html> wrapper).
// Uses the goroutine + select pattern because goldmark has no context support.
func (r *PreviewRenderer) ToHTML(ctx context.Context, content string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	type result struct {
		html string
		err  error
	}

	done := make(chan result, 1)

	go func() {
		var buf bytes.Buffer
		if err := r.md.Convert([]byte(content), &buf); err != nil {
			done <- result{err: fmt.Errorf("%w: %v", ErrHTMLConversion, err)}
			return
		}
		done <- result{html: buf.String()}
	}()

	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case r := <-done:
		return r.html, r.err
	}
}
