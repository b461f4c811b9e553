package pipeline

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
	"go.uber.org/zap"

	"github.com/alnah/go-scribe/internal/markup"
)

// Parser converts normalized text into an ordered sequence of blocks.
type Parser interface {
	Parse(ctx context.Context, content string) ([]markup.Block, error)
}

// GoldmarkParser walks goldmark's AST and down-converts it to markup blocks.
type GoldmarkParser struct {
	md  goldmark.Markdown
	log *zap.Logger
}

// NewGoldmarkParser creates a GoldmarkParser with GFM extensions.
// A nil logger discards skip notices.
func NewGoldmarkParser(log *zap.Logger) *GoldmarkParser {
	if log == nil {
		log = zap.NewNop()
	}
	return &GoldmarkParser{
		md:  goldmark.New(goldmark.WithExtensions(extension.GFM)),
		log: log,
	}
}

// Parse returns the top-level blocks of content in document order.
// Elements without a block mapping are skipped.
// Supports context cancellation the same way ToHTML does, since goldmark
// does not take a context.
func (p *GoldmarkParser) Parse(ctx context.Context, content string) ([]markup.Block, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		blocks []markup.Block
		err    error
	}

	done := make(chan result, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: fmt.Errorf("%w: %v", ErrParse, r)}
			}
		}()
		src := []byte(content)
		doc := p.md.Parser().Parse(text.NewReader(src))
		done <- result{blocks: p.convert(doc, src)}
	}()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case r := <-done:
		return r.blocks, r.err
	}
}

func (p *GoldmarkParser) convert(doc ast.Node, src []byte) []markup.Block {
	blocks := make([]markup.Block, 0, doc.ChildCount())
	for n := doc.FirstChild(); n != nil; n = n.NextSibling() {
		b, ok := p.block(n, src)
		if !ok {
			p.log.Debug("skipping unmapped element", zap.String("element", n.Kind().String()))
			continue
		}
		blocks = append(blocks, b)
	}
	return blocks
}

func (p *GoldmarkParser) block(n ast.Node, src []byte) (markup.Block, bool) {
	switch node := n.(type) {
	case *ast.Heading:
		kind, ok := headingKind(node.Level)
		if !ok {
			return markup.Block{}, false
		}
		return textBlock(kind, inlineRuns(node, src)), true
	case *ast.Paragraph:
		return textBlock(markup.KindParagraph, inlineRuns(node, src)), true
	case *ast.Blockquote:
		var w runWriter
		w.children(node, src)
		return textBlock(markup.KindBlockquote, w.runs), true
	case *ast.FencedCodeBlock:
		return markup.Block{
			Kind:     markup.KindCodeBlock,
			Text:     literal(node, src),
			Language: string(node.Language(src)),
		}, true
	case *ast.CodeBlock:
		return markup.Block{Kind: markup.KindCodeBlock, Text: literal(node, src)}, true
	case *ast.List:
		return p.list(node, src), true
	case *ast.ThematicBreak:
		return markup.Block{Kind: markup.KindLineBreak}, true
	case *ast.HTMLBlock:
		if isBreakTag(literal(node, src)) {
			return markup.Block{Kind: markup.KindLineBreak}, true
		}
		return markup.Block{}, false
	default:
		return markup.Block{}, false
	}
}

func (p *GoldmarkParser) list(l *ast.List, src []byte) markup.Block {
	kind := markup.KindUnorderedList
	if l.IsOrdered() {
		kind = markup.KindOrderedList
	}

	items := make([]markup.Item, 0, l.ChildCount())
	for c := l.FirstChild(); c != nil; c = c.NextSibling() {
		li, ok := c.(*ast.ListItem)
		if !ok {
			continue
		}
		items = append(items, p.item(li, src))
	}
	return markup.Block{Kind: kind, Items: items}
}

func (p *GoldmarkParser) item(li *ast.ListItem, src []byte) markup.Item {
	var (
		item markup.Item
		w    runWriter
	)
	for c := li.FirstChild(); c != nil; c = c.NextSibling() {
		if nested, ok := c.(*ast.List); ok {
			item.Children = append(item.Children, p.list(nested, src))
			continue
		}
		w.block(c, src)
	}
	item.Runs = w.runs
	item.Text = markup.PlainText(w.runs)
	return item
}

func headingKind(level int) (markup.Kind, bool) {
	switch level {
	case 1:
		return markup.KindHeading1, true
	case 2:
		return markup.KindHeading2, true
	case 3:
		return markup.KindHeading3, true
	default:
		return markup.KindUnknown, false
	}
}

func textBlock(kind markup.Kind, runs []markup.Run) markup.Block {
	return markup.Block{Kind: kind, Text: markup.PlainText(runs), Runs: runs}
}

// literal returns the raw lines of a leaf block without the final newline.
func literal(n ast.Node, src []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(src))
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func isBreakTag(s string) bool {
	switch strings.ToLower(strings.Join(strings.Fields(s), "")) {
	case "<br>", "<br/>":
		return true
	}
	return false
}

func inlineRuns(n ast.Node, src []byte) []markup.Run {
	var w runWriter
	w.inline(n, src, markup.Run{})
	return w.runs
}

// runWriter accumulates runs, merging neighbors with identical flags.
type runWriter struct {
	runs []markup.Run
}

func (w *runWriter) add(s string, style markup.Run) {
	if s == "" {
		return
	}
	if n := len(w.runs); n > 0 && sameStyle(w.runs[n-1], style) {
		w.runs[n-1].Text += s
		return
	}
	style.Text = s
	w.runs = append(w.runs, style)
}

func sameStyle(a, b markup.Run) bool {
	return a.Bold == b.Bold && a.Italic == b.Italic && a.Code == b.Code
}

// inline flattens inline children. Emphasis and code spans set flags;
// links and images contribute their text; raw inline HTML tags are dropped.
func (w *runWriter) inline(parent ast.Node, src []byte, style markup.Run) {
	for c := parent.FirstChild(); c != nil; c = c.NextSibling() {
		switch node := c.(type) {
		case *ast.Text:
			w.add(string(node.Segment.Value(src)), style)
			switch {
			case node.HardLineBreak():
				w.add("\n", style)
			case node.SoftLineBreak():
				w.add(" ", style)
			}
		case *ast.String:
			w.add(string(node.Value), style)
		case *ast.CodeSpan:
			s := style
			s.Code = true
			w.inline(node, src, s)
		case *ast.Emphasis:
			s := style
			if node.Level >= 2 {
				s.Bold = true
			} else {
				s.Italic = true
			}
			w.inline(node, src, s)
		case *ast.AutoLink:
			w.add(string(node.Label(src)), style)
		case *ast.RawHTML:
		default:
			w.inline(c, src, style)
		}
	}
}

// block appends the text of a block nested inside a container,
// separated from earlier content by a newline.
func (w *runWriter) block(n ast.Node, src []byte) {
	switch node := n.(type) {
	case *ast.Paragraph, *ast.TextBlock, *ast.Heading:
		w.separate()
		w.inline(node, src, markup.Run{})
	case *ast.FencedCodeBlock, *ast.CodeBlock:
		w.separate()
		w.add(literal(node, src), markup.Run{Code: true})
	case *ast.ThematicBreak, *ast.HTMLBlock:
	default:
		w.children(node, src)
	}
}

func (w *runWriter) children(n ast.Node, src []byte) {
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		w.block(c, src)
	}
}

func (w *runWriter) separate() {
	if len(w.runs) > 0 {
		w.add("\n", w.runs[len(w.runs)-1])
	}
}
