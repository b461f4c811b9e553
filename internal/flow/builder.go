package flow

import (
	"strconv"

	"go.uber.org/zap"

	"github.com/alnah/go-scribe/internal/markup"
	"github.com/alnah/go-scribe/internal/style"
)

// Bullet glyphs by nesting depth. Deeper levels reuse the last glyph.
var bullets = [...]string{"•", "◦", "▪"}

// Builder maps blocks to output nodes using a style registry.
type Builder struct {
	styles   *style.Registry
	richText bool
	logger   *zap.Logger
}

// Option configures a Builder.
type Option func(*Builder)

// WithRichText keeps inline emphasis runs on text nodes.
func WithRichText(enabled bool) Option {
	return func(b *Builder) {
		b.richText = enabled
	}
}

// WithStyles sets the style registry. A nil registry is ignored.
func WithStyles(r *style.Registry) Option {
	return func(b *Builder) {
		if r != nil {
			b.styles = r
		}
	}
}

// WithLogger sets the logger used to report skipped blocks.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// NewBuilder creates a builder with the default registry and flattened text.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		styles: style.Default(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Build returns one node per recognized block, in document order.
// Unrecognized kinds are skipped.
func (b *Builder) Build(blocks []markup.Block) []Node {
	nodes := make([]Node, 0, len(blocks))
	for _, blk := range blocks {
		n, ok := b.node(blk, 0)
		if !ok {
			b.logger.Debug("skipping block", zap.Int("kind", int(blk.Kind)))
			continue
		}
		nodes = append(nodes, n)
	}
	return nodes
}

func (b *Builder) node(blk markup.Block, depth int) (Node, bool) {
	switch blk.Kind {
	case markup.KindHeading1, markup.KindHeading2, markup.KindHeading3,
		markup.KindParagraph, markup.KindBlockquote:
		return b.text(blk.Kind, blk.Kind, blk.Text, blk.Runs), true

	case markup.KindCodeBlock:
		n := b.text(blk.Kind, blk.Kind, blk.Text, nil)
		n.Language = blk.Language
		return n, true

	case markup.KindUnorderedList, markup.KindOrderedList:
		return b.list(blk, depth), true

	case markup.KindLineBreak:
		d, _ := b.styles.Lookup(markup.KindLineBreak)
		return Node{
			Type:   NodeSpacer,
			Block:  markup.KindLineBreak,
			Style:  d,
			Height: style.LineBreakHeight,
		}, true

	default:
		return Node{}, false
	}
}

// text builds a NodeText for kind, styled as styleKind.
func (b *Builder) text(kind, styleKind markup.Kind, text string, runs []markup.Run) Node {
	d, _ := b.styles.Lookup(styleKind)
	n := Node{
		Type:  NodeText,
		Block: kind,
		Style: d,
		Text:  text,
	}
	if b.richText && len(runs) > 0 {
		n.Runs = runs
	}
	return n
}

// list builds a container whose item bodies use the paragraph style.
func (b *Builder) list(blk markup.Block, depth int) Node {
	ordered := blk.Kind == markup.KindOrderedList
	d, _ := b.styles.Lookup(blk.Kind)

	l := &List{
		Ordered: ordered,
		Depth:   depth,
		Items:   make([]ListItem, 0, len(blk.Items)),
	}
	for i, it := range blk.Items {
		item := ListItem{
			Marker: marker(ordered, i, depth),
			Body:   b.text(markup.KindParagraph, markup.KindParagraph, it.Text, it.Runs),
		}
		for _, child := range it.Children {
			if !child.Kind.IsList() {
				continue
			}
			item.Children = append(item.Children, b.list(child, depth+1))
		}
		l.Items = append(l.Items, item)
	}

	return Node{
		Type:  NodeList,
		Block: blk.Kind,
		Style: d,
		List:  l,
	}
}

func marker(ordered bool, index, depth int) string {
	if ordered {
		return strconv.Itoa(index+1) + "."
	}
	if depth >= len(bullets) {
		depth = len(bullets) - 1
	}
	return bullets[depth]
}
