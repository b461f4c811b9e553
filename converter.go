package scribe

import (
	"context"
	"fmt"
	"html/template"
	"strings"

	"go.uber.org/zap"

	"github.com/alnah/go-scribe/internal/assets"
	"github.com/alnah/go-scribe/internal/document"
	"github.com/alnah/go-scribe/internal/fileutil"
	"github.com/alnah/go-scribe/internal/flow"
	"github.com/alnah/go-scribe/internal/fonts"
	"github.com/alnah/go-scribe/internal/markup"
	"github.com/alnah/go-scribe/internal/pipeline"
	"github.com/alnah/go-scribe/internal/style"
)

// Compile-time interface implementation checks.
var (
	_ pipeline.Normalizer   = (*pipeline.AliasNormalizer)(nil)
	_ pipeline.Parser       = (*pipeline.GoldmarkParser)(nil)
	_ pipeline.HTMLRenderer = (*pipeline.PreviewRenderer)(nil)
)

// Converter runs the editor pipeline: text to preview HTML, and text to
// a paginated PDF. Create with NewConverter and Close when done.
//
// A Converter is meant for one editor: calls are sequential. The style
// registry and templates are fixed at construction.
type Converter struct {
	cfg          converterConfig
	logger       *zap.Logger
	assetLoader  assets.AssetLoader
	normalizer   pipeline.Normalizer
	parser       pipeline.Parser
	previewer    pipeline.HTMLRenderer
	builder      *flow.Builder
	document     *document.Renderer
	previewPage  *template.Template
	previewCSS   string
	pdfConverter pdfConverter
}

// NewConverter creates a Converter with default configuration.
// Fails when page settings or style overrides are invalid, or when a
// configured font file or asset directory cannot be used.
func NewConverter(opts ...Option) (*Converter, error) {
	c := &Converter{
		cfg:         converterConfig{timeout: defaultTimeout},
		logger:      zap.NewNop(),
		assetLoader: assets.NewEmbeddedLoader(),
		normalizer:  pipeline.NewAliasNormalizer(),
		previewer:   pipeline.NewPreviewRenderer(),
	}

	for _, opt := range opts {
		opt(c)
	}

	page := c.cfg.page
	if page == nil {
		page = DefaultPageSettings()
	}
	if err := page.Validate(); err != nil {
		return nil, err
	}
	c.cfg.page = page

	if c.cfg.assetPath != "" {
		resolver, err := assets.NewAssetResolver(c.cfg.assetPath)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidAssetPath, err)
		}
		c.assetLoader = resolver
		if resolver.HasCustomLoader() {
			c.logger.Debug("custom assets", zap.String("path", c.cfg.assetPath))
		}
	}

	registry, err := buildRegistry(c.cfg.styles)
	if err != nil {
		return nil, err
	}

	faces := fonts.Set{
		Emoji:   fonts.Face{Family: c.cfg.fonts.Emoji.Family, File: c.cfg.fonts.Emoji.File},
		Unicode: fonts.Face{Family: c.cfg.fonts.Unicode.Family, File: c.cfg.fonts.Unicode.File},
	}
	if err := faces.Load(); err != nil {
		return nil, err
	}

	c.parser = pipeline.NewGoldmarkParser(c.logger)
	c.builder = flow.NewBuilder(
		flow.WithRichText(c.cfg.richText),
		flow.WithStyles(registry),
		flow.WithLogger(c.logger),
	)

	docTmpl, err := c.assetLoader.LoadTemplate(assets.DocumentTemplate)
	if err != nil {
		return nil, fmt.Errorf("loading document template: %w", err)
	}
	c.document, err = document.New(docTmpl,
		document.WithStyles(registry),
		document.WithFonts(faces),
		document.WithPage(page.documentPage()),
	)
	if err != nil {
		return nil, err
	}

	if err := c.loadPreviewPage(); err != nil {
		return nil, err
	}

	// Create PDF converter if not injected (e.g., by tests)
	if c.pdfConverter == nil {
		c.pdfConverter = newRodConverter(c.cfg.timeout, c.logger)
	}

	return c, nil
}

// buildRegistry resolves kind names and applies overrides to the defaults.
func buildRegistry(overrides map[string]StyleOverride) (*style.Registry, error) {
	if len(overrides) == 0 {
		return style.Default(), nil
	}
	byKind := make(map[markup.Kind]style.Override, len(overrides))
	for name, o := range overrides {
		kind, ok := markup.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("%w: unknown block kind %q", ErrInvalidStyle, name)
		}
		byKind[kind] = o
	}
	registry, err := style.New(byKind)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidStyle, err)
	}
	return registry, nil
}

func (c *Converter) loadPreviewPage() error {
	src, err := c.assetLoader.LoadTemplate(assets.PreviewTemplate)
	if err != nil {
		return fmt.Errorf("loading preview template: %w", err)
	}
	c.previewPage, err = template.New("preview").Parse(src)
	if err != nil {
		return fmt.Errorf("%w: preview: %v", ErrTemplate, err)
	}
	c.previewCSS, err = c.assetLoader.LoadStyle(assets.PreviewStyle)
	if err != nil {
		return fmt.Errorf("loading preview style: %w", err)
	}
	return nil
}

// Preview renders text as the live preview fragment: GFM with hard line
// breaks and highlighted code. The fragment has no <html> wrapper.
func (c *Converter) Preview(ctx context.Context, text string) (string, error) {
	return c.previewer.ToHTML(ctx, c.normalizer.Normalize(text))
}

// PreviewPage renders a standalone HTML page around the preview fragment,
// for viewing in a browser. Relative image and link targets are resolved
// against input.SourceDir.
func (c *Converter) PreviewPage(ctx context.Context, input Input) (page string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	fragment, err := c.Preview(ctx, input.Markdown)
	if err != nil {
		return "", err
	}
	fragment, err = pipeline.ResolveLinks(fragment, input.SourceDir)
	if err != nil {
		return "", fmt.Errorf("resolving links: %w", err)
	}

	title := document.DefaultTitle
	if blocks, perr := c.parser.Parse(ctx, c.normalizer.Normalize(input.Markdown)); perr == nil {
		title = document.Title(c.builder.Build(blocks))
	}

	var b strings.Builder
	err = c.previewPage.Execute(&b, struct {
		Title string
		CSS   template.CSS
		Body  template.HTML
	}{
		Title: title,
		CSS:   template.CSS(c.previewCSS), // #nosec G203 -- CSS comes from the asset loader
		Body:  template.HTML(fragment),    // #nosec G203 -- produced by goldmark without unsafe HTML
	})
	if err != nil {
		return "", fmt.Errorf("%w: preview: %v", ErrTemplate, err)
	}
	return b.String(), nil
}

// Convert runs the export pipeline and returns the printable HTML and the PDF.
// Empty input produces a valid document with an empty body.
// If input.HTMLOnly is true, PDF generation is skipped (for debugging).
// Recovers from internal panics to prevent crashes from propagating to callers.
func (c *Converter) Convert(ctx context.Context, input Input) (result *ConvertResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("internal error: %v", r)
		}
	}()

	text := c.normalizer.Normalize(input.Markdown)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	blocks, err := c.parser.Parse(ctx, text)
	if err != nil {
		return nil, fmt.Errorf("parsing markup: %w", err)
	}

	nodes := c.builder.Build(blocks)
	c.logger.Debug("layout built", zap.Int("blocks", len(blocks)), zap.Int("nodes", len(nodes)))

	htmlContent, err := c.document.Render(ctx, nodes)
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}

	res := &ConvertResult{HTML: []byte(htmlContent)}
	if input.HTMLOnly {
		return res, nil
	}

	pdfBytes, err := c.pdfConverter.ToPDF(ctx, htmlContent, c.cfg.page)
	if err != nil {
		return nil, fmt.Errorf("converting to PDF: %w", err)
	}

	res.PDF = pdfBytes
	return res, nil
}

// Export converts text to PDF and writes it to path, replacing any
// existing file. A failed write may leave a partial file behind.
func (c *Converter) Export(ctx context.Context, text, path string) error {
	res, err := c.Convert(ctx, Input{Markdown: text})
	if err != nil {
		return err
	}
	if err := fileutil.WriteFile(path, res.PDF); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteOutput, err)
	}
	c.logger.Info("exported", zap.String("path", path), zap.Int("bytes", len(res.PDF)))
	return nil
}

// Close releases resources (headless Chrome browser).
func (c *Converter) Close() error {
	if c.pdfConverter != nil {
		return c.pdfConverter.Close()
	}
	return nil
}
