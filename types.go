package scribe

import (
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alnah/go-scribe/internal/document"
	"github.com/alnah/go-scribe/internal/grammar"
	"github.com/alnah/go-scribe/internal/style"
)

// Page size constants.
const (
	PageSizeLetter = "letter"
	PageSizeA4     = "a4"
	PageSizeLegal  = "legal"
)

// Orientation constants.
const (
	OrientationPortrait  = "portrait"
	OrientationLandscape = "landscape"
)

// Margin bounds in inches.
const (
	MinMargin     = 0.25
	MaxMargin     = 3.0
	DefaultMargin = 0.5
)

// paperSizes holds portrait width and height in inches.
var paperSizes = map[string][2]float64{
	PageSizeLetter: {8.5, 11},
	PageSizeA4:     {8.27, 11.69},
	PageSizeLegal:  {8.5, 14},
}

// PageSettings configures PDF page dimensions.
type PageSettings struct {
	Size        string  // "letter", "a4", "legal"
	Orientation string  // "portrait", "landscape"
	Margin      float64 // inches, applied to all sides
}

// DefaultPageSettings returns US Letter portrait with half-inch margins.
func DefaultPageSettings() *PageSettings {
	return &PageSettings{
		Size:        PageSizeLetter,
		Orientation: OrientationPortrait,
		Margin:      DefaultMargin,
	}
}

// Validate checks that page settings are valid.
// Returns nil if p is nil (nil means use defaults).
// Does not mutate - uses case-insensitive comparison.
func (p *PageSettings) Validate() error {
	if p == nil {
		return nil
	}

	if _, ok := paperSizes[strings.ToLower(p.Size)]; !ok {
		return fmt.Errorf("%w: %q", ErrInvalidPageSize, p.Size)
	}

	switch strings.ToLower(p.Orientation) {
	case OrientationPortrait, OrientationLandscape:
	default:
		return fmt.Errorf("%w: %q", ErrInvalidOrientation, p.Orientation)
	}

	if p.Margin < MinMargin || p.Margin > MaxMargin {
		return fmt.Errorf("%w: %.2f (must be between %.2f and %.2f)", ErrInvalidMargin, p.Margin, MinMargin, MaxMargin)
	}

	return nil
}

// dimensions returns the paper width and height in inches after orientation.
// Call only on validated settings.
func (p *PageSettings) dimensions() (width, height float64) {
	size := paperSizes[strings.ToLower(p.Size)]
	width, height = size[0], size[1]
	if strings.EqualFold(p.Orientation, OrientationLandscape) {
		width, height = height, width
	}
	return width, height
}

// documentPage converts the settings to the renderer's @page values.
func (p *PageSettings) documentPage() document.Page {
	w, h := p.dimensions()
	page := document.DefaultPage()
	page.Size = fmt.Sprintf("%.2fin %.2fin", w, h)
	page.Margin = fmt.Sprintf("%.2fin", p.Margin)
	return page
}

// Input contains conversion parameters.
type Input struct {
	Markdown  string // Editor text; may be empty
	SourceDir string // Resolves relative image and link paths in previews (optional)
	HTMLOnly  bool   // Skip PDF generation and return the printable HTML
}

// ConvertResult holds the printable HTML and, unless HTMLOnly was set, the PDF.
type ConvertResult struct {
	HTML []byte
	PDF  []byte
}

// StyleOverride changes selected presentation fields of one block kind.
// Nil fields keep the built-in value.
type StyleOverride = style.Override

// FontFace names a fallback font family and, optionally, a font file to embed.
type FontFace struct {
	Family string
	File   string // TTF, OTF, WOFF or WOFF2
}

// FontSettings configures the faces used for text outside the primary font.
type FontSettings struct {
	Emoji   FontFace
	Unicode FontFace
}

// Span is a grammar or spelling finding in the editor text.
// Offset and Length are byte positions in the checked string.
type Span = grammar.Span

// Option configures a Converter.
type Option func(*Converter)

// converterConfig holds internal configuration for Converter.
type converterConfig struct {
	timeout   time.Duration
	richText  bool
	page      *PageSettings
	styles    map[string]StyleOverride
	fonts     FontSettings
	assetPath string
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the PDF rendering timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("scribe: WithTimeout duration must be positive")
	}
	return func(c *Converter) {
		c.cfg.timeout = d
	}
}

// WithRichText keeps bold, italic and inline code in exported documents.
// By default exported text is flattened to one style per block.
func WithRichText(enabled bool) Option {
	return func(c *Converter) {
		c.cfg.richText = enabled
	}
}

// WithPage sets the export page size, orientation and margins.
// A nil value keeps US Letter portrait.
func WithPage(p *PageSettings) Option {
	return func(c *Converter) {
		c.cfg.page = p
	}
}

// WithStyles overrides block styles, keyed by block kind name
// ("heading1", "paragraph", "code", ...).
func WithStyles(overrides map[string]StyleOverride) Option {
	return func(c *Converter) {
		c.cfg.styles = overrides
	}
}

// WithFonts configures the emoji and extended-script fallback fonts.
func WithFonts(f FontSettings) Option {
	return func(c *Converter) {
		c.cfg.fonts = f
	}
}

// WithAssetPath loads templates and styles from dir before the built-in ones.
func WithAssetPath(dir string) Option {
	return func(c *Converter) {
		c.cfg.assetPath = dir
	}
}

// WithLogger sets the logger for skipped elements and browser lifecycle events.
func WithLogger(l *zap.Logger) Option {
	return func(c *Converter) {
		if l != nil {
			c.logger = l
		}
	}
}
