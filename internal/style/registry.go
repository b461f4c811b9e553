// Package style holds the presentation attributes for each block kind.
//
// The default table is built once at package initialization and never
// mutated. Callers that need different values build a new Registry from
// overrides at startup; a Registry is read-only after construction and
// hands out copies, so it is safe to share.
package style

import (
	"errors"
	"fmt"

	"github.com/alnah/go-scribe/internal/markup"
)

// Font family names understood by the CSS builder.
const (
	FamilySans      = "Helvetica"
	FamilyMonospace = "Courier"
)

// Spacer height for line breaks: 0.2 inch.
const LineBreakHeight = 14.4

// Bounds for overridden sizes, in points.
const (
	MinFontSize = 4.0
	MaxFontSize = 96.0
	MaxSpacing  = 144.0
)

// ErrInvalidOverride indicates an override value is out of range.
var ErrInvalidOverride = errors.New("invalid style override")

// Descriptor is the presentation record of one block kind.
// Sizes are in points.
type Descriptor struct {
	FontFamily string
	FontSize   float64
	LineHeight float64
	SpaceAfter float64
	LeftIndent float64
	Color      string
	Background string
	Italic     bool
	Bold       bool
}

// defaults mirrors the classic report layout: 10pt body text, headings
// stepping down from 18pt, indented grey italic quotes and a shaded
// monospace code style.
var defaults = [...]Descriptor{
	markup.KindHeading1: {
		FontFamily: FamilySans, FontSize: 18, LineHeight: 22, SpaceAfter: 12,
		Color: "#000000", Bold: true,
	},
	markup.KindHeading2: {
		FontFamily: FamilySans, FontSize: 16, LineHeight: 20, SpaceAfter: 10,
		Color: "#000000", Bold: true,
	},
	markup.KindHeading3: {
		FontFamily: FamilySans, FontSize: 14, LineHeight: 18, SpaceAfter: 8,
		Color: "#000000", Bold: true, Italic: true,
	},
	markup.KindParagraph: {
		FontFamily: FamilySans, FontSize: 10, LineHeight: 12, SpaceAfter: 12,
		Color: "#000000",
	},
	markup.KindBlockquote: {
		FontFamily: FamilySans, FontSize: 10, LineHeight: 12, SpaceAfter: 12,
		LeftIndent: 20, Color: "#808080", Italic: true,
	},
	markup.KindCodeBlock: {
		FontFamily: FamilyMonospace, FontSize: 10, LineHeight: 12, SpaceAfter: 12,
		LeftIndent: 36, Color: "#000000", Background: "#d3d3d3",
	},
	markup.KindUnorderedList: {
		FontFamily: FamilySans, FontSize: 10, LineHeight: 12, SpaceAfter: 12,
		LeftIndent: 18, Color: "#000000",
	},
	markup.KindOrderedList: {
		FontFamily: FamilySans, FontSize: 10, LineHeight: 12, SpaceAfter: 12,
		LeftIndent: 18, Color: "#000000",
	},
	markup.KindLineBreak: {
		LineHeight: LineBreakHeight,
	},
}

// Registry maps block kinds to descriptors.
type Registry struct {
	table [len(defaults)]Descriptor
}

var defaultRegistry = &Registry{table: defaults}

// Default returns the built-in registry.
func Default() *Registry {
	return defaultRegistry
}

// Lookup returns the descriptor for kind. The second result is false for
// kinds the registry does not know.
func (r *Registry) Lookup(kind markup.Kind) (Descriptor, bool) {
	if kind <= markup.KindUnknown || int(kind) >= len(r.table) {
		return Descriptor{}, false
	}
	return r.table[kind], true
}

// Override changes selected fields of one kind's descriptor.
// Nil fields keep the default.
type Override struct {
	FontFamily *string
	FontSize   *float64
	LineHeight *float64
	SpaceAfter *float64
	LeftIndent *float64
	Color      *string
	Background *string
	Italic     *bool
	Bold       *bool
}

// New builds a registry from the defaults with overrides applied.
// Returns ErrInvalidOverride for unknown kinds or out-of-range values.
func New(overrides map[markup.Kind]Override) (*Registry, error) {
	r := &Registry{table: defaults}
	for kind, o := range overrides {
		d, ok := r.Lookup(kind)
		if !ok {
			return nil, fmt.Errorf("%w: unknown kind %d", ErrInvalidOverride, kind)
		}
		if err := o.apply(&d); err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		r.table[kind] = d
	}
	return r, nil
}

func (o Override) apply(d *Descriptor) error {
	if o.FontFamily != nil {
		if *o.FontFamily == "" {
			return fmt.Errorf("%w: empty font family", ErrInvalidOverride)
		}
		d.FontFamily = *o.FontFamily
	}
	if o.FontSize != nil {
		if *o.FontSize < MinFontSize || *o.FontSize > MaxFontSize {
			return fmt.Errorf("%w: font size %.1f (must be between %.0f and %.0f)", ErrInvalidOverride, *o.FontSize, MinFontSize, MaxFontSize)
		}
		d.FontSize = *o.FontSize
	}
	for _, f := range []struct {
		name string
		src  *float64
		dst  *float64
	}{
		{"line height", o.LineHeight, &d.LineHeight},
		{"space after", o.SpaceAfter, &d.SpaceAfter},
		{"left indent", o.LeftIndent, &d.LeftIndent},
	} {
		if f.src == nil {
			continue
		}
		if *f.src < 0 || *f.src > MaxSpacing {
			return fmt.Errorf("%w: %s %.1f (must be between 0 and %.0f)", ErrInvalidOverride, f.name, *f.src, MaxSpacing)
		}
		*f.dst = *f.src
	}
	if o.Color != nil {
		if !IsValidColor(*o.Color) {
			return fmt.Errorf("%w: color %q", ErrInvalidOverride, *o.Color)
		}
		d.Color = *o.Color
	}
	if o.Background != nil {
		if *o.Background != "" && !IsValidColor(*o.Background) {
			return fmt.Errorf("%w: background %q", ErrInvalidOverride, *o.Background)
		}
		d.Background = *o.Background
	}
	if o.Italic != nil {
		d.Italic = *o.Italic
	}
	if o.Bold != nil {
		d.Bold = *o.Bold
	}
	return nil
}
