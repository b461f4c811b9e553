package style

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alnah/go-scribe/internal/markup"
)

// Generic CSS stacks for the logical family names.
var familyStacks = map[string][]string{
	FamilySans:      {"Helvetica", "Arial", "Liberation Sans", "sans-serif"},
	FamilyMonospace: {"Courier New", "Courier", "Liberation Mono", "monospace"},
}

// Orphan/widow defaults for printed paragraphs.
const (
	defaultOrphans = 2
	defaultWidows  = 2
)

var (
	hexColor   = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	namedColor = regexp.MustCompile(`^[a-zA-Z]{3,20}$`)
)

// IsValidColor accepts #rgb, #rrggbb and plain named colors.
func IsValidColor(c string) bool {
	return hexColor.MatchString(c) || namedColor.MatchString(c)
}

// ClassName returns the CSS class assigned to blocks of kind.
func ClassName(kind markup.Kind) string {
	return "b-" + strings.ToLower(kind.String())
}

// FontStack returns the CSS font-family value for a logical family,
// followed by the given fallback families.
func FontStack(family string, fallbacks ...string) string {
	stack, ok := familyStacks[family]
	if !ok {
		stack = []string{family, "sans-serif"}
	}
	generic := stack[len(stack)-1]
	names := make([]string, 0, len(stack)+len(fallbacks))
	names = append(names, stack[:len(stack)-1]...)
	names = append(names, fallbacks...)

	parts := make([]string, 0, len(names)+1)
	for _, n := range names {
		parts = append(parts, quoteFamily(n))
	}
	parts = append(parts, generic)
	return strings.Join(parts, ", ")
}

// quoteFamily wraps a family name in double quotes with CSS string escaping.
func quoteFamily(name string) string {
	name = strings.ReplaceAll(name, `\`, `\\`)
	name = strings.ReplaceAll(name, `"`, `\"`)
	name = strings.ReplaceAll(name, "\n", "")
	return `"` + name + `"`
}

// CSS renders the registry as a stylesheet: one rule per block kind plus
// page-break protection for headings. Fallback families are appended to
// every font stack so glyphs missing from the primary font still render.
func CSS(r *Registry, fallbacks ...string) string {
	var buf strings.Builder

	body, _ := r.Lookup(markup.KindParagraph)
	fmt.Fprintf(&buf, "body {\n  margin: 0;\n  font-family: %s;\n  font-size: %.1fpt;\n  color: %s;\n}\n",
		FontStack(body.FontFamily, fallbacks...), body.FontSize, body.Color)

	for _, kind := range markup.Kinds() {
		d, ok := r.Lookup(kind)
		if !ok {
			continue
		}
		if kind == markup.KindLineBreak {
			fmt.Fprintf(&buf, ".%s {\n  height: %.1fpt;\n}\n", ClassName(kind), d.LineHeight)
			continue
		}
		buf.WriteString(rule(ClassName(kind), d, fallbacks))
	}

	buf.WriteString(`
/* Page breaks: keep headings with the following block */
h1, h2, h3 {
  break-after: avoid;
  page-break-after: avoid;
  break-inside: avoid;
  page-break-inside: avoid;
}
pre {
  white-space: pre-wrap;
  break-inside: avoid;
}
`)
	fmt.Fprintf(&buf, "p, li, blockquote {\n  orphans: %d;\n  widows: %d;\n}\n", defaultOrphans, defaultWidows)
	buf.WriteString(`ul.list, ol.list {
  list-style: none;
  margin-top: 0;
}
.marker {
  display: inline-block;
  min-width: 1.5em;
}
`)
	return buf.String()
}

func rule(class string, d Descriptor, fallbacks []string) string {
	var buf strings.Builder
	fmt.Fprintf(&buf, ".%s {\n", class)
	fmt.Fprintf(&buf, "  font-family: %s;\n", FontStack(d.FontFamily, fallbacks...))
	fmt.Fprintf(&buf, "  font-size: %.1fpt;\n", d.FontSize)
	fmt.Fprintf(&buf, "  line-height: %.1fpt;\n", d.LineHeight)
	fmt.Fprintf(&buf, "  margin: 0 0 %.1fpt %.1fpt;\n", d.SpaceAfter, d.LeftIndent)
	if d.Color != "" {
		fmt.Fprintf(&buf, "  color: %s;\n", d.Color)
	}
	if d.Background != "" {
		fmt.Fprintf(&buf, "  background-color: %s;\n", d.Background)
	}
	weight := "normal"
	if d.Bold {
		weight = "bold"
	}
	fmt.Fprintf(&buf, "  font-weight: %s;\n", weight)
	fontStyle := "normal"
	if d.Italic {
		fontStyle = "italic"
	}
	fmt.Fprintf(&buf, "  font-style: %s;\n", fontStyle)
	buf.WriteString("}\n")
	return buf.String()
}
