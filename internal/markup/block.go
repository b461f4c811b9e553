// Package markup defines the block taxonomy produced by the parser adapter
// and consumed by the flowable builder.
//
// Blocks are plain values built fresh for every preview or export call.
// Nothing in this package mutates a Block after construction.
package markup

import "strings"

// Kind identifies the structural type of a Block.
// The set is closed: producers map anything else to "skip".
type Kind int

// Block kinds. KindUnknown is the zero value and is never emitted by the parser.
const (
	KindUnknown Kind = iota
	KindHeading1
	KindHeading2
	KindHeading3
	KindParagraph
	KindBlockquote
	KindCodeBlock
	KindUnorderedList
	KindOrderedList
	KindLineBreak
)

var kindNames = [...]string{
	KindUnknown:       "unknown",
	KindHeading1:      "heading1",
	KindHeading2:      "heading2",
	KindHeading3:      "heading3",
	KindParagraph:     "paragraph",
	KindBlockquote:    "blockquote",
	KindCodeBlock:     "code",
	KindUnorderedList: "unorderedList",
	KindOrderedList:   "orderedList",
	KindLineBreak:     "lineBreak",
}

// String returns the lower camel case name used in config files and CSS classes.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return kindNames[KindUnknown]
	}
	return kindNames[k]
}

// IsList reports whether k carries Items instead of Text.
func (k Kind) IsList() bool {
	return k == KindUnorderedList || k == KindOrderedList
}

// IsHeading reports whether k is one of the heading kinds.
func (k Kind) IsHeading() bool {
	return k == KindHeading1 || k == KindHeading2 || k == KindHeading3
}

// Kinds returns every known kind in declaration order, excluding KindUnknown.
func Kinds() []Kind {
	return []Kind{
		KindHeading1, KindHeading2, KindHeading3,
		KindParagraph, KindBlockquote, KindCodeBlock,
		KindUnorderedList, KindOrderedList, KindLineBreak,
	}
}

// ParseKind resolves a kind from its String form (case-insensitive).
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds() {
		if strings.EqualFold(k.String(), s) {
			return k, true
		}
	}
	return KindUnknown, false
}

// Run is a span of inline text with emphasis flags.
type Run struct {
	Text   string
	Bold   bool
	Italic bool
	Code   bool
}

// Block is one structural unit of parsed markup.
type Block struct {
	Kind Kind

	// Text is the flattened plain text for non-list kinds. Emphasis markers
	// are stripped; hard line breaks are kept as "\n".
	Text string

	// Runs mirrors Text with inline emphasis preserved. May be nil.
	Runs []Run

	// Language is the info string of a fenced code block.
	Language string

	// Items holds list entries for list kinds, in document order.
	Items []Item
}

// Item is one entry of a list block.
type Item struct {
	Text string
	Runs []Run

	// Children holds nested list blocks found inside the item.
	Children []Block
}

// PlainText joins runs back into their flattened form.
func PlainText(runs []Run) string {
	var b strings.Builder
	for _, r := range runs {
		b.WriteString(r.Text)
	}
	return b.String()
}
