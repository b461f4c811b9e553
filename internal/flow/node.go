// Package flow turns parsed blocks into styled output nodes.
//
// A Node is the unit the document renderer lays out: a styled text run,
// a vertical spacer or a list container. Nodes are created and consumed
// within a single export call.
package flow

import (
	"github.com/alnah/go-scribe/internal/markup"
	"github.com/alnah/go-scribe/internal/style"
)

// NodeType discriminates the Node variants.
type NodeType int

// Node variants.
const (
	NodeText NodeType = iota
	NodeSpacer
	NodeList
)

func (t NodeType) String() string {
	switch t {
	case NodeText:
		return "text"
	case NodeSpacer:
		return "spacer"
	case NodeList:
		return "list"
	default:
		return "unknown"
	}
}

// Node is one laid-out element of the output document.
type Node struct {
	Type NodeType

	// Block is the markup kind the node was built from.
	Block markup.Kind

	// Style is resolved from the registry at build time.
	Style style.Descriptor

	// Text and Runs are set for NodeText. Runs is nil unless rich text
	// is enabled on the builder.
	Text     string
	Runs     []markup.Run
	Language string

	// Height is the gap in points for NodeSpacer.
	Height float64

	// List is set for NodeList.
	List *List
}

// List is a container of list items sharing one marker scheme.
type List struct {
	Ordered bool
	Depth   int
	Items   []ListItem
}

// ListItem is one entry of a list container.
type ListItem struct {
	// Marker is "1.", "2.", ... for ordered lists, a bullet glyph otherwise.
	Marker string
	Body   Node

	// Children holds nested list containers.
	Children []Node
}
