// Package cheatsheet holds the quick reference of supported markup.
package cheatsheet

import (
	"fmt"
	"strings"
)

// Entry pairs a markup feature with example syntax.
type Entry struct {
	Style  string
	Symbol string
}

var entries = []Entry{
	{Style: "Headers", Symbol: "# H1\n## H2\n### H3"},
	{Style: "Emphasis", Symbol: "*Italic* or _Italic_\n**Bold** or __Bold__\n***Bold Italic*** or ___Bold Italic___"},
	{Style: "Blockquotes", Symbol: "> This is a blockquote"},
	{Style: "Lists", Symbol: "- Item 1\n- Item 2\n  - Subitem 1\n  - Subitem 2\n\n1. First item\n2. Second item"},
	{Style: "Code", Symbol: "`inline code`\n\n```\nCode block\n```"},
	{Style: "Links", Symbol: "[Link text](https://example.com)"},
	{Style: "Emoji", Symbol: ":smile: :rocket: :+1:"},
	{Style: "Line breaks", Symbol: "---\n\n<br>"},
}

// Markdown renders the reference as a document: one heading per entry
// followed by its syntax in a fenced block.
func Markdown() string {
	var b strings.Builder
	b.WriteString("# Markdown Cheat Sheet\n")
	for _, e := range entries {
		fmt.Fprintf(&b, "\n## %s\n\n~~~markdown\n%s\n~~~\n", e.Style, e.Symbol)
	}
	return b.String()
}

// Text renders the reference for a terminal.
func Text() string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(e.Style + "\n")
		for _, line := range strings.Split(e.Symbol, "\n") {
			b.WriteString("    " + line + "\n")
		}
	}
	return b.String()
}
