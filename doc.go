// Package scribe is the core of a Markdown editor: it renders editor text
// to a live HTML preview and exports it as a paginated PDF using headless
// Chrome.
//
// # Quick Start
//
// Create a converter, export text, and close when done:
//
//	conv, err := scribe.NewConverter()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer conv.Close()
//
//	if err := conv.Export(ctx, "# Hello\n\nWorld", "output.pdf"); err != nil {
//	    log.Fatal(err)
//	}
//
// Convert returns the printable HTML alongside the PDF bytes. Use
// Input.HTMLOnly to skip PDF generation.
//
// # Export Pipeline
//
// Export runs these stages in order:
//
//  1. Alias expansion (:rocket: becomes the emoji), fenced code untouched
//  2. Parsing via Goldmark into blocks: headings 1-3, paragraphs, blockquotes,
//     code blocks, ordered and unordered lists, line breaks
//  3. Mapping each block to a styled output node; unknown elements are skipped
//  4. Laying nodes out as a printable HTML page, with fallback font spans for
//     emoji and scripts outside Latin
//  5. PDF rendering via headless Chrome (go-rod)
//
// The preview path renders the same text with Goldmark directly, keeping
// line breaks as typed.
//
// # Configuration
//
// Use functional options to customize the converter:
//
//	conv, err := scribe.NewConverter(
//	    scribe.WithTimeout(2 * time.Minute),
//	    scribe.WithPage(&scribe.PageSettings{Size: "a4", Orientation: "portrait", Margin: 0.75}),
//	    scribe.WithRichText(true),
//	    scribe.WithFonts(scribe.FontSettings{Emoji: scribe.FontFace{Family: "Noto Color Emoji"}}),
//	)
//
// # Editor
//
// Editor holds the buffer of a single document and ties it to a converter
// and an optional grammar checker. Export failures are logged and returned;
// the buffer is left as it was.
//
//	ed := scribe.NewEditor(conv, scribe.WithOutputPath("notes.pdf"))
//	ed.SetText(ctx, text)
//	_ = ed.Export(ctx)
//
// # Browser Requirements
//
// PDF generation requires Chrome/Chromium. The go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary.
package scribe
