// Package pipeline implements the text stages of the editor pipeline.
//
// This package handles everything that happens before layout:
//   - Alias expansion (:smile: and friends) on raw editor text
//   - Parsing normalized text into markup blocks via Goldmark
//   - Rendering the live preview fragment via Goldmark with hard wraps
//   - Resolving relative image and link targets in that fragment
//
// Mapping blocks to styled output nodes lives in internal/flow, and PDF
// rendering is handled by the root scribe package using headless Chrome.
// This separation keeps the pipeline focused on document structure, while
// later stages handle presentation and pagination.
package pipeline
