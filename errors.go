package scribe

import (
	"errors"

	"github.com/alnah/go-scribe/internal/document"
	"github.com/alnah/go-scribe/internal/fonts"
	"github.com/alnah/go-scribe/internal/grammar"
	"github.com/alnah/go-scribe/internal/pipeline"
)

// Sentinel errors for library operations.
var (
	ErrHTMLConversion = pipeline.ErrHTMLConversion
	ErrParse          = pipeline.ErrParse
	ErrPDFGeneration  = errors.New("PDF generation failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load page")
	ErrWriteOutput    = errors.New("failed to write output file")

	// Page settings validation errors.
	ErrInvalidPageSize    = errors.New("invalid page size")
	ErrInvalidOrientation = errors.New("invalid orientation")
	ErrInvalidMargin      = errors.New("invalid margin")

	// Startup resource errors.
	ErrFontNotFound     = fonts.ErrNotFound
	ErrInvalidFont      = fonts.ErrInvalid
	ErrInvalidStyle     = errors.New("invalid style override")
	ErrInvalidAssetPath = errors.New("invalid asset path")
	ErrTemplate         = document.ErrTemplate

	// Grammar service errors.
	ErrGrammarService = grammar.ErrGrammarService
)
