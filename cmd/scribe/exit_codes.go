package main

import (
	"context"
	"errors"
	"os"
	"strings"

	scribe "github.com/alnah/go-scribe"
	"github.com/alnah/go-scribe/internal/config"
	"github.com/alnah/go-scribe/internal/grammar"
	"github.com/alnah/go-scribe/internal/hints"
	"github.com/alnah/go-scribe/internal/logging"
)

// Exit codes for the scribe CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // Successful command
	ExitGeneral = 1 // General/unexpected error
	ExitUsage   = 2 // Invalid flags, config, or startup resources
	ExitIO      = 3 // File not found, permission denied
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, scribe.ErrBrowserConnect) ||
		errors.Is(err, scribe.ErrPageCreate) ||
		errors.Is(err, scribe.ErrPageLoad) ||
		errors.Is(err, scribe.ErrPDFGeneration) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrReadInput) ||
		errors.Is(err, ErrNoInput) ||
		errors.Is(err, scribe.ErrWriteOutput) {
		return ExitIO
	}

	// Usage/config/startup errors (exit 2)
	if errors.Is(err, ErrUsage) ||
		errors.Is(err, ErrUnknownCommand) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrFieldTooLong) ||
		errors.Is(err, config.ErrInvalidValue) ||
		errors.Is(err, logging.ErrInvalidLevel) ||
		errors.Is(err, grammar.ErrInvalidConfig) ||
		errors.Is(err, scribe.ErrInvalidPageSize) ||
		errors.Is(err, scribe.ErrInvalidOrientation) ||
		errors.Is(err, scribe.ErrInvalidMargin) ||
		errors.Is(err, scribe.ErrInvalidStyle) ||
		errors.Is(err, scribe.ErrFontNotFound) ||
		errors.Is(err, scribe.ErrInvalidFont) ||
		errors.Is(err, scribe.ErrInvalidAssetPath) ||
		errors.Is(err, scribe.ErrTemplate) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for err, or "".
func hintFor(err error) string {
	switch {
	case errors.Is(err, scribe.ErrBrowserConnect):
		return hints.ForBrowserConnect()
	case errors.Is(err, context.DeadlineExceeded):
		return hints.ForTimeout()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(searchedConfigPaths(err))
	case errors.Is(err, scribe.ErrWriteOutput):
		return hints.ForOutputPath()
	case errors.Is(err, scribe.ErrFontNotFound), errors.Is(err, scribe.ErrInvalidFont):
		section := "fonts.unicode"
		if strings.Contains(err.Error(), "emoji font:") {
			section = "fonts.emoji"
		}
		return hints.ForFont(section)
	case errors.Is(err, scribe.ErrInvalidAssetPath):
		return hints.ForAssetPath()
	}
	return ""
}

// searchedConfigPaths extracts the "tried a, b" list from a config lookup error.
func searchedConfigPaths(err error) []string {
	_, tried, ok := strings.Cut(err.Error(), "tried ")
	if !ok {
		return nil
	}
	return strings.Split(tried, ", ")
}
