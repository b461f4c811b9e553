package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config   string
	logLevel string
	quiet    bool
	verbose  bool
}

// pageFlags holds page layout flags.
type pageFlags struct {
	size        string
	orientation string
	margin      float64
}

// exportFlags holds flags for the export command.
type exportFlags struct {
	common    commonFlags
	output    string
	timeout   string
	richText  bool
	page      pageFlags
	assetPath string
	html      bool // Write the printable HTML alongside the PDF
	htmlOnly  bool // Write the printable HTML only, skip PDF
}

// previewFlags holds flags for the preview command.
type previewFlags struct {
	common    commonFlags
	output    string
	fragment  bool
	assetPath string
}

// checkFlags holds flags for the check command.
type checkFlags struct {
	common   commonFlags
	endpoint string
	language string
	json     bool
}

// cheatsheetFlags holds flags for the cheatsheet command.
type cheatsheetFlags struct {
	common   commonFlags
	output   string
	markdown bool
}

// doctorFlags holds flags for the doctor command.
type doctorFlags struct {
	common   commonFlags
	endpoint string
	json     bool
}

// configFlags holds flags for the config command.
type configFlags struct {
	common   commonFlags
	defaults bool
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.StringVar(&f.logLevel, "log-level", "", "console log level: none, normal, debug")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "show debug output")
}

// addPageFlags adds page layout flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.size, "page-size", "p", "", "page size: letter, a4, legal")
	fs.StringVar(&f.orientation, "orientation", "", "page orientation: portrait, landscape")
	fs.Float64Var(&f.margin, "margin", 0, "page margin in inches (0.25-3.0)")
}

// newFlagSet returns a FlagSet that reports errors to the caller instead
// of printing them.
func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	return fs
}

// parseFlagSet parses args and tags failures as usage errors.
// flag.ErrHelp is returned unwrapped so the caller can print help.
func parseFlagSet(fs *flag.FlagSet, args []string) ([]string, error) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

// parseExportFlags parses export command flags and returns positional args.
func parseExportFlags(args []string) (*exportFlags, []string, error) {
	fs := newFlagSet("export")
	f := &exportFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "output PDF path (default output.pdf)")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "PDF generation timeout (e.g., 30s, 2m)")
	fs.BoolVar(&f.richText, "rich-text", false, "keep bold, italic and inline code")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	fs.BoolVar(&f.html, "html", false, "write HTML alongside PDF")
	fs.BoolVar(&f.htmlOnly, "html-only", false, "write HTML only, skip PDF")
	addCommonFlags(fs, &f.common)
	addPageFlags(fs, &f.page)

	rest, err := parseFlagSet(fs, args)
	return f, rest, err
}

// parsePreviewFlags parses preview command flags and returns positional args.
func parsePreviewFlags(args []string) (*previewFlags, []string, error) {
	fs := newFlagSet("preview")
	f := &previewFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "write the page to a file instead of stdout")
	fs.BoolVar(&f.fragment, "fragment", false, "print the bare preview fragment")
	fs.StringVar(&f.assetPath, "asset-path", "", "custom asset directory")
	addCommonFlags(fs, &f.common)

	rest, err := parseFlagSet(fs, args)
	return f, rest, err
}

// parseCheckFlags parses check command flags and returns positional args.
func parseCheckFlags(args []string) (*checkFlags, []string, error) {
	fs := newFlagSet("check")
	f := &checkFlags{}

	fs.StringVar(&f.endpoint, "grammar-endpoint", "", "LanguageTool server URL")
	fs.StringVarP(&f.language, "language", "l", "", "language code, e.g. en-US")
	fs.BoolVar(&f.json, "json", false, "print findings as JSON")
	addCommonFlags(fs, &f.common)

	rest, err := parseFlagSet(fs, args)
	return f, rest, err
}

// parseDoctorFlags parses doctor command flags.
func parseDoctorFlags(args []string) (*doctorFlags, []string, error) {
	fs := newFlagSet("doctor")
	f := &doctorFlags{}

	fs.StringVar(&f.endpoint, "grammar-endpoint", "", "LanguageTool server URL")
	fs.BoolVar(&f.json, "json", false, "print results as JSON")
	addCommonFlags(fs, &f.common)

	rest, err := parseFlagSet(fs, args)
	return f, rest, err
}

// parseCheatsheetFlags parses cheatsheet command flags.
func parseCheatsheetFlags(args []string) (*cheatsheetFlags, []string, error) {
	fs := newFlagSet("cheatsheet")
	f := &cheatsheetFlags{}

	fs.StringVarP(&f.output, "output", "o", "", "export the cheat sheet as a PDF")
	fs.BoolVar(&f.markdown, "markdown", false, "print the cheat sheet as markdown")
	addCommonFlags(fs, &f.common)

	rest, err := parseFlagSet(fs, args)
	return f, rest, err
}

// parseConfigFlags parses config command flags.
func parseConfigFlags(args []string) (*configFlags, []string, error) {
	fs := newFlagSet("config")
	f := &configFlags{}

	fs.BoolVar(&f.defaults, "defaults", false, "print built-in defaults, ignoring files and environment")
	addCommonFlags(fs, &f.common)

	rest, err := parseFlagSet(fs, args)
	return f, rest, err
}
