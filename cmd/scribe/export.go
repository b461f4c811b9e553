package main

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	scribe "github.com/alnah/go-scribe"
	"github.com/alnah/go-scribe/internal/config"
	"github.com/alnah/go-scribe/internal/fileutil"
)

// mergeExportFlags merges CLI flags into config. CLI values override config values.
func mergeExportFlags(f *exportFlags, cfg *config.Config) {
	if f.output != "" {
		cfg.Output = f.output
	}
	if f.timeout != "" {
		cfg.Timeout = f.timeout
	}
	if f.richText {
		cfg.RichText = true
	}
	if f.page.size != "" {
		cfg.Page.Size = f.page.size
	}
	if f.page.orientation != "" {
		cfg.Page.Orientation = f.page.orientation
	}
	if f.page.margin != 0 {
		cfg.Page.Margin = f.page.margin
	}
	if f.assetPath != "" {
		cfg.Assets.BasePath = f.assetPath
	}
}

// resolveOutputPath returns the configured export path or output.pdf.
func resolveOutputPath(cfg *config.Config) string {
	if cfg.Output != "" {
		return cfg.Output
	}
	return scribe.DefaultOutputPath
}

// htmlOutputPath returns the HTML path for a PDF path: out.pdf -> out.html.
func htmlOutputPath(pdfPath string) string {
	if base, ok := strings.CutSuffix(pdfPath, ".pdf"); ok {
		return base + ".html"
	}
	return pdfPath + ".html"
}

// runExport converts the input text and writes the PDF (and optionally
// the printable HTML) to the output path.
func runExport(ctx context.Context, args []string, env *Environment) (err error) {
	flags, positional, err := parseExportFlags(args)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(&flags.common, env)
	if err != nil {
		return err
	}
	mergeExportFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := newLogger(cfg, env.Stdout, env.Stderr)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // console sync errors are not actionable

	text, _, err := readInput(positional, env)
	if err != nil {
		return err
	}

	conv, err := newConverter(cfg, logger, env)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, conv.Close()) }()

	output := resolveOutputPath(cfg)
	if !flags.html && !flags.htmlOnly {
		return conv.Export(ctx, text, output)
	}

	res, err := conv.Convert(ctx, scribe.Input{Markdown: text, HTMLOnly: flags.htmlOnly})
	if err != nil {
		return err
	}

	htmlPath := htmlOutputPath(output)
	if err := fileutil.WriteFile(htmlPath, res.HTML); err != nil {
		return fmt.Errorf("%w: %v", scribe.ErrWriteOutput, err)
	}
	logger.Info("wrote HTML", zap.String("path", htmlPath))

	if flags.htmlOnly {
		return nil
	}
	if err := fileutil.WriteFile(output, res.PDF); err != nil {
		return fmt.Errorf("%w: %v", scribe.ErrWriteOutput, err)
	}
	logger.Info("exported", zap.String("path", output), zap.Int("bytes", len(res.PDF)))
	return nil
}
