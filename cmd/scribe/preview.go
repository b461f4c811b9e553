package main

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	scribe "github.com/alnah/go-scribe"
	"github.com/alnah/go-scribe/internal/fileutil"
)

// runPreview renders the input as the live preview: a standalone HTML
// page by default, or the bare fragment with --fragment.
func runPreview(ctx context.Context, args []string, env *Environment) (err error) {
	flags, positional, err := parsePreviewFlags(args)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(&flags.common, env)
	if err != nil {
		return err
	}
	if flags.assetPath != "" {
		cfg.Assets.BasePath = flags.assetPath
	}

	logger, err := newLogger(cfg, env.Stderr, env.Stderr)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // console sync errors are not actionable

	text, sourceDir, err := readInput(positional, env)
	if err != nil {
		return err
	}

	conv, err := newConverter(cfg, logger, env)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, conv.Close()) }()

	var out string
	if flags.fragment {
		out, err = conv.Preview(ctx, text)
	} else {
		out, err = conv.PreviewPage(ctx, scribe.Input{Markdown: text, SourceDir: sourceDir})
	}
	if err != nil {
		return err
	}

	if flags.output == "" {
		_, err = io.WriteString(env.Stdout, out)
		return err
	}
	if err := fileutil.WriteFile(flags.output, []byte(out)); err != nil {
		return fmt.Errorf("%w: %v", scribe.ErrWriteOutput, err)
	}
	logger.Info("wrote preview", zap.String("path", flags.output))
	return nil
}
