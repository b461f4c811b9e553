package main

import (
	"context"
	"io"

	"go.uber.org/multierr"

	"github.com/alnah/go-scribe/internal/cheatsheet"
)

// runCheatsheet prints the markup quick reference, or exports it as a
// PDF through the regular pipeline when --output is set.
func runCheatsheet(ctx context.Context, args []string, env *Environment) (err error) {
	flags, _, err := parseCheatsheetFlags(args)
	if err != nil {
		return err
	}

	if flags.output == "" {
		text := cheatsheet.Text()
		if flags.markdown {
			text = cheatsheet.Markdown()
		}
		_, err = io.WriteString(env.Stdout, text)
		return err
	}

	cfg, err := loadSettings(&flags.common, env)
	if err != nil {
		return err
	}
	logger, err := newLogger(cfg, env.Stdout, env.Stderr)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // console sync errors are not actionable

	conv, err := newConverter(cfg, logger, env)
	if err != nil {
		return err
	}
	defer func() { err = multierr.Append(err, conv.Close()) }()

	return conv.Export(ctx, cheatsheet.Markdown(), flags.output)
}
