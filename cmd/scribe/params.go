package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"unicode/utf8"

	"go.uber.org/zap"

	scribe "github.com/alnah/go-scribe"
	"github.com/alnah/go-scribe/internal/config"
	"github.com/alnah/go-scribe/internal/logging"
)

// Sentinel errors for CLI operations.
var (
	ErrUsage          = errors.New("invalid usage")
	ErrUnknownCommand = errors.New("unknown command")
	ErrNoInput        = errors.New("no input specified")
	ErrReadInput      = errors.New("failed to read input")
)

// maxInputSize bounds the text read from a file or stdin.
const maxInputSize = 16 << 20

// stdinArg selects standard input explicitly.
const stdinArg = "-"

// loadSettings resolves the effective configuration for a command:
// config file, then SCRIBE_* variables, then the common flags.
// The result is validated.
func loadSettings(common *commonFlags, env *Environment) (*config.Config, error) {
	envs := loadEnvSettings()
	warnUnknownEnvVars(env.Stderr)

	name := common.config
	if name == "" {
		name = envs.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}
	applyEnvSettings(envs, cfg)

	switch {
	case common.logLevel != "":
		cfg.Log.Level = common.logLevel
	case common.verbose:
		cfg.Log.Level = logging.LevelDebug
	case common.quiet:
		cfg.Log.Level = logging.LevelNone
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newLogger builds the console logger. Commands that print results on
// stdout pass stderr as out so logs never mix with their output.
func newLogger(cfg *config.Config, out, errOut io.Writer) (*zap.Logger, error) {
	return logging.New(cfg.Log.Level, out, errOut)
}

// buildPageSettings returns nil when the config leaves the page alone,
// so the converter keeps its US Letter default.
func buildPageSettings(cfg *config.Config) *scribe.PageSettings {
	p := cfg.Page
	if p.Size == "" && p.Orientation == "" && p.Margin == 0 {
		return nil
	}
	page := scribe.DefaultPageSettings()
	if p.Size != "" {
		page.Size = p.Size
	}
	if p.Orientation != "" {
		page.Orientation = p.Orientation
	}
	if p.Margin != 0 {
		page.Margin = p.Margin
	}
	return page
}

// buildConverterOptions maps the configuration onto converter options.
func buildConverterOptions(cfg *config.Config, logger *zap.Logger) ([]scribe.Option, error) {
	opts := []scribe.Option{
		scribe.WithLogger(logger),
		scribe.WithRichText(cfg.RichText),
		scribe.WithPage(buildPageSettings(cfg)),
		scribe.WithAssetPath(cfg.Assets.BasePath),
		scribe.WithFonts(scribe.FontSettings{
			Emoji:   scribe.FontFace{Family: cfg.Fonts.Emoji.Family, File: cfg.Fonts.Emoji.File},
			Unicode: scribe.FontFace{Family: cfg.Fonts.Unicode.Family, File: cfg.Fonts.Unicode.File},
		}),
	}

	timeout, err := cfg.TimeoutDuration()
	if err != nil {
		return nil, err
	}
	if timeout > 0 {
		opts = append(opts, scribe.WithTimeout(timeout))
	}

	styles, err := cfg.StyleOverrides()
	if err != nil {
		return nil, err
	}
	if len(styles) > 0 {
		opts = append(opts, scribe.WithStyles(styles))
	}

	return opts, nil
}

// newConverter loads settings-derived options and creates a converter.
func newConverter(cfg *config.Config, logger *zap.Logger, env *Environment) (Converter, error) {
	opts, err := buildConverterOptions(cfg, logger)
	if err != nil {
		return nil, err
	}
	return env.NewConverter(opts...)
}

// readInput returns the editor text from the single positional argument,
// or from stdin when there is none (or it is "-"). sourceDir is the
// directory relative links resolve against.
func readInput(args []string, env *Environment) (text, sourceDir string, err error) {
	if len(args) > 1 {
		return "", "", fmt.Errorf("%w: expected at most one input file, got %d", ErrUsage, len(args))
	}

	var data []byte
	if len(args) == 0 || args[0] == stdinArg {
		if env.StdinIsTerminal != nil && env.StdinIsTerminal() {
			return "", "", fmt.Errorf("%w: pass a file or pipe text on stdin", ErrNoInput)
		}
		data, err = io.ReadAll(io.LimitReader(env.Stdin, maxInputSize+1))
		if err != nil {
			return "", "", fmt.Errorf("%w: stdin: %v", ErrReadInput, err)
		}
		sourceDir, _ = os.Getwd()
	} else {
		path := args[0]
		data, err = readLimited(path)
		if err != nil {
			return "", "", fmt.Errorf("%w: %w", ErrReadInput, err)
		}
		if abs, absErr := filepath.Abs(path); absErr == nil {
			sourceDir = filepath.Dir(abs)
		}
	}

	if len(data) > maxInputSize {
		return "", "", fmt.Errorf("%w: input exceeds %d bytes", ErrReadInput, maxInputSize)
	}
	if !utf8.Valid(data) {
		return "", "", fmt.Errorf("%w: input is not valid UTF-8", ErrReadInput)
	}
	return string(data), sourceDir, nil
}

func readLimited(path string) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 -- path is the user's input file
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only

	return io.ReadAll(io.LimitReader(f, maxInputSize+1))
}
