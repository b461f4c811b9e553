package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-scribe/internal/fileutil"
	"github.com/alnah/go-scribe/internal/logging"
	"github.com/alnah/go-scribe/internal/markup"
	"github.com/alnah/go-scribe/internal/style"
	"github.com/alnah/go-scribe/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrInvalidValue    = errors.New("invalid config value")
)

// appDir is the directory under the user config dir searched for named configs.
const appDir = "go-scribe"

// Field length limits.
const (
	MaxPathLength        = 4096
	MaxURLLength         = 2048 // Browser limit
	MaxFamilyLength      = 100
	MaxPageSizeLength    = 10 // "letter", "a4", "legal"
	MaxOrientationLength = 10 // "portrait", "landscape"
	MaxLanguageLength    = 20 // "en-US", "auto"
	MaxColorLength       = 20 // "#808080" or color name
)

// Config holds all configuration for the editor and the CLI.
type Config struct {
	Output   string                 `yaml:"output"`   // Export path (empty = output.pdf)
	Timeout  string                 `yaml:"timeout"`  // Go duration, e.g. "45s" (empty = 30s)
	RichText bool                   `yaml:"richText"` // Keep inline emphasis in exports
	Page     PageConfig             `yaml:"page"`
	Fonts    FontsConfig            `yaml:"fonts"`
	Styles   map[string]StyleConfig `yaml:"styles"` // Keyed by block kind, e.g. "heading1"
	Grammar  GrammarConfig          `yaml:"grammar"`
	Log      LogConfig              `yaml:"log"`
	Assets   AssetsConfig           `yaml:"assets"`
}

// PageConfig defines page dimensions for exports.
type PageConfig struct {
	Size        string  `yaml:"size"`        // "letter", "a4", "legal" (default: "letter")
	Orientation string  `yaml:"orientation"` // "portrait", "landscape" (default: "portrait")
	Margin      float64 `yaml:"margin"`      // inches, 0.25-3.0 (default: 0.5)
}

// FontsConfig names the fallback faces used outside the primary font's coverage.
type FontsConfig struct {
	Emoji   FontConfig `yaml:"emoji"`
	Unicode FontConfig `yaml:"unicode"`
}

// FontConfig is one fallback face. File is optional; when set it must be a font file.
type FontConfig struct {
	Family string `yaml:"family"`
	File   string `yaml:"file"`
}

// StyleConfig overrides the presentation of one block kind.
// Unset fields keep the built-in value.
type StyleConfig struct {
	FontFamily *string  `yaml:"fontFamily,omitempty"`
	FontSize   *float64 `yaml:"fontSize,omitempty"`
	LineHeight *float64 `yaml:"lineHeight,omitempty"`
	SpaceAfter *float64 `yaml:"spaceAfter,omitempty"`
	LeftIndent *float64 `yaml:"leftIndent,omitempty"`
	Color      *string  `yaml:"color,omitempty"`
	Background *string  `yaml:"background,omitempty"`
	Italic     *bool    `yaml:"italic,omitempty"`
	Bold       *bool    `yaml:"bold,omitempty"`
}

// GrammarConfig points at a LanguageTool-compatible service.
type GrammarConfig struct {
	Endpoint string `yaml:"endpoint"`
	Language string `yaml:"language"`
}

// LogConfig selects the console log level: "none", "normal" or "debug".
type LogConfig struct {
	Level string `yaml:"level"`
}

// AssetsConfig defines asset loading options.
type AssetsConfig struct {
	BasePath string `yaml:"basePath"` // Directory with templates/ and styles/ overrides
}

// Validate checks field lengths and values that do not need the filesystem.
// Called automatically by LoadConfig, but available for callers who build
// a Config in code.
func (c *Config) Validate() error {
	if err := validateFieldLength("output", c.Output, MaxPathLength); err != nil {
		return err
	}
	if _, err := c.TimeoutDuration(); err != nil {
		return err
	}

	if err := validateFieldLength("page.size", c.Page.Size, MaxPageSizeLength); err != nil {
		return err
	}
	if err := validateFieldLength("page.orientation", c.Page.Orientation, MaxOrientationLength); err != nil {
		return err
	}
	if c.Page.Margin < 0 {
		return fmt.Errorf("%w: page.margin must not be negative, got %.2f", ErrInvalidValue, c.Page.Margin)
	}

	for name, f := range map[string]FontConfig{"fonts.emoji": c.Fonts.Emoji, "fonts.unicode": c.Fonts.Unicode} {
		if err := validateFieldLength(name+".family", f.Family, MaxFamilyLength); err != nil {
			return err
		}
		if err := validateFieldLength(name+".file", f.File, MaxPathLength); err != nil {
			return err
		}
	}

	if _, err := c.StyleOverrides(); err != nil {
		return err
	}

	if err := validateFieldLength("grammar.endpoint", c.Grammar.Endpoint, MaxURLLength); err != nil {
		return err
	}
	if err := validateFieldLength("grammar.language", c.Grammar.Language, MaxLanguageLength); err != nil {
		return err
	}

	if !logging.ValidLevel(c.Log.Level) {
		return fmt.Errorf("%w: log.level %q (must be none, normal, or debug)", ErrInvalidValue, c.Log.Level)
	}

	return validateFieldLength("assets.basePath", c.Assets.BasePath, MaxPathLength)
}

// TimeoutDuration parses Timeout. Empty means zero, letting the caller
// apply its own default.
func (c *Config) TimeoutDuration() (time.Duration, error) {
	if c.Timeout == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(c.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: timeout %q: %v", ErrInvalidValue, c.Timeout, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("%w: timeout must be positive, got %s", ErrInvalidValue, c.Timeout)
	}
	return d, nil
}

// StyleOverrides converts the styles section into registry overrides keyed
// by canonical block kind name and checks them against the registry's bounds.
func (c *Config) StyleOverrides() (map[string]style.Override, error) {
	if len(c.Styles) == 0 {
		return nil, nil
	}

	out := make(map[string]style.Override, len(c.Styles))
	byKind := make(map[markup.Kind]style.Override, len(c.Styles))
	for name, s := range c.Styles {
		kind, ok := markup.ParseKind(name)
		if !ok {
			return nil, fmt.Errorf("%w: styles.%s: unknown block kind", ErrInvalidValue, name)
		}
		if s.FontFamily != nil {
			if err := validateFieldLength("styles."+name+".fontFamily", *s.FontFamily, MaxFamilyLength); err != nil {
				return nil, err
			}
		}
		for field, v := range map[string]*string{"color": s.Color, "background": s.Background} {
			if v == nil {
				continue
			}
			if err := validateFieldLength("styles."+name+"."+field, *v, MaxColorLength); err != nil {
				return nil, err
			}
		}
		o := style.Override{
			FontFamily: s.FontFamily,
			FontSize:   s.FontSize,
			LineHeight: s.LineHeight,
			SpaceAfter: s.SpaceAfter,
			LeftIndent: s.LeftIndent,
			Color:      s.Color,
			Background: s.Background,
			Italic:     s.Italic,
			Bold:       s.Bold,
		}
		out[kind.String()] = o
		byKind[kind] = o
	}

	if _, err := style.New(byKind); err != nil {
		return nil, fmt.Errorf("%w: styles: %v", ErrInvalidValue, err)
	}
	return out, nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// DefaultConfig returns the configuration used when no file is given:
// every field empty so that callers fall back to their built-in defaults.
func DefaultConfig() *Config {
	return &Config{}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it searches for nameOrPath.yaml or nameOrPath.yml in the
// current directory, then in the user config directory.
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	var cfg Config
	if err := yamlutil.DecodeFile(configPath, &cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, <user config dir>/go-scribe/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2)

	for _, ext := range extensions {
		localPath := name + ext
		if fileutil.FileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, appDir, name+ext)
			if fileutil.FileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}
