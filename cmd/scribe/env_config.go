package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-scribe/internal/config"
)

// Environment variable names.
const (
	envConfig          = "SCRIBE_CONFIG"
	envOutput          = "SCRIBE_OUTPUT"
	envTimeout         = "SCRIBE_TIMEOUT"
	envPageSize        = "SCRIBE_PAGE_SIZE"
	envLogLevel        = "SCRIBE_LOG_LEVEL"
	envGrammarEndpoint = "SCRIBE_GRAMMAR_ENDPOINT"
	envGrammarLanguage = "SCRIBE_GRAMMAR_LANGUAGE"
	envAssetPath       = "SCRIBE_ASSET_PATH"
)

// envSettings holds configuration from environment variables.
type envSettings struct {
	ConfigPath      string
	Output          string
	Timeout         string
	PageSize        string
	LogLevel        string
	GrammarEndpoint string
	GrammarLanguage string
	AssetPath       string
}

// knownEnvVars lists valid SCRIBE_* environment variables.
var knownEnvVars = map[string]bool{
	envConfig:          true,
	envOutput:          true,
	envTimeout:         true,
	envPageSize:        true,
	envLogLevel:        true,
	envGrammarEndpoint: true,
	envGrammarLanguage: true,
	envAssetPath:       true,
}

// loadEnvSettings reads the recognized SCRIBE_* variables.
func loadEnvSettings() *envSettings {
	return &envSettings{
		ConfigPath:      os.Getenv(envConfig),
		Output:          os.Getenv(envOutput),
		Timeout:         os.Getenv(envTimeout),
		PageSize:        os.Getenv(envPageSize),
		LogLevel:        os.Getenv(envLogLevel),
		GrammarEndpoint: os.Getenv(envGrammarEndpoint),
		GrammarLanguage: os.Getenv(envGrammarLanguage),
		AssetPath:       os.Getenv(envAssetPath),
	}
}

// warnUnknownEnvVars reports unrecognized SCRIBE_* variables, which are
// usually typos.
func warnUnknownEnvVars(w io.Writer) {
	for _, env := range os.Environ() {
		if strings.HasPrefix(env, "SCRIBE_") {
			name, _, _ := strings.Cut(env, "=")
			if !knownEnvVars[name] {
				fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
			}
		}
	}
}

// applyEnvSettings fills config values the file left empty.
// Precedence: CLI flags > env vars > config file > defaults
// (flags are applied afterwards by each command).
func applyEnvSettings(env *envSettings, cfg *config.Config) {
	if env.Output != "" && cfg.Output == "" {
		cfg.Output = env.Output
	}
	if env.Timeout != "" && cfg.Timeout == "" {
		cfg.Timeout = env.Timeout
	}
	if env.PageSize != "" && cfg.Page.Size == "" {
		cfg.Page.Size = env.PageSize
	}
	if env.LogLevel != "" && cfg.Log.Level == "" {
		cfg.Log.Level = env.LogLevel
	}
	if env.GrammarEndpoint != "" && cfg.Grammar.Endpoint == "" {
		cfg.Grammar.Endpoint = env.GrammarEndpoint
	}
	if env.GrammarLanguage != "" && cfg.Grammar.Language == "" {
		cfg.Grammar.Language = env.GrammarLanguage
	}
	if env.AssetPath != "" && cfg.Assets.BasePath == "" {
		cfg.Assets.BasePath = env.AssetPath
	}
}
