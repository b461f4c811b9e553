package main

// Notes:
// - These tests use t.Setenv and therefore cannot run in parallel.

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/alnah/go-scribe/internal/config"
)

func TestApplyEnvSettings(t *testing.T) {
	t.Setenv(envOutput, "env.pdf")
	t.Setenv(envTimeout, "2m")
	t.Setenv(envPageSize, "a4")
	t.Setenv(envGrammarEndpoint, "http://lt:8010")
	t.Setenv(envAssetPath, "/srv/assets")

	cfg := config.DefaultConfig()
	cfg.Page.Size = "legal" // from file, must win
	applyEnvSettings(loadEnvSettings(), cfg)

	if cfg.Output != "env.pdf" || cfg.Timeout != "2m" {
		t.Errorf("empty fields should come from env: output=%q timeout=%q", cfg.Output, cfg.Timeout)
	}
	if cfg.Page.Size != "legal" {
		t.Errorf("Page.Size = %q, config file should win over env", cfg.Page.Size)
	}
	if cfg.Grammar.Endpoint != "http://lt:8010" || cfg.Assets.BasePath != "/srv/assets" {
		t.Errorf("grammar=%q assets=%q", cfg.Grammar.Endpoint, cfg.Assets.BasePath)
	}
}

func TestWarnUnknownEnvVars(t *testing.T) {
	t.Setenv("SCRIBE_OUTPTU", "typo.pdf")
	t.Setenv(envOutput, "ok.pdf")

	var buf bytes.Buffer
	warnUnknownEnvVars(&buf)

	if !strings.Contains(buf.String(), "SCRIBE_OUTPTU") {
		t.Errorf("warning missing for typo: %q", buf.String())
	}
	if strings.Contains(buf.String(), envOutput+" ") {
		t.Errorf("known variable should not be reported: %q", buf.String())
	}
}

func TestLoadSettings_Precedence(t *testing.T) {
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envOutput, "env.pdf")

	te := newTestEnv(t, "")
	cfg, err := loadSettings(&commonFlags{quiet: true}, te.Environment)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "none" {
		t.Errorf("Log.Level = %q, --quiet should override env", cfg.Log.Level)
	}
	if cfg.Output != "env.pdf" {
		t.Errorf("Output = %q", cfg.Output)
	}

	cfg, err = loadSettings(&commonFlags{quiet: true, logLevel: "normal"}, te.Environment)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "normal" {
		t.Errorf("Log.Level = %q, --log-level should win", cfg.Log.Level)
	}
}

func TestLoadSettings_ConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.WriteFile("team.yaml", []byte("richText: true\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(envConfig, "team")

	te := newTestEnv(t, "")
	cfg, err := loadSettings(&commonFlags{}, te.Environment)
	if err != nil {
		t.Fatal(err)
	}
	if !cfg.RichText {
		t.Error("SCRIBE_CONFIG should select team.yaml")
	}
}
