package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-scribe/internal/config"
)

func TestBuildPageSettings(t *testing.T) {
	t.Parallel()

	if got := buildPageSettings(config.DefaultConfig()); got != nil {
		t.Errorf("empty page config = %+v, want nil", got)
	}

	cfg := config.DefaultConfig()
	cfg.Page.Size = "a4"
	got := buildPageSettings(cfg)
	if got == nil || got.Size != "a4" || got.Orientation != "portrait" || got.Margin != 0.5 {
		t.Errorf("partial page config = %+v, want a4 with defaults", got)
	}

	cfg.Page.Orientation = "landscape"
	cfg.Page.Margin = 1.25
	got = buildPageSettings(cfg)
	if got.Orientation != "landscape" || got.Margin != 1.25 {
		t.Errorf("full page config = %+v", got)
	}
}

func TestBuildConverterOptions(t *testing.T) {
	t.Parallel()

	size := 20.0
	tests := []struct {
		name    string
		modify  func(*config.Config)
		wantErr error
	}{
		{"defaults", func(*config.Config) {}, nil},
		{"timeout", func(c *config.Config) { c.Timeout = "90s" }, nil},
		{"styles", func(c *config.Config) { c.Styles = map[string]config.StyleConfig{"heading2": {FontSize: &size}} }, nil},
		{"bad timeout", func(c *config.Config) { c.Timeout = "-1s" }, config.ErrInvalidValue},
		{"bad style kind", func(c *config.Config) { c.Styles = map[string]config.StyleConfig{"image": {}} }, config.ErrInvalidValue},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.modify(cfg)
			opts, err := buildConverterOptions(cfg, nil)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(opts) == 0 {
				t.Error("expected options")
			}
		})
	}
}

func TestMergeExportFlags(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Output = "from-config.pdf"
	cfg.Page.Size = "legal"
	cfg.Page.Margin = 2

	flags := &exportFlags{
		output:   "from-flag.pdf",
		richText: true,
		page:     pageFlags{orientation: "landscape"},
	}
	mergeExportFlags(flags, cfg)

	if cfg.Output != "from-flag.pdf" {
		t.Errorf("Output = %q, flag should win", cfg.Output)
	}
	if cfg.Page.Size != "legal" || cfg.Page.Margin != 2 {
		t.Errorf("unset flags should keep config: %+v", cfg.Page)
	}
	if cfg.Page.Orientation != "landscape" || !cfg.RichText {
		t.Errorf("set flags should apply: %+v rich=%v", cfg.Page, cfg.RichText)
	}
}

func TestHTMLOutputPath(t *testing.T) {
	t.Parallel()

	tests := map[string]string{
		"output.pdf":       "output.html",
		"dir/report.pdf":   "dir/report.html",
		"no-extension":     "no-extension.html",
		"archive.pdf.copy": "archive.pdf.copy.html",
	}
	for in, want := range tests {
		if got := htmlOutputPath(in); got != want {
			t.Errorf("htmlOutputPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestReadInput(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	file := filepath.Join(dir, "in.md")
	if err := os.WriteFile(file, []byte("file text"), 0o600); err != nil {
		t.Fatal(err)
	}
	invalid := filepath.Join(dir, "bad.md")
	if err := os.WriteFile(invalid, []byte{0xff, 0xfe, 'x'}, 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		args     []string
		stdin    string
		terminal bool
		wantText string
		wantDir  string
		wantErr  error
	}{
		{"stdin", nil, "piped", false, "piped", "", nil},
		{"dash", []string{"-"}, "dashed", false, "dashed", "", nil},
		{"empty stdin", nil, "", false, "", "", nil},
		{"file", []string{file}, "", false, "file text", dir, nil},
		{"terminal", nil, "", true, "", "", ErrNoInput},
		{"missing", []string{filepath.Join(dir, "nope.md")}, "", false, "", "", os.ErrNotExist},
		{"invalid utf8", []string{invalid}, "", false, "", "", ErrReadInput},
		{"two files", []string{file, file}, "", false, "", "", ErrUsage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			env := &Environment{
				Stdin:           strings.NewReader(tt.stdin),
				StdinIsTerminal: func() bool { return tt.terminal },
			}
			text, sourceDir, err := readInput(tt.args, env)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if text != tt.wantText {
				t.Errorf("text = %q, want %q", text, tt.wantText)
			}
			if tt.wantDir != "" && sourceDir != tt.wantDir {
				t.Errorf("sourceDir = %q, want %q", sourceDir, tt.wantDir)
			}
		})
	}
}

func TestReadInput_TooLarge(t *testing.T) {
	t.Parallel()

	env := &Environment{
		Stdin:           strings.NewReader(strings.Repeat("a", maxInputSize+1)),
		StdinIsTerminal: func() bool { return false },
	}
	if _, _, err := readInput(nil, env); !errors.Is(err, ErrReadInput) {
		t.Errorf("error = %v, want ErrReadInput", err)
	}
}
