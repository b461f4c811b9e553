package scribe

// Notes:
// - Converter tests inject mockPDFConverter through withPDFConverter so no
//   browser is launched; the rest of the pipeline is real.
// - Chrome-backed behavior lives in html2pdf_integration_test.go.

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockPDFConverter struct {
	called    bool
	closed    bool
	inputHTML string
	inputPage *PageSettings
	output    []byte
	err       error
}

func (m *mockPDFConverter) ToPDF(ctx context.Context, htmlContent string, page *PageSettings) ([]byte, error) {
	m.called = true
	m.inputHTML = htmlContent
	m.inputPage = page
	if m.err != nil {
		return nil, m.err
	}
	if m.output != nil {
		return m.output, nil
	}
	return []byte("%PDF-1.4 mock"), nil
}

func (m *mockPDFConverter) Close() error {
	m.closed = true
	return nil
}

func withPDFConverter(c pdfConverter) Option {
	return func(conv *Converter) {
		conv.pdfConverter = c
	}
}

func newTestConverter(t *testing.T, pdf *mockPDFConverter, opts ...Option) *Converter {
	t.Helper()

	conv, err := NewConverter(append([]Option{withPDFConverter(pdf)}, opts...)...)
	if err != nil {
		t.Fatalf("NewConverter() unexpected error: %v", err)
	}
	t.Cleanup(func() { _ = conv.Close() })
	return conv
}

func ptr[T any](v T) *T { return &v }

// ---------------------------------------------------------------------------
// TestNewConverter - Startup validation
// ---------------------------------------------------------------------------

func TestNewConverter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	notAFont := filepath.Join(dir, "font.ttf")
	if err := os.WriteFile(notAFont, []byte("plain text, not a font"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name    string
		opts    []Option
		wantErr error
	}{
		{"defaults", nil, nil},
		{"a4 landscape", []Option{WithPage(&PageSettings{Size: "a4", Orientation: "landscape", Margin: 1})}, nil},
		{"bad page size", []Option{WithPage(&PageSettings{Size: "tabloid", Orientation: "portrait", Margin: 0.5})}, ErrInvalidPageSize},
		{"bad margin", []Option{WithPage(&PageSettings{Size: "letter", Orientation: "portrait", Margin: 9})}, ErrInvalidMargin},
		{"style override", []Option{WithStyles(map[string]StyleOverride{"heading1": {FontSize: ptr(24.0)}})}, nil},
		{"unknown style kind", []Option{WithStyles(map[string]StyleOverride{"table": {}})}, ErrInvalidStyle},
		{"style out of range", []Option{WithStyles(map[string]StyleOverride{"code": {FontSize: ptr(1.0)}})}, ErrInvalidStyle},
		{"missing font file", []Option{WithFonts(FontSettings{Emoji: FontFace{File: filepath.Join(dir, "missing.ttf")}})}, ErrFontNotFound},
		{"invalid font file", []Option{WithFonts(FontSettings{Unicode: FontFace{File: notAFont}})}, ErrInvalidFont},
		{"missing asset dir", []Option{WithAssetPath(filepath.Join(dir, "nope"))}, ErrInvalidAssetPath},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv, err := NewConverter(append([]Option{withPDFConverter(&mockPDFConverter{})}, tt.opts...)...)
			if tt.wantErr == nil {
				if err != nil {
					t.Fatalf("NewConverter() unexpected error: %v", err)
				}
				_ = conv.Close()
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewConverter() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestWithTimeout_PanicsOnNonPositive(t *testing.T) {
	t.Parallel()

	defer func() {
		if recover() == nil {
			t.Error("WithTimeout(0) should panic")
		}
	}()
	WithTimeout(0)
}

// ---------------------------------------------------------------------------
// TestConvert - Export pipeline
// ---------------------------------------------------------------------------

func TestConvert_Success(t *testing.T) {
	t.Parallel()

	pdf := &mockPDFConverter{output: []byte("%PDF-1.4 test")}
	conv := newTestConverter(t, pdf)

	res, err := conv.Convert(context.Background(), Input{Markdown: "# Title\n\nHello *world*"})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}

	if string(res.PDF) != "%PDF-1.4 test" {
		t.Errorf("PDF = %q", res.PDF)
	}
	if !pdf.called || pdf.inputHTML != string(res.HTML) {
		t.Error("PDF converter should receive the rendered HTML")
	}
	if pdf.inputPage == nil || pdf.inputPage.Size != PageSizeLetter {
		t.Errorf("page = %+v, want US Letter default", pdf.inputPage)
	}

	html := string(res.HTML)
	for _, want := range []string{
		"<title>Title</title>",
		`<h1 id="title" class="b-heading1">Title</h1>`,
		`<p class="b-paragraph">Hello world</p>`,
		"size: 8.50in 11.00in;",
	} {
		if !strings.Contains(html, want) {
			t.Errorf("HTML missing %q in:\n%s", want, html)
		}
	}
	if strings.Contains(html, "<em>") {
		t.Error("default export should flatten emphasis")
	}
}

func TestConvert_EmptyInput(t *testing.T) {
	t.Parallel()

	pdf := &mockPDFConverter{}
	conv := newTestConverter(t, pdf)

	res, err := conv.Convert(context.Background(), Input{})
	if err != nil {
		t.Fatalf("Convert(empty) unexpected error: %v", err)
	}
	if !pdf.called || len(res.PDF) == 0 {
		t.Error("empty input should still produce a document")
	}
	if !strings.Contains(string(res.HTML), "<title>Document</title>") {
		t.Errorf("HTML = %s", res.HTML)
	}
}

func TestConvert_HTMLOnly(t *testing.T) {
	t.Parallel()

	pdf := &mockPDFConverter{}
	conv := newTestConverter(t, pdf)

	res, err := conv.Convert(context.Background(), Input{Markdown: "text", HTMLOnly: true})
	if err != nil {
		t.Fatalf("Convert() unexpected error: %v", err)
	}
	if pdf.called {
		t.Error("HTMLOnly should skip PDF generation")
	}
	if res.PDF != nil || len(res.HTML) == 0 {
		t.Errorf("result = %d HTML bytes, %d PDF bytes", len(res.HTML), len(res.PDF))
	}
}

func TestConvert_PDFConverterError(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, &mockPDFConverter{err: ErrBrowserConnect})

	_, err := conv.Convert(context.Background(), Input{Markdown: "text"})
	if !errors.Is(err, ErrBrowserConnect) {
		t.Errorf("Convert() error = %v, want ErrBrowserConnect", err)
	}
}

func TestConvert_ContextCanceled(t *testing.T) {
	t.Parallel()

	pdf := &mockPDFConverter{}
	conv := newTestConverter(t, pdf)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := conv.Convert(ctx, Input{Markdown: "text"})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Convert() error = %v, want context.Canceled", err)
	}
	if pdf.called {
		t.Error("canceled conversion should not reach the PDF converter")
	}
}

func TestConvert_Features(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		opts     []Option
		input    string
		contains []string
	}{
		{
			name:     "alias expanded into emoji span",
			input:    "Launch :rocket:",
			contains: []string{`Launch <span class="font-emoji">` + "\U0001F680" + `</span>`},
		},
		{
			name:     "keycap alias kept whole",
			input:    "Step :one: and :hash:",
			contains: []string{`Step <span class="font-emoji">1` + "\ufe0f\u20e3" + `</span> and <span class="font-emoji">#` + "\ufe0f\u20e3" + `</span>`},
		},
		{
			name:     "alias in code span stays literal",
			input:    "Type `:rocket:` for :rocket:",
			contains: []string{":rocket:", `<span class="font-emoji">` + "\U0001F680" + `</span>`},
		},
		{
			name:     "rich text keeps emphasis",
			opts:     []Option{WithRichText(true)},
			input:    "Hello *world* and **bold**",
			contains: []string{"<em>world</em>", "<strong>bold</strong>"},
		},
		{
			name:     "ordered list numbered from one",
			input:    "1. a\n2. b\n3. c",
			contains: []string{`<span class="marker">1.</span>a`, `<span class="marker">3.</span>c`},
		},
		{
			name:     "thematic break becomes spacer",
			input:    "a\n\n---\n\nb",
			contains: []string{`class="b-linebreak" style="height: 14.4pt;"`},
		},
		{
			name:     "style override reaches stylesheet",
			opts:     []Option{WithStyles(map[string]StyleOverride{"heading1": {FontSize: ptr(30.0)}})},
			input:    "# Big",
			contains: []string{"font-size: 30.0pt;"},
		},
		{
			name:     "landscape page size",
			opts:     []Option{WithPage(&PageSettings{Size: "a4", Orientation: "landscape", Margin: 0.75})},
			input:    "x",
			contains: []string{"size: 11.69in 8.27in;", "margin: 0.75in;"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			conv := newTestConverter(t, &mockPDFConverter{}, tt.opts...)
			res, err := conv.Convert(context.Background(), Input{Markdown: tt.input, HTMLOnly: true})
			if err != nil {
				t.Fatalf("Convert() unexpected error: %v", err)
			}
			for _, want := range tt.contains {
				if !strings.Contains(string(res.HTML), want) {
					t.Errorf("HTML missing %q in:\n%s", want, res.HTML)
				}
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestExport - Output file
// ---------------------------------------------------------------------------

func TestExport(t *testing.T) {
	t.Parallel()

	t.Run("writes and overwrites", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t, &mockPDFConverter{output: []byte("%PDF-1.4 new")})
		path := filepath.Join(t.TempDir(), "output.pdf")
		if err := os.WriteFile(path, []byte("stale content that is longer"), 0o600); err != nil {
			t.Fatal(err)
		}

		if err := conv.Export(context.Background(), "# Doc", path); err != nil {
			t.Fatalf("Export() unexpected error: %v", err)
		}
		got, err := os.ReadFile(path)
		if err != nil {
			t.Fatal(err)
		}
		if string(got) != "%PDF-1.4 new" {
			t.Errorf("file = %q", got)
		}
	})

	t.Run("unwritable path", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t, &mockPDFConverter{})
		err := conv.Export(context.Background(), "x", filepath.Join(t.TempDir(), "missing", "out.pdf"))
		if !errors.Is(err, ErrWriteOutput) {
			t.Errorf("Export() error = %v, want ErrWriteOutput", err)
		}
	})

	t.Run("conversion failure writes nothing", func(t *testing.T) {
		t.Parallel()

		conv := newTestConverter(t, &mockPDFConverter{err: ErrPDFGeneration})
		path := filepath.Join(t.TempDir(), "out.pdf")
		if err := conv.Export(context.Background(), "x", path); !errors.Is(err, ErrPDFGeneration) {
			t.Errorf("Export() error = %v, want ErrPDFGeneration", err)
		}
		if _, err := os.Stat(path); !os.IsNotExist(err) {
			t.Error("no file should be created when conversion fails")
		}
	})
}

// ---------------------------------------------------------------------------
// TestPreview - Live preview
// ---------------------------------------------------------------------------

func TestPreview(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, &mockPDFConverter{})

	got, err := conv.Preview(context.Background(), "# Notes\n\nfirst line\nsecond line :tada:")
	if err != nil {
		t.Fatalf("Preview() unexpected error: %v", err)
	}
	for _, want := range []string{`<h1 id="notes">Notes</h1>`, "first line<br />", "\U0001F389"} {
		if !strings.Contains(got, want) {
			t.Errorf("Preview() missing %q in:\n%s", want, got)
		}
	}
	if strings.Contains(got, "<html") {
		t.Error("Preview() should return a fragment")
	}
}

func TestPreviewPage(t *testing.T) {
	t.Parallel()

	conv := newTestConverter(t, &mockPDFConverter{})
	dir := t.TempDir()

	page, err := conv.PreviewPage(context.Background(), Input{
		Markdown:  "# Trip Report\n\n![map](img/map.png)",
		SourceDir: dir,
	})
	if err != nil {
		t.Fatalf("PreviewPage() unexpected error: %v", err)
	}
	for _, want := range []string{
		"<title>Trip Report</title>",
		`<main class="preview">`,
		`src="file://` + filepath.ToSlash(dir) + `/img/map.png"`,
		".preview {",
	} {
		if !strings.Contains(page, want) {
			t.Errorf("PreviewPage() missing %q in:\n%s", want, page)
		}
	}
}

func TestClose(t *testing.T) {
	t.Parallel()

	pdf := &mockPDFConverter{}
	conv, err := NewConverter(withPDFConverter(pdf))
	if err != nil {
		t.Fatal(err)
	}
	if err := conv.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !pdf.closed {
		t.Error("Close() should close the PDF converter")
	}
}
