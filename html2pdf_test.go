package scribe

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
)

// ---------------------------------------------------------------------------
// Mock Implementations
// ---------------------------------------------------------------------------

type mockPDFRenderer struct {
	path        string
	existed     bool
	content     string
	page        *PageSettings
	closeCalled bool
	output      []byte
	err         error
}

func (m *mockPDFRenderer) RenderFromFile(ctx context.Context, filePath string, page *PageSettings) ([]byte, error) {
	m.path = filePath
	m.page = page
	if data, err := os.ReadFile(filePath); err == nil {
		m.existed = true
		m.content = string(data)
	}
	if m.err != nil {
		return nil, m.err
	}
	return m.output, nil
}

func (m *mockPDFRenderer) Close() error {
	m.closeCalled = true
	return nil
}

// ---------------------------------------------------------------------------
// TestBuildPDFOptions
// ---------------------------------------------------------------------------

func TestBuildPDFOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		page       *PageSettings
		wantWidth  float64
		wantHeight float64
		wantMargin float64
	}{
		{"nil uses letter", nil, 8.5, 11, DefaultMargin},
		{"a4 portrait", &PageSettings{Size: "a4", Orientation: "portrait", Margin: 1}, 8.27, 11.69, 1},
		{"legal landscape", &PageSettings{Size: "legal", Orientation: "landscape", Margin: 0.25}, 14, 8.5, 0.25},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			opts := buildPDFOptions(tt.page)
			if *opts.PaperWidth != tt.wantWidth || *opts.PaperHeight != tt.wantHeight {
				t.Errorf("paper = %v x %v, want %v x %v", *opts.PaperWidth, *opts.PaperHeight, tt.wantWidth, tt.wantHeight)
			}
			for name, m := range map[string]*float64{
				"top": opts.MarginTop, "bottom": opts.MarginBottom,
				"left": opts.MarginLeft, "right": opts.MarginRight,
			} {
				if *m != tt.wantMargin {
					t.Errorf("margin %s = %v, want %v", name, *m, tt.wantMargin)
				}
			}
			if !opts.PrintBackground {
				t.Error("PrintBackground should be true")
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRodConverter_ToPDF
// ---------------------------------------------------------------------------

func TestRodConverter_ToPDF(t *testing.T) {
	t.Parallel()

	t.Run("renders from temp file and removes it", func(t *testing.T) {
		t.Parallel()

		renderer := &mockPDFRenderer{output: []byte("%PDF-1.4")}
		conv := &rodConverter{renderer: renderer}
		page := DefaultPageSettings()

		got, err := conv.ToPDF(context.Background(), "<html><body>hi</body></html>", page)
		if err != nil {
			t.Fatalf("ToPDF() unexpected error: %v", err)
		}
		if string(got) != "%PDF-1.4" {
			t.Errorf("ToPDF() = %q", got)
		}
		if !renderer.existed || !strings.Contains(renderer.content, "hi") {
			t.Error("renderer should see the HTML on disk")
		}
		if !strings.HasSuffix(renderer.path, ".html") {
			t.Errorf("temp path %q should end in .html", renderer.path)
		}
		if renderer.page != page {
			t.Error("page settings should pass through unchanged")
		}
		if _, err := os.Stat(renderer.path); !os.IsNotExist(err) {
			t.Error("temp file should be removed after rendering")
		}
	})

	t.Run("renderer error", func(t *testing.T) {
		t.Parallel()

		renderer := &mockPDFRenderer{err: ErrPageLoad}
		conv := &rodConverter{renderer: renderer}

		_, err := conv.ToPDF(context.Background(), "<p>x</p>", nil)
		if !errors.Is(err, ErrPageLoad) {
			t.Errorf("ToPDF() error = %v, want ErrPageLoad", err)
		}
		if _, statErr := os.Stat(renderer.path); !os.IsNotExist(statErr) {
			t.Error("temp file should be removed after a failure")
		}
	})
}

func TestRodConverter_Close(t *testing.T) {
	t.Parallel()

	renderer := &mockPDFRenderer{}
	conv := &rodConverter{renderer: renderer}
	if err := conv.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}
	if !renderer.closeCalled {
		t.Error("Close() should close the renderer")
	}

	if err := (&rodConverter{}).Close(); err != nil {
		t.Errorf("Close() on empty converter = %v", err)
	}
}

func TestRodRenderer_CloseWithoutBrowser(t *testing.T) {
	t.Parallel()

	r := newRodRenderer(defaultTimeout, nil)
	if err := r.Close(); err != nil {
		t.Errorf("Close() before launch = %v", err)
	}
}
