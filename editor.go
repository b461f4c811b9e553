package scribe

import (
	"context"

	"go.uber.org/zap"

	"github.com/alnah/go-scribe/internal/grammar"
)

// DefaultOutputPath is where Export writes when no path is configured:
// output.pdf in the working directory.
const DefaultOutputPath = "output.pdf"

// Renderer is the part of a Converter the editor drives.
type Renderer interface {
	Preview(ctx context.Context, text string) (string, error)
	Export(ctx context.Context, text, path string) error
}

// Checker finds grammar and spelling issues in text.
type Checker interface {
	Check(ctx context.Context, text string) ([]Span, error)
}

var (
	_ Renderer = (*Converter)(nil)
	_ Checker  = (*grammar.Client)(nil)
)

// NewGrammarChecker returns a Checker for a LanguageTool-compatible
// endpoint. Empty arguments select a local server and "en-US".
func NewGrammarChecker(endpoint, language string) (Checker, error) {
	var opts []grammar.Option
	if language != "" {
		opts = append(opts, grammar.WithLanguage(language))
	}
	c, err := grammar.NewClient(endpoint, opts...)
	if err != nil {
		return nil, err
	}
	return c, nil
}

// Editor holds one document buffer and connects it to the preview, export
// and grammar collaborators. Window code calls SetText on every keystroke
// and Export on the export action.
//
// An Editor is not safe for concurrent use.
type Editor struct {
	renderer Renderer
	checker  Checker
	logger   *zap.Logger
	output   string

	text    string
	preview string
}

// EditorOption configures an Editor.
type EditorOption func(*Editor)

// WithOutputPath sets the export destination.
func WithOutputPath(path string) EditorOption {
	return func(e *Editor) {
		if path != "" {
			e.output = path
		}
	}
}

// WithChecker enables grammar checking.
func WithChecker(c Checker) EditorOption {
	return func(e *Editor) {
		e.checker = c
	}
}

// WithEditorLogger sets the operator console logger.
func WithEditorLogger(l *zap.Logger) EditorOption {
	return func(e *Editor) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewEditor creates an Editor with an empty buffer.
func NewEditor(r Renderer, opts ...EditorOption) *Editor {
	e := &Editor{
		renderer: r,
		logger:   zap.NewNop(),
		output:   DefaultOutputPath,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// SetText replaces the buffer and refreshes the preview. When rendering
// fails the failure is logged and the previous preview is kept.
func (e *Editor) SetText(ctx context.Context, text string) string {
	e.text = text
	preview, err := e.renderer.Preview(ctx, text)
	if err != nil {
		e.logger.Warn("preview failed", zap.Error(err))
		return e.preview
	}
	e.preview = preview
	return preview
}

// Text returns the buffer.
func (e *Editor) Text() string { return e.text }

// Preview returns the last successfully rendered preview fragment.
func (e *Editor) Preview() string { return e.preview }

// OutputPath returns the export destination.
func (e *Editor) OutputPath() string { return e.output }

// Export writes the buffer to the output path as a PDF. Failures are
// logged to the operator console and returned; the buffer is never touched.
func (e *Editor) Export(ctx context.Context) error {
	if err := e.renderer.Export(ctx, e.text, e.output); err != nil {
		e.logger.Error("export failed", zap.String("path", e.output), zap.Error(err))
		return err
	}
	return nil
}

// Check returns grammar findings for the buffer, sorted by offset.
// Without a checker, or when the service fails, it returns nil; service
// failures are logged.
func (e *Editor) Check(ctx context.Context) []Span {
	if e.checker == nil {
		return nil
	}
	spans, err := e.checker.Check(ctx, e.text)
	if err != nil {
		e.logger.Warn("grammar check failed", zap.Error(err))
		return nil
	}
	return spans
}
