package main

import (
	"bytes"
	"context"
	"strings"
	"testing"

	scribe "github.com/alnah/go-scribe"
)

// ---------------------------------------------------------------------------
// Test Helpers
// ---------------------------------------------------------------------------

type fakeConverter struct {
	opts      []scribe.Option
	exported  map[string]string // path -> text
	lastInput scribe.Input
	closed    bool
	err       error
}

func (f *fakeConverter) Convert(ctx context.Context, input scribe.Input) (*scribe.ConvertResult, error) {
	f.lastInput = input
	if f.err != nil {
		return nil, f.err
	}
	res := &scribe.ConvertResult{HTML: []byte("<html>" + input.Markdown + "</html>")}
	if !input.HTMLOnly {
		res.PDF = []byte("%PDF-1.4 fake")
	}
	return res, nil
}

func (f *fakeConverter) Export(ctx context.Context, text, path string) error {
	if f.err != nil {
		return f.err
	}
	if f.exported == nil {
		f.exported = make(map[string]string)
	}
	f.exported[path] = text
	return nil
}

func (f *fakeConverter) Preview(ctx context.Context, text string) (string, error) {
	return "<p>" + text + "</p>", f.err
}

func (f *fakeConverter) PreviewPage(ctx context.Context, input scribe.Input) (string, error) {
	f.lastInput = input
	return "<html><main>" + input.Markdown + "</main></html>", f.err
}

func (f *fakeConverter) Close() error {
	f.closed = true
	return nil
}

type fakeChecker struct {
	spans []scribe.Span
	err   error
}

func (f *fakeChecker) Check(ctx context.Context, text string) ([]scribe.Span, error) {
	return f.spans, f.err
}

type testEnv struct {
	*Environment
	stdout *bytes.Buffer
	stderr *bytes.Buffer
	conv   *fakeConverter
}

// newTestEnv returns an environment with buffered streams, stdin set to
// input, and fakes for the converter and the grammar checker.
func newTestEnv(t *testing.T, input string) *testEnv {
	t.Helper()

	te := &testEnv{
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
		conv:   &fakeConverter{},
	}
	te.Environment = &Environment{
		Stdin:           strings.NewReader(input),
		Stdout:          te.stdout,
		Stderr:          te.stderr,
		StdinIsTerminal: func() bool { return false },
		NewConverter: func(opts ...scribe.Option) (Converter, error) {
			te.conv.opts = opts
			return te.conv, nil
		},
		NewChecker: func(endpoint, language string) (scribe.Checker, error) {
			return &fakeChecker{}, nil
		},
	}
	return te
}
