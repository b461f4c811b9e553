package main

import (
	"context"
	"io"
	"os"

	"golang.org/x/term"

	scribe "github.com/alnah/go-scribe"
)

// Converter is the part of scribe.Converter the commands use.
type Converter interface {
	Convert(ctx context.Context, input scribe.Input) (*scribe.ConvertResult, error)
	Export(ctx context.Context, text, path string) error
	Preview(ctx context.Context, text string) (string, error)
	PreviewPage(ctx context.Context, input scribe.Input) (string, error)
	Close() error
}

// Compile-time interface implementation check.
var _ Converter = (*scribe.Converter)(nil)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// StdinIsTerminal reports whether nothing is piped in.
	StdinIsTerminal func() bool

	NewConverter func(opts ...scribe.Option) (Converter, error)
	NewChecker   func(endpoint, language string) (scribe.Checker, error)
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	return &Environment{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		StdinIsTerminal: func() bool {
			return term.IsTerminal(int(os.Stdin.Fd())) // #nosec G115 -- fd fits in int
		},
		NewConverter: func(opts ...scribe.Option) (Converter, error) {
			c, err := scribe.NewConverter(opts...)
			if err != nil {
				return nil, err
			}
			return c, nil
		},
		NewChecker: scribe.NewGrammarChecker,
	}
}
