package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	scribe "github.com/alnah/go-scribe"
	"github.com/alnah/go-scribe/internal/hints"
)

// finding is one grammar issue in report form.
type finding struct {
	Line         int      `json:"line"`
	Column       int      `json:"column"`
	Offset       int      `json:"offset"`
	Length       int      `json:"length"`
	Text         string   `json:"text"`
	Message      string   `json:"message"`
	Rule         string   `json:"rule,omitempty"`
	Replacements []string `json:"replacements,omitempty"`
}

// runCheck sends the input to the grammar service and prints the findings.
// Findings are reported, not treated as failure.
func runCheck(ctx context.Context, args []string, env *Environment) error {
	flags, positional, err := parseCheckFlags(args)
	if err != nil {
		return err
	}

	cfg, err := loadSettings(&flags.common, env)
	if err != nil {
		return err
	}
	if flags.endpoint != "" {
		cfg.Grammar.Endpoint = flags.endpoint
	}
	if flags.language != "" {
		cfg.Grammar.Language = flags.language
	}

	text, _, err := readInput(positional, env)
	if err != nil {
		return err
	}

	checker, err := env.NewChecker(cfg.Grammar.Endpoint, cfg.Grammar.Language)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	spans, err := checker.Check(ctx, text)
	if err != nil {
		if errors.Is(err, scribe.ErrGrammarService) {
			return fmt.Errorf("%w%s", err, hints.ForGrammarService(cfg.Grammar.Endpoint))
		}
		return err
	}

	findings := buildFindings(text, spans)
	if flags.json {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(findings)
	}
	printFindings(env.Stdout, findings)
	return nil
}

// buildFindings locates each span by line and column. Columns count
// characters, starting at 1.
func buildFindings(text string, spans []scribe.Span) []finding {
	out := make([]finding, 0, len(spans))
	for _, s := range spans {
		if s.Offset < 0 || s.Offset > len(text) {
			continue
		}
		end := min(s.Offset+s.Length, len(text))

		before := text[:s.Offset]
		line := strings.Count(before, "\n") + 1
		lineStart := strings.LastIndexByte(before, '\n') + 1

		out = append(out, finding{
			Line:         line,
			Column:       utf8.RuneCountInString(before[lineStart:]) + 1,
			Offset:       s.Offset,
			Length:       s.Length,
			Text:         text[s.Offset:end],
			Message:      s.Message,
			Rule:         s.Rule,
			Replacements: s.Replacements,
		})
	}
	return out
}

// printFindings writes one line per finding, compiler style.
func printFindings(w io.Writer, findings []finding) {
	if len(findings) == 0 {
		fmt.Fprintln(w, "No issues found")
		return
	}
	for _, f := range findings {
		fmt.Fprintf(w, "%d:%d: %s", f.Line, f.Column, f.Message)
		if f.Text != "" {
			fmt.Fprintf(w, " (%q)", f.Text)
		}
		if len(f.Replacements) > 0 {
			fmt.Fprintf(w, " -> %s", strings.Join(f.Replacements, ", "))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "%d issue(s) found\n", len(findings))
}
