package main

import (
	"bytes"
	"testing"

	scribe "github.com/alnah/go-scribe"
)

func TestBuildFindings(t *testing.T) {
	t.Parallel()

	text := "Première ligne\nune faute ici\n🚀 teh"

	tests := []struct {
		name       string
		span       scribe.Span
		wantLine   int
		wantColumn int
		wantText   string
	}{
		{"first line", scribe.Span{Offset: 0, Length: 9}, 1, 1, "Première"},
		{"second line", scribe.Span{Offset: len("Première ligne\nune "), Length: 5}, 2, 5, "faute"},
		{"after emoji counts runes", scribe.Span{Offset: len("Première ligne\nune faute ici\n🚀 "), Length: 3}, 3, 3, "teh"},
		{"length clamped", scribe.Span{Offset: len(text) - 3, Length: 99}, 3, 3, "teh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := buildFindings(text, []scribe.Span{tt.span})
			if len(got) != 1 {
				t.Fatalf("buildFindings() = %v, want one finding", got)
			}
			f := got[0]
			if f.Line != tt.wantLine || f.Column != tt.wantColumn || f.Text != tt.wantText {
				t.Errorf("finding = %d:%d %q, want %d:%d %q", f.Line, f.Column, f.Text, tt.wantLine, tt.wantColumn, tt.wantText)
			}
		})
	}
}

func TestBuildFindings_SkipsOutOfRange(t *testing.T) {
	t.Parallel()

	got := buildFindings("short", []scribe.Span{{Offset: -1}, {Offset: 99}})
	if len(got) != 0 {
		t.Errorf("buildFindings() = %v, want none", got)
	}
}

func TestPrintFindings_Empty(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printFindings(&buf, nil)
	if buf.String() != "No issues found\n" {
		t.Errorf("output = %q", buf.String())
	}
}
