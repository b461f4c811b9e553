package pipeline

import "testing"

func TestAliasNormalizer_Normalize(t *testing.T) {
	t.Parallel()

	n := NewAliasNormalizer()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "empty string",
			input:    "",
			expected: "",
		},
		{
			name:     "no colons",
			input:    "Hello world",
			expected: "Hello world",
		},
		{
			name:     "single alias",
			input:    "Ship it :rocket:",
			expected: "Ship it \U0001F680",
		},
		{
			name:     "adjacent aliases",
			input:    ":smile::rocket:",
			expected: "\U0001F604\U0001F680",
		},
		{
			name:     "unknown alias passes through",
			input:    "see :not_an_emoji_xyz: here",
			expected: "see :not_an_emoji_xyz: here",
		},
		{
			name:     "closing colon reused after unknown token",
			input:    "time 10:30:smile:",
			expected: "time 10:30\U0001F604",
		},
		{
			name:     "spaces break tokens",
			input:    "a : smile : b",
			expected: "a : smile : b",
		},
		{
			name:     "lone colon",
			input:    "ratio 3:4",
			expected: "ratio 3:4",
		},
		{
			name:     "fenced code is left alone",
			input:    "```\n:smile:\n```\n:smile:",
			expected: "```\n:smile:\n```\n\U0001F604",
		},
		{
			name:     "tilde fence",
			input:    "~~~yaml\nkey: :rocket:\n~~~",
			expected: "~~~yaml\nkey: :rocket:\n~~~",
		},
		{
			name:     "tilde line inside backtick fence",
			input:    "```\n~~~\n:smile:\n```\n\nafter :smile:",
			expected: "```\n~~~\n:smile:\n```\n\nafter \U0001F604",
		},
		{
			name:     "shorter run inside longer fence",
			input:    "````md\n```\n:smile: inside code\n````\n\nafter :smile:",
			expected: "````md\n```\n:smile: inside code\n````\n\nafter \U0001F604",
		},
		{
			name:     "closing fence cannot carry info string",
			input:    "```\n```go\n:smile:\n```\n:smile:",
			expected: "```\n```go\n:smile:\n```\n\U0001F604",
		},
		{
			name:     "indented four spaces is not a fence",
			input:    "    ```\n:smile:",
			expected: "    ```\n\U0001F604",
		},
		{
			name:     "unclosed fence runs to the end",
			input:    "~~~\n:smile:\n:rocket:",
			expected: "~~~\n:smile:\n:rocket:",
		},
		{
			name:     "inline code span",
			input:    "use `:smile:` literally :smile:",
			expected: "use `:smile:` literally \U0001F604",
		},
		{
			name:     "double backtick span",
			input:    "``a ` :smile:`` :rocket:",
			expected: "``a ` :smile:`` \U0001F680",
		},
		{
			name:     "unmatched backtick is text",
			input:    "it`s :smile:",
			expected: "it`s \U0001F604",
		},
		{
			name:     "accented text untouched",
			input:    "Café :smile: déjà vu",
			expected: "Café \U0001F604 déjà vu",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := n.Normalize(tt.input)
			if got != tt.expected {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestAliasNormalizer_Idempotent(t *testing.T) {
	t.Parallel()

	n := NewAliasNormalizer()

	inputs := []string{
		"",
		"plain paragraph",
		":smile: and :rocket:",
		":foo:smile:bar:",
		"::smile::",
		"a:b:c:d:smile:e",
		"```\n:smile:\n```",
		"- item :tada:\n- other :unknown_thing:",
		":smile:rocket:",
	}

	for _, in := range inputs {
		once := n.Normalize(in)
		twice := n.Normalize(once)
		if once != twice {
			t.Errorf("Normalize not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestIsAliasName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want bool
	}{
		{"smile", true},
		{"+1", true},
		{"t-rex", true},
		{"white_check_mark", true},
		{"", false},
		{"two words", false},
		{"émoji", false},
	}

	for _, tt := range tests {
		if got := isAliasName(tt.in); got != tt.want {
			t.Errorf("isAliasName(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
