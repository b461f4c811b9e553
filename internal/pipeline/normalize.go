package pipeline

import (
	"strings"

	"github.com/yuin/goldmark-emoji/definition"
)

// Normalizer expands shorthand tokens in raw editor text before parsing.
type Normalizer interface {
	Normalize(content string) string
}

// AliasNormalizer replaces :alias: tokens with their literal emoji.
// Fenced code blocks and inline code spans are copied verbatim.
type AliasNormalizer struct {
	emojis definition.Emojis
}

// NewAliasNormalizer creates an AliasNormalizer backed by GitHub's alias table.
func NewAliasNormalizer() *AliasNormalizer {
	return &AliasNormalizer{emojis: definition.Github()}
}

// Normalize expands every recognized alias. Unknown tokens pass through
// unchanged, so the result is stable under repeated application.
func (n *AliasNormalizer) Normalize(content string) string {
	if !strings.Contains(content, ":") {
		return content
	}

	lines := strings.Split(content, "\n")
	var open *fence
	for i, line := range lines {
		if open != nil {
			if open.closedBy(line) {
				open = nil
			}
			continue
		}
		if f, ok := openingFence(line); ok {
			open = &f
			continue
		}
		lines[i] = n.expandLine(line)
	}
	return strings.Join(lines, "\n")
}

// fence is the opening run of a fenced code block.
type fence struct {
	char byte
	size int
}

// openingFence recognizes a run of at least three backticks or tildes
// indented by at most three spaces. A backtick fence's info string may
// not contain backticks.
func openingFence(line string) (fence, bool) {
	rest, ok := trimFenceIndent(line)
	if !ok || rest == "" || (rest[0] != '`' && rest[0] != '~') {
		return fence{}, false
	}
	size := runLength(rest, rest[0])
	if size < 3 {
		return fence{}, false
	}
	if rest[0] == '`' && strings.IndexByte(rest[size:], '`') >= 0 {
		return fence{}, false
	}
	return fence{char: rest[0], size: size}, true
}

// closedBy reports whether line ends the block: same character, at least
// as long as the opening run, nothing but spaces after it.
func (f fence) closedBy(line string) bool {
	rest, ok := trimFenceIndent(line)
	if !ok || rest == "" || rest[0] != f.char {
		return false
	}
	size := runLength(rest, f.char)
	return size >= f.size && strings.TrimSpace(rest[size:]) == ""
}

func trimFenceIndent(line string) (string, bool) {
	i := 0
	for i < len(line) && line[i] == ' ' {
		i++
	}
	if i > 3 {
		return "", false
	}
	return line[i:], true
}

func runLength(s string, c byte) int {
	n := 0
	for n < len(s) && s[n] == c {
		n++
	}
	return n
}

// expandLine expands aliases outside inline code spans. A span opens on a
// run of backticks and closes on a run of the same length; an unmatched
// run is ordinary text.
func (n *AliasNormalizer) expandLine(line string) string {
	if !strings.Contains(line, "`") {
		return n.expandAliases(line)
	}

	var b strings.Builder
	rest := line
	for {
		tick := strings.IndexByte(rest, '`')
		if tick == -1 {
			b.WriteString(n.expandAliases(rest))
			return b.String()
		}
		b.WriteString(n.expandAliases(rest[:tick]))
		rest = rest[tick:]

		size := runLength(rest, '`')
		end := closingTicks(rest[size:], size)
		if end == -1 {
			b.WriteString(rest[:size])
			rest = rest[size:]
			continue
		}
		span := size + end + size
		b.WriteString(rest[:span])
		rest = rest[span:]
	}
}

// closingTicks returns the index in s of a backtick run exactly size long,
// or -1.
func closingTicks(s string, size int) int {
	for i := 0; i < len(s); {
		if s[i] != '`' {
			i++
			continue
		}
		run := runLength(s[i:], '`')
		if run == size {
			return i
		}
		i += run
	}
	return -1
}

// expandAliases scans for ":name:" pairs. When the name is not an alias the
// closing colon is reused as a possible opening colon for the next token.
func (n *AliasNormalizer) expandAliases(line string) string {
	var b strings.Builder
	rest := line
	for {
		open := strings.IndexByte(rest, ':')
		if open == -1 {
			b.WriteString(rest)
			return b.String()
		}
		b.WriteString(rest[:open])
		rest = rest[open:]

		end := strings.IndexByte(rest[1:], ':')
		if end == -1 {
			b.WriteString(rest)
			return b.String()
		}
		name := rest[1 : end+1]
		if literal, ok := n.lookup(name); ok {
			b.WriteString(literal)
			rest = rest[end+2:]
			continue
		}
		b.WriteByte(':')
		rest = rest[1:]
	}
}

// lookup resolves an alias name to its literal characters.
// Aliases without a unicode form (custom GitHub images) are not expanded.
func (n *AliasNormalizer) lookup(name string) (string, bool) {
	if !isAliasName(name) {
		return "", false
	}
	e, ok := n.emojis.Get(name)
	if !ok || e == nil || len(e.Unicode) == 0 {
		return "", false
	}
	return string(e.Unicode), true
}

// isAliasName reports whether s only uses characters allowed in alias names.
func isAliasName(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
		case r == '_', r == '+', r == '-':
		default:
			return false
		}
	}
	return true
}
