package fonts

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/h2non/filetype"
)

// Sentinel errors for font loading.
var (
	ErrNotFound = errors.New("font file not found")
	ErrInvalid  = errors.New("invalid font file")
)

// Default fallback families, used when no font file is configured.
const (
	DefaultEmojiFamily   = "Noto Color Emoji"
	DefaultUnicodeFamily = "DejaVu Sans"
)

// Formats accepted for @font-face sources, keyed by filetype extension.
var fontFormats = map[string]string{
	"ttf":   "truetype",
	"otf":   "opentype",
	"woff":  "woff",
	"woff2": "woff2",
}

// Face is a fallback font family with an optional file to embed.
type Face struct {
	Family string
	File   string

	data   []byte
	format string
	mime   string
}

// Load reads and sniffs the face's file. A face without a file is a
// reference to a system font and loads as a no-op.
func (f *Face) Load() error {
	if f.File == "" {
		return nil
	}
	data, err := os.ReadFile(f.File) // #nosec G304 -- user-provided font path
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, f.File)
		}
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}

	kind, err := filetype.Match(data)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	format, ok := fontFormats[kind.Extension]
	if !ok || !filetype.IsFont(data) {
		return fmt.Errorf("%w: %s is not a TrueType, OpenType or WOFF font", ErrInvalid, f.File)
	}

	f.data = data
	f.format = format
	f.mime = kind.MIME.Value
	return nil
}

// Loaded reports whether font data has been read.
func (f *Face) Loaded() bool {
	return len(f.data) > 0
}

// Set holds the fallback faces used by the document renderer.
type Set struct {
	Emoji   Face
	Unicode Face
}

// DefaultSet returns faces referring to commonly installed system fonts.
func DefaultSet() Set {
	return Set{
		Emoji:   Face{Family: DefaultEmojiFamily},
		Unicode: Face{Family: DefaultUnicodeFamily},
	}
}

// Load validates both faces, filling empty family names with defaults.
func (s *Set) Load() error {
	if s.Emoji.Family == "" {
		s.Emoji.Family = DefaultEmojiFamily
	}
	if s.Unicode.Family == "" {
		s.Unicode.Family = DefaultUnicodeFamily
	}
	if err := s.Emoji.Load(); err != nil {
		return fmt.Errorf("emoji font: %w", err)
	}
	if err := s.Unicode.Load(); err != nil {
		return fmt.Errorf("unicode font: %w", err)
	}
	return nil
}

// Families returns the fallback family names in stack order.
func (s Set) Families() []string {
	return []string{s.Unicode.Family, s.Emoji.Family}
}

// Family returns the family name for a font class, or "" for Primary.
func (s Set) Family(c Class) string {
	switch c {
	case Emoji:
		return s.Emoji.Family
	case Unicode:
		return s.Unicode.Family
	default:
		return ""
	}
}

// FaceCSS returns @font-face rules for loaded faces with their data
// inlined, so the print page needs no file access.
func (s Set) FaceCSS() string {
	var b strings.Builder
	for _, f := range []Face{s.Unicode, s.Emoji} {
		if !f.Loaded() {
			continue
		}
		fmt.Fprintf(&b, "@font-face {\n  font-family: %q;\n  src: url(data:%s;base64,%s) format(%q);\n}\n",
			f.Family, f.mime, base64.StdEncoding.EncodeToString(f.data), f.format)
	}
	return b.String()
}

// ClassCSS returns the rules for the fallback span classes.
func (s Set) ClassCSS() string {
	return fmt.Sprintf(".font-unicode {\n  font-family: %q;\n}\n.font-emoji {\n  font-family: %q;\n}\n",
		s.Unicode.Family, s.Emoji.Family)
}

// ClassName returns the CSS class of a fallback span, or "" for Primary.
func ClassName(c Class) string {
	switch c {
	case Emoji:
		return "font-emoji"
	case Unicode:
		return "font-unicode"
	default:
		return ""
	}
}
