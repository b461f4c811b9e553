// Package fonts assigns runs of text to font classes so glyphs missing
// from the primary document font render from a fallback family.
package fonts

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Class identifies which font family a segment is set in.
type Class int

// Font classes.
const (
	Primary Class = iota
	Unicode
	Emoji
)

func (c Class) String() string {
	switch c {
	case Primary:
		return "primary"
	case Unicode:
		return "unicode"
	case Emoji:
		return "emoji"
	default:
		return "unknown"
	}
}

// Segment is a maximal run of text sharing one font class.
type Segment struct {
	Text  string
	Class Class
}

// Glyph joiners that attach to the preceding emoji.
const (
	zeroWidthJoiner = '\u200d'
	variationEmoji  = '\ufe0f'
	variationText   = '\ufe0e'
	keycapCombining = '\u20e3'
	skinToneFirst   = '\U0001F3FB'
	skinToneLast    = '\U0001F3FF'
	tagFirst        = '\U000E0020'
	tagLast         = '\U000E007F'
)

// primaryRanges covers what the standard PDF base fonts carry:
// Latin-1, Latin Extended-A/B and general punctuation.
var primaryRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x0009, Hi: 0x000D, Stride: 1},
		{Lo: 0x0020, Hi: 0x007E, Stride: 1},
		{Lo: 0x00A0, Hi: 0x024F, Stride: 1},
		{Lo: 0x2000, Hi: 0x206F, Stride: 1},
		{Lo: 0x20AC, Hi: 0x20AC, Stride: 1},
		{Lo: 0x2122, Hi: 0x2122, Stride: 1},
	},
}

// emojiRanges lists the pictographic blocks rendered from the emoji font.
var emojiRanges = &unicode.RangeTable{
	R16: []unicode.Range16{
		{Lo: 0x231A, Hi: 0x231B, Stride: 1},
		{Lo: 0x23E9, Hi: 0x23F3, Stride: 1},
		{Lo: 0x2600, Hi: 0x27BF, Stride: 1},
		{Lo: 0x2B50, Hi: 0x2B55, Stride: 1},
	},
	R32: []unicode.Range32{
		{Lo: 0x1F000, Hi: 0x1F0FF, Stride: 1},
		{Lo: 0x1F1E6, Hi: 0x1F1FF, Stride: 1},
		{Lo: 0x1F300, Hi: 0x1F64F, Stride: 1},
		{Lo: 0x1F680, Hi: 0x1F6FF, Stride: 1},
		{Lo: 0x1F900, Hi: 0x1F9FF, Stride: 1},
		{Lo: 0x1FA70, Hi: 0x1FAFF, Stride: 1},
	},
}

// Classify returns the font class of a single rune.
func Classify(r rune) Class {
	switch {
	case unicode.Is(primaryRanges, r):
		return Primary
	case unicode.Is(emojiRanges, r):
		return Emoji
	default:
		return Unicode
	}
}

// isJoiner reports whether r extends the emoji sequence before it.
func isJoiner(r rune) bool {
	switch {
	case r == zeroWidthJoiner, r == variationEmoji, r == variationText, r == keycapCombining:
		return true
	case r >= skinToneFirst && r <= skinToneLast:
		return true
	case r >= tagFirst && r <= tagLast:
		return true
	}
	return false
}

// isKeycapBase reports whether r can start a keycap sequence like 1️⃣.
func isKeycapBase(r rune) bool {
	return r >= '0' && r <= '9' || r == '#' || r == '*'
}

// Split normalizes text to NFC and groups it into segments by font class.
// Joiners and modifiers following an emoji stay in the emoji segment so
// sequences like flags, keycaps or skin-toned faces are never split
// across fonts.
// Concatenating the segment texts yields the NFC form of text.
func Split(text string) []Segment {
	if text == "" {
		return nil
	}
	text = norm.NFC.String(text)

	var (
		segs []Segment
		buf  strings.Builder
		cur  Class
		prev rune
	)
	flush := func() {
		if buf.Len() > 0 {
			segs = append(segs, Segment{Text: buf.String(), Class: cur})
			buf.Reset()
		}
	}

	runes := []rune(text)
	for i, r := range runes {
		c := Classify(r)
		switch {
		case isKeycapBase(r) && i+1 < len(runes) &&
			(runes[i+1] == variationEmoji || runes[i+1] == keycapCombining):
			c = Emoji
		case cur == Emoji && i > 0 && isJoiner(r):
			c = Emoji
		case cur == Emoji && prev == zeroWidthJoiner:
			c = Emoji
		}
		if i == 0 {
			cur = c
		} else if c != cur {
			flush()
			cur = c
		}
		buf.WriteRune(r)
		prev = r
	}
	flush()
	return segs
}

// NeedsFallback reports whether any part of text leaves the primary font.
func NeedsFallback(text string) bool {
	for _, r := range text {
		if Classify(r) != Primary {
			return true
		}
	}
	return false
}
