package report

import "strings"

const variationSelector = "\uFE0F"

var (
	doGlyphs   = []string{"✔", "✓", "✅", "☑", "👍"}
	dontGlyphs = []string{"✘", "✗", "❌", "✖", "⛔", "🚫", "👎"}
)

// ClassifyAction turns a cell or bullet into an action. A leading do glyph
// yields PolarityDo, a leading don't glyph yields PolarityDont and text with
// neither defaults to PolarityDo. The boolean is false when nothing but
// markers remain.
func ClassifyAction(text string) (Action, bool) {
	text = StripBullet(text)
	polarity, rest, _ := splitGlyph(text)
	rest = CollapseSpace(rest)
	if rest == "" {
		return Action{}, false
	}
	return Action{Polarity: polarity, Text: rest}, true
}

// HasGlyph reports whether text (after any bullet marker) starts with a do or
// don't glyph.
func HasGlyph(text string) bool {
	_, _, found := splitGlyph(StripBullet(text))
	return found
}

func splitGlyph(text string) (Polarity, string, bool) {
	text = strings.TrimSpace(text)
	for _, glyph := range dontGlyphs {
		if strings.HasPrefix(text, glyph) {
			return PolarityDont, trimGlyphTail(text[len(glyph):]), true
		}
	}
	for _, glyph := range doGlyphs {
		if strings.HasPrefix(text, glyph) {
			return PolarityDo, trimGlyphTail(text[len(glyph):]), true
		}
	}
	return PolarityDo, text, false
}

func trimGlyphTail(rest string) string {
	rest = strings.TrimPrefix(rest, variationSelector)
	return strings.TrimLeft(rest, " \t:-–")
}
