package sections

import (
	"regexp"
	"strings"
	"unicode"
)

var leadingNumbering = regexp.MustCompile(`^(?:section\s+\d+\s*:?\s*|\d+(?:\.\d+)*\.\s*|\d+\s*:\s*|[ivx]+\.\s+)`)

// NormalizeTitle folds a heading or synonym into a comparable key: lower case,
// no emphasis markers, numbering, emoji or punctuation, "&" spelled "and".
func NormalizeTitle(title string) string {
	title = strings.ToLower(strings.TrimSpace(title))
	title = strings.ReplaceAll(title, "&", " and ")
	title = strings.Map(func(r rune) rune {
		switch {
		case r == '\'' || r == '’':
			return -1
		case unicode.IsLetter(r) || unicode.IsDigit(r) || r == '.' || r == ':':
			return r
		default:
			return ' '
		}
	}, title)
	title = strings.Join(strings.Fields(title), " ")
	title = leadingNumbering.ReplaceAllString(title, "")
	title = strings.Map(func(r rune) rune {
		if r == '.' || r == ':' {
			return ' '
		}
		return r
	}, title)
	return strings.Join(strings.Fields(title), " ")
}

// NameSet is a closed set of normalised section names.
type NameSet map[string]struct{}

// NewNameSet normalises names into a set.
func NewNameSet(names []string) NameSet {
	set := make(NameSet, len(names))
	for _, name := range names {
		if key := NormalizeTitle(name); key != "" {
			set[key] = struct{}{}
		}
	}
	return set
}

// Has reports whether title normalises to a member of the set.
func (s NameSet) Has(title string) bool {
	if len(s) == 0 {
		return false
	}
	_, ok := s[NormalizeTitle(title)]
	return ok
}

func (s NameSet) matchHeading(line string) (header, bool) {
	if level, title, ok := headingLine(line); ok && level > 0 && s.Has(title) {
		return header{title: cleanHeading(title)}, true
	}
	if m := boldLinePattern.FindStringSubmatch(line); m != nil && s.Has(m[1]) {
		return header{title: cleanHeading(m[1])}, true
	}
	if plainHeadingCandidate(line) && s.Has(line) {
		return header{title: cleanHeading(line)}, true
	}
	return header{}, false
}

// headingLine reports the markdown heading level and text of line. Whole-line
// bold text counts as a heading with level 0.
func headingLine(line string) (int, string, bool) {
	line = strings.TrimSpace(line)
	if m := headingPattern.FindStringSubmatch(line); m != nil {
		return len(m[1]), m[2], true
	}
	if m := boldLinePattern.FindStringSubmatch(line); m != nil {
		return 0, m[1], true
	}
	return 0, "", false
}

func plainHeadingCandidate(line string) bool {
	if len(line) > 80 || line == "" {
		return false
	}
	switch line[0] {
	case '|', '-', '*', '+', '>', '#':
		return false
	}
	return !strings.ContainsAny(line, "|")
}
