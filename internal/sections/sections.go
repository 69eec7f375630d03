// Package sections splits a report into top-level labeled blocks. Header
// conventions are tried in a fixed order and the first convention that
// recognises at least one header wins for the whole document.
package sections

import (
	"regexp"
	"strings"
)

// Section titles produced when no header is recognised.
const (
	TitleBody     = "body"
	TitlePreamble = "preamble"
)

// Strategy names, in the order they are tried.
const (
	StrategySectionColon  = "section-colon"
	StrategyNumbered      = "numbered-heading"
	StrategyBoldSection   = "bold-section"
	StrategyKnownHeading  = "known-heading"
	StrategyNotRecognised = "body"
)

// Section is one labeled block of a document. Ordinal is the position in
// document order starting at 1; a preamble before the first header has
// ordinal 0. Label carries the number printed in the header, if any.
type Section struct {
	Title   string `json:"title"`
	Label   string `json:"label,omitempty"`
	Body    string `json:"body"`
	Ordinal int    `json:"ordinal"`
}

// Result is the outcome of a split together with the strategy that produced it.
type Result struct {
	Strategy string
	Sections []Section
}

// Found reports whether any header convention matched.
func (r Result) Found() bool {
	return r.Strategy != StrategyNotRecognised
}

type header struct {
	title string
	label string
}

type matcher func(line string) (header, bool)

type strategy struct {
	name  string
	match matcher
}

var (
	sectionColonPattern = regexp.MustCompile(`(?i)^#{1,6}\s*(?:\*\*)?\s*section\s+(\d+)\s*:\s*(.+)$`)
	numberedPattern     = regexp.MustCompile(`^#{1,6}\s*(?:\*\*)?\s*(\d+)\.\s+(.+)$`)
	boldSectionPattern  = regexp.MustCompile(`(?i)^\*\*section\s+(\d+)\s*:?\s*(.*?)\*\*\s*:?\s*(.*)$`)
	headingPattern      = regexp.MustCompile(`^(#{1,6})\s+(.+?)\s*#*\s*$`)
	boldLinePattern     = regexp.MustCompile(`^\*\*([^*]+?)\*\*\s*:?\s*$`)
	fencePattern        = regexp.MustCompile("^\\s*(```|~~~)")
)

// Split breaks text into sections, using known as the closed set of section
// names accepted by the plain-heading convention.
func Split(text string, known []string) []Section {
	return SplitWith(text, known).Sections
}

// SplitWith is Split that also reports the winning strategy. When no strategy
// matches, a single "body" section holding the whole document is returned;
// callers treat that as structure not found, not as an error.
func SplitWith(text string, known []string) Result {
	lines := strings.Split(text, "\n")
	for _, s := range strategies(NewNameSet(known)) {
		if secs := splitLines(lines, s.match); len(secs) > 0 {
			return Result{Strategy: s.name, Sections: secs}
		}
	}
	return Result{
		Strategy: StrategyNotRecognised,
		Sections: []Section{{Title: TitleBody, Body: strings.TrimSpace(text), Ordinal: 1}},
	}
}

func strategies(known NameSet) []strategy {
	return []strategy{
		{name: StrategySectionColon, match: matchSectionColon},
		{name: StrategyNumbered, match: matchNumbered},
		{name: StrategyBoldSection, match: matchBoldSection},
		{name: StrategyKnownHeading, match: known.matchHeading},
	}
}

func matchSectionColon(line string) (header, bool) {
	m := sectionColonPattern.FindStringSubmatch(line)
	if m == nil {
		return header{}, false
	}
	return header{label: m[1], title: cleanHeading(m[2])}, true
}

func matchNumbered(line string) (header, bool) {
	m := numberedPattern.FindStringSubmatch(line)
	if m == nil {
		return header{}, false
	}
	return header{label: m[1], title: cleanHeading(m[2])}, true
}

func matchBoldSection(line string) (header, bool) {
	m := boldSectionPattern.FindStringSubmatch(line)
	if m == nil {
		return header{}, false
	}
	title := cleanHeading(m[2])
	if title == "" {
		title = cleanHeading(m[3])
	}
	return header{label: m[1], title: title}, true
}

func splitLines(lines []string, match matcher) []Section {
	var (
		out      []Section
		current  *Section
		body     []string
		preamble []string
		inFence  bool
	)

	flush := func() {
		if current == nil {
			return
		}
		current.Body = strings.TrimSpace(strings.Join(body, "\n"))
		out = append(out, *current)
		body = body[:0]
	}

	for _, raw := range lines {
		line := strings.TrimSpace(raw)
		if fencePattern.MatchString(line) {
			inFence = !inFence
		}
		if !inFence && line != "" {
			if h, ok := match(line); ok {
				flush()
				current = &Section{Title: h.title, Label: h.label, Ordinal: len(out) + 1}
				continue
			}
		}
		if current == nil {
			preamble = append(preamble, raw)
			continue
		}
		body = append(body, raw)
	}
	flush()

	if len(out) == 0 {
		return nil
	}
	if pre := strings.TrimSpace(strings.Join(preamble, "\n")); pre != "" {
		out = append([]Section{{Title: TitlePreamble, Body: pre, Ordinal: 0}}, out...)
	}
	return out
}

func cleanHeading(text string) string {
	text = strings.TrimSpace(text)
	text = strings.TrimRight(text, "# ")
	text = strings.ReplaceAll(text, "**", "")
	text = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), ":"))
	return strings.Join(strings.Fields(text), " ")
}
