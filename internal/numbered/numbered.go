// Package numbered extracts barrier and accommodation entries keyed by a
// numbering scheme. Three header forms are understood and each is exposed as
// its own strategy:
//
//	**2.1. Reading Fluency** - description
//	1. **Reading Fluency**
//	**Observed Barrier 1:** Reading Fluency
//
// Parse tries them in that order and stops at the first form that matches.
package numbered

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/goliatone/go-reportmd/internal/report"
)

var (
	multiLevelPattern = regexp.MustCompile(`^(?:#{1,6}\s+)?(?:[-*+•]\s+)?\*\*\s*((?:\d+\.)+\d+)\.?\s+(.+?)\*\*\s*(.*)$`)
	simplePattern     = regexp.MustCompile(`^(\d+)[.)]\s+\*\*(.+?)\*\*\s*(.*)$`)
	legacyPattern     = regexp.MustCompile(`^(?:[-*+•]\s+)?\*\*\s*([A-Za-z][A-Za-z ]*?)\s+(\d+)\s*:?\s*\*\*\s*:?\s*(.*)$`)
	headingPattern    = regexp.MustCompile(`^#{1,6}\s`)
	evidencePattern   = regexp.MustCompile(`\(([^()]*\[[^\]]*\][^()]*)\)`)
	impactPattern     = regexp.MustCompile(`(?i)^\**\s*functional\s+impact\s*:?\s*\**\s*:?\s*`)
	bulletPattern     = regexp.MustCompile(`^(?:[-*+•–—]|\d+[.)])\s+`)
)

// Strategy names reported in diagnostics.
const (
	StrategyMultiLevel = "numbered-multilevel"
	StrategySimple     = "numbered-simple"
	StrategyLegacy     = "numbered-legacy"
)

type form struct {
	name  string
	match func(line string) (head, bool)
}

type head struct {
	ordinal int
	title   string
	rest    string
}

var forms = []form{
	{name: StrategyMultiLevel, match: matchMultiLevel},
	{name: StrategySimple, match: matchSimple},
	{name: StrategyLegacy, match: matchLegacy},
}

// Parse applies the multi-level, simple and legacy forms in order and returns
// the entries of the first form that yields any.
func Parse(block string) ([]report.NumberedEntry, bool) {
	entries, _, ok := ParseWithForm(block)
	return entries, ok
}

// ParseWithForm is Parse that also reports the strategy name of the form that
// matched.
func ParseWithForm(block string) ([]report.NumberedEntry, string, bool) {
	for _, f := range forms {
		if entries := parse(block, f.match); len(entries) > 0 {
			return entries, f.name, true
		}
	}
	return nil, "", false
}

// ParseMultiLevel reads "**2.1. Title**" and deeper "**2.1.3. Title**"
// entries. The ordinal is the last numbering component.
func ParseMultiLevel(block string) ([]report.NumberedEntry, bool) {
	entries := parse(block, matchMultiLevel)
	return entries, len(entries) > 0
}

// ParseSimple reads "1. **Title**" entries.
func ParseSimple(block string) ([]report.NumberedEntry, bool) {
	entries := parse(block, matchSimple)
	return entries, len(entries) > 0
}

// ParseLegacy reads "**Observed Barrier N:** Title" entries. When the title is
// not on the label line the next line is used.
func ParseLegacy(block string) ([]report.NumberedEntry, bool) {
	entries := parse(block, matchLegacy)
	return entries, len(entries) > 0
}

func matchMultiLevel(line string) (head, bool) {
	m := multiLevelPattern.FindStringSubmatch(line)
	if m == nil {
		return head{}, false
	}
	levels := strings.Split(m[1], ".")
	ordinal, _ := strconv.Atoi(levels[len(levels)-1])
	return head{ordinal: ordinal, title: m[2], rest: m[3]}, true
}

func matchSimple(line string) (head, bool) {
	m := simplePattern.FindStringSubmatch(line)
	if m == nil {
		return head{}, false
	}
	ordinal, _ := strconv.Atoi(m[1])
	return head{ordinal: ordinal, title: m[2], rest: m[3]}, true
}

func matchLegacy(line string) (head, bool) {
	m := legacyPattern.FindStringSubmatch(line)
	if m == nil {
		return head{}, false
	}
	ordinal, _ := strconv.Atoi(m[2])
	return head{ordinal: ordinal, title: m[3]}, true
}

func parse(block string, match func(string) (head, bool)) []report.NumberedEntry {
	lines := strings.Split(block, "\n")
	var out []report.NumberedEntry
	for i := 0; i < len(lines); i++ {
		h, ok := match(strings.TrimSpace(lines[i]))
		if !ok {
			continue
		}
		j := i + 1
		for ; j < len(lines); j++ {
			next := strings.TrimSpace(lines[j])
			if _, again := match(next); again || headingPattern.MatchString(next) {
				break
			}
		}
		if entry := build(h, lines[i+1:j]); entry.Valid() {
			out = append(out, entry)
		}
		i = j - 1
	}
	return out
}

func build(h head, body []string) report.NumberedEntry {
	var lines []string
	for _, line := range body {
		if line = strings.TrimSpace(line); line != "" {
			lines = append(lines, line)
		}
	}

	title := report.CleanTitle(h.title)
	if title == "" && len(lines) > 0 {
		title = report.CleanTitle(stripMarkers(lines[0]))
		lines = lines[1:]
	}

	entry := report.NumberedEntry{Ordinal: h.ordinal, Title: title}

	rest := strings.TrimSpace(strings.TrimLeft(strings.TrimSpace(h.rest), ":-–— "))
	candidates := lines
	if rest != "" {
		candidates = append([]string{rest}, lines...)
	}
	if len(candidates) > 0 {
		entry.Description = cleanText(candidates[0])
	}
	if entry.Description == "" {
		entry.Description = title
	}

	all := strings.Join(candidates, "\n")
	if found := evidencePattern.FindAllStringSubmatch(all, -1); len(found) > 0 {
		entry.Evidence = report.CollapseSpace(found[len(found)-1][1])
	}
	for _, line := range candidates {
		stripped := bulletPattern.ReplaceAllString(line, "")
		if impactPattern.MatchString(stripped) {
			entry.Impact = cleanText(stripped)
			break
		}
	}
	return entry
}

// cleanText strips list markers, a "Functional Impact:" prefix, emphasis
// markers and evidence citations from a description line.
func cleanText(line string) string {
	line = bulletPattern.ReplaceAllString(strings.TrimSpace(line), "")
	line = impactPattern.ReplaceAllString(line, "")
	line = evidencePattern.ReplaceAllString(line, "")
	line = strings.ReplaceAll(line, "**", "")
	line = report.CollapseSpace(line)
	return strings.TrimRight(line, " -–—:;,")
}

func stripMarkers(line string) string {
	return bulletPattern.ReplaceAllString(strings.TrimSpace(line), "")
}

// FromLabeled converts labeled entries into numbered ones for sections that
// present barriers as a table or bold-label prose. The ordinal is the entry's
// position and the description is its first observation.
func FromLabeled(entries []report.LabeledEntry) []report.NumberedEntry {
	out := make([]report.NumberedEntry, 0, len(entries))
	for i, entry := range entries {
		numbered := report.NumberedEntry{
			Ordinal:     i + 1,
			Title:       entry.Title,
			Description: entry.Title,
		}
		if len(entry.Observations) > 0 {
			numbered.Description = entry.Observations[0]
			if found := evidencePattern.FindStringSubmatch(numbered.Description); found != nil {
				numbered.Evidence = report.CollapseSpace(found[1])
				numbered.Description = cleanText(numbered.Description)
			}
		}
		if numbered.Valid() {
			out = append(out, numbered)
		}
	}
	return out
}
